// cmd/historian/historian.go is an asynchronous historian service that pops
// action records from the Redis queue and persists them to PostgreSQL. It
// also sweeps finished and abandoned sessions out of the snapshot table.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	_ "github.com/joho/godotenv/autoload"

	"github.com/SevWren/MuellerEuchre-sub001/internal/cache"
	"github.com/SevWren/MuellerEuchre-sub001/internal/database"
)

// Schema:
//
//	CREATE TABLE euchre_actions (
//	    game_id      uuid NOT NULL,
//	    action_index int NOT NULL,
//	    seat         text,
//	    action_type  text NOT NULL,
//	    payload      jsonb NOT NULL,
//	    created_at   timestamptz NOT NULL DEFAULT now(),
//	    PRIMARY KEY (game_id, action_index)
//	);

// HistorianService encapsulates the Redis and DB logic for capturing game
// actions and sweeping sessions that ended or went quiet.
type HistorianService struct {
	redisClient  *redis.Client
	batchSize    int
	flushDelay   time.Duration
	inactivity   time.Duration // duration until a silent game is swept
	lastActivity sync.Map      // map[uuid.UUID]time.Time per game

	batchMu  sync.Mutex
	batch    []cache.GameActionRecord
	ctx      context.Context
	cancelFn context.CancelFunc
}

// NewHistorianService constructs a HistorianService from environment
// variables or defaults.
func NewHistorianService() *HistorianService {
	batchSize := getEnvInt("HISTORIAN_BATCH_SIZE", 20)
	flushMs := getEnvInt("HISTORIAN_FLUSH_MS", 500)
	inactivitySec := getEnvInt("GAME_INACTIVITY_TIMEOUT_SEC", 600)

	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithCancel(context.Background())
	return &HistorianService{
		redisClient: rdb,
		batchSize:   batchSize,
		flushDelay:  time.Duration(flushMs) * time.Millisecond,
		inactivity:  time.Duration(inactivitySec) * time.Second,
		batch:       make([]cache.GameActionRecord, 0, batchSize),
		ctx:         ctx,
		cancelFn:    cancel,
	}
}

// Run starts the two main loops: the queue reader that batches actions into
// the DB, and the periodic sweep of dead sessions.
func (hs *HistorianService) Run() {
	if err := database.ConnectDB(); err != nil {
		log.Fatalf("historian requires a database: %v", err)
	}

	go hs.readRedisLoop()
	go hs.sweepLoop()

	log.Println("euchre-historian service started.")
	<-hs.ctx.Done()
	log.Println("euchre-historian shutting down.")
}

// readRedisLoop continuously uses BLPop to retrieve action records from the
// Redis queue.
func (hs *HistorianService) readRedisLoop() {
	ticker := time.NewTicker(hs.flushDelay)
	defer ticker.Stop()

	queueName := getEnv("HISTORY_QUEUE_NAME", cache.DefaultQueueName)

	for {
		select {
		case <-hs.ctx.Done():
			return

		case <-ticker.C:
			hs.flushBatchToDB()

		default:
			// BLPop with a short timeout so context cancellation is noticed.
			res, err := hs.redisClient.BLPop(hs.ctx, 3*time.Second, queueName).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				log.Printf("[ERROR] BLPop: %v\n", err)
				continue
			}
			if len(res) < 2 {
				continue
			}

			// res[0] is the queue name and res[1] the payload.
			var record cache.GameActionRecord
			if err := json.Unmarshal([]byte(res[1]), &record); err != nil {
				log.Printf("invalid action record: %v\n", err)
				continue
			}

			hs.lastActivity.Store(record.GameID, time.Now())
			hs.appendToBatch(record)
		}
	}
}

// appendToBatch adds a record to the in-memory batch and flushes when the
// threshold is reached.
func (hs *HistorianService) appendToBatch(record cache.GameActionRecord) {
	hs.batchMu.Lock()
	defer hs.batchMu.Unlock()

	hs.batch = append(hs.batch, record)
	if len(hs.batch) >= hs.batchSize {
		hs.flushBatchLocked()
	}
}

func (hs *HistorianService) flushBatchToDB() {
	hs.batchMu.Lock()
	defer hs.batchMu.Unlock()
	hs.flushBatchLocked()
}

// flushBatchLocked writes the current batch in a single transaction.
// Callers hold batchMu.
func (hs *HistorianService) flushBatchLocked() {
	if len(hs.batch) == 0 {
		return
	}
	batchCopy := make([]cache.GameActionRecord, len(hs.batch))
	copy(batchCopy, hs.batch)
	hs.batch = hs.batch[:0]

	ctx := context.Background()
	err := pgx.BeginTxFunc(ctx, database.DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, rec := range batchCopy {
			if err := insertGameActionTx(ctx, tx, rec); err != nil {
				return fmt.Errorf("insertGameActionTx: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("[ERROR] flushBatchToDB: %v\n", err)
	} else {
		log.Printf("Flushed %d actions to DB.\n", len(batchCopy))
	}
}

// insertGameActionTx inserts a single action record. Replays of the same
// (game, index) pair are ignored so redelivery stays harmless.
func insertGameActionTx(ctx context.Context, tx pgx.Tx, rec cache.GameActionRecord) error {
	q := `
		INSERT INTO euchre_actions (
			game_id, action_index, seat, action_type, payload
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (game_id, action_index) DO NOTHING
	`
	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, q,
		rec.GameID, rec.ActionIndex, rec.Seat, rec.ActionType, payload,
	)
	return err
}

// sweepLoop periodically clears snapshots of sessions that finished or went
// silent past the inactivity threshold, plus anything untouched for days.
func (hs *HistorianService) sweepLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	staleInterval := getEnv("SNAPSHOT_STALE_INTERVAL", "48 hours")

	for {
		select {
		case <-hs.ctx.Done():
			return

		case <-ticker.C:
			now := time.Now()
			hs.lastActivity.Range(func(key, val interface{}) bool {
				gameID, ok1 := key.(uuid.UUID)
				last, ok2 := val.(time.Time)
				if ok1 && ok2 && now.Sub(last) > hs.inactivity {
					hs.sweepGame(gameID)
					hs.lastActivity.Delete(gameID)
				}
				return true
			})

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if n, err := database.DeleteStaleGames(ctx, staleInterval); err != nil {
				log.Printf("[ERROR] stale sweep: %v", err)
			} else if n > 0 {
				log.Printf("Swept %d stale snapshots.", n)
			}
			cancel()
		}
	}
}

// sweepGame drops the snapshot of a finished session. A session still in
// play is left alone; players may simply be slow.
func (hs *HistorianService) sweepGame(gameID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var snap struct {
		Phase string `json:"phase"`
	}
	if err := database.LoadGameSnapshot(ctx, gameID, &snap); err != nil {
		// No snapshot to sweep.
		return
	}
	if snap.Phase != "game_over" {
		return
	}
	if err := database.DeleteGameSnapshot(ctx, gameID); err != nil {
		log.Printf("failed to sweep game %v: %v", gameID, err)
		return
	}
	log.Printf("Swept finished game %v.", gameID)
}

// Stop gracefully stops the historian service.
func (hs *HistorianService) Stop() {
	hs.cancelFn()
}

func main() {
	hs := NewHistorianService()
	go hs.Run()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	hs.Stop()
	log.Println("Historian shutdown complete.")
}

// getEnv retrieves an environment variable's value or returns a default.
func getEnv(key, defVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defVal
}

// getEnvInt retrieves an integer environment variable or returns a default.
func getEnvInt(key string, defVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defVal
	}
	return i
}
