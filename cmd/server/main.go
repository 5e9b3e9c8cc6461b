// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/SevWren/MuellerEuchre-sub001/internal/auth"
	"github.com/SevWren/MuellerEuchre-sub001/internal/cache"
	"github.com/SevWren/MuellerEuchre-sub001/internal/database"
	"github.com/SevWren/MuellerEuchre-sub001/internal/handlers"
	"github.com/SevWren/MuellerEuchre-sub001/internal/middleware"
)

func main() {
	auth.Init()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	// Persistence and action history are optional; the server runs fully
	// in-memory when neither backend is configured.
	if os.Getenv("PG_HOST") != "" {
		if err := database.ConnectDB(); err != nil {
			logger.Warnf("Postgres unavailable, snapshots disabled: %v", err)
		}
	}
	if os.Getenv("REDIS_ADDR") != "" {
		if err := cache.ConnectRedis(); err != nil {
			logger.Warnf("Redis unavailable, action history disabled: %v", err)
		}
	}

	srv := handlers.NewGameServer(logger)

	mux := http.NewServeMux()

	// session endpoints
	mux.Handle("/session/create", middleware.LogMiddleware(logger)(http.HandlerFunc(
		srv.CreateSessionHandler,
	)))
	mux.Handle("/session/list", middleware.LogMiddleware(logger)(http.HandlerFunc(
		srv.ListSessionsHandler,
	)))

	// game websocket
	mux.Handle("/game/ws/", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.GameWSHandler(logger, srv),
	)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
