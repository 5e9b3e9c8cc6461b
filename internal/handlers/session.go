// internal/handlers/session.go
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/SevWren/MuellerEuchre-sub001/internal/auth"
)

// sessionCookieName carries the signed ephemeral identity between requests.
// A client that reconnects with the same cookie is resumed into its seat.
const sessionCookieName = "euchre_token"

// EnsureSession resolves the caller's ephemeral identity. If the request
// carries a valid session cookie, the embedded connection ID is returned;
// otherwise a fresh identity is minted, signed, and set as a cookie.
func EnsureSession(w http.ResponseWriter, r *http.Request) (uuid.UUID, error) {
	cookieHeader := r.Header.Get("Cookie")
	if strings.Contains(cookieHeader, sessionCookieName+"=") {
		token := extractCookieToken(cookieHeader, sessionCookieName)
		connIDStr, err := auth.AuthenticateJWT(token)
		if err == nil {
			connID, parseErr := uuid.Parse(connIDStr)
			if parseErr == nil {
				return connID, nil
			}
		}
		// Fall through and mint a fresh identity when the token is stale.
	}

	connID, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to generate session id: %w", err)
	}
	token, err := auth.CreateJWT(connID.String())
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create session JWT: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		HttpOnly: true,
		Path:     "/",
	})
	return connID, nil
}
