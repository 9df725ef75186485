package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"moodfm/core/auth"
	"moodfm/logger"
)

type contextKey string

const (
	ctxKeyUserID      contextKey = "userID"
	ctxKeyAccessToken contextKey = "accessToken"
)

// AuthMiddleware validates the session JWT and stashes the user id and the
// streaming-service access token in the request context.
func (h *APIHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondError(w, http.StatusUnauthorized, "missing bearer token", "UNAUTHORIZED")
			return
		}

		claims, err := auth.ParseToken(h.cfg.JWTSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			logger.Warn("[Auth] token rejected", logger.ErrorField(err))
			respondError(w, http.StatusUnauthorized, "invalid session token", "UNAUTHORIZED")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, ctxKeyAccessToken, claims.AccessToken)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFrom(r *http.Request) (int64, bool) {
	id, ok := r.Context().Value(ctxKeyUserID).(int64)
	return id, ok
}

func accessTokenFrom(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(ctxKeyAccessToken).(string)
	return token, ok && token != ""
}

// CreateSessionHandler mints a session token from a client-supplied
// streaming-service access token. The OAuth exchange that produced the
// access token happens on the client and is out of scope here.
func (h *APIHandler) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      int64  `json:"userId"`
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.AccessToken == "" {
		respondError(w, http.StatusBadRequest, "accessToken is required", "BAD_REQUEST")
		return
	}

	token, err := auth.GenerateToken(h.cfg.JWTSecret, req.UserID, req.AccessToken, h.cfg.JWTExpiresIn)
	if err != nil {
		logger.Error("[Auth] failed to mint session token", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "failed to create session", "INTERNAL")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}
