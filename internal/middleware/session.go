// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"footprints/internal/session"
	"footprints/internal/viewer"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	csrfKey      contextKey = "csrf"
	sessionKey   contextKey = "session"
)

// SessionStore is the part of session.Store the middleware needs.
type SessionStore interface {
	ID(r *http.Request) (string, bool)
	Load(ctx context.Context, id string) (*session.Data, error)
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
}

// EnsureSession makes sure every request has a viewer session. Requests
// without a live session get a new one whose state comes from initial.
// The session ID is stored in the request context; handlers load and save
// the state themselves under the per-session lock.
func EnsureSession(store SessionStore, initial func(r *http.Request) viewer.State) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if id, ok := store.ID(r); ok {
				data, err := store.Load(ctx, id)
				if err != nil {
					slog.Error("session load failed", "error", err, "request_id", RequestIDFromCtx(ctx))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				if data != nil {
					next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, sessionKey, id)))
					return
				}
			}

			id, err := store.Create(ctx, w, &session.Data{State: initial(r)})
			if err != nil {
				slog.Error("session create failed", "error", err, "request_id", RequestIDFromCtx(ctx))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, sessionKey, id)))
		})
	}
}

// SessionIDFromCtx returns the session ID set by EnsureSession, or "".
func SessionIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey).(string)
	return id
}
