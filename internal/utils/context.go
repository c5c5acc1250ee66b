package utils

import (
	"context"
	"time"
)

type contextKey string

const ContextUserIDKey contextKey = "userID"

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID := ctx.Value(ContextUserIDKey)
	userIDStr, ok := userID.(string)
	return userIDStr, ok
}

// SessionData is what the session middleware needs to know about a session
// without depending on the auth package's storage model.
type SessionData struct {
	UserID    string
	ExpiresAt time.Time
}
