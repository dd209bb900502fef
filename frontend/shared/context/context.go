package context

import (
	"context"

	"monterhyra/models"
)

type sessionKey struct{}

func NewContextWithSession(ctx context.Context, session models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

func GetSessionFromContext(ctx context.Context) (models.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(models.Session)
	return s, ok
}

// UserID returns the signed-in user, or 0 for anonymous requests.
func UserID(ctx context.Context) int64 {
	s, ok := GetSessionFromContext(ctx)
	if !ok {
		return 0
	}
	return s.UserID
}
