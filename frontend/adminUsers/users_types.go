package adminusers

import (
	"context"
	"errors"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrInvalidRole      = errors.New("role must be admin or warehouse")
	ErrUsernameExists   = errors.New("username already exists")
	ErrLastAdmin        = errors.New("cannot remove the last admin")
	ErrSelfDelete       = errors.New("cannot remove your own account")
)

type UserView struct {
	ID       int64  `bun:"id"`
	Username string `bun:"username"`
	Role     string `bun:"role"`
}

type PageData struct {
	Users        []UserView
	Status       string
	ErrorMessage string
}

// Auditor records user administration changes.
type Auditor interface {
	Record(ctx context.Context, userID int64, action, entityType, entityID string, before, after any) error
}
