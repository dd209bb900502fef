package adminusers

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"monterhyra/frontend/login"
	"monterhyra/infrastructure/argon"
	"monterhyra/infrastructure/audit"
	"monterhyra/infrastructure/rbac"
	"monterhyra/infrastructure/sqlite"
	"monterhyra/models"
)

const entityUser = "user"

func LoadUsersPageData(ctx context.Context, db *sqlite.DB) (PageData, error) {
	users := make([]UserView, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw("SELECT id, username, role FROM users ORDER BY id ASC").Scan(ctx, &users)
	})
	return PageData{Users: users}, err
}

// CreateUser stores a new portal account. Usernames are unique regardless of case.
func CreateUser(ctx context.Context, db *sqlite.DB, auditor Auditor, actorID int64, username, password, role string) error {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	role = strings.TrimSpace(role)
	if username == "" {
		return ErrUsernameRequired
	}
	if password == "" {
		return ErrPasswordRequired
	}
	if !rbac.ValidRole(role) {
		return ErrInvalidRole
	}
	if err := login.ValidatePasswordPolicy(password); err != nil {
		return err
	}
	hash, err := argon.CreateHash(password, argon.DefaultParams)
	if err != nil {
		return err
	}

	user := &models.User{Username: username, PasswordHash: hash, Role: role}
	err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*models.User)(nil)).
			Where("LOWER(username) = ?", strings.ToLower(username)).
			Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return ErrUsernameExists
		}
		if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return auditor.Record(ctx, actorID, audit.ActionCreate, entityUser, strconv.FormatInt(user.ID, 10), nil,
		UserView{ID: user.ID, Username: user.Username, Role: user.Role})
}

// DeleteUser removes an account and its sessions. The last admin is kept.
func DeleteUser(ctx context.Context, db *sqlite.DB, auditor Auditor, actorID, userID int64) error {
	if actorID == userID {
		return ErrSelfDelete
	}
	var before models.User
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().Model(&before).Where("id = ?", userID).Limit(1).Scan(ctx); err != nil {
			return err
		}
		if before.Role == rbac.RoleAdmin {
			admins, err := tx.NewSelect().Model((*models.User)(nil)).Where("role = ?", rbac.RoleAdmin).Count(ctx)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return ErrLastAdmin
			}
		}
		if _, err := tx.NewDelete().Model((*models.Session)(nil)).Where("user_id = ?", userID).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().Model((*models.User)(nil)).Where("id = ?", userID).Exec(ctx)
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return sql.ErrNoRows
	}
	if err != nil {
		return err
	}
	return auditor.Record(ctx, actorID, audit.ActionDelete, entityUser, strconv.FormatInt(userID, 10),
		UserView{ID: before.ID, Username: before.Username, Role: before.Role}, nil)
}

// ResetPassword replaces a user's password hash.
func ResetPassword(ctx context.Context, db *sqlite.DB, auditor Auditor, actorID, userID int64, password string) error {
	password = strings.TrimSpace(password)
	if password == "" {
		return ErrPasswordRequired
	}
	if err := login.ValidatePasswordPolicy(password); err != nil {
		return err
	}
	hash, err := argon.CreateHash(password, argon.DefaultParams)
	if err != nil {
		return err
	}
	err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*models.User)(nil)).
			Set("password_hash = ?", hash).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", userID).
			Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return err
	}
	return auditor.Record(ctx, actorID, audit.ActionUpdate, entityUser, strconv.FormatInt(userID, 10), nil, map[string]string{"password": "reset"})
}
