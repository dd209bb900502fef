package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/uptrace/bun"

	"monterhyra/infrastructure/sqlite"
	"monterhyra/models"
)

const (
	ActionCreate        = "create"
	ActionUpdate        = "update"
	ActionDelete        = "delete"
	ActionAttachArchive = "attach_archive"
	ActionUpdatePricing = "update_pricing"
)

// Service writes audit records for admin mutations.
type Service struct {
	db *sqlite.DB
}

func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// Record writes one audit row in its own write transaction.
func (s *Service) Record(ctx context.Context, userID int64, action, entityType, entityID string, before, after any) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return s.Write(ctx, tx, userID, action, entityType, entityID, before, after)
	})
}

// Write inserts an audit row inside the caller transaction.
func (s *Service) Write(ctx context.Context, tx bun.Tx, userID int64, action, entityType, entityID string, before, after any) error {
	beforeJSON, err := marshal(before)
	if err != nil {
		return fmt.Errorf("audit before: %w", err)
	}
	afterJSON, err := marshal(after)
	if err != nil {
		return fmt.Errorf("audit after: %w", err)
	}
	log := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		BeforeJSON: beforeJSON,
		AfterJSON:  afterJSON,
	}
	_, err = tx.NewInsert().Model(log).Exec(ctx)
	return err
}

// List returns the audit trail for one entity, oldest first.
func (s *Service) List(ctx context.Context, entityType, entityID string) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&logs).
			Where("entity_type = ?", entityType).
			Where("entity_id = ?", entityID).
			OrderExpr("id ASC").
			Scan(ctx)
	})
	return logs, err
}

func marshal(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
