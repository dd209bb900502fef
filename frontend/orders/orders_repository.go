package orders

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"monterhyra/frontend/pricing"
	"monterhyra/infrastructure/audit"
	"monterhyra/infrastructure/kvstore"
	"monterhyra/models"
)

const (
	ordersKey   = "adminOrders"
	entityOrder = "order"

	// DefaultBlobThreshold is the largest archive kept inline in the order
	// document, 3.5 MiB.
	DefaultBlobThreshold = 3670016
)

// Store is the key-value and blob collaborator orders persist through.
type Store interface {
	Get(ctx context.Context, key string, dst any) error
	Set(ctx context.Context, key string, v any) error
	PutBlob(ctx context.Context, key string, data []byte) error
	GetBlob(ctx context.Context, key string) ([]byte, error)
	RemoveBlob(ctx context.Context, key string) error
}

// Auditor records admin mutations.
type Auditor interface {
	Record(ctx context.Context, userID int64, action, entityType, entityID string, before, after any) error
}

// Repository owns the order list. It is built once per process; every
// write holds the mutex across its read-modify-write cycle.
type Repository struct {
	mu        sync.Mutex
	store     Store
	tables    pricing.TableSource
	audit     Auditor
	threshold int
	now       func() time.Time
}

// NewRepository wires the repository. threshold <= 0 uses DefaultBlobThreshold.
func NewRepository(store Store, tables pricing.TableSource, auditor Auditor, threshold int) *Repository {
	if threshold <= 0 {
		threshold = DefaultBlobThreshold
	}
	return &Repository{
		store:     store,
		tables:    tables,
		audit:     auditor,
		threshold: threshold,
		now:       time.Now,
	}
}

func (r *Repository) load(ctx context.Context) ([]models.Order, error) {
	var list []models.Order
	if err := r.store.Get(ctx, ordersKey, &list); err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return []models.Order{}, nil
		}
		return nil, fmt.Errorf("load orders: %w", err)
	}
	if list == nil {
		list = []models.Order{}
	}
	return list, nil
}

func (r *Repository) save(ctx context.Context, list []models.Order) error {
	if err := r.store.Set(ctx, ordersKey, list); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}
	return nil
}

func (r *Repository) record(ctx context.Context, userID int64, action, id string, before, after any) {
	if r.audit == nil {
		return
	}
	if err := r.audit.Record(ctx, userID, action, entityOrder, id, before, after); err != nil {
		slog.Error("orders: audit failed", slog.String("order_id", id), slog.Any("err", err))
	}
}

// newID is <unix millis>-<4 random chars>.
func (r *Repository) newID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:4]
	return fmt.Sprintf("%d-%s", r.now().UnixMilli(), suffix)
}

// Create stores a new order. Regular orders are priced against the event
// table and the result is frozen on the order.
func (r *Repository) Create(ctx context.Context, in NewOrder) (models.Order, error) {
	order := models.Order{
		Timestamp:    r.now().UTC(),
		CustomerInfo: in.CustomerInfo,
		PrintOnly:    in.PrintOnly,
		OrderData: models.OrderData{
			EventID:   in.EventID,
			Config:    in.Config,
			Packlista: in.Packlista,
		},
	}
	if in.PrintOnly && strings.TrimSpace(order.CustomerInfo.Name) == "" {
		order.CustomerInfo.Name = "Auto-saved: " + strings.TrimSpace(in.Label)
	}
	if !in.PrintOnly {
		table, err := r.tables.EffectiveTable(ctx, in.EventID)
		if err != nil {
			return models.Order{}, err
		}
		quote := pricing.Compute(in.Config, &table)
		order.OrderData.TotalPrice = quote.Total
		order.OrderData.PriceLines = priceLines(quote)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return models.Order{}, err
	}
	order.ID = r.newID()
	for indexOf(list, order.ID) >= 0 {
		order.ID = r.newID()
	}
	if err := r.placeArchive(ctx, &order, in.Archive); err != nil {
		return models.Order{}, err
	}
	list = append(list, order)
	if err := r.save(ctx, list); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// placeArchive keeps small archives inline and moves larger ones to the
// blob store.
func (r *Repository) placeArchive(ctx context.Context, order *models.Order, archive []byte) error {
	order.Files = models.OrderFiles{ArchiveSize: int64(len(archive))}
	if len(archive) == 0 {
		return nil
	}
	if len(archive) <= r.threshold {
		order.Files.Archive = base64.StdEncoding.EncodeToString(archive)
		return nil
	}
	if err := r.store.PutBlob(ctx, order.ID, archive); err != nil {
		return fmt.Errorf("store archive for %s: %w", order.ID, err)
	}
	order.Files.StoredExternally = true
	return nil
}

// List returns every order, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Order, error) {
	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Order, len(list))
	for i, o := range list {
		out[len(list)-1-i] = o
	}
	return out, nil
}

func (r *Repository) Get(ctx context.Context, id string) (models.Order, error) {
	list, err := r.load(ctx)
	if err != nil {
		return models.Order{}, err
	}
	i := indexOf(list, id)
	if i < 0 {
		return models.Order{}, ErrNotFound
	}
	return list[i], nil
}

// Update applies an admin patch and returns the updated order.
func (r *Repository) Update(ctx context.Context, userID int64, id string, patch Patch) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return models.Order{}, err
	}
	i := indexOf(list, id)
	if i < 0 {
		return models.Order{}, ErrNotFound
	}
	before := list[i]
	if patch.CustomerInfo != nil {
		list[i].CustomerInfo = *patch.CustomerInfo
	}
	if patch.Packlista != nil {
		list[i].OrderData.Packlista = *patch.Packlista
	}
	if patch.PrintOnly != nil {
		list[i].PrintOnly = *patch.PrintOnly
	}
	if err := r.save(ctx, list); err != nil {
		return models.Order{}, err
	}
	r.record(ctx, userID, audit.ActionUpdate, id, withoutArchive(before), withoutArchive(list[i]))
	return list[i], nil
}

// Delete removes the order and its external archive and returns the
// remaining orders, newest first.
func (r *Repository) Delete(ctx context.Context, userID int64, id string) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(list, id)
	if i < 0 {
		return nil, ErrNotFound
	}
	removed := list[i]
	list = append(list[:i], list[i+1:]...)
	if err := r.save(ctx, list); err != nil {
		return nil, err
	}
	if removed.Files.StoredExternally {
		if err := r.store.RemoveBlob(ctx, id); err != nil {
			slog.Warn("orders: remove archive blob failed", slog.String("order_id", id), slog.Any("err", err))
		}
	}
	r.record(ctx, userID, audit.ActionDelete, id, withoutArchive(removed), nil)

	out := make([]models.Order, len(list))
	for j, o := range list {
		out[len(list)-1-j] = o
	}
	return out, nil
}

// Archive returns the order's ZIP wherever it is stored.
func (r *Repository) Archive(ctx context.Context, id string) ([]byte, error) {
	order, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Files.StoredExternally {
		data, err := r.store.GetBlob(ctx, id)
		if err != nil {
			if errors.Is(err, kvstore.ErrNotFound) {
				return nil, ErrNoArchive
			}
			return nil, err
		}
		return data, nil
	}
	if order.Files.Archive == "" {
		return nil, ErrNoArchive
	}
	data, err := base64.StdEncoding.DecodeString(order.Files.Archive)
	if err != nil {
		return nil, fmt.Errorf("decode archive for %s: %w", id, err)
	}
	return data, nil
}

// AttachArchive stores an uploaded ZIP in the blob store and marks the
// order as externally stored.
func (r *Repository) AttachArchive(ctx context.Context, userID int64, id string, blob []byte) (models.Order, error) {
	if len(blob) == 0 {
		return models.Order{}, ErrNoArchive
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return models.Order{}, err
	}
	i := indexOf(list, id)
	if i < 0 {
		return models.Order{}, ErrNotFound
	}
	if err := r.store.PutBlob(ctx, id, blob); err != nil {
		return models.Order{}, fmt.Errorf("store archive for %s: %w", id, err)
	}
	before := list[i].Files
	list[i].Files = models.OrderFiles{ArchiveSize: int64(len(blob)), StoredExternally: true}
	if err := r.save(ctx, list); err != nil {
		return models.Order{}, err
	}
	r.record(ctx, userID, audit.ActionAttachArchive, id, fileMeta(before), fileMeta(list[i].Files))
	return list[i], nil
}

func priceLines(q pricing.Quote) []models.PriceLine {
	lines := make([]models.PriceLine, 0, len(q.LineItems))
	for _, li := range q.LineItems {
		lines = append(lines, models.PriceLine{
			Description: li.Description,
			Quantity:    li.Quantity,
			Unit:        li.Unit,
			UnitPrice:   li.UnitPrice,
			Amount:      li.Amount,
		})
	}
	return lines
}

func indexOf(list []models.Order, id string) int {
	for i, o := range list {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// withoutArchive drops the inline archive so audit rows stay small.
func withoutArchive(o models.Order) models.Order {
	o.Files.Archive = ""
	return o
}

func fileMeta(f models.OrderFiles) models.OrderFiles {
	f.Archive = ""
	return f
}
