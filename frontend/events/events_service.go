package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"monterhyra/frontend/pricing"
	"monterhyra/infrastructure/audit"
	"monterhyra/infrastructure/kvstore"
)

const (
	portalKey  = "exhibitor-portal-data"
	pricingKey = "pricing-defaults"

	entityEvent     = "event"
	entityExhibitor = "exhibitor"
	entityPricing   = "pricing"
)

// Store is the key-value collaborator the service persists through.
type Store interface {
	Get(ctx context.Context, key string, dst any) error
	Set(ctx context.Context, key string, v any) error
}

// Auditor records admin mutations.
type Auditor interface {
	Record(ctx context.Context, userID int64, action, entityType, entityID string, before, after any) error
}

// Service owns events, exhibitor invites and the global price table. All
// writes go through one mutex so read-modify-write cycles never interleave.
type Service struct {
	mu      sync.Mutex
	store   Store
	audit   Auditor
	baseURL string
	now     func() time.Time
}

// NewService builds the service. baseURL prefixes invite links.
func NewService(store Store, auditor Auditor, baseURL string) *Service {
	return &Service{
		store:   store,
		audit:   auditor,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

func (s *Service) load(ctx context.Context) (portalData, error) {
	var data portalData
	if err := s.store.Get(ctx, portalKey, &data); err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return portalData{}, nil
		}
		return portalData{}, fmt.Errorf("load events: %w", err)
	}
	return data, nil
}

func (s *Service) save(ctx context.Context, data portalData) error {
	if err := s.store.Set(ctx, portalKey, data); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	return nil
}

func (s *Service) record(ctx context.Context, userID int64, action, entityType, entityID string, before, after any) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, userID, action, entityType, entityID, before, after); err != nil {
		slog.Error("events: audit failed", slog.String("entity_id", entityID), slog.Any("err", err))
	}
}

func (s *Service) newID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, s.now().UnixMilli(), uuid.NewString()[:4])
}

func (s *Service) List(ctx context.Context) ([]Event, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if data.Events == nil {
		return []Event{}, nil
	}
	return data.Events, nil
}

func (s *Service) Get(ctx context.Context, id string) (Event, error) {
	data, err := s.load(ctx)
	if err != nil {
		return Event{}, err
	}
	i := indexOfEvent(data.Events, id)
	if i < 0 {
		return Event{}, ErrNotFound
	}
	return data.Events[i], nil
}

// Create stores a new event. Events without branding get the house brand.
func (s *Service) Create(ctx context.Context, userID int64, in NewEvent) (Event, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Event{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(ctx)
	if err != nil {
		return Event{}, err
	}
	branding := defaultBranding
	if in.Branding != nil {
		branding = *in.Branding
	}
	event := Event{
		ID:          s.newID("event"),
		Name:        name,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Location:    in.Location,
		CreatedAt:   s.now().UTC(),
		Branding:    branding,
	}
	data.Events = append(data.Events, event)
	if err := s.save(ctx, data); err != nil {
		return Event{}, err
	}
	s.record(ctx, userID, audit.ActionCreate, entityEvent, event.ID, nil, event)
	return event, nil
}

// UpdatePricing merges override field by field onto the event's existing
// override. Fields absent from override keep their previous value.
func (s *Service) UpdatePricing(ctx context.Context, userID int64, id string, override pricing.PriceTable) (Event, error) {
	return s.mutateEvent(ctx, userID, id, audit.ActionUpdatePricing, func(e *Event) {
		merged := pricing.PriceTable{}
		merged.Overlay(e.Pricing)
		merged.Overlay(&override)
		e.Pricing = &merged
	})
}

// UpdateBranding replaces the branding fields that are set in b.
func (s *Service) UpdateBranding(ctx context.Context, userID int64, id string, b Branding) (Event, error) {
	return s.mutateEvent(ctx, userID, id, audit.ActionUpdate, func(e *Event) {
		mergeString(&e.Branding.Logo, b.Logo)
		mergeString(&e.Branding.PrimaryColor, b.PrimaryColor)
		mergeString(&e.Branding.SecondaryColor, b.SecondaryColor)
		mergeString(&e.Branding.CompanyName, b.CompanyName)
		mergeString(&e.Branding.ContactEmail, b.ContactEmail)
		mergeString(&e.Branding.ContactPhone, b.ContactPhone)
		mergeString(&e.Branding.CustomDomain, b.CustomDomain)
	})
}

func (s *Service) mutateEvent(ctx context.Context, userID int64, id, action string, mutate func(*Event)) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(ctx)
	if err != nil {
		return Event{}, err
	}
	i := indexOfEvent(data.Events, id)
	if i < 0 {
		return Event{}, ErrNotFound
	}
	before := data.Events[i]
	mutate(&data.Events[i])
	if err := s.save(ctx, data); err != nil {
		return Event{}, err
	}
	s.record(ctx, userID, action, entityEvent, id, before, data.Events[i])
	return data.Events[i], nil
}

// Delete removes the event together with its exhibitors.
func (s *Service) Delete(ctx context.Context, userID int64, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := indexOfEvent(data.Events, id)
	if i < 0 {
		return ErrNotFound
	}
	before := data.Events[i]
	data.Events = append(data.Events[:i], data.Events[i+1:]...)
	kept := data.Exhibitors[:0]
	for _, ex := range data.Exhibitors {
		if ex.EventID != id {
			kept = append(kept, ex)
		}
	}
	data.Exhibitors = kept
	if err := s.save(ctx, data); err != nil {
		return err
	}
	s.record(ctx, userID, audit.ActionDelete, entityEvent, id, before, nil)
	return nil
}

// AddExhibitor invites a company to an event. Without explicit dimensions
// the size class defaults apply.
func (s *Service) AddExhibitor(ctx context.Context, userID int64, eventID string, in NewExhibitor) (Exhibitor, error) {
	dims, err := resolveDimensions(in)
	if err != nil {
		return Exhibitor{}, err
	}
	if strings.TrimSpace(in.CompanyName) == "" && strings.TrimSpace(in.Name) == "" {
		return Exhibitor{}, fmt.Errorf("%w: name or company is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(ctx)
	if err != nil {
		return Exhibitor{}, err
	}
	if indexOfEvent(data.Events, eventID) < 0 {
		return Exhibitor{}, ErrNotFound
	}
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	ex := Exhibitor{
		ID:            s.newID("exhibitor"),
		EventID:       eventID,
		Name:          strings.TrimSpace(in.Name),
		Email:         strings.TrimSpace(in.Email),
		CompanyName:   strings.TrimSpace(in.CompanyName),
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		MonterSize:    in.MonterSize,
		Dimensions:    dims,
		Token:         token,
		InviteLink:    s.inviteLink(token, dims),
		CreatedAt:     s.now().UTC(),
	}
	data.Exhibitors = append(data.Exhibitors, ex)
	if err := s.save(ctx, data); err != nil {
		return Exhibitor{}, err
	}
	s.record(ctx, userID, audit.ActionCreate, entityExhibitor, ex.ID, nil, ex)
	return ex, nil
}

// Exhibitors lists the invites of one event.
func (s *Service) Exhibitors(ctx context.Context, eventID string) ([]Exhibitor, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := []Exhibitor{}
	for _, ex := range data.Exhibitors {
		if ex.EventID == eventID {
			out = append(out, ex)
		}
	}
	return out, nil
}

// ExhibitorByToken resolves an invite token to its exhibitor, event and
// effective price table.
func (s *Service) ExhibitorByToken(ctx context.Context, token string) (Invite, error) {
	if strings.TrimSpace(token) == "" {
		return Invite{}, ErrNotFound
	}
	data, err := s.load(ctx)
	if err != nil {
		return Invite{}, err
	}
	for _, ex := range data.Exhibitors {
		if ex.Token != token {
			continue
		}
		i := indexOfEvent(data.Events, ex.EventID)
		if i < 0 {
			return Invite{}, ErrNotFound
		}
		global, err := s.GlobalPricing(ctx)
		if err != nil {
			return Invite{}, err
		}
		event := data.Events[i]
		return Invite{
			Exhibitor: ex,
			Event:     event,
			Pricing:   pricing.Effective(&global, event.Pricing),
		}, nil
	}
	return Invite{}, ErrNotFound
}

// GlobalPricing returns the admin-edited global override, empty when unset.
func (s *Service) GlobalPricing(ctx context.Context) (pricing.PriceTable, error) {
	var t pricing.PriceTable
	if err := s.store.Get(ctx, pricingKey, &t); err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return pricing.PriceTable{}, nil
		}
		return pricing.PriceTable{}, fmt.Errorf("load global pricing: %w", err)
	}
	return t, nil
}

// SetGlobalPricing replaces the global override.
func (s *Service) SetGlobalPricing(ctx context.Context, userID int64, t pricing.PriceTable) (pricing.PriceTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before, err := s.GlobalPricing(ctx)
	if err != nil {
		return pricing.PriceTable{}, err
	}
	if err := s.store.Set(ctx, pricingKey, t); err != nil {
		return pricing.PriceTable{}, fmt.Errorf("save global pricing: %w", err)
	}
	s.record(ctx, userID, audit.ActionUpdatePricing, entityPricing, pricingKey, before, t)
	return pricing.Effective(&t), nil
}

// EffectiveTable layers defaults, the global override and the event
// override. An empty eventID resolves the global table.
func (s *Service) EffectiveTable(ctx context.Context, eventID string) (pricing.PriceTable, error) {
	global, err := s.GlobalPricing(ctx)
	if err != nil {
		return pricing.PriceTable{}, err
	}
	if eventID == "" {
		return pricing.Effective(&global), nil
	}
	event, err := s.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return pricing.PriceTable{}, fmt.Errorf("%w: %s", pricing.ErrUnknownEvent, eventID)
		}
		return pricing.PriceTable{}, err
	}
	return pricing.Effective(&global, event.Pricing), nil
}

func (s *Service) inviteLink(token string, d Dimensions) string {
	return s.baseURL + "/?invite=" + token +
		"&width=" + formatMeters(d.Width) +
		"&depth=" + formatMeters(d.Depth) +
		"&height=" + formatMeters(d.Height)
}

func resolveDimensions(in NewExhibitor) (Dimensions, error) {
	if in.Dimensions != nil {
		d := *in.Dimensions
		if d.Width <= 0 || d.Depth <= 0 || d.Height <= 0 {
			return Dimensions{}, fmt.Errorf("%w: dimensions must be positive", ErrInvalidInput)
		}
		return d, nil
	}
	d, ok := DefaultDimensions[in.MonterSize]
	if !ok {
		return Dimensions{}, fmt.Errorf("%w: unknown monter size %q", ErrInvalidInput, in.MonterSize)
	}
	return d, nil
}

func indexOfEvent(events []Event, id string) int {
	for i, e := range events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func mergeString(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}

func formatMeters(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
