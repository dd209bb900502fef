package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"monterhyra/frontend/pricing"
	"monterhyra/frontend/shared/nav"
	"monterhyra/infrastructure/audit"
	"monterhyra/infrastructure/kvstore"
	"monterhyra/infrastructure/sqlite"
	"monterhyra/models"
)

type staticTables struct {
	table pricing.PriceTable
}

func (s *staticTables) EffectiveTable(_ context.Context, eventID string) (pricing.PriceTable, error) {
	if eventID == "unknown" {
		return pricing.PriceTable{}, pricing.ErrUnknownEvent
	}
	return pricing.Effective(&s.table), nil
}

func newTestRepo(t *testing.T, threshold int) (*Repository, *staticTables, *audit.Service) {
	t.Helper()
	db, err := sqlite.OpenDB(filepath.Join(t.TempDir(), "orders.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	tables := &staticTables{}
	auditor := audit.NewService(db)
	return NewRepository(kvstore.New(db), tables, auditor, threshold), tables, auditor
}

func smallBooth() models.BoothConfig {
	return models.BoothConfig{Floor: &models.FloorConfig{Width: 2, Depth: 2}}
}

func TestCreateFreezesPrice(t *testing.T) {
	repo, tables, _ := newTestRepo(t, 0)
	ctx := context.Background()

	order, err := repo.Create(ctx, NewOrder{
		CustomerInfo: models.CustomerInfo{Name: "Anna"},
		Config:       smallBooth(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := float64(pricing.DefaultFloorPerSqm) * 4
	if order.OrderData.TotalPrice != want {
		t.Fatalf("expected total %.0f, got %.0f", want, order.OrderData.TotalPrice)
	}
	if len(order.OrderData.PriceLines) != 1 {
		t.Fatalf("expected one frozen price line, got %+v", order.OrderData.PriceLines)
	}
	parts := strings.SplitN(order.ID, "-", 2)
	if len(parts) != 2 || len(parts[1]) != 4 {
		t.Fatalf("unexpected order id %q", order.ID)
	}

	floor := int64(9999)
	tables.table = pricing.PriceTable{Floor: &pricing.FloorPrices{BasePricePerSqm: &floor}}
	stored, err := repo.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.OrderData.TotalPrice != want {
		t.Fatalf("stored price changed with the table: %.0f", stored.OrderData.TotalPrice)
	}

	if _, err := repo.Create(ctx, NewOrder{EventID: "unknown", Config: smallBooth()}); !errors.Is(err, pricing.ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
}

func TestPrintOnlyOrderIsNotPriced(t *testing.T) {
	repo, _, _ := newTestRepo(t, 0)
	order, err := repo.Create(context.Background(), NewOrder{
		Config:    smallBooth(),
		PrintOnly: true,
		Label:     "VEPA export",
		Archive:   []byte("zip"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.OrderData.TotalPrice != 0 || order.CustomerInfo.Name != "Auto-saved: VEPA export" {
		t.Fatalf("unexpected print-only order %+v", order)
	}
}

func TestArchiveInlineAndExternal(t *testing.T) {
	repo, _, _ := newTestRepo(t, 8)
	ctx := context.Background()

	small, err := repo.Create(ctx, NewOrder{Archive: []byte("tiny"), PrintOnly: true})
	if err != nil {
		t.Fatalf("create small: %v", err)
	}
	if small.Files.StoredExternally || small.Files.Archive == "" || small.Files.ArchiveSize != 4 {
		t.Fatalf("expected inline archive, got %+v", small.Files)
	}

	big, err := repo.Create(ctx, NewOrder{Archive: []byte("much larger payload"), PrintOnly: true})
	if err != nil {
		t.Fatalf("create big: %v", err)
	}
	if !big.Files.StoredExternally || big.Files.Archive != "" {
		t.Fatalf("expected external archive, got %+v", big.Files)
	}

	for id, want := range map[string]string{small.ID: "tiny", big.ID: "much larger payload"} {
		got, err := repo.Archive(ctx, id)
		if err != nil {
			t.Fatalf("archive %s: %v", id, err)
		}
		if string(got) != want {
			t.Fatalf("archive %s: expected %q, got %q", id, want, got)
		}
	}

	none, err := repo.Create(ctx, NewOrder{PrintOnly: true})
	if err != nil {
		t.Fatalf("create none: %v", err)
	}
	if _, err := repo.Archive(ctx, none.ID); !errors.Is(err, ErrNoArchive) {
		t.Fatalf("expected ErrNoArchive, got %v", err)
	}
}

func TestAttachArchiveMovesToBlobStore(t *testing.T) {
	repo, _, auditor := newTestRepo(t, 0)
	ctx := context.Background()
	order, err := repo.Create(ctx, NewOrder{Archive: []byte("old"), PrintOnly: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.AttachArchive(ctx, 7, order.ID, []byte("uploaded zip"))
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if !updated.Files.StoredExternally || updated.Files.Archive != "" || updated.Files.ArchiveSize != 12 {
		t.Fatalf("unexpected files %+v", updated.Files)
	}
	got, err := repo.Archive(ctx, order.ID)
	if err != nil || string(got) != "uploaded zip" {
		t.Fatalf("expected uploaded archive, got %q %v", got, err)
	}
	logs, err := auditor.List(ctx, entityOrder, order.ID)
	if err != nil || len(logs) != 1 || logs[0].Action != audit.ActionAttachArchive || logs[0].UserID != 7 {
		t.Fatalf("unexpected audit rows %+v %v", logs, err)
	}
	if _, err := repo.AttachArchive(ctx, 7, "missing", []byte("x")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	repo, _, auditor := newTestRepo(t, 4)
	ctx := context.Background()
	first, _ := repo.Create(ctx, NewOrder{CustomerInfo: models.CustomerInfo{Name: "A"}, Config: smallBooth()})
	second, _ := repo.Create(ctx, NewOrder{CustomerInfo: models.CustomerInfo{Name: "B"}, Config: smallBooth(), Archive: []byte("external")})
	third, _ := repo.Create(ctx, NewOrder{CustomerInfo: models.CustomerInfo{Name: "C"}, Config: smallBooth()})

	info := models.CustomerInfo{Name: "A2", Email: "a@example.se"}
	updated, err := repo.Update(ctx, 1, first.ID, Patch{CustomerInfo: &info})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.CustomerInfo.Name != "A2" || updated.OrderData.TotalPrice != first.OrderData.TotalPrice {
		t.Fatalf("unexpected update %+v", updated)
	}

	remaining, err := repo.Delete(ctx, 1, second.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(remaining) != 2 || remaining[0].ID != third.ID || remaining[1].ID != first.ID {
		t.Fatalf("unexpected remaining orders %+v", remaining)
	}
	if _, err := repo.Get(ctx, second.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted order gone, got %v", err)
	}
	if _, err := repo.store.GetBlob(ctx, second.ID); !errors.Is(err, kvstore.ErrNotFound) {
		t.Fatalf("expected archive blob removed, got %v", err)
	}
	if _, err := repo.Delete(ctx, 1, second.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	logs, err := auditor.List(ctx, entityOrder, second.ID)
	if err != nil || len(logs) != 1 || logs[0].Action != audit.ActionDelete {
		t.Fatalf("unexpected delete audit %+v %v", logs, err)
	}
}

func TestConcurrentCreatesAreSerialized(t *testing.T) {
	repo, _, _ := newTestRepo(t, 0)
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, NewOrder{CustomerInfo: models.CustomerInfo{Name: fmt.Sprintf("kund %d", i)}, Config: smallBooth()})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != n {
		t.Fatalf("expected %d orders, got %d", n, len(list))
	}
	ids := make(map[string]bool)
	for _, o := range list {
		ids[o.ID] = true
	}
	if len(ids) != n {
		t.Fatalf("expected unique ids, got %d", len(ids))
	}
}

func TestSummary(t *testing.T) {
	o := models.Order{
		ID:           "1-abcd",
		CustomerInfo: models.CustomerInfo{Name: "Anna", Company: "Bolaget AB", Message: "Ring innan"},
		OrderData: models.OrderData{
			TotalPrice: 12500,
			Config: models.BoothConfig{
				Furniture: []models.FurnitureItem{{Kind: models.FurnitureSofa}, {Kind: models.FurnitureChair}},
				Plants:    []models.PlantItem{{Size: models.PlantLarge}},
			},
		},
	}
	s := Summary(o)
	for _, want := range []string{
		"BESTÄLLNINGSSAMMANFATTNING",
		"Beställningsnummer: 1-abcd",
		"Företag: Bolaget AB",
		"Meddelande: Ring innan",
		"Möbler: 2 st",
		"Växter: 1 st",
		"Förråd: 0 st",
		"Totalpris: " + pricing.FormatSEK(12500),
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("summary missing %q:\n%s", want, s)
		}
	}
	o.CustomerInfo.Message = ""
	if strings.Contains(Summary(o), "Meddelande") {
		t.Fatalf("expected no message line for empty message")
	}
}

func TestGenerateQuotePDF(t *testing.T) {
	o := models.Order{
		ID: "1-abcd",
		OrderData: models.OrderData{
			TotalPrice: 1800,
			PriceLines: []models.PriceLine{{Description: "Golv", Quantity: 4, Unit: "m²", UnitPrice: 450, Amount: 1800}},
		},
	}
	data, err := GenerateQuotePDF(o)
	if err != nil {
		t.Fatalf("GenerateQuotePDF returned error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("expected pdf output")
	}
}

func TestOrdersPageEscapesContent(t *testing.T) {
	list := []models.Order{{ID: "1-abcd", CustomerInfo: models.CustomerInfo{Name: "<script>x</script>"}}}
	var buf bytes.Buffer
	if err := OrdersPage(nav.TopNavData{Username: "admin"}, list, "").Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<script>x</script>") {
		t.Fatalf("customer name was not escaped")
	}
	if !strings.Contains(out, "/api/admin/orders/1-abcd/packing-slip.pdf") {
		t.Fatalf("expected packing slip link in page")
	}
}

func TestCheckoutAndAdminHandlers(t *testing.T) {
	repo, _, _ := newTestRepo(t, 0)
	r := chi.NewRouter()
	r.Post("/api/orders", CheckoutHandler(repo))
	r.Get("/api/admin/orders/{id}", GetHandler(repo))
	r.Get("/api/admin/orders/{id}/summary.txt", SummaryHandler(repo))
	r.Get("/api/admin/orders/{id}/packing-slip.pdf", PackingSlipHandler(repo))

	body, _ := json.Marshal(NewOrder{CustomerInfo: models.CustomerInfo{Name: "Anna"}, Config: smallBooth(), Archive: []byte("zip")})
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created models.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if created.Files.Archive != "" || created.Files.ArchiveSize != 3 {
		t.Fatalf("expected archive stripped from response, got %+v", created.Files)
	}

	for _, path := range []string{
		"/api/admin/orders/" + created.ID,
		"/api/admin/orders/" + created.ID + "/summary.txt",
		"/api/admin/orders/" + created.ID + "/packing-slip.pdf",
	} {
		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/orders/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
