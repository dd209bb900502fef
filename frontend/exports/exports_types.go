package exports

import (
	"context"

	"monterhyra/models"
)

// OrderLister is the part of the order repository exports read from.
type OrderLister interface {
	List(ctx context.Context) ([]models.Order, error)
}

// Row is one order flattened for spreadsheets.
type Row struct {
	ID          string
	Date        string
	Name        string
	Company     string
	Email       string
	Phone       string
	Event       string
	EventDate   string
	Address     string
	FloorSize   string
	TotalPrice  float64
	ArchiveSize int64
	PrintOnly   bool
}

var header = []string{
	"order_id", "date", "name", "company", "email", "phone", "event_id",
	"event_date", "delivery_address", "floor", "total_sek", "archive_bytes", "print_only",
}
