package orders

import (
	"errors"

	"monterhyra/models"
)

var (
	ErrNotFound  = errors.New("orders: not found")
	ErrNoArchive = errors.New("orders: order has no archive")
)

// NewOrder is a checkout or a print-only save. Archive is the ZIP of print
// files; in JSON it travels base64 encoded.
type NewOrder struct {
	CustomerInfo models.CustomerInfo `json:"customerInfo"`
	EventID      string              `json:"eventId,omitempty"`
	Config       models.BoothConfig  `json:"config"`
	Packlista    models.Packlist     `json:"packlista,omitempty"`
	Archive      []byte              `json:"archive,omitempty"`
	PrintOnly    bool                `json:"printOnly,omitempty"`
	// Label names a print-only save in the admin list.
	Label string `json:"label,omitempty"`
}

// Patch holds the admin-editable parts of an order. Nil fields are kept.
type Patch struct {
	CustomerInfo *models.CustomerInfo `json:"customerInfo,omitempty"`
	Packlista    *models.Packlist     `json:"packlista,omitempty"`
	PrintOnly    *bool                `json:"printOnly,omitempty"`
}
