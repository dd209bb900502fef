package models

import "time"

// CustomerInfo is the contact and delivery block captured at checkout.
type CustomerInfo struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Company         string `json:"company"`
	DeliveryAddress string `json:"deliveryAddress"`
	EventDate       string `json:"eventDate"`
	EventTime       string `json:"eventTime"`
	SetupTime       string `json:"setupTime"`
	PickupTime      string `json:"pickupTime"`
	Message         string `json:"message"`
}

// PriceLine is one frozen quote row.
type PriceLine struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

// OrderData is the booth snapshot owned by an order. TotalPrice and
// PriceLines are frozen at checkout and never recomputed from later price
// tables.
type OrderData struct {
	EventID    string      `json:"eventId,omitempty"`
	Config     BoothConfig `json:"config"`
	TotalPrice float64     `json:"totalPrice"`
	PriceLines []PriceLine `json:"priceLines,omitempty"`
	Packlista  Packlist    `json:"packlista,omitempty"`
}

type OrderFiles struct {
	// Archive is the base64 encoded ZIP when it fits inline.
	Archive          string `json:"archive,omitempty"`
	ArchiveSize      int64  `json:"archiveSize"`
	StoredExternally bool   `json:"storedExternally"`
}

type Order struct {
	ID           string       `json:"id"`
	Timestamp    time.Time    `json:"timestamp"`
	CustomerInfo CustomerInfo `json:"customerInfo"`
	OrderData    OrderData    `json:"orderData"`
	Files        OrderFiles   `json:"files"`
	PrintOnly    bool         `json:"printOnly,omitempty"`
}
