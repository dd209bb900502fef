package events

import (
	"errors"
	"time"

	"monterhyra/frontend/pricing"
)

var (
	ErrNotFound     = errors.New("events: not found")
	ErrInvalidInput = errors.New("events: invalid input")
)

// MonterSize is the booth size class an exhibitor is invited with.
type MonterSize string

const (
	SizeSmall  MonterSize = "small"
	SizeMedium MonterSize = "medium"
	SizeLarge  MonterSize = "large"
)

// Dimensions are booth measures in meters.
type Dimensions struct {
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
}

// DefaultDimensions are used when an invite does not lock explicit measures.
var DefaultDimensions = map[MonterSize]Dimensions{
	SizeSmall:  {Width: 2, Depth: 2, Height: 2.5},
	SizeMedium: {Width: 3, Depth: 3, Height: 2.5},
	SizeLarge:  {Width: 4, Depth: 4, Height: 2.5},
}

// Branding is the white label look of an event's exhibitor portal.
type Branding struct {
	Logo           string `json:"logo,omitempty"`
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
	CompanyName    string `json:"companyName,omitempty"`
	ContactEmail   string `json:"contactEmail,omitempty"`
	ContactPhone   string `json:"contactPhone,omitempty"`
	CustomDomain   string `json:"customDomain,omitempty"`
}

var defaultBranding = Branding{
	CompanyName:    "Monterhyra",
	PrimaryColor:   "#3498db",
	SecondaryColor: "#2c3e50",
}

type Event struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	StartDate   string              `json:"startDate,omitempty"`
	EndDate     string              `json:"endDate,omitempty"`
	Location    string              `json:"location,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	Branding    Branding            `json:"branding"`
	Pricing     *pricing.PriceTable `json:"pricing,omitempty"`
}

type NewEvent struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	StartDate   string    `json:"startDate,omitempty"`
	EndDate     string    `json:"endDate,omitempty"`
	Location    string    `json:"location,omitempty"`
	Branding    *Branding `json:"branding,omitempty"`
}

// Exhibitor is an invited company with pre-locked booth measures.
type Exhibitor struct {
	ID            string     `json:"id"`
	EventID       string     `json:"eventId"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	CompanyName   string     `json:"companyName"`
	ContactPerson string     `json:"contactPerson,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	MonterSize    MonterSize `json:"monterSize"`
	Dimensions    Dimensions `json:"monterDimensions"`
	Token         string     `json:"token"`
	InviteLink    string     `json:"inviteLink"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type NewExhibitor struct {
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	CompanyName   string      `json:"companyName"`
	ContactPerson string      `json:"contactPerson,omitempty"`
	Phone         string      `json:"phone,omitempty"`
	MonterSize    MonterSize  `json:"monterSize"`
	Dimensions    *Dimensions `json:"monterDimensions,omitempty"`
}

// Invite is what the public portal sees for an invite token.
type Invite struct {
	Exhibitor Exhibitor          `json:"exhibitor"`
	Event     Event              `json:"event"`
	Pricing   pricing.PriceTable `json:"pricing"`
}

// portalData is the stored document holding every event and exhibitor.
type portalData struct {
	Events     []Event     `json:"events"`
	Exhibitors []Exhibitor `json:"exhibitors"`
}
