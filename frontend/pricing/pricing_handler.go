package pricing

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"monterhyra/frontend/shared/respond"
	"monterhyra/models"
)

// ErrUnknownEvent is returned by a TableSource for an event id it does not know.
var ErrUnknownEvent = errors.New("unknown event")

// TableSource resolves the effective price table for an event. An empty
// eventID means the global table.
type TableSource interface {
	EffectiveTable(ctx context.Context, eventID string) (PriceTable, error)
}

type QuoteRequest struct {
	EventID string             `json:"eventId,omitempty"`
	Config  models.BoothConfig `json:"config"`
}

type QuoteResponse struct {
	Quote
	FormattedTotal string `json:"formattedTotal"`
}

// QuoteHandler prices a booth configuration against the event or global table.
func QuoteHandler(src TableSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req QuoteRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			respond.Error(w, r, http.StatusBadRequest, "invalid quote request")
			return
		}

		table, err := src.EffectiveTable(r.Context(), req.EventID)
		if err != nil {
			if errors.Is(err, ErrUnknownEvent) {
				respond.Error(w, r, http.StatusNotFound, "event not found")
				return
			}
			slog.Error("pricing: resolve table failed", slog.String("event_id", req.EventID), slog.Any("err", err))
			respond.Error(w, r, http.StatusInternalServerError, "failed to resolve price table")
			return
		}

		quote := Compute(req.Config, &table)
		respond.JSON(w, r, http.StatusOK, QuoteResponse{Quote: quote, FormattedTotal: FormatSEK(quote.Total)})
	}
}

// DefaultsHandler returns the effective global price table.
func DefaultsHandler(src TableSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := src.EffectiveTable(r.Context(), "")
		if err != nil {
			slog.Error("pricing: resolve global table failed", slog.Any("err", err))
			respond.Error(w, r, http.StatusInternalServerError, "failed to resolve price table")
			return
		}
		respond.JSON(w, r, http.StatusOK, table)
	}
}
