package events

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"monterhyra/frontend/pricing"
	"monterhyra/frontend/shared/context"
	"monterhyra/frontend/shared/respond"
)

func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, ErrInvalidInput):
		respond.Error(w, r, http.StatusBadRequest, err.Error())
	default:
		slog.Error("events: "+op+" failed", slog.Any("err", err))
		respond.Error(w, r, http.StatusInternalServerError, "failed to "+op)
	}
}

func ListHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := svc.List(r.Context())
		if err != nil {
			writeError(w, r, "list events", err)
			return
		}
		respond.JSON(w, r, http.StatusOK, events)
	}
}

func GetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, "load event", err)
			return
		}
		respond.JSON(w, r, http.StatusOK, event)
	}
}

func CreateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in NewEvent
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			respond.Error(w, r, http.StatusBadRequest, "invalid event")
			return
		}
		event, err := svc.Create(r.Context(), context.UserID(r.Context()), in)
		if err != nil {
			writeError(w, r, "create event", err)
			return
		}
		respond.JSON(w, r, http.StatusCreated, event)
	}
}

func DeleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), context.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
			writeError(w, r, "delete event", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func UpdatePricingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var override pricing.PriceTable
		if err := render.DecodeJSON(r.Body, &override); err != nil {
			respond.Error(w, r, http.StatusBadRequest, "invalid price table")
			return
		}
		event, err := svc.UpdatePricing(r.Context(), context.UserID(r.Context()), chi.URLParam(r, "id"), override)
		if err != nil {
			writeError(w, r, "update pricing", err)
			return
		}
		respond.JSON(w, r, http.StatusOK, event)
	}
}

func UpdateBrandingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var b Branding
		if err := render.DecodeJSON(r.Body, &b); err != nil {
			respond.Error(w, r, http.StatusBadRequest, "invalid branding")
			return
		}
		event, err := svc.UpdateBranding(r.Context(), context.UserID(r.Context()), chi.URLParam(r, "id"), b)
		if err != nil {
			writeError(w, r, "update branding", err)
			return
		}
		respond.JSON(w, r, http.StatusOK, event)
	}
}

func AddExhibitorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in NewExhibitor
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			respond.Error(w, r, http.StatusBadRequest, "invalid exhibitor")
			return
		}
		ex, err := svc.AddExhibitor(r.Context(), context.UserID(r.Context()), chi.URLParam(r, "id"), in)
		if err != nil {
			writeError(w, r, "add exhibitor", err)
			return
		}
		respond.JSON(w, r, http.StatusCreated, ex)
	}
}

func ExhibitorsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.Exhibitors(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, "list exhibitors", err)
			return
		}
		respond.JSON(w, r, http.StatusOK, list)
	}
}

// EventPricingHandler returns the effective price table of one event.
func EventPricingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := svc.EffectiveTable(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, pricing.ErrUnknownEvent) {
				respond.Error(w, r, http.StatusNotFound, "event not found")
				return
			}
			writeError(w, r, "resolve pricing", err)
			return
		}
		respond.JSON(w, r, http.StatusOK, table)
	}
}

// InviteHandler resolves a public invite token.
func InviteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		invite, err := svc.ExhibitorByToken(r.Context(), chi.URLParam(r, "token"))
		if err != nil {
			writeError(w, r, "resolve invite", err)
			return
		}
		respond.JSON(w, r, http.StatusOK, invite)
	}
}

// GlobalPricingHandler replaces the global price override and returns the
// resulting effective table.
func GlobalPricingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var t pricing.PriceTable
		if err := render.DecodeJSON(r.Body, &t); err != nil {
			respond.Error(w, r, http.StatusBadRequest, "invalid price table")
			return
		}
		effective, err := svc.SetGlobalPricing(r.Context(), context.UserID(r.Context()), t)
		if err != nil {
			writeError(w, r, "update global pricing", err)
			return
		}
		respond.JSON(w, r, http.StatusOK, effective)
	}
}
