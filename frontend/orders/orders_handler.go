package orders

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"monterhyra/frontend/followup"
	"monterhyra/frontend/pricing"
	"monterhyra/frontend/shared/context"
	"monterhyra/frontend/shared/nav"
	"monterhyra/frontend/shared/respond"
	"monterhyra/models"
)

const maxArchiveUpload = 256 << 20

func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(w, r, http.StatusNotFound, "order not found")
	case errors.Is(err, ErrNoArchive):
		respond.Error(w, r, http.StatusNotFound, "order has no archive")
	case errors.Is(err, pricing.ErrUnknownEvent):
		respond.Error(w, r, http.StatusBadRequest, "unknown event")
	default:
		slog.Error("orders: "+op+" failed", slog.String("order_id", chi.URLParam(r, "id")), slog.Any("err", err))
		respond.Error(w, r, http.StatusInternalServerError, "failed to "+op)
	}
}

// CheckoutHandler stores a customer order or a print-only save.
func CheckoutHandler(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in NewOrder
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			respond.Error(w, r, http.StatusBadRequest, "invalid order")
			return
		}
		order, err := repo.Create(r.Context(), in)
		if err != nil {
			writeError(w, r, "create order", err)
			return
		}
		respond.JSON(w, r, http.StatusCreated, withoutArchive(order))
	}
}

func ListHandler(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := repo.List(r.Context())
		if err != nil {
			writeError(w, r, "list orders", err)
			return
		}
		respond.JSON(w, r, http.StatusOK, stripArchives(list))
	}
}

func GetHandler(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := repo.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, "load order", err)
			return
		}
		respond.JSON(w, r, http.StatusOK, withoutArchive(order))
	}
}

func UpdateHandler(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch Patch
		if err := render.DecodeJSON(r.Body, &patch); err != nil {
			respond.Error(w, r, http.StatusBadRequest, "invalid patch")
			return
		}
		order, err := repo.Update(r.Context(), context.UserID(r.Context()), chi.URLParam(r, "id"), patch)
		if err != nil {
			writeError(w, r, "update order", err)
			return
		}
		respond.JSON(w, r, http.StatusOK, withoutArchive(order))
	}
}

// DeleteHandler removes an order and answers with the remaining list.
func DeleteHandler(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := repo.Delete(r.Context(), context.UserID(r.Context()), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, "delete order", err)
			return
		}
		respond.JSON(w, r, http.StatusOK, stripArchives(list))
	}
}

func ArchiveHandler(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		data, err := repo.Archive(r.Context(), id)
		if err != nil {
			writeError(w, r, "load archive", err)
			return
		}
		respond.Attachment(w, "application/zip", "Beställning_"+id+".zip", data)
	}
}

// AttachArchiveHandler stores a manually uploaded ZIP sent as the raw body.
func AttachArchiveHandler(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blob, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxArchiveUpload))
		if err != nil {
			respond.Error(w, r, http.StatusRequestEntityTooLarge, "archive too large")
			return
		}
		if len(blob) == 0 {
			respond.Error(w, r, http.StatusBadRequest, "empty archive")
			return
		}
		order, err := repo.AttachArchive(r.Context(), context.UserID(r.Context()), chi.URLParam(r, "id"), blob)
		if err != nil {
			writeError(w, r, "attach archive", err)
			return
		}
		respond.JSON(w, r, http.StatusOK, withoutArchive(order))
	}
}

func PackingSlipHandler(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := repo.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, "load order", err)
			return
		}
		data, err := followup.RenderPackingSlip(order, time.Now())
		if err != nil {
			writeError(w, r, "render packing slip", err)
			return
		}
		respond.Attachment(w, "application/pdf", "Foljesedel_"+order.ID+".pdf", data)
	}
}

func QuotePDFHandler(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := repo.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, "load order", err)
			return
		}
		data, err := GenerateQuotePDF(order)
		if err != nil {
			writeError(w, r, "render quote", err)
			return
		}
		respond.Attachment(w, "application/pdf", "Offert_"+order.ID+".pdf", data)
	}
}

func SummaryHandler(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := repo.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, "load order", err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, Summary(order))
	}
}

// OrdersPageHandler renders the admin order list.
func OrdersPageHandler(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := context.GetSessionFromContext(r.Context())
		list, err := repo.List(r.Context())
		if err != nil {
			slog.Error("orders: list for page failed", slog.Any("err", err))
			http.Error(w, "failed to load orders", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := OrdersPage(nav.BuildTopNavData(session), list, r.URL.Query().Get("status")).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render orders page", http.StatusInternalServerError)
			return
		}
	}
}

// DeleteFormHandler handles the delete button on the admin page.
func DeleteFormHandler(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "Beställningen togs bort"
		if _, err := repo.Delete(r.Context(), context.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
			if !errors.Is(err, ErrNotFound) {
				slog.Error("orders: delete from page failed", slog.Any("err", err))
			}
			status = "Kunde inte ta bort beställningen"
		}
		http.Redirect(w, r, "/admin/orders?status="+url.QueryEscape(status), http.StatusSeeOther)
	}
}

func stripArchives(list []models.Order) []models.Order {
	out := make([]models.Order, len(list))
	for i, o := range list {
		out[i] = withoutArchive(o)
	}
	return out
}
