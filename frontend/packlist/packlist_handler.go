package packlist

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"monterhyra/frontend/shared/respond"
	"monterhyra/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type categorizeRequest struct {
	Title     string          `json:"title,omitempty"`
	Packlista models.Packlist `json:"packlista"`
}

// CategorizeHandler groups a posted packing list.
func CategorizeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categorizeRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			respond.Error(w, r, http.StatusBadRequest, "invalid packing list")
			return
		}
		respond.JSON(w, r, http.StatusOK, Categorize(req.Packlista))
	}
}

// ExportHandler returns the posted packing list as an xlsx workbook.
func ExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categorizeRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			respond.Error(w, r, http.StatusBadRequest, "invalid packing list")
			return
		}
		data, err := ExportXLSX(req.Title, Categorize(req.Packlista))
		if err != nil {
			slog.Error("packlist: export failed", slog.Any("err", err))
			respond.Error(w, r, http.StatusInternalServerError, "failed to export packing list")
			return
		}
		respond.Attachment(w, xlsxContentType, "packlista.xlsx", data)
	}
}
