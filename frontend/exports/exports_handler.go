package exports

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"monterhyra/frontend/shared/respond"
)

// OrdersCSVHandler downloads every order as CSV, newest first.
func OrdersCSVHandler(src OrderLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := src.List(r.Context())
		if err != nil {
			slog.Error("exports: list orders failed", slog.Any("err", err))
			respond.Error(w, r, http.StatusInternalServerError, "failed to list orders")
			return
		}
		var buf bytes.Buffer
		if err := writeOrdersCSV(&buf, Rows(list)); err != nil {
			slog.Error("exports: write csv failed", slog.Any("err", err))
			respond.Error(w, r, http.StatusInternalServerError, "failed to export csv")
			return
		}
		respond.Attachment(w, "text/csv; charset=utf-8", fileName("csv"), buf.Bytes())
	}
}

// OrdersXLSXHandler downloads every order as a workbook, newest first.
func OrdersXLSXHandler(src OrderLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := src.List(r.Context())
		if err != nil {
			slog.Error("exports: list orders failed", slog.Any("err", err))
			respond.Error(w, r, http.StatusInternalServerError, "failed to list orders")
			return
		}
		data, err := ordersWorkbook(Rows(list))
		if err != nil {
			slog.Error("exports: write workbook failed", slog.Any("err", err))
			respond.Error(w, r, http.StatusInternalServerError, "failed to export workbook")
			return
		}
		respond.Attachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", fileName("xlsx"), data)
	}
}

func fileName(ext string) string {
	return "bestallningar-" + time.Now().Format("2006-01-02") + "." + ext
}
