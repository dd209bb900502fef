package printfiles

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"monterhyra/frontend/shared/respond"
)

const (
	zipContentType = "application/zip"
	pdfContentType = "application/pdf"

	// StatusHeader carries the run status on archive downloads.
	StatusHeader = "X-Print-Status"
	// FailuresHeader carries the number of wall failures on archive downloads.
	FailuresHeader = "X-Print-Failures"
)

type storageWallsRequest struct {
	Width     float64   `json:"width"`
	Depth     float64   `json:"depth"`
	Height    float64   `json:"height"`
	FreeWalls FreeWalls `json:"freeWalls"`
	PrintType string    `json:"printType"`
	// Logo is an optional data URL placed centered on every wall.
	Logo      string    `json:"logo,omitempty"`
}

type archiveRequest struct {
	PrintType string       `json:"printType"`
	Category  WallCategory `json:"category,omitempty"`
	Walls     []WallDesign `json:"walls"`
}

type wallRequest struct {
	PrintType string     `json:"printType"`
	Wall      WallDesign `json:"wall"`
}

// StorageWallsHandler returns initial designs for the free sides of a
// storage room, with the logo fitted onto each wall when one is sent.
func StorageWallsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req storageWallsRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			respond.Error(w, r, http.StatusBadRequest, "invalid request")
			return
		}
		pt, err := ParsePrintType(req.PrintType)
		if err != nil {
			respond.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if req.Width <= 0 || req.Depth <= 0 || req.Height <= 0 {
			respond.Error(w, r, http.StatusBadRequest, "dimensions must be positive")
			return
		}
		designs := StorageWalls(req.Width, req.Depth, req.Height, req.FreeWalls, pt)
		if req.Logo != "" && len(designs) > 0 {
			designs, err = WithLogo(designs, req.Logo)
			if err != nil {
				respond.Error(w, r, http.StatusBadRequest, err.Error())
				return
			}
		}
		respond.JSON(w, r, http.StatusOK, designs)
	}
}

// ArchiveHandler renders the posted walls and returns the ZIP. A partial run
// still downloads; the status headers tell the client to warn. A failed run
// answers with the structured result instead of an archive.
func ArchiveHandler(gen *Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req archiveRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			respond.Error(w, r, http.StatusBadRequest, "invalid request")
			return
		}
		pt, err := ParsePrintType(req.PrintType)
		if err != nil {
			respond.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}
		category := req.Category
		if category == "" {
			category = WallStorage
		}
		for i := range req.Walls {
			if req.Walls[i].Category == "" {
				req.Walls[i].Category = category
			}
		}

		result, err := gen.Run(r.Context(), req.Walls, pt)
		if err != nil {
			if errors.Is(err, ErrNoWalls) || errors.Is(err, ErrNothingRendered) {
				respond.JSON(w, r, http.StatusUnprocessableEntity, result)
				return
			}
			slog.Error("printfiles: run failed", slog.Any("err", err))
			respond.Error(w, r, http.StatusInternalServerError, "failed to generate print files")
			return
		}
		w.Header().Set(StatusHeader, string(result.Status))
		w.Header().Set(FailuresHeader, strconv.Itoa(len(result.Failures)))
		respond.Attachment(w, zipContentType, ArchiveName(category, pt), result.Archive)
	}
}

// WallHandler renders a single wall PDF.
func WallHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req wallRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			respond.Error(w, r, http.StatusBadRequest, "invalid request")
			return
		}
		var pt PrintType
		if req.PrintType != "" {
			parsed, err := ParsePrintType(req.PrintType)
			if err != nil {
				respond.Error(w, r, http.StatusBadRequest, err.Error())
				return
			}
			pt = parsed
		}
		doc, failures, err := RenderWall(req.Wall, pt)
		if err != nil {
			respond.Error(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
		status := StatusSucceeded
		if len(failures) > 0 {
			status = StatusPartial
		}
		w.Header().Set(StatusHeader, string(status))
		w.Header().Set(FailuresHeader, strconv.Itoa(len(failures)))
		respond.Attachment(w, pdfContentType, doc.Name, doc.Bytes)
	}
}
