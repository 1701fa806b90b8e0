// Package export serves a live board as a downloadable document.
package export

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/inamate/rigidgroup/internal/collab"
	"github.com/inamate/rigidgroup/internal/document"
)

type Handler struct {
	boards *collab.Registry
}

func NewHandler(boards *collab.Registry) *Handler {
	return &Handler{boards: boards}
}

var contentTypes = map[document.Format]string{
	document.FormatTOML: "application/toml",
	document.FormatJSON: "application/json",
}

// ExportBoard writes the board's current document. The format query
// parameter picks toml (the default) or json.
func (h *Handler) ExportBoard(w http.ResponseWriter, r *http.Request) {
	boardID := mux.Vars(r)["boardId"]

	format := document.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = document.FormatTOML
	}
	contentType, ok := contentTypes[format]
	if !ok {
		http.Error(w, "invalid format: must be toml or json", http.StatusBadRequest)
		return
	}

	bs, err := h.boards.Get(boardID)
	switch {
	case errors.Is(err, collab.ErrBoardNotFound):
		http.Error(w, "board not found", http.StatusNotFound)
		return
	case errors.Is(err, collab.ErrInvalidBoardID):
		http.Error(w, "invalid board id", http.StatusBadRequest)
		return
	case err != nil:
		slog.Error("open board", "board", boardID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	doc, err := bs.Export()
	if err != nil {
		slog.Error("export board", "board", boardID, "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	data, err := doc.Encode(format)
	if err != nil {
		slog.Error("encode board", "board", boardID, "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	name := sanitize(doc.Board.Name)
	if name == "" {
		name = boardID
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, name, format))
	w.WriteHeader(http.StatusOK)
	w.Write(data)

	slog.Info("board exported", "board", boardID, "format", format, "bytes", len(data))
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
}
