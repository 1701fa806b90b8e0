package boardapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inamate/rigidgroup/internal/auth"
	"github.com/inamate/rigidgroup/internal/board"
	"github.com/inamate/rigidgroup/internal/collab"
	"github.com/inamate/rigidgroup/internal/engine"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type moveRequest struct {
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Direct bool     `json:"direct"`
}

// Routes registers the board endpoints on r. Reads are public; writes go
// through requireAuth.
func (h *Handler) Routes(r *mux.Router, requireAuth func(http.Handler) http.Handler) {
	r.HandleFunc("/boards/{boardId}", h.Get).Methods("GET")
	r.HandleFunc("/boards/{boardId}/groups", h.Groups).Methods("GET")
	r.Handle("/boards/{boardId}/points/{point}/move", requireAuth(http.HandlerFunc(h.MovePoint))).Methods("POST")
	r.Handle("/boards/{boardId}/elements/{element}", requireAuth(http.HandlerFunc(h.RemoveElement))).Methods("DELETE")
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Get(mux.Vars(r)["boardId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) Groups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.Groups(mux.Vars(r)["boardId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *Handler) MovePoint(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.X == nil || req.Y == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "x and y are required"})
		return
	}

	b, err := h.service.MovePoint(vars["boardId"], vars["point"], *req.X, *req.Y, req.Direct)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	slog.Debug("point moved", "board", vars["boardId"], "point", vars["point"],
		"user", auth.UserIDFromContext(r.Context()))
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) RemoveElement(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	b, err := h.service.RemoveElement(vars["boardId"], vars["element"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	slog.Debug("element removed", "board", vars["boardId"], "element", vars["element"],
		"user", auth.UserIDFromContext(r.Context()))
	writeJSON(w, http.StatusOK, b)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, collab.ErrBoardNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "board not found"})
	case errors.Is(err, engine.ErrUnknownElement):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "element not found"})
	case errors.Is(err, collab.ErrInvalidBoardID), errors.Is(err, ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, board.ErrDerivedPoint), errors.Is(err, board.ErrWrongKind):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
