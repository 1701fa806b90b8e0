package collab

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/inamate/rigidgroup/internal/auth"
	"github.com/inamate/rigidgroup/internal/document"
)

// Handler upgrades /ws/board/{boardId} requests into hub clients. The
// sample board accepts anonymous users; every other board needs a token
// in the "token" query parameter.
type Handler struct {
	hub            *Hub
	auth           *auth.Service
	originPatterns []string
}

func NewHandler(hub *Hub, authSvc *auth.Service, originPatterns []string) *Handler {
	return &Handler{hub: hub, auth: authSvc, originPatterns: originPatterns}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	boardID := mux.Vars(r)["boardId"]

	var userID, displayName string
	if token := r.URL.Query().Get("token"); token != "" {
		user, err := h.auth.ParseToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		userID, displayName = user.ID, user.DisplayName
	} else if boardID == document.SampleName {
		userID = "anon-" + uuid.New().String()[:8]
		displayName = "Anonymous"
	} else {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	if _, err := h.hub.boards.Get(boardID); err != nil {
		switch {
		case errors.Is(err, ErrBoardNotFound):
			http.Error(w, "board not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidBoardID):
			http.Error(w, "invalid board id", http.StatusBadRequest)
		default:
			slog.Error("open board", "board", boardID, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(h.hub, conn, userID, displayName, boardID, uuid.New().String())
	client.Serve(r.Context())
}
