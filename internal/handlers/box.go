package handlers

import (
	"QRBoxer/internal/service"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BoxHandler — CRUD по коробкам.
type BoxHandler struct {
	Inventory *service.InventoryService
	Logger    *zap.SugaredLogger
}

// NewBoxHandler создаёт хендлер коробок
func NewBoxHandler(inv *service.InventoryService, logger *zap.SugaredLogger) *BoxHandler {
	return &BoxHandler{Inventory: inv, Logger: logger}
}

type boxRequest struct {
	Room string `json:"room"`
}

// Create заводит коробку в переезде {id}.
func (h *BoxHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	moveID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req boxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Create box: invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	b, err := h.Inventory.CreateBox(r.Context(), id, moveID, req.Room)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBoxDTO(b))
}

// ListForMove возвращает коробки переезда {id}.
func (h *BoxHandler) ListForMove(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	moveID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	boxes, err := h.Inventory.ListBoxesForMove(r.Context(), id, moveID)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]boxDTO, 0, len(boxes))
	for i := range boxes {
		out = append(out, toBoxDTO(&boxes[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *BoxHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	boxID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b, err := h.Inventory.GetBox(r.Context(), id, boxID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBoxDTO(b))
}

// GetByQRCode — поиск коробки по отсканированной наклейке.
func (h *BoxHandler) GetByQRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	code := chi.URLParam(r, "code")
	b, err := h.Inventory.GetBoxByQRCode(r.Context(), id, code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBoxDTO(b))
}

func (h *BoxHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	boxID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req boxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	b, err := h.Inventory.UpdateBox(r.Context(), id, boxID, req.Room)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBoxDTO(b))
}

func (h *BoxHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	boxID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Inventory.DeleteBox(r.Context(), id, boxID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
