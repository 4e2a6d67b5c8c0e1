package handlers

import (
	"QRBoxer/internal/service"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ItemHandler — CRUD по вещам.
type ItemHandler struct {
	Inventory *service.InventoryService
	Logger    *zap.SugaredLogger
}

// NewItemHandler создаёт хендлер вещей
func NewItemHandler(inv *service.InventoryService, logger *zap.SugaredLogger) *ItemHandler {
	return &ItemHandler{Inventory: inv, Logger: logger}
}

type itemRequest struct {
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Create кладёт вещь в коробку {id}.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	boxID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Create item: invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	it, err := h.Inventory.CreateItem(r.Context(), id, boxID, req.Description, req.Image)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toItemDTO(it))
}

// List — «мои вещи»: всё, чем владеет пользователь по цепочке;
// администратору — вещи всех.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	items, err := h.Inventory.ListItems(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]itemDTO, 0, len(items))
	for i := range items {
		out = append(out, toItemDTO(&items[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// ListForBox возвращает вещи коробки {id}.
func (h *ItemHandler) ListForBox(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	boxID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	items, err := h.Inventory.ListItemsForBox(r.Context(), id, boxID)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]itemDTO, 0, len(items))
	for i := range items {
		out = append(out, toItemDTO(&items[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	it, err := h.Inventory.GetItem(r.Context(), id, itemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemDTO(it))
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Description *string `json:"description"`
		Image       *string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	it, err := h.Inventory.UpdateItem(r.Context(), id, itemID, service.ItemUpdate{
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemDTO(it))
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Inventory.DeleteItem(r.Context(), id, itemID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
