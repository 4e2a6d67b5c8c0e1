package handlers

import (
	"QRBoxer/internal/service"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// MoveHandler — CRUD по переездам.
type MoveHandler struct {
	Inventory *service.InventoryService
	Logger    *zap.SugaredLogger
}

// NewMoveHandler создаёт хендлер переездов
func NewMoveHandler(inv *service.InventoryService, logger *zap.SugaredLogger) *MoveHandler {
	return &MoveHandler{Inventory: inv, Logger: logger}
}

type moveRequest struct {
	Location string `json:"location"`
	Date     string `json:"date"`
}

func (h *MoveHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Create move: invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}
	var date time.Time
	if req.Date != "" {
		d, err := parseDate(req.Date)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "date must be YYYY-MM-DD"})
			return
		}
		date = d
	}

	m, err := h.Inventory.CreateMove(r.Context(), id, req.Location, date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMoveDTO(m))
}

func (h *MoveHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	moves, err := h.Inventory.ListMoves(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]moveDTO, 0, len(moves))
	for i := range moves {
		out = append(out, toMoveDTO(&moves[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *MoveHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	moveID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	m, err := h.Inventory.GetMove(r.Context(), id, moveID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMoveDTO(m))
}

func (h *MoveHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	moveID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Location *string `json:"location"`
		Date     *string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}
	upd := service.MoveUpdate{Location: req.Location}
	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "date must be YYYY-MM-DD"})
			return
		}
		upd.Date = &d
	}

	m, err := h.Inventory.UpdateMove(r.Context(), id, moveID, upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMoveDTO(m))
}

func (h *MoveHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	moveID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Inventory.DeleteMove(r.Context(), id, moveID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
