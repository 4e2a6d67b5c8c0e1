package handlers

import (
	"QRBoxer/internal/auth"
	"QRBoxer/internal/authz"
	"QRBoxer/internal/middleware"
	"QRBoxer/internal/model"
	"QRBoxer/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// dateLayout — формат даты переезда в JSON (как в исходных данных).
const dateLayout = "2006-01-02"

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError мапит ошибки сервисного слоя на HTTP-статусы.
// Наружу уходит структурированное сообщение, внутренние детали — только в лог.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrUsernameTaken):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, service.ErrUserDeleteDenied):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, authz.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// requireIdentity достаёт Identity из контекста; без неё — 401.
func requireIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return auth.Identity{}, false
	}
	return id, true
}

// pathID разбирает числовой параметр пути. Нечисловой id — NotFound,
// а не BadRequest: форма чужого URL ничего не должна раскрывать.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return 0, false
	}
	return id, true
}

// --- DTOs ---

type moveDTO struct {
	ID       int64  `json:"id"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Username string `json:"username"`
}

func toMoveDTO(m *model.Move) moveDTO {
	return moveDTO{ID: m.ID, Location: m.Location, Date: m.Date.Format(dateLayout), Username: m.Username}
}

type boxDTO struct {
	ID     int64  `json:"id"`
	Room   string `json:"room"`
	QRCode string `json:"qr_code"`
	Move   int64  `json:"move"`
}

func toBoxDTO(b *model.Box) boxDTO {
	return boxDTO{ID: b.ID, Room: b.Room, QRCode: b.QRCode, Move: b.MoveID}
}

type itemDTO struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Box         int64  `json:"box"`
}

func toItemDTO(it *model.Item) itemDTO {
	return itemDTO{ID: it.ID, Description: it.Description, Image: it.Image, Box: it.BoxID}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
