package handlers

import (
	"QRBoxer/internal/auth"
	"QRBoxer/internal/config"
	"QRBoxer/internal/middleware"
	"QRBoxer/internal/service"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserHandler — регистрация, логин, статус и удаление учётной записи.
type UserHandler struct {
	UserService *service.UserService
	Tokens      *auth.TokenService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

// NewUserHandler создаёт хендлер пользователей
func NewUserHandler(userService *service.UserService, tokens *auth.TokenService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Tokens: tokens, Logger: logger, Config: cfg}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}

// Register создаёт пользователя и сразу логинит его: токен уходит
// и в cookie, и в теле ответа.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Register: invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.Logger.Warnw("Register: failed", "username", req.Username, "error", err)
		writeError(w, err)
		return
	}

	id := auth.Identity{Username: user.Username, Admin: user.Admin}
	token, err := middleware.SetAuthCookie(w, h.Tokens, id)
	if err != nil {
		h.Logger.Errorw("Register: token issue failed", "username", user.Username, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, Username: user.Username, Admin: user.Admin})
}

// Login проверяет учётные данные и выдаёт токен.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Login: invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		// причина отказа наружу не уходит
		writeError(w, err)
		return
	}

	id := auth.Identity{Username: user.Username, Admin: user.Admin}
	token, err := middleware.SetAuthCookie(w, h.Tokens, id)
	if err != nil {
		h.Logger.Errorw("Login: token issue failed", "username", user.Username, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, Username: user.Username, Admin: user.Admin})
}

// Status — диагностика аутентификации текущего запроса.
func (h *UserHandler) Status(w http.ResponseWriter, r *http.Request) {
	if id, ok := middleware.GetIdentityFromContext(r.Context()); ok {
		writeJSON(w, http.StatusOK, map[string]string{"result": fmt.Sprintf("User = %s", id.Username)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "anonymous"})
}

// Delete удаляет учётную запись согласно политике UserDeletePolicy.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	username := chi.URLParam(r, "username")

	if err := h.UserService.Delete(r.Context(), id, username); err != nil {
		h.Logger.Warnw("Delete user: failed", "username", username, "by", id.Username, "error", err)
		writeError(w, err)
		return
	}
	h.Logger.Infow("user deleted", "username", username, "by", id.Username)
	w.WriteHeader(http.StatusNoContent)
}
