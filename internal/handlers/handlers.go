package handlers

import (
	"QRBoxer/internal/auth"
	"QRBoxer/internal/config"
	"QRBoxer/internal/middleware"
	"QRBoxer/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	invService *service.InventoryService,
	tokens *auth.TokenService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(tokens))

	// Handlers
	userHandler := NewUserHandler(userService, tokens, logger, config)
	moveHandler := NewMoveHandler(invService, logger)
	boxHandler := NewBoxHandler(invService, logger)
	itemHandler := NewItemHandler(invService, logger)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Post("/api/user/test", userHandler.Status)
	r.Delete("/api/user/{username}", userHandler.Delete)

	// Move routes
	r.Post("/api/moves", moveHandler.Create)
	r.Get("/api/moves", moveHandler.List)
	r.Get("/api/moves/{id}", moveHandler.Get)
	r.Patch("/api/moves/{id}", moveHandler.Update)
	r.Delete("/api/moves/{id}", moveHandler.Delete)
	r.Post("/api/moves/{id}/boxes", boxHandler.Create)
	r.Get("/api/moves/{id}/boxes", boxHandler.ListForMove)

	// Box routes
	r.Get("/api/boxes/{id}", boxHandler.Get)
	r.Get("/api/boxes/qr/{code}", boxHandler.GetByQRCode)
	r.Patch("/api/boxes/{id}", boxHandler.Update)
	r.Delete("/api/boxes/{id}", boxHandler.Delete)
	r.Post("/api/boxes/{id}/items", itemHandler.Create)
	r.Get("/api/boxes/{id}/items", itemHandler.ListForBox)

	// Item routes
	r.Get("/api/items", itemHandler.List)
	r.Get("/api/items/{id}", itemHandler.Get)
	r.Patch("/api/items/{id}", itemHandler.Update)
	r.Delete("/api/items/{id}", itemHandler.Delete)

	return &Handler{Router: r}
}
