package main

import (
	"QRBoxer/internal/auth"
	"QRBoxer/internal/config"
	"QRBoxer/internal/handlers"
	"QRBoxer/internal/middleware"
	"QRBoxer/internal/repo"
	"QRBoxer/internal/service"
	"net/http"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	// явный teardown хранилища
	defer func() {
		if err := repo.CloseDB(gormDB); err != nil {
			sugar.Errorw("Failed to close database", "error", err)
		}
	}()

	userRepo := repo.NewUserRepository(gormDB)
	moveRepo := repo.NewMoveRepository(gormDB)
	boxRepo := repo.NewBoxRepository(gormDB)
	itemRepo := repo.NewItemRepository(gormDB)

	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg.AuthSecret, cfg.TokenTTL)

	userService := service.NewUserService(userRepo, hasher, cfg.UserDeletePolicy)
	invService := service.NewInventoryService(moveRepo, boxRepo, itemRepo, sugar)

	h := handlers.NewHandler(userService, invService, tokens, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.DatabaseDSN,
		"UserDeletePolicy", cfg.UserDeletePolicy,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
