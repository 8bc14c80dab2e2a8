package main

import (
	"fmt"
	"time"

	"kanbanroom/configs"
	v1 "kanbanroom/internal/api/v1"
	"kanbanroom/internal/api/v1/handlers"
	"kanbanroom/internal/cache"
	"kanbanroom/internal/middleware"
	"kanbanroom/internal/store"
	"kanbanroom/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

func main() {
	// Inisialisasi logger
	logger.InitLoggers()
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	// Load config
	cfg := configs.LoadConfig()

	// Room store hidup di memori; state hilang saat proses restart
	roomStore := store.NewRoomStore()

	// Snapshot cache opsional (Redis); nil berarti cache dimatikan
	var snapshotCache *cache.SnapshotCache
	if cfg.RedisEnabled {
		snapshotCache = cache.Connect(cfg)
		defer snapshotCache.Close()
		logger.SystemLogger.Info("Redis Connected")
	}

	h := handlers.NewHandler(roomStore, snapshotCache)

	app := fiber.New()

	// Middleware
	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, x-user-id, x-room-code",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	// Daftarkan route
	v1.RegisterRoutes(app, h, roomStore)

	addr := fmt.Sprintf(":%d", cfg.AppPort)
	logger.SystemLogger.Info("Application ready", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
