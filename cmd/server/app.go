package main

import (
	"context"

	routes "github.com/bragboard/bragboard/internal/api"
	"github.com/bragboard/bragboard/internal/config"
	"github.com/bragboard/bragboard/internal/db"
	"github.com/bragboard/bragboard/internal/models"
	"github.com/bragboard/bragboard/pkg/logger"
	storage "github.com/bragboard/bragboard/pkg/redis"
	"github.com/bragboard/bragboard/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()

	log, err := logger.NewLogger()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer log.Close()

	// Redis is optional: without REDIS_ADDR the auth middleware simply skips
	// its user cache.
	var rclient *storage.RedisClient
	if cfg.RedisAddr != "" {
		rclient, err = storage.NewRedis(ctx, cfg.RedisAddr, "")
		if err != nil {
			log.Error(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs("Failed to initialize Redis")
			panic(err)
		}
		defer rclient.Close(log)
	}

	gormDB, err := db.NewDB(ctx, cfg.DSN(), models.RegisterModels(), db.WithLogger(log))
	if err != nil {
		log.Error(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs("Failed to initialize database")
		panic("DB init failed")
	}
	defer db.CloseDB(log)

	app := fiber.New()
	routes.NewRoutes(app, cfg, gormDB, log, rclient)

	log.Info(ctx).WithMeta(utils.Map{"addr": cfg.ServerAddr}).Logs("Server starting")
	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Error(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs("Server stopped")
	}
}
