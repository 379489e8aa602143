package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "servicedesk/docs"
	"servicedesk/internal/adapter/http/routes"
	"servicedesk/internal/config"
	"servicedesk/pkg/logger"
)

// @title           Service Desk API
// @version         1.0
// @description     Repair-shop service orders, quotations and inventory, backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("[config] failed loading configuration")
	}

	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := routes.Run(ctx, cfg); err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to startup the application")
		os.Exit(1)
	}
}
