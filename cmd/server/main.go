package main

import (
	"fmt"
	"log/slog"

	log "github.com/charmbracelet/log"

	"github.com/TeamSorcerers/app-financeiro-sub000/infra/initializer"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/app"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/config"
	"github.com/TeamSorcerers/app-financeiro-sub000/webapi"
)

// @title Financeiro API
// @version 1.0.0
// @description Personal and group finance tracking API
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := slog.Default()
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	a := app.New(deps, cfg)
	fiberApp := webapi.SetupApp(a)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)

	return fiberApp.Listen(addr)
}
