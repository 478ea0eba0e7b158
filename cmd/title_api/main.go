// Package main is the read-only browse gateway in front of the catalog API.
package main

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/title-hunter/internal/api/router"
	"github.com/DjordjeVuckovic/title-hunter/internal/api/server"
	"github.com/DjordjeVuckovic/title-hunter/internal/cache"
	"github.com/DjordjeVuckovic/title-hunter/internal/catalog"
	pkgserver "github.com/DjordjeVuckovic/title-hunter/pkg/server"
)

func main() {
	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		os.Exit(1)
	}
	slog.SetLogLoggerLevel(cfg.Log.SlogLevel())

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	client, err := catalog.NewClient(cfg.Catalog.BaseURL, cfg.CatalogOptions(slog.Default())...)
	if err != nil {
		slog.Error("Failed to create catalog client", "error", err)
		os.Exit(1)
	}

	s := server.New(sCfg, pkgserver.HealthFunc(client.Ping)).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Title Hunter gateway is running")
	})

	browseRouter := router.NewBrowseRouter(s.Echo, client,
		router.WithCache(cache.New(cfg.CacheConfig())),
		router.WithPageSize(cfg.Browse.PageSize),
	)
	browseRouter.Bind()

	slog.Info("Catalog API", "base_url", client.BaseURL())

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
