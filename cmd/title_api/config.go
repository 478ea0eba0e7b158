package main

import (
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/title-hunter/internal/config"
	"github.com/DjordjeVuckovic/title-hunter/pkg/config/env"
)

const dotEnvPath = "cmd/title_api/.env"

type AppConfig struct {
	ENV        string
	ConfigPath string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV:        os.Getenv("ENV"),
		ConfigPath: os.Getenv("CONFIG_PATH"),
	}
}

func (as *AppConfig) Load() (*config.Config, error) {
	err := env.LoadDotEnv(as.ENV, dotEnvPath)
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	cfg, err := config.Load(as.ConfigPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", as.ConfigPath, "error", err)
		return nil, err
	}
	return cfg, nil
}
