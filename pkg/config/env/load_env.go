package env

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file.
// The ENV_PATH environment variable overrides defaultPath. A missing file is
// an error only in local mode (mode "local" or empty).
func LoadDotEnv(mode string, defaultPath string) error {
	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		slog.Debug("ENV_PATH is not set, using default path", "defaultPath", defaultPath)
		envPath = defaultPath
	}

	if err := godotenv.Load(envPath); err != nil {
		if mode == "local" || mode == "" {
			return err
		}
		slog.Debug("Skipping .env ...", "path", envPath)
	}

	return nil
}

// Mode returns ENV, or "local" when unset.
func Mode() string {
	if m := os.Getenv("ENV"); m != "" {
		return m
	}
	return "local"
}
