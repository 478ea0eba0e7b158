package server

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/title-hunter/pkg/config/env"
	"github.com/DjordjeVuckovic/title-hunter/pkg/utils"
)

type Config struct {
	Port            string
	UseHttp2        bool
	CorsOrigins     []string
	ShutdownTimeout time.Duration
}

// LoadConfig reads the gateway settings from the environment. Loading a
// .env file is left to the caller.
func LoadConfig() (*Config, error) {
	port := env.String("PORT", "8081")
	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	shutdown, err := env.Duration("SHUTDOWN_TIMEOUT", GracefulShutdownTimeout)
	if err != nil {
		return nil, err
	}

	var origins []string
	if corsOriginsEnv := os.Getenv("CORS_ORIGINS"); corsOriginsEnv != "" {
		origins = utils.NonEmptyStrings(strings.Split(corsOriginsEnv, ","))
	}

	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &Config{
		Port:            port,
		UseHttp2:        env.Bool("USE_HTTP2", false),
		CorsOrigins:     origins,
		ShutdownTimeout: shutdown,
	}, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
