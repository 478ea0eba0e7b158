package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/DjordjeVuckovic/title-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/title-hunter/internal/browse"
	"github.com/DjordjeVuckovic/title-hunter/internal/cache"
	"github.com/DjordjeVuckovic/title-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/title-hunter/internal/config"
	"github.com/DjordjeVuckovic/title-hunter/internal/domain"
	"github.com/DjordjeVuckovic/title-hunter/internal/review"
	"github.com/DjordjeVuckovic/title-hunter/internal/session"
	"github.com/DjordjeVuckovic/title-hunter/pkg/config/env"
)

const dotEnvPath = "cmd/title_cli/.env"

// catalogAPI is everything the client asks of the catalog.
type catalogAPI interface {
	browse.Searcher
	browse.DetailSource
	browse.Suggester
	browse.PeopleSource
	session.Authenticator
	review.Poster
	Home(ctx context.Context) (*domain.HomeResponse, error)
}

type app struct {
	cfg     *config.Config
	catalog catalogAPI
	cache   *cache.Cache
	log     *slog.Logger
	out     io.Writer
}

type appOptions struct {
	ConfigPath string
	APIBase    string
	Verbose    bool
	Out        io.Writer
	Err        io.Writer
}

func newApp(opts appOptions) (*app, error) {
	if err := env.LoadDotEnv(env.Mode(), dotEnvPath); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.APIBase != "" {
		cfg.Catalog.BaseURL = opts.APIBase
	}

	level := cfg.Log.SlogLevel()
	if opts.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(opts.Err, &slog.HandlerOptions{Level: level}))

	client, err := catalog.NewClient(cfg.Catalog.BaseURL, cfg.CatalogOptions(log)...)
	if err != nil {
		return nil, fmt.Errorf("create catalog client: %w", err)
	}
	log.Debug("Catalog client ready", "base_url", client.BaseURL())

	return &app{
		cfg:     cfg,
		catalog: client,
		cache:   cache.New(cfg.CacheConfig()),
		log:     log,
		out:     opts.Out,
	}, nil
}

func (a *app) browseOptions() []browse.Option {
	return []browse.Option{
		browse.WithCache(a.cache),
		browse.WithPageSize(a.cfg.Browse.PageSize),
		browse.WithLogger(a.log),
	}
}

// errorText returns the line shown to the user for a failed request.
func errorText(err error) string {
	var ve *apperr.ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, context.DeadlineExceeded):
		return "The catalog took too long to answer."
	case apperr.Is(err, apperr.NotFound):
		return "Not found."
	}
	if msg := apperr.ServerMessage(err); msg != "" {
		return msg
	}
	return "Could not reach the catalog. Please try again."
}

// reportedError marks a failure that was already shown to the user.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }

func (e reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err: err}
}
