package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/ping13/star-collector/app/api"
	"github.com/ping13/star-collector/app/cfg"
	"github.com/ping13/star-collector/app/config"
	"github.com/ping13/star-collector/app/database"
	"github.com/ping13/star-collector/app/feed"
	"github.com/ping13/star-collector/app/tasks"
	"github.com/ping13/star-collector/app/titles"
)

var errInvalidFeed = errors.New("invalid RSS feed")

type generateCommand struct {
	opts *cfg.Options
	ctx  context.Context
}

func (c *generateCommand) Execute(args []string) error {
	if err := setup(c.opts); err != nil {
		return err
	}

	doc, _, closeDB, err := collect(c.ctx, c.opts)
	if err != nil {
		return err
	}
	defer closeDB()

	output, err := feed.NewGenerator(cfg.GetVersion()).Run(doc)
	if err != nil {
		return fmt.Errorf("failed to generate feed: %w", err)
	}

	if c.opts.Output == "" {
		_, err = fmt.Fprint(os.Stdout, output)
		return err
	}

	if err := os.WriteFile(c.opts.Output, []byte(output), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.opts.Output, err)
	}
	slog.Info("Feed written", "path", c.opts.Output, "entries", doc.Len())

	return nil
}

type validateCommand struct {
	opts *cfg.Options

	Args struct {
		FeedFile string `positional-arg-name:"feedfile" description:"RSS file to validate"`
	} `positional-args:"yes" required:"yes"`
}

func (c *validateCommand) Execute(args []string) error {
	if err := setup(c.opts); err != nil {
		return err
	}

	data, err := os.ReadFile(c.Args.FeedFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.Args.FeedFile, err)
	}

	if err := feed.NewParser().Validate(data); err != nil {
		slog.Debug("Feed validation failed", "path", c.Args.FeedFile, "error", err)
		fmt.Fprintln(os.Stdout, "Invalid RSS feed")
		return errInvalidFeed
	}

	fmt.Fprintln(os.Stdout, "Valid RSS feed")
	return nil
}

type serveCommand struct {
	opts *cfg.Options
	ctx  context.Context

	Port   string `short:"p" long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the /api endpoints (optional)"`
}

func (c *serveCommand) Execute(args []string) error {
	if err := setup(c.opts); err != nil {
		return err
	}

	doc, titleRepo, closeDB, err := collect(c.ctx, c.opts)
	if err != nil {
		return err
	}
	defer closeDB()

	output, err := feed.NewGenerator(cfg.GetVersion()).Run(doc)
	if err != nil {
		return fmt.Errorf("failed to generate feed: %w", err)
	}

	snapshot := &api.Snapshot{Document: doc, XML: output, GeneratedAt: time.Now()}

	var counter api.TitleCounter
	if titleRepo != nil {
		counter = titleRepo
	}

	httpServer := &http.Server{
		Addr:         ":" + c.Port,
		Handler:      api.NewServer(api.NewHandler(snapshot, counter), c.APIKey),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", c.Port, "entries", doc.Len())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-c.ctx.Done():
		slog.Info("Shutting down server gracefully")
	case err := <-serverErr:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}

	slog.Info("HTTP server stopped")
	return nil
}

func setup(opts *cfg.Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	return cfg.SetupLogging(os.Stderr, opts)
}

// collect loads the configuration and runs one aggregation. The returned
// repository is nil when the title cache is disabled or unavailable.
func collect(ctx context.Context, opts *cfg.Options) (*feed.Document, *database.SQLTitleRepository, func(), error) {
	conf, err := config.NewLoader(opts.Config).WithEnvFile(opts.EnvFile).Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	titler, titleRepo, closeDB := newTitler(conf.Titles)

	httpClient := &http.Client{Timeout: conf.HTTP.GetTimeout()}

	doc, err := tasks.NewCollector(conf, opts.Limit, httpClient, titler).Run(ctx)
	if err != nil {
		closeDB()
		return nil, nil, nil, err
	}

	return doc, titleRepo, closeDB, nil
}

func newTitler(settings config.TitleSettings) (titles.Extractor, *database.SQLTitleRepository, func()) {
	heuristic := titles.NewHeuristic(settings.MaxWords)
	noop := func() {}

	if settings.DisableCache {
		return heuristic, nil, noop
	}

	db, err := database.NewConnection(settings.CachePath)
	if err != nil {
		slog.Warn("Title cache unavailable, continuing without it", "path", settings.CachePath, "error", err)
		return heuristic, nil, noop
	}

	repo := database.NewTitleRepository(db)
	closeDB := func() {
		if err := db.Close(); err != nil {
			slog.Warn("Failed to close title cache", "error", err)
		}
	}

	return titles.NewCached(heuristic, repo), repo, closeDB
}
