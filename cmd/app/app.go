package app

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"campdirectory/internal/config"
	"campdirectory/internal/database"
	"campdirectory/internal/geocoder"
	handlers "campdirectory/internal/handler"
	"campdirectory/internal/logger"
	"campdirectory/internal/mailer"
	"campdirectory/internal/repository"
	"campdirectory/internal/server"
	"campdirectory/internal/service"
	"campdirectory/internal/storage"
)

// App holds every long-lived dependency of the API process.
type App struct {
	Cfg      *config.Config
	DB       *database.DB
	Repo     *repository.Repository
	Storage  storage.Storage
	Services *service.Service
	Handlers *handlers.Handlers
}

// New connects to the database, applies migrations and wires the services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.ConnectDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := db.RunMigrations(ctx); err != nil {
		return nil, multierr.Append(err, db.CloseDB())
	}

	store, err := storage.New(ctx, cfg)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to initialise storage: %w", err), db.CloseDB())
	}

	var geo geocoder.Geocoder
	if cfg.Geocoder.APIKey != "" {
		geo = geocoder.NewMapQuest(cfg.Geocoder)
	} else {
		logger.Default().Warn("GEOCODER_API_KEY is not set, listings will not be geocoded")
	}

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, store, mailer.NewSMTPMailer(cfg.SMTP), geo)

	return &App{
		Cfg:      cfg,
		DB:       db,
		Repo:     repo,
		Storage:  store,
		Services: services,
		Handlers: handlers.NewHandlers(services, db, cfg),
	}, nil
}

// Run serves the API until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	srv := server.New(a.Cfg, server.NewRouter(a.Handlers, a.Storage, a.Cfg))
	return server.Run(ctx, srv)
}

func (a *App) Close() error {
	var err error
	if c, ok := a.Storage.(interface{ Close() error }); ok {
		err = multierr.Append(err, c.Close())
	}
	return multierr.Append(err, a.DB.CloseDB())
}
