// Package app wires the lost-and-found bot together: infrastructure
// bootstrap, domain services, the conversation engine and the Telegram
// runtime options.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/BerikbaiNurai/Lost-Found/conversation"
	coredatabase "github.com/BerikbaiNurai/Lost-Found/core/database"
	"github.com/BerikbaiNurai/Lost-Found/core/logger"
	coretelegram "github.com/BerikbaiNurai/Lost-Found/core/telegram"
	"github.com/BerikbaiNurai/Lost-Found/core/telegram/router"
	"github.com/BerikbaiNurai/Lost-Found/core/telegram/state"
	"github.com/BerikbaiNurai/Lost-Found/service"
	"github.com/BerikbaiNurai/Lost-Found/storage"
)

// App holds the assembled application.
type App struct {
	cfg      *Config
	db       *sqlx.DB
	services *service.Services
	fsm      state.Manager
	engine   *conversation.Engine
}

// Bootstrap initializes the logger, connects to Postgres, applies
// migrations and builds the domain services and conversation engine.
func Bootstrap(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config provided")
	}

	if err := logger.Init(cfg.CoreConfig()); err != nil {
		return nil, fmt.Errorf("app: logger init failed: %w", err)
	}

	db, err := coredatabase.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("app: database initialization failed: %w", err)
	}
	if err := coredatabase.RunMigrations(cfg.Database); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("app: migrations failed: %w", err)
	}

	services := service.New(storage.NewRepos(db))
	fsm := state.NewMemoryManager()
	engine := conversation.NewEngine(fsm, services.Items, services.Users, services.Stats)

	return &App{
		cfg:      cfg,
		db:       db,
		services: services,
		fsm:      fsm,
		engine:   engine,
	}, nil
}

// TelegramRunOptions assembles the registry, routes and middlewares for the
// Telegram runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	if err := a.engine.Register(reg); err != nil {
		return coretelegram.RunOptions{}, fmt.Errorf("app: handler registration failed: %w", err)
	}

	core := a.cfg.CoreConfig()

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: core.Telegram.AdminID,
	})
	routes = append(routes, router.MessageRoutes(a.fsm, reg, router.MessageOptions{})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	return coretelegram.RunOptions{
		Config:      core,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(core),
		Routes:      routes,
		OnStop: func(_ context.Context, _ coretelegram.Runtime) error {
			return a.Close()
		},
	}, nil
}

// Close releases infrastructure held by the app.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
