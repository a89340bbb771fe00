package bootstrap

import (
	"context"
	"fmt"

	"github.com/osse101/BrandishEvents_Go/internal/config"
	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/economy"
	"github.com/osse101/BrandishEvents_Go/internal/lifecycle"
	"github.com/osse101/BrandishEvents_Go/internal/lifecycle/teamfight"
	"github.com/osse101/BrandishEvents_Go/internal/lifecycle/zonecontrol"
	"github.com/osse101/BrandishEvents_Go/internal/metrics"
	"github.com/osse101/BrandishEvents_Go/internal/scheduler"
	"github.com/osse101/BrandishEvents_Go/internal/server"
	"github.com/osse101/BrandishEvents_Go/internal/store"
	"github.com/osse101/BrandishEvents_Go/internal/worker"
	"github.com/osse101/BrandishEvents_Go/internal/world"
)

// Variants maps every supported event variant to its round logic
var Variants = map[domain.Variant]lifecycle.Factory{
	domain.VariantTeamFight:   teamfight.New,
	domain.VariantZoneControl: zonecontrol.New,
}

// App is the fully wired service
type App struct {
	Config    *config.Config
	Accounts  store.Accounts
	Events    *EventSystem
	World     *world.Memory
	Economy   *economy.Service
	Scheduler *scheduler.Scheduler
	Pool      *worker.Pool
	Timers    *worker.RoundTimers
	Manager   *lifecycle.Manager
	Server    *server.Server
}

// Build opens the store, loads the catalog and wires every component. Nothing
// runs until Start.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	catalog, err := config.LoadCatalog(cfg.EventsPath, cfg.RewardsPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	accounts, ready, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	events, err := InitializeEventSystem(cfg)
	if err != nil {
		_ = accounts.Close()
		return nil, err
	}

	app := &App{
		Config:    cfg,
		Accounts:  accounts,
		Events:    events,
		World:     world.NewMemory(cfg.InventorySize),
		Scheduler: scheduler.New(scheduler.WithObserver(metrics.SchedulerObserver{})),
		Pool:      worker.NewPool(cfg.WorkerCount, PoolQueueSize),
		Timers:    worker.NewRoundTimers(),
	}

	app.Economy = economy.NewService(accounts, app.World, events.Bus, catalog.Rewards, economy.Config{
		AllowNegativeBalance: cfg.AllowNegativeBalance,
		TransferCodeTTL:      cfg.TransferCodeTTL,
		MaxPendingTransfers:  economy.DefaultMaxPendingTransfers,
	})

	deps := lifecycle.Deps{
		World:     app.World,
		Factions:  app.World,
		Notifier:  BuildNotifier(cfg, accounts),
		Rewards:   app.Economy,
		Bus:       events.Bus,
		Pool:      app.Pool,
		Timers:    app.Timers,
		Scheduler: app.Scheduler,
	}
	app.Manager = lifecycle.NewManager(ctx, deps, Variants, catalog.Events)

	opts := server.Options{
		Port:        cfg.Port,
		APIKey:      cfg.APIKey,
		Events:      app.Manager,
		Economy:     app.Economy,
		Accounts:    accounts,
		Ready:       ready,
		LoadCatalog: app.loadCatalog,
	}
	app.Server = server.NewServer(opts)
	return app, nil
}

func (a *App) loadCatalog() (*config.Catalog, error) {
	return config.LoadCatalog(a.Config.EventsPath, a.Config.RewardsPath)
}

// Start launches the worker pool, the tick loops and the window poll. The
// HTTP server is started separately by the caller.
func (a *App) Start(ctx context.Context) {
	a.Pool.Start()
	a.Scheduler.Start(ctx)
	a.Manager.Start(ctx)
}
