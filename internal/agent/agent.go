package agent

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/mwantia/fabric/pkg/container"

	"github.com/mwantia/cardindex/internal/config"
	"github.com/mwantia/cardindex/internal/sources"
	"github.com/mwantia/cardindex/pkg/db/migrations"
	"github.com/mwantia/cardindex/pkg/db/store"
	"github.com/mwantia/cardindex/pkg/log"
)

// CardIndexAgent periodically re-synchronises every configured source
// against its remote origin until interrupted.
type CardIndexAgent struct {
	mutex sync.RWMutex
	wait  sync.WaitGroup

	cfg   *config.BaseConfig
	sc    *container.ServiceContainer
	log   log.LoggerService
	store *store.SQLiteStore
}

func NewAgent(cfg *config.BaseConfig) *CardIndexAgent {
	return &CardIndexAgent{
		cfg: cfg,
		sc:  container.NewServiceContainer(),
		log: log.NewLoggerService("cardindex", cfg.Log),
	}
}

func (cia *CardIndexAgent) setupServices(ctx context.Context) error {
	st, err := store.NewSQLiteStore(store.SQLiteConfig{
		Path: cia.cfg.Database.Path,
	})
	if err != nil {
		return fmt.Errorf("failed to create catalog store: %w", err)
	}
	if err := st.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect catalog store: %w", err)
	}
	if err := migrations.NewMigrator(st.DB()).Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate catalog store: %w", err)
	}
	cia.store = st

	errs := container.Errors{}

	cia.log.Debug("Registering 'LoggerService'...")
	errs.Add(container.Register[log.LoggerServiceImpl](cia.sc,
		container.With[log.LoggerService](),
		container.WithInstance(cia.log)))

	cia.log.Debug("Registering 'CatalogStore'...")
	errs.Add(container.Register[store.SQLiteStore](cia.sc,
		container.With[store.CatalogStore](),
		container.WithInstance(st)))

	return errs.Errors()
}

func (cia *CardIndexAgent) Serve(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	cia.mutex.Lock()

	if err := cia.setupServices(ctx); err != nil {
		cia.mutex.Unlock()
		return err
	}

	interval, err := time.ParseDuration(cia.cfg.Agent.Interval)
	if err != nil || interval <= 0 {
		interval = time.Hour
	}

	registry := sources.NewRegistry(cia.cfg, cia.log)
	updater := sources.NewUpdater(cia.store, registry, cia.cfg.Sync.Workers, cia.cfg.Sync.MaxImageSize, cia.log)

	cia.wait.Add(1)
	go cia.runSyncLoop(ctx, updater, interval)

	cia.mutex.Unlock()
	<-ctx.Done()

	timeout, err := time.ParseDuration(cia.cfg.ShutdownTimeout)
	if err != nil {
		// Set default of 60 seconds if error
		timeout = 60 * time.Second
	}

	shutdown, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := cia.sc.Cleanup(shutdown); err != nil {
		return fmt.Errorf("failed to complete service container cleanup: %w", err)
	}

	cia.wait.Wait()
	return cia.store.Close()
}

// runSyncLoop performs one full sync immediately and then on every tick
func (cia *CardIndexAgent) runSyncLoop(ctx context.Context, updater *sources.Updater, interval time.Duration) {
	defer cia.wait.Done()

	logger := cia.log.Named("agent")
	logger.Info("Starting periodic sync every %s", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := updater.SyncAll(ctx); err != nil {
			logger.Error("Full sync failed: %v", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
