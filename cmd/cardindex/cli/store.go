package cli

import (
	"context"
	"fmt"

	"github.com/mwantia/cardindex/internal/config"
	"github.com/mwantia/cardindex/pkg/db/migrations"
	"github.com/mwantia/cardindex/pkg/db/store"
)

// openStore creates, connects and migrates the catalog store
func openStore(ctx context.Context, cfg *config.BaseConfig) (*store.SQLiteStore, error) {
	st, err := store.NewSQLiteStore(store.SQLiteConfig{
		Path: cfg.Database.Path,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog store: %w", err)
	}

	if err := st.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect catalog store: %w", err)
	}

	if err := migrations.NewMigrator(st.DB()).Migrate(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to migrate catalog store: %w", err)
	}

	return st, nil
}
