package sources

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mwantia/cardindex/pkg/db/models"
	"github.com/mwantia/cardindex/pkg/db/store"
	"github.com/mwantia/cardindex/pkg/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Updater sequences crawl, classification and catalog reconciliation per
// source, batching sources by type so each adapter resolves its roots in one
// pass.
type Updater struct {
	store    store.CatalogStore
	registry *Registry
	workers  int
	maxSize  int64
	log      log.LoggerService
}

func NewUpdater(st store.CatalogStore, registry *Registry, workers int, maxSize int64, logger log.LoggerService) *Updater {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Updater{
		store:    st,
		registry: registry,
		workers:  workers,
		maxSize:  maxSize,
		log:      logger.Named("sync"),
	}
}

// SyncOne updates the catalog for a single source identified by key.
// An unknown key returns ErrSourceKeyNotFound carrying the valid keys.
func (u *Updater) SyncOne(ctx context.Context, key string) error {
	source, err := u.store.GetSourceByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			keys, listErr := u.sourceKeys(ctx)
			if listErr != nil {
				return fmt.Errorf("%w: %s", ErrSourceKeyNotFound, key)
			}
			return fmt.Errorf("%w: %s (available: %s)", ErrSourceKeyNotFound, key, strings.Join(keys, ", "))
		}
		return fmt.Errorf("failed to look up source '%s': %w", key, err)
	}

	adapter, err := u.registry.For(source.SourceType)
	if err != nil {
		return err
	}

	roots, err := adapter.ResolveRootFolders(ctx, []models.Source{*source})
	if err != nil {
		return fmt.Errorf("failed to resolve root folder for source '%s': %w", key, err)
	}

	root := roots[source.Key]
	if root == nil {
		return fmt.Errorf("%w: %s", ErrSourceUnavailable, key)
	}

	return u.syncSource(ctx, *source, adapter, *root)
}

// SyncAll updates the catalog for every configured source. Sources are
// grouped by type so each adapter batch-resolves its root folders once; a
// source whose root fails to resolve is skipped without aborting siblings.
func (u *Updater) SyncAll(ctx context.Context) error {
	srcs, err := u.store.ListSources(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	u.log.Info("Updating the catalog for all %d source/s", len(srcs))

	// Grouping assumes sources are pre-sorted by type
	sort.SliceStable(srcs, func(i, j int) bool {
		return srcs[i].SourceType < srcs[j].SourceType
	})

	for _, group := range lo.PartitionBy(srcs, func(s models.Source) models.SourceType {
		return s.SourceType
	}) {
		sourceType := group[0].SourceType

		adapter, err := u.registry.For(sourceType)
		if err != nil {
			u.log.Error("Skipping %d source/s of type '%s': %v", len(group), sourceType, err)
			continue
		}

		names := lo.Map(group, func(s models.Source, _ int) string { return s.Name })
		u.log.Info("Identified the following sources of type '%s': %s",
			sourceType.Label(), strings.Join(names, ", "))

		roots, err := adapter.ResolveRootFolders(ctx, group)
		if err != nil {
			u.log.Error("Failed to resolve root folders for type '%s': %v", sourceType, err)
			continue
		}

		for _, source := range group {
			root := roots[source.Key]
			if root == nil {
				u.log.Warn("Skipping unavailable source '%s'", source.Key)
				continue
			}

			if err := u.syncSource(ctx, source, adapter, *root); err != nil {
				u.log.Error("Failed to sync source '%s': %v", source.Key, err)
			}
		}
	}

	return nil
}

// syncSource runs the crawl, classify and reconcile steps for one source
func (u *Updater) syncSource(ctx context.Context, source models.Source, adapter Adapter, root Folder) error {
	crawler := NewCrawler(adapter, u.workers, u.log)
	images := crawler.Explore(ctx, source, root)

	classifier := NewClassifier(u.maxSize, u.log)
	cards, cardbacks, tokens := classifier.Classify(source, images)

	start := time.Now()
	u.log.Info("Synchronising entries to the catalog for source '%s'...", source.Name)

	// The three type-scoped replacements are independent transactions; a
	// crash between them is healed by the next full sync
	if err := u.store.ReplaceCards(ctx, source.ID, cards); err != nil {
		return fmt.Errorf("failed to replace cards: %w", err)
	}
	if err := u.store.ReplaceCardbacks(ctx, source.ID, cardbacks); err != nil {
		return fmt.Errorf("failed to replace cardbacks: %w", err)
	}
	if err := u.store.ReplaceTokens(ctx, source.ID, tokens); err != nil {
		return fmt.Errorf("failed to replace tokens: %w", err)
	}

	u.log.Info("Synchronised source '%s' in %.2fs", source.Name, time.Since(start).Seconds())
	return nil
}

func (u *Updater) sourceKeys(ctx context.Context) ([]string, error) {
	srcs, err := u.store.ListSources(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(srcs, func(s models.Source, _ int) string { return s.Key }), nil
}
