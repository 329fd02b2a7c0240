package store

import (
	"context"

	"github.com/mwantia/cardindex/pkg/db/models"
)

// CatalogStore defines the interface for database operations
type CatalogStore interface {
	// Lifecycle
	Connect(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error
	Health(ctx context.Context) error

	// Source operations
	UpsertSource(ctx context.Context, source *models.Source) error
	GetSourceByKey(ctx context.Context, key string) (*models.Source, error)
	ListSources(ctx context.Context) ([]models.Source, error)
	SourceSummary(ctx context.Context, sourceID uint) (*models.SourceSummary, error)

	// Catalog entry operations; each Replace* atomically removes the
	// source's existing entries of that type and bulk-inserts the new set
	CardsBySource(ctx context.Context, sourceID uint) ([]models.Card, error)
	CardbacksBySource(ctx context.Context, sourceID uint) ([]models.Cardback, error)
	TokensBySource(ctx context.Context, sourceID uint) ([]models.Token, error)
	ReplaceCards(ctx context.Context, sourceID uint, cards []models.Card) error
	ReplaceCardbacks(ctx context.Context, sourceID uint, cardbacks []models.Cardback) error
	ReplaceTokens(ctx context.Context, sourceID uint, tokens []models.Token) error

	// Game reference data operations
	ReplaceDFCPairs(ctx context.Context, pairs []models.DFCPair) error
	ReplaceMeldPairs(ctx context.Context, pairs []models.MeldPair) error
	ListDFCPairs(ctx context.Context) ([]models.DFCPair, error)
	ListMeldPairs(ctx context.Context) ([]models.MeldPair, error)
}
