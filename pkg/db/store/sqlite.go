package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/mwantia/cardindex/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const insertBatchSize = 500

// SQLiteStore implements CatalogStore using SQLite
type SQLiteStore struct {
	db   *gorm.DB
	path string
}

// DB returns the underlying GORM database instance
func (s *SQLiteStore) DB() *gorm.DB {
	return s.db
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	Path     string
	LogLevel logger.LogLevel
}

// NewSQLiteStore creates a new SQLite-backed catalog store
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	// Default to silent logging
	if cfg.LogLevel == 0 {
		cfg.LogLevel = logger.Silent
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(cfg.LogLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &SQLiteStore{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Connect initializes the database connection
func (s *SQLiteStore) Connect(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	// SQLite only supports 1 writer
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// Migrate runs database migrations
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&models.Source{},
		&models.Card{},
		&models.Cardback{},
		&models.Token{},
		&models.DFCPair{},
		&models.MeldPair{},
	)
}

// Health checks database connectivity
func (s *SQLiteStore) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Source operations

func (s *SQLiteStore) UpsertSource(ctx context.Context, source *models.Source) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "drive_id", "drive_link", "description", "ordinal", "source_type", "updated_at",
		}),
	}).Create(source).Error
}

func (s *SQLiteStore) GetSourceByKey(ctx context.Context, key string) (*models.Source, error) {
	var source models.Source
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&source).Error
	if err != nil {
		return nil, err
	}
	return &source, nil
}

func (s *SQLiteStore) ListSources(ctx context.Context) ([]models.Source, error) {
	var sources []models.Source
	err := s.db.WithContext(ctx).Order("ordinal ASC").Find(&sources).Error
	return sources, err
}

// SourceSummary aggregates entry counts and the average DPI across all three
// entry types for one source. Display-only.
func (s *SQLiteStore) SourceSummary(ctx context.Context, sourceID uint) (*models.SourceSummary, error) {
	summary := &models.SourceSummary{}

	var totalDPI int64
	for _, model := range []any{&models.Card{}, &models.Cardback{}, &models.Token{}} {
		var count int64
		if err := s.db.WithContext(ctx).Model(model).Where("source_id = ?", sourceID).Count(&count).Error; err != nil {
			return nil, err
		}

		if count > 0 {
			var sum sql.NullInt64
			err := s.db.WithContext(ctx).Model(model).
				Where("source_id = ?", sourceID).
				Select("SUM(dpi)").Scan(&sum).Error
			if err != nil {
				return nil, err
			}
			totalDPI += sum.Int64
		}

		switch model.(type) {
		case *models.Card:
			summary.Cards = count
		case *models.Cardback:
			summary.Cardbacks = count
		case *models.Token:
			summary.Tokens = count
		}
	}

	if total := summary.Total(); total > 0 {
		summary.AvgDPI = int(totalDPI / total)
	}
	return summary, nil
}

// Catalog entry operations

func (s *SQLiteStore) CardsBySource(ctx context.Context, sourceID uint) ([]models.Card, error) {
	var cards []models.Card
	err := s.db.WithContext(ctx).
		Where("source_id = ?", sourceID).
		Order("priority DESC").
		Find(&cards).Error
	return cards, err
}

func (s *SQLiteStore) CardbacksBySource(ctx context.Context, sourceID uint) ([]models.Cardback, error) {
	var cardbacks []models.Cardback
	err := s.db.WithContext(ctx).
		Where("source_id = ?", sourceID).
		Order("priority DESC").
		Find(&cardbacks).Error
	return cardbacks, err
}

func (s *SQLiteStore) TokensBySource(ctx context.Context, sourceID uint) ([]models.Token, error) {
	var tokens []models.Token
	err := s.db.WithContext(ctx).
		Where("source_id = ?", sourceID).
		Order("priority DESC").
		Find(&tokens).Error
	return tokens, err
}

func (s *SQLiteStore) ReplaceCards(ctx context.Context, sourceID uint, cards []models.Card) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("source_id = ?", sourceID).Delete(&models.Card{}).Error; err != nil {
			return err
		}
		if len(cards) == 0 {
			return nil
		}
		return tx.Omit("Source").CreateInBatches(cards, insertBatchSize).Error
	})
}

func (s *SQLiteStore) ReplaceCardbacks(ctx context.Context, sourceID uint, cardbacks []models.Cardback) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("source_id = ?", sourceID).Delete(&models.Cardback{}).Error; err != nil {
			return err
		}
		if len(cardbacks) == 0 {
			return nil
		}
		return tx.Omit("Source").CreateInBatches(cardbacks, insertBatchSize).Error
	})
}

func (s *SQLiteStore) ReplaceTokens(ctx context.Context, sourceID uint, tokens []models.Token) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("source_id = ?", sourceID).Delete(&models.Token{}).Error; err != nil {
			return err
		}
		if len(tokens) == 0 {
			return nil
		}
		return tx.Omit("Source").CreateInBatches(tokens, insertBatchSize).Error
	})
}

// Game reference data operations

func (s *SQLiteStore) ReplaceDFCPairs(ctx context.Context, pairs []models.DFCPair) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.DFCPair{}).Error; err != nil {
			return err
		}
		if len(pairs) == 0 {
			return nil
		}
		return tx.CreateInBatches(pairs, insertBatchSize).Error
	})
}

func (s *SQLiteStore) ReplaceMeldPairs(ctx context.Context, pairs []models.MeldPair) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.MeldPair{}).Error; err != nil {
			return err
		}
		if len(pairs) == 0 {
			return nil
		}
		return tx.CreateInBatches(pairs, insertBatchSize).Error
	})
}

func (s *SQLiteStore) ListDFCPairs(ctx context.Context) ([]models.DFCPair, error) {
	var pairs []models.DFCPair
	err := s.db.WithContext(ctx).Find(&pairs).Error
	return pairs, err
}

func (s *SQLiteStore) ListMeldPairs(ctx context.Context) ([]models.MeldPair, error) {
	var pairs []models.MeldPair
	err := s.db.WithContext(ctx).Find(&pairs).Error
	return pairs, err
}
