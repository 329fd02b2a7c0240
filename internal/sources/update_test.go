package sources

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwantia/cardindex/pkg/db/models"
	"github.com/mwantia/cardindex/pkg/db/store"
)

func testStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	st, err := store.NewSQLiteStore(store.SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "catalog.db"),
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	ctx := context.Background()
	if err := st.Connect(ctx); err != nil {
		t.Fatalf("failed to connect store: %v", err)
	}
	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate store: %v", err)
	}

	t.Cleanup(func() { st.Close() })
	return st
}

func testRegistry(adapter Adapter) *Registry {
	return &Registry{
		adapters: map[models.SourceType]Adapter{
			models.SourceTypeGoogleDrive: adapter,
			models.SourceTypeAWSS3:       &S3Adapter{},
		},
	}
}

func TestSyncAllIsolatesUnavailableSources(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)

	sourceA := &models.Source{Key: "a", Name: "Source A", DriveID: "root-a", SourceType: models.SourceTypeGoogleDrive}
	sourceB := &models.Source{Key: "b", Name: "Source B", DriveID: "root-b", SourceType: models.SourceTypeGoogleDrive}
	for _, src := range []*models.Source{sourceA, sourceB} {
		if err := st.UpsertSource(ctx, src); err != nil {
			t.Fatalf("failed to upsert source: %v", err)
		}
	}

	adapter := newFakeAdapter()
	// Source A's root fails to resolve; source B syncs normally
	adapter.roots["b"] = &Folder{ID: "root-b", Name: "Source B"}
	adapter.images["root-b"] = []Image{
		{ID: "img-1", Name: "Goblin.png", Size: 100, Height: 800, Folder: Folder{ID: "root-b", Name: "Tokens"}},
	}

	updater := NewUpdater(st, testRegistry(adapter), 2, MaxImageSize, testLogger())
	if err := updater.SyncAll(ctx); err != nil {
		t.Fatalf("SyncAll failed: %v", err)
	}

	tokens, err := st.TokensBySource(ctx, sourceB.ID)
	if err != nil {
		t.Fatalf("failed to load tokens: %v", err)
	}
	if len(tokens) != 1 {
		t.Fatalf("expected one token for source b, got %d", len(tokens))
	}
	if tokens[0].Name != "Goblin" || tokens[0].DPI != 220 {
		t.Errorf("token = %q dpi %d, want Goblin/220", tokens[0].Name, tokens[0].DPI)
	}
	if tokens[0].SourceVerbose != "Source B Tokens" {
		t.Errorf("source verbose = %q, want %q", tokens[0].SourceVerbose, "Source B Tokens")
	}

	cards, err := st.CardsBySource(ctx, sourceA.ID)
	if err != nil {
		t.Fatalf("failed to load cards: %v", err)
	}
	if len(cards) != 0 {
		t.Errorf("unavailable source a should have no entries, got %d", len(cards))
	}
}

func TestSyncOneReplacesPriorEntries(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)

	source := &models.Source{Key: "a", Name: "Source A", DriveID: "root-a", SourceType: models.SourceTypeGoogleDrive}
	if err := st.UpsertSource(ctx, source); err != nil {
		t.Fatalf("failed to upsert source: %v", err)
	}

	adapter := newFakeAdapter()
	adapter.roots["a"] = &Folder{ID: "root-a", Name: "Source A"}
	adapter.images["root-a"] = []Image{
		{ID: "img-1", Name: "One.png", Size: 100, Height: 1110, Folder: Folder{ID: "root-a", Name: "Cards"}},
		{ID: "img-2", Name: "Two.png", Size: 100, Height: 1110, Folder: Folder{ID: "root-a", Name: "Cards"}},
	}

	updater := NewUpdater(st, testRegistry(adapter), 2, MaxImageSize, testLogger())
	if err := updater.SyncOne(ctx, "a"); err != nil {
		t.Fatalf("first sync failed: %v", err)
	}

	// Second sync sees a different remote state
	adapter.images["root-a"] = []Image{
		{ID: "img-3", Name: "Three.png", Size: 100, Height: 1110, Folder: Folder{ID: "root-a", Name: "Cards"}},
	}
	if err := updater.SyncOne(ctx, "a"); err != nil {
		t.Fatalf("second sync failed: %v", err)
	}

	cards, err := st.CardsBySource(ctx, source.ID)
	if err != nil {
		t.Fatalf("failed to load cards: %v", err)
	}
	if len(cards) != 1 || cards[0].DriveID != "img-3" {
		t.Fatalf("expected only the second set to survive, got %+v", cards)
	}
}

func TestSyncOneUnknownKey(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)

	source := &models.Source{Key: "known", Name: "Known", DriveID: "root", SourceType: models.SourceTypeGoogleDrive}
	if err := st.UpsertSource(ctx, source); err != nil {
		t.Fatalf("failed to upsert source: %v", err)
	}

	updater := NewUpdater(st, testRegistry(newFakeAdapter()), 2, MaxImageSize, testLogger())

	err := updater.SyncOne(ctx, "missing")
	if !errors.Is(err, ErrSourceKeyNotFound) {
		t.Fatalf("expected ErrSourceKeyNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "known") {
		t.Errorf("error should list available keys, got %q", err.Error())
	}
}

func TestSyncOneUnavailableRoot(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)

	source := &models.Source{Key: "a", Name: "Source A", DriveID: "root-a", SourceType: models.SourceTypeGoogleDrive}
	if err := st.UpsertSource(ctx, source); err != nil {
		t.Fatalf("failed to upsert source: %v", err)
	}

	// Adapter has no root for the source
	updater := NewUpdater(st, testRegistry(newFakeAdapter()), 2, MaxImageSize, testLogger())

	if err := updater.SyncOne(ctx, "a"); !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestSyncOneNotImplementedSourceType(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)

	source := &models.Source{Key: "bucket", Name: "Bucket", DriveID: "s3://cards", SourceType: models.SourceTypeAWSS3}
	if err := st.UpsertSource(ctx, source); err != nil {
		t.Fatalf("failed to upsert source: %v", err)
	}

	updater := NewUpdater(st, testRegistry(newFakeAdapter()), 2, MaxImageSize, testLogger())

	if err := updater.SyncOne(ctx, "bucket"); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
}
