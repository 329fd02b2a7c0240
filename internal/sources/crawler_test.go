package sources

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/mwantia/cardindex/pkg/db/models"
)

// fakeAdapter serves a fixed folder tree from memory
type fakeAdapter struct {
	roots      map[string]*Folder
	subfolders map[string][]Folder
	images     map[string][]Image

	failFolders map[string]error
	failImages  map[string]error
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{
		roots:       make(map[string]*Folder),
		subfolders:  make(map[string][]Folder),
		images:      make(map[string][]Image),
		failFolders: make(map[string]error),
		failImages:  make(map[string]error),
	}
}

func (f *fakeAdapter) Identifier() models.SourceType {
	return models.SourceTypeGoogleDrive
}

func (f *fakeAdapter) DownloadLink(driveID string) string {
	return "https://example.com/" + driveID
}

func (f *fakeAdapter) ResolveRootFolders(ctx context.Context, srcs []models.Source) (map[string]*Folder, error) {
	folders := make(map[string]*Folder, len(srcs))
	for _, src := range srcs {
		folders[src.Key] = f.roots[src.Key]
	}
	return folders, nil
}

func (f *fakeAdapter) ListFolders(ctx context.Context, folder Folder) ([]Folder, error) {
	if err := f.failFolders[folder.ID]; err != nil {
		return nil, err
	}
	return f.subfolders[folder.ID], nil
}

func (f *fakeAdapter) ListImages(ctx context.Context, folder Folder) ([]Image, error) {
	if err := f.failImages[folder.ID]; err != nil {
		return nil, err
	}
	return f.images[folder.ID], nil
}

func imageIDs(images []Image) []string {
	ids := make([]string, 0, len(images))
	for _, img := range images {
		ids = append(ids, img.ID)
	}
	sort.Strings(ids)
	return ids
}

func TestExploreWalksNestedFolders(t *testing.T) {
	adapter := newFakeAdapter()
	root := Folder{ID: "root", Name: "Example Drive"}
	adapter.subfolders["root"] = []Folder{
		{ID: "a", Name: "Cards"},
		{ID: "b", Name: "Tokens"},
	}
	adapter.subfolders["a"] = []Folder{{ID: "a1", Name: "Basics"}}
	adapter.images["root"] = []Image{{ID: "img-root", Name: "Root.png"}}
	adapter.images["a"] = []Image{{ID: "img-a", Name: "A.png"}, {ID: "img-a2", Name: "A2.png"}}
	adapter.images["a1"] = []Image{{ID: "img-a1", Name: "A1.png"}}
	adapter.images["b"] = []Image{{ID: "img-b", Name: "B.png"}}

	crawler := NewCrawler(adapter, DefaultWorkers, testLogger())
	images := crawler.Explore(context.Background(), testSource(), root)

	want := []string{"img-a", "img-a1", "img-a2", "img-b", "img-root"}
	got := imageIDs(images)
	if len(got) != len(want) {
		t.Fatalf("got %d images, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got images %v, want %v", got, want)
		}
	}
}

func TestExploreSurvivesFolderFailures(t *testing.T) {
	adapter := newFakeAdapter()
	root := Folder{ID: "root", Name: "Example Drive"}
	adapter.subfolders["root"] = []Folder{
		{ID: "broken", Name: "Broken"},
		{ID: "ok", Name: "OK"},
	}
	adapter.failFolders["broken"] = errors.New("remote error")
	adapter.failImages["broken"] = errors.New("remote error")
	adapter.images["ok"] = []Image{{ID: "img-ok", Name: "OK.png"}}
	adapter.images["root"] = []Image{{ID: "img-root", Name: "Root.png"}}

	crawler := NewCrawler(adapter, 2, testLogger())
	images := crawler.Explore(context.Background(), testSource(), root)

	got := imageIDs(images)
	want := []string{"img-ok", "img-root"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got images %v, want %v", got, want)
	}
}
