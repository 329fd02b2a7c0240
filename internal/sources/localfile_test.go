package sources

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/mwantia/cardindex/pkg/db/models"
	"github.com/spf13/afero"
)

func writePNG(t *testing.T, fs afero.Fs, path string, width, height int) {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	if err := afero.WriteFile(fs, path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestLocalFileResolveRootFolders(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/library/drive", 0o755); err != nil {
		t.Fatalf("failed to create directories: %v", err)
	}

	adapter := NewLocalFileAdapterFS(fs, "/library", testLogger())

	roots, err := adapter.ResolveRootFolders(context.Background(), []models.Source{
		{Key: "rel", DriveID: "drive"},
		{Key: "abs", DriveID: "/library/drive"},
		{Key: "missing", DriveID: "nope"},
	})
	if err != nil {
		t.Fatalf("ResolveRootFolders failed: %v", err)
	}

	if roots["rel"] == nil || roots["rel"].ID != "/library/drive" {
		t.Errorf("relative root = %+v, want /library/drive", roots["rel"])
	}
	if roots["abs"] == nil || roots["abs"].ID != "/library/drive" {
		t.Errorf("absolute root = %+v, want /library/drive", roots["abs"])
	}
	if roots["missing"] != nil {
		t.Errorf("missing root should resolve to nil, got %+v", roots["missing"])
	}
}

func TestLocalFileListFoldersAndImages(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/library/drive/Tokens", 0o755); err != nil {
		t.Fatalf("failed to create directories: %v", err)
	}
	writePNG(t, fs, "/library/drive/Fireball.png", 10, 1110)
	writePNG(t, fs, "/library/drive/Tokens/Goblin.png", 10, 800)
	if err := afero.WriteFile(fs, "/library/drive/notes.txt", []byte("skip me"), 0o644); err != nil {
		t.Fatalf("failed to write text file: %v", err)
	}
	if err := afero.WriteFile(fs, "/library/drive/broken.png", []byte("not a png"), 0o644); err != nil {
		t.Fatalf("failed to write broken image: %v", err)
	}

	adapter := NewLocalFileAdapterFS(fs, "/library", testLogger())
	ctx := context.Background()
	root := Folder{ID: "/library/drive", Name: "drive"}

	folders, err := adapter.ListFolders(ctx, root)
	if err != nil {
		t.Fatalf("ListFolders failed: %v", err)
	}
	if len(folders) != 1 || folders[0].Name != "Tokens" {
		t.Fatalf("folders = %+v, want single Tokens folder", folders)
	}

	images, err := adapter.ListImages(ctx, root)
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	// notes.txt and the undecodable png are both skipped
	if len(images) != 1 {
		t.Fatalf("images = %+v, want single decodable png", images)
	}
	if images[0].Name != "Fireball.png" || images[0].Height != 1110 {
		t.Errorf("image = %q height %d, want Fireball.png/1110", images[0].Name, images[0].Height)
	}
	if images[0].Size == 0 {
		t.Errorf("image size should be recorded, got 0")
	}

	sub, err := adapter.ListImages(ctx, folders[0])
	if err != nil {
		t.Fatalf("ListImages on subfolder failed: %v", err)
	}
	if len(sub) != 1 || sub[0].Height != 800 {
		t.Fatalf("subfolder images = %+v, want Goblin.png at height 800", sub)
	}
}
