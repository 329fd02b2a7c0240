package sources

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/mwantia/cardindex/pkg/db/models"
	"github.com/mwantia/cardindex/pkg/log"
	"github.com/spf13/afero"
)

// LocalFileAdapter serves LOCAL_FILE sources from a directory tree on disk.
// A source's DriveID holds its root directory, relative to the configured
// local root (or absolute when no root is configured).
type LocalFileAdapter struct {
	fs   afero.Fs
	root string
	log  log.LoggerService
}

func NewLocalFileAdapter(root string, logger log.LoggerService) *LocalFileAdapter {
	return &LocalFileAdapter{
		fs:   afero.NewOsFs(),
		root: root,
		log:  logger.Named("localfile"),
	}
}

// NewLocalFileAdapterFS creates a local adapter over an explicit filesystem
func NewLocalFileAdapterFS(fs afero.Fs, root string, logger log.LoggerService) *LocalFileAdapter {
	return &LocalFileAdapter{
		fs:   fs,
		root: root,
		log:  logger.Named("localfile"),
	}
}

func (lfa *LocalFileAdapter) Identifier() models.SourceType {
	return models.SourceTypeLocalFile
}

func (lfa *LocalFileAdapter) DownloadLink(driveID string) string {
	// Local files are not downloadable through a link
	return ""
}

func (lfa *LocalFileAdapter) ResolveRootFolders(ctx context.Context, srcs []models.Source) (map[string]*Folder, error) {
	folders := make(map[string]*Folder, len(srcs))
	for _, src := range srcs {
		path := src.DriveID
		if !filepath.IsAbs(path) {
			path = filepath.Join(lfa.root, path)
		}

		info, err := lfa.fs.Stat(path)
		if err != nil || !info.IsDir() {
			lfa.log.Warn("Failed to resolve root directory for source '%s': %v", src.Key, err)
			folders[src.Key] = nil
			continue
		}

		folders[src.Key] = &Folder{ID: path, Name: info.Name()}
	}
	return folders, nil
}

func (lfa *LocalFileAdapter) ListFolders(ctx context.Context, folder Folder) ([]Folder, error) {
	entries, err := afero.ReadDir(lfa.fs, folder.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory '%s': %w", folder.ID, err)
	}

	var folders []Folder
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folders = append(folders, Folder{
			ID:      filepath.Join(folder.ID, entry.Name()),
			Name:    entry.Name(),
			Parents: []string{folder.ID},
		})
	}
	return folders, nil
}

func (lfa *LocalFileAdapter) ListImages(ctx context.Context, folder Folder) ([]Image, error) {
	entries, err := afero.ReadDir(lfa.fs, folder.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory '%s': %w", folder.ID, err)
	}

	var images []Image
	for _, entry := range entries {
		if entry.IsDir() || !isImageName(entry.Name()) {
			continue
		}

		path := filepath.Join(folder.ID, entry.Name())
		height, err := lfa.imageHeight(path)
		if err != nil {
			lfa.log.Warn("Failed to decode image dimensions for '%s': %v", path, err)
			continue
		}

		images = append(images, Image{
			ID:          path,
			Name:        entry.Name(),
			CreatedTime: entry.ModTime(),
			Folder:      folder,
			Height:      height,
			Size:        entry.Size(),
		})
	}
	return images, nil
}

func (lfa *LocalFileAdapter) imageHeight(path string) (int, error) {
	f, err := lfa.fs.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, err
	}
	return cfg.Height, nil
}

func isImageName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}
