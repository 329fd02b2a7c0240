// Package sources implements the source synchronization pipeline: remote
// adapters, the folder crawler, the image classifier and the orchestrator
// that reconciles each source against the catalog.
package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/mwantia/cardindex/internal/config"
	"github.com/mwantia/cardindex/pkg/db/models"
	"github.com/mwantia/cardindex/pkg/log"
)

// Folder describes one remote folder. Transient; never persisted.
type Folder struct {
	ID      string
	Name    string
	Parents []string
}

// Image describes one remote image file. Transient; never persisted.
type Image struct {
	ID          string
	Name        string
	CreatedTime time.Time
	Folder      Folder
	Height      int
	Size        int64
}

// Adapter is the capability set implemented per source type variant.
type Adapter interface {
	// Identifier returns the source type this adapter serves
	Identifier() models.SourceType

	// DownloadLink returns a direct download URL for an indexed file,
	// or an empty string if the variant has no such concept
	DownloadLink(driveID string) string

	// ResolveRootFolders batch-resolves each source's configured root
	// folder. A source whose root cannot be retrieved maps to nil rather
	// than failing the batch.
	ResolveRootFolders(ctx context.Context, srcs []models.Source) (map[string]*Folder, error)

	// ListFolders returns the folders directly inside the given folder
	ListFolders(ctx context.Context, folder Folder) ([]Folder, error)

	// ListImages returns all images directly inside the given folder,
	// excluding files flagged as trashed by the remote provider.
	// Pagination is handled transparently.
	ListImages(ctx context.Context, folder Folder) ([]Image, error)
}

// Registry maps source type variants to their adapter implementations
type Registry struct {
	adapters map[models.SourceType]Adapter
}

// NewRegistry builds the default adapter registry from configuration
func NewRegistry(cfg *config.BaseConfig, logger log.LoggerService) *Registry {
	return &Registry{
		adapters: map[models.SourceType]Adapter{
			models.SourceTypeGoogleDrive: NewGoogleDriveAdapter(cfg.Drive, logger),
			models.SourceTypeLocalFile:   NewLocalFileAdapter(cfg.Sync.LocalRoot, logger),
			models.SourceTypeAWSS3:       &S3Adapter{},
		},
	}
}

// For resolves the adapter for a source type. Variants without an adapter
// signal ErrNotImplemented instead of silently no-oping.
func (r *Registry) For(sourceType models.SourceType) (Adapter, error) {
	adapter, ok := r.adapters[sourceType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotImplemented, sourceType)
	}
	return adapter, nil
}
