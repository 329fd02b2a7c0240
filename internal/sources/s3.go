package sources

import (
	"context"

	"github.com/mwantia/cardindex/pkg/db/models"
)

// S3Adapter is a placeholder for AWS_S3 sources. Every operation signals
// ErrNotImplemented so that misconfigured sources fail loudly instead of
// silently indexing nothing.
type S3Adapter struct{}

func (s3a *S3Adapter) Identifier() models.SourceType {
	return models.SourceTypeAWSS3
}

func (s3a *S3Adapter) DownloadLink(driveID string) string {
	return ""
}

func (s3a *S3Adapter) ResolveRootFolders(ctx context.Context, srcs []models.Source) (map[string]*Folder, error) {
	return nil, ErrNotImplemented
}

func (s3a *S3Adapter) ListFolders(ctx context.Context, folder Folder) ([]Folder, error) {
	return nil, ErrNotImplemented
}

func (s3a *S3Adapter) ListImages(ctx context.Context, folder Folder) ([]Image, error) {
	return nil, ErrNotImplemented
}
