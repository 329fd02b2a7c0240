package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mwantia/cardindex/internal/config"
	"github.com/mwantia/cardindex/pkg/db/models"
	"github.com/mwantia/cardindex/pkg/log"
	"github.com/mwantia/cardindex/pkg/network"
)

const drivePageSize = 500

// GoogleDriveAdapter serves GOOGLE_DRIVE sources through the Drive v3
// files API (files.get for roots, files.list with q-filters for traversal).
type GoogleDriveAdapter struct {
	cfg config.DriveConfig
	log log.LoggerService
}

func NewGoogleDriveAdapter(cfg config.DriveConfig, logger log.LoggerService) *GoogleDriveAdapter {
	return &GoogleDriveAdapter{
		cfg: cfg,
		log: logger.Named("drive"),
	}
}

func (gda *GoogleDriveAdapter) Identifier() models.SourceType {
	return models.SourceTypeGoogleDrive
}

func (gda *GoogleDriveAdapter) DownloadLink(driveID string) string {
	return fmt.Sprintf("https://drive.google.com/uc?id=%s&export=download", driveID)
}

// driveFile mirrors the subset of file metadata requested via `fields`
type driveFile struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Parents     []string `json:"parents"`
	Trashed     bool     `json:"trashed"`
	Size        string   `json:"size"`
	CreatedTime string   `json:"createdTime"`

	ImageMediaMetadata struct {
		Height int `json:"height"`
	} `json:"imageMediaMetadata"`
}

type driveFileList struct {
	NextPageToken string      `json:"nextPageToken"`
	Files         []driveFile `json:"files"`
}

func (gda *GoogleDriveAdapter) ResolveRootFolders(ctx context.Context, srcs []models.Source) (map[string]*Folder, error) {
	gda.log.Info("Retrieving Google Drive root folders for %d source/s...", len(srcs))

	folders := make(map[string]*Folder, len(srcs))
	for _, src := range srcs {
		folder, err := gda.getFile(ctx, src.DriveID)
		if err != nil {
			gda.log.Warn("Failed to resolve root folder for source '%s': %v", src.Key, err)
			folders[src.Key] = nil
			continue
		}

		folders[src.Key] = &Folder{ID: folder.ID, Name: folder.Name}
	}

	return folders, nil
}

func (gda *GoogleDriveAdapter) ListFolders(ctx context.Context, folder Folder) ([]Folder, error) {
	query := fmt.Sprintf("mimeType='application/vnd.google-apps.folder' and '%s' in parents", folder.ID)

	files, err := gda.listFiles(ctx, query, "files(id, name, parents)")
	if err != nil {
		return nil, fmt.Errorf("failed to list folders inside '%s': %w", folder.Name, err)
	}

	folders := make([]Folder, 0, len(files))
	for _, f := range files {
		folders = append(folders, Folder{ID: f.ID, Name: f.Name, Parents: f.Parents})
	}
	return folders, nil
}

func (gda *GoogleDriveAdapter) ListImages(ctx context.Context, folder Folder) ([]Image, error) {
	query := fmt.Sprintf("(mimeType contains 'image/png' or "+
		"mimeType contains 'image/jpg' or "+
		"mimeType contains 'image/jpeg') and "+
		"'%s' in parents", folder.ID)
	fields := "nextPageToken, files(id, name, trashed, size, parents, createdTime, imageMediaMetadata)"

	files, err := gda.listFiles(ctx, query, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to list images inside '%s': %w", folder.Name, err)
	}

	images := make([]Image, 0, len(files))
	for _, f := range files {
		if f.Trashed {
			continue
		}

		size, _ := strconv.ParseInt(f.Size, 10, 64)
		created, _ := time.Parse(time.RFC3339, f.CreatedTime)

		images = append(images, Image{
			ID:          f.ID,
			Name:        f.Name,
			CreatedTime: created,
			Folder:      folder,
			Height:      f.ImageMediaMetadata.Height,
			Size:        size,
		})
	}
	return images, nil
}

// getFile fetches metadata for a single file via files.get
func (gda *GoogleDriveAdapter) getFile(ctx context.Context, id string) (*driveFile, error) {
	endpoint := fmt.Sprintf("%s/files/%s", gda.cfg.Endpoint, url.PathEscape(id))

	var file driveFile
	if err := gda.getJSON(ctx, endpoint, url.Values{}, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// listFiles runs a files.list query, following nextPageToken cursors until
// the listing is exhausted
func (gda *GoogleDriveAdapter) listFiles(ctx context.Context, query, fields string) ([]driveFile, error) {
	endpoint := fmt.Sprintf("%s/files", gda.cfg.Endpoint)

	var files []driveFile
	pageToken := ""
	for {
		params := url.Values{}
		params.Set("q", query)
		params.Set("fields", fields)
		params.Set("pageSize", strconv.Itoa(drivePageSize))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var list driveFileList
		if err := gda.getJSON(ctx, endpoint, params, &list); err != nil {
			return nil, err
		}

		files = append(files, list.Files...)
		if list.NextPageToken == "" {
			break
		}
		pageToken = list.NextPageToken
	}

	return files, nil
}

func (gda *GoogleDriveAdapter) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	if gda.cfg.APIKey != "" {
		params.Set("key", gda.cfg.APIKey)
	}
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create drive request: %w", err)
	}

	resp, err := network.Client.Do(req)
	if err != nil {
		return fmt.Errorf("drive request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("drive returned status code %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode drive response: %w", err)
	}
	return nil
}
