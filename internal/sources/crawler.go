package sources

import (
	"context"
	"sync"
	"time"

	"github.com/mwantia/cardindex/pkg/db/models"
	"github.com/mwantia/cardindex/pkg/log"
)

// DefaultWorkers bounds the number of concurrent image-listing calls
const DefaultWorkers = 5

// imageCollector is the shared accumulator appended to by pool workers.
// Appending is the only mutation, so a mutex-guarded slice is enough.
type imageCollector struct {
	mutex  sync.Mutex
	images []Image
}

func (c *imageCollector) Append(images []Image) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.images = append(c.images, images...)
}

// Crawler walks a source's folder tree and accumulates discovered images
type Crawler struct {
	adapter Adapter
	workers int
	log     log.LoggerService
}

func NewCrawler(adapter Adapter, workers int, logger log.LoggerService) *Crawler {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Crawler{
		adapter: adapter,
		workers: workers,
		log:     logger.Named("crawler"),
	}
}

// Explore traverses root and all nested folders and returns every image
// contained within them. Folder discovery runs synchronously on the calling
// goroutine while image listing fans out to a bounded worker pool, so the
// returned image order is not deterministic across runs. Downstream
// classification and storage do not depend on it.
func (c *Crawler) Explore(ctx context.Context, source models.Source, root Folder) []Image {
	start := time.Now()
	c.log.Info("Locating images for source '%s'...", source.Name)

	collector := &imageCollector{}
	sem := make(chan struct{}, c.workers)
	var wait sync.WaitGroup

	// Stack-based worklist; the most recently discovered folder is
	// expanded next
	stack := []Folder{root}
	for len(stack) > 0 {
		folder := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		wait.Add(1)
		go func(folder Folder) {
			defer wait.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			images, err := c.adapter.ListImages(ctx, folder)
			if err != nil {
				c.log.Warn("Failed to list images in folder '%s': %v", folder.Name, err)
				return
			}
			collector.Append(images)
		}(folder)

		subfolders, err := c.adapter.ListFolders(ctx, folder)
		if err != nil {
			c.log.Warn("Failed to list folders inside '%s': %v", folder.Name, err)
			continue
		}
		stack = append(stack, subfolders...)
	}

	wait.Wait()

	c.log.Info("Located %d image/s for source '%s' in %.2fs",
		len(collector.images), source.Name, time.Since(start).Seconds())
	return collector.images
}
