package sources

import (
	"math"
	"strings"

	"github.com/mwantia/cardindex/internal/search"
	"github.com/mwantia/cardindex/pkg/db/models"
	"github.com/mwantia/cardindex/pkg/log"
)

const (
	// MaxImageSize is the hard ceiling on indexable image size in bytes
	MaxImageSize = 30_000_000

	// dpiHeightRatio calibrates DPI estimation: an image 1110 pixels tall
	// corresponds to 300 DPI
	dpiHeightRatio = 300.0 / 1110.0
)

// EstimateDPI derives a print DPI estimate from an image's pixel height,
// rounded to the nearest 10
func EstimateDPI(height int) int {
	return 10 * int(math.Round(float64(height)*dpiHeightRatio/10))
}

// Classifier validates discovered images and partitions them into typed
// catalog entries. Classification is total and mutually exclusive: every
// valid image lands in exactly one of cards, cardbacks or tokens.
type Classifier struct {
	maxSize int64
	log     log.LoggerService
}

func NewClassifier(maxSize int64, logger log.LoggerService) *Classifier {
	if maxSize <= 0 {
		maxSize = MaxImageSize
	}
	return &Classifier{
		maxSize: maxSize,
		log:     logger.Named("classify"),
	}
}

// Classify builds typed catalog entries for every valid image discovered in
// a source. Oversized or malformed-name images are skipped and logged; a bad
// image never affects its siblings.
func (cl *Classifier) Classify(source models.Source, images []Image) (cards []models.Card, cardbacks []models.Cardback, tokens []models.Token) {
	for _, img := range images {
		if img.Size > cl.maxSize {
			cl.log.Warn("Can't index this card: <%s> %s, size: %d bytes", img.ID, img.Name, img.Size)
			continue
		}

		stem, extension, ok := splitImageName(img.Name)
		if !ok {
			cl.log.Warn("Issue with parsing image name: %s", img.Name)
			continue
		}

		folderName := strings.ToLower(img.Folder.Name)
		sourceVerbose := source.Name

		// Stems containing ")" are named alternates/variants and sort
		// below plainly named images
		priority := 2
		if strings.Contains(stem, ")") {
			priority = 1
		}
		if strings.Contains(folderName, "basic") {
			priority += 5
			sourceVerbose += " Basics"
		}

		base := models.CardBase{
			DriveID:        img.ID,
			Name:           stem,
			Priority:       priority,
			SourceID:       source.ID,
			SourceVerbose:  sourceVerbose,
			DPI:            EstimateDPI(img.Height),
			Searchq:        search.ToSearchable(stem),
			SearchqKeyword: search.ToSearchable(stem),
			Extension:      extension,
			Date:           img.CreatedTime,
			Size:           img.Size,
		}

		switch {
		case strings.Contains(folderName, "token"):
			base.SourceVerbose = sourceVerbose + " Tokens"
			tokens = append(tokens, models.Token{CardBase: base})
		case strings.Contains(folderName, "cardbacks") || strings.Contains(folderName, "card backs"):
			base.SourceVerbose = sourceVerbose + " Cardbacks"
			cardbacks = append(cardbacks, models.Cardback{CardBase: base})
		default:
			cards = append(cards, models.Card{CardBase: base})
		}
	}

	cl.log.Info("Generated %d card/s, %d cardback/s and %d token/s for source '%s'",
		len(cards), len(cardbacks), len(tokens), source.Name)
	return cards, cardbacks, tokens
}

// splitImageName splits a file name on its last "." into stem and extension.
// Names without a "." or with an empty half are rejected.
func splitImageName(name string) (stem, extension string, ok bool) {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 || idx == len(name)-1 {
		return "", "", false
	}
	return name[:idx], name[idx+1:], true
}
