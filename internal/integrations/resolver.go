package integrations

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/mwantia/cardindex/pkg/db/models"
	"github.com/mwantia/cardindex/pkg/log"
)

// Resolver turns an arbitrary deck URL into a normalized plain-text
// decklist using the configured game integration's import sites and DFC
// reference data.
type Resolver struct {
	game  GameIntegration
	pairs []models.DFCPair
	log   log.LoggerService
}

func NewResolver(game GameIntegration, pairs []models.DFCPair, logger log.LoggerService) *Resolver {
	return &Resolver{
		game:  game,
		pairs: pairs,
		log:   logger.Named("import"),
	}
}

// QueryImportSite identifies the deck site behind rawURL, fetches the
// decklist through that site's contract and normalizes it to one
// "<qty> <name>" line per distinct card.
func (r *Resolver) QueryImportSite(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Hostname() == "" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDeckSite, rawURL)
	}

	var site ImportSite
	for _, candidate := range r.game.ImportSites() {
		if candidate.Recognizes(u) {
			site = candidate
			break
		}
	}
	if site == nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDeckSite, u.Hostname())
	}

	r.log.Info("Importing decklist from %s: %s", site.Name(), rawURL)

	raw, err := site.Fetch(ctx, u)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrImportFailed, site.Name(), err)
	}

	decklist := r.Normalize(raw)
	if decklist == "" {
		return "", fmt.Errorf("%w: %s returned an empty decklist", ErrImportFailed, site.Name())
	}
	return decklist, nil
}

var quantityLine = regexp.MustCompile(`^(\d+)x?\s+(.+)$`)

type decklistEntry struct {
	name  string
	faces map[string]int
}

func (e *decklistEntry) quantity() int {
	qty := 0
	for _, n := range e.faces {
		if n > qty {
			qty = n
		}
	}
	return qty
}

// Normalize reduces raw decklist text to one line per distinct card in
// first-seen order. Quantities for repeated names accumulate; the two faces
// of a double-faced card collapse into a single "Front // Back" line, with
// the larger face quantity winning since both faces describe the same
// physical card.
func (r *Resolver) Normalize(raw string) string {
	fronts := make(map[string]models.DFCPair, len(r.pairs))
	backs := make(map[string]models.DFCPair, len(r.pairs))
	for _, pair := range r.pairs {
		fronts[strings.ToLower(pair.Front)] = pair
		backs[strings.ToLower(pair.Back)] = pair
	}

	var order []string
	entries := make(map[string]*decklistEntry)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		qty := 1
		name := line
		if match := quantityLine.FindStringSubmatch(line); match != nil {
			qty, _ = strconv.Atoi(match[1])
			name = strings.TrimSpace(match[2])
		}
		if name == "" || qty <= 0 {
			continue
		}

		canonical, face := r.canonicalName(name, fronts, backs)
		key := strings.ToLower(canonical)

		entry, ok := entries[key]
		if !ok {
			entry = &decklistEntry{name: canonical, faces: make(map[string]int)}
			entries[key] = entry
			order = append(order, key)
		}
		entry.faces[face] += qty
	}

	var sb strings.Builder
	for _, key := range order {
		entry := entries[key]
		sb.WriteString(fmt.Sprintf("%d %s\n", entry.quantity(), entry.name))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// canonicalName maps any face of a double-faced card onto its combined
// "Front // Back" form. Names outside the reference data pass through
// unchanged.
func (r *Resolver) canonicalName(name string, fronts, backs map[string]models.DFCPair) (canonical, face string) {
	lookup := strings.ToLower(name)
	if idx := strings.Index(lookup, "//"); idx >= 0 {
		lookup = strings.TrimSpace(lookup[:idx])
	}

	if pair, ok := fronts[lookup]; ok {
		return fmt.Sprintf("%s // %s", pair.Front, pair.Back), "front"
	}
	if pair, ok := backs[lookup]; ok {
		return fmt.Sprintf("%s // %s", pair.Front, pair.Back), "back"
	}
	return name, "front"
}
