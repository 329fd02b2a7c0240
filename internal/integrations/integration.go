// Package integrations defines the game integration boundary: reference
// data (double-faced and meld card pairs) and the set of supported deck
// import sites for the configured game.
package integrations

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/mwantia/cardindex/pkg/db/models"
)

var (
	// ErrUnsupportedDeckSite signals a URL that matches no known deck
	// site; no network call is attempted
	ErrUnsupportedDeckSite = errors.New("unsupported deck site")

	// ErrImportFailed signals a network or parse failure while querying a
	// recognized deck site
	ErrImportFailed = errors.New("deck import failed")

	// ErrUnknownGame signals an unconfigured game selector
	ErrUnknownGame = errors.New("unknown game integration")
)

// ImportSite is one supported deck-building site
type ImportSite interface {
	// Name returns the site's display name
	Name() string

	// Recognizes reports whether the URL belongs to this site
	Recognizes(u *url.URL) bool

	// Fetch retrieves the decklist behind the URL as raw
	// "<qty> <name>" lines
	Fetch(ctx context.Context, u *url.URL) (string, error)
}

// GameIntegration supplies a game's reference data and import sites
type GameIntegration interface {
	Name() string

	// DFCPairs fetches the current double-faced card pairings
	DFCPairs(ctx context.Context) ([]models.DFCPair, error)

	// MeldPairs fetches the current meld part pairings
	MeldPairs(ctx context.Context) ([]models.MeldPair, error)

	// ImportSites returns the deck sites this game supports
	ImportSites() []ImportSite
}

// HostMatches reports whether the URL points at the given site host,
// tolerating a "www." prefix
func HostMatches(u *url.URL, host string) bool {
	h := strings.ToLower(u.Hostname())
	return h == host || h == "www."+host
}
