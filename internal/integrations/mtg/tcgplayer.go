package mtg

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mwantia/cardindex/internal/integrations"
	"github.com/mwantia/cardindex/pkg/network"
)

// TCGPlayer has no export endpoint; the deck page itself is scraped

type tcgPlayer struct{}

func (s *tcgPlayer) Name() string { return "TCGPlayer" }

func (s *tcgPlayer) Recognizes(u *url.URL) bool {
	return integrations.HostMatches(u, "decks.tcgplayer.com")
}

func (s *tcgPlayer) Fetch(ctx context.Context, u *url.URL) (string, error) {
	target := *u
	target.Fragment = ""

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "cardindex")

	resp, err := network.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	doc.Find(".subdeck-group__card").Each(func(_ int, card *goquery.Selection) {
		qtyText := strings.TrimSpace(card.Find(".subdeck-group__card-qty").Text())
		name := strings.TrimSpace(card.Find(".subdeck-group__card-name").Text())

		qty, err := strconv.Atoi(qtyText)
		if err != nil {
			return
		}
		writeLine(&sb, qty, name)
	})

	if sb.Len() == 0 {
		return "", fmt.Errorf("no cards found on deck page %q", u.Path)
	}
	return sb.String(), nil
}
