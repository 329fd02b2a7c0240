package mtg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/mwantia/cardindex/internal/integrations"
	"github.com/mwantia/cardindex/pkg/network"
)

// fetchText GETs a URL and returns the response body as a string
func fetchText(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
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

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// fetchJSON GETs a URL and decodes the JSON response into out
func fetchJSON(ctx context.Context, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "cardindex")
	req.Header.Set("Accept", "application/json")

	resp, err := network.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// trailingDigits extracts the digit run that ends the given path segment,
// ignoring fragment/path noise after it
var trailingDigits = regexp.MustCompile(`(\d+)`)

// pathSegment returns the path segment following the given marker segment
func pathSegment(u *url.URL, marker string) string {
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, part := range parts {
		if strings.EqualFold(part, marker) && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

// writeLine appends one "<qty> <name>" decklist line
func writeLine(sb *strings.Builder, qty int, name string) {
	if name == "" || qty <= 0 {
		return
	}
	fmt.Fprintf(sb, "%d %s\n", qty, name)
}

// Aetherhub decklists are fetched through the MTGA deck JSON endpoint

type aetherhub struct {
	base string
}

func (s *aetherhub) Name() string { return "Aetherhub" }

func (s *aetherhub) Recognizes(u *url.URL) bool {
	return integrations.HostMatches(u, "aetherhub.com")
}

func (s *aetherhub) Fetch(ctx context.Context, u *url.URL) (string, error) {
	segment := pathSegment(u, "Deck")
	deckID := ""
	if idx := strings.LastIndex(segment, "-"); idx >= 0 {
		deckID = trailingDigits.FindString(segment[idx+1:])
	}
	if deckID == "" {
		return "", fmt.Errorf("no deck id in url path %q", u.Path)
	}

	var deck struct {
		ConvertedDeck struct {
			Cards []struct {
				Quantity int    `json:"quantity"`
				Name     string `json:"name"`
			} `json:"cards"`
		} `json:"convertedDeck"`
	}

	endpoint := fmt.Sprintf("%s/Deck/FetchMtgaDeckJson?deckId=%s&langId=0&simple=False", s.base, deckID)
	if err := fetchJSON(ctx, endpoint, &deck); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, card := range deck.ConvertedDeck.Cards {
		writeLine(&sb, card.Quantity, card.Name)
	}
	return sb.String(), nil
}

// Archidekt decklists come from the public deck API

type archidekt struct {
	base string
}

func (s *archidekt) Name() string { return "Archidekt" }

func (s *archidekt) Recognizes(u *url.URL) bool {
	return integrations.HostMatches(u, "archidekt.com")
}

func (s *archidekt) Fetch(ctx context.Context, u *url.URL) (string, error) {
	deckID := trailingDigits.FindString(pathSegment(u, "decks"))
	if deckID == "" {
		return "", fmt.Errorf("no deck id in url path %q", u.Path)
	}

	var deck struct {
		Cards []struct {
			Quantity int `json:"quantity"`
			Card     struct {
				OracleCard struct {
					Name string `json:"name"`
				} `json:"oracleCard"`
			} `json:"card"`
		} `json:"cards"`
	}

	if err := fetchJSON(ctx, fmt.Sprintf("%s/api/decks/%s/", s.base, deckID), &deck); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, card := range deck.Cards {
		writeLine(&sb, card.Quantity, card.Card.OracleCard.Name)
	}
	return sb.String(), nil
}

// CubeCobra cubes export as plaintext, one card name per line

type cubeCobra struct {
	base string
}

func (s *cubeCobra) Name() string { return "CubeCobra" }

func (s *cubeCobra) Recognizes(u *url.URL) bool {
	return integrations.HostMatches(u, "cubecobra.com")
}

func (s *cubeCobra) Fetch(ctx context.Context, u *url.URL) (string, error) {
	cubeID := pathSegment(u, "overview")
	if cubeID == "" {
		return "", fmt.Errorf("no cube id in url path %q", u.Path)
	}

	text, err := fetchText(ctx, fmt.Sprintf("%s/cube/download/plaintext/%s", s.base, cubeID))
	if err != nil {
		return "", err
	}
	if strings.Contains(text, "<html") {
		return "", fmt.Errorf("cube %q not found", cubeID)
	}

	var sb strings.Builder
	for _, line := range strings.Split(text, "\n") {
		writeLine(&sb, 1, strings.TrimSpace(line))
	}
	return sb.String(), nil
}

// Deckstats decks export in .dec format through the export_dec parameter

type deckstats struct{}

func (s *deckstats) Name() string { return "Deckstats" }

func (s *deckstats) Recognizes(u *url.URL) bool {
	return integrations.HostMatches(u, "deckstats.net")
}

func (s *deckstats) Fetch(ctx context.Context, u *url.URL) (string, error) {
	target := *u
	query := target.Query()
	query.Set("export_dec", "1")
	target.RawQuery = query.Encode()
	target.Fragment = ""

	text, err := fetchText(ctx, target.String())
	if err != nil {
		return "", err
	}

	// .dec carries "//" comments and "SB:" sideboard prefixes
	var sb strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "SB: ")
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		sb.WriteString(line + "\n")
	}
	return sb.String(), nil
}

// MagicVille decklists download as plain text through the dl_appr endpoint

type magicVille struct {
	base string
}

func (s *magicVille) Name() string { return "MagicVille" }

func (s *magicVille) Recognizes(u *url.URL) bool {
	return integrations.HostMatches(u, "magic-ville.com")
}

func (s *magicVille) Fetch(ctx context.Context, u *url.URL) (string, error) {
	ref := trailingDigits.FindString(u.Query().Get("ref"))
	if ref == "" {
		return "", fmt.Errorf("no deck reference in url query %q", u.RawQuery)
	}

	return fetchText(ctx, fmt.Sprintf("%s/fr/decks/dl_appr?ref=%s&save=1", s.base, ref))
}

// ManaStack decklists come from the deck API, keyed by slug

type manaStack struct {
	base string
}

func (s *manaStack) Name() string { return "ManaStack" }

func (s *manaStack) Recognizes(u *url.URL) bool {
	return integrations.HostMatches(u, "manastack.com")
}

func (s *manaStack) Fetch(ctx context.Context, u *url.URL) (string, error) {
	slug := pathSegment(u, "deck")
	if slug == "" {
		return "", fmt.Errorf("no deck slug in url path %q", u.Path)
	}

	var deck struct {
		List struct {
			Categories []struct {
				Items []struct {
					Count int `json:"count"`
					Card  struct {
						Name string `json:"name"`
					} `json:"card"`
				} `json:"items"`
			} `json:"categories"`
		} `json:"list"`
	}

	if err := fetchJSON(ctx, fmt.Sprintf("%s/api/deck?slug=%s", s.base, url.QueryEscape(slug)), &deck); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, category := range deck.List.Categories {
		for _, item := range category.Items {
			writeLine(&sb, item.Count, item.Card.Name)
		}
	}
	return sb.String(), nil
}

// Moxfield decklists come from the v2 API; boards are name-keyed maps

type moxfield struct {
	base string
}

func (s *moxfield) Name() string { return "Moxfield" }

func (s *moxfield) Recognizes(u *url.URL) bool {
	return integrations.HostMatches(u, "moxfield.com")
}

func (s *moxfield) Fetch(ctx context.Context, u *url.URL) (string, error) {
	deckID := pathSegment(u, "decks")
	if deckID == "" {
		return "", fmt.Errorf("no deck id in url path %q", u.Path)
	}

	type board map[string]struct {
		Quantity int `json:"quantity"`
	}
	var deck struct {
		Commanders board `json:"commanders"`
		Companions board `json:"companions"`
		Mainboard  board `json:"mainboard"`
	}

	if err := fetchJSON(ctx, fmt.Sprintf("%s/v2/decks/all/%s", s.base, url.PathEscape(deckID)), &deck); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, b := range []board{deck.Commanders, deck.Companions, deck.Mainboard} {
		for name, card := range b {
			writeLine(&sb, card.Quantity, name)
		}
	}
	return sb.String(), nil
}

// MTGGoldfish decklists download as text through the deck download endpoint

type mtgGoldfish struct {
	base string
}

func (s *mtgGoldfish) Name() string { return "MTGGoldfish" }

func (s *mtgGoldfish) Recognizes(u *url.URL) bool {
	return integrations.HostMatches(u, "mtggoldfish.com")
}

func (s *mtgGoldfish) Fetch(ctx context.Context, u *url.URL) (string, error) {
	deckID := trailingDigits.FindString(pathSegment(u, "deck"))
	if deckID == "" {
		return "", fmt.Errorf("no deck id in url path %q", u.Path)
	}

	return fetchText(ctx, fmt.Sprintf("%s/deck/download/%s", s.base, deckID))
}

// Scryfall decks export as text through the decks API

type scryfallSite struct {
	base string
}

func (s *scryfallSite) Name() string { return "Scryfall" }

func (s *scryfallSite) Recognizes(u *url.URL) bool {
	return integrations.HostMatches(u, "scryfall.com")
}

func (s *scryfallSite) Fetch(ctx context.Context, u *url.URL) (string, error) {
	deckID := pathSegment(u, "decks")
	if deckID == "" {
		return "", fmt.Errorf("no deck id in url path %q", u.Path)
	}

	return fetchText(ctx, fmt.Sprintf("%s/decks/%s/export/text", s.base, url.PathEscape(deckID)))
}

// TappedOut decklists export as text through the fmt=txt parameter

type tappedOut struct{}

func (s *tappedOut) Name() string { return "TappedOut" }

func (s *tappedOut) Recognizes(u *url.URL) bool {
	return integrations.HostMatches(u, "tappedout.net")
}

func (s *tappedOut) Fetch(ctx context.Context, u *url.URL) (string, error) {
	target := *u
	query := target.Query()
	query.Set("fmt", "txt")
	target.RawQuery = query.Encode()
	target.Fragment = ""

	return fetchText(ctx, target.String())
}
