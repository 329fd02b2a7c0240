// Package mtg implements the Magic: The Gathering game integration:
// double-faced and meld card reference data from the Scryfall API, and the
// supported deck-building import sites.
package mtg

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mwantia/cardindex/internal/integrations"
	"github.com/mwantia/cardindex/internal/search"
	"github.com/mwantia/cardindex/pkg/db/models"
	"github.com/mwantia/cardindex/pkg/network"
)

func init() {
	integrations.Register(New())
}

// MTG implements integrations.GameIntegration
type MTG struct {
	scryfall string
	sites    []integrations.ImportSite
}

func New() *MTG {
	return &MTG{
		scryfall: "https://api.scryfall.com",
		sites: []integrations.ImportSite{
			&aetherhub{base: "https://aetherhub.com"},
			&archidekt{base: "https://archidekt.com"},
			&cubeCobra{base: "https://cubecobra.com"},
			&deckstats{},
			&magicVille{base: "https://magic-ville.com"},
			&manaStack{base: "https://manastack.com"},
			&moxfield{base: "https://api2.moxfield.com"},
			&mtgGoldfish{base: "https://www.mtggoldfish.com"},
			&scryfallSite{base: "https://api.scryfall.com"},
			&tappedOut{},
			&tcgPlayer{},
		},
	}
}

func (m *MTG) Name() string {
	return "MTG"
}

func (m *MTG) ImportSites() []integrations.ImportSite {
	return m.sites
}

// scryfallCard is the subset of Scryfall card fields needed for pairing
type scryfallCard struct {
	Name      string `json:"name"`
	Layout    string `json:"layout"`
	CardFaces []struct {
		Name string `json:"name"`
	} `json:"card_faces"`
	AllParts []struct {
		Name      string `json:"name"`
		Component string `json:"component"`
	} `json:"all_parts"`
}

type scryfallSearchPage struct {
	Data     []scryfallCard `json:"data"`
	HasMore  bool           `json:"has_more"`
	NextPage string         `json:"next_page"`
}

// DFCPairs queries Scryfall for all true double-faced cards and maps each
// front face onto its back face
func (m *MTG) DFCPairs(ctx context.Context) ([]models.DFCPair, error) {
	cards, err := m.searchScryfall(ctx, "is:dfc -layout:art_series")
	if err != nil {
		return nil, fmt.Errorf("failed to query scryfall for DFCs: %w", err)
	}

	var pairs []models.DFCPair
	seen := make(map[string]bool)
	for _, card := range cards {
		if len(card.CardFaces) < 2 {
			continue
		}

		front := card.CardFaces[0].Name
		back := card.CardFaces[1].Name
		if front == "" || back == "" || seen[front] {
			continue
		}
		seen[front] = true

		pairs = append(pairs, models.DFCPair{
			Front:           front,
			FrontSearchable: search.ToSearchable(front),
			Back:            back,
			BackSearchable:  search.ToSearchable(back),
		})
	}
	return pairs, nil
}

// MeldPairs queries Scryfall for meld cards and maps each meld part onto
// its combined result
func (m *MTG) MeldPairs(ctx context.Context) ([]models.MeldPair, error) {
	cards, err := m.searchScryfall(ctx, "is:meld")
	if err != nil {
		return nil, fmt.Errorf("failed to query scryfall for melds: %w", err)
	}

	var pairs []models.MeldPair
	seen := make(map[string]bool)
	for _, card := range cards {
		result := ""
		for _, part := range card.AllParts {
			if part.Component == "meld_result" {
				result = part.Name
				break
			}
		}
		if result == "" {
			continue
		}

		for _, part := range card.AllParts {
			if part.Component != "meld_part" || seen[part.Name] {
				continue
			}
			seen[part.Name] = true

			pairs = append(pairs, models.MeldPair{
				Part:             part.Name,
				PartSearchable:   search.ToSearchable(part.Name),
				Result:           result,
				ResultSearchable: search.ToSearchable(result),
			})
		}
	}
	return pairs, nil
}

// searchScryfall runs a card search, following next_page cursors
func (m *MTG) searchScryfall(ctx context.Context, query string) ([]scryfallCard, error) {
	endpoint := fmt.Sprintf("%s/cards/search?q=%s", m.scryfall, url.QueryEscape(query))

	var cards []scryfallCard
	for endpoint != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}

		resp, err := network.Client.Do(req)
		if err != nil {
			return nil, err
		}

		var page scryfallSearchPage
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("scryfall returned status code %d", resp.StatusCode)
		}

		cards = append(cards, page.Data...)
		if !page.HasMore {
			break
		}
		endpoint = page.NextPage
	}

	return cards, nil
}
