package sources

import (
	"testing"
	"time"

	"github.com/mwantia/cardindex/internal/config"
	"github.com/mwantia/cardindex/pkg/db/models"
	"github.com/mwantia/cardindex/pkg/log"
)

func testLogger() log.LoggerService {
	return log.NewLoggerService("test", config.LogConfig{
		Level:      "ERROR",
		TimeFormat: time.RFC3339,
		NoColor:    true,
	})
}

func testSource() models.Source {
	return models.Source{
		ID:         7,
		Key:        "example_drive",
		Name:       "Example Drive",
		DriveID:    "root-folder",
		SourceType: models.SourceTypeGoogleDrive,
	}
}

func TestEstimateDPI(t *testing.T) {
	if got := EstimateDPI(1110); got != 300 {
		t.Errorf("EstimateDPI(1110) = %d, want 300", got)
	}
	if got := EstimateDPI(800); got != 220 {
		t.Errorf("EstimateDPI(800) = %d, want 220", got)
	}

	// Monotonically increasing in pixel height
	prev := EstimateDPI(0)
	for height := 100; height <= 4000; height += 100 {
		dpi := EstimateDPI(height)
		if dpi < prev {
			t.Fatalf("EstimateDPI(%d) = %d, less than previous %d", height, dpi, prev)
		}
		prev = dpi
	}
}

func TestClassifySizeGuard(t *testing.T) {
	classifier := NewClassifier(MaxImageSize, testLogger())

	cards, cardbacks, tokens := classifier.Classify(testSource(), []Image{
		{ID: "big", Name: "Huge.png", Size: 30_000_001, Height: 1110},
		{ID: "ok", Name: "Fine.png", Size: 30_000_000, Height: 1110},
	})

	if len(cards) != 1 || len(cardbacks) != 0 || len(tokens) != 0 {
		t.Fatalf("expected exactly one card, got %d/%d/%d", len(cards), len(cardbacks), len(tokens))
	}
	if cards[0].DriveID != "ok" {
		t.Errorf("oversized image was indexed instead of the valid one")
	}
}

func TestClassifyNameGuard(t *testing.T) {
	classifier := NewClassifier(MaxImageSize, testLogger())

	invalid := []string{"nodot", ".png", "name.", "."}
	for _, name := range invalid {
		cards, cardbacks, tokens := classifier.Classify(testSource(), []Image{
			{ID: "x", Name: name, Size: 100, Height: 1110},
		})
		if len(cards)+len(cardbacks)+len(tokens) != 0 {
			t.Errorf("image name %q should have been rejected", name)
		}
	}

	// The split happens on the last dot
	cards, _, _ := classifier.Classify(testSource(), []Image{
		{ID: "x", Name: "Fire.Ice.png", Size: 100, Height: 1110},
	})
	if len(cards) != 1 {
		t.Fatalf("expected one card, got %d", len(cards))
	}
	if cards[0].Name != "Fire.Ice" || cards[0].Extension != "png" {
		t.Errorf("got name %q extension %q, want %q/%q", cards[0].Name, cards[0].Extension, "Fire.Ice", "png")
	}
}

func TestClassifyPriority(t *testing.T) {
	classifier := NewClassifier(MaxImageSize, testLogger())

	cases := []struct {
		name     string
		folder   string
		priority int
	}{
		{"Foo (Alt).png", "Cards", 1},
		{"Foo.png", "Cards", 2},
		{"Forest.png", "Basic Lands", 7},
		{"Forest (Alt).png", "BASIC lands", 6},
	}

	for _, tc := range cases {
		cards, _, _ := classifier.Classify(testSource(), []Image{
			{ID: "x", Name: tc.name, Size: 100, Height: 1110, Folder: Folder{Name: tc.folder}},
		})
		if len(cards) != 1 {
			t.Fatalf("%s: expected one card", tc.name)
		}
		if cards[0].Priority != tc.priority {
			t.Errorf("%s in %s: priority = %d, want %d", tc.name, tc.folder, cards[0].Priority, tc.priority)
		}
	}
}

func TestClassifyPartition(t *testing.T) {
	classifier := NewClassifier(MaxImageSize, testLogger())

	cases := []struct {
		folder string
		kind   string
	}{
		{"Tokens", "token"},
		{"my tokens", "token"},
		{"Card Backs", "cardback"},
		{"Cardbacks", "cardback"},
		{"CARDBACKS", "cardback"},
		{"Cards", "card"},
		{"", "card"},
	}

	for _, tc := range cases {
		cards, cardbacks, tokens := classifier.Classify(testSource(), []Image{
			{ID: "x", Name: "Goblin.png", Size: 100, Height: 1110, Folder: Folder{Name: tc.folder}},
		})

		total := len(cards) + len(cardbacks) + len(tokens)
		if total != 1 {
			t.Fatalf("folder %q: expected exactly one entry, got %d", tc.folder, total)
		}

		var got string
		switch {
		case len(cards) == 1:
			got = "card"
		case len(cardbacks) == 1:
			got = "cardback"
		default:
			got = "token"
		}
		if got != tc.kind {
			t.Errorf("folder %q classified as %s, want %s", tc.folder, got, tc.kind)
		}
	}
}

func TestClassifyTokenEntry(t *testing.T) {
	classifier := NewClassifier(MaxImageSize, testLogger())
	created := time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)

	_, _, tokens := classifier.Classify(testSource(), []Image{
		{
			ID:          "drive-123",
			Name:        "Goblin.png",
			Size:        500_000,
			Height:      800,
			CreatedTime: created,
			Folder:      Folder{Name: "Tokens"},
		},
	})

	if len(tokens) != 1 {
		t.Fatalf("expected one token, got %d", len(tokens))
	}

	token := tokens[0]
	if token.DriveID != "drive-123" {
		t.Errorf("drive id = %q", token.DriveID)
	}
	if token.Name != "Goblin" {
		t.Errorf("name = %q, want Goblin", token.Name)
	}
	if token.Extension != "png" {
		t.Errorf("extension = %q, want png", token.Extension)
	}
	if token.DPI != 220 {
		t.Errorf("dpi = %d, want 220", token.DPI)
	}
	if token.SourceVerbose != "Example Drive Tokens" {
		t.Errorf("source verbose = %q, want %q", token.SourceVerbose, "Example Drive Tokens")
	}
	if token.Searchq != "goblin" || token.SearchqKeyword != "goblin" {
		t.Errorf("searchable names = %q/%q, want goblin", token.Searchq, token.SearchqKeyword)
	}
	if !token.Date.Equal(created) {
		t.Errorf("date = %v, want %v", token.Date, created)
	}
	if token.Size != 500_000 {
		t.Errorf("size = %d, want 500000", token.Size)
	}
	if token.SourceID != 7 {
		t.Errorf("source id = %d, want 7", token.SourceID)
	}
}
