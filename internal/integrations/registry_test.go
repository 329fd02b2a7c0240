package integrations

import (
	"errors"
	"testing"
)

func TestForName(t *testing.T) {
	game := &fakeGame{}
	Register(game)

	for _, name := range []string{"FAKE", "fake", " Fake "} {
		got, err := ForName(name)
		if err != nil {
			t.Fatalf("ForName(%q) failed: %v", name, err)
		}
		if got != game {
			t.Errorf("ForName(%q) returned a different integration", name)
		}
	}

	if _, err := ForName("unknown"); !errors.Is(err, ErrUnknownGame) {
		t.Fatalf("expected ErrUnknownGame, got %v", err)
	}
}
