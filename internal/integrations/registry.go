package integrations

import (
	"fmt"
	"sort"
	"strings"
)

// registry holds the available game integrations, keyed by upper-cased name.
// Integrations register themselves from their package init, driver-style.
var registry = map[string]GameIntegration{}

// Register adds a game integration to the registry
func Register(game GameIntegration) {
	registry[strings.ToUpper(game.Name())] = game
}

// ForName resolves the game integration selected by configuration. The
// selection happens once at process start; the resolver receives the result
// by reference.
func ForName(name string) (GameIntegration, error) {
	game, ok := registry[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknownGame, name, strings.Join(registered(), ", "))
	}
	return game, nil
}

func registered() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
