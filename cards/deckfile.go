package cards

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// KindFile is the top-level YAML structure for custom rider kind
// definitions.
type KindFile struct {
	Kinds []KindEntry `yaml:"kinds"`
}

// KindEntry defines a single rider kind: its name and deck composition.
type KindEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry is a card label and its count in a kind's deck.
type CardEntry struct {
	Card  string `yaml:"card"`
	Count int    `yaml:"count"`
}

// ParseKinds parses YAML kind definitions into a map of kind name to
// deck composition.
func ParseKinds(data []byte) (map[string][]Card, error) {
	var kf KindFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("parse kinds YAML: %w", err)
	}

	kinds := make(map[string][]Card, len(kf.Kinds))
	for _, k := range kf.Kinds {
		if k.Name == "" {
			return nil, fmt.Errorf("kind with empty name")
		}
		if _, dup := kinds[k.Name]; dup {
			return nil, fmt.Errorf("duplicate kind %q", k.Name)
		}
		var deck []Card
		for _, entry := range k.Cards {
			c, err := Parse(entry.Card)
			if err != nil {
				return nil, fmt.Errorf("kind %q: %w", k.Name, err)
			}
			count := entry.Count
			if count == 0 {
				count = 1
			}
			if count < 0 {
				return nil, fmt.Errorf("kind %q: negative count for card %s", k.Name, c)
			}
			for range count {
				deck = append(deck, c)
			}
		}
		if len(deck) == 0 {
			return nil, fmt.Errorf("kind %q has no cards", k.Name)
		}
		kinds[k.Name] = deck
	}
	return kinds, nil
}

// LoadKinds reads and parses a kind definition file.
func LoadKinds(path string) (map[string][]Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseKinds(data)
}
