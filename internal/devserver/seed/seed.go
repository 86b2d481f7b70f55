// Package seed loads the initial menu for the development API.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/atomicstack/confusion-tui/internal/menu"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultSeed []byte

type Data struct {
	Dishes []menu.Dish `yaml:"dishes"`
}

// Default returns the embedded menu.
func Default() (Data, error) {
	return Parse(defaultSeed)
}

// Load reads a seed file, or the embedded menu when path is empty.
func Load(path string) (Data, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("read seed: %w", err)
	}
	data, err := Parse(raw)
	if err != nil {
		return Data{}, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// Parse decodes YAML seed data and checks dish ids and comment ratings.
func Parse(raw []byte) (Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("parse seed: %w", err)
	}
	seen := make(map[string]bool, len(data.Dishes))
	for i, d := range data.Dishes {
		id := strings.TrimSpace(d.ID)
		if id == "" {
			return Data{}, fmt.Errorf("dish %d has no id", i)
		}
		if seen[id] {
			return Data{}, fmt.Errorf("duplicate dish id %q", id)
		}
		seen[id] = true
		for _, c := range d.Comments {
			if !menu.ValidRating(c.Rating) {
				return Data{}, fmt.Errorf("dish %s: rating %d out of range", id, c.Rating)
			}
		}
		if d.Comments == nil {
			data.Dishes[i].Comments = []menu.Comment{}
		}
	}
	return data, nil
}
