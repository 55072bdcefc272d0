// Package catalog supplies the ordered destination list a carousel is
// built from, either from a TOML file or from the built-in samples.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"cardcarousel/internal/domain"
)

// ErrEmptyCatalog is returned when a catalog file lists no destinations
var ErrEmptyCatalog = errors.New("catalog has no destinations")

// SourceBuiltin names the sample list in events and logs
const SourceBuiltin = "builtin"

// file is the on-disk layout:
//
//	[[destination]]
//	title = "Dubai"
//	badge = "53K+"
//	image = "https://..."
type file struct {
	Destinations []entry `toml:"destination"`
}

type entry struct {
	ID    string `toml:"id"`
	Title string `toml:"title"`
	Badge string `toml:"badge"`
	Image string `toml:"image"`
}

// Load reads the destinations at path. An empty path yields the samples.
func Load(path string) ([]domain.DestinationItem, error) {
	if path == "" {
		return Samples(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	items, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return items, nil
}

// Parse decodes a catalog document
func Parse(data []byte) ([]domain.DestinationItem, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(f.Destinations) == 0 {
		return nil, ErrEmptyCatalog
	}

	seen := make(map[uuid.UUID]bool, len(f.Destinations))
	items := make([]domain.DestinationItem, 0, len(f.Destinations))
	for i, e := range f.Destinations {
		title := strings.TrimSpace(e.Title)
		if title == "" {
			return nil, fmt.Errorf("destination %d: title is required", i+1)
		}

		item := domain.NewDestinationItem(strings.TrimSpace(e.Image), title, strings.TrimSpace(e.Badge))
		if e.ID != "" {
			id, err := uuid.Parse(e.ID)
			if err != nil {
				return nil, fmt.Errorf("destination %d (%s): invalid id: %w", i+1, title, err)
			}
			item.ID = id
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("destination %d (%s): duplicate id %s", i+1, title, item.ID)
		}
		seen[item.ID] = true

		items = append(items, item)
	}
	return items, nil
}

// Samples returns the built-in destinations
func Samples() []domain.DestinationItem {
	return []domain.DestinationItem{
		domain.NewDestinationItem(
			"https://media.istockphoto.com/id/845702822/photo/top-view-of-the-new-downtown-of-amman.jpg",
			"Dubai",
			"53K+",
		),
		domain.NewDestinationItem(
			"https://i.guim.co.uk/img/media/55b58f9514a6ccb5a57d59d04151af12864acf69/0_374_5616_3370/master/5616.jpg",
			"Malaysia",
			"32K+",
		),
		domain.NewDestinationItem(
			"https://i.pinimg.com/736x/19/92/bb/1992bb635a346c5c2ffc72ab56824391.jpg",
			"Thailand",
			"25K+",
		),
	}
}
