package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"cardcarousel/internal/domain"
	"cardcarousel/internal/eventbus"
)

const (
	appName = "cardcarousel"

	// LocalFileName is the config file picked up from the working directory
	LocalFileName = "carousel.toml"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the application configuration
type Config struct {
	Version   int              `koanf:"version" toml:"version"`
	Catalog   string           `koanf:"catalog" toml:"catalog"` // path to a destinations TOML file, empty for built-in samples
	Carousel  CarouselSection  `koanf:"carousel" toml:"carousel"`
	Animation AnimationSection `koanf:"animation" toml:"animation"`
	UI        UISettings       `koanf:"ui" toml:"ui"`
}

// CarouselSection holds the card geometry
type CarouselSection struct {
	ItemWidth       float64 `koanf:"item_width" toml:"item_width"`
	ItemHeight      float64 `koanf:"item_height" toml:"item_height"`
	OverlapFraction float64 `koanf:"overlap_fraction" toml:"overlap_fraction"`
	DragThreshold   float64 `koanf:"drag_threshold" toml:"drag_threshold"`
}

// AnimationSection holds the spring used when the current card changes
type AnimationSection struct {
	Stiffness       float64 `koanf:"stiffness" toml:"stiffness"`
	Damping         float64 `koanf:"damping" toml:"damping"`
	InitialVelocity float64 `koanf:"initial_velocity" toml:"initial_velocity"`
}

// UISettings represents terminal rendering options
type UISettings struct {
	PointsPerCell float64 `koanf:"points_per_cell" toml:"points_per_cell"` // layout units per terminal column
	PointsPerRow  float64 `koanf:"points_per_row" toml:"points_per_row"`   // layout units per terminal row
	ShowHelp      bool    `koanf:"show_help" toml:"show_help"`
	Mouse         bool    `koanf:"mouse" toml:"mouse"`
	BadgeSuffix   string  `koanf:"badge_suffix" toml:"badge_suffix"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	SaveToPath(config *Config, path string) error
	DefaultPath() (string, error)
}

// configService is the concrete implementation
type configService struct {
	bus   eventbus.EventBus
	paths []string
}

// NewConfigService creates a config service reading the user config file
// and then ./carousel.toml, later files overriding earlier ones
func NewConfigService() ConfigService {
	return &configService{paths: searchPaths()}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus, extraPaths ...string) ConfigService {
	return newConfigService(bus, append(searchPaths(), extraPaths...))
}

func newConfigService(bus eventbus.EventBus, paths []string) *configService {
	return &configService{bus: bus, paths: paths}
}

func searchPaths() []string {
	paths := []string{}
	if p, err := xdg.SearchConfigFile(filepath.Join(appName, "config.toml")); err == nil {
		paths = append(paths, p)
	}
	return append(paths, LocalFileName)
}

// Load merges every existing file in the search path over the defaults
func (cs *configService) Load() (*Config, error) {
	k := koanf.New(".")
	loaded := []string{}

	for _, path := range cs.paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		loaded = append(loaded, path)
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Paths: loaded})
	}
	return cfg, nil
}

// SaveToPath writes configuration to path as TOML
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := gotoml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: path})
	}
	return nil
}

// DefaultPath returns where the user config file lives
func (cs *configService) DefaultPath() (string, error) {
	p, err := xdg.ConfigFile(filepath.Join(appName, "config.toml"))
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	return p, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	cfg := DefaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Catalog = expandPath(cfg.Catalog)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Validate checks the values the carousel relies on
func (c *Config) Validate() error {
	cs := c.Carousel
	switch {
	case cs.ItemWidth <= 0:
		return fmt.Errorf("%w: carousel.item_width must be positive, got %v", ErrInvalidConfig, cs.ItemWidth)
	case cs.ItemHeight <= 0:
		return fmt.Errorf("%w: carousel.item_height must be positive, got %v", ErrInvalidConfig, cs.ItemHeight)
	case cs.OverlapFraction < 0 || cs.OverlapFraction >= 1:
		return fmt.Errorf("%w: carousel.overlap_fraction must be in [0, 1), got %v", ErrInvalidConfig, cs.OverlapFraction)
	case cs.DragThreshold <= 0:
		return fmt.Errorf("%w: carousel.drag_threshold must be positive, got %v", ErrInvalidConfig, cs.DragThreshold)
	case c.Animation.Stiffness <= 0:
		return fmt.Errorf("%w: animation.stiffness must be positive, got %v", ErrInvalidConfig, c.Animation.Stiffness)
	case c.Animation.Damping < 0:
		return fmt.Errorf("%w: animation.damping must not be negative, got %v", ErrInvalidConfig, c.Animation.Damping)
	case c.UI.PointsPerCell <= 0 || c.UI.PointsPerRow <= 0:
		return fmt.Errorf("%w: ui.points_per_cell and ui.points_per_row must be positive", ErrInvalidConfig)
	}
	return nil
}

// CarouselConfig converts the geometry section to the domain value
func (c *Config) CarouselConfig() domain.CarouselConfig {
	return domain.CarouselConfig{
		ItemWidth:           c.Carousel.ItemWidth,
		ItemHeight:          c.Carousel.ItemHeight,
		OverlapFraction:     c.Carousel.OverlapFraction,
		DragCommitThreshold: c.Carousel.DragThreshold,
	}
}

// SpringConfig converts the animation section to the domain value
func (c *Config) SpringConfig() domain.SpringConfig {
	return domain.SpringConfig{
		Stiffness:       c.Animation.Stiffness,
		Damping:         c.Animation.Damping,
		InitialVelocity: c.Animation.InitialVelocity,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cc := domain.DefaultCarouselConfig()
	sc := domain.DefaultSpringConfig()
	return &Config{
		Version: 1,
		Carousel: CarouselSection{
			ItemWidth:       cc.ItemWidth,
			ItemHeight:      cc.ItemHeight,
			OverlapFraction: cc.OverlapFraction,
			DragThreshold:   cc.DragCommitThreshold,
		},
		Animation: AnimationSection{
			Stiffness:       sc.Stiffness,
			Damping:         sc.Damping,
			InitialVelocity: sc.InitialVelocity,
		},
		UI: UISettings{
			PointsPerCell: 10,
			PointsPerRow:  25,
			ShowHelp:      true,
			Mouse:         true,
			BadgeSuffix:   "Visas on Atlys",
		},
	}
}
