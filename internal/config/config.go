package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"picturereel/internal/domain"
	"picturereel/internal/eventbus"
)

// FileName is the per-directory config file
const FileName = ".picturereel.toml"

// ErrConfigNotFound is returned when a config file does not exist
var ErrConfigNotFound = errors.New("config file not found")

// Config represents the application configuration
type Config struct {
	Version  int              `toml:"version"`
	BaseDir  string           `toml:"base_dir"`
	Watch    bool             `toml:"watch"`
	UI       UISettings       `toml:"ui"`
	Pictures []domain.Picture `toml:"pictures,omitempty"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowDescription bool    `toml:"show_description"`
	TransitionMs    int     `toml:"transition_ms"`
	CellWidthPx     float64 `toml:"cell_width_px"`
	CellHeightPx    float64 `toml:"cell_height_px"`
	Rubberband      float64 `toml:"rubberband"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for the user-wide config file
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "picturereel", "config.toml"),
	}
}

// NewConfigServiceForPath creates a config service bound to path
func NewConfigServiceForPath(path string, bus eventbus.EventBus) ConfigService {
	return &configService{filePath: path, bus: bus}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Path returns the file the service reads and writes
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when the
// file does not exist yet
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrConfigNotFound) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			BaseDir:  cfg.BaseDir,
			Pictures: len(cfg.Pictures),
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// an absent base_dir stays empty so the caller can pick the directory
	cfg := DefaultConfig()
	cfg.BaseDir = ""
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// PictureSet returns the pictures listed in the config
func (c *Config) PictureSet() (domain.PictureSet, error) {
	return domain.NewPictureSet(c.Pictures)
}

// normalize replaces nonsensical values with defaults
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Version == 0 {
		c.Version = def.Version
	}
	if c.UI.TransitionMs < 0 {
		c.UI.TransitionMs = def.UI.TransitionMs
	}
	if c.UI.CellWidthPx <= 0 {
		c.UI.CellWidthPx = def.UI.CellWidthPx
	}
	if c.UI.CellHeightPx <= 0 {
		c.UI.CellHeightPx = def.UI.CellHeightPx
	}
	if c.UI.Rubberband < 0 {
		c.UI.Rubberband = def.UI.Rubberband
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	baseDir, err := os.Getwd()
	if err != nil {
		baseDir = "."
	}

	return &Config{
		Version: 1,
		BaseDir: baseDir,
		Watch:   true,
		UI: UISettings{
			ShowDescription: true,
			TransitionMs:    240,
			CellWidthPx:     8,
			CellHeightPx:    16,
			Rubberband:      0.15,
		},
	}
}
