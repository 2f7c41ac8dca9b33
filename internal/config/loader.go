package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-deal/internal/engine"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Load loads the configuration. Fields missing from the file keep their
// default values.
// Search order: customPath -> ~/.deal/configs/deal.yaml -> ./configs/deal.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg := Default()

	// Custom path must exist and parse
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	candidates := []string{userConfigPath("deal.yaml"), filepath.Join("configs", "deal.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if found, ok := tryLoad(path); ok {
			return found, nil
		}
	}

	// Use embedded default YAML
	embedded := Default()
	if err := yaml.Unmarshal(defaultDealYAML, &embedded); err != nil || embedded.Validate() != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads an optional config file. Unreadable or invalid files are skipped.
func tryLoad(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".deal", "configs", filename)
}

// Validate checks the configuration for values the game cannot run with.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalidConfig, c.TickRate)
	}

	if !strings.EqualFold(strings.TrimSpace(c.Banker.Personality), RandomPersonality) {
		if _, err := engine.ParsePersonality(c.Banker.Personality); err != nil {
			return fmt.Errorf("%w: banker.personality: %v", ErrInvalidConfig, err)
		}
	}

	if len(c.Offers.Thresholds) == 0 {
		return fmt.Errorf("%w: offers.thresholds is empty", ErrInvalidConfig)
	}
	prev := 0
	for i, th := range c.Offers.Thresholds {
		if th < 1 || th >= engine.CaseCount {
			return fmt.Errorf("%w: offers.thresholds[%d] = %d out of range [1, %d]",
				ErrInvalidConfig, i, th, engine.CaseCount-1)
		}
		if th <= prev {
			return fmt.Errorf("%w: offers.thresholds must be strictly increasing", ErrInvalidConfig)
		}
		prev = th
	}

	if c.Status.Enabled && c.Status.Address == "" {
		return fmt.Errorf("%w: status.address is empty", ErrInvalidConfig)
	}
	if c.SSH.Address == "" {
		return fmt.Errorf("%w: ssh.address is empty", ErrInvalidConfig)
	}
	if c.SSH.IdleTimeout < 0 {
		return fmt.Errorf("%w: ssh.idle_timeout must not be negative", ErrInvalidConfig)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

// ApplyPersonality overrides the configured banker, e.g. from a CLI flag.
// An empty value leaves the configuration unchanged.
func ApplyPersonality(cfg *Config, personality string) error {
	if personality == "" {
		return nil
	}
	next := *cfg
	next.Banker.Personality = strings.ToLower(strings.TrimSpace(personality))
	if err := next.Validate(); err != nil {
		return err
	}
	*cfg = next
	return nil
}
