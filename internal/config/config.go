// Package config provides YAML-based configuration for the game, the
// status endpoint and the SSH server.
package config

import "time"

// RandomPersonality asks for a random banker at the start of every game.
const RandomPersonality = "random"

// Config is the full application configuration.
type Config struct {
	TickRate int           `yaml:"tick_rate"`
	Banker   BankerConfig  `yaml:"banker"`
	Offers   OffersConfig  `yaml:"offers"`
	Storage  StorageConfig `yaml:"storage"`
	Status   StatusConfig  `yaml:"status"`
	SSH      SSHConfig     `yaml:"ssh"`
	Log      LogConfig     `yaml:"log"`
}

// BankerConfig selects the banker personality.
type BankerConfig struct {
	Personality string `yaml:"personality"` // balanced, generous, aggressive, volatile or random
}

// OffersConfig controls when the banker calls.
type OffersConfig struct {
	// Thresholds lists opened-case counts at which the next offer becomes due.
	Thresholds []int `yaml:"thresholds"`
}

// StorageConfig locates the results database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// StatusConfig configures the read-only HTTP status endpoint.
type StatusConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
}

// SSHConfig configures the SSH front end.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogConfig sets the default log level.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}
