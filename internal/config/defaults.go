package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/deal.yaml
var defaultDealYAML []byte

// DefaultThresholds are the opened-case counts at which offers fall due.
var DefaultThresholds = []int{6, 11, 15, 18, 20, 21, 22, 23, 24, 25}

// Default returns the hard-coded configuration.
func Default() Config {
	thresholds := make([]int, len(DefaultThresholds))
	copy(thresholds, DefaultThresholds)

	return Config{
		TickRate: 30,
		Banker: BankerConfig{
			Personality: RandomPersonality,
		},
		Offers: OffersConfig{
			Thresholds: thresholds,
		},
		Storage: StorageConfig{
			Path: "~/.deal/results.db",
		},
		Status: StatusConfig{
			Enabled: false,
			Address: "127.0.0.1:8089",
		},
		SSH: SSHConfig{
			Address:     ":23234",
			HostKeyPath: "~/.deal/host_key",
			IdleTimeout: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
