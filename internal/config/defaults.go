package config

import (
	_ "embed"
)

//go:embed defaults/roomsim.yaml
var defaultYAML []byte

// Default returns the hardcoded default configuration.
func Default() Config {
	return Config{
		Simulation: SimulationConfig{
			TickRate:      30,
			MaxChainDepth: 64,
			Steps:         60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Prefix: "roomsim",
		},
		Catalog: CatalogConfig{
			Path: "~/.roomsim/catalog.db",
		},
		Inspector: InspectorConfig{
			Width:  80,
			Height: 24,
		},
		Server: ServerConfig{
			Address:            ":23235",
			HostKey:            ".ssh/roomsim_ed25519",
			IdleTimeoutMinutes: 30,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
