// Package config provides YAML-based configuration loading for the room
// simulator and its tools.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Config contains all configuration for roomsim.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Assets     AssetsConfig     `yaml:"assets"`
	Inspector  InspectorConfig  `yaml:"inspector"`
	Server     ServerConfig     `yaml:"server"`
}

// SimulationConfig defines how rooms are stepped.
type SimulationConfig struct {
	TickRate      int `yaml:"tick_rate"`       // Steps per second in the inspector
	MaxChainDepth int `yaml:"max_chain_depth"` // Prototype inheritance limit
	Steps         int `yaml:"steps"`           // Default step count for `run`
}

// LoggingConfig defines the logger setup.
type LoggingConfig struct {
	Level      string `yaml:"level"` // "debug", "info", "warn" or "error"
	Timestamps bool   `yaml:"timestamps"`
	Prefix     string `yaml:"prefix"`
}

// CatalogConfig locates the prototype catalog database.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// AssetsConfig locates the sprite and tileset library.
type AssetsConfig struct {
	Path string `yaml:"path"`
}

// InspectorConfig defines the inspector viewport.
type InspectorConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ServerConfig defines the SSH inspector server.
type ServerConfig struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// TickInterval returns the duration of one simulation step.
func (s SimulationConfig) TickInterval() time.Duration {
	if s.TickRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(s.TickRate)
}

// IdleTimeout returns the SSH idle timeout.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// ParseLevel converts the configured level name.
func (l LoggingConfig) ParseLevel() (log.Level, error) {
	if l.Level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(l.Level))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("config: %w", err)
	}
	return lvl, nil
}

// Validate checks values that would make the simulator misbehave.
func (c Config) Validate() error {
	if c.Simulation.TickRate < 0 {
		return fmt.Errorf("config: simulation.tick_rate must not be negative, got %d", c.Simulation.TickRate)
	}
	if c.Simulation.MaxChainDepth < 0 {
		return fmt.Errorf("config: simulation.max_chain_depth must not be negative, got %d", c.Simulation.MaxChainDepth)
	}
	if c.Inspector.Width < 0 || c.Inspector.Height < 0 {
		return fmt.Errorf("config: inspector size must not be negative, got %dx%d", c.Inspector.Width, c.Inspector.Height)
	}
	if _, err := c.Logging.ParseLevel(); err != nil {
		return err
	}
	return nil
}
