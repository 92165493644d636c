package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full tool configuration. Defaults cover a complete run;
// a YAML file and CLI flags only override.
type Config struct {
	Cluster  ClusterConfig  `yaml:"cluster"`
	Audit    AuditConfig    `yaml:"audit"`
	Registry RegistryConfig `yaml:"registry"`
}

// ClusterConfig describes the redundant routing-node cluster.
//
// Nodes is the failover priority list: queries try nodes in this exact
// order and the order is never changed at runtime.
type ClusterConfig struct {
	Nodes     []string `yaml:"nodes"`
	Port      int      `yaml:"port"`
	APIPath   string   `yaml:"api_path"`
	TimeoutMs int      `yaml:"timeout_ms"`
}

// AuditConfig holds the decision and pacing parameters of a run.
type AuditConfig struct {
	HomeNetworkID string `yaml:"home_network_id"`
	PacingMs      int    `yaml:"pacing_ms"`
}

// RegistryConfig points at an optional external carrier-registry source.
type RegistryConfig struct {
	SQLitePath string `yaml:"sqlite_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cluster: ClusterConfig{
			Nodes:     []string{"10.25.100.50", "10.25.100.51", "10.25.110.50", "10.25.110.51"},
			Port:      18092,
			APIPath:   "/api/v1/get_routing?id=",
			TimeoutMs: 2000,
		},
		Audit: AuditConfig{
			HomeNetworkID: "888000",
			PacingMs:      50,
		},
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Timeout returns the per-attempt query deadline.
func (c ClusterConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Pacing returns the mandatory delay between consecutive work items.
func (c AuditConfig) Pacing() time.Duration {
	return time.Duration(c.PacingMs) * time.Millisecond
}
