package config

import (
	"fmt"
	"strings"
)

// Validate checks configuration correctness.
// It performs declarative validation only and MUST NOT mutate the config.
func Validate(cfg *Config) error {
	if len(cfg.Cluster.Nodes) == 0 {
		return fmt.Errorf("cluster: at least one node is required")
	}
	for _, node := range cfg.Cluster.Nodes {
		if strings.TrimSpace(node) == "" {
			return fmt.Errorf("cluster: node address must not be empty")
		}
	}

	if cfg.Cluster.Port < 1 || cfg.Cluster.Port > 65535 {
		return fmt.Errorf("cluster: port %d out of range", cfg.Cluster.Port)
	}

	if !strings.HasPrefix(cfg.Cluster.APIPath, "/") {
		return fmt.Errorf("cluster: api_path %q must start with /", cfg.Cluster.APIPath)
	}

	if cfg.Cluster.TimeoutMs <= 0 {
		return fmt.Errorf("cluster: timeout_ms must be positive")
	}

	if cfg.Audit.HomeNetworkID == "" {
		return fmt.Errorf("audit: home_network_id is required")
	}
	for _, r := range cfg.Audit.HomeNetworkID {
		if r < '0' || r > '9' {
			return fmt.Errorf("audit: home_network_id %q must be numeric", cfg.Audit.HomeNetworkID)
		}
	}

	if cfg.Audit.PacingMs < 0 {
		return fmt.Errorf("audit: pacing_ms must not be negative")
	}

	return nil
}
