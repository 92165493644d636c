package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"rnaudit/pkg/audit"
	"rnaudit/pkg/config"
	"rnaudit/pkg/ingest"
	"rnaudit/pkg/log"
	"rnaudit/pkg/registry"
	"rnaudit/pkg/report"
	"rnaudit/pkg/routing"
)

const runIDFormat = "20060102_150405"

func main() {
	// Initialize logger
	_ = log.Logger

	// Parse command-line flags
	input := flag.String("input", "", "Audit source file (semicolon-separated, one record per line)")
	configPath := flag.String("config", "", "Optional YAML config file")
	nodes := flag.String("nodes", "", "Comma-separated node addresses overriding the configured cluster")
	registryDB := flag.String("registry-db", "", "Optional SQLite carrier registry (overrides config)")
	timeout := flag.Duration("timeout", 0, "Per-attempt query timeout override")
	pacing := flag.Duration("pacing", -1, "Delay between work items override")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	if *debug {
		log.SetDebugMode()
		log.Debug().Msg("Debug mode enabled")
	}

	if *input == "" {
		log.Fatal().Msg("An audit source file must be specified with -input")
	}

	// Load configuration: defaults, then file, then flags
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("config", *configPath).Msg("Failed to load config")
		}
		cfg = loaded
	}
	if *nodes != "" {
		cfg.Cluster.Nodes = splitNodes(*nodes)
	}
	if *timeout > 0 {
		cfg.Cluster.TimeoutMs = int(timeout.Milliseconds())
	}
	if *pacing >= 0 {
		cfg.Audit.PacingMs = int(pacing.Milliseconds())
	}
	if *registryDB != "" {
		cfg.Registry.SQLitePath = *registryDB
	}
	if err := config.Validate(&cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Carrier registry: built-in table plus optional external source
	carriers := registry.Default()
	if cfg.Registry.SQLitePath != "" {
		if err := carriers.LoadSQLite(cfg.Registry.SQLitePath); err != nil {
			log.Fatal().Err(err).Str("db", cfg.Registry.SQLitePath).Msg("Failed to load carrier registry")
		}
	}

	// Ingestion
	items, err := ingest.ReadWorkQueue(*input)
	if err != nil {
		log.Fatal().Err(err).Str("input", *input).Msg("File ingestion failed")
	}
	if len(items) == 0 {
		log.Fatal().Str("input", *input).Msg("No valid records in source file")
	}

	runID := time.Now().Format(runIDFormat)
	log.Info().
		Int("queue_size", len(items)).
		Strs("nodes", cfg.Cluster.Nodes).
		Str("run_id", runID).
		Msg("Starting routing audit")

	// Execution
	health := routing.NewHealthMap(cfg.Cluster.Nodes)
	client := routing.NewClient(cfg.Cluster.Nodes, cfg.Cluster.Port, cfg.Cluster.APIPath, cfg.Cluster.Timeout(), health)
	session := audit.NewSession(client, carriers, health, cfg.Audit.HomeNetworkID, cfg.Audit.Pacing())

	records, healthSnapshot := session.Run(context.Background(), items)
	stats := audit.Summarize(records)

	// Export
	csvPath, txtPath := report.Paths(*input, runID)
	if err := report.WriteCSV(csvPath, records); err != nil {
		log.Fatal().Err(err).Str("path", csvPath).Msg("Failed to write data export")
	}
	if err := report.WriteSummary(txtPath, runID, stats, health.Nodes(), healthSnapshot); err != nil {
		log.Fatal().Err(err).Str("path", txtPath).Msg("Failed to write summary report")
	}

	report.LogSummary(stats, health.Nodes(), healthSnapshot)
	log.Info().Str("csv", csvPath).Str("txt", txtPath).Msg("Reports generated")

	os.Exit(0)
}

func splitNodes(raw string) []string {
	parts := strings.Split(raw, ",")
	nodes := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			nodes = append(nodes, trimmed)
		}
	}
	return nodes
}
