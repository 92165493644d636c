// Package report renders finished audit runs: a machine-readable CSV, a
// human-readable summary, and a console digest.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rnaudit/pkg/audit"
	"rnaudit/pkg/log"
	"rnaudit/pkg/models"
)

// utf8BOM keeps spreadsheet tools from mangling the CSV encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvHeader is the fixed column order of the data export.
var csvHeader = []string{"run_time", "audit_status", "type", "id", "routing_rn", "entity", "source_node"}

const recordTimeFormat = "15:04:05"

// Paths derives the report file locations from the input file: the CSV and
// TXT land beside it, tagged with the run ID.
func Paths(inputPath, runID string) (csvPath, txtPath string) {
	dir := filepath.Dir(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	csvPath = filepath.Join(dir, fmt.Sprintf("%s_DATA_%s.csv", base, runID))
	txtPath = filepath.Join(dir, fmt.Sprintf("%s_REPORT_%s.txt", base, runID))
	return csvPath, txtPath
}

// WriteCSV writes the master data export, one row per record.
func WriteCSV(path string, records []models.RoutingRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv report: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close csv report")
		}
	}()

	if _, err := file.Write(utf8BOM); err != nil {
		return fmt.Errorf("write csv report: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, record := range records {
		row := []string{
			record.Timestamp.Format(recordTimeFormat),
			string(record.Verdict),
			record.Direction,
			record.MSISDN,
			record.RoutingRN,
			record.Carrier,
			record.SourceNode,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv report: %w", err)
	}
	return nil
}

// WriteSummary writes the executive summary: totals, cluster health in
// failover order, and the carrier distribution.
func WriteSummary(path, runID string, stats audit.Stats, nodes []string, health map[string]models.NodeHealth) error {
	var b strings.Builder

	fmt.Fprintf(&b, "ROUTING AUDIT SUMMARY - %s\n", runID)
	fmt.Fprintf(&b, "Status: COMPLETE | Total: %d | Failures: %d\n", stats.Total, stats.Failures)

	b.WriteString(strings.Repeat("-", 40) + "\n")
	b.WriteString("Cluster Health:\n")
	for _, node := range nodes {
		fmt.Fprintf(&b, "%s: %s\n", node, health[node])
	}

	b.WriteString(strings.Repeat("-", 40) + "\n")
	b.WriteString("Carrier Distribution:\n")
	carriers := make([]string, 0, len(stats.Carriers))
	for carrier := range stats.Carriers {
		carriers = append(carriers, carrier)
	}
	sort.Strings(carriers)
	for _, carrier := range carriers {
		fmt.Fprintf(&b, "%s: %d\n", carrier, stats.Carriers[carrier])
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("write summary report: %w", err)
	}
	return nil
}

// LogSummary emits the run digest to the console.
func LogSummary(stats audit.Stats, nodes []string, health map[string]models.NodeHealth) {
	event := log.Info().
		Int("total", stats.Total).
		Int("failures", stats.Failures).
		Str("success_rate", fmt.Sprintf("%.1f%%", stats.SuccessRate()))
	for _, node := range nodes {
		event = event.Str(node, string(health[node]))
	}
	event.Msg("Audit complete")
}
