// Package ingest reads the semicolon-separated audit source file and turns
// it into a validated work queue.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"rnaudit/pkg/log"
	"rnaudit/pkg/models"
)

const msisdnLength = 10

// ReadWorkQueue loads work items from the file at path.
func ReadWorkQueue(path string) ([]models.WorkItem, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close source file")
		}
	}()

	return ParseWorkQueue(file)
}

// ParseWorkQueue extracts work items from a `;`-separated stream.
//
// Column 0 of each row is the traffic direction token (lower-cased); the
// first segment that sanitizes to a valid MSISDN becomes the subject. Rows
// without a valid MSISDN are skipped, not errors. A UTF-8 BOM on the first
// line is tolerated.
func ParseWorkQueue(r io.Reader) ([]models.WorkItem, error) {
	var items []models.WorkItem
	skipped := 0

	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		segments := strings.Split(line, ";")
		direction := strings.ToLower(strings.TrimSpace(segments[0]))

		found := false
		for _, segment := range segments {
			if msisdn, ok := SanitizeMSISDN(segment); ok {
				items = append(items, models.WorkItem{Direction: direction, MSISDN: msisdn})
				found = true
				break
			}
		}
		if !found {
			skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}

	if skipped > 0 {
		log.Warn().Int("rows", skipped).Msg("Rows without a valid MSISDN skipped")
	}
	return items, nil
}

// SanitizeMSISDN strips whitespace and quote characters from a raw CSV
// segment and reports whether the remainder is a valid 10-digit MSISDN.
// The cleaned value is returned either way.
func SanitizeMSISDN(raw string) (string, bool) {
	clean := strings.TrimSpace(raw)
	clean = strings.ReplaceAll(clean, `"`, "")
	clean = strings.ReplaceAll(clean, "'", "")

	if len(clean) != msisdnLength {
		return clean, false
	}
	for _, r := range clean {
		if r < '0' || r > '9' {
			return clean, false
		}
	}
	return clean, true
}
