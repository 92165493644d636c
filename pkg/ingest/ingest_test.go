package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rnaudit/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWorkQueue(t *testing.T) {
	input := strings.Join([]string{
		`Inbound;"5551234567";extra`,
		`outbound;note;'5559876543'`,
		`inbound;not-a-number;also-not`,
		``,
		`OUTBOUND; 5550001111 `,
	}, "\n")

	items, err := ParseWorkQueue(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []models.WorkItem{
		{Direction: "inbound", MSISDN: "5551234567"},
		{Direction: "outbound", MSISDN: "5559876543"},
		{Direction: "outbound", MSISDN: "5550001111"},
	}, items)
}

func TestParseWorkQueueBOM(t *testing.T) {
	input := "\ufeffinbound;5551234567\n"

	items, err := ParseWorkQueue(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "inbound", items[0].Direction)
	assert.Equal(t, "5551234567", items[0].MSISDN)
}

func TestParseWorkQueueEmpty(t *testing.T) {
	items, err := ParseWorkQueue(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSanitizeMSISDN(t *testing.T) {
	testCases := []struct {
		name  string
		raw   string
		want  string
		valid bool
	}{
		{"clean", "5551234567", "5551234567", true},
		{"double quoted", `"5551234567"`, "5551234567", true},
		{"single quoted", "'5551234567'", "5551234567", true},
		{"padded", "  5551234567  ", "5551234567", true},
		{"too short", "555123456", "555123456", false},
		{"too long", "55512345678", "55512345678", false},
		{"non numeric", "555123456x", "555123456x", false},
		{"empty", "", "", false},
		{"direction token", "inbound", "inbound", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, valid := SanitizeMSISDN(tc.raw)
			assert.Equal(t, tc.valid, valid)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReadWorkQueue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.csv")
	require.NoError(t, os.WriteFile(path, []byte("inbound;5551234567\n"), 0o600))

	items, err := ReadWorkQueue(path)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestReadWorkQueueMissingFile(t *testing.T) {
	_, err := ReadWorkQueue(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
