package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractRoutingID(t *testing.T) {
	testCases := []struct {
		name  string
		body  string
		want  string
		found bool
	}{
		{"plain match", "RoutingID: 888000", "888000", true},
		{"no whitespace", "RoutingID:777000", "777000", true},
		{"extra whitespace", "RoutingID:   888000", "888000", true},
		{"surrounding noise", "noise RoutingID:   888000 trailing", "888000", true},
		{"lowercase label", "routingid: 123456", "123456", true},
		{"mixed case label", "rOuTiNgId: 42", "42", true},
		{"multiline body", "status: OK\nRoutingID: 999111\nend", "999111", true},
		{"no id", "no id here", "", false},
		{"label without digits", "RoutingID: none", "", false},
		{"empty body", "", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := ExtractRoutingID(tc.body)
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractRoutingIDIdempotent(t *testing.T) {
	body := "prefix RoutingID: 888000 suffix"

	first, found := ExtractRoutingID(body)
	assert.True(t, found)
	second, found := ExtractRoutingID(body)
	assert.True(t, found)
	assert.Equal(t, first, second)
}
