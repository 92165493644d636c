// Package routing implements the failover query client for the routing-node
// cluster and the parsing of its loosely structured responses.
package routing

import "regexp"

// routingIDPattern matches the routing ID line anywhere in a response body.
// The wire format guarantees nothing beyond this label, so a single pattern
// is the whole parser.
var routingIDPattern = regexp.MustCompile(`(?i)RoutingID:\s*(\d+)`)

// ExtractRoutingID pulls the routing ID out of a raw response body.
// The match is case-insensitive and tolerates surrounding text and
// arbitrary whitespace after the label. The second return value reports
// whether an ID was found; malformed or empty input is never an error.
func ExtractRoutingID(body string) (string, bool) {
	match := routingIDPattern.FindStringSubmatch(body)
	if match == nil {
		return "", false
	}
	return match[1], true
}
