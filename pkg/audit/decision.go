// Package audit turns routing query results into pass/fail verdicts and
// drives the per-record audit session.
package audit

import (
	"strings"

	"rnaudit/pkg/models"
)

// Decide applies the routing-correctness policy for one record.
//
// Inbound traffic must route to the home network; outbound traffic must
// route away from it, and a no-route sentinel can never pass. Direction
// matching is a case-insensitive substring check on the token, and any
// direction that is neither inbound nor outbound fails: there is no passing
// path for traffic we cannot classify.
func Decide(direction, routingID, homeNetworkID string) models.Verdict {
	dir := strings.ToLower(direction)
	switch {
	case strings.Contains(dir, "inbound"):
		if routingID == homeNetworkID {
			return models.VerdictPassed
		}
	case strings.Contains(dir, "outbound"):
		if routingID != homeNetworkID && routingID != models.NoRouteRN {
			return models.VerdictPassed
		}
	}
	return models.VerdictFailed
}
