package audit

import (
	"context"
	"strings"
	"time"

	"rnaudit/pkg/log"
	"rnaudit/pkg/models"
	"rnaudit/pkg/registry"
	"rnaudit/pkg/routing"
)

// Querier obtains one routing ID per target with failover.
type Querier interface {
	QueryWithFailover(ctx context.Context, target string) routing.Result
}

// Session drives one audit run: strictly sequential, one work item at a
// time in input order, with a fixed pacing delay between items to bound the
// request rate against the node cluster.
type Session struct {
	client   Querier
	registry *registry.Registry
	health   *routing.HealthMap
	homeID   string
	pacing   time.Duration
}

// NewSession creates an audit session.
func NewSession(client Querier, reg *registry.Registry, health *routing.HealthMap, homeNetworkID string, pacing time.Duration) *Session {
	return &Session{
		client:   client,
		registry: reg,
		health:   health,
		homeID:   homeNetworkID,
		pacing:   pacing,
	}
}

// Run processes the work queue and returns one RoutingRecord per item plus
// the final node-health snapshot.
//
// A record that fails its audit, or a target no node can answer for, never
// aborts the run; failure is encoded in the record itself.
func (s *Session) Run(ctx context.Context, items []models.WorkItem) ([]models.RoutingRecord, map[string]models.NodeHealth) {
	records := make([]models.RoutingRecord, 0, len(items))

	for i, item := range items {
		result := s.client.QueryWithFailover(ctx, item.MSISDN)
		carrier := s.registry.Resolve(result.RoutingID)
		verdict := Decide(item.Direction, result.RoutingID, s.homeID)

		record := models.RoutingRecord{
			Timestamp:  time.Now(),
			Verdict:    verdict,
			Direction:  strings.ToUpper(item.Direction),
			MSISDN:     item.MSISDN,
			RoutingRN:  result.RoutingID,
			Carrier:    carrier,
			SourceNode: result.Node,
		}
		records = append(records, record)

		log.Debug().
			Str("msisdn", item.MSISDN).
			Str("rn", result.RoutingID).
			Str("carrier", carrier).
			Str("node", result.Node).
			Str("verdict", string(verdict)).
			Msg("Record audited")

		// Pacing between consecutive items keeps the request rate bounded.
		if s.pacing > 0 && i < len(items)-1 {
			time.Sleep(s.pacing)
		}
	}

	return records, s.health.Snapshot()
}
