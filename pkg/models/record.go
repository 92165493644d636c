package models

import "time"

// Sentinel values used when the whole node cluster fails to answer.
const (
	// NoRouteRN is the routing ID stand-in when no node returned one.
	NoRouteRN = "000000"

	// NoNode is the source-node stand-in when no node served the query.
	NoNode = "NONE"

	// FailureBody is the response-body stand-in after failover exhaustion.
	FailureBody = "CRITICAL_CONNECTION_FAILURE"
)

// Verdict is the outcome of a single routing audit check.
type Verdict string

const (
	VerdictPassed Verdict = "PASSED"
	VerdictFailed Verdict = "FAILED"
)

// WorkItem is one validated audit target: a traffic direction token and a
// 10-digit MSISDN. Validation happens during ingestion; the audit core
// trusts the MSISDN format.
type WorkItem struct {
	Direction string `json:"direction"`
	MSISDN    string `json:"msisdn"`
}

// RoutingRecord is one immutable audit result.
//
// SourceNode is always either one of the configured node addresses or the
// NoNode sentinel, and RoutingRN is either a parsed routing ID or the
// NoRouteRN sentinel. Neither field is ever empty.
type RoutingRecord struct {
	Timestamp  time.Time `json:"run_time"`
	Verdict    Verdict   `json:"audit_status"`
	Direction  string    `json:"type"`
	MSISDN     string    `json:"id"`
	RoutingRN  string    `json:"routing_rn"`
	Carrier    string    `json:"entity"`
	SourceNode string    `json:"source_node"`
}
