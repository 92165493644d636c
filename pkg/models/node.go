package models

// NodeHealth represents the session-scoped health state of a routing node.
//
// A node starts as Pending and is only ever moved to Healthy (a query
// returned a parsable routing ID) or Unreachable (a transport attempt
// failed). A reachable node that returns an unparsable body keeps its
// current state.
type NodeHealth string

const (
	// HealthPending means the node has not been contacted this session.
	HealthPending NodeHealth = "PENDING"

	// HealthHealthy means the node served at least one parsable response.
	HealthHealthy NodeHealth = "HEALTHY"

	// HealthUnreachable means the last transport attempt against the node
	// failed (connection refused, deadline exceeded, bad HTTP status).
	HealthUnreachable NodeHealth = "TIMEOUT/UNREACHABLE"
)
