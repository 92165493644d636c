package routing

import "rnaudit/pkg/models"

// HealthMap tracks per-node health for one audit session.
//
// It is owned by the session and written only by the query client, on the
// single sequential execution flow; it is not safe for concurrent use.
// Health is never reset mid-run.
type HealthMap struct {
	nodes []string
	state map[string]models.NodeHealth
}

// NewHealthMap returns a health map with every node Pending, preserving the
// configured node order.
func NewHealthMap(nodes []string) *HealthMap {
	state := make(map[string]models.NodeHealth, len(nodes))
	ordered := make([]string, len(nodes))
	for i, node := range nodes {
		ordered[i] = node
		state[node] = models.HealthPending
	}
	return &HealthMap{nodes: ordered, state: state}
}

// MarkHealthy records a parsed success against the node.
func (h *HealthMap) MarkHealthy(node string) {
	if _, ok := h.state[node]; ok {
		h.state[node] = models.HealthHealthy
	}
}

// MarkUnreachable records a transport failure against the node.
func (h *HealthMap) MarkUnreachable(node string) {
	if _, ok := h.state[node]; ok {
		h.state[node] = models.HealthUnreachable
	}
}

// Get returns the node's current health.
func (h *HealthMap) Get(node string) models.NodeHealth {
	return h.state[node]
}

// Nodes returns the node addresses in configured (failover priority) order.
func (h *HealthMap) Nodes() []string {
	ordered := make([]string, len(h.nodes))
	copy(ordered, h.nodes)
	return ordered
}

// Snapshot returns a copy of the current node → health mapping.
func (h *HealthMap) Snapshot() map[string]models.NodeHealth {
	snapshot := make(map[string]models.NodeHealth, len(h.state))
	for node, health := range h.state {
		snapshot[node] = health
	}
	return snapshot
}
