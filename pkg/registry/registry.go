// Package registry maps routing-number prefixes to owning carriers.
package registry

// UnknownProvider is returned for routing IDs too short to carry a prefix.
const UnknownProvider = "UNKNOWN_PROVIDER"

// prefixLength is the number of leading routing-ID digits that identify
// the owning carrier.
const prefixLength = 4

// Registry is a read-only prefix → carrier table, fixed for the duration
// of a run.
type Registry struct {
	entries map[string]string
}

// Default returns the built-in carrier registry.
func Default() *Registry {
	return New(map[string]string{
		"1010": "Alpha_Telecom_Global",
		"1020": "Beta_Mobile_Networks",
		"2010": "Delta_MVNO_Services",
		"2020": "Epsilon_Fixed_Line",
		"3050": "Zeta_Cloud_Voice",
		"4090": "Omega_Infrastructure",
	})
}

// New returns a registry over a copy of the given entries.
func New(entries map[string]string) *Registry {
	copied := make(map[string]string, len(entries))
	for prefix, carrier := range entries {
		copied[prefix] = carrier
	}
	return &Registry{entries: copied}
}

// Resolve returns the carrier owning the routing ID's prefix.
//
// Routing IDs shorter than the prefix length (including empty) resolve to
// UnknownProvider; registered prefixes resolve to the carrier name; anything
// else resolves to an explicit unregistered-prefix marker so the report
// still distinguishes "no route" from "route to somebody we don't know".
func (r *Registry) Resolve(routingID string) string {
	if len(routingID) < prefixLength {
		return UnknownProvider
	}
	prefix := routingID[:prefixLength]
	if carrier, ok := r.entries[prefix]; ok {
		return carrier
	}
	return "Unregistered_Prefix_" + prefix
}

// Len returns the number of registered prefixes.
func (r *Registry) Len() int {
	return len(r.entries)
}
