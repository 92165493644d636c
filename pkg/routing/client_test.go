package routing

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"rnaudit/pkg/models"

	"github.com/stretchr/testify/suite"
)

const testTimeout = 500 * time.Millisecond

// ClientTestSuite tests the failover query client against mock nodes.
type ClientTestSuite struct {
	suite.Suite
	servers []*httptest.Server
}

// TearDownTest runs after each test.
func (s *ClientTestSuite) TearDownTest() {
	for _, server := range s.servers {
		server.Close()
	}
	s.servers = nil
}

// startNode starts a mock routing node and returns its host:port address.
func (s *ClientTestSuite) startNode(handler http.HandlerFunc) string {
	server := httptest.NewServer(handler)
	s.servers = append(s.servers, server)
	return strings.TrimPrefix(server.URL, "http://")
}

// deadAddr returns an address nothing is listening on.
func (s *ClientTestSuite) deadAddr() string {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := strings.TrimPrefix(server.URL, "http://")
	server.Close()
	return addr
}

// newClient builds a client plus its session health map over the nodes.
func (s *ClientTestSuite) newClient(nodes ...string) (*Client, *HealthMap) {
	health := NewHealthMap(nodes)
	client := NewClient(nodes, 18092, "/api/v1/get_routing?id=", testTimeout, health)
	return client, health
}

// routingHandler answers every request with the given routing ID.
func routingHandler(routingID string, hits *atomic.Int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		fmt.Fprintf(w, "RoutingID: %s\n", routingID)
	}
}

// TestFirstNodeWins tests that a successful first node short-circuits the list.
func (s *ClientTestSuite) TestFirstNodeWins() {
	var firstHits, secondHits atomic.Int64
	first := s.startNode(routingHandler("888000", &firstHits))
	second := s.startNode(routingHandler("777000", &secondHits))

	client, health := s.newClient(first, second)
	result := client.QueryWithFailover(context.Background(), "5551234567")

	s.Equal("888000", result.RoutingID)
	s.Equal(first, result.Node)
	s.Contains(result.Body, "RoutingID: 888000")
	s.Equal(int64(1), firstHits.Load())
	s.Equal(int64(0), secondHits.Load(), "failover must be lazy: second node contacted")
	s.Equal(models.HealthHealthy, health.Get(first))
	s.Equal(models.HealthPending, health.Get(second))
}

// TestFailoverToSecondNode tests advancing past an unreachable node.
func (s *ClientTestSuite) TestFailoverToSecondNode() {
	dead := s.deadAddr()
	alive := s.startNode(routingHandler("777000", nil))

	client, health := s.newClient(dead, alive)
	result := client.QueryWithFailover(context.Background(), "5551234567")

	s.Equal("777000", result.RoutingID)
	s.Equal(alive, result.Node)
	s.Equal(models.HealthUnreachable, health.Get(dead))
	s.Equal(models.HealthHealthy, health.Get(alive))
}

// TestAllNodesFail tests the sentinel triple after failover exhaustion.
func (s *ClientTestSuite) TestAllNodesFail() {
	dead1 := s.deadAddr()
	dead2 := s.deadAddr()

	client, health := s.newClient(dead1, dead2)
	result := client.QueryWithFailover(context.Background(), "5551234567")

	s.Equal(models.FailureBody, result.Body)
	s.Equal(models.NoRouteRN, result.RoutingID)
	s.Equal(models.NoNode, result.Node)
	s.Equal(models.HealthUnreachable, health.Get(dead1))
	s.Equal(models.HealthUnreachable, health.Get(dead2))
}

// TestUnparsableBodyKeepsHealth tests that a reachable node returning no
// routing ID is skipped without a health mutation.
func (s *ClientTestSuite) TestUnparsableBodyKeepsHealth() {
	garbage := s.startNode(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "MAINTENANCE MODE - come back later")
	})
	alive := s.startNode(routingHandler("777000", nil))

	client, health := s.newClient(garbage, alive)
	result := client.QueryWithFailover(context.Background(), "5551234567")

	s.Equal("777000", result.RoutingID)
	s.Equal(alive, result.Node)
	s.Equal(models.HealthPending, health.Get(garbage), "parse failure must not touch health")
	s.Equal(models.HealthHealthy, health.Get(alive))
}

// TestHTTPErrorMarksUnreachable tests that a non-OK status is a transport
// failure, not a parse failure.
func (s *ClientTestSuite) TestHTTPErrorMarksUnreachable() {
	broken := s.startNode(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})
	alive := s.startNode(routingHandler("777000", nil))

	client, health := s.newClient(broken, alive)
	result := client.QueryWithFailover(context.Background(), "5551234567")

	s.Equal("777000", result.RoutingID)
	s.Equal(models.HealthUnreachable, health.Get(broken))
}

// TestAttemptDeadline tests that a slow node is abandoned and marked.
func (s *ClientTestSuite) TestAttemptDeadline() {
	slow := s.startNode(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(testTimeout * 4)
		fmt.Fprintln(w, "RoutingID: 888000")
	})
	alive := s.startNode(routingHandler("777000", nil))

	client, health := s.newClient(slow, alive)

	start := time.Now()
	result := client.QueryWithFailover(context.Background(), "5551234567")

	s.Equal("777000", result.RoutingID)
	s.Equal(models.HealthUnreachable, health.Get(slow))
	s.Less(time.Since(start), testTimeout*3, "slow node must be cut off at the deadline")
}

// TestRequestShape tests the request target built for a node.
func (s *ClientTestSuite) TestRequestShape() {
	var gotPath, gotID string
	node := s.startNode(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotID = r.URL.Query().Get("id")
		fmt.Fprintln(w, "RoutingID: 888000")
	})

	client, _ := s.newClient(node)
	client.QueryWithFailover(context.Background(), "5559876543")

	s.Equal("/api/v1/get_routing", gotPath)
	s.Equal("5559876543", gotID)
}

// TestClientTestSuite runs the test suite.
func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}
