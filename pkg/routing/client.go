package routing

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rnaudit/pkg/log"
	"rnaudit/pkg/models"

	"github.com/hashicorp/go-retryablehttp"
)

// Result is the outcome of one failover query. It always carries usable
// values: after failover exhaustion Body, RoutingID and Node hold the
// documented sentinels instead of an error.
type Result struct {
	Body      string
	RoutingID string
	Node      string
}

// Client queries the routing-node cluster with ordered failover.
//
// Nodes are tried strictly in configured order; the order is the failover
// priority and is never changed. The client writes node health through the
// session-owned HealthMap.
type Client struct {
	nodes   []string
	port    int
	apiPath string
	timeout time.Duration
	health  *HealthMap
	client  *retryablehttp.Client
}

// NewClient creates a query client over the given node list.
func NewClient(nodes []string, port int, apiPath string, timeout time.Duration, health *HealthMap) *Client {
	return &Client{
		nodes:   nodes,
		port:    port,
		apiPath: apiPath,
		timeout: timeout,
		health:  health,
		client:  createRetryableClient(0),
	}
}

// QueryWithFailover obtains one routing ID for the target MSISDN.
//
// Each node gets a single attempt under the per-attempt deadline. A transport
// failure (connection refused, deadline exceeded, bad HTTP status) marks the
// node Unreachable and advances to the next node. A transport-successful
// response that yields a routing ID marks the node Healthy and wins
// immediately; one that yields no ID advances WITHOUT touching the node's
// health — only transport outcomes are recorded. If the list is exhausted
// the sentinel triple is returned. This method never returns an error.
func (c *Client) QueryWithFailover(ctx context.Context, target string) Result {
	for _, node := range c.nodes {
		body, err := c.fetch(ctx, c.nodeURL(node, target))
		if err != nil {
			c.health.MarkUnreachable(node)
			log.Debug().Str("node", node).Err(err).Msg("Node unreachable, trying next")
			continue
		}

		if routingID, ok := ExtractRoutingID(body); ok {
			c.health.MarkHealthy(node)
			return Result{Body: body, RoutingID: routingID, Node: node}
		}

		// Reachable but unparsable: not a transport failure, health stays.
		log.Debug().Str("node", node).Msg("Response carried no routing ID, trying next")
	}

	log.Warn().Str("target", target).Msg("All nodes exhausted without a routing ID")
	return Result{Body: models.FailureBody, RoutingID: models.NoRouteRN, Node: models.NoNode}
}

// fetch performs a single GET attempt under the per-attempt deadline.
func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", &NodeError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// nodeURL builds the request target for a node. Node addresses may carry an
// explicit port; bare hosts get the configured cluster port.
func (c *Client) nodeURL(node, target string) string {
	host := node
	if !strings.Contains(node, ":") {
		host = net.JoinHostPort(node, strconv.Itoa(c.port))
	}
	return "http://" + host + c.apiPath + target
}

// NodeError represents a non-OK HTTP response from a routing node.
type NodeError struct {
	StatusCode int
}

func (e *NodeError) Error() string {
	return "node returned status " + http.StatusText(e.StatusCode)
}

// createRetryableClient creates the HTTP client used for node attempts.
// RetryMax stays 0 so the failover pass is single-shot per node; the retry
// policy is kept connection-error-only so raising RetryMax can never turn
// HTTP-level errors into retries.
func createRetryableClient(retryMax int) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.Logger = nil // Disable retryablehttp logging
	client.CheckRetry = transportRetryPolicy
	return client
}

// transportRetryPolicy only retries on connection/timeout errors, never on
// HTTP status errors: a status from a node is an answer, not an outage.
func transportRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if resp != nil {
		return false, nil
	}

	if err != nil {
		return true, nil //nolint:nilerr // intentionally returning nil - retryablehttp handles the error
	}

	return false, nil
}
