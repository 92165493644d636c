// Command routing-node runs a mock routing lookup node for staging and
// demos. It answers the same wire format the audit client expects.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"rnaudit/pkg/log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const gracefulShutdownTimeout = 10 * time.Second

func main() {
	// Initialize logger
	_ = log.Logger

	addr := flag.String("addr", ":18092", "Listen address")
	defaultRN := flag.String("rn", "888000", "Routing ID returned for unseeded MSISDNs")
	seed := flag.String("seed", "", "Comma-separated msisdn=rn overrides (e.g. 5551234567=777000)")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	if *debug {
		log.SetDebugMode()
	}

	routes, err := parseSeed(*seed)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid seed")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/api/v1/get_routing", func(c echo.Context) error {
		id := c.QueryParam("id")
		if id == "" {
			return c.String(http.StatusBadRequest, "missing id parameter\n")
		}
		rn, ok := routes[id]
		if !ok {
			rn = *defaultRN
		}
		log.Debug().Str("id", id).Str("rn", rn).Msg("Routing lookup")
		return c.String(http.StatusOK, fmt.Sprintf("RoutingID: %s\n", rn))
	})

	go func() {
		log.Info().Str("addr", *addr).Int("seeded", len(routes)).Msg("Starting mock routing node")
		if err := e.Start(*addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down mock routing node...")
	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Shutdown failed")
	}

	os.Exit(0)
}

// parseSeed turns "msisdn=rn,msisdn=rn" into a lookup table.
func parseSeed(raw string) (map[string]string, error) {
	routes := make(map[string]string)
	if raw == "" {
		return routes, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		msisdn, rn, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || msisdn == "" || rn == "" {
			return nil, fmt.Errorf("malformed seed entry %q", pair)
		}
		routes[msisdn] = rn
	}
	return routes, nil
}
