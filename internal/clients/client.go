// Package clients holds the outbound HTTP clients for the upstream lookup
// services (driving history and claims history).
//
// Each call performs exactly one GET with the caller's context. There is no
// retry and no caching; timeouts come from the injected *http.Client. Every
// call is counted in external_requests_total by service and outcome.
package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values for external_requests_total.
const (
	outcomeOK     = "ok"
	outcomeStatus = "http_error"
	outcomeNet    = "network_error"
	outcomeDecode = "decode_error"
)

// maxBody caps how much of an upstream response is read.
const maxBody = 1 << 20

var externalReqs = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "external_requests_total",
		Help: "Total number of outbound lookup requests by service and outcome.",
	},
	[]string{"service", "outcome"},
)

func init() {
	prometheus.MustRegister(externalReqs)
}

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("response status code does not indicate success: %d (%s)", e.StatusCode, http.StatusText(e.StatusCode))
}

// getBody performs a GET against url and returns the body of a 2xx response.
func getBody(ctx context.Context, hc *http.Client, service, url string) ([]byte, error) {
	if hc == nil {
		hc = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		externalReqs.WithLabelValues(service, outcomeNet).Inc()
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		externalReqs.WithLabelValues(service, outcomeStatus).Inc()
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		externalReqs.WithLabelValues(service, outcomeNet).Inc()
		return nil, err
	}
	return body, nil
}
