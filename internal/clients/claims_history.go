package clients

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/tbourn/vehicle-insurance-api/internal/domain"
)

// DefaultClaimsHistoryURL is the production claims-history endpoint.
const DefaultClaimsHistoryURL = "https://dummyapi.com/claims-history"

const claimsHistoryService = "claims_history"

// ClaimsHistoryClient fetches claims summaries from GET {URL}?driverName=...
type ClaimsHistoryClient struct {
	URL  string
	HTTP *http.Client
}

// NewClaimsHistoryClient builds a client for endpoint. An empty endpoint
// falls back to DefaultClaimsHistoryURL.
func NewClaimsHistoryClient(endpoint string, hc *http.Client) *ClaimsHistoryClient {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultClaimsHistoryURL
	}
	return &ClaimsHistoryClient{URL: endpoint, HTTP: hc}
}

type claimsHistoryPayload struct {
	DriverName       string          `json:"driverName"`
	NumberOfClaims   int             `json:"numberOfClaims"`
	TotalClaimAmount decimal.Decimal `json:"totalClaimAmount"`
}

// Fetch performs one GET for driverName. An empty or null body yields
// (nil, nil). Errors are returned as-is.
func (c *ClaimsHistoryClient) Fetch(ctx context.Context, driverName string) (*domain.ClaimsHistory, error) {
	u, err := url.Parse(c.URL)
	if err != nil {
		return nil, fmt.Errorf("claims history url: %w", err)
	}
	q := u.Query()
	q.Set("driverName", driverName)
	u.RawQuery = q.Encode()

	body, err := getBody(ctx, c.HTTP, claimsHistoryService, u.String())
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		externalReqs.WithLabelValues(claimsHistoryService, outcomeOK).Inc()
		return nil, nil
	}

	var p claimsHistoryPayload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		externalReqs.WithLabelValues(claimsHistoryService, outcomeDecode).Inc()
		return nil, fmt.Errorf("decode claims history: %w", err)
	}
	externalReqs.WithLabelValues(claimsHistoryService, outcomeOK).Inc()

	return &domain.ClaimsHistory{
		DriverName:       p.DriverName,
		NumberOfClaims:   p.NumberOfClaims,
		TotalClaimAmount: p.TotalClaimAmount,
	}, nil
}
