package clients

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tbourn/vehicle-insurance-api/internal/domain"
)

// DefaultDrivingHistoryBaseURL is the production driving-history endpoint.
const DefaultDrivingHistoryBaseURL = "https://driving-history-service.com"

const drivingHistoryService = "driving_history"

// DrivingHistoryClient fetches driver records from GET {BaseURL}/api/history/{id}.
type DrivingHistoryClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewDrivingHistoryClient builds a client for baseURL. An empty baseURL falls
// back to DefaultDrivingHistoryBaseURL.
func NewDrivingHistoryClient(baseURL string, hc *http.Client) *DrivingHistoryClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultDrivingHistoryBaseURL
	}
	return &DrivingHistoryClient{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: hc}
}

// drivingHistoryPayload mirrors the upstream JSON shape.
type drivingHistoryPayload struct {
	DriverName           string   `json:"driverName"`
	DriverLicense        string   `json:"driverLicense"`
	BirthDate            flexTime `json:"birthDate"`
	EmailID              string   `json:"emailId"`
	PolicyID             string   `json:"policyId"`
	PolicyExpirationDate flexTime `json:"policyExpirationDate"`
}

// Fetch performs one GET for driverID and copies the six known fields.
// Transport failures, non-2xx statuses, and undecodable bodies are errors.
func (c *DrivingHistoryClient) Fetch(ctx context.Context, driverID string) (*domain.DrivingHistory, error) {
	u := c.BaseURL + "/api/history/" + url.PathEscape(driverID)
	body, err := getBody(ctx, c.HTTP, drivingHistoryService, u)
	if err != nil {
		return nil, err
	}

	var p drivingHistoryPayload
	if err := json.Unmarshal(body, &p); err != nil {
		externalReqs.WithLabelValues(drivingHistoryService, outcomeDecode).Inc()
		return nil, fmt.Errorf("decode driving history: %w", err)
	}
	externalReqs.WithLabelValues(drivingHistoryService, outcomeOK).Inc()

	return &domain.DrivingHistory{
		DriverName:           p.DriverName,
		DriverLicense:        p.DriverLicense,
		BirthDate:            p.BirthDate.Time,
		EmailID:              p.EmailID,
		PolicyID:             p.PolicyID,
		PolicyExpirationDate: p.PolicyExpirationDate.Time,
	}, nil
}

// flexTime accepts RFC 3339 timestamps as well as offset-less date-times and
// plain dates, which the upstream emits depending on the record.
type flexTime struct {
	time.Time
}

var flexLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *flexTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	for _, layout := range flexLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised time %q", s)
}
