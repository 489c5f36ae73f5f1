package clients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrivingHistoryClient_Fetch_Success(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"driverName": "Jane Roe",
			"driverLicense": "DL-9981",
			"birthDate": "1990-04-12T00:00:00",
			"emailId": "jane@example.com",
			"policyId": "P-100",
			"policyExpirationDate": "2026-01-31T00:00:00Z",
			"violations": 3
		}`))
	}))
	defer srv.Close()

	before := testutil.ToFloat64(externalReqs.WithLabelValues(drivingHistoryService, outcomeOK))

	c := NewDrivingHistoryClient(srv.URL+"/", srv.Client())
	h, err := c.Fetch(context.Background(), "drv 42")
	require.NoError(t, err)

	assert.Equal(t, "/api/history/drv%2042", gotPath)
	assert.Equal(t, "Jane Roe", h.DriverName)
	assert.Equal(t, "DL-9981", h.DriverLicense)
	assert.Equal(t, "jane@example.com", h.EmailID)
	assert.Equal(t, "P-100", h.PolicyID)
	assert.True(t, h.BirthDate.Equal(time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)))
	assert.True(t, h.PolicyExpirationDate.Equal(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)))

	after := testutil.ToFloat64(externalReqs.WithLabelValues(drivingHistoryService, outcomeOK))
	assert.Equal(t, before+1, after)
}

func TestDrivingHistoryClient_Fetch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewDrivingHistoryClient(srv.URL, srv.Client())
	_, err := c.Fetch(context.Background(), "drv-1")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Contains(t, err.Error(), "500")
}

func TestDrivingHistoryClient_Fetch_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	c := NewDrivingHistoryClient(srv.URL, srv.Client())
	_, err := c.Fetch(context.Background(), "drv-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode driving history")
}

func TestDrivingHistoryClient_Fetch_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := NewDrivingHistoryClient(base, &http.Client{Timeout: time.Second})
	_, err := c.Fetch(context.Background(), "drv-1")
	require.Error(t, err)
	var se *StatusError
	assert.False(t, errors.As(err, &se))
}

func TestNewDrivingHistoryClient_DefaultBaseURL(t *testing.T) {
	c := NewDrivingHistoryClient("  ", nil)
	assert.Equal(t, DefaultDrivingHistoryBaseURL, c.BaseURL)
}

func TestFlexTime_Layouts(t *testing.T) {
	cases := map[string]time.Time{
		`"2024-02-03"`:                time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
		`"2024-02-03T04:05:06"`:       time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC),
		`"2024-02-03T04:05:06.5"`:     time.Date(2024, 2, 3, 4, 5, 6, 500000000, time.UTC),
		`"2024-02-03T04:05:06+00:00"`: time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC),
	}
	for in, want := range cases {
		var ft flexTime
		require.NoError(t, ft.UnmarshalJSON([]byte(in)), in)
		assert.True(t, ft.Equal(want), "%s -> %v", in, ft.Time)
	}

	var zero flexTime
	require.NoError(t, zero.UnmarshalJSON([]byte("null")))
	assert.True(t, zero.IsZero())

	assert.Error(t, zero.UnmarshalJSON([]byte(`"yesterday"`)))
}
