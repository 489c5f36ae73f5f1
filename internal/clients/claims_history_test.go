package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimsHistoryClient_Fetch_Success(t *testing.T) {
	var gotName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotName = r.URL.Query().Get("driverName")
		_, _ = w.Write([]byte(`{"driverName":"Jane Roe","numberOfClaims":2,"totalClaimAmount":1500.75}`))
	}))
	defer srv.Close()

	c := NewClaimsHistoryClient(srv.URL+"/claims-history", srv.Client())
	h, err := c.Fetch(context.Background(), "Jane Roe & Sons")
	require.NoError(t, err)
	require.NotNil(t, h)

	assert.Equal(t, "Jane Roe & Sons", gotName)
	assert.Equal(t, "Jane Roe", h.DriverName)
	assert.Equal(t, 2, h.NumberOfClaims)
	assert.True(t, h.TotalClaimAmount.Equal(decimal.RequireFromString("1500.75")))
}

func TestClaimsHistoryClient_Fetch_EmptyOrNullBody(t *testing.T) {
	for _, body := range []string{"", "null", "  null \n"} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		c := NewClaimsHistoryClient(srv.URL, srv.Client())
		h, err := c.Fetch(context.Background(), "Nobody")
		assert.NoError(t, err, "body %q", body)
		assert.Nil(t, h, "body %q", body)
		srv.Close()
	}
}

func TestClaimsHistoryClient_Fetch_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClaimsHistoryClient(srv.URL, srv.Client())
	_, err := c.Fetch(context.Background(), "Jane")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)

	bad := NewClaimsHistoryClient("://bad url", nil)
	_, err = bad.Fetch(context.Background(), "Jane")
	assert.Error(t, err)
}

func TestNewClaimsHistoryClient_DefaultURL(t *testing.T) {
	assert.Equal(t, DefaultClaimsHistoryURL, NewClaimsHistoryClient("", nil).URL)
}
