package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ledgerflow/practice-sdk/pkg/configuration"
)

func testRegistry(t *testing.T, handler http.HandlerFunc) *HTTPRegistry {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPRegistry(configuration.RegistryOptions{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})
}

func TestHTTPRegistry_Lookup(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/company/01234567", r.URL.Path)
		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "test-key", user)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"company_name": "Acme Holdings Ltd",
			"company_number": "01234567",
			"company_status": "active",
			"date_of_creation": "2015-03-10",
			"registered_office_address": {
				"address_line_1": "1 Main Street",
				"locality": "Leeds",
				"postal_code": "LS1 1AA"
			}
		}`))
	})

	profile, err := reg.Lookup(context.Background(), "01234567")
	require.NoError(t, err)
	require.Equal(t, "Acme Holdings Ltd", profile.CompanyName)
	require.Equal(t, "01234567", profile.CompanyNumber)
	require.Equal(t, "active", profile.Status)
	require.Equal(t, "1 Main Street, Leeds, LS1 1AA", profile.RegisteredAddress)
	require.NotNil(t, profile.IncorporatedAt)
	require.Equal(t, time.Date(2015, 3, 10, 0, 0, 0, 0, time.UTC), *profile.IncorporatedAt)
}

func TestHTTPRegistry_LookupNotFound(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := reg.Lookup(context.Background(), "99999999")
	require.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestHTTPRegistry_LookupUnauthorized(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := reg.Lookup(context.Background(), "01234567")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestHTTPRegistry_MalformedDateLeavesIncorporationUnset(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"company_name": "Acme", "company_number": "01234567", "date_of_creation": "10/03/2015"}`))
	})

	profile, err := reg.Lookup(context.Background(), "01234567")
	require.NoError(t, err)
	require.Nil(t, profile.IncorporatedAt)
}
