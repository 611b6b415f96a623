package upstransit_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rateshop/internal/adapters/out/upstransit"
	"rateshop/internal/core/domain/model/kernel"
	"rateshop/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transitQuery(t *testing.T) ports.TransitQuery {
	t.Helper()

	weight, err := kernel.NewWeight(67)
	require.NoError(t, err)

	return ports.TransitQuery{
		FromPostal:  "46203",
		FromState:   "IN",
		FromCity:    "Indianapolis",
		ToPostal:    "43004-1234",
		ToState:     "OH",
		ToCity:      "Columbus",
		ToCountry:   "US",
		ShipDate:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Weight:      weight,
		Residential: true,
	}
}

func transitServices() map[string]any {
	return map[string]any{
		"emsResponse": map[string]any{
			"services": []map[string]any{
				{"serviceLevel": "GND", "serviceLevelDescription": "UPS Ground",
					"businessTransitDays": 2, "deliveryDate": "2026-03-04", "deliveryDayOfWeek": "WED"},
				{"serviceLevel": "2DA", "serviceLevelDescription": "UPS 2nd Day Air",
					"businessTransitDays": 2, "deliveryDate": "2026-03-04", "deliveryDayOfWeek": "WED"},
			},
		},
	}
}

func TestClient_EstimateTransit(t *testing.T) {
	t.Run("should authenticate then post the lane and parse commitments", func(t *testing.T) {
		var tokenRequests int
		var request map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/security/v1/oauth/token":
				tokenRequests++
				require.NoError(t, r.ParseForm())
				assert.Equal(t, "client_credentials", r.FormValue("grant_type"))
				username, _, ok := r.BasicAuth()
				require.True(t, ok)
				assert.Equal(t, "client-id", username)
				require.NoError(t, json.NewEncoder(w).Encode(
					map[string]any{"access_token": "token-1", "expires_in": "3600"}))
			case "/api/shipments/v1/transittimes":
				assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
				require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
				require.NoError(t, json.NewEncoder(w).Encode(transitServices()))
			default:
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
		}))
		t.Cleanup(server.Close)

		client, err := upstransit.NewClient(server.URL, "client-id", "client-secret", nil)
		require.NoError(t, err)

		estimates, err := client.EstimateTransit(context.Background(), transitQuery(t))

		require.NoError(t, err)
		assert.Equal(t, 1, tokenRequests)
		assert.Equal(t, "46203", request["originPostalCode"])
		assert.Equal(t, "430041234", request["destinationPostalCode"])
		assert.Equal(t, "1.90", request["weight"])
		assert.Equal(t, "KGS", request["weightUnitOfMeasure"])
		assert.Equal(t, "2026-03-02", request["shipDate"])
		assert.Equal(t, "01", request["residentialIndicator"])

		require.Len(t, estimates, 2)
		assert.Equal(t, "UPS Ground", estimates[0].Service)
		assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), estimates[0].DeliveryDate)
		assert.Equal(t, 2, estimates[0].BusinessDays)
	})

	t.Run("should mark commercial destinations", func(t *testing.T) {
		var request map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/security/v1/oauth/token" {
				require.NoError(t, json.NewEncoder(w).Encode(
					map[string]any{"access_token": "token-1", "expires_in": "3600"}))
				return
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
			require.NoError(t, json.NewEncoder(w).Encode(transitServices()))
		}))
		t.Cleanup(server.Close)

		client, err := upstransit.NewClient(server.URL, "client-id", "client-secret", nil)
		require.NoError(t, err)

		query := transitQuery(t)
		query.Residential = false
		_, err = client.EstimateTransit(context.Background(), query)

		require.NoError(t, err)
		assert.Equal(t, "02", request["residentialIndicator"])
	})

	t.Run("should reuse the cached token across requests", func(t *testing.T) {
		var tokenRequests int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/security/v1/oauth/token" {
				tokenRequests++
				require.NoError(t, json.NewEncoder(w).Encode(
					map[string]any{"access_token": "token-1", "expires_in": "3600"}))
				return
			}
			require.NoError(t, json.NewEncoder(w).Encode(transitServices()))
		}))
		t.Cleanup(server.Close)

		client, err := upstransit.NewClient(server.URL, "client-id", "client-secret", nil)
		require.NoError(t, err)

		_, err = client.EstimateTransit(context.Background(), transitQuery(t))
		require.NoError(t, err)
		_, err = client.EstimateTransit(context.Background(), transitQuery(t))
		require.NoError(t, err)

		assert.Equal(t, 1, tokenRequests)
	})

	t.Run("should fail when authentication is rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		t.Cleanup(server.Close)

		client, err := upstransit.NewClient(server.URL, "client-id", "client-secret", nil)
		require.NoError(t, err)

		_, err = client.EstimateTransit(context.Background(), transitQuery(t))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "ups oauth")
	})

	t.Run("should fail on a transit API error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/security/v1/oauth/token" {
				require.NoError(t, json.NewEncoder(w).Encode(
					map[string]any{"access_token": "token-1", "expires_in": "3600"}))
				return
			}
			w.WriteHeader(http.StatusBadRequest)
		}))
		t.Cleanup(server.Close)

		client, err := upstransit.NewClient(server.URL, "client-id", "client-secret", nil)
		require.NoError(t, err)

		_, err = client.EstimateTransit(context.Background(), transitQuery(t))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "transittimes responded 400")
	})
}
