package geo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripgpt/planning-platform/internal/geo"
)

func TestGeocode_Match(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo/1.0/direct", r.URL.Path)
		assert.Equal(t, "Paris", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		w.Write([]byte(`[{"name":"Paris","lat":48.8589,"lon":2.32}]`))
	}))
	defer server.Close()

	client, err := geo.NewClient("test-key", server.URL, 5*time.Second)
	require.NoError(t, err)

	loc, err := client.Geocode(context.Background(), "Paris")
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, "Paris", loc.Name)
	assert.InDelta(t, 48.8589, loc.Lat, 0.0001)
	assert.InDelta(t, 2.32, loc.Lon, 0.0001)
}

func TestGeocode_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, err := geo.NewClient("test-key", server.URL, 5*time.Second)
	require.NoError(t, err)

	loc, err := client.Geocode(context.Background(), "Nullepartville")
	require.NoError(t, err)
	assert.Nil(t, loc)
}

func TestGeocode_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := geo.NewClient("test-key", server.URL, 5*time.Second)
	require.NoError(t, err)

	_, err = client.Geocode(context.Background(), "Paris")
	assert.Error(t, err)
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := geo.NewClient("", "", time.Second)
	assert.Error(t, err)
}
