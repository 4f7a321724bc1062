package flights_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripgpt/planning-platform/internal/flights"
)

const offersBody = `{"data":[
	{"itineraries":[{"segments":[
		{"carrierCode":"AF","departure":{"at":"2026-09-10T08:30:00"},"arrival":{"at":"2026-09-10T10:45:00"}}
	]}],"price":{"total":"183.50","currency":"EUR"}},
	{"itineraries":[{"segments":[
		{"carrierCode":"LH","departure":{"at":"2026-09-10T06:10:00"},"arrival":{"at":"2026-09-10T08:00:00"}},
		{"carrierCode":"LH","departure":{"at":"2026-09-10T09:20:00"},"arrival":{"at":"2026-09-10T11:05:00"}}
	]}],"price":{"total":"142.00","currency":"EUR"}}
]}`

func amadeusStub(t *testing.T, tokenCalls *int32, offers string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/security/oauth2/token":
			atomic.AddInt32(tokenCalls, 1)
			assert.Equal(t, http.MethodPost, r.Method)
			w.Write([]byte(`{"access_token":"tok-123","expires_in":1799}`))
		case "/v2/shopping/flight-offers":
			assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			assert.Equal(t, "CDG", r.URL.Query().Get("originLocationCode"))
			assert.Equal(t, "NRT", r.URL.Query().Get("destinationLocationCode"))
			w.Write([]byte(offers))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
}

func TestSearch(t *testing.T) {
	var tokenCalls int32
	server := amadeusStub(t, &tokenCalls, offersBody)
	defer server.Close()

	client, err := flights.NewClient("id", "secret", server.URL, 5*time.Second)
	require.NoError(t, err)

	quote, err := client.Search(context.Background(), "CDG", "NRT", "2026-09-10")
	require.NoError(t, err)
	require.NotNil(t, quote)

	assert.Equal(t, "CDG", quote.Origin)
	assert.Equal(t, "NRT", quote.Destination)
	assert.Equal(t, "EUR", quote.Currency)
	require.Len(t, quote.Offers, 2)

	assert.Equal(t, 183.50, quote.Offers[0].Price)
	assert.Equal(t, "AF", quote.Offers[0].Airline)
	assert.Equal(t, 0, quote.Offers[0].Stops)

	assert.Equal(t, 142.00, quote.Offers[1].Price)
	assert.Equal(t, 1, quote.Offers[1].Stops)
	assert.Equal(t, "2026-09-10T11:05:00", quote.Offers[1].ArrivalAt)
}

func TestSearch_TokenReused(t *testing.T) {
	var tokenCalls int32
	server := amadeusStub(t, &tokenCalls, offersBody)
	defer server.Close()

	client, err := flights.NewClient("id", "secret", server.URL, 5*time.Second)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = client.Search(ctx, "CDG", "NRT", "2026-09-10")
	require.NoError(t, err)
	_, err = client.Search(ctx, "CDG", "NRT", "2026-09-11")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls))
}

func TestSearch_NoOffers(t *testing.T) {
	var tokenCalls int32
	server := amadeusStub(t, &tokenCalls, `{"data":[]}`)
	defer server.Close()

	client, err := flights.NewClient("id", "secret", server.URL, 5*time.Second)
	require.NoError(t, err)

	quote, err := client.Search(context.Background(), "CDG", "NRT", "2026-09-10")
	require.NoError(t, err)
	assert.Nil(t, quote)
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := flights.NewClient("", "", "", time.Second)
	assert.Error(t, err)
}
