// Package flights provides a flight-price lookup client backed by the
// Amadeus flight-offers search API.
package flights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tripgpt/planning-platform/internal/model"
)

// DefaultBaseURL is the Amadeus test environment base URL.
const DefaultBaseURL = "https://test.api.amadeus.com"

// maxOffers caps the number of offers requested per lookup.
const maxOffers = 5

// Client is an Amadeus flight-offers client. Access tokens are cached
// until shortly before expiry.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a new flight-price client.
func NewClient(clientID, clientSecret, baseURL string, timeout time.Duration) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("Amadeus client credentials are required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (c *Client) refreshToken(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse token response: %w", err)
	}

	c.mu.Lock()
	c.accessToken = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	c.mu.Unlock()

	return nil
}

func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	token := c.accessToken
	expired := token == "" || time.Now().After(c.tokenExpiry)
	c.mu.Unlock()

	if expired {
		if err := c.refreshToken(ctx); err != nil {
			return "", err
		}
		c.mu.Lock()
		token = c.accessToken
		c.mu.Unlock()
	}

	return token, nil
}

// offersResponse mirrors the fields consumed from the flight-offers
// search response.
type offersResponse struct {
	Data []struct {
		Itineraries []struct {
			Segments []struct {
				CarrierCode string `json:"carrierCode"`
				Departure   struct {
					At string `json:"at"`
				} `json:"departure"`
				Arrival struct {
					At string `json:"at"`
				} `json:"arrival"`
			} `json:"segments"`
		} `json:"itineraries"`
		Price struct {
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
	} `json:"data"`
}

// Search looks up one-way flight offers between two IATA codes on the
// given departure date (YYYY-MM-DD). Returns nil without error when no
// offers exist.
func (c *Client) Search(ctx context.Context, origin, destination, departureDate string) (*model.PriceQuote, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, fmt.Errorf("amadeus auth failed: %w", err)
	}

	path := fmt.Sprintf(
		"/v2/shopping/flight-offers?originLocationCode=%s&destinationLocationCode=%s&departureDate=%s&adults=1&max=%d",
		url.QueryEscape(origin), url.QueryEscape(destination), url.QueryEscape(departureDate), maxOffers)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flight offers request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("amadeus error (%d): %s", resp.StatusCode, string(body))
	}

	var payload offersResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse flight offers: %w", err)
	}

	if len(payload.Data) == 0 {
		return nil, nil
	}

	quote := &model.PriceQuote{
		Origin:      origin,
		Destination: destination,
	}

	for _, offer := range payload.Data {
		price, err := strconv.ParseFloat(offer.Price.Total, 64)
		if err != nil {
			continue
		}

		fo := model.FlightOffer{
			Price:    price,
			Currency: offer.Price.Currency,
		}
		if len(offer.Itineraries) > 0 {
			segments := offer.Itineraries[0].Segments
			if len(segments) > 0 {
				fo.Airline = segments[0].CarrierCode
				fo.DepartureAt = segments[0].Departure.At
				fo.ArrivalAt = segments[len(segments)-1].Arrival.At
				fo.Stops = len(segments) - 1
			}
		}
		quote.Offers = append(quote.Offers, fo)

		if quote.Currency == "" {
			quote.Currency = fo.Currency
		}
	}

	if len(quote.Offers) == 0 {
		return nil, nil
	}

	return quote, nil
}
