package flightapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmtran91/flybooking/internal/domain"
)

// Client talks to the external flight-search provider. Fares come back
// USD-denominated; ancillary prices in VND.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// LegQuery describes one directional search.
type LegQuery struct {
	DepartureAirport string
	ArrivalAirport   string
	Date             time.Time
	Adults           int
	Children         int
	Infants          int
}

type searchResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Options []domain.FareOption `json:"options"`
}

// SearchLeg fetches fare options for one leg.
func (c *Client) SearchLeg(ctx context.Context, q LegQuery) ([]domain.FareOption, error) {
	params := url.Values{}
	params.Set("departure", q.DepartureAirport)
	params.Set("arrival", q.ArrivalAirport)
	params.Set("date", q.Date.Format("2006-01-02"))
	params.Set("adults", strconv.Itoa(q.Adults))
	params.Set("children", strconv.Itoa(q.Children))
	params.Set("infants", strconv.Itoa(q.Infants))

	var out searchResponse
	if err := c.get(ctx, "/flights/search", params, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("flight search failed: %s", out.Message)
	}
	return out.Options, nil
}

type ancillaryResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Options []domain.AncillaryOption `json:"options"`
}

// Ancillaries lists the carrier's extra-baggage options.
func (c *Client) Ancillaries(ctx context.Context, airlineCode string) ([]domain.AncillaryOption, error) {
	params := url.Values{}
	params.Set("airline", airlineCode)

	var out ancillaryResponse
	if err := c.get(ctx, "/flights/ancillaries", params, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("ancillary lookup failed: %s", out.Message)
	}
	return out.Options, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("flight provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("flight provider returned %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode flight provider response: %w", err)
	}
	return nil
}
