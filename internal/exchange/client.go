package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Currency is one converter option.
type Currency struct {
	Code   string
	Symbol string
}

// Currencies are the converter's options, in display order.
var Currencies = []Currency{
	{Code: "USD", Symbol: "$"},
	{Code: "EUR", Symbol: "€"},
	{Code: "GBP", Symbol: "£"},
	{Code: "INR", Symbol: "₹"},
	{Code: "JPY", Symbol: "¥"},
	{Code: "AUD", Symbol: "A$"},
	{Code: "CAD", Symbol: "C$"},
	{Code: "SGD", Symbol: "S$"},
}

// Client fetches the USD-based rate table from ExchangeRate-API.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

// Rates maps a currency code to its per-USD rate.
type Rates map[string]float64

type apiResponse struct {
	Result          string `json:"result"`
	ErrorType       string `json:"error-type"`
	ConversionRates Rates  `json:"conversion_rates"`
}

// LatestUSD fetches the current rate table.
func (c *Client) LatestUSD(ctx context.Context) (Rates, error) {
	url := fmt.Sprintf("https://v6.exchangerate-api.com/v6/%s/latest/USD", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exchange rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("exchange rate request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode exchange rate response: %w", err)
	}
	if payload.Result != "success" {
		return nil, fmt.Errorf("exchange rate request failed: %s", payload.ErrorType)
	}

	return payload.ConversionRates, nil
}

// Convert goes through the USD base, the way the rate table is published.
func (r Rates) Convert(amount float64, from, to string) (float64, error) {
	fromRate, ok := r[from]
	if !ok || fromRate == 0 {
		return 0, fmt.Errorf("no rate for currency %q", from)
	}
	toRate, ok := r[to]
	if !ok {
		return 0, fmt.Errorf("no rate for currency %q", to)
	}

	return amount / fromRate * toRate, nil
}
