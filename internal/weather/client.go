package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const apiURL = "https://api.openweathermap.org/data/2.5/weather"

// Client talks to OpenWeatherMap for the home screen. Purely
// presentational; its failures surface as page notices, never as errors
// of the catalog.
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

type Report struct {
	City        string
	Country     string
	Condition   string
	Description string
	TempC       float64
	FeelsLikeC  float64
	Humidity    int
	WindKmh     float64
	Icon        string
}

type apiResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"` // m/s with metric units
	} `json:"wind"`
}

// CurrentByCity fetches current conditions in metric units.
func (c *Client) CurrentByCity(ctx context.Context, city string) (*Report, error) {
	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("weather request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	report := &Report{
		City:       payload.Name,
		Country:    payload.Sys.Country,
		TempC:      payload.Main.Temp,
		FeelsLikeC: payload.Main.FeelsLike,
		Humidity:   payload.Main.Humidity,
		WindKmh:    payload.Wind.Speed * 3.6,
	}
	if len(payload.Weather) > 0 {
		report.Condition = payload.Weather[0].Main
		report.Description = payload.Weather[0].Description
		report.Icon = IconName(payload.Weather[0].Icon)
	}
	return report, nil
}

// iconNames maps OpenWeatherMap icon codes to the ionicon set the
// templates render with.
var iconNames = map[string]string{
	"01d": "sunny",
	"01n": "moon",
	"02d": "partly-sunny",
	"02n": "cloudy-night",
	"03d": "cloud",
	"03n": "cloud",
	"04d": "cloudy",
	"04n": "cloudy",
	"09d": "rainy",
	"09n": "rainy",
	"10d": "rainy",
	"10n": "rainy",
	"11d": "thunderstorm",
	"11n": "thunderstorm",
	"13d": "snow",
	"13n": "snow",
	"50d": "water",
	"50n": "water",
}

func IconName(code string) string {
	if name, ok := iconNames[code]; ok {
		return name
	}
	return "partly-sunny"
}
