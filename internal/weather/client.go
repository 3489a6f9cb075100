// Package weather provides the OpenWeatherMap current-conditions client for
// the monitored coordinate.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/lakewatch/pollution-api/internal/pollution"
)

// Client fetches current conditions for a fixed geographic coordinate from
// OpenWeatherMap.
type Client struct {
	apiKey  string
	baseURL string
	lat     float64
	lon     float64
	client  *http.Client
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a Client keyed by the given API credential. The caller
// supplies the HTTP client so outbound timeouts are configured in one place.
func NewClient(client *http.Client, apiKey string, lat, lon float64) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		lat:     lat,
		lon:     lon,
		client:  client,
		backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		circuit: cb,
	}
}

// Current fetches and normalizes the provider's current conditions.
func (c *Client) Current(ctx context.Context) (pollution.CurrentWeather, error) {
	if c.apiKey == "" {
		return pollution.CurrentWeather{}, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", fmt.Sprintf("%f", c.lat))
		values.Set("lon", fmt.Sprintf("%f", c.lon))
		values.Set("appid", c.apiKey)
		values.Set("units", "metric")

		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", c.baseURL, values.Encode()), nil)
	}

	resp, err := doRequest(ctx, c.client, c.backoff, c.circuit, buildRequest)
	if err != nil {
		return pollution.CurrentWeather{}, fmt.Errorf("fetch current weather: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Name string `json:"name"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Rain struct {
			OneH *float64 `json:"1h"`
		} `json:"rain"`
		Sys struct {
			Sunrise int64  `json:"sunrise"`
			Sunset  int64  `json:"sunset"`
			Country string `json:"country"`
		} `json:"sys"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return pollution.CurrentWeather{}, fmt.Errorf("decode current weather: %w", err)
	}

	description := ""
	if len(payload.Weather) > 0 {
		description = payload.Weather[0].Description
	}

	return pollution.CurrentWeather{
		Temperature:        payload.Main.Temp,
		FeelsLike:          payload.Main.FeelsLike,
		Humidity:           payload.Main.Humidity,
		WeatherDescription: description,
		WindSpeed:          payload.Wind.Speed,
		RainMM:             payload.Rain.OneH,
		Sunrise:            payload.Sys.Sunrise,
		Sunset:             payload.Sys.Sunset,
		City:               payload.Name,
		Country:            payload.Sys.Country,
	}, nil
}
