package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

const currentWeatherFixture = `{
	"name": "Pokhara",
	"main": {"temp": 18.5, "feels_like": 17.9, "humidity": 72},
	"weather": [{"description": "light rain"}],
	"wind": {"speed": 2.4},
	"rain": {"1h": 0.8},
	"sys": {"sunrise": 1700000100, "sunset": 1700040000, "country": "NP"}
}`

func newTestClient(baseURL string) *Client {
	return &Client{
		apiKey:  "test-key",
		baseURL: baseURL,
		lat:     28.2099,
		lon:     83.9805,
		client:  &http.Client{Timeout: time.Second},
		backoff: BackoffConfig{MaxRetries: 1, InitialInterval: time.Millisecond},
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "test"}),
	}
}

func TestCurrentParsesProviderPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("appid"); got != "test-key" {
			t.Errorf("appid = %q, want test-key", got)
		}

		if got := r.URL.Query().Get("units"); got != "metric" {
			t.Errorf("units = %q, want metric", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(currentWeatherFixture))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	current, err := client.Current(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if current.City != "Pokhara" || current.Country != "NP" {
		t.Fatalf("location = %s/%s, want Pokhara/NP", current.City, current.Country)
	}

	if current.Temperature != 18.5 || current.FeelsLike != 17.9 || current.Humidity != 72 {
		t.Fatalf("conditions mismatch: %+v", current)
	}

	if current.WeatherDescription != "light rain" {
		t.Fatalf("description = %q, want light rain", current.WeatherDescription)
	}

	if current.RainMM == nil || *current.RainMM != 0.8 {
		t.Fatalf("rain_mm = %v, want 0.8", current.RainMM)
	}

	if current.Sunrise != 1700000100 || current.Sunset != 1700040000 {
		t.Fatalf("sun times mismatch: %+v", current)
	}
}

func TestCurrentOmitsRainWhenAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name": "Pokhara", "main": {"temp": 20}, "sys": {"country": "NP"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	current, err := client.Current(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if current.RainMM != nil {
		t.Fatalf("rain_mm = %v, want nil", *current.RainMM)
	}
}

func TestCurrentRetriesServerErrors(t *testing.T) {
	var attempts int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)

			return
		}

		_, _ = w.Write([]byte(currentWeatherFixture))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	if _, err := client.Current(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if attempts != 2 {
		t.Fatalf("attempts = %d, want 2", attempts)
	}
}

func TestCurrentRequiresAPIKey(t *testing.T) {
	client := newTestClient("http://localhost:0")
	client.apiKey = ""

	if _, err := client.Current(context.Background()); err == nil {
		t.Fatal("expected an error without an api key")
	}
}
