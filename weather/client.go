package weather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"

	"github.com/hwpaige/launchboard/common"
)

var log = logger.GetOrCreate("weather")

// Fixed values substituted whenever the live fetch fails, so the kiosk always
// has something to render
const (
	fallbackTemperatureF     = 70.0
	fallbackWindSpeedKts     = 5.0
	fallbackWindDirectionDeg = 180.0
	fallbackWeatherCode      = 0
)

type httpWeatherClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewHTTPWeatherClient creates a new Open-Meteo backed weather client
func NewHTTPWeatherClient(baseURL string, timeout time.Duration) *httpWeatherClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weather-upstream",
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &httpWeatherClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		breaker: cb,
	}
}

// Fetch returns the current conditions at the given coordinates. Any failure
// (network, timeout, open circuit, unusable body) yields the fixed fallback
// snapshot instead of an error.
func (w *httpWeatherClient) Fetch(ctx context.Context, lat float64, lon float64) common.WeatherSnapshot {
	snapshot, err := w.fetchLive(ctx, lat, lon)
	if err != nil {
		log.Warn("weather fetch failed, returning fallback values", "error", err)
		return common.WeatherSnapshot{
			TemperatureF:     fallbackTemperatureF,
			WindSpeedKts:     fallbackWindSpeedKts,
			WindDirectionDeg: fallbackWindDirectionDeg,
			WeatherCode:      fallbackWeatherCode,
			Fallback:         true,
			ObservedAt:       time.Now().UTC(),
		}
	}

	return snapshot
}

func (w *httpWeatherClient) fetchLive(ctx context.Context, lat float64, lon float64) (common.WeatherSnapshot, error) {
	url := fmt.Sprintf(
		"%s?latitude=%.4f&longitude=%.4f&current=temperature_2m,wind_speed_10m,wind_direction_10m,weather_code&temperature_unit=fahrenheit&wind_speed_unit=kn",
		w.baseURL, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return common.WeatherSnapshot{}, err
	}

	result, err := w.breaker.Execute(func() (interface{}, error) {
		resp, execErr := w.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("non-2xx HTTP status code: %s", http.StatusText(resp.StatusCode))
		}

		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return common.WeatherSnapshot{}, err
	}

	body, _ := result.([]byte)

	current := gjson.GetBytes(body, "current")
	if !current.Exists() {
		return common.WeatherSnapshot{}, fmt.Errorf("no 'current' block in weather response")
	}

	observedAt := time.Now().UTC()
	rawTime := current.Get("time").String()
	if rawTime != "" {
		parsed, parseErr := time.Parse("2006-01-02T15:04", rawTime)
		if parseErr == nil {
			observedAt = parsed.UTC()
		}
	}

	return common.WeatherSnapshot{
		TemperatureF:     current.Get("temperature_2m").Float(),
		WindSpeedKts:     current.Get("wind_speed_10m").Float(),
		WindDirectionDeg: current.Get("wind_direction_10m").Float(),
		WeatherCode:      int(current.Get("weather_code").Int()),
		Fallback:         false,
		ObservedAt:       observedAt,
	}, nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (w *httpWeatherClient) IsInterfaceNil() bool {
	return w == nil
}
