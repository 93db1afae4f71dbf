package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPWeatherClient_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		assert.Equal(t, "28.5729", query.Get("latitude"))
		assert.Equal(t, "fahrenheit", query.Get("temperature_unit"))
		assert.Equal(t, "kn", query.Get("wind_speed_unit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"current": {
				"time": "2024-03-05T14:30",
				"temperature_2m": 74.3,
				"wind_speed_10m": 12.5,
				"wind_direction_10m": 90,
				"weather_code": 3
			}
		}`))
	}))
	defer srv.Close()

	c := NewHTTPWeatherClient(srv.URL, time.Second)
	snapshot := c.Fetch(context.Background(), 28.5729, -80.6490)

	assert.False(t, snapshot.Fallback)
	assert.Equal(t, 74.3, snapshot.TemperatureF)
	assert.Equal(t, 12.5, snapshot.WindSpeedKts)
	assert.Equal(t, 90.0, snapshot.WindDirectionDeg)
	assert.Equal(t, 3, snapshot.WeatherCode)
	assert.Equal(t, time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), snapshot.ObservedAt)

	require.False(t, c.IsInterfaceNil())
}

func TestHTTPWeatherClient_FallbackOnFailure(t *testing.T) {
	t.Parallel()

	t.Run("connection refused", func(t *testing.T) {
		c := NewHTTPWeatherClient("http://localhost:59998", time.Second)
		snapshot := c.Fetch(context.Background(), 28.5729, -80.6490)

		assert.True(t, snapshot.Fallback)
		assert.Equal(t, 70.0, snapshot.TemperatureF)
		assert.Equal(t, 5.0, snapshot.WindSpeedKts)
		assert.Equal(t, 180.0, snapshot.WindDirectionDeg)
		assert.Equal(t, 0, snapshot.WeatherCode)
	})
	t.Run("unusable body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"no_current_block": true}`))
		}))
		defer srv.Close()

		c := NewHTTPWeatherClient(srv.URL, time.Second)
		snapshot := c.Fetch(context.Background(), 28.5729, -80.6490)
		assert.True(t, snapshot.Fallback)
	})
	t.Run("non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		c := NewHTTPWeatherClient(srv.URL, time.Second)
		snapshot := c.Fetch(context.Background(), 28.5729, -80.6490)
		assert.True(t, snapshot.Fallback)
	})
}
