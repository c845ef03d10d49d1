package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleForecast = `{"current_weather":{"temperature":21.4,"windspeed":9.3,"time":"2026-08-31T12:00"}}`

func newForecastServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))
		assert.NotEmpty(t, r.URL.Query().Get("latitude"))
		assert.NotEmpty(t, r.URL.Query().Get("longitude"))
		fmt.Fprint(w, sampleForecast)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newGeocodeServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			http.Error(w, "boom", status)
			return
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestWeatherValidatesCoordinates(t *testing.T) {
	router := newTestRouter(t, nil)
	cookie := sessionFor("juan")

	for _, target := range []string{
		"/api/weather",
		"/api/weather?lat=abc&lon=2",
		"/api/weather?lat=1&lon=xyz",
		"/api/weather?lat=NaN&lon=2",
		"/api/weather?lat=Inf&lon=2",
	} {
		w := doRequest(t, router, http.MethodGet, target, nil, cookie)
		assert.Equalf(t, http.StatusBadRequest, w.Code, "target %s", target)
	}
}

func TestWeatherCombinesForecastAndPlace(t *testing.T) {
	forecast := newForecastServer(t)
	geocode := newGeocodeServer(t, `{"display_name":"Madrid, Spain","address":{"city":"Madrid","state":"Comunidad de Madrid"}}`, http.StatusOK)

	router := newTestRouter(t, func(cfg *Config) {
		cfg.ForecastURL = forecast.URL
		cfg.GeocodeURL = geocode.URL
	})

	w := doRequest(t, router, http.MethodGet, "/api/weather?lat=40.4&lon=-3.7", nil, sessionFor("juan"))
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Place   string  `json:"place"`
		TempC   float64 `json:"tempC"`
		WindKph float64 `json:"windKph"`
		Time    string  `json:"time"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "Madrid", payload.Place)
	assert.Equal(t, 21.4, payload.TempC)
	assert.Equal(t, 9.3, payload.WindKph)
	assert.Equal(t, "2026-08-31T12:00", payload.Time)
	assert.Equal(t, 40.4, payload.Lat)
	assert.Equal(t, -3.7, payload.Lon)
}

func TestWeatherPlacePreference(t *testing.T) {
	cases := []struct {
		name        string
		geocodeBody string
		want        string
	}{
		{"city", `{"address":{"city":"Madrid","town":"Chamberi"}}`, "Madrid"},
		{"town", `{"address":{"town":"Alcobendas","suburb":"Norte"}}`, "Alcobendas"},
		{"suburb", `{"address":{"suburb":"Lavapies","state":"Madrid"}}`, "Lavapies"},
		{"state", `{"address":{"state":"Comunidad de Madrid"}}`, "Comunidad de Madrid"},
		{"display_name", `{"display_name":"Somewhere remote"}`, "Somewhere remote"},
		{"none", `{}`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			forecast := newForecastServer(t)
			geocode := newGeocodeServer(t, tc.geocodeBody, http.StatusOK)

			router := newTestRouter(t, func(cfg *Config) {
				cfg.ForecastURL = forecast.URL
				cfg.GeocodeURL = geocode.URL
			})

			w := doRequest(t, router, http.MethodGet, "/api/weather?lat=1&lon=2", nil, sessionFor("juan"))
			require.Equal(t, http.StatusOK, w.Code)

			var payload struct {
				Place string `json:"place"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
			assert.Equal(t, tc.want, payload.Place)
		})
	}
}

func TestWeatherUpstreamFailure(t *testing.T) {
	forecast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(forecast.Close)

	router := newTestRouter(t, func(cfg *Config) {
		cfg.ForecastURL = forecast.URL
	})

	w := doRequest(t, router, http.MethodGet, "/api/weather?lat=1&lon=2", nil, sessionFor("juan"))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestWeatherGeocodeFailureSwallowed(t *testing.T) {
	forecast := newForecastServer(t)
	geocode := newGeocodeServer(t, "", http.StatusInternalServerError)

	router := newTestRouter(t, func(cfg *Config) {
		cfg.ForecastURL = forecast.URL
		cfg.GeocodeURL = geocode.URL
	})

	w := doRequest(t, router, http.MethodGet, "/api/weather?lat=1&lon=2", nil, sessionFor("juan"))
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Place string  `json:"place"`
		TempC float64 `json:"tempC"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Empty(t, payload.Place)
	assert.Equal(t, 21.4, payload.TempC)
}
