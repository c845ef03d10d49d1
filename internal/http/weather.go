package http

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

type forecastResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		Windspeed   float64 `json:"windspeed"`
		Time        string  `json:"time"`
	} `json:"current_weather"`
}

type geocodeResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City   string `json:"city"`
		Town   string `json:"town"`
		Suburb string `json:"suburb"`
		State  string `json:"state"`
	} `json:"address"`
}

func (h *Handler) getWeather(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil || !isFinite(lat) || !isFinite(lon) {
		c.String(http.StatusBadRequest, "lat and lon must be numbers")
		return
	}

	forecast, err := h.fetchForecast(c, lat, lon)
	if err != nil {
		h.logger.WithError(err).Warn("weather upstream failed")
		c.String(http.StatusBadGateway, "weather upstream unavailable")
		return
	}

	// best-effort enrichment; the response never fails on geocoding alone
	place := h.reverseGeocode(c, lat, lon)

	c.JSON(http.StatusOK, gin.H{
		"place":   place,
		"tempC":   forecast.CurrentWeather.Temperature,
		"windKph": forecast.CurrentWeather.Windspeed,
		"time":    forecast.CurrentWeather.Time,
		"lat":     lat,
		"lon":     lon,
	})
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (h *Handler) fetchForecast(c *gin.Context, lat, lon float64) (*forecastResponse, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("current_weather", "true")

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, h.cfg.ForecastURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build forecast request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast upstream status %d", resp.StatusCode)
	}

	var forecast forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("decode forecast: %w", err)
	}
	return &forecast, nil
}

// reverseGeocode resolves a human-readable place name for the coordinates.
// Failures are swallowed and yield "".
func (h *Handler) reverseGeocode(c *gin.Context, lat, lon float64) string {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, h.cfg.GeocodeURL+"?"+q.Encode(), nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var geo geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&geo); err != nil {
		return ""
	}

	for _, candidate := range []string{
		geo.Address.City,
		geo.Address.Town,
		geo.Address.Suburb,
		geo.Address.State,
		geo.DisplayName,
	} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}
