package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const (
	defaultCurrentURL  = "https://api.openweathermap.org/data/2.5/weather"
	defaultForecastURL = "https://api.openweathermap.org/data/2.5/forecast"

	// Forecast entries carry a local-time string; no timezone conversion.
	forecastTimeLayout = "2006-01-02 15:04:05"
)

var validate = validator.New()

// Client is a thin typed wrapper over the weather provider's current-conditions
// and 5-day/3-hour forecast endpoints. Each call performs exactly one network
// round trip; retry policy belongs to the caller.
type Client struct {
	apiKey      string
	currentURL  string
	forecastURL string
	client      *http.Client
	circuit     *gobreaker.CircuitBreaker
	log         *logrus.Entry
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithBaseURLs overrides the provider endpoints. Used by tests.
func WithBaseURLs(current, forecast string) ClientOption {
	return func(c *Client) {
		c.currentURL = current
		c.forecastURL = forecast
	}
}

// NewClient creates a provider client sharing the given HTTP client, which is
// expected to carry the bounded request timeout.
func NewClient(client *http.Client, apiKey string, log *logrus.Logger, opts ...ClientOption) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	c := &Client{
		apiKey:      apiKey,
		currentURL:  defaultCurrentURL,
		forecastURL: defaultForecastURL,
		client:      client,
		circuit:     cb,
		log:         log.WithField("component", "weather-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchByCity fetches current conditions for a city by name. Blank names are
// rejected before any network I/O.
func (c *Client) FetchByCity(ctx context.Context, name string) (Snapshot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Snapshot{}, ErrEmptyCity
	}

	values := url.Values{}
	values.Set("q", name)
	return c.fetchCurrent(ctx, values)
}

type coordinates struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

// FetchByCoordinates fetches current conditions for a latitude/longitude pair.
func (c *Client) FetchByCoordinates(ctx context.Context, lat, lon float64) (Snapshot, error) {
	if err := validate.Struct(coordinates{Lat: lat, Lon: lon}); err != nil {
		return Snapshot{}, fmt.Errorf("%w: lat=%f lon=%f", ErrInvalidCoordinates, lat, lon)
	}

	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))
	return c.fetchCurrent(ctx, values)
}

func (c *Client) fetchCurrent(ctx context.Context, values url.Values) (Snapshot, error) {
	started := time.Now()

	resp, err := c.do(ctx, c.currentURL, values)
	if err != nil {
		observeFetch("current", outcomeFor(err), time.Since(started))
		return Snapshot{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Name string `json:"name"`
		Sys  struct {
			Country string `json:"country"`
		} `json:"sys"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		observeFetch("current", "parse_error", time.Since(started))
		return Snapshot{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	snap := Snapshot{
		City:        payload.Name,
		Country:     payload.Sys.Country,
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
		Icon:        FallbackIcon,
	}
	if len(payload.Weather) > 0 {
		snap.Description = payload.Weather[0].Description
		if payload.Weather[0].Icon != "" {
			snap.Icon = payload.Weather[0].Icon
		}
	}

	observeFetch("current", "success", time.Since(started))
	return snap, nil
}

// FetchForecast fetches the provider's 5-day/3-hour forecast feed for a city.
// The returned points are in provider order, one per 3-hour slot.
func (c *Client) FetchForecast(ctx context.Context, name string) ([]ForecastPoint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCity
	}

	started := time.Now()

	values := url.Values{}
	values.Set("q", name)

	resp, err := c.do(ctx, c.forecastURL, values)
	if err != nil {
		observeFetch("forecast", outcomeFor(err), time.Since(started))
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		List []struct {
			DtTxt string `json:"dt_txt"`
			Main  struct {
				Temp     float64 `json:"temp"`
				Humidity int     `json:"humidity"`
			} `json:"main"`
			Weather []struct {
				Description string `json:"description"`
				Icon        string `json:"icon"`
			} `json:"weather"`
		} `json:"list"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		observeFetch("forecast", "parse_error", time.Since(started))
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	points := make([]ForecastPoint, 0, len(payload.List))
	for _, item := range payload.List {
		ts, err := time.Parse(forecastTimeLayout, item.DtTxt)
		if err != nil {
			observeFetch("forecast", "parse_error", time.Since(started))
			return nil, fmt.Errorf("%w: bad timestamp %q", ErrParse, item.DtTxt)
		}

		p := ForecastPoint{
			Timestamp:   ts,
			Temperature: item.Main.Temp,
			Humidity:    item.Main.Humidity,
			Icon:        FallbackIcon,
		}
		if len(item.Weather) > 0 {
			p.Description = item.Weather[0].Description
			if item.Weather[0].Icon != "" {
				p.Icon = item.Weather[0].Icon
			}
		}
		points = append(points, p)
	}

	observeFetch("forecast", "success", time.Since(started))
	return points, nil
}

// do issues a single GET through the circuit breaker and maps HTTP status to
// the error taxonomy. Transport failures and 5xx count against the breaker;
// client errors (bad city, bad key) do not trip it.
func (c *Client) do(ctx context.Context, baseURL string, values url.Values) (*http.Response, error) {
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")

	u := fmt.Sprintf("%s?%s", baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.client.Do(req)
		if execErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransient, execErr)
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: status %d", ErrTransient, resp.StatusCode)
		}

		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: circuit open", ErrTransient)
		}
		c.log.WithError(err).Debug("provider request failed")
		return nil, err
	}

	resp := result.(*http.Response)
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d", ErrTransient, resp.StatusCode)
	}

	return resp, nil
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrParse):
		return "parse_error"
	default:
		return "transient"
	}
}
