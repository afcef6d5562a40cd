// Package geo resolves the caller's approximate position via IP geolocation.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

const defaultLookupURL = "https://ipapi.co/json/"

// ErrUnavailable is the single condition surfaced for any lookup failure;
// the caller shows one generic "could not determine location" message.
var ErrUnavailable = errors.New("could not determine location")

// Locator performs a single unauthenticated IP-based geolocation request.
type Locator struct {
	client    *http.Client
	lookupURL string
	log       *logrus.Entry
}

// LocatorOption customizes a Locator.
type LocatorOption func(*Locator)

// WithLookupURL overrides the geolocation endpoint. Used by tests.
func WithLookupURL(u string) LocatorOption {
	return func(l *Locator) {
		l.lookupURL = u
	}
}

// NewLocator creates a Locator sharing the given HTTP client.
func NewLocator(client *http.Client, log *logrus.Logger, opts ...LocatorOption) *Locator {
	l := &Locator{
		client:    client,
		lookupURL: defaultLookupURL,
		log:       log.WithField("component", "geo"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate returns the caller's latitude and longitude. Every failure mode maps
// to ErrUnavailable.
func (l *Locator) Locate(ctx context.Context) (lat, lon float64, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.lookupURL, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		l.log.WithError(err).Debug("geolocation request failed")
		return 0, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, 0, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var payload struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return payload.Latitude, payload.Longitude, nil
}
