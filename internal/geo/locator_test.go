package geo

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestLocateParsesCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"latitude": 48.85, "longitude": 2.35, "city": "Paris"}`))
	}))
	t.Cleanup(srv.Close)

	l := NewLocator(srv.Client(), quietLogger(), WithLookupURL(srv.URL))

	lat, lon, err := l.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 48.85, lat)
	assert.Equal(t, 2.35, lon)
}

func TestLocateFailureMapsToUnavailable(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}},
		{"malformed payload", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			t.Cleanup(srv.Close)

			l := NewLocator(srv.Client(), quietLogger(), WithLookupURL(srv.URL))
			_, _, err := l.Locate(context.Background())
			assert.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestLocateConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	l := NewLocator(http.DefaultClient, quietLogger(), WithLookupURL(url))
	_, _, err := l.Locate(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
