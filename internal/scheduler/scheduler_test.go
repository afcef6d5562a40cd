package scheduler

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Itscrl/cccs106-projects/internal/weather"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type staticWatchlist []string

func (w staticWatchlist) List() []string { return w }

type fakeBatcher struct{}

func (fakeBatcher) FetchAll(ctx context.Context, cities []string) ([]weather.BatchResult, error) {
	if len(cities) == 0 {
		return nil, weather.ErrEmptyWatchlist
	}
	results := make([]weather.BatchResult, len(cities))
	for i, c := range cities {
		results[i] = weather.BatchResult{City: c, Snapshot: weather.Snapshot{City: c}}
	}
	return results, nil
}

func TestRefresherPublishesRounds(t *testing.T) {
	rounds := make(chan []weather.BatchResult, 4)
	r := New(staticWatchlist{"Paris", "Tokyo"}, fakeBatcher{}, time.Second, func(results []weather.BatchResult) {
		rounds <- results
	}, quietLogger())

	require.NoError(t, r.Start())
	defer r.Stop()

	select {
	case results := <-rounds:
		require.Len(t, results, 2)
		assert.Equal(t, "Paris", results[0].City)
		assert.Equal(t, "Tokyo", results[1].City)
	case <-time.After(3 * time.Second):
		t.Fatal("no refresh round published")
	}
}

func TestRefresherSkipsEmptyWatchlist(t *testing.T) {
	rounds := make(chan []weather.BatchResult, 1)
	r := New(staticWatchlist{}, fakeBatcher{}, time.Second, func(results []weather.BatchResult) {
		rounds <- results
	}, quietLogger())

	require.NoError(t, r.Start())
	defer r.Stop()

	select {
	case <-rounds:
		t.Fatal("empty watchlist must not publish a round")
	case <-time.After(1500 * time.Millisecond):
	}
}
