package weather

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeFetcher resolves each city from a canned table.
type fakeFetcher struct {
	snapshots map[string]Snapshot
	errors    map[string]error
	delay     time.Duration
}

func (f *fakeFetcher) FetchByCity(ctx context.Context, name string) (Snapshot, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if err, ok := f.errors[name]; ok {
		return Snapshot{}, err
	}
	if snap, ok := f.snapshots[name]; ok {
		return snap, nil
	}
	return Snapshot{}, ErrNotFound
}

func TestFetchAllEmptyWatchlist(t *testing.T) {
	b := NewBatchFetcher(&fakeFetcher{}, quietLogger())

	results, err := b.FetchAll(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyWatchlist)
	assert.Nil(t, results)
}

func TestFetchAllIsolatesFailures(t *testing.T) {
	f := &fakeFetcher{
		snapshots: map[string]Snapshot{
			"Paris": {City: "Paris", Country: "FR", Temperature: 18.2},
		},
		errors: map[string]error{
			"Tokyo": ErrTransient,
		},
	}
	b := NewBatchFetcher(f, quietLogger())

	results, err := b.FetchAll(context.Background(), []string{"Paris", "Tokyo"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].Ok())
	assert.Equal(t, "Paris", results[0].City)
	assert.Equal(t, 18.2, results[0].Snapshot.Temperature)

	assert.False(t, results[1].Ok())
	assert.Equal(t, "Tokyo", results[1].City)
	assert.ErrorIs(t, results[1].Err, ErrTransient)
}

func TestFetchAllPreservesOrderAndCount(t *testing.T) {
	f := &fakeFetcher{
		snapshots: map[string]Snapshot{},
		errors:    map[string]error{"bad": ErrNotFound},
		delay:     5 * time.Millisecond,
	}
	cities := []string{"c0", "c1", "bad", "c3", "c4"}
	for _, c := range cities {
		if c != "bad" {
			f.snapshots[c] = Snapshot{City: strings.ToUpper(c)}
		}
	}

	b := NewBatchFetcher(f, quietLogger())
	results, err := b.FetchAll(context.Background(), cities)
	require.NoError(t, err)
	require.Len(t, results, len(cities))

	for i, c := range cities {
		assert.Equal(t, c, results[i].City)
		if c == "bad" {
			assert.ErrorIs(t, results[i].Err, ErrNotFound)
		} else {
			require.True(t, results[i].Ok())
			assert.Equal(t, strings.ToUpper(c), results[i].Snapshot.City)
		}
	}
}

func TestFetchAllAllFailuresStillOneResultPerCity(t *testing.T) {
	f := &fakeFetcher{
		errors: map[string]error{
			"a": ErrTransient,
			"b": ErrNotFound,
			"c": ErrUnauthorized,
		},
	}
	b := NewBatchFetcher(f, quietLogger())

	results, err := b.FetchAll(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.False(t, r.Ok())
	}
}
