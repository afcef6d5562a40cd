package weather

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// CurrentFetcher is the slice of Client the batch fetcher depends on.
type CurrentFetcher interface {
	FetchByCity(ctx context.Context, name string) (Snapshot, error)
}

// BatchResult is the outcome of one city's fetch within a batch. Exactly one
// of Snapshot/Err is meaningful: Err == nil means Snapshot is populated.
type BatchResult struct {
	City     string
	Snapshot Snapshot
	Err      error
}

// Ok reports whether this entry's fetch succeeded.
func (r BatchResult) Ok() bool {
	return r.Err == nil
}

// BatchFetcher fetches current weather for a list of cities concurrently,
// isolating failures per city so one bad entry never aborts the batch.
type BatchFetcher struct {
	fetcher CurrentFetcher
	log     *logrus.Entry
}

// NewBatchFetcher creates a BatchFetcher backed by the given client.
func NewBatchFetcher(fetcher CurrentFetcher, log *logrus.Logger) *BatchFetcher {
	return &BatchFetcher{
		fetcher: fetcher,
		log:     log.WithField("component", "batch-fetcher"),
	}
}

// FetchAll fans out one fetch per city and waits for all of them. The result
// slice has exactly one entry per input city, in input order; per-city errors
// are captured in the entry rather than propagated. An empty city list yields
// ErrEmptyWatchlist so the caller can tell "nothing to fetch" from success.
func (b *BatchFetcher) FetchAll(ctx context.Context, cities []string) ([]BatchResult, error) {
	if len(cities) == 0 {
		return nil, ErrEmptyWatchlist
	}

	batchSize.Observe(float64(len(cities)))

	results := make([]BatchResult, len(cities))

	var wg sync.WaitGroup
	for i, city := range cities {
		wg.Add(1)
		go func(i int, city string) {
			defer wg.Done()

			snap, err := b.fetcher.FetchByCity(ctx, city)
			if err != nil {
				b.log.WithFields(logrus.Fields{"city": city}).WithError(err).Warn("city fetch failed")
				results[i] = BatchResult{City: city, Err: err}
				return
			}
			results[i] = BatchResult{City: city, Snapshot: snap}
		}(i, city)
	}
	wg.Wait()

	return results, nil
}
