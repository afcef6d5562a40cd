// Package scheduler periodically refreshes weather for the watchlist.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/Itscrl/cccs106-projects/internal/weather"
)

// Batcher fetches current weather for a list of cities.
type Batcher interface {
	FetchAll(ctx context.Context, cities []string) ([]weather.BatchResult, error)
}

// Watchlist supplies the cities to refresh.
type Watchlist interface {
	List() []string
}

// Refresher runs a batch fetch over the watchlist on a fixed interval and
// hands each round of results to a caller-supplied sink. The core holds no
// reference to any presentation state; subscribers react to the immutable
// result values on their own.
type Refresher struct {
	scheduler *gocron.Scheduler
	watchlist Watchlist
	batcher   Batcher
	interval  time.Duration
	publish   func([]weather.BatchResult)
	log       *logrus.Entry
}

// New creates a Refresher. publish is invoked once per completed round; it
// must not block for long.
func New(watchlist Watchlist, batcher Batcher, interval time.Duration, publish func([]weather.BatchResult), log *logrus.Logger) *Refresher {
	return &Refresher{
		scheduler: gocron.NewScheduler(time.UTC),
		watchlist: watchlist,
		batcher:   batcher,
		interval:  interval,
		publish:   publish,
		log:       log.WithField("component", "refresher"),
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (r *Refresher) Start() error {
	seconds := int(r.interval.Seconds())
	if seconds <= 0 {
		seconds = int((15 * time.Minute).Seconds())
	}

	_, err := r.scheduler.Every(seconds).Seconds().Do(r.runOnce)
	if err != nil {
		return err
	}

	r.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs. In-flight fetches
// run to completion; their results are discarded by the stopped subscriber.
func (r *Refresher) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}

func (r *Refresher) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cities := r.watchlist.List()
	results, err := r.batcher.FetchAll(ctx, cities)
	if err != nil {
		if errors.Is(err, weather.ErrEmptyWatchlist) {
			r.log.Debug("watchlist empty; nothing to refresh")
			return
		}
		r.log.WithError(err).Warn("watchlist refresh failed")
		return
	}

	r.log.WithField("cities", len(results)).Debug("watchlist refresh complete")
	r.publish(results)
}
