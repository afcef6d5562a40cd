package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/Itscrl/cccs106-projects/internal/config"
	"github.com/Itscrl/cccs106-projects/internal/geo"
	"github.com/Itscrl/cccs106-projects/internal/history"
	"github.com/Itscrl/cccs106-projects/internal/scheduler"
	"github.com/Itscrl/cccs106-projects/internal/watchlist"
	"github.com/Itscrl/cccs106-projects/internal/weather"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	log.SetLevel(cfg.ParseLevel())

	// Shared HTTP client for all outbound calls, carrying the bounded timeout.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	client := weather.NewClient(httpClient, cfg.OpenWeatherAPIKey, log)
	locator := geo.NewLocator(httpClient, log)
	watched := watchlist.Open(cfg.WatchlistPath, log)
	recent := history.NewTracker()
	batch := weather.NewBatchFetcher(client, log)

	ctx := context.Background()

	// Cities named on the command line are looked up once, like a search in
	// the app; with no arguments we fall back to "weather here".
	if args := os.Args[1:]; len(args) > 0 {
		for _, city := range args {
			showCity(ctx, log, client, recent, city)
		}
		showForecast(ctx, log, client, args[0])
		log.WithField("recent", recent.List()).Info("search history")
	} else {
		showLocalWeather(ctx, log, client, locator)
	}

	// Periodic refresh of the watchlist; each round is published as a set of
	// immutable per-city results.
	refresher := scheduler.New(watched, batch, cfg.RefreshInterval, func(results []weather.BatchResult) {
		for _, r := range results {
			if !r.Ok() {
				log.WithField("city", r.City).WithError(r.Err).Warn("refresh failed")
				continue
			}
			logSnapshot(log, r.Snapshot)
		}
	}, log)

	if len(watched.List()) == 0 {
		log.Info("watchlist is empty; refresh rounds will be skipped")
	}
	if err := refresher.Start(); err != nil {
		log.WithError(err).Fatal("failed to start refresher")
	}
	defer refresher.Stop()

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	log.Info("shutting down")
}

func showCity(ctx context.Context, log *logrus.Logger, client *weather.Client, recent *history.Tracker, city string) {
	snap, err := client.FetchByCity(ctx, city)
	if err != nil {
		log.WithField("city", city).WithError(err).Error("fetch failed")
		return
	}
	recent.Record(city)
	logSnapshot(log, snap)
}

func showForecast(ctx context.Context, log *logrus.Logger, client *weather.Client, city string) {
	points, err := client.FetchForecast(ctx, city)
	if err != nil {
		log.WithField("city", city).WithError(err).Error("forecast fetch failed")
		return
	}

	for _, day := range weather.GroupDaily(points) {
		log.WithFields(logrus.Fields{
			"date":     day.Date.Format("2006-01-02"),
			"high":     day.High,
			"low":      day.Low,
			"humidity": day.Humidity,
			"weather":  day.Description,
		}).Info("forecast")
	}
}

func showLocalWeather(ctx context.Context, log *logrus.Logger, client *weather.Client, locator *geo.Locator) {
	lat, lon, err := locator.Locate(ctx)
	if err != nil {
		log.WithError(err).Error("could not determine location")
		return
	}

	snap, err := client.FetchByCoordinates(ctx, lat, lon)
	if err != nil {
		log.WithError(err).Error("fetch failed")
		return
	}
	logSnapshot(log, snap)
}

func logSnapshot(log *logrus.Logger, snap weather.Snapshot) {
	entry := log.WithFields(logrus.Fields{
		"city":      snap.City,
		"country":   snap.Country,
		"temp":      snap.Temperature,
		"feelsLike": snap.FeelsLike,
		"humidity":  snap.Humidity,
		"wind":      snap.WindSpeed,
		"weather":   snap.Description,
	})
	if alert := weather.ClassifyAlert(snap); alert != weather.AlertNone {
		entry = entry.WithField("alert", alert)
	}
	entry.Info("current conditions")
}
