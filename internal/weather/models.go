package weather

import (
	"time"
)

// FallbackIcon is used when the provider payload carries no icon code.
const FallbackIcon = "01d"

// Snapshot is a single point-in-time weather reading for one location,
// normalized from a successful provider response. Immutable after construction.
type Snapshot struct {
	City        string  `json:"city"`
	Country     string  `json:"country"` // ISO country code
	Temperature float64 `json:"temperatureC"`
	FeelsLike   float64 `json:"feelsLikeC"`
	Humidity    int     `json:"humidityPercent"`
	WindSpeed   float64 `json:"windSpeedMs"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// ForecastPoint is one 3-hour-resolution predicted reading within the
// provider's multi-day forecast feed. Timestamps are in the provider's
// local time and are never converted.
type ForecastPoint struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperatureC"`
	Humidity    int       `json:"humidityPercent"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

// DailySummary aggregates all forecast points sharing a calendar date.
// High/Low cover every point of the day; Description and Icon come from the
// chronologically first point; Humidity is the integer-truncated mean.
type DailySummary struct {
	Date        time.Time `json:"date"` // truncated to day granularity
	High        float64   `json:"highC"`
	Low         float64   `json:"lowC"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Humidity    int       `json:"avgHumidityPercent"`
}

// Alert classifies a snapshot's extreme conditions. The presentation layer
// decides how (and whether) to surface it.
type Alert string

const (
	AlertNone     Alert = ""
	AlertHeat     Alert = "heat"
	AlertFreezing Alert = "freezing"
	AlertWind     Alert = "wind"
)

// ClassifyAlert returns the alert condition a snapshot triggers, if any.
// Thresholds: above 35°C, below 0°C, wind above 20 m/s.
func ClassifyAlert(s Snapshot) Alert {
	switch {
	case s.Temperature > 35:
		return AlertHeat
	case s.Temperature < 0:
		return AlertFreezing
	case s.WindSpeed > 20:
		return AlertWind
	default:
		return AlertNone
	}
}
