package weather

import "time"

// maxForecastDays caps how many distinct calendar days a grouping reports.
const maxForecastDays = 5

// GroupDaily groups 3-hourly forecast points into per-day summaries.
//
// Days appear in the order they are first seen in the input, capped at five
// distinct days. High and low cover every point of a day; description and
// icon come from the day's chronologically earliest point; humidity is the
// integer-truncated mean. The input is not assumed to be sorted. An empty
// input yields an empty (nil) result.
func GroupDaily(points []ForecastPoint) []DailySummary {
	if len(points) == 0 {
		return nil
	}

	type dayAccum struct {
		first       ForecastPoint // earliest point seen so far
		high        float64
		low         float64
		humiditySum int
		count       int
	}

	days := make(map[string]*dayAccum)
	var order []string

	for _, p := range points {
		key := p.Timestamp.Format("2006-01-02")

		acc, ok := days[key]
		if !ok {
			days[key] = &dayAccum{
				first:       p,
				high:        p.Temperature,
				low:         p.Temperature,
				humiditySum: p.Humidity,
				count:       1,
			}
			order = append(order, key)
			continue
		}

		if p.Timestamp.Before(acc.first.Timestamp) {
			acc.first = p
		}
		if p.Temperature > acc.high {
			acc.high = p.Temperature
		}
		if p.Temperature < acc.low {
			acc.low = p.Temperature
		}
		acc.humiditySum += p.Humidity
		acc.count++
	}

	if len(order) > maxForecastDays {
		order = order[:maxForecastDays]
	}

	summaries := make([]DailySummary, 0, len(order))
	for _, key := range order {
		acc := days[key]
		ts := acc.first.Timestamp
		summaries = append(summaries, DailySummary{
			Date:        time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location()),
			High:        acc.high,
			Low:         acc.low,
			Description: acc.first.Description,
			Icon:        acc.first.Icon,
			Humidity:    acc.humiditySum / acc.count,
		})
	}

	return summaries
}
