// Package forecast generates the synthetic 30-day demand forecast served by
// the forecast endpoint. Values come from a fixed day-index formula, not
// from stored data, so the series is fully deterministic for a given base
// date.
package forecast

import "time"

// Horizon is the number of days generated per request.
const Horizon = 30

// Point is one forecasted day.
type Point struct {
	Date             string `json:"date"`
	ForecastedDemand int    `json:"forecasted_demand"`
	Confidence       int    `json:"confidence"`
	Trend            string `json:"trend"`
}

// Generate produces the Horizon-day series starting at baseDate:
// demand = 1200 + 10i + 50*(i mod 7), confidence = 85 + (i mod 10),
// trend "increasing" every third day, "stable" otherwise.
func Generate(baseDate time.Time) []Point {
	points := make([]Point, 0, Horizon)
	for i := 0; i < Horizon; i++ {
		trend := "stable"
		if i%3 == 0 {
			trend = "increasing"
		}
		points = append(points, Point{
			Date:             baseDate.AddDate(0, 0, i).Format("2006-01-02"),
			ForecastedDemand: 1200 + i*10 + (i%7)*50,
			Confidence:       85 + i%10,
			Trend:            trend,
		})
	}
	return points
}
