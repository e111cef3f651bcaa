// internal/domain/models/snapshot.go
package models

import "time"

// StatsSnapshot is one fetched copy of the remote statistics payload.
// A snapshot is never modified after it is stored; refreshes replace it.
type StatsSnapshot struct {
	ID        string    `json:"id"`
	FetchedAt time.Time `json:"fetchedAt"`
	Payload   *Payload  `json:"-"`
}

// Age returns how old the snapshot is at now.
func (s *StatsSnapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// Payload is the decoded body of GET /onlinesInfo.
type Payload struct {
	ComputedAt   Timestamp             `json:"computedAt"`
	OnlinesStats *Node                 `json:"-"`
	TimeSeries   TimeSeriesStats       `json:"timeSeriesStats"`
	Inferences   StatisticalInferences `json:"statisticalInferences"`
}

// TimeSeriesStats holds the per-period visitor counts.
type TimeSeriesStats struct {
	ThisMonthEveryDay []DayCount `json:"thisMonthEveryDay"`
}

// DayCount is the number of distinct visitors between From and To.
type DayCount struct {
	From   Timestamp `json:"from"`
	To     Timestamp `json:"to"`
	Counts int64     `json:"counts"`
}

// StatisticalInferences holds raw samples used by the distribution charts.
type StatisticalInferences struct {
	StayingDurationsThisMonth []float64 `json:"stayingDurationsThisMonth"` // milliseconds
}

// DisplayEntry is one formatted statistic ready for a display target.
type DisplayEntry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
