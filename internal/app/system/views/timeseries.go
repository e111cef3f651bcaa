// Package views derives chart-ready data from a statistics snapshot.
package views

import (
	"fmt"

	"github.com/dalemusser/visitorstats/internal/domain/models"
)

// ThisMonthEveryDay returns the per-day visitor counts of the current month
// in the order the service reported them. The returned slice is a copy.
func ThisMonthEveryDay(p *models.Payload) []models.DayCount {
	if p == nil {
		return nil
	}
	src := p.TimeSeries.ThisMonthEveryDay
	out := make([]models.DayCount, len(src))
	copy(out, src)
	return out
}

// MaxCount returns the largest Counts value, or 0 for an empty series.
func MaxCount(days []models.DayCount) int64 {
	var m int64
	for _, d := range days {
		if d.Counts > m {
			m = d.Counts
		}
	}
	return m
}

// PromptText is the hover text for one day of the time-series chart.
func PromptText(d models.DayCount) string {
	return fmt.Sprintf("从 %s 到 %s 期间共有 %d 名独立访客曾经到访过我站．", d.From.ISO(), d.To.ISO(), d.Counts)
}
