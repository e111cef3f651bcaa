// internal/app/features/report/reltime.go
package report

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

var zhMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Second, Format: "刚刚", DivBy: time.Second},
	{D: time.Minute, Format: "%d 秒%s", DivBy: time.Second},
	{D: time.Hour, Format: "%d 分钟%s", DivBy: time.Minute},
	{D: humanize.Day, Format: "%d 小时%s", DivBy: time.Hour},
	{D: humanize.Month, Format: "%d 天%s", DivBy: humanize.Day},
	{D: humanize.Year, Format: "%d 个月%s", DivBy: humanize.Month},
	{D: math.MaxInt64, Format: "%d 年%s", DivBy: humanize.Year},
}

// RelTime describes then relative to now, e.g. "3 分钟前".
func RelTime(then, now time.Time) string {
	return humanize.CustomRelTime(then, now, "前", "后", zhMagnitudes)
}
