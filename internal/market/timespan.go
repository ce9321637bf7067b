package market

import (
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/tickerlens/tickerlens/internal/types"
)

// klineMultiplier maps a kline granularity onto the aggregate multiplier
// Polygon expects alongside the timespan unit.
func klineMultiplier(k types.KlineType) int {
	switch k {
	case types.KlineTypeOneMinute:
		return 1
	case types.KlineTypeFiveMinutes:
		return 5
	case types.KlineTypeFifteenMinutes:
		return 15
	case types.KlineTypeThirtyMinutes:
		return 30
	case types.KlineTypeOneHour:
		return 1
	case types.KlineTypeDay, types.KlineTypeWeek, types.KlineTypeMonth:
		return 1
	default:
		return 1
	}
}

// klineTimespan maps a kline granularity onto the Polygon timespan unit.
func klineTimespan(k types.KlineType) models.Timespan {
	switch k {
	case types.KlineTypeOneMinute, types.KlineTypeFiveMinutes, types.KlineTypeFifteenMinutes, types.KlineTypeThirtyMinutes:
		return models.Minute
	case types.KlineTypeOneHour:
		return models.Hour
	case types.KlineTypeDay:
		return models.Day
	case types.KlineTypeWeek:
		return models.Week
	case types.KlineTypeMonth:
		return models.Month
	default:
		return models.Day
	}
}

// klineLookback returns the fetch window start for a granularity. The
// windows are generous so the requested bar count survives weekends and
// market holidays; the batch is trimmed to the limit afterwards.
func klineLookback(k types.KlineType, now time.Time) time.Time {
	switch k {
	case types.KlineTypeOneMinute, types.KlineTypeFiveMinutes, types.KlineTypeFifteenMinutes, types.KlineTypeThirtyMinutes:
		return now.AddDate(0, 0, -7)
	case types.KlineTypeOneHour:
		return now.AddDate(0, -3, 0)
	case types.KlineTypeDay:
		return now.AddDate(-2, 0, 0)
	case types.KlineTypeWeek:
		return now.AddDate(-5, 0, 0)
	case types.KlineTypeMonth:
		return now.AddDate(-10, 0, 0)
	default:
		return now.AddDate(-2, 0, 0)
	}
}
