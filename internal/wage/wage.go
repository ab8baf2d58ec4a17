// Package wage holds the daily-wage pay policy. All amounts are whole rupees
// at rest; intermediate credits are decimals and are rounded only at entry
// and summary boundaries, never mid-accumulation.
package wage

import (
	"fmt"

	"github.com/salmanfarismn/LaborLog/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// HoursPerDay is the divisor for hour-based (CUSTOM) attendance.
	HoursPerDay = 8
	// DefaultWorkingDays converts a legacy monthly salary into a daily wage.
	// Used only by the wagemigrate tool.
	DefaultWorkingDays = 26
)

var hoursPerDay = decimal.NewFromInt(HoursPerDay)
var half = decimal.NewFromFloat(0.5)

// Credit converts one attendance kind into the amount earned that day.
// customHours is only meaningful for CUSTOM and defaults to zero when absent.
// The function is total: unknown kinds earn nothing rather than erroring.
func Credit(kind domain.AttendanceKind, customHours *float64, dailyWage int64) decimal.Decimal {
	rate := decimal.NewFromInt(dailyWage)
	switch kind {
	case domain.AttendanceFullDay:
		return rate
	case domain.AttendanceHalfDay:
		return rate.Mul(half)
	case domain.AttendanceCustom:
		hours := decimal.Zero
		if customHours != nil {
			hours = decimal.NewFromFloat(*customHours)
		}
		return hours.Mul(rate.Div(hoursPerDay))
	default:
		return decimal.Zero
	}
}

// Description renders the ledger-entry text for an attendance kind.
func Description(kind domain.AttendanceKind, customHours *float64) string {
	switch kind {
	case domain.AttendanceFullDay:
		return "Full Day Work"
	case domain.AttendanceHalfDay:
		return "Half Day Work"
	case domain.AttendanceCustom:
		hours := 0.0
		if customHours != nil {
			hours = *customHours
		}
		return fmt.Sprintf("Custom Hours (%gh)", hours)
	case domain.AttendanceAbsent:
		return "Absent"
	default:
		return string(kind)
	}
}

// EffectiveDays weighs full days at 1.0 and half days at 0.5.
func EffectiveDays(fullDays, halfDays int64) decimal.Decimal {
	return decimal.NewFromInt(fullDays).Add(decimal.NewFromInt(halfDays).Mul(half))
}

// PeriodEarnings totals wages for an aggregated period: full days at the
// daily wage, half days at half, custom hours at the hourly fraction. The
// result is unrounded; callers round at the summary boundary.
func PeriodEarnings(fullDays, halfDays int64, customHours float64, dailyWage int64) decimal.Decimal {
	rate := decimal.NewFromInt(dailyWage)
	earned := rate.Mul(decimal.NewFromInt(fullDays))
	earned = earned.Add(rate.Mul(half).Mul(decimal.NewFromInt(halfDays)))
	earned = earned.Add(decimal.NewFromFloat(customHours).Mul(rate.Div(hoursPerDay)))
	return earned
}

// RoundRupees rounds to the nearest whole rupee, half away from zero.
func RoundRupees(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
