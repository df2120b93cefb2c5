package services

import (
	"time"

	"github.com/GregMSThompson/dashboard-builder/internal/dto"
	"github.com/GregMSThompson/dashboard-builder/internal/errs"
	"github.com/GregMSThompson/dashboard-builder/internal/models"
)

var presetDays = map[string]int{
	dto.DateRangeLast7d:  7,
	dto.DateRangeLast14d: 14,
	dto.DateRangeLast30d: 30,
	dto.DateRangeLast90d: 90,
}

// ValidPreset reports whether p names a known date range preset.
func ValidPreset(p string) bool {
	if p == dto.DateRangeCustom {
		return true
	}
	_, ok := presetDays[p]
	return ok
}

// ResolveDateRange recomputes From/To for preset-driven ranges. Stored
// From/To values can drift from the preset label, so anything other than
// "custom" (or an empty preset) is derived fresh from now.
func ResolveDateRange(dr models.DateRange, now time.Time) models.DateRange {
	days, ok := presetDays[dr.Preset]
	if !ok {
		return dr
	}
	dr.From = startOfDay(now.AddDate(0, 0, -days))
	dr.To = endOfDay(now)
	return dr
}

// ValidateDateRange rejects unknown presets and custom ranges without bounds.
func ValidateDateRange(dr models.DateRange) error {
	if dr.Preset != "" && !ValidPreset(dr.Preset) {
		return errs.NewValidationError("unknown date range preset: " + dr.Preset)
	}
	if (dr.Preset == "" || dr.Preset == dto.DateRangeCustom) && (dr.From.IsZero() || dr.To.IsZero()) {
		return errs.NewValidationError("custom date range requires both from and to")
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
