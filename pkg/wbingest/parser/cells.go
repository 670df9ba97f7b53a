package parser

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/wbingest-go/pkg/wbingest/models"
	"github.com/xuri/excelize/v2"
)

// dateLayouts are tried in order for text holding only a calendar date.
// Slash and dash forms are read month first.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"02-Jan-2006",
	"2-Jan-2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"20060102",
}

// dateTimeLayouts are tried in order for text holding a date and a time.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"1/2/2006 15:04",
}

// clockLayouts are tried in order for text holding a time of day.
var clockLayouts = []string{
	"15:04:05",
	"15:04",
	"15:04:05.000",
	"3:04 PM",
	"3:04:05 PM",
	"3:04PM",
	"3PM",
}

// parseValue attempts to type the text of a cell.
// Returns a number for finite numeric text, a bool for TRUE/FALSE, empty for
// blank text, or the original string.
func parseValue(s string) models.Value {
	if s == "" {
		return models.Empty()
	}
	// Try number
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return models.NumberValue(f)
	}
	switch s {
	case "TRUE", "true", "True":
		return models.BoolValue(true)
	case "FALSE", "false", "False":
		return models.BoolValue(false)
	}
	return models.TextValue(s)
}

// trimTrailingBlankRows drops blank rows at the bottom of a sheet.
func trimTrailingBlankRows(rows [][]models.Value) [][]models.Value {
	end := len(rows)
	for end > 0 && rowIsBlank(rows[end-1]) {
		end--
	}
	return rows[:end]
}

func rowIsBlank(row []models.Value) bool {
	for _, v := range row {
		if !v.IsBlank() {
			return false
		}
	}
	return true
}

func parseDateTimeText(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseTime reads v as a point in time. Time cells pass through and text is
// parsed against the known date and date-time layouts; numbers are not
// treated as dates.
func ParseTime(v models.Value) (time.Time, bool) {
	switch v.Kind() {
	case models.KindTime:
		return v.Time()
	case models.KindString:
		return parseDateTimeText(v.Text())
	default:
		return time.Time{}, false
	}
}

// CombineDateTime joins a date cell and a time-of-day cell into one UTC
// timestamp. Dates may be time cells, text or Excel serial numbers; times may
// be time cells, text or fractions of a day.
func CombineDateTime(date, clock models.Value) (time.Time, bool) {
	day, ok := calendarDate(date)
	if !ok {
		return time.Time{}, false
	}
	offset, ok := timeOfDay(clock)
	if !ok {
		return time.Time{}, false
	}
	return day.Add(offset), true
}

func calendarDate(v models.Value) (time.Time, bool) {
	var t time.Time
	switch v.Kind() {
	case models.KindTime:
		t, _ = v.Time()
	case models.KindString:
		parsed, ok := parseDateTimeText(v.Text())
		if !ok {
			return time.Time{}, false
		}
		t = parsed
	case models.KindNumber:
		serial, _ := v.Float()
		if serial <= 0 {
			return time.Time{}, false
		}
		parsed, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		t = parsed
	default:
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

func timeOfDay(v models.Value) (time.Duration, bool) {
	switch v.Kind() {
	case models.KindTime:
		t, _ := v.Time()
		return clockOffset(t), true
	case models.KindString:
		s := strings.TrimSpace(v.Text())
		for _, layout := range clockLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return clockOffset(t), true
			}
		}
		if t, ok := parseDateTimeText(s); ok {
			return clockOffset(t), true
		}
		return 0, false
	case models.KindNumber:
		// Excel stores a time of day as a fraction of 24 hours
		f, _ := v.Float()
		if f < 0 || f >= 1 {
			return 0, false
		}
		return time.Duration(math.Round(f*86400)) * time.Second, true
	default:
		return 0, false
	}
}

func clockOffset(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}
