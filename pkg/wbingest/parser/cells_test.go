package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/ukaji3/wbingest-go/pkg/wbingest/models"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected models.Value
	}{
		{"", models.Empty()},
		{"100", models.NumberValue(100)},
		{"-42", models.NumberValue(-42)},
		{"3.14", models.NumberValue(3.14)},
		{"1e3", models.NumberValue(1000)},
		{"TRUE", models.BoolValue(true)},
		{"false", models.BoolValue(false)},
		{"hello", models.TextValue("hello")},
		{"~Settings Table", models.TextValue("~Settings Table")},
		{"inf", models.TextValue("inf")},
		{"-Infinity", models.TextValue("-Infinity")},
		{"NaN", models.TextValue("NaN")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseValue(tt.input)
			if !result.Equal(tt.expected) {
				t.Errorf("parseValue(%q) = %v (%s), want %v (%s)",
					tt.input, result, result.Kind(), tt.expected, tt.expected.Kind())
			}
		})
	}
}

func TestTrimTrailingBlankRows(t *testing.T) {
	rows := [][]models.Value{
		values("a"),
		values(nil),
		values("b"),
		values(nil, "  "),
		nil,
	}
	assert.Len(t, trimTrailingBlankRows(rows), 3)
	assert.Empty(t, trimTrailingBlankRows([][]models.Value{nil, values(nil)}))
}

func TestParseTime(t *testing.T) {
	want := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	got, ok := ParseTime(models.TextValue("2023-01-01"))
	assert.True(t, ok)
	assert.Equal(t, want, got)

	got, ok = ParseTime(models.TimeValue(want))
	assert.True(t, ok)
	assert.Equal(t, want, got)

	_, ok = ParseTime(models.NumberValue(44927))
	assert.False(t, ok, "numbers are not dates")

	_, ok = ParseTime(models.TextValue("Bus 1"))
	assert.False(t, ok)
}

func TestCombineDateTime(t *testing.T) {
	day := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		date  models.Value
		clock models.Value
		want  time.Time
		ok    bool
	}{
		{"text date and text time", models.TextValue("2023-01-01"), models.TextValue("01:30"), day.Add(90 * time.Minute), true},
		{"text time with seconds", models.TextValue("2023-01-01"), models.TextValue("01:30:15"), day.Add(90*time.Minute + 15*time.Second), true},
		{"date cell and day fraction", models.TimeValue(day), models.NumberValue(0.0625), day.Add(90 * time.Minute), true},
		{"serial date", models.NumberValue(44927), models.TextValue("00:00"), day, true},
		{"time cell", models.TimeValue(day), models.TimeValue(time.Date(1899, 12, 30, 13, 0, 0, 0, time.UTC)), day.Add(13 * time.Hour), true},
		{"date time cell keeps only the date", models.TimeValue(day.Add(5 * time.Hour)), models.TextValue("02:00"), day.Add(2 * time.Hour), true},
		{"bad date", models.TextValue("yesterday"), models.TextValue("01:00"), time.Time{}, false},
		{"bad time", models.TextValue("2023-01-01"), models.TextValue("noon"), time.Time{}, false},
		{"fraction out of range", models.TimeValue(day), models.NumberValue(1.5), time.Time{}, false},
		{"missing date", models.Empty(), models.TextValue("01:00"), time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CombineDateTime(tt.date, tt.clock)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
