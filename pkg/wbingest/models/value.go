// Package models defines data structures produced by workbook ingestion.
package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the type held by a Value.
type Kind int

const (
	// KindEmpty is a blank or missing cell.
	KindEmpty Kind = iota
	// KindString is a text cell.
	KindString
	// KindNumber is a numeric cell.
	KindNumber
	// KindBool is a boolean cell.
	KindBool
	// KindTime is a date or date-time cell.
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "empty"
	}
}

// Value is a single typed cell value. The zero Value is empty and stands
// for a missing cell.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	t    time.Time
}

// Empty returns the missing value.
func Empty() Value { return Value{} }

// TextValue returns a string value.
func TextValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue returns a numeric value. NaN and infinities are stored as missing.
func NumberValue(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{kind: KindNumber, num: f}
}

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// TimeValue returns a date-time value.
func TimeValue(t time.Time) Value { return Value{kind: KindTime, t: t} }

// Kind returns the type held by v.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether v is missing.
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// IsBlank reports whether v is missing or text that trims to nothing.
func (v Value) IsBlank() bool {
	return v.kind == KindEmpty || (v.kind == KindString && strings.TrimSpace(v.str) == "")
}

// Text returns the textual form of v. Missing values render as "".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		if v.t.Hour() == 0 && v.t.Minute() == 0 && v.t.Second() == 0 && v.t.Nanosecond() == 0 {
			return v.t.Format("2006-01-02")
		}
		return v.t.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (v Value) String() string { return v.Text() }

// Float coerces v to a finite number. Text is trimmed and parsed, booleans
// map to 1 and 0; missing values and times do not coerce.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Int coerces v to an integer. Numbers with a fractional part or outside the
// int range do not coerce.
func (v Value) Int() (int, bool) {
	if v.kind == KindString {
		if i, err := strconv.Atoi(strings.TrimSpace(v.str)); err == nil {
			return i, true
		}
	}
	f, ok := v.Float()
	if !ok || f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
		return 0, false
	}
	return int(f), true
}

// Bool returns the boolean held by v.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Time returns the date-time held by v.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindTime {
		return time.Time{}, false
	}
	return v.t, true
}

// Equal reports whether v and o hold the same kind and value.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindTime:
		return v.t.Equal(o.t)
	default:
		return true
	}
}

// Native returns v as a plain Go value: nil, string, float64, bool or time.Time.
func (v Value) Native() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	default:
		return nil
	}
}

// MarshalJSON encodes missing values as null and times as RFC 3339 strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindTime {
		return json.Marshal(v.t.Format(time.RFC3339))
	}
	if v.kind == KindNumber && math.IsInf(v.num, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v.Native())
}
