package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberValueNaNIsEmpty(t *testing.T) {
	assert.True(t, NumberValue(math.NaN()).IsEmpty())
	assert.True(t, NumberValue(math.Inf(1)).IsEmpty())
	assert.True(t, NumberValue(math.Inf(-1)).IsEmpty())
	assert.False(t, NumberValue(0).IsEmpty())
}

func TestValueFloat(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want float64
		ok   bool
	}{
		{"number", NumberValue(12.5), 12.5, true},
		{"numeric text", TextValue(" 42 "), 42, true},
		{"true", BoolValue(true), 1, true},
		{"false", BoolValue(false), 0, true},
		{"word", TextValue("abc"), 0, false},
		{"nan text", TextValue("NaN"), 0, false},
		{"inf text", TextValue("inf"), 0, false},
		{"infinity text", TextValue("-Infinity"), 0, false},
		{"empty", Empty(), 0, false},
		{"time", TimeValue(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.v.Float()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueInt(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want int
		ok   bool
	}{
		{"integral number", NumberValue(2020), 2020, true},
		{"integral float text", TextValue("2020.0"), 2020, true},
		{"int text", TextValue("2021"), 2021, true},
		{"fraction", NumberValue(2020.5), 0, false},
		{"word", TextValue("twenty"), 0, false},
		{"empty", Empty(), 0, false},
		{"infinity", NumberValue(math.Inf(1)), 0, false},
		{"infinity text", TextValue("Infinity"), 0, false},
		{"above int range", NumberValue(1e20), 0, false},
		{"below int range", NumberValue(-1e20), 0, false},
		{"above int range text", TextValue("1e20"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.v.Int()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueText(t *testing.T) {
	assert.Equal(t, "", Empty().Text())
	assert.Equal(t, "2019", NumberValue(2019).Text())
	assert.Equal(t, "0.66", NumberValue(0.66).Text())
	assert.Equal(t, "true", BoolValue(true).Text())
	assert.Equal(t, "2024-03-01", TimeValue(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)).Text())
	assert.Equal(t, "2024-03-01 13:30:00", TimeValue(time.Date(2024, 3, 1, 13, 30, 0, 0, time.UTC)).Text())
}

func TestValueBlank(t *testing.T) {
	assert.True(t, Empty().IsBlank())
	assert.True(t, TextValue("   ").IsBlank())
	assert.False(t, TextValue("   ").IsEmpty())
	assert.False(t, NumberValue(0).IsBlank())
}

func TestValueEqual(t *testing.T) {
	assert.True(t, NumberValue(1).Equal(NumberValue(1)))
	assert.False(t, NumberValue(1).Equal(TextValue("1")))
	assert.True(t, Empty().Equal(Empty()))

	utc := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, TimeValue(utc).Equal(TimeValue(utc.In(time.FixedZone("X", 3600)))))
}

func TestValueMarshalJSON(t *testing.T) {
	row := []Value{
		Empty(),
		TextValue("Residential"),
		NumberValue(110),
		BoolValue(false),
		TimeValue(time.Date(2023, 1, 1, 1, 0, 0, 0, time.UTC)),
	}
	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `[null,"Residential",110,false,"2023-01-01T01:00:00Z"]`, string(data))
}
