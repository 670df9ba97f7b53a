package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableDuplicateColumnsResolveRightMost(t *testing.T) {
	tbl := NewTable([]string{"Year", "GDP", "GDP"})
	tbl.AppendRow(NumberValue(2020), NumberValue(1), NumberValue(2))

	assert.Equal(t, 2, tbl.ColumnIndex("GDP"))
	assert.True(t, tbl.Value(0, "GDP").Equal(NumberValue(2)))
	assert.Equal(t, -1, tbl.ColumnIndex("Population"))
}

func TestTableAppendRowPads(t *testing.T) {
	tbl := NewTable([]string{"a", "b", "c"})
	tbl.AppendRow(TextValue("x"))

	require.Len(t, tbl.Rows, 1)
	assert.Len(t, tbl.Rows[0], 3)
	assert.True(t, tbl.Value(0, "c").IsEmpty())
}

func TestTableAddColumn(t *testing.T) {
	tbl := NewTable([]string{"Year"})
	tbl.AppendRow(NumberValue(2019))
	tbl.AppendRow(NumberValue(2020))

	tbl.AddColumn("double", func(row int) Value {
		y, _ := tbl.Rows[row][0].Float()
		return NumberValue(y * 2)
	})

	assert.Equal(t, []string{"Year", "double"}, tbl.Columns)
	assert.True(t, tbl.Value(1, "double").Equal(NumberValue(4040)))
}

func TestTableCloneIsDeep(t *testing.T) {
	tbl := NewTable([]string{"a"})
	tbl.AppendRow(NumberValue(1))

	c := tbl.Clone()
	c.Columns[0] = "b"
	c.Set(0, "b", NumberValue(9))

	assert.Equal(t, "a", tbl.Columns[0])
	assert.True(t, tbl.Value(0, "a").Equal(NumberValue(1)))
}

func TestNilTableIsEmpty(t *testing.T) {
	var tbl *Table
	assert.True(t, tbl.Empty())
	assert.False(t, tbl.HasColumn("x"))
}

func TestTableSetKeepsOrder(t *testing.T) {
	s := NewTableSet()
	s.Set("zeta", NewTable([]string{"z"}))
	s.Set("alpha", NewTable([]string{"a"}))
	s.Set("zeta", NewTable([]string{"z2"}))

	assert.Equal(t, []string{"zeta", "alpha"}, s.Names())
	got, ok := s.Get("zeta")
	require.True(t, ok)
	assert.Equal(t, []string{"z2"}, got.Columns)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":{"columns":["z2"],"rows":[]},"alpha":{"columns":["a"],"rows":[]}}`, string(data))
}

func TestCapacityResultMarshalJSON(t *testing.T) {
	sheets := NewTableSet()
	sheets.Set("Buses", NewTable(nil))

	res := &CapacityTemplateResult{
		RunID:         "run",
		Workbook:      "pypsa.xlsx",
		SettingsSheet: "Settings",
		Sheets:        sheets,
		Categories:    map[string]SheetCategory{"Buses": CategoryComponent},
	}
	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"run_id": "run",
		"workbook": "pypsa.xlsx",
		"sheets": {"Settings": null, "Buses": {"columns": [], "rows": []}},
		"categories": {"Buses": "component"}
	}`, string(data))
}

func TestGridPadsRows(t *testing.T) {
	g := NewGrid("s", [][]Value{{TextValue("a")}, {TextValue("a"), TextValue("b"), TextValue("c")}})

	assert.Equal(t, 3, g.Width())
	assert.True(t, g.Cell(0, 2).IsEmpty())
	assert.True(t, g.Cell(5, 0).IsEmpty())
	assert.Equal(t, 1, g.Head(1).Len())
}
