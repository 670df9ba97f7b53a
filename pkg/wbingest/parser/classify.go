package parser

import (
	"strings"

	"github.com/ukaji3/wbingest-go/pkg/wbingest/models"
)

// ReadMode selects how a plain sheet is turned into a table.
type ReadMode int

const (
	// ReadDefault reads the sheet with positional rows.
	ReadDefault ReadMode = iota
	// ReadTimeIndexed promotes the first column to a timestamp index.
	ReadTimeIndexed
)

func (m ReadMode) String() string {
	if m == ReadTimeIndexed {
		return "time_indexed"
	}
	return "default"
}

// ClassifyRule selects a read mode from the first column of a peeked sheet.
// It matches when the lowercased first header contains any HeaderKeywords
// entry, or when the first data value has one of FirstValueKinds.
type ClassifyRule struct {
	Name            string
	HeaderKeywords  []string
	FirstValueKinds []models.Kind
	Mode            ReadMode
}

// Matches reports whether the rule applies to a first-column header and value.
func (r ClassifyRule) Matches(header string, first models.Value) bool {
	lower := strings.ToLower(header)
	for _, kw := range r.HeaderKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, k := range r.FirstValueKinds {
		if first.Kind() == k {
			return true
		}
	}
	return false
}

// DefaultClassifyRules treats a sheet as a time series when its first header
// mentions a date or time, or its first value is a date-time cell.
func DefaultClassifyRules() []ClassifyRule {
	return []ClassifyRule{{
		Name:            "timestamp-index",
		HeaderKeywords:  []string{"date", "time"},
		FirstValueKinds: []models.Kind{models.KindTime},
		Mode:            ReadTimeIndexed,
	}}
}

// SheetClassifier picks a read mode for sheets with no known layout in
// two stages: peek the first rows, then classify them against Rules.
type SheetClassifier struct {
	// PeekRows is the number of data rows looked at after the header.
	PeekRows int
	// Rules are tried in order; the first match wins.
	Rules []ClassifyRule
}

// NewSheetClassifier returns a classifier using the default rules.
func NewSheetClassifier(peekRows int) SheetClassifier {
	return SheetClassifier{PeekRows: peekRows, Rules: DefaultClassifyRules()}
}

// PeekSize is the number of sheet rows to load for Classify.
func (c SheetClassifier) PeekSize() int { return c.PeekRows + 1 }

// Classify picks the read mode for a peeked grid. Sheets with no header
// or no rule match are read with ReadDefault.
func (c SheetClassifier) Classify(peek models.Grid) ReadMode {
	t := HeaderTable(peek)
	if len(t.Columns) == 0 {
		return ReadDefault
	}
	header := t.Columns[0]
	if strings.HasPrefix(header, unnamedPrefix) {
		header = ""
	}
	var first models.Value
	if t.Len() > 0 {
		first = t.Rows[0][0]
	}
	for _, rule := range c.Rules {
		if rule.Matches(header, first) {
			return rule.Mode
		}
	}
	return ReadDefault
}

// Read turns a full grid into a table using mode.
func Read(g models.Grid, mode ReadMode) *models.Table {
	if mode == ReadTimeIndexed {
		return IndexedHeaderTable(g)
	}
	return HeaderTable(g)
}
