package parser

// AliasResolver finds a column by trying candidate names in priority order.
// Candidates and headers are compared after NormalizeColumnName, so the
// match is case-insensitive and treats spaces and underscores alike.
type AliasResolver struct {
	canonical  string
	candidates []string
}

// NewAliasResolver returns a resolver that renames its match to canonical.
func NewAliasResolver(canonical string, candidates ...string) AliasResolver {
	return AliasResolver{canonical: canonical, candidates: append([]string{}, candidates...)}
}

// Canonical returns the name a resolved column is renamed to.
func (r AliasResolver) Canonical() string { return r.canonical }

// Candidates returns the candidate names in priority order.
func (r AliasResolver) Candidates() []string { return append([]string{}, r.candidates...) }

// With returns a resolver with extra candidates appended at the lowest priority.
func (r AliasResolver) With(candidates ...string) AliasResolver {
	return NewAliasResolver(r.canonical, append(r.Candidates(), candidates...)...)
}

// Resolve returns the header matching the highest-priority candidate.
func (r AliasResolver) Resolve(columns []string) (string, bool) {
	for _, candidate := range r.candidates {
		want := NormalizeColumnName(candidate)
		for _, col := range columns {
			if NormalizeColumnName(col) == want {
				return col, true
			}
		}
	}
	return "", false
}
