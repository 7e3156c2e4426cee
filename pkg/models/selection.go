package models

// Selection is an ordered set of settlement rows chosen by the operator for
// one execution pass.
type Selection struct {
	rows []SettlementRow
	seen map[int]bool
}

// NewSelection builds a selection from rows, keeping the given order and
// dropping rows whose source row number was already added.
func NewSelection(rows ...SettlementRow) *Selection {
	s := &Selection{seen: make(map[int]bool)}
	s.Append(rows...)
	return s
}

// Append merges more rows into the selection, preserving order and skipping
// source rows already present.
func (s *Selection) Append(rows ...SettlementRow) {
	for _, r := range rows {
		if s.seen[r.SourceRow] {
			continue
		}
		s.seen[r.SourceRow] = true
		s.rows = append(s.rows, r)
	}
}

// Rows returns the selected rows in selection order.
func (s *Selection) Rows() []SettlementRow {
	return s.rows
}

// Len reports how many rows are selected.
func (s *Selection) Len() int {
	return len(s.rows)
}

// Deduplicate collapses rows with identical content so no settlement is
// submitted twice, keeping the first occurrence.
func (s *Selection) Deduplicate() {
	byContent := make(map[string]bool, len(s.rows))
	out := s.rows[:0]
	for _, r := range s.rows {
		key := r.ContentKey()
		if byContent[key] {
			continue
		}
		byContent[key] = true
		out = append(out, r)
	}
	s.rows = out
}
