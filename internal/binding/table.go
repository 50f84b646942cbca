package binding

import "strconv"

// Table is the ordered binding list for one device. Order is insertion
// order and it is significant: dispatch evaluates rows top to bottom and
// every matching row fires.
//
// A Table is not safe for concurrent use. Each dispatch session owns its
// table, and the edit wizard only runs while no session is live.
type Table struct {
	rows []Binding
}

// NewTable builds a table over a copy of the given rows.
func NewTable(rows []Binding) *Table {
	t := &Table{rows: make([]Binding, len(rows))}
	copy(t.rows, rows)
	return t
}

// Append adds a binding at the bottom of the table.
func (t *Table) Append(b Binding) {
	t.rows = append(t.rows, b)
}

// RemoveAt deletes the row at index i, shifting later rows up.
func (t *Table) RemoveAt(i int) error {
	if i < 0 || i >= len(t.rows) {
		return ErrIndexOutOfRange
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return nil
}

// Bindings returns a copy of the rows in table order.
func (t *Table) Bindings() []Binding {
	rows := make([]Binding, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Clone returns an independent copy of the table. The edit wizard clones
// before changing anything so that cancel can restore the original.
func (t *Table) Clone() *Table {
	return NewTable(t.rows)
}

// Resolve returns every binding on the given layer that matches the
// signal, in table order. The single pass keeps mixed keydown/scandown
// matches for the same press in their stored order. An empty result is
// normal: most presses are not bound.
func (t *Table) Resolve(layer string, sig Signal) []Binding {
	var matched []Binding
	for _, b := range t.rows {
		if b.Layer != layer {
			continue
		}
		if b.matchesSignal(sig) {
			matched = append(matched, b)
		}
	}
	return matched
}

// matchesSignal reports whether the binding's event selector accepts the
// signal. Comparison is exact: no prefix matching, no case folding.
func (b Binding) matchesSignal(sig Signal) bool {
	switch b.EventType {
	case EventKeyDown:
		return b.EventValue == sig.Key
	case EventScanDown:
		code, err := strconv.ParseUint(b.EventValue, 10, 16)
		if err != nil {
			return false // unvalidated row, never matches
		}
		return uint16(code) == sig.Code
	default:
		return false
	}
}
