// Package symbols implements the ordered, case-insensitively distinct define
// symbol list that build hosts persist as a single ';'-joined string.
package symbols

import "strings"

// Separator joins symbols in the persisted form.
const Separator = ";"

// List is an ordered collection of distinct symbols. Membership is
// case-insensitive; the first spelling seen is the one stored.
// The zero value is an empty list ready for use.
type List struct {
	items []string
}

// Parse splits a persisted symbol string. Surrounding whitespace is trimmed,
// empty tokens are dropped, and later case-insensitive duplicates are ignored.
func Parse(joined string) *List {
	l := &List{}
	for _, tok := range strings.Split(joined, Separator) {
		l.Add(tok)
	}
	return l
}

// Of builds a list from individual symbols with the same rules as Parse.
func Of(symbols ...string) *List {
	l := &List{}
	for _, s := range symbols {
		l.Add(s)
	}
	return l
}

// Contains reports whether symbol is present, ignoring case.
func (l *List) Contains(symbol string) bool {
	return l.index(strings.TrimSpace(symbol)) >= 0
}

// Add appends symbol unless it is empty or already present. It reports
// whether the list changed.
func (l *List) Add(symbol string) bool {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" || l.index(symbol) >= 0 {
		return false
	}
	l.items = append(l.items, symbol)
	return true
}

// Remove deletes symbol, ignoring case. It reports whether the list changed.
func (l *List) Remove(symbol string) bool {
	i := l.index(strings.TrimSpace(symbol))
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

// Items returns a copy of the symbols in order.
func (l *List) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of symbols.
func (l *List) Len() int {
	return len(l.items)
}

// Clone returns an independent copy.
func (l *List) Clone() *List {
	return &List{items: l.Items()}
}

// String joins the symbols in their persisted form.
func (l *List) String() string {
	return strings.Join(l.items, Separator)
}

func (l *List) index(symbol string) int {
	if symbol == "" {
		return -1
	}
	for i, s := range l.items {
		if strings.EqualFold(s, symbol) {
			return i
		}
	}
	return -1
}
