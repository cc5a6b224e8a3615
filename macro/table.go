package macro

import (
	"sort"

	"github.com/arloliu/dedit/record"
)

// Key addresses one macro text.
type Key struct {
	Section int
	Slot    int
}

// Table maps (section, slot) pairs to macro texts.
//
// A Table is built fresh for every operation and is read-only once Build
// returns. It is never shared through package state.
type Table struct {
	entries map[Key]string
	slots   map[int]int
}

var _ record.MacroLookup = (*Table)(nil)

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries: make(map[Key]string),
		slots:   make(map[int]int),
	}
}

// Lookup returns the text stored under (section, slot). A nil table holds nothing.
func (t *Table) Lookup(section, slot int) (string, bool) {
	if t == nil {
		return "", false
	}
	text, ok := t.entries[Key{Section: section, Slot: slot}]

	return text, ok
}

// Set stores text under (section, slot), replacing any previous value.
func (t *Table) Set(section, slot int, text string) {
	t.entries[Key{Section: section, Slot: slot}] = text
	if slot+1 > t.slots[section] {
		t.slots[section] = slot + 1
	}
}

// Len returns the number of stored texts.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.entries)
}

// Sections returns the sections holding at least one text, in ascending order.
func (t *Table) Sections() []int {
	sections := make([]int, 0, len(t.slots))
	for s := range t.slots {
		sections = append(sections, s)
	}
	sort.Ints(sections)

	return sections
}

// Slots returns one past the highest slot stored in section.
func (t *Table) Slots(section int) int {
	return t.slots[section]
}
