// Package layout provides a global registry of hole layouts.
// Layouts register themselves in init() functions, so the CLI and the garden
// can look them up by id without hardcoded lists.
package layout

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultID is the layout used when none is requested.
const DefaultID = "classic"

// ScoreKey returns the key scores for a layout are stored under.
func ScoreKey(layoutID string) string {
	return "whack_" + layoutID
}

// Layout is a rectangular grid of holes. Slots are numbered row by row,
// starting at the top left.
type Layout struct {
	ID    string
	Title string
	Cols  int
	Rows  int
}

// Slots returns the number of holes.
func (l Layout) Slots() int {
	return l.Cols * l.Rows
}

// Cell returns the grid column and row of slot.
func (l Layout) Cell(slot int) (col, row int) {
	if l.Cols <= 0 {
		return 0, 0
	}
	return slot % l.Cols, slot / l.Cols
}

// SlotAt returns the slot at the given column and row, or false if outside the grid.
func (l Layout) SlotAt(col, row int) (int, bool) {
	if col < 0 || col >= l.Cols || row < 0 || row >= l.Rows {
		return 0, false
	}
	return row*l.Cols + col, true
}

// Move returns the slot reached from slot by stepping dc columns and dr rows.
// Steps off the grid stay on the edge.
func (l Layout) Move(slot, dc, dr int) int {
	col, row := l.Cell(slot)
	col = clamp(col+dc, 0, l.Cols-1)
	row = clamp(row+dr, 0, l.Rows-1)
	s, _ := l.SlotAt(col, row)
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var (
	layouts = make(map[string]Layout)
	mu      sync.RWMutex
)

// Register adds a layout to the registry.
// Panics if the id is taken or the grid is empty.
func Register(l Layout) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := layouts[l.ID]; exists {
		panic(fmt.Sprintf("layout: %q already registered", l.ID))
	}
	if l.Cols <= 0 || l.Rows <= 0 {
		panic(fmt.Sprintf("layout: %q has an empty grid", l.ID))
	}
	layouts[l.ID] = l
}

// List returns all registered layouts, sorted by id.
func List() []Layout {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Layout, 0, len(layouts))
	for _, l := range layouts {
		result = append(result, l)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Get returns the layout with the given id. An empty id means the default.
func Get(id string) (Layout, error) {
	if id == "" {
		id = DefaultID
	}

	mu.RLock()
	defer mu.RUnlock()

	l, ok := layouts[id]
	if !ok {
		return Layout{}, fmt.Errorf("layout: unknown layout %q", id)
	}
	return l, nil
}

// Exists checks if a layout with the given id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := layouts[id]
	return ok
}
