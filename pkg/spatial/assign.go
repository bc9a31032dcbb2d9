// Package spatial resolves the `assignment:"spatial"` element fields
// pkg/schema deliberately skips — Step.Diagram/Arrows/SubAssemblies by
// minimum-cost bipartite matching between built parent slots and
// leftover built candidates, ProgressBar.Indicators by a left-to-right
// sort — once per page after the solve and build phases complete.
// SubStep.Diagram is not filled here.
package spatial

import (
	"fmt"
	"sort"

	"github.com/dshills/legoclassify/pkg/geometry"
)

// Slot is one spatial placeholder: a parent element's bbox. Callers
// recover which parent won a match from the slot's position in the
// slice they passed in.
type Slot struct {
	BBox geometry.BBox
}

// Item is one unconsumed candidate's bbox competing to fill a Slot.
type Item struct {
	BBox geometry.BBox
}

// Assigner matches Slots to Items by a geometric cost. Implementations
// must be deterministic: the same slots and items in the same order
// always produce the same assignment.
type Assigner interface {
	// Name identifies this assignment strategy.
	Name() string

	// AssignOne returns, for each slot, the index of the item matched
	// to it, or -1 if none was matched (more slots than items, or a
	// match would exceed maxCost). Every item is matched to at most
	// one slot.
	AssignOne(slots []Slot, items []Item, maxCost float64) []int

	// AssignMany returns, for each slot, up to capacity item indices
	// matched to it, or nil if none. Every item is matched to at most
	// one slot.
	AssignMany(slots []Slot, items []Item, capacity int, maxCost float64) [][]int
}

// cost is the shared distance metric every Assigner in this package
// uses: Euclidean distance between slot and item bbox centers. A
// cheap, good-enough proxy for "how plausible is it that this item
// belongs in this slot" — classifiers already filtered candidates
// down to the right element kind before they reach here, so the only
// remaining question is proximity.
func cost(s Slot, it Item) float64 {
	return clampDistance(s.BBox.Center().Distance(it.BBox.Center()))
}

// registry mirrors pkg/embedding's Embedder registry: a small
// strategy-by-name map, even though (per SPEC_FULL.md §4.5) only one
// strategy ships today.
var registry = make(map[string]func() Assigner)

// Register adds an assignment strategy factory to the registry.
// Panics on a duplicate name, matching embedding.Register's fail-fast
// posture for what is a programmer error, not a runtime condition.
func Register(name string, factory func() Assigner) {
	if factory == nil {
		panic(fmt.Sprintf("spatial: Register factory for %q is nil", name))
	}
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("spatial: Register called twice for %q", name))
	}
	registry[name] = factory
}

// Get retrieves a registered Assigner by name.
func Get(name string) (Assigner, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("spatial: assigner %q not registered", name)
	}
	return factory(), nil
}

// List returns the names of every registered strategy.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
