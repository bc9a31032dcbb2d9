package classify

import (
	"fmt"
	"sync"

	"github.com/dshills/legoclassify/pkg/candidate"
)

// Registry manages available classifiers, keyed by the label each one
// produces. Unlike pkg/synthesis's flat name->impl registry, this one
// is dependency-aware: Pipeline validates the full requires-digraph at
// construction instead of trusting callers to wire classifiers in the
// right order.
var (
	registryMu sync.RWMutex
	registry   = make(map[candidate.Label]Classifier)
)

// Register adds a classifier to the global registry, keyed by its
// Output label. Panics if the label is already registered: like
// synthesis.Register, a duplicate registration is a programmer error
// caught at init time, not a runtime condition to recover from.
func Register(c Classifier) {
	registryMu.Lock()
	defer registryMu.Unlock()

	label := c.Output()
	if _, exists := registry[label]; exists {
		panic(fmt.Sprintf("classify: classifier for label %q already registered", label))
	}
	registry[label] = c
}

// Get retrieves a registered classifier by label, or nil if none is
// registered.
func Get(label candidate.Label) Classifier {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[label]
}

// List returns every registered label.
func List() []candidate.Label {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]candidate.Label, 0, len(registry))
	for label := range registry {
		out = append(out, label)
	}
	return out
}

// All returns every registered classifier.
func All() []Classifier {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]Classifier, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	return out
}
