// Package candidate defines the generic scored-interpretation value
// object classifiers emit, and the per-page mutable state machine
// (ClassificationResult) that accumulates them, tracks which blocks
// they would consume, and records the solver's eventual selection.
package candidate

import (
	"fmt"
	"sort"

	"github.com/dshills/legoclassify/pkg/element"
)

// ID is a stable, page-local candidate identifier assigned in creation
// order.
type ID int

// Label names the element kind a classifier produces, matching its
// Output() declaration.
type Label string

// Candidate is a generic scored interpretation of one or more blocks,
// parameterized by the element type it would build. Atomic candidates
// set SourceBlocks to the single block they wrap; composite candidates
// leave SourceBlocks empty because provenance flows from their
// selected children.
type Candidate[T element.LegoPageElement] struct {
	id           ID
	label        Label
	score        float64
	scoreDetails any
	sourceBlocks []int
}

// New constructs a Candidate. score must be in [0,1]; the caller is
// responsible for clamping classifier output before construction. New
// panics if scoreDetails references child candidates (implements
// HasChildRefs) but sourceBlocks is non-empty: a composite that also
// claims blocks directly would make block exclusivity enforced twice
// for the same block, which can make an otherwise-valid page's model
// unsatisfiable (spec open question: composite source-block
// double-claim).
func New[T element.LegoPageElement](id ID, label Label, score float64, scoreDetails any, sourceBlocks []int) *Candidate[T] {
	if _, ok := scoreDetails.(HasChildRefs); ok && len(sourceBlocks) > 0 {
		panic(fmt.Sprintf("candidate: composite %s#%d must not set sourceBlocks (has child refs and %d source blocks)", label, id, len(sourceBlocks)))
	}
	return &Candidate[T]{
		id:           id,
		label:        label,
		score:        score,
		scoreDetails: scoreDetails,
		sourceBlocks: append([]int(nil), sourceBlocks...),
	}
}

// ID returns the candidate's identifier.
func (c *Candidate[T]) ID() ID { return c.id }

// Label returns the candidate's producing label.
func (c *Candidate[T]) Label() Label { return c.label }

// Score returns the candidate's intrinsic score in [0,1].
func (c *Candidate[T]) Score() float64 { return c.score }

// ScoreDetails returns the classifier-specific record attached to this
// candidate. Downstream classifiers type-assert it to their own
// details type.
func (c *Candidate[T]) ScoreDetails() any { return c.scoreDetails }

// SourceBlocks returns the blocks this candidate would consume if
// selected. Empty for composite candidates.
func (c *Candidate[T]) SourceBlocks() []int { return c.sourceBlocks }

// IsComposite reports whether this candidate has no direct block
// provenance of its own.
func (c *Candidate[T]) IsComposite() bool { return len(c.sourceBlocks) == 0 }

// AnyCandidate is the label-erased view of a Candidate[T] used by
// ClassificationResult, the solver, and the schema generator, none of
// which know T at compile time. ElementKind lets them recover the
// produced element's Kind without reified generics.
type AnyCandidate interface {
	ID() ID
	Label() Label
	Score() float64
	ScoreDetails() any
	SourceBlocks() []int
	IsComposite() bool
	ElementKind() element.Kind
}

// ElementKind returns T's Kind, read from T's zero value. T is always
// a concrete element struct, so this is safe and allocation-free.
func (c *Candidate[T]) ElementKind() element.Kind {
	var zero T
	return zero.ElementType()
}

var _ AnyCandidate = (*Candidate[element.Page])(nil)

// Status is a candidate's position in the per-page classify → solve →
// build lifecycle.
type Status int

const (
	// StatusScored is the initial state: created by a classifier,
	// not yet considered by the solver.
	StatusScored Status = iota
	// StatusSelected means the solver chose this candidate.
	StatusSelected
	// StatusRejected means the solver considered and discarded this
	// candidate in favor of another, or it violated a constraint.
	StatusRejected
	// StatusBuilt means Build succeeded for a selected candidate.
	StatusBuilt
	// StatusBuildFailed means Build was attempted and failed; the
	// solver excludes this candidate and retries.
	StatusBuildFailed
)

// String returns the string representation of a Status.
func (s Status) String() string {
	switch s {
	case StatusScored:
		return "Scored"
	case StatusSelected:
		return "Selected"
	case StatusRejected:
		return "Rejected"
	case StatusBuilt:
		return "Built"
	case StatusBuildFailed:
		return "BuildFailed"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// entry is the ClassificationResult's internal bookkeeping record for
// one candidate.
type entry struct {
	cand   AnyCandidate
	status Status
}

// ClassificationResult is the mutable, per-page accumulator shared by
// every classifier during Score, by the solver during Solve, and by
// every classifier again during Build. It is owned by exactly one
// driver task for its lifetime.
type ClassificationResult struct {
	nextID ID

	byLabel map[Label][]ID
	entries map[ID]*entry

	builtElements  map[ID]element.LegoPageElement
	consumedBlocks map[int]ID

	diagnostics []string
}

// NewClassificationResult constructs an empty result for one page.
func NewClassificationResult() *ClassificationResult {
	return &ClassificationResult{
		byLabel:        make(map[Label][]ID),
		entries:        make(map[ID]*entry),
		builtElements:  make(map[ID]element.LegoPageElement),
		consumedBlocks: make(map[int]ID),
	}
}

// NextID reserves the next candidate ID. Classifiers use this to
// construct a Candidate before registering it with AddCandidate.
func (r *ClassificationResult) NextID() ID {
	r.nextID++
	return r.nextID
}

// AddCandidate registers a newly scored candidate. Candidates with nil
// ScoreDetails are accepted (they simply won't be visible to
// CandidatesByLabel, matching spec behavior that null-detail
// candidates are filtered from downstream visibility) but are still
// tracked for diagnostics.
func (r *ClassificationResult) AddCandidate(c AnyCandidate) {
	r.byLabel[c.Label()] = append(r.byLabel[c.Label()], c.ID())
	r.entries[c.ID()] = &entry{cand: c, status: StatusScored}
}

// CandidatesByLabel returns every non-nil-detail candidate registered
// under label, in insertion order, for deterministic tie-breaking by
// downstream classifiers.
func (r *ClassificationResult) CandidatesByLabel(label Label) []AnyCandidate {
	ids := r.byLabel[label]
	out := make([]AnyCandidate, 0, len(ids))
	for _, id := range ids {
		e := r.entries[id]
		if e.cand.ScoreDetails() == nil {
			continue
		}
		out = append(out, e.cand)
	}
	return out
}

// AllCandidates returns every registered candidate regardless of
// label or detail nullity, ordered by ID, for reflection-based schema
// generation and reporting.
func (r *ClassificationResult) AllCandidates() []AnyCandidate {
	out := make([]AnyCandidate, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.cand)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// ByID returns the candidate registered under id, or nil if none
// exists.
func (r *ClassificationResult) ByID(id ID) AnyCandidate {
	if e, ok := r.entries[id]; ok {
		return e.cand
	}
	return nil
}

// Status returns the current lifecycle status of a candidate.
func (r *ClassificationResult) Status(id ID) Status {
	if e, ok := r.entries[id]; ok {
		return e.status
	}
	return StatusRejected
}

// SetStatus transitions a candidate's status. Called by the solver
// (Selected/Rejected) and by the build phase (Built/BuildFailed).
func (r *ClassificationResult) SetStatus(id ID, status Status) {
	if e, ok := r.entries[id]; ok {
		e.status = status
	}
}

// SelectedIDs returns every candidate currently in StatusSelected or
// StatusBuilt, ordered by ID.
func (r *ClassificationResult) SelectedIDs() []ID {
	var out []ID
	for id, e := range r.entries {
		if e.status == StatusSelected || e.status == StatusBuilt {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MarkConsumed records that blocks have been consumed by candidate id.
// It returns an error if any block is already consumed by a different
// candidate, preserving block exclusivity.
func (r *ClassificationResult) MarkConsumed(id ID, blockIDs []int) error {
	for _, b := range blockIDs {
		if owner, ok := r.consumedBlocks[b]; ok && owner != id {
			return fmt.Errorf("candidate: block %d already consumed by candidate %d (attempted by %d)", b, owner, id)
		}
	}
	for _, b := range blockIDs {
		r.consumedBlocks[b] = id
	}
	return nil
}

// ReleaseConsumed undoes MarkConsumed for id, used on build rollback.
func (r *ClassificationResult) ReleaseConsumed(id ID) {
	for b, owner := range r.consumedBlocks {
		if owner == id {
			delete(r.consumedBlocks, b)
		}
	}
}

// ConsumedBlocks returns the set of block IDs currently consumed by
// any candidate.
func (r *ClassificationResult) ConsumedBlocks() map[int]ID {
	out := make(map[int]ID, len(r.consumedBlocks))
	for k, v := range r.consumedBlocks {
		out[k] = v
	}
	return out
}

// SetBuilt records the built element for a selected candidate.
func (r *ClassificationResult) SetBuilt(id ID, el element.LegoPageElement) {
	r.builtElements[id] = el
	r.SetStatus(id, StatusBuilt)
}

// BuiltElement returns the built element for id, or nil if it has not
// been built.
func (r *ClassificationResult) BuiltElement(id ID) element.LegoPageElement {
	return r.builtElements[id]
}

// Warn appends a non-fatal diagnostic to the page's warning log.
func (r *ClassificationResult) Warn(format string, args ...any) {
	r.diagnostics = append(r.diagnostics, fmt.Sprintf(format, args...))
}

// Diagnostics returns every warning recorded so far, in emission
// order.
func (r *ClassificationResult) Diagnostics() []string {
	return append([]string(nil), r.diagnostics...)
}

// ByScoreThenID orders candidates by descending score, breaking ties
// by ascending ID, giving every solver run a deterministic candidate
// ordering regardless of map iteration order upstream.
func ByScoreThenID(cands []AnyCandidate) []AnyCandidate {
	out := append([]AnyCandidate(nil), cands...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score() != out[j].Score() {
			return out[i].Score() > out[j].Score()
		}
		return out[i].ID() < out[j].ID()
	})
	return out
}
