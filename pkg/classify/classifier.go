// Package classify defines the classifier contract and the dependency-
// ordered pipeline that drives the classify -> solve -> build ->
// spatially-assign control flow for a single page.
package classify

import (
	"context"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/candidate"
	"github.com/dshills/legoclassify/pkg/constraint"
	"github.com/dshills/legoclassify/pkg/element"
	"github.com/dshills/legoclassify/pkg/hints"
)

// PageContext bundles the read-only inputs every classifier needs:
// the frozen page and the document-wide hints. The page's index within
// the document (used for e.g. "prefer values matching the page index"
// heuristics) is read from Page.PageIndex.
type PageContext struct {
	Page  *block.PageData
	Hints hints.DocumentHints
}

// Classifier is the contract every rule-based classifier implements.
// Output/Requires declare the dependency-ordered pipeline's shape;
// Score/Build do the actual work; DeclareConstraints is optional (a
// classifier that has no semantic constraints to add can embed
// NoConstraints).
type Classifier interface {
	// Output is the label this classifier produces. Exactly one
	// registered classifier may declare a given Output.
	Output() candidate.Label

	// Requires lists the labels whose candidates this classifier reads
	// during Score. The pipeline runs classifiers in topological order
	// over this dependency relation.
	Requires() []candidate.Label

	// Score reads ctx.Page, ctx.Hints, and candidates of its required
	// labels from result, and registers zero or more candidates via
	// result.AddCandidate.
	Score(ctx context.Context, pc PageContext, result *candidate.ClassificationResult) error

	// Build constructs the LegoPageElement for a selected candidate.
	// Composite classifiers recursively resolve their children's built
	// elements from result. Build may return an error (BuildFailed);
	// the pipeline excludes that candidate and re-solves.
	Build(ctx context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error)

	// DeclareConstraints emits semantic constraints (uniqueness by
	// value, no-orphan, singleton-per-page, variant exclusivity) for
	// this classifier's candidates. Structural constraints (child
	// cardinality) are auto-emitted by pkg/schema and need not be
	// repeated here.
	DeclareConstraints(m *constraint.Model, result *candidate.ClassificationResult)
}

// NoConstraints is embedded by classifiers with nothing to add beyond
// the schema-generated structural constraints.
type NoConstraints struct{}

// DeclareConstraints is a no-op.
func (NoConstraints) DeclareConstraints(*constraint.Model, *candidate.ClassificationResult) {}
