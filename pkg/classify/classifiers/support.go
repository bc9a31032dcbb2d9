// Package classifiers holds the ~20 concrete rule-based classifiers:
// one file per classifier, each reading intrinsic block properties off
// a shared PageContext and emitting scored candidates. This file
// collects the small scoring helpers text-pattern and geometry
// classifiers both lean on, so individual classifier files stay short
// and focused on their own heuristic.
package classifiers

import (
	"regexp"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/candidate"
	"github.com/dshills/legoclassify/pkg/constraint"
	"github.com/dshills/legoclassify/pkg/geometry"
)

var (
	integerPattern     = regexp.MustCompile(`^\d{1,3}$`)
	countPattern       = regexp.MustCompile(`^(\d{1,3})\s*[xX×]$`)
	pieceLengthPattern = regexp.MustCompile(`^(\d{1,2})L$`)
	partNumberPattern  = regexp.MustCompile(`^\d{4,7}$`)
	substepPattern     = regexp.MustCompile(`^[a-zA-Z]$`)
)

// clampScore keeps a heuristic's accumulated boosts within [0,1].
func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// fontProximity scores how close a block's font size is to a
// document-hint expectation: 1.0 at an exact match, decaying linearly
// to 0 by the time the gap reaches 4 points. A zero hint (no text of
// that role was observed anywhere in the document) is treated as
// "no opinion" rather than a mismatch.
func fontProximity(blockSize, hintSize float64) float64 {
	if hintSize <= 0 {
		return 0.5
	}
	gap := blockSize - hintSize
	if gap < 0 {
		gap = -gap
	}
	if gap >= 4 {
		return 0
	}
	return 1 - gap/4
}

// bottomBand reports whether bbox sits within the bottom fraction of
// the page, e.g. where page numbers live.
func bottomBand(bbox geometry.BBox, pageHeight, frac float64) bool {
	return bbox.Y0 >= pageHeight*(1-frac)
}

// topBand reports whether bbox sits within the top fraction of the
// page.
func topBand(bbox geometry.BBox, pageHeight, frac float64) bool {
	return bbox.Y1 <= pageHeight*frac
}

// leftBand reports whether bbox sits within the left fraction of the
// page width.
func leftBand(bbox geometry.BBox, pageWidth, frac float64) bool {
	return bbox.X1 <= pageWidth*frac
}

// rightBand reports whether bbox sits within the right fraction of
// the page width.
func rightBand(bbox geometry.BBox, pageWidth, frac float64) bool {
	return bbox.X0 >= pageWidth*(1-frac)
}

// unionBBox returns the smallest box containing both a and b, used by
// composite classifiers that need a bbox for a candidate with no
// source block of its own (e.g. Part, spanning its count and diagram).
func unionBBox(a, b geometry.BBox) geometry.BBox {
	return geometry.NewBBox(
		minF(a.X0, b.X0), minF(a.Y0, b.Y0),
		maxF(a.X1, b.X1), maxF(a.Y1, b.Y1),
	)
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// aspectRatio returns width/height, or 0 for a degenerate box.
func aspectRatio(bbox geometry.BBox) float64 {
	h := bbox.Height()
	if h <= 0 {
		return 0
	}
	return bbox.Width() / h
}

// isLight reports whether a color reads as a light/pastel fill,
// typical of a page Background drawing.
func isLight(c *block.Color) bool {
	if c == nil {
		return false
	}
	avg := (int(c.R) + int(c.G) + int(c.B)) / 3
	return avg >= 200
}

// isBright reports whether a color is a saturated highlight tone
// (white, yellow), typical of a Shine glyph.
func isBright(c *block.Color) bool {
	if c == nil {
		return false
	}
	return c.R >= 230 && c.G >= 230
}

// fullyInsideAny reports whether bbox is fully inside at least one of
// candidates.
func fullyInsideAny(bbox geometry.BBox, candidates []geometry.BBox) bool {
	for _, c := range candidates {
		if bbox.FullyInside(c) {
			return true
		}
	}
	return false
}

// declareUniqueByValue emits an AtMostOne constraint over every group
// of candidate IDs sharing a duplicate key, the generic form of
// spec.md §4.3's `unique_by` constraint rule.
func declareUniqueByValue[V comparable](m *constraint.Model, byValue map[V][]candidate.ID) {
	for _, ids := range byValue {
		if len(ids) > 1 {
			m.AtMostOne(ids...)
		}
	}
}

// declareNoOrphans enforces, per candidate of label, that if it is
// selected then at least one of the candidates that actually
// references it as a child (via ScoreDetails.ChildRefs) must also be
// selected. This is the generic form of spec.md §4.3's `no_orphans`
// rule, applied per-candidate rather than per-label so that selecting
// one Step's StepNumber never depends on an unrelated Step existing.
//
// A label no classifier ever references (no composite's ChildRefs
// includes it) ends up with an always-empty parent set for every one
// of its candidates, which makes the implication unsatisfiable
// whenever such a candidate is selected — i.e. it can never be
// selected. This is intentional for labels with no composite consumer
// yet (see substepnumber.go).
func declareNoOrphans(m *constraint.Model, result *candidate.ClassificationResult, label candidate.Label) {
	children := result.CandidatesByLabel(label)
	if len(children) == 0 {
		return
	}

	parentsOf := make(map[candidate.ID][]candidate.ID)
	for _, p := range result.AllCandidates() {
		for _, ref := range candidate.ChildRefsOf(p) {
			parentsOf[ref] = append(parentsOf[ref], p.ID())
		}
	}

	for _, c := range children {
		m.IfAnySelectedThenOneOf([]candidate.ID{c.ID()}, parentsOf[c.ID()])
	}
}
