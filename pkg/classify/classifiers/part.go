package classifiers

import (
	"context"
	"fmt"

	"github.com/dshills/legoclassify/pkg/candidate"
	"github.com/dshills/legoclassify/pkg/classify"
	"github.com/dshills/legoclassify/pkg/constraint"
	"github.com/dshills/legoclassify/pkg/element"
	"github.com/dshills/legoclassify/pkg/geometry"
)

// Part pairs a PartCount with a PartImage sitting directly above it,
// and optionally a nearby PartNumber/PieceLength, into a composite
// Part candidate. Requires runs this after every candidate it reads.
type Part struct{}

type partDetails struct {
	bbox        geometry.BBox // union of count and diagram bboxes, for PartsList containment checks
	count       candidate.ID
	diagram     candidate.ID
	partNumber  candidate.ID // zero if none
	pieceLength candidate.ID // zero if none
}

func (d partDetails) ChildRefs() []candidate.ID {
	refs := []candidate.ID{d.count, d.diagram}
	if d.partNumber != 0 {
		refs = append(refs, d.partNumber)
	}
	if d.pieceLength != 0 {
		refs = append(refs, d.pieceLength)
	}
	return refs
}

func (Part) Output() candidate.Label { return "Part" }
func (Part) Requires() []candidate.Label {
	return []candidate.Label{"PartCount", "PartImage", "PartNumber", "PieceLength"}
}

const (
	partVerticalTolerance   = 6.0
	partHorizontalTolerance = 10.0
	partNearbyRadius        = 40.0
)

func (Part) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	counts := result.CandidatesByLabel("PartCount")
	images := result.CandidatesByLabel("PartImage")
	numbers := result.CandidatesByLabel("PartNumber")
	lengths := result.CandidatesByLabel("PieceLength")

	for _, ic := range images {
		imgBox := ic.ScoreDetails().(partImageDetails).bbox

		var best candidate.AnyCandidate
		var bestBox geometry.BBox
		bestDist := -1.0
		for _, cc := range counts {
			cntBox := cc.ScoreDetails().(partCountDetails).bbox
			if cntBox.Y0 < imgBox.Y1 {
				continue // count must sit below the image
			}
			if !imgBox.AlignedWithin(cntBox, partHorizontalTolerance) && !overlapsHorizontally(imgBox, cntBox) {
				continue
			}
			dist := cntBox.VerticalDistance(imgBox)
			if dist > partNearbyRadius {
				continue
			}
			if bestDist < 0 || dist < bestDist {
				best, bestBox, bestDist = cc, cntBox, dist
			}
		}
		if best == nil {
			continue
		}

		score := 0.6 + 0.3*(1-clampScore(bestDist/partNearbyRadius))
		details := partDetails{bbox: unionBBox(imgBox, bestBox), count: best.ID(), diagram: ic.ID()}

		if pn := nearestWithin(numbers, imgBox, partNearbyRadius); pn != nil {
			details.partNumber = pn.ID()
			score += 0.05
		}
		if pl := nearestWithin(lengths, imgBox, partNearbyRadius); pl != nil {
			details.pieceLength = pl.ID()
			score += 0.05
		}

		id := result.NextID()
		result.AddCandidate(candidate.New[element.Part](id, "Part", clampScore(score), details, nil))
	}
	return nil
}

// overlapsHorizontally reports whether a and b share horizontal extent,
// a looser fallback to AlignedWithin for images wider than their count
// label.
func overlapsHorizontally(a, b geometry.BBox) bool {
	return a.HorizontalDistance(b) == 0
}

// nearestWithin returns the candidate whose bbox is closest to ref
// (by center distance) within radius, or nil if none qualify.
func nearestWithin(cands []candidate.AnyCandidate, ref geometry.BBox, radius float64) candidate.AnyCandidate {
	var best candidate.AnyCandidate
	bestDist := radius
	for _, c := range cands {
		var box geometry.BBox
		switch d := c.ScoreDetails().(type) {
		case partNumberDetails:
			box = d.bbox
		case pieceLengthDetails:
			box = d.bbox
		default:
			continue
		}
		dist := ref.Center().Distance(box.Center())
		if dist <= bestDist {
			best, bestDist = c, dist
		}
	}
	return best
}

func (Part) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(partDetails)

	countEl, ok := result.BuiltElement(d.count).(element.PartCount)
	if !ok {
		return nil, fmt.Errorf("classify: part %d: count candidate %d not built", id, d.count)
	}
	diagramEl, ok := result.BuiltElement(d.diagram).(element.PartImage)
	if !ok {
		return nil, fmt.Errorf("classify: part %d: diagram candidate %d not built", id, d.diagram)
	}

	bbox := countEl.BBox
	if bbox.Area() < diagramEl.BBox.Area() {
		bbox = diagramEl.BBox
	}

	part := element.Part{BBox: bbox, Count: countEl, Diagram: diagramEl}
	if d.partNumber != 0 {
		if pn, ok := result.BuiltElement(d.partNumber).(element.PartNumber); ok {
			part.PartNumber = &pn
		}
	}
	if d.pieceLength != 0 {
		if pl, ok := result.BuiltElement(d.pieceLength).(element.PieceLength); ok {
			part.PieceLength = &pl
		}
	}
	return part, nil
}

// DeclareConstraints keeps two Part candidates from sharing one
// PartCount: Parts are composites with no source blocks, so block
// exclusivity does not stop two of them referencing the same count.
// A PartImage is never shared, since Score emits at most one Part per
// image. pkg/schema supplies the required-child wiring for
// PartCount/PartImage.
func (Part) DeclareConstraints(m *constraint.Model, result *candidate.ClassificationResult) {
	byCount := make(map[candidate.ID][]candidate.ID)
	for _, c := range result.CandidatesByLabel("Part") {
		d := c.ScoreDetails().(partDetails)
		byCount[d.count] = append(byCount[d.count], c.ID())
	}
	declareUniqueByValue(m, byCount)
}

func init() {
	classify.Register(Part{})
}
