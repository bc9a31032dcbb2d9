package classifiers

import (
	"context"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/candidate"
	"github.com/dshills/legoclassify/pkg/classify"
	"github.com/dshills/legoclassify/pkg/constraint"
	"github.com/dshills/legoclassify/pkg/element"
	"github.com/dshills/legoclassify/pkg/geometry"
)

// SubAssembly scores a light-colored rectangular Drawing that
// contains a cluster of other Drawings (the partial-build
// illustration) and an adjacent PartCount giving how many copies of
// it the step needs. Unlike Part/PartsList, SubAssembly is atomic:
// element.SubAssembly.Count is a plain int, not a typed child field,
// so the nearby count is read directly into ScoreDetails rather than
// wired through schema.
type SubAssembly struct{}

type subAssemblyDetails struct {
	bbox  geometry.BBox
	count int
}

func (SubAssembly) Output() candidate.Label     { return "SubAssembly" }
func (SubAssembly) Requires() []candidate.Label { return []candidate.Label{"PartCount"} }

func (SubAssembly) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	drawings := pc.Page.OfKind(block.KindDrawing)
	counts := result.CandidatesByLabel("PartCount")

	for _, container := range drawings {
		if !isLight(container.FillColor) {
			continue
		}
		if container.BBox.Area() < pc.Page.Width*pc.Page.Height*0.02 {
			continue // too small to host a cluster of sub-drawings
		}

		clusterSize := 0
		for _, inner := range drawings {
			if inner.ID == container.ID {
				continue
			}
			if inner.BBox.FullyInside(container.BBox) {
				clusterSize++
			}
		}
		if clusterSize == 0 {
			continue
		}

		score := 0.4 + 0.3*clampScore(float64(clusterSize)/4)

		count := 1
		if cc := nearestPartCountInside(counts, container.BBox, pc.Page); cc != nil {
			count = cc.ScoreDetails().(partCountDetails).value
			score += 0.2
		}

		id := result.NextID()
		result.AddCandidate(candidate.New[element.SubAssembly](
			id, "SubAssembly", clampScore(score),
			subAssemblyDetails{bbox: container.BBox, count: count}, []int{container.ID},
		))
	}
	return nil
}

// nearestPartCountInside returns the PartCount whose bbox sits just
// outside container (within a small margin), preferring the closest
// one, since a sub-assembly's multiplier is printed just beside it
// rather than inside the cluster itself.
func nearestPartCountInside(counts []candidate.AnyCandidate, container geometry.BBox, page *block.PageData) candidate.AnyCandidate {
	margin := 0.0
	if page != nil {
		margin = page.Width * 0.03
	}
	expanded := container.Expand(margin)

	var best candidate.AnyCandidate
	bestDist := 0.0
	for _, c := range counts {
		box := c.ScoreDetails().(partCountDetails).bbox
		if box.FullyInside(container) {
			continue // belongs to a Part inside the cluster, not the assembly's own multiplier
		}
		if !box.FullyInside(expanded) {
			continue
		}
		dist := container.Center().Distance(box.Center())
		if best == nil || dist <= bestDist {
			best, bestDist = c, dist
		}
	}
	return best
}

func (SubAssembly) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(subAssemblyDetails)
	return element.SubAssembly{BBox: d.bbox, Count: d.count}, nil
}

// DeclareConstraints is a no-op: SubAssembly is placed into a
// selected Step's spatially-assigned SubAssemblies slot by
// pkg/spatial, same as Arrow.
func (SubAssembly) DeclareConstraints(*constraint.Model, *candidate.ClassificationResult) {}

func init() {
	classify.Register(SubAssembly{})
}
