package classifiers

import (
	"context"

	"github.com/dshills/legoclassify/pkg/candidate"
	"github.com/dshills/legoclassify/pkg/classify"
	"github.com/dshills/legoclassify/pkg/constraint"
	"github.com/dshills/legoclassify/pkg/element"
)

// Page is the root composite: every page gets exactly one Page
// candidate referencing the single best PageNumber, every Step, every
// top-level PartsList (one not already claimed by some Step), the
// Background, and the ProgressBar. Diagrams, Arrows, SubAssemblies,
// and ProgressBarIndicators left over after the solve are placed into
// Step.Diagram-style spatial slots, ProgressBar.Indicators, and
// Page.StandaloneArrows by pkg/spatial, not here.
type Page struct{}

type pageDetails struct {
	pageNumber  candidate.ID // zero if none
	steps       []candidate.ID
	partsLists  []candidate.ID
	background  candidate.ID // zero if none
	progressBar candidate.ID // zero if none
}

func (d pageDetails) ChildRefs() []candidate.ID {
	var refs []candidate.ID
	if d.pageNumber != 0 {
		refs = append(refs, d.pageNumber)
	}
	refs = append(refs, d.steps...)
	refs = append(refs, d.partsLists...)
	if d.background != 0 {
		refs = append(refs, d.background)
	}
	if d.progressBar != 0 {
		refs = append(refs, d.progressBar)
	}
	return refs
}

func (Page) Output() candidate.Label { return "Page" }
func (Page) Requires() []candidate.Label {
	return []candidate.Label{"PageNumber", "Step", "PartsList", "Background", "ProgressBar"}
}

func (Page) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	details := pageDetails{}

	if pns := candidate.ByScoreThenID(result.CandidatesByLabel("PageNumber")); len(pns) > 0 {
		details.pageNumber = pns[0].ID()
	}

	steps := result.CandidatesByLabel("Step")
	for _, s := range steps {
		details.steps = append(details.steps, s.ID())
	}

	claimedByStep := make(map[candidate.ID]bool)
	for _, s := range steps {
		if d := s.ScoreDetails().(stepDetails); d.partsList != 0 {
			claimedByStep[d.partsList] = true
		}
	}
	for _, pl := range result.CandidatesByLabel("PartsList") {
		if !claimedByStep[pl.ID()] {
			details.partsLists = append(details.partsLists, pl.ID())
		}
	}

	if bgs := candidate.ByScoreThenID(result.CandidatesByLabel("Background")); len(bgs) > 0 {
		details.background = bgs[0].ID()
	}
	if pbs := candidate.ByScoreThenID(result.CandidatesByLabel("ProgressBar")); len(pbs) > 0 {
		details.progressBar = pbs[0].ID()
	}

	id := result.NextID()
	result.AddCandidate(candidate.New[element.Page](id, "Page", 1.0, details, nil))
	return nil
}

func (Page) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(pageDetails)

	page := element.Page{}
	if d.pageNumber != 0 {
		if pn, ok := result.BuiltElement(d.pageNumber).(element.PageNumber); ok {
			page.PageNumber = &pn
		}
	}
	for _, sid := range d.steps {
		if s, ok := result.BuiltElement(sid).(element.Step); ok {
			page.Steps = append(page.Steps, s)
		}
	}
	for _, plid := range d.partsLists {
		if pl, ok := result.BuiltElement(plid).(element.PartsList); ok {
			page.PartsLists = append(page.PartsLists, pl)
		}
	}
	if d.background != 0 {
		if bg, ok := result.BuiltElement(d.background).(element.Background); ok {
			page.Background = &bg
		}
	}
	if d.progressBar != 0 {
		if pb, ok := result.BuiltElement(d.progressBar).(element.ProgressBar); ok {
			page.ProgressBar = &pb
		}
	}
	return page, nil
}

// DeclareConstraints forces the single Page candidate always selected:
// every page must build a Page element even with zero other
// candidates (an empty page is still a well-formed result).
func (Page) DeclareConstraints(m *constraint.Model, result *candidate.ClassificationResult) {
	pages := result.CandidatesByLabel("Page")
	if len(pages) == 0 {
		return
	}
	ids := make([]candidate.ID, len(pages))
	for i, p := range pages {
		ids[i] = p.ID()
	}
	m.ExactlyOne(ids...)
}

func init() {
	classify.Register(Page{})
}
