package classify

import (
	"context"
	"testing"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/candidate"
	_ "github.com/dshills/legoclassify/pkg/classify/classifiers"
	"github.com/dshills/legoclassify/pkg/constraint"
	"github.com/dshills/legoclassify/pkg/geometry"
	"github.com/dshills/legoclassify/pkg/hints"
)

// These tests exercise the real classifier set end to end, as opposed
// to pipeline_test.go's synthetic classifiers used to test Pipeline's
// own control flow in isolation.

func liveConfig() *constraint.SolverConfig {
	return &constraint.SolverConfig{
		UnconsumedPenalty:    0.05,
		BuildRetryBudget:     2,
		PerPageTimeoutMillis: 1000,
	}
}

func livePipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := NewPipeline(All(), liveConfig())
	if err != nil {
		t.Fatalf("unexpected error building the live pipeline: %v", err)
	}
	return p
}

func box(x0, y0, x1, y1 float64) geometry.BBox {
	return geometry.NewBBox(x0, y0, x1, y1)
}

func freeze(t *testing.T, pd *block.PageData) *block.PageData {
	t.Helper()
	if _, err := pd.Freeze(); err != nil {
		t.Fatalf("freeze fixture page: %v", err)
	}
	return pd
}

// S1 — a single bare-integer Text block in the bottom corner is
// classified as the page number and consumes its source block.
func TestScenarioS1SinglePageNumber(t *testing.T) {
	p := livePipeline(t)

	pd := freeze(t, func() *block.PageData {
		pd := block.NewPageData(0, 600, 840)
		pd.Add(block.NewText(1, box(10, 820, 25, 835), "5", 10, "Helvetica"))
		return pd
	}())

	docHints := hints.Build([]*block.PageData{pd})
	page, result, err := p.RunPage(context.Background(), pd, docHints)
	if err != nil {
		t.Fatalf("RunPage: %v", err)
	}

	if page.PageNumber == nil || page.PageNumber.Value != 5 {
		t.Fatalf("expected PageNumber{Value: 5}, got %+v", page.PageNumber)
	}
	consumed := result.ConsumedBlocks()
	if _, ok := consumed[1]; !ok {
		t.Fatalf("expected block 1 consumed, consumed = %v", consumed)
	}
}

// S2 — two bare-integer "2" Text blocks both plausible as StepNumber;
// only the one whose font size matches the document's step-number
// size wins, and the smaller one survives only as a losing alternative.
func TestScenarioS2UniquenessTieBreak(t *testing.T) {
	p := livePipeline(t)

	pd := freeze(t, func() *block.PageData {
		pd := block.NewPageData(0, 600, 840)
		pd.Add(block.NewText(1, box(40, 300, 70, 330), "2", 28, "Helvetica-Bold")) // matches step-number band
		pd.Add(block.NewText(2, box(400, 300, 415, 315), "2", 9, "Helvetica"))     // too small, off-band
		return pd
	}())

	docHints := hints.Build([]*block.PageData{pd})
	_, result, err := p.RunPage(context.Background(), pd, docHints)
	if err != nil {
		t.Fatalf("RunPage: %v", err)
	}

	stepNumbers := result.CandidatesByLabel("StepNumber")
	if len(stepNumbers) != 2 {
		t.Fatalf("expected 2 StepNumber candidates scored, got %d", len(stepNumbers))
	}

	var selected, rejected int
	var winner candidate.AnyCandidate
	for _, c := range stepNumbers {
		switch result.Status(c.ID()) {
		case candidate.StatusSelected, candidate.StatusBuilt:
			selected++
			winner = c
		default:
			rejected++
		}
	}
	if selected != 1 {
		t.Fatalf("expected exactly 1 selected StepNumber (uniqueness by value), got %d", selected)
	}
	if rejected != 1 {
		t.Fatalf("expected the losing candidate preserved as a rejected alternative, got %d rejected", rejected)
	}
	if len(winner.SourceBlocks()) != 1 || winner.SourceBlocks()[0] != 1 {
		t.Fatalf("expected block 1 (the larger, on-band match) to win, got source blocks %v", winner.SourceBlocks())
	}
}

// S3 — a Drawing container holding two Image+count pairs is classified
// as a PartsList with two Parts, consuming every block involved.
func TestScenarioS3PartsListWithTwoParts(t *testing.T) {
	p := livePipeline(t)

	pd := freeze(t, func() *block.PageData {
		pd := block.NewPageData(0, 600, 800)
		pd.Add(block.NewDrawing(1, box(50, 50, 550, 750))) // D, the tray container
		pd.Add(block.NewImage(2, box(100, 100, 150, 150))) // I1
		pd.Add(block.NewText(3, box(100, 155, 150, 175), "2x", 10, "Helvetica"))
		pd.Add(block.NewImage(4, box(300, 100, 350, 150))) // I2
		pd.Add(block.NewText(5, box(300, 155, 350, 175), "3x", 10, "Helvetica"))
		return pd
	}())

	docHints := hints.Build([]*block.PageData{pd})
	page, result, err := p.RunPage(context.Background(), pd, docHints)
	if err != nil {
		t.Fatalf("RunPage: %v", err)
	}

	if len(page.PartsLists) != 1 {
		t.Fatalf("expected 1 top-level PartsList, got %d", len(page.PartsLists))
	}
	pl := page.PartsLists[0]
	if len(pl.Parts) != 2 {
		t.Fatalf("expected 2 Parts, got %d", len(pl.Parts))
	}

	counts := map[int]bool{}
	for _, part := range pl.Parts {
		counts[part.Count.Value] = true
	}
	if !counts[2] || !counts[3] {
		t.Fatalf("expected Parts with counts 2 and 3, got %v", pl.Parts)
	}

	// The Drawing container (block 1) is a geometric backdrop PartsList
	// reads but never claims as a source block — it has no Text/Image
	// content of its own to consume. The Part children's blocks do.
	consumed := result.ConsumedBlocks()
	for _, id := range []int{2, 3, 4, 5} {
		if _, ok := consumed[id]; !ok {
			t.Fatalf("expected block %d consumed, consumed = %v", id, consumed)
		}
	}
}

// S4 — a single bare-integer Text block is simultaneously plausible as
// PageNumber, StepNumber, and BagNumber. Block exclusivity guarantees
// only one of those competing interpretations is ever selected.
func TestScenarioS4BlockConflictResolution(t *testing.T) {
	p := livePipeline(t)

	pd := freeze(t, func() *block.PageData {
		pd := block.NewPageData(0, 600, 800)
		// mid-page, away from any corner band: plausible to PageNumber,
		// StepNumber, and BagNumber classifiers alike.
		pd.Add(block.NewText(1, box(280, 390, 300, 410), "7", 14, "Helvetica"))
		return pd
	}())

	docHints := hints.Build([]*block.PageData{pd})
	_, result, err := p.RunPage(context.Background(), pd, docHints)
	if err != nil {
		t.Fatalf("RunPage: %v", err)
	}

	var competing []candidate.AnyCandidate
	for _, c := range result.AllCandidates() {
		for _, b := range c.SourceBlocks() {
			if b == 1 {
				competing = append(competing, c)
			}
		}
	}
	if len(competing) < 2 {
		t.Fatalf("expected at least 2 candidates competing over block 1, got %d", len(competing))
	}

	selectedCount := 0
	for _, c := range competing {
		switch result.Status(c.ID()) {
		case candidate.StatusSelected, candidate.StatusBuilt:
			selectedCount++
		}
	}
	if selectedCount != 1 {
		t.Fatalf("expected block exclusivity to leave exactly 1 of %d competing candidates selected, got %d", len(competing), selectedCount)
	}
}

// S5 — an Arrow with no viable StepNumber on the page is never folded
// into a Step; it surfaces as a Page-level standalone arrow instead of
// being silently dropped or force-selected as a Step's only child.
func TestScenarioS5OrphanArrowBecomesStandalone(t *testing.T) {
	p := livePipeline(t)

	pd := freeze(t, func() *block.PageData {
		pd := block.NewPageData(0, 600, 800)
		pd.Add(block.Block{ID: 1, Kind: block.KindDrawing, BBox: box(280, 380, 320, 460)}) // elongated, arrow-shaped
		return pd
	}())

	docHints := hints.Build([]*block.PageData{pd})
	page, result, err := p.RunPage(context.Background(), pd, docHints)
	if err != nil {
		t.Fatalf("RunPage: %v", err)
	}

	if len(page.Steps) != 0 {
		t.Fatalf("expected no Steps (no StepNumber on the page), got %d", len(page.Steps))
	}
	if len(page.StandaloneArrows) != 1 {
		t.Fatalf("expected the orphaned Arrow to surface as a standalone arrow, got %d", len(page.StandaloneArrows))
	}
	consumed := result.ConsumedBlocks()
	if _, ok := consumed[1]; !ok {
		t.Fatalf("expected the Arrow's block consumed once selected, consumed = %v", consumed)
	}
}

// S6 — two Steps compete for a single Diagram; spatial assignment
// gives it to whichever Step's center is closer, leaving the other's
// Diagram unset.
func TestScenarioS6DiagramGoesToNearestStep(t *testing.T) {
	p := livePipeline(t)

	pd := freeze(t, func() *block.PageData {
		pd := block.NewPageData(0, 600, 800)
		pd.Add(block.NewText(1, box(40, 50, 70, 80), "1", 28, "Helvetica-Bold"))  // StepNumber 1, near the diagram
		pd.Add(block.NewText(2, box(40, 650, 70, 680), "2", 28, "Helvetica-Bold")) // StepNumber 2, far from the diagram
		pd.Add(block.NewImage(3, box(200, 50, 560, 350)))                         // the one shared Diagram
		return pd
	}())

	docHints := hints.Build([]*block.PageData{pd})
	page, _, err := p.RunPage(context.Background(), pd, docHints)
	if err != nil {
		t.Fatalf("RunPage: %v", err)
	}

	if len(page.Steps) != 2 {
		t.Fatalf("expected 2 Steps, got %d", len(page.Steps))
	}

	var withDiagram, withoutDiagram int
	var winnerNumber int
	for _, s := range page.Steps {
		if s.Diagram != nil {
			withDiagram++
			winnerNumber = s.Number.Value
		} else {
			withoutDiagram++
		}
	}
	if withDiagram != 1 || withoutDiagram != 1 {
		t.Fatalf("expected exactly 1 Step with the shared Diagram and 1 without, got %d with / %d without", withDiagram, withoutDiagram)
	}
	if winnerNumber != 1 {
		t.Fatalf("expected Step 1 (closer center) to win the Diagram, got Step %d", winnerNumber)
	}
}

// Universal invariant 6: determinism. Running the same frozen page
// through independently-built pipelines yields the identical selected
// set and built Page.
func TestDeterminismAcrossRuns(t *testing.T) {
	pd1 := freeze(t, func() *block.PageData {
		pd := block.NewPageData(0, 600, 800)
		pd.Add(block.NewDrawing(1, box(50, 50, 550, 750)))
		pd.Add(block.NewImage(2, box(100, 100, 150, 150)))
		pd.Add(block.NewText(3, box(100, 155, 150, 175), "2x", 10, "Helvetica"))
		pd.Add(block.NewText(4, box(40, 300, 70, 330), "1", 28, "Helvetica-Bold"))
		return pd
	}())
	pd2 := freeze(t, func() *block.PageData {
		pd := block.NewPageData(0, 600, 800)
		pd.Add(block.NewDrawing(1, box(50, 50, 550, 750)))
		pd.Add(block.NewImage(2, box(100, 100, 150, 150)))
		pd.Add(block.NewText(3, box(100, 155, 150, 175), "2x", 10, "Helvetica"))
		pd.Add(block.NewText(4, box(40, 300, 70, 330), "1", 28, "Helvetica-Bold"))
		return pd
	}())

	docHints1 := hints.Build([]*block.PageData{pd1})
	docHints2 := hints.Build([]*block.PageData{pd2})

	p1 := livePipeline(t)
	p2 := livePipeline(t)

	page1, result1, err := p1.RunPage(context.Background(), pd1, docHints1)
	if err != nil {
		t.Fatalf("RunPage 1: %v", err)
	}
	page2, result2, err := p2.RunPage(context.Background(), pd2, docHints2)
	if err != nil {
		t.Fatalf("RunPage 2: %v", err)
	}

	if len(result1.SelectedIDs()) != len(result2.SelectedIDs()) {
		t.Fatalf("expected identical selected-set sizes across runs, got %d vs %d", len(result1.SelectedIDs()), len(result2.SelectedIDs()))
	}
	if len(page1.PartsLists) != len(page2.PartsLists) || len(page1.Steps) != len(page2.Steps) {
		t.Fatalf("expected identical built Page shape across runs, got %+v vs %+v", page1, page2)
	}
}
