package classifiers

import (
	"context"
	"testing"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/candidate"
	"github.com/dshills/legoclassify/pkg/element"
)

func TestProgressBarIndicatorScoresTicksInsideBar(t *testing.T) {
	pd := newPage(t, 1, 600, 800,
		block.Block{ID: 1, Kind: block.KindDrawing, BBox: box(20, 0, 580, 20)}, // ProgressBar
		block.Block{ID: 2, Kind: block.KindDrawing, BBox: box(30, 4, 42, 16), FillColor: &block.Color{R: 40, G: 40, B: 40}},
		block.Block{ID: 3, Kind: block.KindDrawing, BBox: box(100, 100, 150, 150)}, // elsewhere, not a tick
	)
	pc := pageContext(t, pd)

	result := candidate.NewClassificationResult()
	mustScore(t, ProgressBar{}, pc, result)
	mustScore(t, ProgressBarIndicator{}, pc, result)

	cands := result.CandidatesByLabel("ProgressBarIndicator")
	if len(cands) != 1 {
		t.Fatalf("expected 1 ProgressBarIndicator candidate, got %d", len(cands))
	}
	if !cands[0].ScoreDetails().(progressBarIndicatorDetails).filled {
		t.Fatalf("expected indicator to read as filled")
	}
}

func TestProgressBarIndicatorNoOpWithoutBar(t *testing.T) {
	pd := newPage(t, 1, 600, 800,
		block.Block{ID: 1, Kind: block.KindDrawing, BBox: box(30, 4, 42, 16)},
	)
	result := score(t, ProgressBarIndicator{}, pageContext(t, pd))
	if len(result.CandidatesByLabel("ProgressBarIndicator")) != 0 {
		t.Fatalf("expected no indicators without a ProgressBar present")
	}
}

func TestProgressBarIndicatorBuild(t *testing.T) {
	pd := newPage(t, 1, 600, 800,
		block.Block{ID: 1, Kind: block.KindDrawing, BBox: box(20, 0, 580, 20)},
		block.Block{ID: 2, Kind: block.KindDrawing, BBox: box(30, 4, 42, 16)},
	)
	pc := pageContext(t, pd)
	result := candidate.NewClassificationResult()
	mustScore(t, ProgressBar{}, pc, result)
	mustScore(t, ProgressBarIndicator{}, pc, result)

	id := result.CandidatesByLabel("ProgressBarIndicator")[0].ID()
	el, err := ProgressBarIndicator{}.Build(context.Background(), id, result)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := el.(element.ProgressBarIndicator); !ok {
		t.Fatalf("expected element.ProgressBarIndicator, got %T", el)
	}
}
