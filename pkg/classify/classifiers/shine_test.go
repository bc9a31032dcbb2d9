package classifiers

import (
	"context"
	"testing"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/element"
)

func TestShineScoresTinyBrightGlyph(t *testing.T) {
	pd := newPage(t, 1, 600, 800,
		block.Block{ID: 1, Kind: block.KindDrawing, BBox: box(300, 400, 310, 408), FillColor: &block.Color{R: 255, G: 255, B: 200}},
		block.Block{ID: 2, Kind: block.KindDrawing, BBox: box(0, 0, 600, 800)}, // too big
	)
	result := score(t, Shine{}, pageContext(t, pd))

	cands := result.CandidatesByLabel("Shine")
	if len(cands) != 1 {
		t.Fatalf("expected 1 Shine candidate, got %d", len(cands))
	}
	if cands[0].Score() <= 0.4 {
		t.Fatalf("expected bright-fill boost, got %.2f", cands[0].Score())
	}
}

func TestShineBuild(t *testing.T) {
	pd := newPage(t, 1, 600, 800,
		block.Block{ID: 1, Kind: block.KindDrawing, BBox: box(300, 400, 310, 408)},
	)
	result := score(t, Shine{}, pageContext(t, pd))
	id := result.CandidatesByLabel("Shine")[0].ID()

	el, err := Shine{}.Build(context.Background(), id, result)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := el.(element.Shine); !ok {
		t.Fatalf("expected element.Shine, got %T", el)
	}
}
