package classifiers

import (
	"context"
	"testing"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/element"
)

func TestBackgroundScoresFullBleedLightDrawing(t *testing.T) {
	pd := newPage(t, 1, 600, 800,
		block.Block{ID: 1, Kind: block.KindDrawing, BBox: box(0, 0, 600, 800), FillColor: &block.Color{R: 250, G: 250, B: 250}},
		block.Block{ID: 2, Kind: block.KindDrawing, BBox: box(100, 100, 150, 150)}, // too small
	)
	result := score(t, Background{}, pageContext(t, pd))

	cands := result.CandidatesByLabel("Background")
	if len(cands) != 1 {
		t.Fatalf("expected 1 Background candidate, got %d", len(cands))
	}
	if cands[0].Score() <= 0.5 {
		t.Fatalf("expected light-fill boost, got %.2f", cands[0].Score())
	}
}

func TestBackgroundBuild(t *testing.T) {
	pd := newPage(t, 1, 600, 800,
		block.Block{ID: 1, Kind: block.KindDrawing, BBox: box(0, 0, 600, 800)},
	)
	result := score(t, Background{}, pageContext(t, pd))
	id := result.CandidatesByLabel("Background")[0].ID()

	el, err := Background{}.Build(context.Background(), id, result)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := el.(element.Background); !ok {
		t.Fatalf("expected element.Background, got %T", el)
	}
}
