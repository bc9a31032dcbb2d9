package classifiers

import (
	"context"
	"testing"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/element"
)

func TestDiagramScoresLargeImage(t *testing.T) {
	pd := newPage(t, 1, 600, 800,
		block.NewImage(1, box(0, 0, 500, 700)),     // large, dominant
		block.NewImage(2, box(100, 100, 150, 150)), // too small
	)
	result := score(t, Diagram{}, pageContext(t, pd))

	cands := result.CandidatesByLabel("Diagram")
	if len(cands) != 1 {
		t.Fatalf("expected 1 Diagram candidate, got %d", len(cands))
	}
	if cands[0].SourceBlocks()[0] != 1 {
		t.Fatalf("expected block 1 to be the diagram, got %v", cands[0].SourceBlocks())
	}
	if cands[0].Score() <= 0.5 {
		t.Fatalf("expected dominance boost for a page-covering image, got %.2f", cands[0].Score())
	}
}

func TestDiagramScoresNearSquareDrawingWithPenalty(t *testing.T) {
	pd := newPage(t, 1, 600, 800,
		block.Block{ID: 1, Kind: block.KindDrawing, BBox: box(50, 50, 350, 350)}, // large, roughly square
	)
	result := score(t, Diagram{}, pageContext(t, pd))

	cands := result.CandidatesByLabel("Diagram")
	if len(cands) != 1 {
		t.Fatalf("expected 1 Diagram candidate from the square drawing, got %d", len(cands))
	}
	if cands[0].Score() >= 0.5 {
		t.Fatalf("expected the drawing-variant penalty to keep score under the image base, got %.2f", cands[0].Score())
	}
}

func TestDiagramRejectsElongatedDrawing(t *testing.T) {
	pd := newPage(t, 1, 600, 800,
		block.Block{ID: 1, Kind: block.KindDrawing, BBox: box(0, 100, 600, 150)}, // wide strip, not diagram-shaped
	)
	result := score(t, Diagram{}, pageContext(t, pd))
	if len(result.CandidatesByLabel("Diagram")) != 0 {
		t.Fatalf("expected no Diagram candidates for an elongated drawing")
	}
}

func TestDiagramBuild(t *testing.T) {
	pd := newPage(t, 1, 600, 800,
		block.NewImage(1, box(0, 0, 500, 700)),
	)
	result := score(t, Diagram{}, pageContext(t, pd))
	id := result.CandidatesByLabel("Diagram")[0].ID()

	el, err := Diagram{}.Build(context.Background(), id, result)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := el.(element.Diagram); !ok {
		t.Fatalf("expected element.Diagram, got %T", el)
	}
}
