package classifiers

import (
	"context"
	"testing"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/element"
)

func TestPartImageRejectsOversizedImage(t *testing.T) {
	pd := newPage(t, 1, 600, 800,
		block.NewImage(1, box(100, 100, 150, 150)),  // small thumbnail
		block.NewImage(2, box(0, 0, 500, 700)),      // too large, this is a Diagram
	)
	result := score(t, PartImage{}, pageContext(t, pd))

	cands := result.CandidatesByLabel("PartImage")
	if len(cands) != 1 {
		t.Fatalf("expected 1 PartImage candidate, got %d", len(cands))
	}
	if cands[0].SourceBlocks()[0] != 1 {
		t.Fatalf("expected block 1 to be the part image, got %v", cands[0].SourceBlocks())
	}
}

func TestPartImageBuild(t *testing.T) {
	pd := newPage(t, 1, 600, 800,
		block.NewImage(1, box(100, 100, 150, 150)),
	)
	result := score(t, PartImage{}, pageContext(t, pd))
	id := result.CandidatesByLabel("PartImage")[0].ID()

	el, err := PartImage{}.Build(context.Background(), id, result)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := el.(element.PartImage); !ok {
		t.Fatalf("expected element.PartImage, got %T", el)
	}
}
