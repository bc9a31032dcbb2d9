package classifiers

import (
	"context"
	"testing"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/candidate"
	"github.com/dshills/legoclassify/pkg/classify"
)

func mustScore(t *testing.T, c classify.Classifier, pc classify.PageContext, result *candidate.ClassificationResult) {
	t.Helper()
	if err := c.Score(context.Background(), pc, result); err != nil {
		t.Fatalf("%s Score: %v", c.Output(), err)
	}
}

func TestOpenBagPairsGlyphWithNearestBagNumberAndParts(t *testing.T) {
	pd := newPage(t, 1, 600, 800,
		block.NewText(1, box(10, 10, 30, 30), "3", 11, "Helvetica"),            // BagNumber
		block.Block{ID: 2, Kind: block.KindDrawing, BBox: box(40, 10, 60, 30)}, // circular glyph
		block.NewImage(3, box(50, 50, 100, 100)),                              // PartImage
		block.NewText(4, box(50, 105, 80, 125), "2x", 10, "Helvetica"),        // PartCount
	)
	pc := pageContext(t, pd)

	result := candidate.NewClassificationResult()
	mustScore(t, BagNumber{}, pc, result)
	mustScore(t, PartImage{}, pc, result)
	mustScore(t, PartCount{}, pc, result)
	mustScore(t, Part{}, pc, result)
	mustScore(t, OpenBag{}, pc, result)

	bags := result.CandidatesByLabel("OpenBag")
	if len(bags) == 0 {
		t.Fatalf("expected at least 1 OpenBag candidate")
	}
	for _, b := range bags {
		d := b.ScoreDetails().(openBagDetails)
		if d.bagNumber == 0 {
			t.Fatalf("expected a bag number reference")
		}
		if len(d.parts) == 0 {
			t.Fatalf("expected at least 1 part reference")
		}
	}
}
