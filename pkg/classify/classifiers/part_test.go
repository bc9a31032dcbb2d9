package classifiers

import (
	"context"
	"testing"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/element"
)

func TestPartPairsCountWithImageAbove(t *testing.T) {
	pd := newPage(t, 1, 600, 800,
		block.NewImage(1, box(100, 100, 150, 150)),
		block.NewText(2, box(100, 155, 130, 175), "2x", 10, "Helvetica"),
	)
	pc := pageContext(t, pd)
	result := score(t, PartImage{}, pc)
	if err := (PartCount{}).Score(context.Background(), pc, result); err != nil {
		t.Fatalf("PartCount Score: %v", err)
	}
	if err := (Part{}).Score(context.Background(), pc, result); err != nil {
		t.Fatalf("Part Score: %v", err)
	}

	parts := result.CandidatesByLabel("Part")
	if len(parts) != 1 {
		t.Fatalf("expected 1 Part candidate, got %d", len(parts))
	}
	d := parts[0].ScoreDetails().(partDetails)
	if d.count == 0 || d.diagram == 0 {
		t.Fatalf("expected count and diagram refs set, got %+v", d)
	}
}

func TestPartBuild(t *testing.T) {
	pd := newPage(t, 1, 600, 800,
		block.NewImage(1, box(100, 100, 150, 150)),
		block.NewText(2, box(100, 155, 130, 175), "2x", 10, "Helvetica"),
	)
	pc := pageContext(t, pd)
	result := score(t, PartImage{}, pc)
	if err := (PartCount{}).Score(context.Background(), pc, result); err != nil {
		t.Fatalf("PartCount Score: %v", err)
	}
	if err := (Part{}).Score(context.Background(), pc, result); err != nil {
		t.Fatalf("Part Score: %v", err)
	}

	partCand := result.CandidatesByLabel("Part")[0]
	d := partCand.ScoreDetails().(partDetails)

	countEl, err := PartCount{}.Build(context.Background(), d.count, result)
	if err != nil {
		t.Fatalf("PartCount Build: %v", err)
	}
	result.SetBuilt(d.count, countEl)

	imgEl, err := PartImage{}.Build(context.Background(), d.diagram, result)
	if err != nil {
		t.Fatalf("PartImage Build: %v", err)
	}
	result.SetBuilt(d.diagram, imgEl)

	built, err := Part{}.Build(context.Background(), partCand.ID(), result)
	if err != nil {
		t.Fatalf("Part Build: %v", err)
	}
	part, ok := built.(element.Part)
	if !ok {
		t.Fatalf("expected element.Part, got %T", built)
	}
	if part.Count.Value != 2 {
		t.Fatalf("expected count value 2, got %d", part.Count.Value)
	}
}
