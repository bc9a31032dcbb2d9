package classifiers

import (
	"context"
	"testing"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/element"
)

func TestPartCountMatchesMultiplierText(t *testing.T) {
	pd := newPage(t, 1, 600, 800,
		block.NewText(1, box(10, 10, 40, 30), "2x", 10, "Helvetica"),
		block.NewText(2, box(50, 10, 80, 30), "12×", 10, "Helvetica"),
		block.NewText(3, box(90, 10, 120, 30), "hello", 10, "Helvetica"),
	)
	result := score(t, PartCount{}, pageContext(t, pd))

	cands := result.CandidatesByLabel("PartCount")
	if len(cands) != 2 {
		t.Fatalf("expected 2 PartCount candidates, got %d", len(cands))
	}
	values := map[int]bool{}
	for _, c := range cands {
		values[c.ScoreDetails().(partCountDetails).value] = true
	}
	if !values[2] || !values[12] {
		t.Fatalf("expected values 2 and 12, got %v", values)
	}
}

func TestPartCountBuild(t *testing.T) {
	pd := newPage(t, 1, 600, 800,
		block.NewText(1, box(10, 10, 40, 30), "2x", 10, "Helvetica"),
	)
	result := score(t, PartCount{}, pageContext(t, pd))
	id := result.CandidatesByLabel("PartCount")[0].ID()

	el, err := PartCount{}.Build(context.Background(), id, result)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	pc, ok := el.(element.PartCount)
	if !ok {
		t.Fatalf("expected element.PartCount, got %T", el)
	}
	if pc.Value != 2 {
		t.Fatalf("expected value 2, got %d", pc.Value)
	}
}
