package classifiers

import (
	"context"
	"testing"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/candidate"
	"github.com/dshills/legoclassify/pkg/classify"
	"github.com/dshills/legoclassify/pkg/geometry"
	"github.com/dshills/legoclassify/pkg/hints"
)

// newPage builds a frozen PageData with the given blocks, panicking on
// a malformed fixture (a test-author error, not something to assert on).
func newPage(t *testing.T, pageIndex int, width, height float64, blocks ...block.Block) *block.PageData {
	t.Helper()
	pd := block.NewPageData(pageIndex, width, height)
	for _, b := range blocks {
		pd.Add(b)
	}
	if _, err := pd.Freeze(); err != nil {
		t.Fatalf("freeze fixture page: %v", err)
	}
	return pd
}

// pageContext wraps a page with hints built over just that page, the
// common case for single-classifier unit tests.
func pageContext(t *testing.T, pd *block.PageData) classify.PageContext {
	t.Helper()
	return classify.PageContext{Page: pd, Hints: hints.Build([]*block.PageData{pd})}
}

// score runs a classifier's Score step against a fresh result and
// returns it for inspection.
func score(t *testing.T, c classify.Classifier, pc classify.PageContext) *candidate.ClassificationResult {
	t.Helper()
	result := candidate.NewClassificationResult()
	if err := c.Score(context.Background(), pc, result); err != nil {
		t.Fatalf("Score: %v", err)
	}
	return result
}

func box(x0, y0, x1, y1 float64) geometry.BBox {
	return geometry.NewBBox(x0, y0, x1, y1)
}
