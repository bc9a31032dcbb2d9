// Package hints aggregates document-wide statistics — font-size
// histograms, per-role size estimates, and page-type signals — from
// every page of a document. The result is built once per document and
// shared read-only with every classifier.
package hints

import (
	"sort"

	"github.com/dshills/legoclassify/pkg/block"
)

// PageType is a coarse classification of a page's overall role within
// the document, used to bias classifiers that behave differently on
// catalogue pages versus assembly-step pages.
type PageType int

const (
	// PageTypeUnknown means no page-type signal was strong enough.
	PageTypeUnknown PageType = iota
	// PageTypeStep is an assembly-instruction page.
	PageTypeStep
	// PageTypePartsList is a bill-of-materials / catalogue page.
	PageTypePartsList
)

// String returns the string representation of a PageType.
func (t PageType) String() string {
	switch t {
	case PageTypeStep:
		return "Step"
	case PageTypePartsList:
		return "PartsList"
	default:
		return "Unknown"
	}
}

// DocumentHints is the read-only aggregate computed once per document
// and shared across every page's classification run.
type DocumentHints struct {
	// FontSizes is a histogram of every observed Text block font size,
	// rounded to the nearest tenth of a point, mapped to occurrence count.
	FontSizes map[float64]int

	// Per-role size estimates: the font size classifiers should expect
	// for each kind of numeric label, derived from the histogram's modal
	// values within plausible bands.
	PageNumberSize float64
	StepNumberSize float64
	PartCountSize  float64
	PartNumberSize float64

	// PageTypes maps a page index to its inferred PageType.
	PageTypes map[int]PageType
}

// Build aggregates DocumentHints from every page of a document. Pages
// must already be frozen (block.PageData.Frozen()).
func Build(pages []*block.PageData) DocumentHints {
	h := DocumentHints{
		FontSizes: make(map[float64]int),
		PageTypes: make(map[int]PageType),
	}

	for _, p := range pages {
		for _, b := range p.OfKind(block.KindText) {
			size := roundTenth(b.FontSize)
			h.FontSizes[size]++
		}
	}

	h.PageNumberSize = modalSizeInBand(h.FontSizes, 6, 12)
	h.StepNumberSize = modalSizeInBand(h.FontSizes, 14, 36)
	h.PartCountSize = modalSizeInBand(h.FontSizes, 8, 16)
	h.PartNumberSize = modalSizeInBand(h.FontSizes, 6, 10)

	for _, p := range pages {
		h.PageTypes[p.PageIndex] = classifyPageType(p)
	}

	return h
}

// modalSizeInBand returns the most frequent font size within [lo, hi],
// or the band midpoint if no observed size falls in it.
func modalSizeInBand(hist map[float64]int, lo, hi float64) float64 {
	var sizes []float64
	for size := range hist {
		if size >= lo && size <= hi {
			sizes = append(sizes, size)
		}
	}
	if len(sizes) == 0 {
		return (lo + hi) / 2
	}
	sort.Slice(sizes, func(i, j int) bool {
		if hist[sizes[i]] != hist[sizes[j]] {
			return hist[sizes[i]] > hist[sizes[j]]
		}
		return sizes[i] < sizes[j]
	})
	return sizes[0]
}

// classifyPageType makes a coarse guess at a page's role from block
// counts alone: at least four images with at least as many text blocks
// suggests a parts-list/catalogue page; otherwise any drawing or image
// suggests an assembly step. Text content, font sizes, and layout are
// not examined.
func classifyPageType(p *block.PageData) PageType {
	texts := p.OfKind(block.KindText)
	images := p.OfKind(block.KindImage)
	drawings := p.OfKind(block.KindDrawing)

	if len(images) >= 4 && len(texts) >= len(images) {
		return PageTypePartsList
	}
	if len(drawings) > 0 || len(images) > 0 {
		return PageTypeStep
	}
	return PageTypeUnknown
}

// roundTenth rounds a font size to the nearest tenth of a point so
// near-identical sizes produced by different rendering paths collapse
// into the same histogram bucket.
func roundTenth(size float64) float64 {
	return float64(int(size*10+0.5)) / 10
}
