// Package block defines the flat, typed layout primitives the block
// extractor hands to the classification core: Text, Image, and vector
// Drawing blocks, plus the immutable PageData container for one page.
package block

import (
	"fmt"

	"github.com/dshills/legoclassify/pkg/geometry"
)

// Kind identifies which variant a Block is.
type Kind int

const (
	// KindText is a run of extracted text with a font.
	KindText Kind = iota
	// KindImage is a raster image reference.
	KindImage
	// KindDrawing is a vector path, fill, or stroke.
	KindDrawing
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindImage:
		return "Image"
	case KindDrawing:
		return "Drawing"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Block is a single layout primitive on a page. Exactly one of the
// variant-specific field groups is populated, selected by Kind.
type Block struct {
	ID   int         `json:"id"`
	Kind Kind        `json:"kind"`
	BBox geometry.BBox `json:"bbox"`

	// Text fields (Kind == KindText).
	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`
	FontName string  `json:"fontName,omitempty"`

	// Drawing fields (Kind == KindDrawing).
	OriginalBBox *geometry.BBox `json:"originalBbox,omitempty"`
	Paths        []Path         `json:"paths,omitempty"`
	FillColor    *Color         `json:"fillColor,omitempty"`
	StrokeColor  *Color         `json:"strokeColor,omitempty"`
	Thickness    float64        `json:"thickness,omitempty"`
}

// Path is a polyline segment of a Drawing block.
type Path struct {
	Points []geometry.Point `json:"points"`
}

// Color is an RGB color in the 0-255 range.
type Color struct {
	R, G, B uint8
}

// NewText constructs a Text block.
func NewText(id int, bbox geometry.BBox, text string, fontSize float64, fontName string) Block {
	return Block{ID: id, Kind: KindText, BBox: bbox, Text: text, FontSize: fontSize, FontName: fontName}
}

// NewImage constructs an Image block.
func NewImage(id int, bbox geometry.BBox) Block {
	return Block{ID: id, Kind: KindImage, BBox: bbox}
}

// NewDrawing constructs a Drawing block.
func NewDrawing(id int, bbox geometry.BBox) Block {
	return Block{ID: id, Kind: KindDrawing, BBox: bbox}
}

// Validate checks that the block's bbox is well-formed. A failing
// block should be dropped with a warning (spec.md §7), not trusted by
// downstream classifiers.
func (b Block) Validate() error {
	if err := b.BBox.Validate(); err != nil {
		return fmt.Errorf("block %d: %w", b.ID, err)
	}
	if b.OriginalBBox != nil {
		if err := b.OriginalBBox.Validate(); err != nil {
			return fmt.Errorf("block %d: original bbox: %w", b.ID, err)
		}
	}
	return nil
}

// String returns a human-readable representation of the Block.
func (b Block) String() string {
	switch b.Kind {
	case KindText:
		return fmt.Sprintf("Text#%d[%q @ %s, size=%.1f]", b.ID, b.Text, b.BBox, b.FontSize)
	case KindImage:
		return fmt.Sprintf("Image#%d[@ %s]", b.ID, b.BBox)
	case KindDrawing:
		return fmt.Sprintf("Drawing#%d[@ %s]", b.ID, b.BBox)
	default:
		return fmt.Sprintf("Block#%d[unknown @ %s]", b.ID, b.BBox)
	}
}
