package block

import "fmt"

// PageData holds every block extracted from one page, plus the page's
// own geometry. It is built mutable, then frozen: once Freeze returns
// successfully, callers must treat the Blocks slice as read-only.
// Classifiers receive only frozen PageData.
type PageData struct {
	PageIndex int     `json:"pageIndex"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Blocks    []Block `json:"blocks"`

	frozen bool
}

// NewPageData constructs an empty, unfrozen page of the given size.
func NewPageData(pageIndex int, width, height float64) *PageData {
	return &PageData{PageIndex: pageIndex, Width: width, Height: height}
}

// Add appends a block to the page. It panics if called after Freeze,
// since frozen pages must not mutate out from under classifiers that
// hold a reference.
func (p *PageData) Add(b Block) {
	if p.frozen {
		panic("block: Add called on frozen PageData")
	}
	p.Blocks = append(p.Blocks, b)
}

// Freeze validates every block on the page, drops the ones that fail
// validation (recording their IDs for the caller to log), and marks
// the page read-only. Freeze is idempotent.
func (p *PageData) Freeze() (droppedIDs []int, err error) {
	if p.frozen {
		return nil, nil
	}
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("block: page %d has non-positive dimensions (%.1fx%.1f)", p.PageIndex, p.Width, p.Height)
	}

	kept := p.Blocks[:0]
	seen := make(map[int]bool, len(p.Blocks))
	for _, b := range p.Blocks {
		if err := b.Validate(); err != nil {
			droppedIDs = append(droppedIDs, b.ID)
			continue
		}
		if seen[b.ID] {
			return nil, fmt.Errorf("block: duplicate block ID %d on page %d", b.ID, p.PageIndex)
		}
		seen[b.ID] = true
		kept = append(kept, b)
	}
	p.Blocks = kept
	p.frozen = true
	return droppedIDs, nil
}

// Frozen reports whether Freeze has been called successfully.
func (p *PageData) Frozen() bool { return p.frozen }

// ByID returns the block with the given ID and true, or the zero Block
// and false if no block with that ID exists on the page.
func (p *PageData) ByID(id int) (Block, bool) {
	for _, b := range p.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return Block{}, false
}

// OfKind returns every block on the page matching kind, in extraction
// order.
func (p *PageData) OfKind(kind Kind) []Block {
	var out []Block
	for _, b := range p.Blocks {
		if b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}
