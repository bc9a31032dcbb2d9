package report

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	svg "github.com/ajstarks/svgo"
	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/geometry"
)

// SVGOptions configures diagnostic SVG export.
type SVGOptions struct {
	Width      int    // Canvas width in pixels
	Height     int    // Canvas height in pixels
	ShowLabels bool   // Show candidate label + status text
	ShowLegend bool   // Show legend explaining status colors
	Margin     int    // Canvas margin in pixels
	Title      string // Optional title
	ShowStats  bool   // Show candidate/block counts
}

// DefaultSVGOptions returns sensible default diagnostic export options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:      1200,
		Height:     1600,
		ShowLabels: true,
		ShowLegend: true,
		Margin:     40,
		Title:      "Classification Report",
		ShowStats:  true,
	}
}

// ExportSVG renders a page's source blocks and candidate outcomes as
// an SVG diagram: every block outlined faintly, every atomic
// candidate drawn over the union of its source blocks in a color keyed
// by its final solver status. Composite candidates (Part, PartsList,
// Step, Page, OpenBag) have no source blocks of their own, so they are
// skipped here — their constituent atomic candidates are drawn
// instead.
func ExportSVG(pd *block.PageData, r *ClassificationReport, opts SVGOptions) ([]byte, error) {
	if pd == nil {
		return nil, fmt.Errorf("report: page data cannot be nil")
	}
	if opts.Width <= 0 {
		opts.Width = 1200
	}
	if opts.Height <= 0 {
		opts.Height = 1600
	}
	if opts.Margin <= 0 {
		opts.Margin = 40
	}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#1a1a2e")

	scaleX := float64(opts.Width-2*opts.Margin) / maxF(pd.Width, 1)
	scaleY := float64(opts.Height-2*opts.Margin) / maxF(pd.Height, 1)

	project := func(x, y float64) (int, int) {
		return opts.Margin + int(x*scaleX), opts.Margin + int(y*scaleY)
	}

	drawBlocks(canvas, pd, project)
	drawCandidates(canvas, pd, r, project, opts)

	if opts.ShowLegend {
		drawLegend(canvas, opts)
	}
	if opts.Title != "" || opts.ShowStats {
		drawHeader(canvas, r, opts)
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVGToFile renders a diagnostic SVG and saves it to a file. The
// file is created with 0644 permissions.
func SaveSVGToFile(pd *block.PageData, r *ClassificationReport, filepath string, opts SVGOptions) error {
	data, err := ExportSVG(pd, r, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// drawBlocks outlines every source block faintly, in deterministic ID
// order, as context behind the candidate overlays.
func drawBlocks(canvas *svg.SVG, pd *block.PageData, project func(x, y float64) (int, int)) {
	blocks := append([]block.Block(nil), pd.Blocks...)
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].ID < blocks[j].ID })

	for _, b := range blocks {
		x0, y0 := project(b.BBox.X0, b.BBox.Y0)
		x1, y1 := project(b.BBox.X1, b.BBox.Y1)
		canvas.Rect(x0, y0, x1-x0, y1-y0, "fill:none;stroke:#4a5568;stroke-width:1;opacity:0.5")
	}
}

// drawCandidates overlays one rectangle per atomic candidate, colored
// by solver status.
func drawCandidates(canvas *svg.SVG, pd *block.PageData, r *ClassificationReport, project func(x, y float64) (int, int), opts SVGOptions) {
	for _, rec := range r.Candidates {
		if rec.IsComposite || len(rec.SourceBlocks) == 0 {
			continue
		}
		bbox, ok := blockUnion(pd, rec.SourceBlocks)
		if !ok {
			continue
		}
		x0, y0 := project(bbox.X0, bbox.Y0)
		x1, y1 := project(bbox.X1, bbox.Y1)

		color := statusColor(rec.Status)
		canvas.Rect(x0, y0, x1-x0, y1-y0, fmt.Sprintf("fill:%s;stroke:#fff;stroke-width:1;opacity:0.35", color))

		if opts.ShowLabels {
			canvas.Text(x0+2, y0+12, fmt.Sprintf("%s (%.2f)", rec.Label, rec.Score),
				"font-size:9px;font-family:monospace;fill:#e2e8f0")
		}
	}
}

// blockUnion looks up each block ID on the page and returns the
// smallest box containing all of them, or false if none resolved.
func blockUnion(pd *block.PageData, blockIDs []int) (geometry.BBox, bool) {
	var box geometry.BBox
	found := false
	for _, id := range blockIDs {
		b, ok := pd.ByID(id)
		if !ok {
			continue
		}
		if !found {
			box = b.BBox
			found = true
			continue
		}
		box = geometry.NewBBox(
			minF(box.X0, b.BBox.X0), minF(box.Y0, b.BBox.Y0),
			maxF(box.X1, b.BBox.X1), maxF(box.Y1, b.BBox.Y1),
		)
	}
	return box, found
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func statusColor(status string) string {
	switch status {
	case "Built":
		return "#48bb78" // Green
	case "Selected":
		return "#4299e1" // Blue
	case "Rejected":
		return "#718096" // Gray
	case "BuildFailed":
		return "#f56565" // Red
	default:
		return "#ed8936" // Orange (Scored, never solved)
	}
}

func drawLegend(canvas *svg.SVG, opts SVGOptions) {
	legendX := opts.Width - opts.Margin - 160
	legendY := opts.Margin + 20

	canvas.Rect(legendX-10, legendY-15, 170, 130, "fill:#2d3748;stroke:#4a5568;stroke-width:1;opacity:0.95;rx:5")
	canvas.Text(legendX, legendY, "Candidate Status", "font-size:13px;font-weight:bold;fill:#e2e8f0")
	legendY += 22

	entries := []struct{ name, color string }{
		{"Built", statusColor("Built")},
		{"Selected", statusColor("Selected")},
		{"Rejected", statusColor("Rejected")},
		{"BuildFailed", statusColor("BuildFailed")},
		{"Scored", statusColor("Scored")},
	}
	for _, e := range entries {
		canvas.Circle(legendX+8, legendY, 6, fmt.Sprintf("fill:%s;stroke:#fff;stroke-width:1", e.color))
		canvas.Text(legendX+22, legendY+4, e.name, "font-size:11px;fill:#cbd5e0")
		legendY += 18
	}
}

func drawHeader(canvas *svg.SVG, r *ClassificationReport, opts SVGOptions) {
	headerY := 25
	if opts.Title != "" {
		canvas.Text(opts.Width/2, headerY, opts.Title,
			"text-anchor:middle;font-size:18px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
		headerY += 26
	}
	if opts.ShowStats {
		stats := fmt.Sprintf("Page %d | Candidates: %d | Consumed blocks: %d | Unprocessed: %d",
			r.PageIndex, len(r.Candidates), len(r.ConsumedBlocks), len(r.UnprocessedBlocks))
		canvas.Text(opts.Width/2, headerY, stats,
			"text-anchor:middle;font-size:12px;fill:#a0aec0;font-family:monospace")
	}
}
