package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/candidate"
	"github.com/dshills/legoclassify/pkg/geometry"
)

func TestExportSVGProducesValidDocument(t *testing.T) {
	pd := block.NewPageData(1, 600, 800)
	pd.Add(block.Block{ID: 1, Kind: block.KindText, BBox: geometry.NewBBox(0, 0, 10, 10)})
	if _, err := pd.Freeze(); err != nil {
		t.Fatalf("freeze: %v", err)
	}

	r := &ClassificationReport{
		PageIndex: 1,
		Candidates: []CandidateRecord{
			{ID: candidate.ID(1), Label: "PageNumber", Score: 0.9, Status: "Built", SourceBlocks: []int{1}},
		},
		ConsumedBlocks: []int{1},
	}

	data, err := ExportSVG(pd, r, DefaultSVGOptions())
	if err != nil {
		t.Fatalf("ExportSVG: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) || !bytes.Contains(data, []byte("</svg>")) {
		t.Fatalf("expected well-formed SVG document, got: %s", data)
	}
	if !bytes.Contains(data, []byte("PageNumber")) {
		t.Fatalf("expected candidate label rendered, got: %s", data)
	}
}

func TestExportSVGNilPageErrors(t *testing.T) {
	if _, err := ExportSVG(nil, &ClassificationReport{}, DefaultSVGOptions()); err == nil {
		t.Fatal("expected an error for nil page data")
	}
}

func TestSaveSVGToFile(t *testing.T) {
	pd := block.NewPageData(1, 600, 800)
	if _, err := pd.Freeze(); err != nil {
		t.Fatalf("freeze: %v", err)
	}
	r := &ClassificationReport{PageIndex: 1}

	path := filepath.Join(t.TempDir(), "report.svg")
	if err := SaveSVGToFile(pd, r, path, DefaultSVGOptions()); err != nil {
		t.Fatalf("SaveSVGToFile: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
}
