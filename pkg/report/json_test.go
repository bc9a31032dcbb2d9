package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/legoclassify/pkg/candidate"
)

func sampleReport() *ClassificationReport {
	return &ClassificationReport{
		PageIndex: 3,
		Candidates: []CandidateRecord{
			{ID: candidate.ID(1), Label: "PageNumber", Score: 0.9, Status: "Built", SourceBlocks: []int{1}},
		},
		ConsumedBlocks:    []int{1},
		UnprocessedBlocks: []int{2, 3},
		Warnings:          []string{"example warning"},
	}
}

func TestExportJSONRoundTrips(t *testing.T) {
	r := sampleReport()
	data, err := ExportJSON(r)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	var got ClassificationReport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.PageIndex != r.PageIndex || len(got.Candidates) != len(r.Candidates) {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestExportJSONCompactIsSmaller(t *testing.T) {
	r := sampleReport()
	indented, err := ExportJSON(r)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	compact, err := ExportJSONCompact(r)
	if err != nil {
		t.Fatalf("ExportJSONCompact: %v", err)
	}
	if len(compact) >= len(indented) {
		t.Fatalf("expected compact output smaller than indented: %d vs %d", len(compact), len(indented))
	}
}

func TestSaveJSONToFile(t *testing.T) {
	r := sampleReport()
	path := filepath.Join(t.TempDir(), "report.json")
	if err := SaveJSONToFile(r, path); err != nil {
		t.Fatalf("SaveJSONToFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got ClassificationReport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.PageIndex != r.PageIndex {
		t.Fatalf("expected page index %d, got %d", r.PageIndex, got.PageIndex)
	}
}
