// Package report assembles a page's classification run into a single
// serializable record for diagnostics — every candidate considered,
// what the solver decided, which blocks ended up unconsumed, and the
// warnings the pipeline accumulated along the way.
package report

import (
	"sort"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/candidate"
	"github.com/dshills/legoclassify/pkg/element"
)

// CandidateRecord is one candidate's final disposition.
type CandidateRecord struct {
	ID           candidate.ID    `json:"id"`
	Label        candidate.Label `json:"label"`
	Score        float64         `json:"score"`
	Status       string          `json:"status"`
	SourceBlocks []int           `json:"sourceBlocks,omitempty"`
	IsComposite  bool            `json:"isComposite"`
}

// ClassificationReport is the full diagnostic record for one page.
type ClassificationReport struct {
	PageIndex         int               `json:"pageIndex"`
	Page              element.Page      `json:"page"`
	Candidates        []CandidateRecord `json:"candidates"`
	ConsumedBlocks    []int             `json:"consumedBlocks"`
	UnprocessedBlocks []int             `json:"unprocessedBlocks"`
	Warnings          []string          `json:"warnings,omitempty"`
}

// Build assembles a ClassificationReport from a completed page run:
// the source blocks, the classification result carrying every
// candidate's final status, and the assembled root Page element.
func Build(pd *block.PageData, result *candidate.ClassificationResult, page element.Page) ClassificationReport {
	r := ClassificationReport{
		PageIndex: pd.PageIndex,
		Page:      page,
		Warnings:  result.Diagnostics(),
	}

	for _, c := range result.AllCandidates() {
		r.Candidates = append(r.Candidates, CandidateRecord{
			ID:           c.ID(),
			Label:        c.Label(),
			Score:        c.Score(),
			Status:       result.Status(c.ID()).String(),
			SourceBlocks: c.SourceBlocks(),
			IsComposite:  c.IsComposite(),
		})
	}
	sort.Slice(r.Candidates, func(i, j int) bool { return r.Candidates[i].ID < r.Candidates[j].ID })

	consumed := result.ConsumedBlocks()
	for id := range consumed {
		r.ConsumedBlocks = append(r.ConsumedBlocks, id)
	}
	sort.Ints(r.ConsumedBlocks)

	for _, b := range pd.Blocks {
		if _, ok := consumed[b.ID]; !ok {
			r.UnprocessedBlocks = append(r.UnprocessedBlocks, b.ID)
		}
	}
	sort.Ints(r.UnprocessedBlocks)

	return r
}
