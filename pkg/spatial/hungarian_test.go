package spatial

import "testing"

func TestSolveAssignmentSquareMatrix(t *testing.T) {
	tests := []struct {
		name string
		cost [][]float64
		want []int
	}{
		{
			name: "already optimal diagonal",
			cost: [][]float64{
				{1, 10, 10},
				{10, 1, 10},
				{10, 10, 1},
			},
			want: []int{0, 1, 2},
		},
		{
			name: "requires swap to minimize total cost",
			cost: [][]float64{
				{4, 1},
				{2, 3},
			},
			want: []int{1, 0},
		},
		{
			name: "single row single column",
			cost: [][]float64{
				{7},
			},
			want: []int{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := solveAssignment(tt.cost)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("row %d: got col %d, want %d (full: %v)", i, got[i], tt.want[i], got)
				}
			}
		})
	}
}

func TestSolveAssignmentNonSquareMoreRows(t *testing.T) {
	// 3 rows, 2 columns: one row must go unmatched.
	cost := [][]float64{
		{1, 100},
		{100, 1},
		{5, 5},
	}
	got := solveAssignment(cost)
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	seen := make(map[int]bool)
	matched := 0
	for _, col := range got {
		if col == -1 {
			continue
		}
		if seen[col] {
			t.Fatalf("column %d matched more than once: %v", col, got)
		}
		seen[col] = true
		matched++
	}
	if matched != 2 {
		t.Fatalf("expected exactly 2 matched rows (2 columns available), got %d: %v", matched, got)
	}
	if got[0] != 0 || got[1] != 1 {
		t.Fatalf("expected rows 0 and 1 matched to their cheap columns, got %v", got)
	}
}

func TestSolveAssignmentEmpty(t *testing.T) {
	if got := solveAssignment(nil); got != nil {
		t.Fatalf("expected nil for empty matrix, got %v", got)
	}
}
