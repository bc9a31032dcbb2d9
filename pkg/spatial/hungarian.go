package spatial

import "math"

// solveAssignment runs the Hungarian (Kuhn-Munkres) algorithm on a
// rows x cols cost matrix and returns, for each row, the assigned
// column index (or -1 if rows > cols and that row went unmatched).
// The matrix need not be square: it is padded with a large finite
// cost (pad, kept far below the search's own inf sentinel so padded
// columns stay reachable) for the missing cells on whichever side is
// smaller.
//
// This is a textbook O(n^3) primal-dual implementation (the same
// shape used by every from-scratch Hungarian algorithm writeup);
// nothing here is LEGO-specific, it is pure combinatorial
// optimization over a cost matrix built by the caller.
func solveAssignment(cost [][]float64) []int {
	rows := len(cost)
	if rows == 0 {
		return nil
	}
	cols := len(cost[0])
	n := rows
	if cols > n {
		n = cols
	}

	const inf = 1e18
	const pad = 1e9
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
		for j := range a[i] {
			if i < rows && j < cols {
				a[i][j] = cost[i][j]
			} else {
				a[i][j] = pad
			}
		}
	}

	// Jonker-Volgenant style potentials (u, v) and column assignment
	// (colToRow), 1-indexed internally to match the classic reference
	// implementation's bookkeeping.
	const none = -1
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1) // p[j] = row assigned to column j (1-indexed), 0 = unassigned
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := 0; j <= n; j++ {
			minv[j] = inf
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := none
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := a[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	rowToCol := make([]int, n)
	for i := range rowToCol {
		rowToCol[i] = none
	}
	for j := 1; j <= n; j++ {
		if p[j] != 0 {
			rowToCol[p[j]-1] = j - 1
		}
	}

	out := make([]int, rows)
	for i := 0; i < rows; i++ {
		j := rowToCol[i]
		if j >= cols || a[i][j] >= inf {
			out[i] = none
			continue
		}
		out[i] = j
	}
	return out
}

// clampDistance keeps a cost finite and non-negative; callers building
// cost matrices from geometry.Point.Distance never need this, but it
// guards against NaN/Inf bboxes slipping through from malformed input.
func clampDistance(d float64) float64 {
	if math.IsNaN(d) || d < 0 {
		return 0
	}
	return d
}
