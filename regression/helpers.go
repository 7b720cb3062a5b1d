package regression

// SampleRowCounts picks a representative set of row counts to measure a
// size curve at, capped by totalRows: a handful of small counts to capture
// fixed per-block overhead, then a geometric spread up to the full column.
func SampleRowCounts(totalRows int) []int {
	if totalRows <= 0 {
		return nil
	}

	standard := []int{1, 2, 5, 10, 20, 50, 100, 150, 200, 500, 1000, 2000, 5000, 10000, 20000, 50000}

	out := make([]int, 0, len(standard)+1)
	for _, p := range standard {
		if p <= totalRows {
			out = append(out, p)
		}
	}

	if len(out) == 0 {
		return []int{totalRows}
	}

	if last := out[len(out)-1]; last != totalRows {
		if float64(totalRows)/float64(last) > 1.2 {
			out = append(out, totalRows)
		}
	}

	return out
}
