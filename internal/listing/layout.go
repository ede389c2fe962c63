package listing

// MinColumnWidth is the narrowest column the layout considers, gap included.
const MinColumnWidth = 3

// columnGap separates adjacent columns.
const columnGap = 2

// Direction is the order in which a grid is filled.
type Direction int

// Exported constants.
const (
	// DownColumns - fill each column before the next (default)
	DownColumns Direction = iota
	// AcrossRows - fill each row before the next
	AcrossRows
)

// ColumnPlan is the grid chosen for one batch.
type ColumnPlan struct {
	Columns int
	Rows    int
	// Widths holds each column's width; all but the last include the gap
	Widths     []int
	LineLength int
	// Valid is false when even one column does not fit the line
	Valid     bool
	Direction Direction
	Count     int
}

// Index returns the entry index at row, col, or -1 for an empty cell.
func (p ColumnPlan) Index(row, col int) int {
	var idx int
	if p.Direction == AcrossRows {
		idx = row*p.Columns + col
	} else {
		idx = col*p.Rows + row
	}

	if row >= p.Rows || col >= p.Columns || idx >= p.Count {
		return -1
	}

	return idx
}

// Layout picks the largest column count whose line fits strictly within
// lineWidth. widths are the display widths of the sorted entries. When no
// count fits the plan has one column and Valid is false.
//
// A candidate is abandoned as soon as it overflows: for a fixed count an
// entry's column depends only on its index, and later entries never narrow
// a column.
func Layout(widths []int, lineWidth int, direction Direction) ColumnPlan {
	n := len(widths)

	maxCols := min(lineWidth/MinColumnWidth, n)
	if maxCols < 1 {
		maxCols = 1
	}

	candidates := make([]ColumnPlan, maxCols)
	for i := range candidates {
		cols := i + 1
		plan := ColumnPlan{
			Columns:    cols,
			Rows:       (n + cols - 1) / cols,
			Widths:     make([]int, cols),
			LineLength: cols * MinColumnWidth,
			Valid:      true,
			Direction:  direction,
			Count:      n,
		}

		for c := range plan.Widths {
			plan.Widths[c] = MinColumnWidth
		}

		candidates[i] = plan
	}

	for fileIdx, width := range widths {
		for i := range candidates {
			plan := &candidates[i]
			if !plan.Valid {
				continue
			}

			var col int
			if direction == AcrossRows {
				col = fileIdx % plan.Columns
			} else {
				col = fileIdx / plan.Rows
			}

			needed := width
			if col != plan.Columns-1 {
				needed += columnGap
			}

			if plan.Widths[col] < needed {
				plan.LineLength += needed - plan.Widths[col]
				plan.Widths[col] = needed
				plan.Valid = plan.LineLength < lineWidth
			}
		}
	}

	chosen := candidates[0]
	for i := len(candidates) - 1; i >= 0; i-- {
		if candidates[i].Valid {
			chosen = candidates[i]
			break
		}
	}

	// Filling down, fewer columns than candidates may be occupied.
	if direction == DownColumns && chosen.Rows > 0 {
		chosen.Columns = (n + chosen.Rows - 1) / chosen.Rows
		chosen.Widths = chosen.Widths[:chosen.Columns]
	}

	return chosen
}
