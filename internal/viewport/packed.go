package viewport

// Placement locates one tile inside a column layout
type Placement struct {
	Column int
	Top    float64
	Height float64
}

// PackedLayout is the result of balancing tiles across columns
type PackedLayout struct {
	Columns    [][]int     // item indices per column, in placement order
	Heights    []float64   // final height of every column
	Placements []Placement // indexed like the input
}

// DocumentHeight returns the height of the tallest column
func (l PackedLayout) DocumentHeight() float64 {
	var h float64
	for _, c := range l.Heights {
		h = max(h, c)
	}
	return h
}

// Pack places tiles in order, each into the currently shortest column
// (leftmost on ties). gap is added below every tile.
func Pack(heights []float64, columns int, gap float64) PackedLayout {
	if columns < 1 {
		columns = 1
	}
	layout := PackedLayout{
		Columns:    make([][]int, columns),
		Heights:    make([]float64, columns),
		Placements: make([]Placement, len(heights)),
	}

	for i, h := range heights {
		col := 0
		for c := 1; c < columns; c++ {
			if layout.Heights[c] < layout.Heights[col] {
				col = c
			}
		}
		layout.Placements[i] = Placement{Column: col, Top: layout.Heights[col], Height: h}
		layout.Columns[col] = append(layout.Columns[col], i)
		layout.Heights[col] += h + gap
	}
	return layout
}

// UniformDocumentHeight returns the height of a fixed-cell grid of n items
func UniformDocumentHeight(n, columns int, cellHeight, gap float64) float64 {
	if n == 0 {
		return 0
	}
	if columns < 1 {
		columns = 1
	}
	rows := (n + columns - 1) / columns
	return float64(rows) * (cellHeight + gap)
}
