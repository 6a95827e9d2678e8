package layout

import "fmt"

// Size is a container size in pixels.
type Size struct {
	Width, Height int
}

// Grid partitions a container into Rows x Columns equally sized cells.
type Grid struct {
	Rows, Columns int
	Width, Height int
}

// Validate checks the grid has at least one row and one column.
func (g Grid) Validate() error {
	if g.Rows <= 0 || g.Columns <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGrid, g.Rows, g.Columns)
	}
	return nil
}

// Cells returns the number of cells in the grid.
func (g Grid) Cells() int {
	return g.Rows * g.Columns
}

// CellSize returns the width and height of a single cell.
func (g Grid) CellSize() (w, h int) {
	if g.Rows <= 0 || g.Columns <= 0 {
		return 0, 0
	}
	return g.Width / g.Columns, g.Height / g.Rows
}

// Cell maps a cell index to its row and column.
func (g Grid) Cell(i int) (row, col int, err error) {
	if err := g.Validate(); err != nil {
		return 0, 0, err
	}
	if i < 0 || i >= g.Cells() {
		return 0, 0, fmt.Errorf("%w: %d not in [0, %d)", ErrCellOutOfRange, i, g.Cells())
	}
	return i / g.Columns, i % g.Columns, nil
}

// Anchor returns the center point of cell i.
func (g Grid) Anchor(i int) (x, y int, err error) {
	row, col, err := g.Cell(i)
	if err != nil {
		return 0, 0, err
	}
	cw, ch := g.CellSize()
	return col*cw + cw/2, row*ch + ch/2, nil
}
