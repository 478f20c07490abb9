package engine

// Grid is the playfield: Rows() rows of Cols() cells, row 0 at the top.
// A cell holds KindNone when empty, otherwise the kind that locked there.
type Grid struct {
	rows  int
	cols  int
	cells [][]Kind
}

// NewGrid creates an empty grid. Non-positive dimensions default to 20x10.
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 {
		rows = 20
	}
	if cols <= 0 {
		cols = 10
	}
	g := &Grid{rows: rows, cols: cols}
	g.cells = make([][]Kind, rows)
	for r := range g.cells {
		g.cells[r] = make([]Kind, cols)
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Cell returns the kind at (row, col), or KindNone outside the grid.
func (g *Grid) Cell(row, col int) Kind {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return KindNone
	}
	return g.cells[row][col]
}

// Set writes a cell. Out-of-bounds writes are ignored.
func (g *Grid) Set(row, col int, k Kind) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	g.cells[row][col] = k
}

// IsOccupied reports whether (row, col) blocks a piece.
// Rows above the field are free; columns outside the field and rows below
// the floor are blocked.
func (g *Grid) IsOccupied(row, col int) bool {
	if col < 0 || col >= g.cols || row >= g.rows {
		return true
	}
	if row < 0 {
		return false
	}
	return g.cells[row][col] != KindNone
}

// Lock writes the piece's kind into every cell it covers.
// Cells above the field are skipped.
func (g *Grid) Lock(p Piece) {
	for _, cell := range p.Cells() {
		if cell[0] < 0 {
			continue
		}
		g.Set(cell[0], cell[1], p.Kind)
	}
}

// FullRows returns the indices of all full rows, top to bottom.
func (g *Grid) FullRows() []int {
	var full []int
	for r, row := range g.cells {
		if rowFull(row) {
			full = append(full, r)
		}
	}
	return full
}

// ClearFullRows removes every full row in a single pass, inserts the same
// number of empty rows at the top and returns how many were removed.
func (g *Grid) ClearFullRows() int {
	kept := make([][]Kind, 0, g.rows)
	for _, row := range g.cells {
		if !rowFull(row) {
			kept = append(kept, row)
		}
	}
	cleared := g.rows - len(kept)
	if cleared == 0 {
		return 0
	}

	next := make([][]Kind, 0, g.rows)
	for range cleared {
		next = append(next, make([]Kind, g.cols))
	}
	g.cells = append(next, kept...)
	return cleared
}

// ClearRow removes a single row and drops everything above it by one.
func (g *Grid) ClearRow(row int) {
	if row < 0 || row >= g.rows {
		return
	}
	next := make([][]Kind, 0, g.rows)
	next = append(next, make([]Kind, g.cols))
	next = append(next, g.cells[:row]...)
	next = append(next, g.cells[row+1:]...)
	g.cells = next
}

// ClearArea empties the square of the given radius centred on (row, col)
// and returns the number of cells that were filled.
func (g *Grid) ClearArea(row, col, radius int) int {
	n := 0
	for r := row - radius; r <= row+radius; r++ {
		for c := col - radius; c <= col+radius; c++ {
			if g.Cell(r, c) != KindNone {
				g.cells[r][c] = KindNone
				n++
			}
		}
	}
	return n
}

// Clear empties the whole grid.
func (g *Grid) Clear() {
	for r := range g.cells {
		clear(g.cells[r])
	}
}

// IsEmpty reports whether no cell is filled.
func (g *Grid) IsEmpty() bool {
	for _, row := range g.cells {
		for _, k := range row {
			if k != KindNone {
				return false
			}
		}
	}
	return true
}

// Height returns the number of rows from the highest filled cell to the floor.
func (g *Grid) Height() int {
	for r, row := range g.cells {
		for _, k := range row {
			if k != KindNone {
				return g.rows - r
			}
		}
	}
	return 0
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	out := &Grid{rows: g.rows, cols: g.cols, cells: make([][]Kind, g.rows)}
	for r := range g.cells {
		out.cells[r] = append([]Kind(nil), g.cells[r]...)
	}
	return out
}

func rowFull(row []Kind) bool {
	for _, k := range row {
		if k == KindNone {
			return false
		}
	}
	return true
}

// IsValidPosition reports whether p shifted by (dRow, dCol) fits on g.
// A cell is invalid when its column is outside the field, its row is at or
// below the floor, or it overlaps a filled cell. Rows above the field are
// always allowed so pieces can spawn and rotate partly off the top.
func IsValidPosition(g *Grid, p Piece, dRow, dCol int) bool {
	for r, row := range p.Shape {
		for c, filled := range row {
			if !filled {
				continue
			}
			if g.IsOccupied(p.Row+r+dRow, p.Col+c+dCol) {
				return false
			}
		}
	}
	return true
}
