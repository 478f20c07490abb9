// Package engine implements the falling-block rules: grid, pieces, the
// 7-bag randomizer, placement validation, scoring and level progression,
// power-up timers and the easter-egg detector.
//
// The engine is pure game logic. It never draws, never reads the clock and
// performs no I/O; the platform feeds it intents, raw key names and tick
// deltas and reads state back for rendering and persistence.
package engine

import "strings"

// Kind identifies a piece type. The zero value marks an empty grid cell.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// AllKinds lists the seven playable kinds in canonical order.
var AllKinds = [...]Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	default:
		return "."
	}
}

// Valid reports whether k is one of the seven playable kinds.
func (k Kind) Valid() bool {
	return k >= KindI && k <= KindL
}

// ParseKind converts a letter to a Kind. Unknown names fall back to T.
func ParseKind(name string) Kind {
	for _, k := range AllKinds {
		if strings.EqualFold(k.String(), name) {
			return k
		}
	}
	return KindT
}

// shapes holds the spawn orientation of every kind.
var shapes = map[Kind][][]bool{
	KindI: {
		{true, true, true, true},
	},
	KindO: {
		{true, true},
		{true, true},
	},
	KindT: {
		{false, true, false},
		{true, true, true},
	},
	KindS: {
		{false, true, true},
		{true, true, false},
	},
	KindZ: {
		{true, true, false},
		{false, true, true},
	},
	KindJ: {
		{true, false, false},
		{true, true, true},
	},
	KindL: {
		{false, false, true},
		{true, true, true},
	},
}

// ShapeOf returns a fresh copy of the spawn shape for kind.
// Unknown kinds get the T shape.
func ShapeOf(kind Kind) [][]bool {
	src, ok := shapes[kind]
	if !ok {
		src = shapes[KindT]
	}
	return cloneShape(src)
}

func cloneShape(src [][]bool) [][]bool {
	out := make([][]bool, len(src))
	for r := range src {
		out[r] = append([]bool(nil), src[r]...)
	}
	return out
}

// RotateDir selects the rotation direction.
type RotateDir int

const (
	RotateCW  RotateDir = 1
	RotateCCW RotateDir = -1
)

// Piece is a positioned tetromino. Row/Col is the top-left anchor of the
// shape's bounding box and may be negative while spawning.
type Piece struct {
	Kind     Kind
	Row      int
	Col      int
	Rotation int // 0..3, clockwise quarter turns from spawn
	Shape    [][]bool
	PowerUp  PowerUpKind // carried effect, activated on lock
}

// NewPiece creates a piece of kind at the spawn anchor for a field of the
// given width: row 0, column floor(cols/2)-1, moved left when the shape
// would cross the right wall.
func NewPiece(kind Kind, cols int) Piece {
	if !kind.Valid() {
		kind = KindT
	}
	shape := ShapeOf(kind)
	col := cols/2 - 1
	if w := len(shape[0]); col+w > cols {
		col = max(cols-w, 0)
	}
	return Piece{
		Kind:  kind,
		Row:   0,
		Col:   col,
		Shape: shape,
	}
}

// Width returns the bounding box width.
func (p Piece) Width() int {
	if len(p.Shape) == 0 {
		return 0
	}
	return len(p.Shape[0])
}

// Height returns the bounding box height.
func (p Piece) Height() int {
	return len(p.Shape)
}

// Moved returns a copy shifted by (dRow, dCol). The shape is shared.
func (p Piece) Moved(dRow, dCol int) Piece {
	p.Row += dRow
	p.Col += dCol
	return p
}

// Rotated returns a copy turned a quarter in dir. The receiver is untouched.
func (p Piece) Rotated(dir RotateDir) Piece {
	if dir == RotateCCW {
		p.Shape = rotateCCW(p.Shape)
	} else {
		dir = RotateCW
		p.Shape = rotateCW(p.Shape)
	}
	p.Rotation = ((p.Rotation+int(dir))%4 + 4) % 4
	return p
}

// Cells returns absolute (row, col) pairs of every filled cell.
func (p Piece) Cells() [][2]int {
	cells := make([][2]int, 0, 4)
	for r, row := range p.Shape {
		for c, filled := range row {
			if filled {
				cells = append(cells, [2]int{p.Row + r, p.Col + c})
			}
		}
	}
	return cells
}

// Center returns the cell nearest to the middle of the bounding box.
func (p Piece) Center() (row, col int) {
	return p.Row + p.Height()/2, p.Col + p.Width()/2
}

func rotateCW(shape [][]bool) [][]bool {
	h := len(shape)
	if h == 0 {
		return nil
	}
	w := len(shape[0])
	out := make([][]bool, w)
	for r := range out {
		out[r] = make([]bool, h)
		for c := range out[r] {
			out[r][c] = shape[h-1-c][r]
		}
	}
	return out
}

func rotateCCW(shape [][]bool) [][]bool {
	h := len(shape)
	if h == 0 {
		return nil
	}
	w := len(shape[0])
	out := make([][]bool, w)
	for r := range out {
		out[r] = make([]bool, h)
		for c := range out[r] {
			out[r][c] = shape[c][w-1-r]
		}
	}
	return out
}
