package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	assert.Equal(t, KindI, ParseKind("I"))
	assert.Equal(t, KindL, ParseKind("l"))
	assert.Equal(t, KindT, ParseKind("X"), "unknown falls back to T")
	assert.Equal(t, KindT, ParseKind(""))
}

func TestNewPieceSpawnAnchor(t *testing.T) {
	p := NewPiece(KindO, 10)
	assert.Equal(t, 0, p.Row)
	assert.Equal(t, 4, p.Col)
	assert.Equal(t, 0, p.Rotation)

	p = NewPiece(Kind(42), 10)
	assert.Equal(t, KindT, p.Kind, "invalid kinds spawn as T")
}

func TestNewPieceFitsNarrowGrid(t *testing.T) {
	g := NewGrid(20, 4)
	for _, k := range []Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL} {
		p := NewPiece(k, 4)
		assert.True(t, IsValidPosition(g, p, 0, 0), "%v should spawn inside a 4-wide grid", k)
	}
	assert.Equal(t, 0, NewPiece(KindI, 4).Col)
	assert.Equal(t, 4, NewPiece(KindI, 10).Col)
}

func TestPieceRotationDoesNotMutate(t *testing.T) {
	p := NewPiece(KindT, 10)
	before := p.Cells()

	r := p.Rotated(RotateCW)

	assert.Equal(t, before, p.Cells())
	assert.Equal(t, 0, p.Rotation)
	assert.Equal(t, 1, r.Rotation)
	assert.Equal(t, 3, r.Height())
	assert.Equal(t, 2, r.Width())
}

func TestPieceRotationCycles(t *testing.T) {
	for _, k := range AllKinds {
		t.Run(k.String(), func(t *testing.T) {
			p := NewPiece(k, 10)

			cw := p
			for range 4 {
				cw = cw.Rotated(RotateCW)
			}
			assert.Equal(t, p.Shape, cw.Shape)
			assert.Equal(t, 0, cw.Rotation)

			back := p.Rotated(RotateCW).Rotated(RotateCCW)
			assert.Equal(t, p.Shape, back.Shape)

			ccw := p.Rotated(RotateCCW)
			assert.Equal(t, 3, ccw.Rotation)
			assert.Len(t, ccw.Cells(), 4)
		})
	}
}

func TestRotatedTShape(t *testing.T) {
	p := NewPiece(KindT, 10).Rotated(RotateCW)
	expected := [][]bool{
		{true, false},
		{true, true},
		{true, false},
	}
	assert.Equal(t, expected, p.Shape)
}

func TestShapeOfReturnsCopy(t *testing.T) {
	s := ShapeOf(KindI)
	s[0][0] = false
	assert.True(t, ShapeOf(KindI)[0][0])
}

func TestBagSevenKindsPerBag(t *testing.T) {
	bag := NewBag(rand.New(rand.NewSource(7)))

	for b := 0; b < 5; b++ {
		seen := make(map[Kind]int)
		for i := 0; i < 7; i++ {
			seen[bag.Next()]++
		}
		require.Len(t, seen, 7, "bag %d", b)
		for k, n := range seen {
			assert.Equal(t, 1, n, "bag %d kind %s", b, k)
		}
	}
}

func TestBagPeekDoesNotConsume(t *testing.T) {
	bag := NewBag(rand.New(rand.NewSource(3)))
	bag.Next()

	peeked := bag.Peek(10)
	require.Len(t, peeked, 10)

	for i, k := range peeked {
		assert.Equal(t, k, bag.Next(), "draw %d", i)
	}
}

func TestBagDeterministicForSeed(t *testing.T) {
	a := NewBag(rand.New(rand.NewSource(99)))
	b := NewBag(rand.New(rand.NewSource(99)))
	for i := 0; i < 21; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}
