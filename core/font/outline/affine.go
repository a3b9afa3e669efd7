package outline

import (
	"fmt"

	"github.com/npillmayer/arithm"
)

// Affine is an affine transformation [a b c d e f] mapping a point (x, y) to
//
//	x' = a·x + c·y + e
//	y' = b·x + d·y + f
type Affine [6]float64

// Identity is the transformation which leaves every point unchanged.
func Identity() Affine {
	return Affine{1, 0, 0, 1, 0, 0}
}

// Scale returns a transformation scaling by sx horizontally and sy vertically.
func Scale(sx, sy float64) Affine {
	return Affine{sx, 0, 0, sy, 0, 0}
}

// Translate returns a transformation shifting by (dx, dy).
func Translate(dx, dy float64) Affine {
	return Affine{1, 0, 0, 1, dx, dy}
}

// Then returns the transformation which applies m first and n second.
func (m Affine) Then(n Affine) Affine {
	return Affine{
		n[0]*m[0] + n[2]*m[1],
		n[1]*m[0] + n[3]*m[1],
		n[0]*m[2] + n[2]*m[3],
		n[1]*m[2] + n[3]*m[3],
		n[0]*m[4] + n[2]*m[5] + n[4],
		n[1]*m[4] + n[3]*m[5] + n[5],
	}
}

// Apply transforms a single point.
func (m Affine) Apply(p arithm.Pair) arithm.Pair {
	x, y := real(p), imag(p)
	return arithm.P(m[0]*x+m[2]*y+m[4], m[1]*x+m[3]*y+m[5])
}

// IsTranslation is a predicate: does m only shift points?
func (m Affine) IsTranslation() bool {
	return m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1
}

func (m Affine) String() string {
	return fmt.Sprintf("[%g %g %g %g %g %g]", m[0], m[1], m[2], m[3], m[4], m[5])
}
