// SPDX-License-Identifier: MIT

package energy

import (
	"fmt"

	"github.com/katalvlaran/capy/matrix"
)

// Scores carries the three inner products every CAPY variant is built from.
type Scores struct {
	XX float64 // ⟨x,x⟩
	XY float64 // ⟨x,y⟩
	YY float64 // ⟨y,y⟩
}

// Compute evaluates xx, xy and yy with two MatVecs (A·x and A·y) instead of three.
// Errors: same as InnerProduct.
func Compute(x, y Population, a matrix.Adjacency) (Scores, error) {
	if err := checkShapes(x, y, a); err != nil {
		return Scores{}, fmt.Errorf("Compute: %w", err)
	}
	xf, yf := x.Float64s(), y.Float64s()

	ax, err := a.MatVec(xf)
	if err != nil {
		return Scores{}, fmt.Errorf("Compute: %w", err)
	}
	ay, err := a.MatVec(yf)
	if err != nil {
		return Scores{}, fmt.Errorf("Compute: %w", err)
	}

	return Scores{
		XX: dotShifted(xf, ax, xf),
		XY: dotShifted(xf, ay, yf),
		YY: dotShifted(yf, ay, yf),
	}, nil
}

// Half returns ½·[xx/(xx+xy) + yy/(yy+xy)].
func (s Scores) Half() (float64, error) {
	dx, dy := s.XX+s.XY, s.YY+s.XY
	if dx == 0 || dy == 0 {
		return 0, fmt.Errorf("Half: xx=%g xy=%g yy=%g: %w", s.XX, s.XY, s.YY, ErrDegenerate)
	}

	return (s.XX/dx + s.YY/dy) / 2, nil
}

// Edge returns ½·[xx/(xx+2xy) + yy/(yy+2xy)].
func (s Scores) Edge() (float64, error) {
	dx, dy := s.XX+2*s.XY, s.YY+2*s.XY
	if dx == 0 || dy == 0 {
		return 0, fmt.Errorf("Edge: xx=%g xy=%g yy=%g: %w", s.XX, s.XY, s.YY, ErrDegenerate)
	}

	return (s.XX/dx + s.YY/dy) / 2, nil
}

// HalfCapy is the half-edge CAPY score: the average over both groups of the
// chance that a random neighbor of a member shares the member's group.
func HalfCapy(x, y Population, a matrix.Adjacency) (float64, error) {
	s, err := Compute(x, y, a)
	if err != nil {
		return 0, fmt.Errorf("HalfCapy: %w", err)
	}
	h, err := s.Half()
	if err != nil {
		return 0, fmt.Errorf("HalfCapy: %w", err)
	}

	return h, nil
}

// EdgeCapy is the edge CAPY score: the average over both groups of the chance
// that an edge touching the group lies entirely inside it.
func EdgeCapy(x, y Population, a matrix.Adjacency) (float64, error) {
	s, err := Compute(x, y, a)
	if err != nil {
		return 0, fmt.Errorf("EdgeCapy: %w", err)
	}
	e, err := s.Edge()
	if err != nil {
		return 0, fmt.Errorf("EdgeCapy: %w", err)
	}

	return e, nil
}
