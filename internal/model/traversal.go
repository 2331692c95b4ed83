package model

import "iter"

// Step is a single-square move relative to a team's point of view.
type Step uint8

const (
	StepFront Step = iota
	StepBack
	StepLeft
	StepRight
	StepFrontLeft
	StepFrontRight
	StepBackLeft
	StepBackRight
)

var (
	orthogonalSteps = []Step{StepFront, StepBack, StepLeft, StepRight}
	diagonalSteps   = []Step{StepFrontLeft, StepFrontRight, StepBackLeft, StepBackRight}
	allSteps        = append(append([]Step{}, orthogonalSteps...), diagonalSteps...)
)

// Traversal is a coordinate seen from one team's side of the board, so
// that "front" means toward the opponent for both teams.
type Traversal struct {
	Position    Coordinate
	Perspective Team
}

func NewTraversal(c Coordinate, perspective Team) Traversal {
	return Traversal{Position: c, Perspective: perspective}
}

// delta converts a relative step into absolute file and row deltas.
func (s Step) delta(perspective Team) (df, dr int) {
	dir := perspective.Direction()
	switch s {
	case StepFront:
		return 0, dir
	case StepBack:
		return 0, -dir
	case StepLeft:
		return -dir, 0
	case StepRight:
		return dir, 0
	case StepFrontLeft:
		return -dir, dir
	case StepFrontRight:
		return dir, dir
	case StepBackLeft:
		return -dir, -dir
	case StepBackRight:
		return dir, -dir
	}
	panic("unknown step")
}

// Step returns the neighbouring square in direction s, or false at the edge.
func (t Traversal) Step(s Step) (Traversal, bool) {
	df, dr := s.delta(t.Perspective)
	next, ok := t.Position.Offset(df, dr)
	if !ok {
		return Traversal{}, false
	}
	return Traversal{Position: next, Perspective: t.Perspective}, true
}

func (t Traversal) Front() (Traversal, bool)      { return t.Step(StepFront) }
func (t Traversal) Back() (Traversal, bool)       { return t.Step(StepBack) }
func (t Traversal) Left() (Traversal, bool)       { return t.Step(StepLeft) }
func (t Traversal) Right() (Traversal, bool)      { return t.Step(StepRight) }
func (t Traversal) FrontLeft() (Traversal, bool)  { return t.Step(StepFrontLeft) }
func (t Traversal) FrontRight() (Traversal, bool) { return t.Step(StepFrontRight) }
func (t Traversal) BackLeft() (Traversal, bool)   { return t.Step(StepBackLeft) }
func (t Traversal) BackRight() (Traversal, bool)  { return t.Step(StepBackRight) }

// Ray yields the squares reached by repeating s, stopping at the board edge.
// The starting square is not included.
func (t Traversal) Ray(s Step) iter.Seq[Coordinate] {
	return func(yield func(Coordinate) bool) {
		current := t
		for {
			next, ok := current.Step(s)
			if !ok || !yield(next.Position) {
				return
			}
			current = next
		}
	}
}
