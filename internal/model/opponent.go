package model

// Opponent chooses moves for an automated side. NextMove must return one
// of LegalMoves(g.Turn, g); anything else is an integration bug and is
// never applied.
type Opponent interface {
	Name() string
	NextMove(g Game) Move
}
