package model

import (
	"fmt"
	"slices"
)

type Status string

const (
	StatusNone      Status = "none"
	StatusCheck     Status = "check"
	StatusCheckmate Status = "checkmate"
	StatusStalemate Status = "stalemate"
)

// IsAttacked reports whether any piece of team by threatens c. It only
// consults threatened squares, never legal moves.
func IsAttacked(c Coordinate, by Team, g Game) bool {
	for _, origin := range g.Board.Pieces(by) {
		if slices.Contains(ThreatenedSquares(origin, g), c) {
			return true
		}
	}
	return false
}

// KingSquare locates team's king. Anything other than exactly one king is
// a broken invariant.
func KingSquare(team Team, g Game) Coordinate {
	var (
		found Coordinate
		count int
	)
	for _, c := range g.Board.Pieces(team) {
		if p, _ := g.Board.Occupant(c); p.Type == King {
			found = c
			count++
		}
	}
	if count != 1 {
		panic(fmt.Sprintf("%s must have exactly one king, found %d", team, count))
	}
	return found
}

func InCheck(team Team, g Game) bool {
	return IsAttacked(KingSquare(team, g), team.Opponent(), g)
}

// AllPossibleMoves is the union of PossibleMoves over team's pieces.
func AllPossibleMoves(team Team, g Game) []Move {
	var moves []Move
	for _, origin := range g.Board.Pieces(team) {
		moves = append(moves, PossibleMoves(origin, g)...)
	}
	return moves
}

// LegalMoves keeps the possible moves of team after which its own king is
// not attacked. Each candidate is tried on a copy; g is left untouched.
func LegalMoves(team Team, g Game) []Move {
	return filterLegalMoves(team, g, AllPossibleMoves(team, g))
}

// LegalMovesFrom is LegalMoves restricted to the piece at origin.
func LegalMovesFrom(origin Coordinate, g Game) []Move {
	piece, ok := g.Board.Occupant(origin)
	if !ok {
		return nil
	}
	return filterLegalMoves(piece.Color, g, PossibleMoves(origin, g))
}

func filterLegalMoves(team Team, g Game, candidates []Move) []Move {
	legal := make([]Move, 0, len(candidates))
	for _, m := range candidates {
		if !InCheck(team, g.Performing(m)) {
			legal = append(legal, m)
		}
	}
	return legal
}

func Classify(team Team, g Game) Status {
	return ClassifyWithMoves(team, g, LegalMoves(team, g))
}

// ClassifyWithMoves classifies using an already computed legal move set.
func ClassifyWithMoves(team Team, g Game, legal []Move) Status {
	attacked := InCheck(team, g)
	switch {
	case attacked && len(legal) == 0:
		return StatusCheckmate
	case len(legal) == 0:
		return StatusStalemate
	case attacked:
		return StatusCheck
	default:
		return StatusNone
	}
}
