package service

import "github.com/benbeisheim/chessrules-backend/internal/model"

// Opponent is the contract an automated side fulfils.
type Opponent = model.Opponent

// Human is the seat name for a side driven through Select.
const Human = "human"

// Roster says who plays each side. A nil opponent is a human seat.
type Roster struct {
	white Opponent
	black Opponent
}

func NewRoster(white, black Opponent) Roster {
	return Roster{white: white, black: black}
}

func (r Roster) Opponent(team model.Team) (Opponent, bool) {
	opp := r.white
	if team == model.Black {
		opp = r.black
	}
	return opp, opp != nil
}

func (r Roster) IsHuman(team model.Team) bool {
	_, ai := r.Opponent(team)
	return !ai
}

// Seat is the client-facing description of one side.
type Seat struct {
	Color model.Team `json:"color"`
	Name  string     `json:"name"`
	Human bool       `json:"human"`
}

func (r Roster) Seat(team model.Team) Seat {
	if opp, ok := r.Opponent(team); ok {
		return Seat{Color: team, Name: opp.Name()}
	}
	return Seat{Color: team, Name: Human, Human: true}
}
