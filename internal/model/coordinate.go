package model

import "fmt"

type Team string

const (
	White Team = "white"
	Black Team = "black"
)

func (t Team) Opponent() Team {
	if t == White {
		return Black
	}
	return White
}

// Direction is the row delta of a forward step for this team.
func (t Team) Direction() int {
	if t == White {
		return 1
	}
	return -1
}

// homeRow is the row holding the team's king and rooks at the start.
func (t Team) homeRow() int {
	if t == White {
		return 0
	}
	return 7
}

func (t Team) pawnRow() int {
	return t.homeRow() + t.Direction()
}

func (t Team) promotionRow() int {
	return 7 - t.homeRow()
}

// Coordinate addresses one square. Fields are unexported so that only
// in-bounds values can be built outside this package.
type Coordinate struct {
	file uint8
	row  uint8
}

func NewCoordinate(file, row int) (Coordinate, bool) {
	if !boundaryCheck(file, row) {
		return Coordinate{}, false
	}
	return Coordinate{file: uint8(file), row: uint8(row)}, true
}

// MustCoordinate is NewCoordinate for literals known to be valid.
func MustCoordinate(file, row int) Coordinate {
	c, ok := NewCoordinate(file, row)
	if !ok {
		panic(fmt.Sprintf("coordinate out of range: (%d, %d)", file, row))
	}
	return c
}

// ParseCoordinate reads algebraic notation such as "e4".
func ParseCoordinate(s string) (Coordinate, error) {
	if len(s) != 2 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	c, ok := NewCoordinate(int(s[0])-'a', int(s[1])-'1')
	if !ok {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	return c, nil
}

// Square is ParseCoordinate for literals known to be valid.
func Square(s string) Coordinate {
	c, err := ParseCoordinate(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Coordinate) File() int { return int(c.file) }
func (c Coordinate) Row() int  { return int(c.row) }

// Index is the row-major square index, a1 = 0 and h8 = 63.
func (c Coordinate) Index() int { return int(c.row)*8 + int(c.file) }

func (c Coordinate) Less(o Coordinate) bool { return c.Index() < o.Index() }

// Offset returns the coordinate df files and dr rows away, if it is on the board.
func (c Coordinate) Offset(df, dr int) (Coordinate, bool) {
	return NewCoordinate(int(c.file)+df, int(c.row)+dr)
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%c%d", c.file+'a', c.row+1)
}

func (c Coordinate) getFileNotation() string {
	return fmt.Sprintf("%c", c.file+'a')
}

func (c Coordinate) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Coordinate) UnmarshalText(text []byte) error {
	parsed, err := ParseCoordinate(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func boundaryCheck(file, row int) bool {
	return file >= 0 && file < 8 && row >= 0 && row < 8
}

// AllCoordinates lists every square in index order.
func AllCoordinates() []Coordinate {
	out := make([]Coordinate, 0, 64)
	for row := 0; row < 8; row++ {
		for file := 0; file < 8; file++ {
			out = append(out, MustCoordinate(file, row))
		}
	}
	return out
}
