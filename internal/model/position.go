package model

import "fmt"

const (
	FirstCol byte = 'a'
	LastCol  byte = 'h'
	FirstRow      = 1
	LastRow       = 8
)

// Position is a square on the board, column a-h and row 1-8.
type Position struct {
	Col byte
	Row int
}

// allPositions lists every square from a1 to h8.
var allPositions = func() []Position {
	positions := make([]Position, 0, 64)
	for row := FirstRow; row <= LastRow; row++ {
		for col := FirstCol; col <= LastCol; col++ {
			positions = append(positions, Position{Col: col, Row: row})
		}
	}
	return positions
}()

func NewPosition(col byte, row int) (Position, error) {
	p := Position{Col: col, Row: row}
	if !p.valid() {
		return Position{}, fmt.Errorf("%w: column %q row %d", ErrInvalidPosition, col, row)
	}
	return p, nil
}

// ParsePosition reads a square in the "e4" form.
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	return NewPosition(s[0], int(s[1])-'0')
}

func (p Position) String() string {
	return fmt.Sprintf("%c%d", p.Col, p.Row)
}

func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Position) UnmarshalText(text []byte) error {
	parsed, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p Position) valid() bool {
	return p.Col >= FirstCol && p.Col <= LastCol && p.Row >= FirstRow && p.Row <= LastRow
}

// offset returns the square dx columns and dy rows away, if it is on the board.
func (p Position) offset(dx, dy int) (Position, bool) {
	next := Position{Col: byte(int(p.Col) + dx), Row: p.Row + dy}
	if int(p.Col)+dx < int(FirstCol) || !next.valid() {
		return Position{}, false
	}
	return next, true
}

func (p Position) isLightSquare() bool {
	return (int(p.Col-FirstCol)+p.Row-FirstRow)%2 == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
