package model

// GameState is what the presentation layer shows after each move.
type GameState int

const (
	NoCheck GameState = iota
	Check
	Checkmate
	Stalemate
	FiftyMoveRule
	ThreeFold
	DeadPosition
)

const (
	fiftyMoveHalfMoves = 100
	threeFoldCount     = 3
)

var gameStateNames = map[GameState]string{
	NoCheck:       "NO_CHECK",
	Check:         "CHECK",
	Checkmate:     "CHECKMATE",
	Stalemate:     "STALEMATE",
	FiftyMoveRule: "FIFTY_MOVE_RULE",
	ThreeFold:     "THREE_FOLD",
	DeadPosition:  "DEAD_POSITION",
}

func (s GameState) String() string {
	if name, ok := gameStateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s GameState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsOver is true for every state that ends the game.
func (s GameState) IsOver() bool {
	return s != NoCheck && s != Check
}

// State evaluates the position for the army to move.
func (g Game) State() (GameState, error) {
	turn := g.Turn()

	mate, err := g.IsKingInCheckMate(turn)
	if err != nil {
		return NoCheck, err
	}
	if mate {
		return Checkmate, nil
	}

	stalemate, err := g.IsKingInStaleMate(turn)
	if err != nil {
		return NoCheck, err
	}
	switch {
	case stalemate:
		return Stalemate, nil
	case g.board.hasInsufficientMaterial():
		return DeadPosition, nil
	case g.Repetitions() >= threeFoldCount:
		return ThreeFold, nil
	case g.HalfMoveClock() >= fiftyMoveHalfMoves:
		return FiftyMoveRule, nil
	}

	inCheck, err := g.board.IsKingInCheck(turn)
	if err != nil {
		return NoCheck, err
	}
	if inCheck {
		return Check, nil
	}
	return NoCheck, nil
}

// HalfMoveClock counts the plies since the last capture or pawn move.
func (g Game) HalfMoveClock() int {
	clock := 0
	for i := len(g.moves) - 1; i >= 0; i-- {
		if g.moves[i].Piece == Pawn || g.moves[i].Capture {
			break
		}
		clock++
	}
	return clock
}

// Repetitions counts how often the current position has occurred, this
// occurrence included.
func (g Game) Repetitions() int {
	if len(g.positions) == 0 {
		return 0
	}
	current := g.positions[len(g.positions)-1]
	count := 0
	for _, key := range g.positions {
		if key == current {
			count++
		}
	}
	return count
}

// hasInsufficientMaterial reports a dead position: king against king, a
// lone knight against a bare king, or any number of bishops that all stand
// on squares of one colour.
func (b Board) hasInsufficientMaterial() bool {
	var knights, bishops int
	var light, dark bool
	for _, pos := range allPositions {
		piece, ok := b.Piece(pos)
		if !ok {
			continue
		}
		switch piece.Type {
		case King:
		case Knight:
			knights++
		case Bishop:
			bishops++
			if pos.isLightSquare() {
				light = true
			} else {
				dark = true
			}
		default:
			return false
		}
	}

	switch {
	case knights+bishops <= 1:
		return true
	case knights == 0:
		return !(light && dark)
	}
	return false
}
