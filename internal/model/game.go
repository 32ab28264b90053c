package model

import (
	"fmt"
	"slices"
)

// Game is a board together with the moves that produced it. It is a value:
// Play returns a new Game and leaves the receiver untouched. Whose turn it
// is follows from the number of moves played.
type Game struct {
	board Board
	moves []Move
	// positions holds the position key after every ply, starting with the
	// position the game was created from.
	positions []string
}

// NewGame starts from the standard initial position.
func NewGame() Game {
	return NewGameFromBoard(NewBoard(), nil)
}

// NewGameFromBoard pairs an arbitrary board with a move history. The history
// is only used for turn, castling and en passant decisions; it is not
// replayed onto the board.
func NewGameFromBoard(board Board, moves []Move) Game {
	g := Game{board: board, moves: slices.Clone(moves)}
	g.positions = []string{g.positionKey()}
	return g
}

// Replay plays the notations in order from the initial position.
func Replay(notations ...string) (Game, error) {
	g := NewGame()
	for i, notation := range notations {
		next, _, err := g.Play(notation)
		if err != nil {
			return g, fmt.Errorf("move %d: %w", i+1, err)
		}
		g = next
	}
	return g, nil
}

func (g Game) Board() Board {
	return g.board
}

func (g Game) Moves() []Move {
	return slices.Clone(g.moves)
}

func (g Game) Turn() Army {
	if len(g.moves)%2 == 0 {
		return White
	}
	return Black
}

// LastMove returns the most recent move, if any.
func (g Game) LastMove() (Move, bool) {
	if len(g.moves) == 0 {
		return Move{}, false
	}
	return g.moves[len(g.moves)-1], true
}

// Play validates the notation for the side to move and returns the game with
// the move appended.
func (g Game) Play(notation string) (Game, Move, error) {
	state, err := g.State()
	if err != nil {
		return g, Move{}, err
	}
	if state.IsOver() {
		return g, Move{}, fmt.Errorf("%w: %s", ErrGameOver, state)
	}

	move, err := g.Validated(notation)
	if err != nil {
		return g, Move{}, err
	}
	return g.apply(move), move, nil
}

func (g Game) apply(move Move) Game {
	next := Game{
		board: g.board.MakeMove(move),
		moves: append(slices.Clone(g.moves), move),
	}
	next.positions = append(slices.Clone(g.positions), next.positionKey())
	return next
}

// LegalMoves lists every legal move of the side to move.
func (g Game) LegalMoves() ([]Move, error) {
	var moves []Move
	for _, from := range g.board.positionsOf(g.Turn()) {
		fromMoves, err := g.movesFrom(from)
		if err != nil {
			return nil, err
		}
		moves = append(moves, fromMoves...)
	}
	return moves, nil
}

// AvailableMoves lists the legal moves of the piece on pos.
func (g Game) AvailableMoves(pos Position) ([]Move, error) {
	return g.movesFrom(pos)
}
