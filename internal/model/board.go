package model

import (
	"fmt"
	"strings"
)

const initialLayout = "rnbqkbnr" +
	"pppppppp" +
	"        " +
	"        " +
	"        " +
	"        " +
	"PPPPPPPP" +
	"RNBQKBNR"

// Board holds the 64 squares. It is a plain value: copying a Board copies
// every square, and MakeMove returns a new Board instead of changing the
// receiver.
type Board struct {
	squares [LastRow][LastRow]Piece // [row-1][col-'a']
}

func NewBoard() Board {
	board, err := ParseBoard(initialLayout)
	if err != nil {
		panic(err)
	}
	return board
}

// ParseBoard builds a board from a 64 character layout listed from rank 8
// to rank 1 and from file a to file h. Uppercase letters are White pieces,
// lowercase letters Black pieces and spaces empty squares.
func ParseBoard(layout string) (Board, error) {
	var board Board
	if len(layout) != 64 {
		return board, fmt.Errorf("%w: expected 64 squares, got %d", ErrInvalidLayout, len(layout))
	}
	for i := 0; i < len(layout); i++ {
		if layout[i] == ' ' {
			continue
		}
		piece, ok := pieceFromChar(layout[i])
		if !ok {
			return Board{}, fmt.Errorf("%w: unknown piece %q at index %d", ErrInvalidLayout, layout[i], i)
		}
		board.set(Position{Col: FirstCol + byte(i%8), Row: LastRow - i/8}, piece)
	}
	return board, nil
}

// Piece returns the piece on pos, if any.
func (b Board) Piece(pos Position) (Piece, bool) {
	if !pos.valid() {
		return Piece{}, false
	}
	piece := b.at(pos)
	return piece, piece.Type != ""
}

func (b Board) IsPositionOccupied(pos Position) bool {
	_, ok := b.Piece(pos)
	return ok
}

func (b Board) at(pos Position) Piece {
	return b.squares[pos.Row-FirstRow][pos.Col-FirstCol]
}

func (b *Board) set(pos Position, piece Piece) {
	b.squares[pos.Row-FirstRow][pos.Col-FirstCol] = piece
}

// MakeMove moves the piece on move.From to move.To and returns the new
// board. En passant removes the passed pawn and castling also moves the
// rook. The move is not checked for legality.
func (b Board) MakeMove(move Move) Board {
	piece := b.at(move.From)
	b.set(move.From, Piece{})
	if move.Promotion != "" {
		piece.Type = move.Promotion
	}
	b.set(move.To, piece)

	switch move.Type {
	case EnPassant:
		b.set(Position{Col: move.To.Col, Row: move.From.Row}, Piece{})
	case Castle:
		rookFrom, rookTo := castleRookPositions(move.To)
		rook := b.at(rookFrom)
		b.set(rookFrom, Piece{})
		b.set(rookTo, rook)
	}
	return b
}

// positionsOf lists the squares holding pieces of the army, from a1 to h8.
func (b Board) positionsOf(army Army) []Position {
	var positions []Position
	for _, pos := range allPositions {
		if piece, ok := b.Piece(pos); ok && piece.Army == army {
			positions = append(positions, pos)
		}
	}
	return positions
}

// KingPosition finds the army's king. A board without exactly one king of
// the army breaks the game's invariants.
func (b Board) KingPosition(army Army) (Position, error) {
	var found []Position
	for _, pos := range b.positionsOf(army) {
		if b.at(pos).Type == King {
			found = append(found, pos)
		}
	}
	if len(found) != 1 {
		return Position{}, fmt.Errorf("%w: %d %s kings on the board", ErrInvariantViolation, len(found), army)
	}
	return found[0], nil
}

// between lists the squares strictly between from and to when they share a
// row, column or diagonal.
func (b Board) between(from, to Position) []Position {
	dx, dy := int(to.Col)-int(from.Col), to.Row-from.Row
	if dx != 0 && dy != 0 && abs(dx) != abs(dy) {
		return nil
	}
	stepX, stepY := sign(dx), sign(dy)
	var squares []Position
	for pos, ok := from.offset(stepX, stepY); ok && pos != to; pos, ok = pos.offset(stepX, stepY) {
		squares = append(squares, pos)
	}
	return squares
}

func (b Board) isPathClear(from, to Position) bool {
	for _, pos := range b.between(from, to) {
		if b.IsPositionOccupied(pos) {
			return false
		}
	}
	return true
}

// String returns the board in the 64 character layout accepted by ParseBoard.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(64)
	for row := LastRow; row >= FirstRow; row-- {
		for col := FirstCol; col <= LastCol; col++ {
			if piece, ok := b.Piece(Position{Col: col, Row: row}); ok {
				sb.WriteByte(piece.Char())
			} else {
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String()
}

// Render draws the board for a terminal with rank and file labels.
func (b Board) Render() string {
	var sb strings.Builder
	for row := LastRow; row >= FirstRow; row-- {
		fmt.Fprintf(&sb, "%d ", row)
		for col := FirstCol; col <= LastCol; col++ {
			c := byte('.')
			if piece, ok := b.Piece(Position{Col: col, Row: row}); ok {
				c = piece.Char()
			}
			sb.WriteByte(c)
			if col != LastCol {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
