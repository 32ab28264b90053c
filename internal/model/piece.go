package model

import "fmt"

// Army is one of the two sides.
type Army int

const (
	White Army = iota
	Black
)

func (a Army) Other() Army {
	if a == White {
		return Black
	}
	return White
}

func (a Army) String() string {
	if a == White {
		return "white"
	}
	return "black"
}

func (a Army) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// backRow is the army's first row: where its king starts and where the
// opponent's pawns promote.
func (a Army) backRow() int {
	if a == White {
		return FirstRow
	}
	return LastRow
}

func (a Army) pawnRow() int {
	if a == White {
		return FirstRow + 1
	}
	return LastRow - 1
}

func (a Army) pawnDirection() int {
	if a == White {
		return 1
	}
	return -1
}

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// promotionTypes are the pieces a pawn may become, strongest first.
var promotionTypes = []PieceType{Queen, Rook, Bishop, Knight}

func (p PieceType) Symbol() byte {
	switch p {
	case King:
		return 'K'
	case Queen:
		return 'Q'
	case Rook:
		return 'R'
	case Bishop:
		return 'B'
	case Knight:
		return 'N'
	case Pawn:
		return 'P'
	}
	return 0
}

func PieceTypeFromSymbol(symbol byte) (PieceType, bool) {
	switch symbol {
	case 'K':
		return King, true
	case 'Q':
		return Queen, true
	case 'R':
		return Rook, true
	case 'B':
		return Bishop, true
	case 'N':
		return Knight, true
	case 'P':
		return Pawn, true
	}
	return "", false
}

// Piece is a piece type owned by an army. The zero Piece is an empty square.
type Piece struct {
	Type PieceType `json:"type"`
	Army Army      `json:"army"`
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s", p.Army, p.Type)
}

// Char is the piece as written in a board layout: uppercase for White,
// lowercase for Black.
func (p Piece) Char() byte {
	c := p.Type.Symbol()
	if p.Army == Black {
		c += 'a' - 'A'
	}
	return c
}

func pieceFromChar(c byte) (Piece, bool) {
	army := White
	if c >= 'a' && c <= 'z' {
		army = Black
		c -= 'a' - 'A'
	}
	t, ok := PieceTypeFromSymbol(c)
	if !ok {
		return Piece{}, false
	}
	return Piece{Type: t, Army: army}, true
}

// IsValidMove reports whether the move follows this piece's movement rules
// on the given board. Turn, check, castling and en passant are not
// considered here.
func (p Piece) IsValidMove(board Board, move Move) bool {
	switch p.Type {
	case Pawn:
		return isValidPawnMove(board, p.Army, move)
	case Rook:
		return isValidStraightMove(board, move)
	case Knight:
		return isValidKnightMove(move)
	case Bishop:
		return isValidDiagonalMove(board, move)
	case Queen:
		return isValidStraightMove(board, move) || isValidDiagonalMove(board, move)
	case King:
		return isValidKingMove(move)
	}
	return false
}

// attacks reports whether the piece standing on from reaches to. Pawns only
// attack their two forward diagonals.
func (p Piece) attacks(board Board, from, to Position) bool {
	move := Move{Piece: p.Type, From: from, To: to}
	if p.Type == Pawn {
		return abs(move.colsDistance()) == 1 && move.rowsDistance() == p.Army.pawnDirection()
	}
	return p.IsValidMove(board, move)
}

func isValidPawnMove(board Board, army Army, move Move) bool {
	dir := army.pawnDirection()
	dx, dy := move.colsDistance(), move.rowsDistance()
	switch {
	case dx == 0 && dy == dir:
		return !board.IsPositionOccupied(move.To)
	case dx == 0 && dy == 2*dir:
		return move.From.Row == army.pawnRow() && board.isPathClear(move.From, move.To) &&
			!board.IsPositionOccupied(move.To)
	case abs(dx) == 1 && dy == dir:
		return board.IsPositionOccupied(move.To)
	}
	return false
}

// isValidPawnEnPassant checks the en passant shape: one diagonal step
// forward onto an empty square.
func isValidPawnEnPassant(board Board, army Army, move Move) bool {
	return abs(move.colsDistance()) == 1 && move.rowsDistance() == army.pawnDirection() &&
		!board.IsPositionOccupied(move.To)
}

func isValidStraightMove(board Board, move Move) bool {
	return move.isStraight() && board.isPathClear(move.From, move.To)
}

func isValidDiagonalMove(board Board, move Move) bool {
	return move.isDiagonal() && board.isPathClear(move.From, move.To)
}

func isValidKnightMove(move Move) bool {
	dx, dy := abs(move.colsDistance()), abs(move.rowsDistance())
	return dx == 1 && dy == 2 || dx == 2 && dy == 1
}

func isValidKingMove(move Move) bool {
	dx, dy := abs(move.colsDistance()), abs(move.rowsDistance())
	return dx <= 1 && dy <= 1 && dx+dy > 0
}
