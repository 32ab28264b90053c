package model

import (
	"strconv"
	"strings"
)

// FEN describes the current position in Forsyth-Edwards Notation. Castling
// rights and the en passant square are derived from the move history.
func (g Game) FEN() string {
	return g.positionKey() + " " + strconv.Itoa(g.HalfMoveClock()) + " " + strconv.Itoa(len(g.moves)/2+1)
}

// positionKey is the first four FEN fields, used to recognise repeated
// positions.
func (g Game) positionKey() string {
	var sb strings.Builder
	sb.WriteString(g.board.placement())

	sb.WriteByte(' ')
	if g.Turn() == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(g.castlingRights())

	sb.WriteByte(' ')
	if target, ok := g.enPassantTarget(); ok {
		sb.WriteString(target.String())
	} else {
		sb.WriteByte('-')
	}
	return sb.String()
}

func (b Board) placement() string {
	var sb strings.Builder
	for row := LastRow; row >= FirstRow; row-- {
		empty := 0
		for col := FirstCol; col <= LastCol; col++ {
			piece, ok := b.Piece(Position{Col: col, Row: row})
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(piece.Char())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row != FirstRow {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

func (g Game) castlingRights() string {
	var sb strings.Builder
	for _, army := range []Army{White, Black} {
		for _, kingCol := range []byte{shortCastleKingCol, longCastleKingCol} {
			if !g.hasCastlingRight(army, kingCol) {
				continue
			}
			c := byte('K')
			if kingCol == longCastleKingCol {
				c = 'Q'
			}
			if army == Black {
				c += 'a' - 'A'
			}
			sb.WriteByte(c)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// hasCastlingRight is true while the king and the rook on that side are on
// their starting squares and neither has moved.
func (g Game) hasCastlingRight(army Army, kingCol byte) bool {
	row := army.backRow()
	kingTo := Position{Col: kingCol, Row: row}
	rookFrom, _ := castleRookPositions(kingTo)
	king, kingOK := g.board.Piece(Position{Col: initialKingCol, Row: row})
	rook, rookOK := g.board.Piece(rookFrom)
	return kingOK && king == (Piece{Type: King, Army: army}) &&
		rookOK && rook == (Piece{Type: Rook, Army: army}) &&
		g.isCastlePossible(army, kingTo)
}

// enPassantTarget is the square skipped by a pawn that has just advanced two
// squares.
func (g Game) enPassantTarget() (Position, bool) {
	if len(g.moves) == 0 {
		return Position{}, false
	}
	last := g.moves[len(g.moves)-1]
	if !last.isDoublePawnPush() {
		return Position{}, false
	}
	return Position{Col: last.To.Col, Row: (last.From.Row + last.To.Row) / 2}, true
}
