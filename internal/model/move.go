package model

import "strings"

type MoveType int

const (
	Normal MoveType = iota
	Castle
	EnPassant
)

func (t MoveType) String() string {
	switch t {
	case Castle:
		return "CASTLE"
	case EnPassant:
		return "EN_PASSANT"
	}
	return "NORMAL"
}

func (t MoveType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Move is one ply. Promotion is empty unless a pawn reaches the last row.
type Move struct {
	Piece     PieceType `json:"piece"`
	From      Position  `json:"from"`
	Capture   bool      `json:"capture"`
	To        Position  `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`
	Type      MoveType  `json:"type"`
}

// String writes the move with its full origin square, e.g. "Pe2e4" or
// "Pe7xd8=Q". Castles are written as the king's move.
func (m Move) String() string {
	return m.Notation(false, false)
}

// Notation writes the move leaving out the origin column and/or row.
func (m Move) Notation(optionalFromCol, optionalFromRow bool) string {
	var sb strings.Builder
	sb.WriteByte(m.Piece.Symbol())
	if !optionalFromCol {
		sb.WriteByte(m.From.Col)
	}
	if !optionalFromRow {
		sb.WriteByte(byte('0' + m.From.Row))
	}
	if m.Capture {
		sb.WriteByte(captureChar)
	}
	sb.WriteString(m.To.String())
	if m.Promotion != "" {
		sb.WriteByte(promotionChar)
		sb.WriteByte(m.Promotion.Symbol())
	}
	return sb.String()
}

func (m Move) rowsDistance() int {
	return m.To.Row - m.From.Row
}

func (m Move) colsDistance() int {
	return int(m.To.Col) - int(m.From.Col)
}

func (m Move) isVertical() bool {
	return m.From.Col == m.To.Col && m.rowsDistance() != 0
}

func (m Move) isHorizontal() bool {
	return m.From.Row == m.To.Row && m.colsDistance() != 0
}

func (m Move) isStraight() bool {
	return m.isHorizontal() != m.isVertical()
}

func (m Move) isDiagonal() bool {
	return abs(m.rowsDistance()) == abs(m.colsDistance()) && m.rowsDistance() != 0
}

// isDoublePawnPush reports a pawn advancing two squares from its start row.
func (m Move) isDoublePawnPush() bool {
	return m.Piece == Pawn && m.From.Col == m.To.Col && abs(m.rowsDistance()) == 2
}
