package model

import (
	"regexp"
	"strings"
)

const (
	ShortCastle = "O-O"
	LongCastle  = "O-O-O"

	captureChar   = 'x'
	promotionChar = '='

	formatHint = "Unrecognized Play. Use format: [<piece>][<from>][x][<to>][=<piece>], [O-O] or [O-O-O]"
)

var moveRegex = regexp.MustCompile(`^([PKQNBR]?[a-h]?[1-8]?x?([a-h][1-8])(=[QNBR])?|O-O(-O)?)$`)

// MoveExtraction is a parsed but unvalidated move. When the origin column
// or row was left out of the notation the matching flag is set and the
// field in Move holds a placeholder.
type MoveExtraction struct {
	Move            Move
	OptionalFromCol bool
	OptionalFromRow bool
}

// ParseMove parses a move without looking at any board.
func ParseMove(s string) (Move, error) {
	extraction, err := ExtractMoveInfo(s)
	return extraction.Move, err
}

// ExtractMoveInfo parses [<piece>][<fromCol>][<fromRow>][x]<to>[=<piece>],
// O-O or O-O-O. A missing piece letter means a pawn. Castles are returned
// on White's back row; the validator moves them to the mover's row.
func ExtractMoveInfo(s string) (MoveExtraction, error) {
	if !moveRegex.MatchString(s) {
		return MoveExtraction{}, &MoveError{Move: s, Reason: formatHint, Err: ErrMoveFormat}
	}

	if s == ShortCastle || s == LongCastle {
		toCol := shortCastleKingCol
		if s == LongCastle {
			toCol = longCastleKingCol
		}
		return MoveExtraction{
			Move: Move{
				Piece: King,
				From:  Position{Col: initialKingCol, Row: FirstRow},
				To:    Position{Col: toCol, Row: FirstRow},
				Type:  Castle,
			},
		}, nil
	}

	str := s
	var promotion PieceType
	if i := strings.IndexByte(str, promotionChar); i >= 0 {
		promotion, _ = PieceTypeFromSymbol(str[i+1])
		str = str[:i]
	}

	to := Position{Col: str[len(str)-2], Row: int(str[len(str)-1] - '0')}
	str = str[:len(str)-2]

	capture := strings.HasSuffix(str, string(captureChar))
	str = strings.TrimSuffix(str, string(captureChar))

	piece := Pawn
	if len(str) > 0 && str[0] >= 'A' && str[0] <= 'Z' {
		piece, _ = PieceTypeFromSymbol(str[0])
		str = str[1:]
	}

	extraction := MoveExtraction{OptionalFromCol: true, OptionalFromRow: true}
	from := Position{Col: FirstCol, Row: FirstRow}
	if len(str) > 0 && str[0] >= FirstCol && str[0] <= LastCol {
		from.Col = str[0]
		extraction.OptionalFromCol = false
		str = str[1:]
	}
	if len(str) > 0 {
		from.Row = int(str[0] - '0')
		extraction.OptionalFromRow = false
	}

	extraction.Move = Move{
		Piece:     piece,
		From:      from,
		Capture:   capture,
		To:        to,
		Promotion: promotion,
		Type:      Normal,
	}
	return extraction, nil
}
