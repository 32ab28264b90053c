package model

const (
	initialKingCol             byte = 'e'
	initialRookColFurtherKing  byte = 'a'
	initialRookColCloserToKing byte = 'h'
	longCastleRookCol          byte = 'd'
	shortCastleRookCol         byte = 'f'
	longCastleKingCol          byte = 'c'
	shortCastleKingCol         byte = 'g'
)

// castleRookPositions returns where the castling rook starts and lands for
// a king arriving on kingTo.
func castleRookPositions(kingTo Position) (from, to Position) {
	if kingTo.Col == shortCastleKingCol {
		return Position{Col: initialRookColCloserToKing, Row: kingTo.Row},
			Position{Col: shortCastleRookCol, Row: kingTo.Row}
	}
	return Position{Col: initialRookColFurtherKing, Row: kingTo.Row},
		Position{Col: longCastleRookCol, Row: kingTo.Row}
}

// validatedMove classifies a candidate move of piece and returns it with its
// type and capture flag filled in. The rules are tried in order: en passant,
// castle, normal move. A move that leaves the mover's king in check is
// rejected whatever rule it matched.
func (g Game) validatedMove(piece Piece, move Move) (Move, bool, error) {
	valid := move
	valid.Piece = piece.Type

	switch {
	case g.isValidEnPassant(piece, move):
		valid.Type = EnPassant
		valid.Capture = true
	default:
		castle, err := g.isValidCastle(piece, move)
		if err != nil {
			return Move{}, false, err
		}
		switch {
		case castle:
			valid.Type = Castle
			valid.Capture = false
		case isValidNormal(piece, g.board, move):
			valid.Type = Normal
			valid.Capture = g.board.IsPositionOccupied(move.To)
		default:
			return Move{}, false, nil
		}
	}

	inCheck, err := g.board.MakeMove(valid).IsKingInCheck(piece.Army)
	if err != nil {
		return Move{}, false, err
	}
	if inCheck {
		return Move{}, false, nil
	}
	return valid, true, nil
}

func isValidNormal(piece Piece, board Board, move Move) bool {
	return piece.IsValidMove(board, move) && isValidCapture(piece, board, move)
}

// isValidCapture checks the destination square: an empty square cannot be
// claimed as a capture, an occupied one must hold an opposing piece, and a
// promotion is given exactly when a pawn reaches the opponent's back row.
func isValidCapture(piece Piece, board Board, move Move) bool {
	isPromotion := piece.Type == Pawn && move.To.Row == piece.Army.Other().backRow()
	isValidPromotion := isPromotion == (move.Promotion != "")

	captured, ok := board.Piece(move.To)
	if !ok {
		return !move.Capture && isValidPromotion
	}
	return captured.Army != piece.Army && isValidPromotion
}

func (g Game) isValidEnPassant(piece Piece, move Move) bool {
	return piece.Type == Pawn && move.Promotion == "" &&
		isValidPawnEnPassant(g.board, piece.Army, move) && g.isEnPassantPossible(piece, move)
}

// isEnPassantPossible checks that the previous ply was an opposing pawn
// advancing two squares on the destination column and stopping beside the
// capturing pawn.
func (g Game) isEnPassantPossible(piece Piece, move Move) bool {
	if len(g.moves) == 0 {
		return false
	}
	last := g.moves[len(g.moves)-1]
	passedFrom := Position{Col: move.To.Col, Row: move.From.Row + 2*piece.Army.pawnDirection()}
	passedTo := Position{Col: move.To.Col, Row: move.From.Row}
	if last.Piece != Pawn || last.From != passedFrom || last.To != passedTo {
		return false
	}
	passed, ok := g.board.Piece(passedTo)
	return ok && passed.Type == Pawn && passed.Army != piece.Army
}

// isValidCastle checks a king's two square move along its back row: the
// king is not in check, neither the king nor that rook has moved, the
// squares between them are empty and the king does not cross an attacked
// square.
func (g Game) isValidCastle(piece Piece, move Move) (bool, error) {
	if piece.Type != King || move.Promotion != "" {
		return false, nil
	}
	if !isValidCastleShape(g.board, piece.Army, move) || !g.isCastlePossible(piece.Army, move.To) {
		return false, nil
	}

	inCheck, err := g.board.IsKingInCheck(piece.Army)
	if err != nil || inCheck {
		return false, err
	}

	crossing := Position{Col: (move.From.Col + move.To.Col) / 2, Row: move.From.Row}
	crossed := g.board.MakeMove(Move{Piece: King, From: move.From, To: crossing})
	attacked, err := crossed.IsKingInCheck(piece.Army)
	if err != nil {
		return false, err
	}
	return !attacked, nil
}

func isValidCastleShape(board Board, army Army, move Move) bool {
	row := army.backRow()
	if move.From != (Position{Col: initialKingCol, Row: row}) || move.To.Row != row {
		return false
	}
	if move.To.Col != shortCastleKingCol && move.To.Col != longCastleKingCol {
		return false
	}
	rookFrom, _ := castleRookPositions(move.To)
	rook, ok := board.Piece(rookFrom)
	if !ok || rook != (Piece{Type: Rook, Army: army}) {
		return false
	}
	return board.isPathClear(move.From, rookFrom)
}

// isCastlePossible scans the history for any move leaving the king's or the
// castling rook's starting square.
func (g Game) isCastlePossible(army Army, kingTo Position) bool {
	kingFrom := Position{Col: initialKingCol, Row: army.backRow()}
	rookFrom, _ := castleRookPositions(Position{Col: kingTo.Col, Row: army.backRow()})
	for _, m := range g.moves {
		if m.From == kingFrom || m.From == rookFrom {
			return false
		}
	}
	return true
}

// Validated parses a move string and resolves it against the position: the
// pieces of the side to move are searched for the one move matching the
// notation.
func (g Game) Validated(notation string) (Move, error) {
	extraction, err := ExtractMoveInfo(notation)
	if err != nil {
		return Move{}, err
	}

	move := extraction.Move
	turn := g.Turn()
	if move.Type == Castle {
		move.From.Row = turn.backRow()
		move.To.Row = turn.backRow()
	}

	moves, err := g.searchMoves(turn, move, extraction.OptionalFromCol, extraction.OptionalFromRow)
	if err != nil {
		return Move{}, err
	}

	switch len(moves) {
	case 1:
		return moves[0], nil
	case 0:
		return Move{}, &MoveError{Move: notation, Reason: "Illegal move.", Err: ErrIllegalMove}
	default:
		return Move{}, &MoveError{
			Move:   notation,
			Reason: "Ambiguous move. Try with origin column and row.",
			Err:    ErrAmbiguousMove,
		}
	}
}

// searchMoves returns the validated moves of army's pieces matching the
// piece type, destination and whatever part of the origin was given.
func (g Game) searchMoves(army Army, move Move, optionalFromCol, optionalFromRow bool) ([]Move, error) {
	var found []Move
	for _, from := range g.board.positionsOf(army) {
		piece := g.board.at(from)
		if piece.Type != move.Piece || from == move.To {
			continue
		}
		if !optionalFromCol && from.Col != move.From.Col || !optionalFromRow && from.Row != move.From.Row {
			continue
		}

		candidate := move
		candidate.From = from
		valid, ok, err := g.validatedMove(piece, candidate)
		if err != nil {
			return nil, err
		}
		if ok {
			found = append(found, valid)
		}
	}
	return found, nil
}

// movesFrom lists every legal move of the piece standing on from,
// expanding pawn promotions into one move per promotion piece.
func (g Game) movesFrom(from Position) ([]Move, error) {
	piece, ok := g.board.Piece(from)
	if !ok {
		return nil, nil
	}

	var moves []Move
	for _, to := range allPositions {
		if to == from {
			continue
		}
		for _, promotion := range promotionsFor(piece, to) {
			candidate := Move{
				Piece:     piece.Type,
				From:      from,
				Capture:   g.board.IsPositionOccupied(to),
				To:        to,
				Promotion: promotion,
			}
			valid, ok, err := g.validatedMove(piece, candidate)
			if err != nil {
				return nil, err
			}
			if ok {
				moves = append(moves, valid)
			}
		}
	}
	return moves, nil
}

func promotionsFor(piece Piece, to Position) []PieceType {
	if piece.Type == Pawn && to.Row == piece.Army.Other().backRow() {
		return promotionTypes
	}
	return []PieceType{""}
}
