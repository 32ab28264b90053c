package model

import "fmt"

var kingDirections = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// attackersOf lists the pieces of army by that reach pos.
func (b Board) attackersOf(pos Position, by Army) []Position {
	var attackers []Position
	for _, from := range b.positionsOf(by) {
		if from != pos && b.at(from).attacks(b, from, pos) {
			attackers = append(attackers, from)
		}
	}
	return attackers
}

func (b Board) isAttacked(pos Position, by Army) bool {
	for _, from := range b.positionsOf(by) {
		if from != pos && b.at(from).attacks(b, from, pos) {
			return true
		}
	}
	return false
}

// IsKingInCheck reports whether any opposing piece reaches the army's king.
func (b Board) IsKingInCheck(army Army) (bool, error) {
	king, err := b.KingPosition(army)
	if err != nil {
		return false, err
	}
	return b.isAttacked(king, army.Other()), nil
}

// KingAttackers lists every opposing piece attacking the king on kingPos.
// No legal position has more than two.
func (b Board) KingAttackers(kingPos Position, army Army) ([]Position, error) {
	attackers := b.attackersOf(kingPos, army.Other())
	if len(attackers) > 2 {
		return nil, fmt.Errorf("%w: %d pieces attack the %s king on %s", ErrInvariantViolation, len(attackers), army, kingPos)
	}
	return attackers, nil
}

// CanKingMove reports whether the king on kingPos has a neighbouring square
// that is empty or holds an opposing piece and is not attacked once the
// king stands there.
func (b Board) CanKingMove(kingPos Position, army Army) bool {
	for _, dir := range kingDirections {
		to, ok := kingPos.offset(dir[0], dir[1])
		if !ok {
			continue
		}
		if piece, occupied := b.Piece(to); occupied && piece.Army == army {
			continue
		}
		after := b.MakeMove(Move{Piece: King, From: kingPos, To: to})
		if !after.isAttacked(to, army.Other()) {
			return true
		}
	}
	return false
}

func (b Board) IsKingProtectable(kingPos Position, army Army) (bool, error) {
	return NewGameFromBoard(b, nil).IsKingProtectable(kingPos, army)
}

func (b Board) IsKingInCheckMate(army Army) (bool, error) {
	return NewGameFromBoard(b, nil).IsKingInCheckMate(army)
}

func (b Board) IsKingInStaleMate(army Army, previousMoves []Move) (bool, error) {
	return NewGameFromBoard(b, previousMoves).IsKingInStaleMate(army)
}

func (b Board) IsInMate(previousMoves []Move) (bool, error) {
	return NewGameFromBoard(b, previousMoves).IsInMate()
}

// IsKingProtectable reports whether a piece other than the king can capture
// the single attacker or step between it and the king. A double check can
// never be answered this way.
func (g Game) IsKingProtectable(kingPos Position, army Army) (bool, error) {
	attackers, err := g.board.KingAttackers(kingPos, army)
	if err != nil || len(attackers) != 1 {
		return false, err
	}

	attacker := attackers[0]
	targets := append([]Position{attacker}, g.board.between(attacker, kingPos)...)
	// A checking pawn that has just advanced two squares can be taken en passant.
	if piece := g.board.at(attacker); piece.Type == Pawn {
		if behind, ok := attacker.offset(0, -piece.Army.pawnDirection()); ok {
			targets = append(targets, behind)
		}
	}

	for _, from := range g.board.positionsOf(army) {
		piece := g.board.at(from)
		if piece.Type == King {
			continue
		}
		for _, to := range targets {
			for _, promotion := range promotionsFor(piece, to) {
				candidate := Move{
					Piece:     piece.Type,
					From:      from,
					Capture:   g.board.IsPositionOccupied(to),
					To:        to,
					Promotion: promotion,
				}
				_, ok, err := g.validatedMove(piece, candidate)
				if err != nil {
					return false, err
				}
				if ok {
					return true, nil
				}
			}
		}
	}
	return false, nil
}

// IsKingInCheckMate reports a king in check that can neither move nor be
// shielded. In double check only a king move helps.
func (g Game) IsKingInCheckMate(army Army) (bool, error) {
	king, err := g.board.KingPosition(army)
	if err != nil {
		return false, err
	}
	attackers, err := g.board.KingAttackers(king, army)
	if err != nil || len(attackers) == 0 {
		return false, err
	}
	if g.board.CanKingMove(king, army) {
		return false, nil
	}
	if len(attackers) == 2 {
		return true, nil
	}
	protectable, err := g.IsKingProtectable(king, army)
	return !protectable, err
}

// IsKingInStaleMate reports that it is army's turn, its king is not in check
// and none of its pieces has a legal move.
func (g Game) IsKingInStaleMate(army Army) (bool, error) {
	if g.Turn() != army {
		return false, nil
	}
	inCheck, err := g.board.IsKingInCheck(army)
	if err != nil || inCheck {
		return false, err
	}
	hasMove, err := g.hasLegalMove(army)
	return !hasMove, err
}

// IsInMate reports a checkmate of either army or a stalemate of the army to
// move.
func (g Game) IsInMate() (bool, error) {
	for _, army := range []Army{White, Black} {
		mate, err := g.IsKingInCheckMate(army)
		if err != nil || mate {
			return mate, err
		}
	}
	return g.IsKingInStaleMate(g.Turn())
}

func (g Game) hasLegalMove(army Army) (bool, error) {
	for _, from := range g.board.positionsOf(army) {
		moves, err := g.movesFrom(from)
		if err != nil {
			return false, err
		}
		if len(moves) > 0 {
			return true, nil
		}
	}
	return false, nil
}
