package service

import (
	"github.com/benbeisheim/chess-backend/internal/model"
)

// GameView is the state sent to clients after every change.
type GameView struct {
	ID       string          `json:"id"`
	Board    string          `json:"board"`
	FEN      string          `json:"fen"`
	Moves    []string        `json:"moves"`
	ToMove   model.Army      `json:"toMove"`
	State    model.GameState `json:"state"`
	IsCheck  bool            `json:"isCheck"`
	LastMove *model.Move     `json:"lastMove"`
	Players  Players         `json:"players"`
}

func newGameView(gameID string, game model.Game, players Players) (GameView, error) {
	state, err := game.State()
	if err != nil {
		return GameView{}, err
	}

	moves := game.Moves()
	notations := make([]string, 0, len(moves))
	for _, m := range moves {
		notations = append(notations, m.String())
	}

	view := GameView{
		ID:      gameID,
		Board:   game.Board().String(),
		FEN:     game.FEN(),
		Moves:   notations,
		ToMove:  game.Turn(),
		State:   state,
		IsCheck: state == model.Check || state == model.Checkmate,
		Players: players,
	}
	if last, ok := game.LastMove(); ok {
		view.LastMove = &last
	}
	return view, nil
}
