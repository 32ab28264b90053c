// Command replay plays a list of moves and prints the resulting board.
//
//	replay e4 e5 Nf3 Nc6 Bb5
//	replay -black -layout "<64 squares, rank 8 first>" Kd7
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/benbeisheim/chess-backend/internal/model"
)

func main() {
	layout := flag.String("layout", "", "64 character board to start from instead of the initial position")
	black := flag.Bool("black", false, "with -layout, Black moves first")
	flag.Parse()
	log.SetFlags(0)

	game, err := startingGame(*layout, *black)
	if err != nil {
		log.Fatal(err)
	}

	for i, notation := range flag.Args() {
		next, move, err := game.Play(notation)
		if err != nil {
			fmt.Print(game.Board().Render())
			log.Fatalf("move %d: %v", i+1, err)
		}
		fmt.Printf("%d. %s %s\n", i+1, game.Turn(), move)
		game = next
	}

	state, err := game.State()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(game.Board().Render())
	fmt.Printf("state: %s\n", state)
	fmt.Printf("fen:   %s\n", game.FEN())
	if !state.IsOver() {
		fmt.Printf("to move: %s\n", game.Turn())
	}
}

// startingGame returns the initial position, or the given layout. A game
// built from a layout has no history, so a placeholder move is recorded
// when Black is to move.
func startingGame(layout string, blackToMove bool) (model.Game, error) {
	if layout == "" {
		return model.NewGame(), nil
	}
	board, err := model.ParseBoard(layout)
	if err != nil {
		return model.Game{}, err
	}
	var moves []model.Move
	if blackToMove {
		moves = append(moves, model.Move{})
	}
	return model.NewGameFromBoard(board, moves), nil
}
