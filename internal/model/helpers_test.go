package model

import (
	"strings"
	"testing"
)

// sq parses a square known to be valid.
func sq(s string) Position {
	p, err := ParsePosition(s)
	if err != nil {
		panic(err)
	}
	return p
}

// mustBoard joins eight ranks, rank 8 first, into a board.
func mustBoard(t *testing.T, ranks ...string) Board {
	t.Helper()
	if len(ranks) != 8 {
		t.Fatalf("expected 8 ranks, got %d", len(ranks))
	}
	board, err := ParseBoard(strings.Join(ranks, ""))
	if err != nil {
		t.Fatalf("ParseBoard: %v", err)
	}
	return board
}

func mustReplay(t *testing.T, notations ...string) Game {
	t.Helper()
	g, err := Replay(notations...)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	return g
}

func mustState(t *testing.T, g Game) GameState {
	t.Helper()
	state, err := g.State()
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	return state
}

const emptyRank = "        "

var loydStalemate = []string{
	"e3", "a5", "Qh5", "Ra6", "Qa5", "h5", "h4", "Rah6", "Qc7", "f6",
	"Qd7", "Kf7", "Qb7", "Qd3", "Qb8", "Qh7", "Qc8", "Kg6", "Qe6",
}

var foolsMate = []string{"f3", "e5", "g4", "Qh4"}
