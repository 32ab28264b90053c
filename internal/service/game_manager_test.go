package service

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/store"
	"github.com/benbeisheim/chess-backend/internal/ws"
)

type fakeSubscriber struct {
	mu       sync.Mutex
	messages []ws.Message
	fail     bool
	calls    int
}

func (f *fakeSubscriber) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail {
		return errors.New("connection closed")
	}
	f.messages = append(f.messages, v.(ws.Message))
	return nil
}

func (f *fakeSubscriber) last(t *testing.T) GameView {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.messages) == 0 {
		t.Fatalf("no messages received")
	}
	msg := f.messages[len(f.messages)-1]
	if msg.Type != ws.MessageTypeGameState {
		t.Fatalf("message type = %s", msg.Type)
	}
	var payload struct {
		FEN    string   `json:"fen"`
		Moves  []string `json:"moves"`
		ToMove string   `json:"toMove"`
		State  string   `json:"state"`
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	return GameView{FEN: payload.FEN, Moves: payload.Moves}
}

func newTestGame(t *testing.T) (*GameManager, string) {
	t.Helper()
	gm := NewGameManager(store.NewMemoryStore())
	gameID, err := gm.CreateGame("alice")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	return gm, gameID
}

func TestJoinGame(t *testing.T) {
	gm, gameID := newTestGame(t)

	army, err := gm.AddPlayerToGame(gameID, "bob")
	if err != nil || army != model.Black {
		t.Fatalf("bob joined as %s, %v", army, err)
	}
	army, err = gm.AddPlayerToGame(gameID, "alice")
	if err != nil || army != model.White {
		t.Fatalf("alice rejoined as %s, %v", army, err)
	}
	if _, err := gm.AddPlayerToGame(gameID, "carol"); !errors.Is(err, ErrGameFull) {
		t.Fatalf("carol: expected ErrGameFull, got %v", err)
	}
	if _, err := gm.AddPlayerToGame("missing", "carol"); !errors.Is(err, store.ErrGameNotFound) {
		t.Fatalf("missing game: expected ErrGameNotFound, got %v", err)
	}

	view, err := gm.GetGameState(gameID)
	if err != nil {
		t.Fatalf("GetGameState: %v", err)
	}
	if view.Players != (Players{White: "alice", Black: "bob"}) {
		t.Fatalf("players = %+v", view.Players)
	}
}

func TestMakeMove(t *testing.T) {
	gm, gameID := newTestGame(t)
	if _, err := gm.AddPlayerToGame(gameID, "bob"); err != nil {
		t.Fatalf("AddPlayerToGame: %v", err)
	}

	tests := []struct {
		player string
		move   string
		err    error
	}{
		{"bob", "e5", ErrNotYourTurn},
		{"carol", "e4", ErrNotInGame},
		{"alice", "e5", model.ErrIllegalMove},
		{"alice", "e44", model.ErrMoveFormat},
	}
	for _, tt := range tests {
		if _, err := gm.MakeMove(gameID, tt.player, tt.move); !errors.Is(err, tt.err) {
			t.Fatalf("%s plays %s: expected %v, got %v", tt.player, tt.move, tt.err, err)
		}
	}

	view, err := gm.MakeMove(gameID, "alice", "e4")
	if err != nil {
		t.Fatalf("e4: %v", err)
	}
	if view.ToMove != model.Black || view.State != model.NoCheck || len(view.Moves) != 1 || view.Moves[0] != "Pe2e4" {
		t.Fatalf("view = %+v", view)
	}
	if view.LastMove == nil || view.LastMove.To.String() != "e4" {
		t.Fatalf("last move = %v", view.LastMove)
	}

	if _, err := gm.MakeMove(gameID, "alice", "d4"); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("second white move: expected ErrNotYourTurn, got %v", err)
	}
	if _, err := gm.MakeMove(gameID, "bob", "e5"); err != nil {
		t.Fatalf("e5: %v", err)
	}

	moves, err := gm.store.Moves(gameID)
	if err != nil {
		t.Fatalf("Moves: %v", err)
	}
	if strings.Join(moves, " ") != "Pe2e4 Pe7e5" {
		t.Fatalf("stored moves = %v", moves)
	}
}

func TestMakeMoveAfterMate(t *testing.T) {
	gm, gameID := newTestGame(t)
	if _, err := gm.AddPlayerToGame(gameID, "bob"); err != nil {
		t.Fatalf("AddPlayerToGame: %v", err)
	}

	var view GameView
	var err error
	for i, move := range []string{"f3", "e5", "g4", "Qh4"} {
		player := "alice"
		if i%2 == 1 {
			player = "bob"
		}
		if view, err = gm.MakeMove(gameID, player, move); err != nil {
			t.Fatalf("%s: %v", move, err)
		}
	}
	if view.State != model.Checkmate || !view.IsCheck {
		t.Fatalf("state = %s, check %v", view.State, view.IsCheck)
	}
	if _, err := gm.MakeMove(gameID, "alice", "a3"); !errors.Is(err, model.ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
}

func TestLegalMoves(t *testing.T) {
	gm, gameID := newTestGame(t)

	moves, err := gm.LegalMoves(gameID, "g1")
	if err != nil {
		t.Fatalf("LegalMoves: %v", err)
	}
	if strings.Join(moves, " ") != "Ng1f3 Ng1h3" {
		t.Fatalf("moves = %v", moves)
	}

	if _, err := gm.LegalMoves(gameID, "e4"); !errors.Is(err, ErrUnknownPiece) {
		t.Fatalf("empty square: expected ErrUnknownPiece, got %v", err)
	}
	if _, err := gm.LegalMoves(gameID, "z9"); !errors.Is(err, model.ErrInvalidPosition) {
		t.Fatalf("bad square: expected ErrInvalidPosition, got %v", err)
	}
	if _, err := gm.LegalMoves("missing", "g1"); !errors.Is(err, store.ErrGameNotFound) {
		t.Fatalf("missing game: expected ErrGameNotFound, got %v", err)
	}
}

func TestBroadcast(t *testing.T) {
	gm, gameID := newTestGame(t)
	if _, err := gm.AddPlayerToGame(gameID, "bob"); err != nil {
		t.Fatalf("AddPlayerToGame: %v", err)
	}

	bob := &fakeSubscriber{}
	if err := gm.RegisterConnection(gameID, "bob", bob); err != nil {
		t.Fatalf("RegisterConnection: %v", err)
	}
	if got := bob.last(t); len(got.Moves) != 0 {
		t.Fatalf("initial state has moves %v", got.Moves)
	}
	if err := gm.RegisterConnection(gameID, "bob", &fakeSubscriber{}); err == nil {
		t.Fatalf("second connection for bob accepted")
	}

	broken := &fakeSubscriber{fail: true}
	if err := gm.RegisterConnection(gameID, "alice", broken); err != nil {
		t.Fatalf("RegisterConnection: %v", err)
	}

	if _, err := gm.MakeMove(gameID, "alice", "e4"); err != nil {
		t.Fatalf("e4: %v", err)
	}
	got := bob.last(t)
	if len(got.Moves) != 1 || !strings.Contains(got.FEN, "4P3") {
		t.Fatalf("broadcast state = %+v", got)
	}

	// The failing connection was dropped after its first write.
	calls := broken.calls
	if _, err := gm.MakeMove(gameID, "bob", "e5"); err != nil {
		t.Fatalf("e5: %v", err)
	}
	if broken.calls != calls {
		t.Fatalf("broken subscriber still receives messages")
	}

	gm.UnregisterConnection(gameID, "bob")
	before := len(bob.messages)
	if _, err := gm.MakeMove(gameID, "alice", "Nf3"); err != nil {
		t.Fatalf("Nf3: %v", err)
	}
	if len(bob.messages) != before {
		t.Fatalf("unregistered subscriber received a message")
	}
}

// unreadableStore knows its games but cannot load their moves.
type unreadableStore struct {
	*store.MemoryStore
}

func (unreadableStore) Moves(string) ([]string, error) {
	return nil, errors.New("disk on fire")
}

func TestRegisterConnectionLoadFailure(t *testing.T) {
	gm := NewGameManager(unreadableStore{store.NewMemoryStore()})
	gameID, err := gm.CreateGame("alice")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	if err := gm.RegisterConnection(gameID, "alice", &fakeSubscriber{}); err == nil {
		t.Fatalf("expected the state load to fail")
	}
	sess, err := gm.session(gameID)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if _, still := sess.subscribers["alice"]; still {
		t.Fatalf("failed connection left registered")
	}
}

func TestStaleWriteFailureKeepsReconnect(t *testing.T) {
	gm, gameID := newTestGame(t)

	old := &fakeSubscriber{}
	if err := gm.RegisterConnection(gameID, "alice", old); err != nil {
		t.Fatalf("RegisterConnection: %v", err)
	}
	gm.UnregisterConnection(gameID, "alice")

	fresh := &fakeSubscriber{}
	if err := gm.RegisterConnection(gameID, "alice", fresh); err != nil {
		t.Fatalf("RegisterConnection: %v", err)
	}

	// A write on the old connection fails after alice reconnected.
	old.fail = true
	sess, err := gm.session(gameID)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	view, err := gm.GetGameState(gameID)
	if err != nil {
		t.Fatalf("GetGameState: %v", err)
	}
	sess.send("alice", old, view)

	before := len(fresh.messages)
	if _, err := gm.MakeMove(gameID, "alice", "e4"); err != nil {
		t.Fatalf("e4: %v", err)
	}
	if len(fresh.messages) != before+1 {
		t.Fatalf("reconnected subscriber got %d new messages, want 1", len(fresh.messages)-before)
	}
}

func TestGames(t *testing.T) {
	gm, gameID := newTestGame(t)
	if _, err := gm.MakeMove(gameID, "alice", "e4"); err != nil {
		t.Fatalf("e4: %v", err)
	}
	games := gm.Games()
	if len(games) != 1 || games[0] != (GameSummary{ID: gameID, Moves: 1}) {
		t.Fatalf("Games = %+v", games)
	}
	if !gm.GameExists(gameID) || gm.GameExists("missing") {
		t.Fatalf("GameExists is wrong")
	}
}
