// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/store"
	"github.com/benbeisheim/chess-backend/internal/ws"
)

var (
	ErrGameFull     = errors.New("game is full")
	ErrNotInGame    = errors.New("player not in game")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrUnknownPiece = errors.New("no piece on that square")
)

// Subscriber receives game state pushes. *websocket.Conn satisfies it.
type Subscriber interface {
	WriteJSON(v interface{}) error
}

// session is everything about a game that is not its move list: who sits
// where and who is watching.
type session struct {
	players Players
	// mu serializes moves so a game accepts one move per ply.
	mu sync.Mutex

	subscribers map[string]Subscriber // playerID -> connection
	subMu       sync.RWMutex
}

func newSession() *session {
	return &session{
		subscribers: make(map[string]Subscriber),
	}
}

type GameManager struct {
	store    store.MoveStore
	sessions map[string]*session
	mu       sync.RWMutex
}

func NewGameManager(moveStore store.MoveStore) *GameManager {
	return &GameManager{
		store:    moveStore,
		sessions: make(map[string]*session),
	}
}

// CreateGame opens a new game with the creator playing White.
func (gm *GameManager) CreateGame(playerID string) (string, error) {
	gameID, err := gm.store.CreateGame()
	if err != nil {
		return "", err
	}

	sess := newSession()
	sess.players.White = playerID

	gm.mu.Lock()
	gm.sessions[gameID] = sess
	gm.mu.Unlock()
	return gameID, nil
}

// session returns the game's session, creating an empty one for games that
// exist in the store but were not opened by this manager.
func (gm *GameManager) session(gameID string) (*session, error) {
	gm.mu.RLock()
	sess, exists := gm.sessions[gameID]
	gm.mu.RUnlock()
	if exists {
		return sess, nil
	}

	if !gm.store.GameExists(gameID) {
		return nil, store.ErrGameNotFound
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	if sess, exists := gm.sessions[gameID]; exists {
		return sess, nil
	}
	sess = newSession()
	gm.sessions[gameID] = sess
	return sess, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Army, error) {
	sess, err := gm.session(gameID)
	if err != nil {
		return model.White, err
	}

	sess.mu.Lock()
	army, err := sess.players.seat(playerID)
	sess.mu.Unlock()
	if err != nil {
		return army, err
	}

	if view, err := gm.GetGameState(gameID); err == nil {
		sess.broadcast(view)
	}
	return army, nil
}

// loadGame rebuilds the game by replaying its stored moves.
func (gm *GameManager) loadGame(gameID string) (model.Game, []string, error) {
	moves, err := gm.store.Moves(gameID)
	if err != nil {
		return model.Game{}, nil, err
	}
	game, err := model.Replay(moves...)
	if err != nil {
		return model.Game{}, nil, fmt.Errorf("replay game %s: %w", gameID, err)
	}
	return game, moves, nil
}

func (gm *GameManager) GetGameState(gameID string) (GameView, error) {
	sess, err := gm.session(gameID)
	if err != nil {
		return GameView{}, err
	}
	game, _, err := gm.loadGame(gameID)
	if err != nil {
		return GameView{}, err
	}

	sess.mu.Lock()
	players := sess.players
	sess.mu.Unlock()
	return newGameView(gameID, game, players)
}

// MakeMove plays notation for the player and stores the validated move.
func (gm *GameManager) MakeMove(gameID string, playerID string, notation string) (GameView, error) {
	sess, err := gm.session(gameID)
	if err != nil {
		return GameView{}, err
	}

	sess.mu.Lock()
	army, seated := sess.players.armyOf(playerID)
	players := sess.players
	if !seated {
		sess.mu.Unlock()
		return GameView{}, ErrNotInGame
	}

	game, moves, err := gm.loadGame(gameID)
	if err != nil {
		sess.mu.Unlock()
		return GameView{}, err
	}
	if game.Turn() != army {
		sess.mu.Unlock()
		return GameView{}, ErrNotYourTurn
	}

	next, move, err := game.Play(notation)
	if err != nil {
		sess.mu.Unlock()
		return GameView{}, err
	}
	if err := gm.store.AppendMove(gameID, len(moves), move.String()); err != nil {
		sess.mu.Unlock()
		return GameView{}, err
	}
	sess.mu.Unlock()

	log.Printf("game %s: %s played %s", gameID, army, move)

	view, err := newGameView(gameID, next, players)
	if err != nil {
		return GameView{}, err
	}
	sess.broadcast(view)
	return view, nil
}

// LegalMoves lists the legal moves of the piece on square.
func (gm *GameManager) LegalMoves(gameID string, square string) ([]string, error) {
	pos, err := model.ParsePosition(square)
	if err != nil {
		return nil, err
	}
	game, _, err := gm.loadGame(gameID)
	if err != nil {
		return nil, err
	}
	if !game.Board().IsPositionOccupied(pos) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPiece, pos)
	}

	moves, err := game.AvailableMoves(pos)
	if err != nil {
		return nil, err
	}
	notations := make([]string, 0, len(moves))
	for _, m := range moves {
		notations = append(notations, m.String())
	}
	return notations, nil
}

func (gm *GameManager) GameExists(gameID string) bool {
	return gm.store.GameExists(gameID)
}

// GameSummary is a game id with the number of moves played.
type GameSummary struct {
	ID    string `json:"id"`
	Moves int    `json:"moves"`
}

func (gm *GameManager) Games() []GameSummary {
	snapshot := gm.store.Snapshot()
	games := make([]GameSummary, 0, len(snapshot))
	for id, moves := range snapshot {
		games = append(games, GameSummary{ID: id, Moves: len(moves)})
	}
	return games
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn Subscriber) error {
	sess, err := gm.session(gameID)
	if err != nil {
		return err
	}

	sess.subMu.Lock()
	if _, exists := sess.subscribers[playerID]; exists {
		sess.subMu.Unlock()
		return fmt.Errorf("player %s is already connected", playerID)
	}
	sess.subscribers[playerID] = conn
	sess.subMu.Unlock()
	log.Printf("game %s: registered connection for player %s", gameID, playerID)

	// Send initial state
	view, err := gm.GetGameState(gameID)
	if err != nil {
		sess.drop(playerID, conn)
		return err
	}
	sess.send(playerID, conn, view)
	return nil
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	gm.mu.RLock()
	sess, exists := gm.sessions[gameID]
	gm.mu.RUnlock()
	if !exists {
		return
	}

	sess.subMu.Lock()
	delete(sess.subscribers, playerID)
	sess.subMu.Unlock()
	log.Printf("game %s: unregistered connection for player %s", gameID, playerID)
}

func (s *session) broadcast(view GameView) {
	// Copy the subscribers so no lock is held while writing
	s.subMu.RLock()
	active := make(map[string]Subscriber, len(s.subscribers))
	for playerID, conn := range s.subscribers {
		active[playerID] = conn
	}
	s.subMu.RUnlock()

	for playerID, conn := range active {
		s.send(playerID, conn, view)
	}
}

func (s *session) send(playerID string, conn Subscriber, view GameView) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, view)
	if err != nil {
		log.Printf("failed to marshal state: %v", err)
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("failed to send state to player %s: %v", playerID, err)
		s.drop(playerID, conn)
	}
}

// drop removes conn unless the player has since connected again.
func (s *session) drop(playerID string, conn Subscriber) {
	s.subMu.Lock()
	if s.subscribers[playerID] == conn {
		delete(s.subscribers, playerID)
	}
	s.subMu.Unlock()
}
