package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"
)

var (
	ErrGameNotFound = errors.New("game not found")
	// ErrStaleHistory means another move was accepted for the same ply first.
	ErrStaleHistory = errors.New("move history changed")
)

// MoveStore keeps the ordered move list of every game. Moves are written in
// their full notation so a game can be rebuilt by replaying them.
type MoveStore interface {
	CreateGame() (string, error)
	GameExists(gameID string) bool
	// AppendMove stores notation as move number ply (0 based). It fails with
	// ErrStaleHistory unless the game currently has exactly ply moves.
	AppendMove(gameID string, ply int, notation string) error
	Moves(gameID string) ([]string, error)
	Snapshot() map[string][]string
}

type MemoryStore struct {
	games map[string][]string
	mu    sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string][]string),
	}
}

func (s *MemoryStore) CreateGame() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gameID := uuid.New().String()
	if _, exists := s.games[gameID]; exists {
		return "", errors.New("game already exists")
	}
	s.games[gameID] = []string{}
	return gameID, nil
}

func (s *MemoryStore) GameExists(gameID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.games[gameID]
	return exists
}

func (s *MemoryStore) AppendMove(gameID string, ply int, notation string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	moves, exists := s.games[gameID]
	if !exists {
		return ErrGameNotFound
	}
	if len(moves) != ply {
		return ErrStaleHistory
	}
	s.games[gameID] = append(moves, notation)
	return nil
}

func (s *MemoryStore) Moves(gameID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	moves, exists := s.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return append([]string(nil), moves...), nil
}

// Snapshot returns every game's move list as it is now. The lists only ever
// grow, so the returned slices are not affected by later appends.
func (s *MemoryStore) Snapshot() map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.games)
}
