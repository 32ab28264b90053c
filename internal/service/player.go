package service

import (
	"github.com/benbeisheim/chess-backend/internal/model"
)

// Players holds the player id seated on each side. An empty id is a free
// seat.
type Players struct {
	White string `json:"white"`
	Black string `json:"black"`
}

// armyOf returns the side the player sits on.
func (p Players) armyOf(playerID string) (model.Army, bool) {
	switch {
	case playerID == "":
		return model.White, false
	case p.White == playerID:
		return model.White, true
	case p.Black == playerID:
		return model.Black, true
	}
	return model.White, false
}

// seat puts the player on the first free side.
func (p *Players) seat(playerID string) (model.Army, error) {
	if army, ok := p.armyOf(playerID); ok {
		return army, nil
	}
	if p.White == "" {
		p.White = playerID
		return model.White, nil
	}
	if p.Black == "" {
		p.Black = playerID
		return model.Black, nil
	}
	return model.White, ErrGameFull
}
