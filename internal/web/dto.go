package web

import (
	"errors"

	"github.com/google/uuid"

	"github.com/cartolamix/mixserver/internal/domain"
)

var (
	ErrMissingPlayer = errors.New("o id do jogador é obrigatório")
	ErrBadFormat     = errors.New("formato de partida inválido")
	ErrBadSide       = errors.New("lado inválido, use CT ou TR")
	ErrMissingMap    = errors.New("o nome do mapa é obrigatório")
)

type playerIntent struct {
	PlayerID uuid.UUID `json:"playerId"`
}

func (p playerIntent) Validate() error {
	if p.PlayerID == uuid.Nil {
		return ErrMissingPlayer
	}
	return nil
}

type formatIntent struct {
	Format string `json:"format"`
}

func (f formatIntent) Validate() error {
	if !domain.MatchFormat(f.Format).Valid() {
		return ErrBadFormat
	}
	return nil
}

type mapIntent struct {
	Map string `json:"map"`
}

func (m mapIntent) Validate() error {
	if m.Map == "" {
		return ErrMissingMap
	}
	return nil
}

type sideIntent struct {
	Side string `json:"side"`
}

func (s sideIntent) Validate() error {
	if !domain.Side(s.Side).Valid() {
		return ErrBadSide
	}
	return nil
}
