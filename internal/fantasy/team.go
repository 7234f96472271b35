// Package fantasy manages the user's own "cartola" team: a five-player
// squad bought under budget, with patrimony and valorization tracked
// against the snapshot saved through the persistence port.
package fantasy

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cartolamix/mixserver/internal/domain"
	"github.com/cartolamix/mixserver/internal/scoring"
	"github.com/cartolamix/mixserver/internal/storage"
)

const (
	// InitialBudget is the patrimony everyone starts the season with.
	InitialBudget = 50.0
	// MaxTeamSize caps the fantasy squad.
	MaxTeamSize = 5
)

// TeamSession owns the selected team state. Like the draft and veto
// sessions it is single owner; the caller serializes intents.
type TeamSession struct {
	roster map[uuid.UUID]domain.Player

	selected     []domain.Player
	patrimony    float64
	roundPoints  float64
	valorization float64

	store storage.TeamStorage
}

func NewTeamSession(roster []domain.Player, store storage.TeamStorage) *TeamSession {
	byID := make(map[uuid.UUID]domain.Player, len(roster))
	for _, p := range roster {
		byID[p.ID] = p
	}
	return &TeamSession{
		roster:    byID,
		patrimony: InitialBudget,
		store:     store,
	}
}

// Load restores the saved team. Saved ids missing from the current
// roster are dropped silently; valorization is the price drift of the
// surviving players since the save and is credited to the patrimony.
func (s *TeamSession) Load() error {
	saved, ok, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("load fantasy team: %w", err)
	}
	if !ok {
		return nil
	}

	s.selected = nil
	s.patrimony = saved.Patrimony
	s.roundPoints = 0
	s.valorization = 0
	for _, sp := range saved.Players {
		current, found := s.roster[sp.ID]
		if !found {
			continue
		}
		s.selected = append(s.selected, current)
		s.roundPoints += current.LastSeriesPoints
		s.valorization += current.Price - sp.Price
	}
	s.roundPoints = scoring.Round2(s.roundPoints)
	s.valorization = scoring.Round2(s.valorization)
	s.patrimony = scoring.Round2(s.patrimony + s.valorization)
	return nil
}

// Toggle buys or sells a player. Buying needs a free slot and enough
// budget; anything else is a silent no-op.
func (s *TeamSession) Toggle(id uuid.UUID) {
	for i := range s.selected {
		if s.selected[i].ID == id {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return
		}
	}
	p, ok := s.roster[id]
	if !ok {
		return
	}
	if len(s.selected) >= MaxTeamSize || p.Price > s.Budget() {
		return
	}
	s.selected = append(s.selected, p)
}

// Save snapshots the team and patrimony through the persistence port.
func (s *TeamSession) Save() error {
	team := domain.SavedTeam{Patrimony: s.patrimony}
	for _, p := range s.selected {
		team.Players = append(team.Players, domain.SavedPlayer{ID: p.ID, Price: p.Price})
	}
	if err := s.store.Save(team); err != nil {
		return fmt.Errorf("save fantasy team: %w", err)
	}
	return nil
}

func (s *TeamSession) Team() []domain.Player { return s.selected }
func (s *TeamSession) Patrimony() float64    { return s.patrimony }
func (s *TeamSession) RoundPoints() float64  { return s.roundPoints }
func (s *TeamSession) Valorization() float64 { return s.valorization }

// TeamValue is the current market value of the squad.
func (s *TeamSession) TeamValue() float64 {
	sum := 0.0
	for _, p := range s.selected {
		sum += p.Price
	}
	return scoring.Round2(sum)
}

// Budget is what is left to spend.
func (s *TeamSession) Budget() float64 {
	return scoring.Round2(s.patrimony - s.TeamValue())
}
