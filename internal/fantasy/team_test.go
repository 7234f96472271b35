package fantasy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartolamix/mixserver/internal/domain"
)

// memStore is an in-memory stand-in for the sqlite port.
type memStore struct {
	team  domain.SavedTeam
	saved bool
}

func (m *memStore) Load() (domain.SavedTeam, bool, error) { return m.team, m.saved, nil }
func (m *memStore) Save(t domain.SavedTeam) error {
	m.team = t
	m.saved = true
	return nil
}

func makeRoster(prices ...float64) []domain.Player {
	roster := make([]domain.Player, len(prices))
	for i, price := range prices {
		roster[i] = domain.Player{ID: uuid.New(), Price: price, LastSeriesPoints: float64(10 * (i + 1))}
	}
	return roster
}

func TestToggleRespectsCapAndBudget(t *testing.T) {
	roster := makeRoster(20, 20, 15, 10, 5, 5)
	s := NewTeamSession(roster, &memStore{})

	s.Toggle(roster[0].ID) // 20, budget 30
	s.Toggle(roster[1].ID) // 20, budget 10
	s.Toggle(roster[2].ID) // 15 > 10, rejected
	assert.Len(t, s.Team(), 2)

	s.Toggle(roster[3].ID) // 10, budget 0
	s.Toggle(roster[4].ID) // 5 > 0, rejected
	assert.Len(t, s.Team(), 3)
	assert.Equal(t, 0.0, s.Budget())

	// Selling frees budget again.
	s.Toggle(roster[0].ID)
	assert.Len(t, s.Team(), 2)
	s.Toggle(roster[4].ID)
	s.Toggle(roster[5].ID)
	assert.Len(t, s.Team(), 4)

	// Unknown ids are ignored.
	s.Toggle(uuid.New())
	assert.Len(t, s.Team(), 4)
}

func TestToggleCapFive(t *testing.T) {
	roster := makeRoster(5, 5, 5, 5, 5, 5)
	s := NewTeamSession(roster, &memStore{})
	for _, p := range roster {
		s.Toggle(p.ID)
	}
	assert.Len(t, s.Team(), MaxTeamSize)
}

func TestLoadComputesValorization(t *testing.T) {
	roster := makeRoster(12, 8)
	gone := uuid.New()
	store := &memStore{
		saved: true,
		team: domain.SavedTeam{
			Patrimony: 48,
			Players: []domain.SavedPlayer{
				{ID: roster[0].ID, Price: 10}, // now 12: +2
				{ID: roster[1].ID, Price: 9},  // now 8: -1
				{ID: gone, Price: 7},          // no longer in the roster
			},
		},
	}
	s := NewTeamSession(roster, store)
	require.NoError(t, s.Load())

	assert.Len(t, s.Team(), 2)
	assert.Equal(t, 1.0, s.Valorization())
	assert.Equal(t, 49.0, s.Patrimony())
	assert.Equal(t, 30.0, s.RoundPoints())
	assert.Equal(t, 29.0, s.Budget())
}

func TestLoadWithoutSave(t *testing.T) {
	s := NewTeamSession(makeRoster(10), &memStore{})
	require.NoError(t, s.Load())
	assert.Equal(t, InitialBudget, s.Patrimony())
	assert.Empty(t, s.Team())
}

func TestSaveRoundTrip(t *testing.T) {
	roster := makeRoster(10, 9)
	store := &memStore{}
	s := NewTeamSession(roster, store)
	s.Toggle(roster[0].ID)
	s.Toggle(roster[1].ID)
	require.NoError(t, s.Save())

	require.True(t, store.saved)
	require.Len(t, store.team.Players, 2)
	assert.Equal(t, roster[0].ID, store.team.Players[0].ID)
	assert.Equal(t, 10.0, store.team.Players[0].Price)
	assert.Equal(t, InitialBudget, store.team.Patrimony)
}
