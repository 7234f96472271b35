package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartolamix/mixserver/internal/aggregate"
	"github.com/cartolamix/mixserver/internal/domain"
)

type fakeSource struct {
	ids    []aggregate.Identity
	series map[string][]aggregate.RawSeries
}

func (f fakeSource) Identities() []aggregate.Identity           { return f.ids }
func (f fakeSource) SeriesFor(name string) []aggregate.RawSeries { return f.series[name] }
func (f fakeSource) Snapshots() []aggregate.Snapshot             { return nil }

func testSource() fakeSource {
	win := aggregate.RawMatch{
		Map: "Mirage", Kills: 20, Deaths: 10, Assists: 4, HeadshotPct: 50,
		Won: true, TeamScore: 16, EnemyScore: 9,
	}
	loss := aggregate.RawMatch{
		Map: "Mirage", Kills: 10, Deaths: 20, Assists: 2, HeadshotPct: 40,
		Won: false, TeamScore: 9, EnemyScore: 16,
	}
	return fakeSource{
		ids: []aggregate.Identity{
			{Name: "Alfa", Overall: 80, Status: domain.StatusActive},
			{Name: "Beta", Overall: 75, Status: domain.StatusActive},
			{Name: "Gama", Overall: 70, Status: domain.StatusBanned},
		},
		series: map[string][]aggregate.RawSeries{
			"Alfa": {{Title: "Mix - 01/02/24", Matches: []aggregate.RawMatch{win}}},
			"Beta": {{Title: "Mix - 01/02/24", Matches: []aggregate.RawMatch{loss}}},
			"Gama": {{Title: "Mix - 01/02/24", Matches: []aggregate.RawMatch{loss}}},
		},
	}
}

func TestServicePipeline(t *testing.T) {
	s := New(testSource(), nil)

	players := s.ListPlayers()
	require.Len(t, players, 3)
	assert.Equal(t, domain.StatusBanned, players[2].Status, "banned players sort last")

	// Cache lookups work by normalized name and by id.
	alfa, ok := s.GetByName("ALFA")
	require.True(t, ok)
	got, ok := s.Get(alfa.ID)
	require.True(t, ok)
	assert.Equal(t, alfa.Name, got.Name)

	assert.Len(t, s.DraftPool(), 2)

	series := s.MatchHistory()
	require.Len(t, series, 1)
	require.Len(t, series[0].Matches, 1)
	assert.Equal(t, "Mirage", series[0].Matches[0].Map)

	assert.NotEmpty(t, s.HallOfFame())
	assert.Len(t, s.MapPool(), 8)
}

func TestServiceCustomMapPool(t *testing.T) {
	s := New(testSource(), []string{"Mirage", "Nuke"})
	assert.Equal(t, []string{"Mirage", "Nuke"}, s.MapPool())
}
