package roster

import (
	"testing"

	"github.com/cartolamix/mixserver/internal/aggregate"
	"github.com/cartolamix/mixserver/internal/domain"
)

type fakeSource struct {
	ids    []aggregate.Identity
	series map[string][]aggregate.RawSeries
}

func (f fakeSource) Identities() []aggregate.Identity { return f.ids }
func (f fakeSource) SeriesFor(name string) []aggregate.RawSeries {
	return f.series[name]
}
func (f fakeSource) Snapshots() []aggregate.Snapshot { return nil }

func TestBuildOrdering(t *testing.T) {
	strong := []aggregate.RawSeries{
		{Title: "Serie 1 - 15/10/25", Matches: []aggregate.RawMatch{
			{Map: "Mirage", Kills: 30, Deaths: 5, Assists: 5, Won: true, TeamScore: 13, EnemyScore: 2},
		}},
	}
	src := fakeSource{
		ids: []aggregate.Identity{
			{Name: "banido", Overall: 95, Status: domain.StatusBanned},
			{Name: "fraco", Overall: 60},
			{Name: "forte", Overall: 95},
		},
		series: map[string][]aggregate.RawSeries{
			"banido": strong,
			"forte":  strong,
		},
	}

	players := Build(src)
	if len(players) != 3 {
		t.Fatalf("got %d players, want 3", len(players))
	}
	if players[len(players)-1].Name != "banido" {
		t.Errorf("banned player must sort last, got order %v", names(players))
	}
	if players[0].Name != "forte" {
		t.Errorf("highest price first among non-banned, got order %v", names(players))
	}
	if players[0].Price < players[1].Price {
		t.Errorf("prices not descending: %v", players)
	}
}

func names(players []domain.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}
