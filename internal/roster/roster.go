package roster

import (
	"sort"

	"github.com/cartolamix/mixserver/internal/aggregate"
	"github.com/cartolamix/mixserver/internal/domain"
)

// Source is the raw input feed: supplied once at startup, never mutated.
type Source interface {
	Identities() []aggregate.Identity
	SeriesFor(name string) []aggregate.RawSeries
	Snapshots() []aggregate.Snapshot
}

// Build runs the aggregator for every known identity and orders the
// result for display: banned players last, then richest first.
func Build(src Source) []domain.Player {
	snapshots := src.Snapshots()
	identities := src.Identities()
	players := make([]domain.Player, 0, len(identities))
	for _, id := range identities {
		players = append(players, aggregate.BuildPlayer(id, src.SeriesFor(id.Name), snapshots))
	}
	sort.SliceStable(players, func(i, j int) bool {
		bi, bj := players[i].Status == domain.StatusBanned, players[j].Status == domain.StatusBanned
		if bi != bj {
			return !bi
		}
		return players[i].Price > players[j].Price
	})
	return players
}
