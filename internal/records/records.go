// Package records computes the hall-of-fame cards and the per-map
// specialist rankings shown on the community pages.
package records

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/cartolamix/mixserver/internal/domain"
)

// minMapsForAverages keeps one-map wonders out of per-average records.
const minMapsForAverages = 5

// minMapsForSpecialist is the floor for the per-map rankings.
const minMapsForSpecialist = 3

// Record is one hall-of-fame card.
type Record struct {
	Title      string
	Value      string
	PlayerID   uuid.UUID
	PlayerName string
	Details    string
	Positive   bool
}

type playerMatch struct {
	player domain.Player
	match  domain.Match
}

// HallOfFame computes the record cards over the full roster. Banned and
// stand-in players keep their match records but are excluded from the
// roster-wide overall and per-average cards.
func HallOfFame(players []domain.Player) []Record {
	var all []playerMatch
	for _, p := range players {
		for _, s := range p.SeriesHistory {
			for _, m := range s.Matches {
				all = append(all, playerMatch{player: p, match: m})
			}
		}
	}
	var active, eligible []domain.Player
	for _, p := range players {
		if p.Status != domain.StatusActive {
			continue
		}
		active = append(active, p)
		if p.MapsPlayed() >= minMapsForAverages {
			eligible = append(eligible, p)
		}
	}
	if len(all) == 0 || len(active) == 0 {
		return nil
	}

	var out []Record

	top := all[0]
	for _, pm := range all[1:] {
		if pm.match.Points > top.match.Points {
			top = pm
		}
	}
	out = append(out, Record{
		Title:      "Maior Pontuação (Partida)",
		Value:      fmt.Sprintf("%.2f", top.match.Points),
		PlayerID:   top.player.ID,
		PlayerName: top.player.Name,
		Details:    "no mapa " + top.match.Map,
		Positive:   true,
	})

	bestSeries := seriesKillsRecord(players)
	if bestSeries != nil {
		out = append(out, *bestSeries)
	}

	deaths := all[0]
	for _, pm := range all[1:] {
		if pm.match.Deaths > deaths.match.Deaths {
			deaths = pm
		}
	}
	out = append(out, Record{
		Title:      "Mais Mortes (Partida)",
		Value:      fmt.Sprintf("%d", deaths.match.Deaths),
		PlayerID:   deaths.player.ID,
		PlayerName: deaths.player.Name,
		Details:    "no mapa " + deaths.match.Map,
	})

	var tourist *playerMatch
	for i := range all {
		if !all[i].match.Won {
			continue
		}
		if tourist == nil || all[i].match.Deaths > tourist.match.Deaths {
			tourist = &all[i]
		}
	}
	if tourist != nil {
		out = append(out, Record{
			Title:      "Turista (Mais Mortes em Vitória)",
			Value:      fmt.Sprintf("%d", tourist.match.Deaths),
			PlayerID:   tourist.player.ID,
			PlayerName: tourist.player.Name,
			Details:    "no mapa " + tourist.match.Map,
		})
	}

	best := active[0]
	worst := active[0]
	for _, p := range active[1:] {
		if p.Overall > best.Overall {
			best = p
		}
		if p.Overall < worst.Overall {
			worst = p
		}
	}
	out = append(out,
		Record{Title: "Maior Overall", Value: fmt.Sprintf("%d", best.Overall), PlayerID: best.ID, PlayerName: best.Name, Positive: true},
		Record{Title: "Lanterna (Menor Overall)", Value: fmt.Sprintf("%d", worst.Overall), PlayerID: worst.ID, PlayerName: worst.Name},
	)

	if len(eligible) > 0 {
		kd := eligible[0]
		hs := eligible[0]
		for _, p := range eligible[1:] {
			if p.KDRatio > kd.KDRatio {
				kd = p
			}
			if p.AvgHeadshotPct > hs.AvgHeadshotPct {
				hs = p
			}
		}
		out = append(out,
			Record{Title: "Melhor K/D", Value: fmt.Sprintf("%.2f", kd.KDRatio), PlayerID: kd.ID, PlayerName: kd.Name, Positive: true},
			Record{Title: "Rei do Headshot", Value: fmt.Sprintf("%d%%", hs.AvgHeadshotPct), PlayerID: hs.ID, PlayerName: hs.Name, Positive: true},
		)

		bestKPM, leastKPM := killsPerMapRecords(eligible)
		out = append(out, bestKPM, leastKPM)
	}

	return out
}

func seriesKillsRecord(players []domain.Player) *Record {
	var rec *Record
	bestKills := -1
	for _, p := range players {
		for _, s := range p.SeriesHistory {
			kills := 0
			for _, m := range s.Matches {
				kills += m.Kills
			}
			if kills > bestKills {
				bestKills = kills
				rec = &Record{
					Title:      "Mais Kills (Série)",
					Value:      fmt.Sprintf("%d", kills),
					PlayerID:   p.ID,
					PlayerName: p.Name,
					Details:    s.Title,
					Positive:   true,
				}
			}
		}
	}
	return rec
}

func killsPerMapRecords(eligible []domain.Player) (best, least Record) {
	kpm := func(p domain.Player) float64 {
		return float64(p.TotalKills) / float64(p.MapsPlayed())
	}
	bp, lp := eligible[0], eligible[0]
	for _, p := range eligible[1:] {
		if kpm(p) > kpm(bp) {
			bp = p
		}
		if kpm(p) < kpm(lp) {
			lp = p
		}
	}
	best = Record{
		Title:      "Mais Kills por Mapa",
		Value:      fmt.Sprintf("%.1f", kpm(bp)),
		PlayerID:   bp.ID,
		PlayerName: bp.Name,
		Positive:   true,
	}
	least = Record{
		Title:      "Menos Kills por Mapa",
		Value:      fmt.Sprintf("%.1f", kpm(lp)),
		PlayerID:   lp.ID,
		PlayerName: lp.Name,
	}
	return best, least
}

// MapEntry is one player's standing on one map.
type MapEntry struct {
	Player     domain.Player
	WinRate    int
	MapsPlayed int
}

// MapRanking ranks the specialists of a single map.
type MapRanking struct {
	Map     string
	Entries []MapEntry
}

// MapSpecialists ranks, for each pool map, the active players with at
// least minMapsForSpecialist games on it, best win rate first.
func MapSpecialists(players []domain.Player, pool []string) []MapRanking {
	rankings := make([]MapRanking, 0, len(pool))
	for _, mapName := range pool {
		var entries []MapEntry
		for _, p := range players {
			if p.Status == domain.StatusBanned || p.Status == domain.StatusStandIn {
				continue
			}
			played := 0
			for _, s := range p.SeriesHistory {
				for _, m := range s.Matches {
					if m.Map == mapName {
						played++
					}
				}
			}
			if played < minMapsForSpecialist {
				continue
			}
			entries = append(entries, MapEntry{
				Player:     p,
				WinRate:    p.WinRateByMap[mapName],
				MapsPlayed: played,
			})
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].WinRate > entries[j].WinRate
		})
		rankings = append(rankings, MapRanking{Map: mapName, Entries: entries})
	}
	return rankings
}
