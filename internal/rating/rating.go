// Package rating derives a computed skill rating from the reconstructed
// match log, complementing the manually curated overall. Every match is
// treated as a round-robin of pairwise results: each winner scores a win
// against each loser.
package rating

import (
	"math"
	"sort"

	glicko2 "github.com/zelenin/go-glicko2"

	"github.com/cartolamix/mixserver/internal/domain"
	"github.com/cartolamix/mixserver/internal/history"
)

const (
	initialR     = 1500
	initialRd    = 350
	initialSigma = 0.06
)

// Entry is one row of the computed leaderboard.
type Entry struct {
	PlayerName string
	Rating     int
	Deviation  int
	Matches    int
}

// Leaderboard rates everyone who appears in the match log, strongest
// first. Players without a single reconstructed match are left out.
func Leaderboard(players []domain.Player) []Entry {
	log := history.Build(players)

	period := glicko2.NewRatingPeriod()
	rated := make(map[string]*glicko2.Player)
	matchCount := make(map[string]int)
	get := func(name string) *glicko2.Player {
		p, ok := rated[name]
		if !ok {
			p = glicko2.NewPlayer(glicko2.NewRating(initialR, initialRd, initialSigma))
			rated[name] = p
		}
		return p
	}

	// The log is newest first; feed the period chronologically.
	for i := len(log) - 1; i >= 0; i-- {
		for _, match := range log[i].Matches {
			for _, w := range match.Winners {
				matchCount[w.PlayerName]++
			}
			for _, l := range match.Losers {
				matchCount[l.PlayerName]++
			}
			for _, w := range match.Winners {
				for _, l := range match.Losers {
					period.AddMatch(get(w.PlayerName), get(l.PlayerName), glicko2.MATCH_RESULT_WIN)
				}
			}
		}
	}
	period.Calculate()

	entries := make([]Entry, 0, len(rated))
	for name, p := range rated {
		r := p.Rating()
		entries = append(entries, Entry{
			PlayerName: name,
			Rating:     int(math.Round(r.R())),
			Deviation:  int(math.Round(r.Rd())),
			Matches:    matchCount[name],
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Rating != entries[j].Rating {
			return entries[i].Rating > entries[j].Rating
		}
		return entries[i].PlayerName < entries[j].PlayerName
	})
	return entries
}
