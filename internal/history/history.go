// Package history reconstructs the shared match log from the players'
// independently recorded series. There is no series identity object in
// the feed: two players saw "the same" map when their series titles
// match and their (map, winning score, losing score) triples agree.
package history

import (
	"sort"
	"strings"

	"github.com/cartolamix/mixserver/internal/domain"
)

// Performance is one player's line in a reconstructed match.
type Performance struct {
	PlayerName string
	PhotoURL   string
	Kills      int
	Deaths     int
	Assists    int
	Points     float64
	MVP        bool
}

// Match is one reconstructed map with both sides' lines.
type Match struct {
	ID           string
	Map          string
	WinningScore int
	LosingScore  int
	Winners      []Performance
	Losers       []Performance
}

// Series groups reconstructed matches under a shared title.
type Series struct {
	Title   string
	Matches []Match
}

// Build merges every player's view of every series into one log. Matches
// within a series are keyed by (map, winning score, losing score) — two
// distinct maps with identical scores in one series would merge, a known
// limit of the authoring format. Output: series newest first, matches in
// map-name order, both team lists sorted by points with the single best
// performance marked MVP.
func Build(players []domain.Player) []Series {
	index := make(map[string]*Series)
	var order []string

	for _, player := range players {
		for _, series := range player.SeriesHistory {
			hs, ok := index[series.Title]
			if !ok {
				hs = &Series{Title: series.Title}
				index[series.Title] = hs
				order = append(order, series.Title)
			}
			for _, match := range series.Matches {
				hm := findMatch(hs, match)
				perf := Performance{
					PlayerName: player.Name,
					PhotoURL:   player.PhotoURL,
					Kills:      match.Kills,
					Deaths:     match.Deaths,
					Assists:    match.Assists,
					Points:     match.Points,
				}
				if match.Won {
					hm.Winners = appendUnique(hm.Winners, perf)
				} else {
					hm.Losers = appendUnique(hm.Losers, perf)
				}
			}
		}
	}

	result := make([]Series, 0, len(order))
	for _, title := range order {
		s := index[title]
		for i := range s.Matches {
			markMVP(&s.Matches[i])
		}
		sort.SliceStable(s.Matches, func(i, j int) bool {
			return s.Matches[i].Map < s.Matches[j].Map
		})
		result = append(result, *s)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return dateKey(result[i].Title) > dateKey(result[j].Title)
	})
	return result
}

func findMatch(s *Series, m domain.Match) *Match {
	winning, losing := m.TeamScore, m.EnemyScore
	if losing > winning {
		winning, losing = losing, winning
	}
	for i := range s.Matches {
		hm := &s.Matches[i]
		if hm.Map == m.Map && hm.WinningScore == winning && hm.LosingScore == losing {
			return hm
		}
	}
	s.Matches = append(s.Matches, Match{
		ID:           m.ID,
		Map:          m.Map,
		WinningScore: winning,
		LosingScore:  losing,
	})
	return &s.Matches[len(s.Matches)-1]
}

func appendUnique(list []Performance, p Performance) []Performance {
	for _, existing := range list {
		if existing.PlayerName == p.PlayerName {
			return list
		}
	}
	return append(list, p)
}

func markMVP(m *Match) {
	sort.SliceStable(m.Winners, func(i, j int) bool { return m.Winners[i].Points > m.Winners[j].Points })
	sort.SliceStable(m.Losers, func(i, j int) bool { return m.Losers[i].Points > m.Losers[j].Points })

	var best *Performance
	for i := range m.Winners {
		if best == nil || m.Winners[i].Points > best.Points {
			best = &m.Winners[i]
		}
	}
	for i := range m.Losers {
		if best == nil || m.Losers[i].Points > best.Points {
			best = &m.Losers[i]
		}
	}
	if best != nil {
		best.MVP = true
	}
}

func dateKey(title string) string {
	parts := strings.Split(title, " - ")
	token := strings.TrimSpace(parts[len(parts)-1])
	seg := strings.Split(token, "/")
	if len(seg) != 3 {
		return ""
	}
	return "20" + seg[2] + seg[1] + seg[0]
}
