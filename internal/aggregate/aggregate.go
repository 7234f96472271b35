// Package aggregate turns a player's raw box scores into the canonical
// Player entity: career totals, per-map win rates, price and rating
// timeline. The whole transformation is pure, re-running it on the same
// feed yields the same Player.
package aggregate

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/cartolamix/mixserver/internal/domain"
	"github.com/cartolamix/mixserver/internal/normalize"
	"github.com/cartolamix/mixserver/internal/scoring"
)

// RawMatch is one player's performance on one map, exactly as authored.
type RawMatch struct {
	Map         string `toml:"map"`
	Kills       int    `toml:"kills"`
	Deaths      int    `toml:"deaths"`
	Assists     int    `toml:"assists"`
	HeadshotPct int    `toml:"hs"`
	Won         bool   `toml:"won"`
	TeamScore   int    `toml:"team_score"`
	EnemyScore  int    `toml:"enemy_score"`
	Tie         bool   `toml:"tie,omitempty"`
}

// RawSeries groups the maps of one occasion. The title must carry a
// trailing "DD/MM/YY" token after a " - " separator to be sortable.
type RawSeries struct {
	Title   string     `toml:"title"`
	Matches []RawMatch `toml:"matches"`
}

// Identity is the manually curated part of a player record.
type Identity struct {
	Name     string
	PhotoURL string
	Team     string
	Overall  int
	Status   domain.Status
}

// Snapshot is one dated round of manual overall revisions, keyed by
// player name. Players absent from a snapshot kept their previous value.
type Snapshot struct {
	Label    string
	Overalls map[string]int
}

const (
	basePrice = 4.0
	priceMin  = 5.0
	priceMax  = 20.0
)

// BuildPlayer runs the full pipeline for one player. Malformed input
// never fails: unparseable dates sort as equal, zero denominators fall
// back to defined defaults.
func BuildPlayer(id Identity, series []RawSeries, snapshots []Snapshot) domain.Player {
	sorted := make([]RawSeries, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool {
		return dateKey(sorted[i].Title) < dateKey(sorted[j].Title)
	})

	var (
		totalKills   int
		totalDeaths  int
		totalAssists int
		hsWeighted   float64
		wins         int
		nonTie       int
	)
	for _, s := range sorted {
		for _, m := range s.Matches {
			totalKills += m.Kills
			totalDeaths += m.Deaths
			totalAssists += m.Assists
			hsWeighted += float64(m.Kills) * float64(m.HeadshotPct) / 100
			if !m.Tie {
				nonTie++
				if m.Won {
					wins++
				}
			}
		}
	}

	avgHS := 0
	if totalKills > 0 {
		avgHS = roundInt(hsWeighted / float64(totalKills) * 100)
	}
	winRate := 0
	if nonTie > 0 {
		winRate = roundInt(float64(wins) / float64(nonTie) * 100)
	}
	kd := float64(totalKills)
	if totalDeaths > 0 {
		kd = scoring.Round2(float64(totalKills) / float64(totalDeaths))
	}

	history := buildSeriesHistory(sorted)

	lastPoints := 0.0
	if len(history) > 0 {
		lastPoints = averagePoints(history[len(history)-1])
	}

	status := id.Status
	if status == "" {
		status = domain.StatusActive
	}

	// Display order: newest series first.
	reverseSeries(history)

	return domain.Player{
		ID:               PlayerID(id.Name),
		Name:             id.Name,
		PhotoURL:         id.PhotoURL,
		Team:             id.Team,
		Overall:          id.Overall,
		Status:           status,
		Price:            price(id.Overall, lastPoints, kd),
		TotalKills:       totalKills,
		TotalDeaths:      totalDeaths,
		TotalAssists:     totalAssists,
		KDRatio:          kd,
		AvgHeadshotPct:   avgHS,
		WinRate:          winRate,
		LastSeriesPoints: lastPoints,
		WinRateByMap:     winRateByMap(sorted),
		SeriesHistory:    history,
		RatingHistory:    ratingHistory(id.Name, snapshots),
	}
}

// PlayerID derives a stable id from the normalized name so that a saved
// fantasy team survives process restarts.
func PlayerID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(normalize.Name(name)))
}

// dateKey extracts the trailing DD/MM/YY token and rewrites it as
// 20YYMMDD so plain string comparison orders chronologically. Titles
// without the token all map to the empty key and keep authoring order.
func dateKey(title string) string {
	parts := strings.Split(title, " - ")
	token := strings.TrimSpace(parts[len(parts)-1])
	seg := strings.Split(token, "/")
	if len(seg) != 3 {
		return ""
	}
	return "20" + seg[2] + seg[1] + seg[0]
}

func buildSeriesHistory(sorted []RawSeries) []domain.Series {
	history := make([]domain.Series, 0, len(sorted))
	for si, s := range sorted {
		matches := make([]domain.Match, 0, len(s.Matches))
		for mi, m := range s.Matches {
			bonus := scoring.WinBonus(m.Won, m.TeamScore, m.EnemyScore)
			matches = append(matches, domain.Match{
				ID:          fmt.Sprintf("s%d-m%d", si, mi),
				Map:         m.Map,
				TeamScore:   m.TeamScore,
				EnemyScore:  m.EnemyScore,
				Kills:       m.Kills,
				Deaths:      m.Deaths,
				Assists:     m.Assists,
				HeadshotPct: m.HeadshotPct,
				Points:      scoring.Points(m.Kills, m.Deaths, m.Assists, m.HeadshotPct, bonus),
				Won:         m.Won,
				Tie:         m.Tie,
			})
		}
		// Newest map of the series shown first.
		reverseMatches(matches)
		history = append(history, domain.Series{
			ID:      fmt.Sprintf("series%d", si),
			Title:   s.Title,
			Matches: matches,
		})
	}
	return history
}

func averagePoints(s domain.Series) float64 {
	if len(s.Matches) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range s.Matches {
		sum += m.Points
	}
	return scoring.Round2(sum / float64(len(s.Matches)))
}

func winRateByMap(sorted []RawSeries) map[string]int {
	type tally struct {
		played int
		won    int
	}
	perMap := make(map[string]*tally)
	for _, s := range sorted {
		for _, m := range s.Matches {
			t, ok := perMap[m.Map]
			if !ok {
				t = &tally{}
				perMap[m.Map] = t
			}
			if m.Tie {
				continue
			}
			t.played++
			if m.Won {
				t.won++
			}
		}
	}
	rates := make(map[string]int, len(perMap))
	for name, t := range perMap {
		rate := 0
		if t.played > 0 {
			rate = roundInt(float64(t.won) / float64(t.played) * 100)
		}
		rates[name] = rate
	}
	return rates
}

func price(overall int, lastPoints, kd float64) float64 {
	overallBonus := 0.0
	if overall > 75 {
		overallBonus = float64(overall-75) * 0.25
	}
	p := basePrice + overallBonus + lastPoints*0.2 + (kd-1.0)*1.5
	if p < priceMin {
		p = priceMin
	}
	if p > priceMax {
		p = priceMax
	}
	return scoring.Round2(p)
}

// ratingHistory keeps only the snapshots where the player's overall
// actually moved, collapsing consecutive duplicates.
func ratingHistory(name string, snapshots []Snapshot) []domain.RatingPoint {
	var history []domain.RatingPoint
	for _, snap := range snapshots {
		overall, ok := snap.Overalls[name]
		if !ok {
			continue
		}
		if len(history) > 0 && history[len(history)-1].Overall == overall {
			continue
		}
		history = append(history, domain.RatingPoint{Label: snap.Label, Overall: overall})
	}
	return history
}

func reverseMatches(m []domain.Match) {
	for i, j := 0, len(m)-1; i < j; i, j = i+1, j-1 {
		m[i], m[j] = m[j], m[i]
	}
}

func reverseSeries(s []domain.Series) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
