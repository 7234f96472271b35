package domain

import (
	"github.com/google/uuid"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusBanned  Status = "banned"
	StatusStandIn Status = "stand-in"
)

// Match is one played map within a series, as seen by a single player.
type Match struct {
	ID          string
	Map         string
	TeamScore   int
	EnemyScore  int
	Kills       int
	Deaths      int
	Assists     int
	HeadshotPct int
	Points      float64
	Won         bool
	Tie         bool
}

// Series is a set of maps played consecutively between the same two ad-hoc
// teams on one occasion. Matches are ordered most recent first.
type Series struct {
	ID      string
	Title   string
	Matches []Match
}

// RatingPoint is one overall snapshot in a player's rating timeline.
// Only points where the value actually changed are kept.
type RatingPoint struct {
	Label   string
	Overall int
}

type Player struct {
	ID               uuid.UUID
	Name             string
	PhotoURL         string
	Team             string
	Overall          int
	Status           Status
	Price            float64
	TotalKills       int
	TotalDeaths      int
	TotalAssists     int
	KDRatio          float64
	AvgHeadshotPct   int
	WinRate          int
	LastSeriesPoints float64
	WinRateByMap     map[string]int
	SeriesHistory    []Series
	RatingHistory    []RatingPoint
}

// MapsPlayed counts every map in the player's history, ties included.
func (p Player) MapsPlayed() int {
	n := 0
	for _, s := range p.SeriesHistory {
		n += len(s.Matches)
	}
	return n
}

// SavedPlayer is the per-player slice of the persisted fantasy team. The
// price is the price at save time, used for valorization on reload.
type SavedPlayer struct {
	ID    uuid.UUID
	Price float64
}

// SavedTeam is the record exchanged with the persistence port.
type SavedTeam struct {
	Players   []SavedPlayer
	Patrimony float64
}
