// Package service wires the aggregation pipeline into the read API the
// web and bot layers consume. The feed is immutable, so everything is
// computed once at construction and served from memory afterwards.
package service

import (
	"github.com/google/uuid"

	"github.com/cartolamix/mixserver/internal/cache/mem"
	"github.com/cartolamix/mixserver/internal/domain"
	"github.com/cartolamix/mixserver/internal/history"
	"github.com/cartolamix/mixserver/internal/rating"
	"github.com/cartolamix/mixserver/internal/records"
	"github.com/cartolamix/mixserver/internal/roster"
	"github.com/cartolamix/mixserver/internal/veto"
)

type PlayerService struct {
	players     []domain.Player
	cache       *mem.Cache
	series      []history.Series
	hallOfFame  []records.Record
	specialists []records.MapRanking
	leaderboard []rating.Entry
	mapPool     []string
}

// New runs the full pipeline over the feed. pool overrides the default
// competitive map pool when non-empty.
func New(src roster.Source, pool []string) *PlayerService {
	if len(pool) == 0 {
		pool = veto.DefaultMapPool
	}
	players := roster.Build(src)
	cache := mem.New()
	cache.Update(players)
	return &PlayerService{
		players:     players,
		cache:       cache,
		series:      history.Build(players),
		hallOfFame:  records.HallOfFame(players),
		specialists: records.MapSpecialists(players, pool),
		leaderboard: rating.Leaderboard(players),
		mapPool:     pool,
	}
}

// ListPlayers returns the roster ordered for the market page: banned
// players last, then by price descending.
func (s *PlayerService) ListPlayers() []domain.Player { return s.players }

// DraftPool is the roster minus players a pickup game cannot use.
func (s *PlayerService) DraftPool() []domain.Player {
	out := make([]domain.Player, 0, len(s.players))
	for _, p := range s.players {
		if p.Status == domain.StatusActive {
			out = append(out, p)
		}
	}
	return out
}

func (s *PlayerService) GetByName(name string) (domain.Player, bool) {
	return s.cache.GetPlayerByName(name)
}

func (s *PlayerService) Get(id uuid.UUID) (domain.Player, bool) {
	return s.cache.GetPlayerByID(id)
}

// MatchHistory returns the reconstructed series, newest first.
func (s *PlayerService) MatchHistory() []history.Series { return s.series }

func (s *PlayerService) HallOfFame() []records.Record { return s.hallOfFame }

func (s *PlayerService) MapSpecialists() []records.MapRanking { return s.specialists }

// Leaderboard is the glicko-2 ranking derived from the reconstructed
// match results.
func (s *PlayerService) Leaderboard() []rating.Entry { return s.leaderboard }

func (s *PlayerService) MapPool() []string { return s.mapPool }
