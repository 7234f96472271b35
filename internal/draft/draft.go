// Package draft implements the team-draft ritual: pick a 10-player pool,
// choose two captains, flip a coin and alternate snake picks until both
// rosters hold five players. One Session is one draft; it is driven by
// UI intents and never returns errors — illegal actions are ignored,
// mirroring disabled affordances in the interface.
package draft

import (
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"

	"github.com/cartolamix/mixserver/internal/domain"
)

type Step string

const (
	StepFormatSelection  Step = "FORMAT_SELECTION"
	StepPlayerSelection  Step = "PLAYER_SELECTION"
	StepCaptainSelection Step = "CAPTAIN_SELECTION"
	StepCoinFlip         Step = "COIN_FLIP"
	StepDrafting         Step = "DRAFTING"
	StepSummary          Step = "SUMMARY"
)

const (
	// PoolSize is the exact number of players a mix needs.
	PoolSize = 10
	// TeamSize is captain plus four picks.
	TeamSize = 5

	coinFlipDelay = 1500 * time.Millisecond
)

// Session is the draft state machine. It is not goroutine safe: the
// caller owns it and serializes intents, one transition at a time.
type Session struct {
	step     Step
	format   domain.MatchFormat
	eligible []domain.Player
	byID     map[uuid.UUID]domain.Player

	pool     []domain.Player
	poolIDs  mapset.Set[uuid.UUID]
	captains [2]*domain.Player

	teamA   []domain.Player
	teamB   []domain.Player
	taken   mapset.Set[uuid.UUID]
	pickIdx int

	winner   *domain.Player
	flipping bool
	flipGen  int

	flip  CoinFlipper
	delay Delayer
}

type Option func(*Session)

// WithFlipper replaces the coin-flip randomness source.
func WithFlipper(f CoinFlipper) Option {
	return func(s *Session) { s.flip = f }
}

// WithDelayer replaces the pacing timer.
func WithDelayer(d Delayer) Option {
	return func(s *Session) { s.delay = d }
}

// New builds a session over the roster. Banned and stand-in players are
// not eligible for the pool.
func New(players []domain.Player, opts ...Option) *Session {
	s := &Session{
		flip:  newRandFlipper(),
		delay: timerDelayer{},
	}
	for _, p := range players {
		if p.Status == domain.StatusBanned || p.Status == domain.StatusStandIn {
			continue
		}
		s.eligible = append(s.eligible, p)
	}
	s.byID = make(map[uuid.UUID]domain.Player, len(s.eligible))
	for _, p := range s.eligible {
		s.byID[p.ID] = p
	}
	for _, opt := range opts {
		opt(s)
	}
	s.toInitial()
	return s
}

func (s *Session) toInitial() {
	s.step = StepFormatSelection
	s.format = domain.FormatMD1
	s.pool = nil
	s.poolIDs = mapset.NewSet[uuid.UUID]()
	s.captains = [2]*domain.Player{}
	s.teamA = nil
	s.teamB = nil
	s.taken = mapset.NewSet[uuid.UUID]()
	s.pickIdx = 0
	s.winner = nil
	s.flipping = false
}

// Reset restores every field to its initial value at once. Pending
// coin-flip timers become stale and are dropped when they fire.
func (s *Session) Reset() {
	s.flipGen++
	s.toInitial()
}

// ChooseFormat stores the series format while the format step is open.
func (s *Session) ChooseFormat(f domain.MatchFormat) {
	if s.step != StepFormatSelection || !f.Valid() {
		return
	}
	s.format = f
}

// ConfirmFormat advances to pool selection.
func (s *Session) ConfirmFormat() {
	if s.step != StepFormatSelection {
		return
	}
	s.step = StepPlayerSelection
}

// TogglePlayer adds an eligible player to the pool or removes them from
// it. Once the pool holds PoolSize players further additions are
// ignored.
func (s *Session) TogglePlayer(id uuid.UUID) {
	if s.step != StepPlayerSelection {
		return
	}
	p, ok := s.byID[id]
	if !ok {
		return
	}
	if s.poolIDs.Contains(id) {
		s.poolIDs.Remove(id)
		for i := range s.pool {
			if s.pool[i].ID == id {
				s.pool = append(s.pool[:i], s.pool[i+1:]...)
				break
			}
		}
		return
	}
	if len(s.pool) >= PoolSize {
		return
	}
	s.pool = append(s.pool, p)
	s.poolIDs.Add(id)
}

// ConfirmPool advances once the pool holds exactly PoolSize players.
func (s *Session) ConfirmPool() {
	if s.step != StepPlayerSelection || len(s.pool) != PoolSize {
		return
	}
	s.step = StepCaptainSelection
}

// ToggleCaptain marks or unmarks a pool player as captain. A third
// selection is ignored while both slots are filled.
func (s *Session) ToggleCaptain(id uuid.UUID) {
	if s.step != StepCaptainSelection || !s.poolIDs.Contains(id) {
		return
	}
	for i, c := range s.captains {
		if c != nil && c.ID == id {
			s.captains[i] = nil
			return
		}
	}
	p := s.byID[id]
	for i, c := range s.captains {
		if c == nil {
			s.captains[i] = &p
			return
		}
	}
}

// ConfirmCaptains advances once exactly two captains are chosen.
func (s *Session) ConfirmCaptains() {
	if s.step != StepCaptainSelection || s.captains[0] == nil || s.captains[1] == nil {
		return
	}
	s.step = StepCoinFlip
}

// FlipCoin draws the first-pick captain behind the reveal delay. The
// flip is one shot: once resolved it cannot be re-rolled within the
// session.
func (s *Session) FlipCoin() {
	if s.step != StepCoinFlip || s.flipping || s.winner != nil {
		return
	}
	s.flipping = true
	gen := s.flipGen
	s.delay.After(coinFlipDelay, func() {
		if gen != s.flipGen {
			// Session was reset while the coin was spinning.
			return
		}
		if s.flip.Flip() {
			s.winner = s.captains[0]
		} else {
			s.winner = s.captains[1]
		}
		s.flipping = false
	})
}

// StartDraft seeds both captains into their own rosters and opens the
// picking phase.
func (s *Session) StartDraft() {
	if s.step != StepCoinFlip || s.winner == nil {
		return
	}
	s.teamA = []domain.Player{*s.captains[0]}
	s.teamB = []domain.Player{*s.captains[1]}
	s.taken.Add(s.captains[0].ID)
	s.taken.Add(s.captains[1].ID)
	s.pickIdx = 0
	s.step = StepDrafting
}

// Pick assigns a remaining pool player to the team whose captain holds
// the current turn, then advances the snake order.
func (s *Session) Pick(id uuid.UUID) {
	if s.step != StepDrafting {
		return
	}
	order := s.pickOrder()
	if s.pickIdx >= len(order) {
		return
	}
	if !s.poolIDs.Contains(id) || s.taken.Contains(id) {
		return
	}
	p := s.byID[id]
	picker := order[s.pickIdx]
	if picker.ID == s.captains[0].ID {
		s.teamA = append(s.teamA, p)
	} else {
		s.teamB = append(s.teamB, p)
	}
	s.taken.Add(id)
	s.pickIdx++
	if s.pickIdx >= len(order) {
		s.step = StepSummary
	}
}

// pickOrder is the 8-pick snake derived from the coin flip: winner,
// loser, loser, winner, winner, loser, loser, winner.
func (s *Session) pickOrder() []domain.Player {
	if s.winner == nil || s.captains[0] == nil || s.captains[1] == nil {
		return nil
	}
	w := *s.winner
	l := *s.captains[0]
	if l.ID == w.ID {
		l = *s.captains[1]
	}
	return []domain.Player{w, l, l, w, w, l, l, w}
}

func (s *Session) Step() Step                 { return s.step }
func (s *Session) Format() domain.MatchFormat { return s.format }
func (s *Session) Eligible() []domain.Player  { return s.eligible }
func (s *Session) Pool() []domain.Player      { return s.pool }
func (s *Session) TeamA() []domain.Player     { return s.teamA }
func (s *Session) TeamB() []domain.Player     { return s.teamB }
func (s *Session) Flipping() bool             { return s.flipping }

// Captains returns the chosen captains in slot order, nil slots elided.
func (s *Session) Captains() []domain.Player {
	var out []domain.Player
	for _, c := range s.captains {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out
}

func (s *Session) CoinWinner() *domain.Player { return s.winner }

// Remaining lists pool players not yet drafted, in pool order.
func (s *Session) Remaining() []domain.Player {
	var out []domain.Player
	for _, p := range s.pool {
		if !s.taken.Contains(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

// CurrentPicker is the captain on turn during DRAFTING, nil elsewhere.
func (s *Session) CurrentPicker() *domain.Player {
	if s.step != StepDrafting {
		return nil
	}
	order := s.pickOrder()
	if s.pickIdx >= len(order) {
		return nil
	}
	p := order[s.pickIdx]
	return &p
}
