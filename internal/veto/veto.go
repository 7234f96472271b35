// Package veto implements the map ban/pick ritual that narrows the map
// pool to a final match plan. The coin-flip loser opens the sequence and
// possession strictly alternates by position, whatever the action type.
// Picks are only finalized after the opposing captain claims a starting
// side.
package veto

import (
	"errors"
	"math"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/cartolamix/mixserver/internal/domain"
)

// DefaultMapPool is the active competitive pool, in veto display order.
// The decider is always the first unprocessed map in this order.
var DefaultMapPool = []string{"Mirage", "Ancient", "Dust II", "Overpass", "Nuke", "Inferno", "Train", "Cache"}

type Action string

const (
	ActionBan      Action = "ban"
	ActionPick     Action = "pick"
	ActionFinished Action = "finished"
)

const completeDelay = 2 * time.Second

// Result is one map of the finalized match plan. PickedBy is nil for
// banned-down deciders; Side is set only after side selection.
type Result struct {
	Map          string
	PickedBy     *domain.Player
	Side         domain.Side
	SidePickedBy *domain.Player
}

// Turn pairs an action with the captain holding it.
type Turn struct {
	Action Action
	Picker domain.Player
}

// PendingSide is the open side-selection sub-state: Chooser (the
// non-picking captain) must claim CT or TR before the pick lands.
type PendingSide struct {
	Map     string
	Picker  domain.Player
	Chooser domain.Player
}

// Delayer schedules the finished-banner pacing callback.
type Delayer interface {
	After(d time.Duration, fn func())
}

type timerDelayer struct{}

func (timerDelayer) After(d time.Duration, fn func()) { time.AfterFunc(d, fn) }

// Session is the veto state machine for one match plan. Like the draft
// session it is single owner, single transition at a time.
type Session struct {
	pool     []string
	format   domain.MatchFormat
	captains [2]domain.Player
	teamA    []domain.Player
	teamB    []domain.Player
	order    []Turn

	banned    []string
	bannedSet mapset.Set[string]
	picked    []Result
	pickedSet mapset.Set[string]
	turn      int
	pending   *PendingSide

	finished   bool
	final      []Result
	delay      Delayer
	onComplete func([]Result)
}

type Option func(*Session)

// WithDelayer replaces the completion pacing timer.
func WithDelayer(d Delayer) Option {
	return func(s *Session) { s.delay = d }
}

// WithMapPool replaces the default pool.
func WithMapPool(pool []string) Option {
	return func(s *Session) { s.pool = pool }
}

// OnComplete registers the callback invoked with the ordered map result
// once the finished banner delay elapses.
func OnComplete(fn func([]Result)) Option {
	return func(s *Session) { s.onComplete = fn }
}

var (
	ErrBadFormat  = errors.New("unknown match format")
	ErrBadCaptain = errors.New("coin-flip winner is not one of the captains")
)

// New builds a veto session from a finished draft: both rosters, the two
// captains and the coin-flip winner. The loser of the flip always starts
// the veto.
func New(teamA, teamB []domain.Player, format domain.MatchFormat, captains [2]domain.Player, coinWinner domain.Player, opts ...Option) (*Session, error) {
	if !format.Valid() {
		return nil, ErrBadFormat
	}
	var starter domain.Player
	switch coinWinner.ID {
	case captains[0].ID:
		starter = captains[1]
	case captains[1].ID:
		starter = captains[0]
	default:
		return nil, ErrBadCaptain
	}

	s := &Session{
		pool:      DefaultMapPool,
		format:    format,
		captains:  captains,
		teamA:     teamA,
		teamB:     teamB,
		bannedSet: mapset.NewSet[string](),
		pickedSet: mapset.NewSet[string](),
		delay:     timerDelayer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.order = sequence(format, starter, coinWinner)
	return s, nil
}

// sequence expands a format into alternating turns: even positions
// belong to the veto starter, odd ones to the coin-flip winner.
func sequence(format domain.MatchFormat, starter, winner domain.Player) []Turn {
	var actions []Action
	switch format {
	case domain.FormatMD1:
		actions = []Action{ActionBan, ActionBan, ActionBan, ActionBan, ActionBan, ActionBan}
	case domain.FormatMD2:
		actions = []Action{ActionBan, ActionBan, ActionBan, ActionBan, ActionPick, ActionPick}
	case domain.FormatMD3:
		actions = []Action{ActionBan, ActionBan, ActionPick, ActionPick, ActionBan, ActionBan}
	case domain.FormatMD5:
		actions = []Action{ActionBan, ActionBan, ActionPick, ActionPick, ActionPick, ActionPick}
	}
	turns := make([]Turn, len(actions))
	for i, a := range actions {
		picker := starter
		if i%2 == 1 {
			picker = winner
		}
		turns[i] = Turn{Action: a, Picker: picker}
	}
	return turns
}

// Current reports the open turn, or a finished pseudo-turn once the
// sequence is exhausted.
func (s *Session) Current() Turn {
	if s.turn >= len(s.order) {
		return Turn{Action: ActionFinished}
	}
	return s.order[s.turn]
}

// ClickMap processes a map click for the current turn. Unavailable maps,
// clicks while a side selection is pending and clicks after the sequence
// ended are all silently ignored.
func (s *Session) ClickMap(name string) {
	if s.finished || s.pending != nil {
		return
	}
	if !s.available(name) {
		return
	}
	cur := s.Current()
	switch cur.Action {
	case ActionBan:
		s.banned = append(s.banned, name)
		s.bannedSet.Add(name)
		s.advance()
	case ActionPick:
		chooser := s.captains[0]
		if chooser.ID == cur.Picker.ID {
			chooser = s.captains[1]
		}
		s.pending = &PendingSide{Map: name, Picker: cur.Picker, Chooser: chooser}
	}
}

// ChooseSide resolves the pending side selection and finalizes the pick.
func (s *Session) ChooseSide(side domain.Side) {
	if s.pending == nil || !side.Valid() {
		return
	}
	picker := s.pending.Picker
	chooser := s.pending.Chooser
	s.picked = append(s.picked, Result{
		Map:          s.pending.Map,
		PickedBy:     &picker,
		Side:         side,
		SidePickedBy: &chooser,
	})
	s.pickedSet.Add(s.pending.Map)
	s.pending = nil
	s.advance()
}

func (s *Session) advance() {
	s.turn++
	if s.turn < len(s.order) {
		return
	}
	s.finished = true
	s.final = append([]Result{}, s.picked...)
	if s.format != domain.FormatMD2 {
		// The first unprocessed map of the pool goes in as the decider,
		// without a side assignment.
		for _, m := range s.pool {
			if s.available(m) {
				s.final = append(s.final, Result{Map: m})
				break
			}
		}
	}
	if s.onComplete != nil {
		results := s.final
		s.delay.After(completeDelay, func() {
			s.onComplete(results)
		})
	}
}

func (s *Session) available(name string) bool {
	if s.bannedSet.Contains(name) || s.pickedSet.Contains(name) {
		return false
	}
	for _, m := range s.pool {
		if m == name {
			return true
		}
	}
	return false
}

func (s *Session) Finished() bool         { return s.finished }
func (s *Session) Banned() []string       { return s.banned }
func (s *Session) Picked() []Result       { return s.picked }
func (s *Session) Pending() *PendingSide  { return s.pending }
func (s *Session) MapPool() []string      { return s.pool }
func (s *Session) TeamA() []domain.Player { return s.teamA }
func (s *Session) TeamB() []domain.Player { return s.teamB }

// Results is the finalized match plan; nil until the veto finishes.
func (s *Session) Results() []Result {
	if !s.finished {
		return nil
	}
	return s.final
}

// TeamWinRate averages the known per-map win rates of a roster for a
// map, rounding to a whole percentage. Players without a record on the
// map do not drag the average down.
func TeamWinRate(team []domain.Player, mapName string) int {
	sum, n := 0, 0
	for _, p := range team {
		if rate, ok := p.WinRateByMap[mapName]; ok {
			sum += rate
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}
