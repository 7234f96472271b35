package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/cartolamix/mixserver/internal/domain"
	"github.com/cartolamix/mixserver/internal/draft"
	"github.com/cartolamix/mixserver/internal/veto"
)

type playerJSON struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	PhotoURL         string    `json:"photoUrl,omitempty"`
	Overall          int       `json:"overall"`
	Price            float64   `json:"price"`
	Status           string    `json:"status"`
	LastSeriesPoints float64   `json:"lastSeriesPoints"`
}

func toPlayerJSON(p domain.Player) playerJSON {
	return playerJSON{
		ID:               p.ID,
		Name:             p.Name,
		PhotoURL:         p.PhotoURL,
		Overall:          p.Overall,
		Price:            p.Price,
		Status:           string(p.Status),
		LastSeriesPoints: p.LastSeriesPoints,
	}
}

func toPlayerList(players []domain.Player) []playerJSON {
	out := make([]playerJSON, 0, len(players))
	for _, p := range players {
		out = append(out, toPlayerJSON(p))
	}
	return out
}

type draftStateJSON struct {
	Step          draft.Step   `json:"step"`
	Format        string       `json:"format,omitempty"`
	Flipping      bool         `json:"flipping"`
	Eligible      []playerJSON `json:"eligible"`
	Pool          []playerJSON `json:"pool"`
	Captains      []playerJSON `json:"captains"`
	CoinWinner    *playerJSON  `json:"coinWinner,omitempty"`
	TeamA         []playerJSON `json:"teamA"`
	TeamB         []playerJSON `json:"teamB"`
	Remaining     []playerJSON `json:"remaining"`
	CurrentPicker *playerJSON  `json:"currentPicker,omitempty"`
}

// draftState snapshots the session. Callers hold s.mu.
func (s *Server) draftState() draftStateJSON {
	d := s.draft
	state := draftStateJSON{
		Step:      d.Step(),
		Format:    string(d.Format()),
		Flipping:  d.Flipping(),
		Eligible:  toPlayerList(d.Eligible()),
		Pool:      toPlayerList(d.Pool()),
		Captains:  toPlayerList(d.Captains()),
		TeamA:     toPlayerList(d.TeamA()),
		TeamB:     toPlayerList(d.TeamB()),
		Remaining: toPlayerList(d.Remaining()),
	}
	if w := d.CoinWinner(); w != nil {
		pj := toPlayerJSON(*w)
		state.CoinWinner = &pj
	}
	if p := d.CurrentPicker(); p != nil {
		pj := toPlayerJSON(*p)
		state.CurrentPicker = &pj
	}
	return state
}

func (s *Server) handleDraftState(ctx *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ctx.JSON(s.draftState())
}

func (s *Server) handleDraftFormat(ctx *fiber.Ctx) error {
	var req formatIntent
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, err)
	}
	if err := req.Validate(); err != nil {
		return badRequest(ctx, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.ChooseFormat(domain.MatchFormat(req.Format))
	return ctx.JSON(s.draftState())
}

// handleDraftConfirm advances whichever confirmation the current step is
// waiting on. Out-of-step confirms are no-ops, like everywhere else in
// the session.
func (s *Server) handleDraftConfirm(ctx *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.draft.Step() {
	case draft.StepFormatSelection:
		s.draft.ConfirmFormat()
	case draft.StepPlayerSelection:
		s.draft.ConfirmPool()
	case draft.StepCaptainSelection:
		s.draft.ConfirmCaptains()
	}
	return ctx.JSON(s.draftState())
}

func (s *Server) handleDraftToggle(ctx *fiber.Ctx) error {
	var req playerIntent
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, err)
	}
	if err := req.Validate(); err != nil {
		return badRequest(ctx, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.TogglePlayer(req.PlayerID)
	return ctx.JSON(s.draftState())
}

func (s *Server) handleDraftCaptain(ctx *fiber.Ctx) error {
	var req playerIntent
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, err)
	}
	if err := req.Validate(); err != nil {
		return badRequest(ctx, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.ToggleCaptain(req.PlayerID)
	return ctx.JSON(s.draftState())
}

func (s *Server) handleDraftFlip(ctx *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.FlipCoin()
	return ctx.JSON(s.draftState())
}

func (s *Server) handleDraftStart(ctx *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.StartDraft()
	return ctx.JSON(s.draftState())
}

func (s *Server) handleDraftPick(ctx *fiber.Ctx) error {
	var req playerIntent
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, err)
	}
	if err := req.Validate(); err != nil {
		return badRequest(ctx, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Pick(req.PlayerID)
	return ctx.JSON(s.draftState())
}

func (s *Server) handleDraftReset(ctx *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Reset()
	s.veto = nil
	return ctx.JSON(s.draftState())
}

type vetoResultJSON struct {
	Map          string  `json:"map"`
	PickedBy     *string `json:"pickedBy,omitempty"`
	Side         string  `json:"side,omitempty"`
	SidePickedBy *string `json:"sidePickedBy,omitempty"`
}

type vetoStateJSON struct {
	Active   bool             `json:"active"`
	Finished bool             `json:"finished"`
	MapPool  []string         `json:"mapPool"`
	Banned   []string         `json:"banned"`
	Results  []vetoResultJSON `json:"results"`
	Pending  *struct {
		Map     string `json:"map"`
		Picker  string `json:"picker"`
		Chooser string `json:"chooser"`
	} `json:"pending,omitempty"`
	Current *struct {
		Action string `json:"action"`
		Picker string `json:"picker"`
	} `json:"current,omitempty"`
	WinRatesA map[string]int `json:"winRatesA"`
	WinRatesB map[string]int `json:"winRatesB"`
}

func (s *Server) vetoState() vetoStateJSON {
	if s.veto == nil {
		return vetoStateJSON{}
	}
	v := s.veto
	state := vetoStateJSON{
		Active:    true,
		Finished:  v.Finished(),
		MapPool:   v.MapPool(),
		Banned:    v.Banned(),
		WinRatesA: make(map[string]int, len(v.MapPool())),
		WinRatesB: make(map[string]int, len(v.MapPool())),
	}
	for _, name := range v.MapPool() {
		state.WinRatesA[name] = veto.TeamWinRate(v.TeamA(), name)
		state.WinRatesB[name] = veto.TeamWinRate(v.TeamB(), name)
	}
	for _, r := range v.Results() {
		rj := vetoResultJSON{Map: r.Map, Side: string(r.Side)}
		if r.PickedBy != nil {
			name := r.PickedBy.Name
			rj.PickedBy = &name
		}
		if r.SidePickedBy != nil {
			name := r.SidePickedBy.Name
			rj.SidePickedBy = &name
		}
		state.Results = append(state.Results, rj)
	}
	if p := v.Pending(); p != nil {
		state.Pending = &struct {
			Map     string `json:"map"`
			Picker  string `json:"picker"`
			Chooser string `json:"chooser"`
		}{Map: p.Map, Picker: p.Picker.Name, Chooser: p.Chooser.Name}
	} else if !v.Finished() {
		cur := v.Current()
		state.Current = &struct {
			Action string `json:"action"`
			Picker string `json:"picker"`
		}{Action: string(cur.Action), Picker: cur.Picker.Name}
	}
	return state
}

func (s *Server) handleVetoState(ctx *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ctx.JSON(s.vetoState())
}

// handleVetoStart spins up the veto from a finished draft: teams,
// captains and coin result all come from the draft summary.
func (s *Server) handleVetoStart(ctx *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft.Step() != draft.StepSummary {
		return badRequest(ctx, veto.ErrBadCaptain)
	}
	captains := s.draft.Captains()
	winner := s.draft.CoinWinner()
	if len(captains) != 2 || winner == nil {
		return badRequest(ctx, veto.ErrBadCaptain)
	}
	v, err := veto.New(
		s.draft.TeamA(),
		s.draft.TeamB(),
		s.draft.Format(),
		[2]domain.Player{captains[0], captains[1]},
		*winner,
		veto.WithMapPool(s.playerService.MapPool()),
		veto.WithDelayer(s.locked()),
		veto.OnComplete(func(results []veto.Result) {
			s.log.WithField("maps", len(results)).Info("map veto finished")
		}),
	)
	if err != nil {
		return badRequest(ctx, err)
	}
	s.veto = v
	return ctx.JSON(s.vetoState())
}

func (s *Server) handleVetoClick(ctx *fiber.Ctx) error {
	var req mapIntent
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, err)
	}
	if err := req.Validate(); err != nil {
		return badRequest(ctx, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.veto == nil {
		return fiber.ErrNotFound
	}
	s.veto.ClickMap(req.Map)
	return ctx.JSON(s.vetoState())
}

func (s *Server) handleVetoSide(ctx *fiber.Ctx) error {
	var req sideIntent
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, err)
	}
	if err := req.Validate(); err != nil {
		return badRequest(ctx, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.veto == nil {
		return fiber.ErrNotFound
	}
	s.veto.ChooseSide(domain.Side(req.Side))
	return ctx.JSON(s.vetoState())
}

type teamStateJSON struct {
	Team         []playerJSON `json:"team"`
	Patrimony    float64      `json:"patrimony"`
	RoundPoints  float64      `json:"roundPoints"`
	Valorization float64      `json:"valorization"`
	TeamValue    float64      `json:"teamValue"`
	Budget       float64      `json:"budget"`
}

func (s *Server) teamState() teamStateJSON {
	return teamStateJSON{
		Team:         toPlayerList(s.team.Team()),
		Patrimony:    s.team.Patrimony(),
		RoundPoints:  s.team.RoundPoints(),
		Valorization: s.team.Valorization(),
		TeamValue:    s.team.TeamValue(),
		Budget:       s.team.Budget(),
	}
}

func (s *Server) handleTeamState(ctx *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ctx.JSON(s.teamState())
}

func (s *Server) handleTeamToggle(ctx *fiber.Ctx) error {
	var req playerIntent
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, err)
	}
	if err := req.Validate(); err != nil {
		return badRequest(ctx, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.team.Toggle(req.PlayerID)
	return ctx.JSON(s.teamState())
}

func (s *Server) handleTeamSave(ctx *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.team.Save(); err != nil {
		s.log.WithError(err).Error("save fantasy team")
		return fiber.ErrInternalServerError
	}
	return ctx.JSON(s.teamState())
}

func badRequest(ctx *fiber.Ctx, err error) error {
	ctx.Status(fiber.StatusBadRequest)
	return ctx.JSON(fiber.Map{"error": err.Error()})
}
