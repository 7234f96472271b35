package web

import (
	"io/fs"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	embedded "github.com/cartolamix/mixserver"
	"github.com/cartolamix/mixserver/internal/config"
	"github.com/cartolamix/mixserver/internal/draft"
	"github.com/cartolamix/mixserver/internal/fantasy"
	"github.com/cartolamix/mixserver/internal/service"
	"github.com/cartolamix/mixserver/internal/veto"
	"github.com/cartolamix/mixserver/internal/web/webpath"
)

type Server struct {
	playerService *service.PlayerService
	app           *fiber.App
	cfg           config.Server
	log           *logrus.Logger

	// One shared session of each kind, like the single screen the group
	// gathers around. All access goes through mu, including the timer
	// callbacks the sessions schedule.
	mu    sync.Mutex
	draft *draft.Session
	veto  *veto.Session
	team  *fantasy.TeamSession
}

func New(ps *service.PlayerService, team *fantasy.TeamSession, cfg config.Server, log *logrus.Logger) (*Server, error) {
	server := Server{
		playerService: ps,
		cfg:           cfg,
		log:           log,
		team:          team,
	}
	server.draft = draft.New(ps.ListPlayers(), draft.WithDelayer(server.locked()))

	fsFS, err := fs.Sub(embedded.Views, "views")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(fsFS), ".html")
	engine.Reload(cfg.Debug)
	engine.Debug(cfg.Debug)
	engine.AddFunc("FormatMoney", formatMoney)

	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Get(webpath.Home, func(ctx *fiber.Ctx) error {
		return ctx.Redirect(webpath.Api)
	})

	app.Get(webpath.ApiHome, server.handleMarket)
	app.Get(webpath.ApiHistory, server.handleHistory)
	app.Get(webpath.ApiRatings, server.handleRatings)
	app.Get(webpath.ApiRecords, server.handleRecords)
	app.Get(webpath.ApiMaps, server.handleMaps)
	app.Get(webpath.ApiPlayer, server.handlePlayerInfo)
	app.Get(webpath.ApiDraft, server.handleDraftPage)
	app.Get(webpath.ApiVeto, server.handleVetoPage)
	app.Get(webpath.ApiTeam, server.handleTeamPage)

	app.Get(webpath.ApiDraftState, server.handleDraftState)
	app.Post(webpath.ApiDraftFormat, server.handleDraftFormat)
	app.Post(webpath.ApiDraftConfirm, server.handleDraftConfirm)
	app.Post(webpath.ApiDraftToggle, server.handleDraftToggle)
	app.Post(webpath.ApiDraftCaptain, server.handleDraftCaptain)
	app.Post(webpath.ApiDraftFlip, server.handleDraftFlip)
	app.Post(webpath.ApiDraftStart, server.handleDraftStart)
	app.Post(webpath.ApiDraftPick, server.handleDraftPick)
	app.Post(webpath.ApiDraftReset, server.handleDraftReset)

	app.Get(webpath.ApiVetoState, server.handleVetoState)
	app.Post(webpath.ApiVetoStart, server.handleVetoStart)
	app.Post(webpath.ApiVetoClick, server.handleVetoClick)
	app.Post(webpath.ApiVetoSide, server.handleVetoSide)

	app.Get(webpath.ApiTeamState, server.handleTeamState)
	app.Post(webpath.ApiTeamToggle, server.handleTeamToggle)
	app.Post(webpath.ApiTeamSave, server.handleTeamSave)

	server.app = app
	return &server, nil
}

func (s *Server) Serve() error {
	return s.app.Listen(s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port))
}

// lockedDelayer runs scheduled session callbacks under the server mutex
// so they never race with request handlers.
type lockedDelayer struct {
	s *Server
}

func (d lockedDelayer) After(dur time.Duration, fn func()) {
	time.AfterFunc(dur, func() {
		d.s.mu.Lock()
		defer d.s.mu.Unlock()
		fn()
	})
}

func (s *Server) locked() lockedDelayer { return lockedDelayer{s: s} }

func (s *Server) handleMarket(ctx *fiber.Ctx) error {
	return ctx.Render("index", newData("Mercado").
		With("Button", "market").
		With("Players", s.playerService.ListPlayers()), "layouts/main")
}

func (s *Server) handleHistory(ctx *fiber.Ctx) error {
	return ctx.Render("history", newData("Histórico de Partidas").
		With("Button", "history").
		With("Series", s.playerService.MatchHistory()), "layouts/main")
}

func (s *Server) handleRatings(ctx *fiber.Ctx) error {
	return ctx.Render("ratings", newData("Ranking Glicko").
		With("Button", "ratings").
		With("Entries", s.playerService.Leaderboard()), "layouts/main")
}

func (s *Server) handleRecords(ctx *fiber.Ctx) error {
	return ctx.Render("records", newData("Hall da Fama").
		With("Button", "records").
		With("Records", s.playerService.HallOfFame()), "layouts/main")
}

func (s *Server) handleMaps(ctx *fiber.Ctx) error {
	return ctx.Render("maps", newData("Especialistas por Mapa").
		With("Button", "maps").
		With("Rankings", s.playerService.MapSpecialists()), "layouts/main")
}

func (s *Server) handlePlayerInfo(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}
	player, ok := s.playerService.Get(id)
	if !ok {
		return fiber.ErrNotFound
	}
	return ctx.Render("playerCard", newData(player.Name).
		With("Player", player), "layouts/main")
}

func (s *Server) handleDraftPage(ctx *fiber.Ctx) error {
	return ctx.Render("draft", newData("Draft de Times").
		With("Button", "draft"), "layouts/main")
}

func (s *Server) handleVetoPage(ctx *fiber.Ctx) error {
	return ctx.Render("veto", newData("Veto de Mapas").
		With("Button", "veto"), "layouts/main")
}

func (s *Server) handleTeamPage(ctx *fiber.Ctx) error {
	return ctx.Render("team", newData("Meu Time").
		With("Button", "team").
		With("Players", s.playerService.ListPlayers()), "layouts/main")
}

func formatMoney(v float64) string {
	return "C$ " + strconv.FormatFloat(v, 'f', 2, 64)
}
