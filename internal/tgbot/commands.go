package tgbot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cartolamix/mixserver/internal/service"
)

type Command interface {
	Run(args string) (string, error)
	Help() string
}

type Commands struct {
	list map[string]Command
}

func NewCommands(ps *service.PlayerService) *Commands {
	hc := &HelpCommand{}
	uc := Commands{
		list: map[string]Command{
			"help":  hc,
			"start": hc,
			"top": &TopCommand{
				playerService: ps,
			},
			"gtop": &GlickoTopCommand{
				playerService: ps,
			},
			"player": &PlayerCommand{
				playerService: ps,
			},
			"maps": &MapsCommand{
				playerService: ps,
			},
		},
	}
	hc.commands = uc.list
	return &uc
}

func (uc *Commands) Run(cmd string, args string) (string, error) {
	for s, command := range uc.list {
		if cmd == s {
			return command.Run(args)
		}
	}
	return "", ErrBadRequest
}

// TopCommand lists the most expensive players on the market.
type TopCommand struct {
	playerService *service.PlayerService
}

func (c *TopCommand) Run(_ string) (string, error) {
	players := c.playerService.ListPlayers()
	var buffer strings.Builder
	for i, p := range players {
		if i > 9 {
			break
		}
		buffer.WriteString(strconv.Itoa(i + 1))
		buffer.WriteString(". ")
		buffer.WriteString(p.Name)
		buffer.WriteString(" (C$ ")
		buffer.WriteString(strconv.FormatFloat(p.Price, 'f', 2, 64))
		buffer.WriteString(")\n")
	}
	return buffer.String(), nil
}

func (c *TopCommand) Help() string {
	return "Os 10 jogadores mais caros do mercado"
}

// GlickoTopCommand lists the rating leaderboard.
type GlickoTopCommand struct {
	playerService *service.PlayerService
}

func (c *GlickoTopCommand) Run(_ string) (string, error) {
	entries := c.playerService.Leaderboard()
	var buffer strings.Builder
	for i, e := range entries {
		if i > 9 {
			break
		}
		fmt.Fprintf(&buffer, "%d. %s (%d ±%d)\n", i+1, e.PlayerName, e.Rating, e.Deviation)
	}
	return buffer.String(), nil
}

func (c *GlickoTopCommand) Help() string {
	return "Ranking glicko-2 do grupo"
}

// PlayerCommand shows one player's card.
type PlayerCommand struct {
	playerService *service.PlayerService
}

func (c *PlayerCommand) Run(args string) (string, error) {
	name := strings.TrimSpace(args)
	if name == "" {
		return "", fmt.Errorf("uso: /player <nome>")
	}
	p, ok := c.playerService.GetByName(name)
	if !ok {
		return "", fmt.Errorf("jogador %q não encontrado", name)
	}
	return fmt.Sprintf(
		"%s (%s)\nOverall %d · C$ %.2f\nK/D %.2f · HS %d%% · Vitórias %d%%\nÚltima série: %.2f pts",
		p.Name, p.Team, p.Overall, p.Price, p.KDRatio, p.AvgHeadshotPct, p.WinRate, p.LastSeriesPoints,
	), nil
}

func (c *PlayerCommand) Help() string {
	return "Ficha de um jogador: /player <nome>"
}

// MapsCommand shows the best specialist of each pool map.
type MapsCommand struct {
	playerService *service.PlayerService
}

func (c *MapsCommand) Run(_ string) (string, error) {
	var buffer strings.Builder
	for _, ranking := range c.playerService.MapSpecialists() {
		if len(ranking.Entries) == 0 {
			continue
		}
		best := ranking.Entries[0]
		fmt.Fprintf(&buffer, "%s: %s (%d%% em %d jogos)\n",
			ranking.Map, best.Player.Name, best.WinRate, best.MapsPlayed)
	}
	if buffer.Len() == 0 {
		return "ainda não há especialistas", nil
	}
	return buffer.String(), nil
}

func (c *MapsCommand) Help() string {
	return "O especialista de cada mapa do pool"
}

// HelpCommand lists every command.
type HelpCommand struct {
	commands map[string]Command
}

func (c *HelpCommand) Run(_ string) (string, error) {
	var buffer strings.Builder
	for name, cmd := range c.commands {
		if name == "start" {
			continue
		}
		buffer.WriteString("/")
		buffer.WriteString(name)
		buffer.WriteString(" — ")
		buffer.WriteString(cmd.Help())
		buffer.WriteString("\n")
	}
	return buffer.String(), nil
}

func (c *HelpCommand) Help() string {
	return "Esta lista"
}
