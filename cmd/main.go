package main

import (
	"fmt"
	"os"

	"github.com/cartolamix/mixserver/internal/config"
	"github.com/cartolamix/mixserver/internal/dataset"
	"github.com/cartolamix/mixserver/internal/fantasy"
	"github.com/cartolamix/mixserver/internal/logger"
	"github.com/cartolamix/mixserver/internal/migrate"
	"github.com/cartolamix/mixserver/internal/service"
	"github.com/cartolamix/mixserver/internal/storage/sqlite"
	"github.com/cartolamix/mixserver/internal/tgbot"
	"github.com/cartolamix/mixserver/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Server.Debug)

	feed, err := dataset.Load(cfg.Server.DatasetPath)
	if err != nil {
		return err
	}
	playerService := service.New(feed, feed.MapPool())
	log.WithField("players", len(playerService.ListPlayers())).Info("feed loaded")

	store, err := sqlite.New(cfg.Server.SqlitePath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Error("closing sqlite")
		}
	}()
	if err := migrate.Up(store.DB()); err != nil {
		return err
	}

	team := fantasy.NewTeamSession(playerService.ListPlayers(), store)
	if err := team.Load(); err != nil {
		return err
	}

	if cfg.Server.TgBotEnabled {
		bot, err := tgbot.New(playerService, cfg, log)
		if err != nil {
			return err
		}
		go bot.Run()
		defer bot.Stop()
	}

	server, err := web.New(playerService, team, cfg.Server, log)
	if err != nil {
		return err
	}
	return server.Serve()
}
