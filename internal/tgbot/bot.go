// Package tgbot is the group-chat companion: a few read-only commands
// over the same player service the web pages use.
package tgbot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/cartolamix/mixserver/internal/config"
	"github.com/cartolamix/mixserver/internal/service"
)

type Bot struct {
	bot *tgbotapi.BotAPI
	log *logrus.Entry

	// cancel func to stop the bot
	cancel func()

	commands *Commands
}

var ErrBadRequest = errors.New("comando desconhecido, tente /help")

func New(ps *service.PlayerService, cfg config.Config, log *logrus.Logger) (Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TgBot.TelegramApiToken)
	if err != nil {
		return Bot{}, fmt.Errorf("env TELEGRAM_APITOKEN: %w", err)
	}

	bot.Debug = cfg.Server.Debug
	_, err = bot.GetMe()
	if err != nil {
		return Bot{}, err
	}

	return Bot{
		bot:      bot,
		log:      log.WithField("name", "tg_bot"),
		commands: NewCommands(ps),
	}, nil
}

func (b *Bot) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			b.handleMessage(update)
		}
	}
}

func (b *Bot) handleMessage(update tgbotapi.Update) {
	if update.Message == nil { // ignore any non-Message updates
		return
	}
	log := b.log.WithField("text", update.Message.Text)

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	text, err := b.commands.Run(update.Message.Command(), update.Message.CommandArguments())
	if err != nil {
		text = err.Error()
	}
	msg.Text = text
	if _, err := b.bot.Send(msg); err != nil {
		log.WithError(err).Error("send error")
	}
}

func (b *Bot) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
}
