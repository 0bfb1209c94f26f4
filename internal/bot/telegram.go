package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const pollTimeout = 60

var ErrNoChat = errors.New("pool chat ID not set")

// sender is the slice of the Bot API the pool bot posts through.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramBot struct {
	api     *tgbotapi.BotAPI
	out     sender
	handler *Handler
	chatID  int64
}

func NewTelegramBot(token string, chatID int64, reporter Reporter) (*TelegramBot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}

	return &TelegramBot{
		api:     api,
		out:     api,
		handler: NewHandler(reporter),
		chatID:  chatID,
	}, nil
}

// Start long-polls for commands until ctx is done.
func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Polling for pool commands", "username", t.api.Self.UserName)
	poll := tgbotapi.NewUpdate(0)
	poll.Timeout = pollTimeout

	updates := t.api.GetUpdatesChan(poll)
	defer t.api.StopReceivingUpdates()

	t.serve(ctx, updates)
	return nil
}

func (t *TelegramBot) serve(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			slog.Info("Pool command", "command", update.Message.Command(), "chat", update.Message.Chat.ID)
			_ = t.send(t.handler.HandleCommand(ctx, update))
		}
	}
}

// SendMessage posts a scheduled report to the pool chat.
func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		slog.Error("Cannot post report", "error", ErrNoChat)
		return ErrNoChat
	}
	return t.send(markdownMessage(t.chatID, text))
}

func (t *TelegramBot) send(msg tgbotapi.MessageConfig) error {
	if _, err := t.out.Send(msg); err != nil {
		slog.Error("Error sending message", "chat", msg.ChatID, "error", err)
		return fmt.Errorf("sending to chat %d: %w", msg.ChatID, err)
	}
	return nil
}

func markdownMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	return msg
}
