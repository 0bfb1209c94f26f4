package bot

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func newTestBot(chatID int64) (*TelegramBot, *fakeSender) {
	out := &fakeSender{}
	return &TelegramBot{out: out, handler: NewHandler(&stubReporter{}), chatID: chatID}, out
}

func TestSendMessage(t *testing.T) {
	bot, out := newTestBot(-1001)

	require.NoError(t, bot.SendMessage("*Week 5 Contenders*"))
	require.Len(t, out.sent, 1)
	assert.Equal(t, int64(-1001), out.sent[0].ChatID)
	assert.Equal(t, tgbotapi.ModeMarkdown, out.sent[0].ParseMode)
	assert.Equal(t, "*Week 5 Contenders*", out.sent[0].Text)
}

func TestSendMessageErrors(t *testing.T) {
	bot, out := newTestBot(0)
	assert.ErrorIs(t, bot.SendMessage("hi"), ErrNoChat)
	assert.Empty(t, out.sent)

	bot, out = newTestBot(7)
	out.err = errors.New("flood control")
	assert.ErrorContains(t, bot.SendMessage("hi"), "sending to chat 7: flood control")
}

func TestServeRepliesToCommands(t *testing.T) {
	bot, out := newTestBot(-1001)

	updates := make(chan tgbotapi.Update, 3)
	updates <- command("/standings")
	updates <- tgbotapi.Update{Message: &tgbotapi.Message{Text: "nice pick", Chat: &tgbotapi.Chat{ID: 42}}}
	updates <- tgbotapi.Update{}
	close(updates)

	bot.serve(context.Background(), updates)

	require.Len(t, out.sent, 1)
	assert.Equal(t, int64(42), out.sent[0].ChatID)
	assert.Equal(t, "standings report", out.sent[0].Text)
}

func TestServeStopsWithContext(t *testing.T) {
	bot, out := newTestBot(-1001)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bot.serve(ctx, make(chan tgbotapi.Update))
	assert.Empty(t, out.sent)
}
