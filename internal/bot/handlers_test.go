package bot

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"

	"github.com/omarshaarawi/bigdogpool/internal/contention"
	"github.com/omarshaarawi/bigdogpool/internal/service"
)

type stubReporter struct {
	err      error
	lastName string
}

func (s *stubReporter) GetContenders(ctx context.Context) (string, error) {
	return "contenders report", s.err
}

func (s *stubReporter) GetStandings(ctx context.Context) (string, error) {
	return "standings report", s.err
}

func (s *stubReporter) GetMemberPicks(ctx context.Context, name string) (string, error) {
	s.lastName = name
	return "picks for " + name, s.err
}

func (s *stubReporter) GetWeekSummary(ctx context.Context) (string, error) {
	return "week report", s.err
}

func command(text string) tgbotapi.Update {
	length := len(text)
	if i := strings.IndexByte(text, ' '); i >= 0 {
		length = i
	}
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text:     text,
			Chat:     &tgbotapi.Chat{ID: 42},
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
		},
	}
}

func TestHandleCommand(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "/contenders", want: "contenders report"},
		{text: "/Standings", want: "standings report"},
		{text: "/picks Dani", want: "picks for Dani"},
		{text: "/week", want: "week report"},
		{text: "/picks", want: "Please provide a member name. Usage: /picks <member>"},
		{text: "/scores", want: "Unknown command. Use /help to see available commands."},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			h := NewHandler(&stubReporter{})
			msg := h.HandleCommand(context.Background(), command(tt.text))

			assert.Equal(t, int64(42), msg.ChatID)
			assert.Equal(t, "Markdown", msg.ParseMode)
			assert.Equal(t, tt.want, msg.Text)
		})
	}
}

func TestHandleCommandErrors(t *testing.T) {
	h := NewHandler(&stubReporter{err: fmt.Errorf("week 5: %w", contention.ErrTooManyGames)})
	msg := h.HandleCommand(context.Background(), command("/contenders"))
	assert.Contains(t, msg.Text, "Too many games left")

	h = NewHandler(&stubReporter{err: fmt.Errorf("%w: %q", service.ErrMemberNotFound, "zed")})
	msg = h.HandleCommand(context.Background(), command("/picks zed"))
	assert.Equal(t, `No member matching "zed".`, msg.Text)

	h = NewHandler(&stubReporter{err: fmt.Errorf("backend down")})
	msg = h.HandleCommand(context.Background(), command("/standings"))
	assert.Equal(t, "Error fetching standings: backend down", msg.Text)
}
