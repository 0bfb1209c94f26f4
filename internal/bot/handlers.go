package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/omarshaarawi/bigdogpool/internal/contention"
	"github.com/omarshaarawi/bigdogpool/internal/service"
)

const commandTimeout = 30 * time.Second

// Reporter renders the pool reports the bot can post.
type Reporter interface {
	GetContenders(ctx context.Context) (string, error)
	GetStandings(ctx context.Context) (string, error)
	GetMemberPicks(ctx context.Context, name string) (string, error)
	GetWeekSummary(ctx context.Context) (string, error)
}

type Handler struct {
	reporter Reporter
}

func NewHandler(reporter Reporter) *Handler {
	return &Handler{reporter: reporter}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := markdownMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.TrimSpace(update.Message.CommandArguments())

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	switch command {
	case "start":
		msg.Text = "Welcome to the Big Dog Pool bot! Use /help to see available commands."
	case "help":
		msg.Text = "Available commands:\n/contenders - Who can still win this week\n/standings - Season standings\n/picks <member> - A member's picks this week\n/week - This week's games and pick split"
	case "contenders":
		h.handleContenders(ctx, &msg)
	case "standings":
		h.handleStandings(ctx, &msg)
	case "picks":
		h.handlePicks(ctx, &msg, args)
	case "week":
		h.handleWeek(ctx, &msg)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleContenders(ctx context.Context, msg *tgbotapi.MessageConfig) {
	report, err := h.reporter.GetContenders(ctx)
	switch {
	case errors.Is(err, contention.ErrTooManyGames):
		msg.Text = "Too many games left to work out contenders yet. Try again later in the week."
	case err != nil:
		msg.Text = fmt.Sprintf("Error fetching contenders: %v", err)
	default:
		msg.Text = report
	}
}

func (h *Handler) handleStandings(ctx context.Context, msg *tgbotapi.MessageConfig) {
	standings, err := h.reporter.GetStandings(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching standings: %v", err)
	} else {
		msg.Text = standings
	}
}

func (h *Handler) handlePicks(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a member name. Usage: /picks <member>"
		return
	}
	result, err := h.reporter.GetMemberPicks(ctx, args)
	switch {
	case errors.Is(err, service.ErrMemberNotFound):
		msg.Text = fmt.Sprintf("No member matching %q.", args)
	case err != nil:
		msg.Text = fmt.Sprintf("Error fetching picks: %v", err)
	default:
		msg.Text = result
	}
}

func (h *Handler) handleWeek(ctx context.Context, msg *tgbotapi.MessageConfig) {
	summary, err := h.reporter.GetWeekSummary(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching week: %v", err)
	} else {
		msg.Text = summary
	}
}
