package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/omarshaarawi/bigdogpool/internal/contention"
	"github.com/omarshaarawi/bigdogpool/internal/models"
)

var ErrMemberNotFound = errors.New("member not found")

type DataSource interface {
	LatestSeason(ctx context.Context) (models.Season, error)
	ListWeeks(ctx context.Context, seasonID string) ([]models.Week, error)
	GetCurrentWeek(ctx context.Context, seasonID string) (int, error)
	GetPageData(ctx context.Context, seasonID string, week int) (*models.PageData, error)
}

type Cache interface {
	SaveCurrentWeek(seasonID string, week int)
	GetCurrentWeek(seasonID string) (int, bool)
	SavePageData(seasonID string, week int, page *models.PageData)
	GetPageData(seasonID string, week int) *models.PageData
}

type PoolService struct {
	api      DataSource
	repo     Cache
	seasonID string
	opts     contention.Options
}

func NewPoolService(api DataSource, repo Cache, seasonID string, opts contention.Options) *PoolService {
	return &PoolService{api: api, repo: repo, seasonID: seasonID, opts: opts}
}

func (s *PoolService) Options() contention.Options {
	return s.opts
}

func (s *PoolService) SeasonID(ctx context.Context) (string, error) {
	if s.seasonID != "" {
		return s.seasonID, nil
	}
	season, err := s.api.LatestSeason(ctx)
	if err != nil {
		return "", fmt.Errorf("error resolving season: %w", err)
	}
	return season.ID, nil
}

// GetCurrentWeek asks the backend for the season's current week and falls
// back to the first listed week when it cannot say.
func (s *PoolService) GetCurrentWeek(ctx context.Context, seasonID string) (int, error) {
	if week, ok := s.repo.GetCurrentWeek(seasonID); ok {
		return week, nil
	}

	week, err := s.api.GetCurrentWeek(ctx, seasonID)
	if err == nil && week > 0 {
		slog.Info("Current week", "season", seasonID, "week", week)
		s.repo.SaveCurrentWeek(seasonID, week)
		return week, nil
	}
	if err != nil {
		slog.Warn("Unable to load current week, falling back to first week", "season", seasonID, "error", err)
	}

	weeks, err := s.api.ListWeeks(ctx, seasonID)
	if err != nil {
		return 0, fmt.Errorf("error fetching weeks: %w", err)
	}
	if len(weeks) == 0 {
		return 0, fmt.Errorf("season %s has no weeks", seasonID)
	}
	return weeks[0].Number, nil
}

func (s *PoolService) getPageData(ctx context.Context, seasonID string, week int) (*models.PageData, error) {
	if page := s.repo.GetPageData(seasonID, week); page != nil {
		return page, nil
	}
	page, err := s.api.GetPageData(ctx, seasonID, week)
	if err != nil {
		return nil, err
	}
	s.repo.SavePageData(seasonID, week, page)
	return page, nil
}

func (s *PoolService) resolveWeek(ctx context.Context, seasonID string, week int) (*models.PageData, error) {
	if week <= 0 {
		current, err := s.GetCurrentWeek(ctx, seasonID)
		if err != nil {
			return nil, fmt.Errorf("error fetching current week: %w", err)
		}
		week = current
	}

	page, err := s.getPageData(ctx, seasonID, week)
	if err != nil {
		return nil, fmt.Errorf("error fetching week %d: %w", week, err)
	}
	return page, nil
}

// Contenders evaluates the given week of the configured season. A week <= 0
// selects the current week.
func (s *PoolService) Contenders(ctx context.Context, week int) (models.ContentionReport, error) {
	seasonID, err := s.SeasonID(ctx)
	if err != nil {
		return models.ContentionReport{}, err
	}
	return s.SeasonContenders(ctx, seasonID, week)
}

func (s *PoolService) SeasonContenders(ctx context.Context, seasonID string, week int) (models.ContentionReport, error) {
	page, err := s.resolveWeek(ctx, seasonID, week)
	if err != nil {
		return models.ContentionReport{}, err
	}
	return EvaluatePage(ctx, page, s.opts)
}

// EvaluatePage runs the contention engine over one week of page data.
func EvaluatePage(ctx context.Context, page *models.PageData, opts contention.Options) (models.ContentionReport, error) {
	in := BuildContentionInput(page)
	alive, err := contention.ComputeContext(ctx, in, opts)
	if err != nil {
		return models.ContentionReport{}, fmt.Errorf("week %d: %w", page.ActiveWeek.Number, err)
	}

	report := models.ContentionReport{
		SeasonID:       page.Season.ID,
		Week:           page.ActiveWeek.Number,
		WeekLabel:      page.ActiveWeek.Label,
		AllowTies:      opts.AllowTies,
		RemainingGames: len(in.RemainingGames),
	}
	if page.WeekResult != nil {
		report.WinnerMemberID = page.WeekResult.WinnerMemberID
	}

	remaining := remainingPicks(in)
	seen := make(map[string]bool, len(page.Members))
	for _, m := range page.Members {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		current := in.CurrentWins[m.ID]
		report.Members = append(report.Members, models.MemberContention{
			MemberID:       m.ID,
			Name:           m.Name,
			CurrentWins:    current,
			RemainingPicks: remaining[m.ID],
			MaxWins:        current + remaining[m.ID],
			Alive:          alive[m.ID],
		})
	}

	sort.SliceStable(report.Members, func(i, j int) bool {
		if report.Members[i].CurrentWins != report.Members[j].CurrentWins {
			return report.Members[i].CurrentWins > report.Members[j].CurrentWins
		}
		return report.Members[i].Name < report.Members[j].Name
	})

	return report, nil
}

// BuildContentionInput strips a week down to what the engine needs. Final
// games grade picks into current wins; every other game is still remaining.
// A final game without a winner grades nobody.
func BuildContentionInput(page *models.PageData) contention.Input {
	in := contention.Input{
		Members:     make([]contention.Member, 0, len(page.Members)),
		CurrentWins: make(map[string]int, len(page.Members)),
	}
	for _, m := range page.Members {
		in.Members = append(in.Members, contention.Member{ID: m.ID, Name: m.Name})
	}

	for _, game := range page.Games {
		if game.Status == models.GameFinal {
			if !game.Decided() {
				continue
			}
			for _, pick := range game.Picks {
				if strings.EqualFold(pick.ChosenSide, game.Winner) {
					in.CurrentWins[pick.MemberID]++
				}
			}
			continue
		}

		remaining := contention.RemainingGame{GameKey: game.GameKey}
		for _, pick := range game.Picks {
			side, err := contention.ParseSide(pick.ChosenSide)
			if err != nil {
				slog.Warn("Skipping pick", "game", game.GameKey, "member", pick.MemberID, "error", err)
				continue
			}
			remaining.Picks = append(remaining.Picks, contention.Pick{MemberID: pick.MemberID, Side: side})
		}
		in.RemainingGames = append(in.RemainingGames, remaining)
	}

	return in
}

func remainingPicks(in contention.Input) map[string]int {
	counts := make(map[string]int)
	for _, game := range in.RemainingGames {
		picked := make(map[string]bool, len(game.Picks))
		for _, p := range game.Picks {
			if !picked[p.MemberID] {
				picked[p.MemberID] = true
				counts[p.MemberID]++
			}
		}
	}
	return counts
}
