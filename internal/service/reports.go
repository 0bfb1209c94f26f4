package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/omarshaarawi/bigdogpool/internal/models"
)

func (s *PoolService) GetContenders(ctx context.Context) (string, error) {
	report, err := s.Contenders(ctx, 0)
	if err != nil {
		return "", fmt.Errorf("error computing contenders: %w", err)
	}
	return FormatContenders(report), nil
}

func FormatContenders(report models.ContentionReport) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏈 *%s Contenders*\n", weekTitle(report.Week, report.WeekLabel)))

	switch report.RemainingGames {
	case 0:
		sb.WriteString("All games are final.\n\n")
	case 1:
		sb.WriteString("1 game left.\n\n")
	default:
		sb.WriteString(fmt.Sprintf("%d games left.\n\n", report.RemainingGames))
	}

	if len(report.Members) == 0 {
		sb.WriteString("No members in the pool yet.")
		return sb.String()
	}

	alive := 0
	for _, m := range report.Members {
		mark := "❌"
		if m.Alive {
			mark = "✅"
			alive++
		}
		sb.WriteString(fmt.Sprintf("%s *%s* %d %s", mark, m.Name, m.CurrentWins, plural(m.CurrentWins, "win", "wins")))
		if m.RemainingPicks > 0 {
			sb.WriteString(fmt.Sprintf(" (max %d)", m.MaxWins))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("\n%d of %d still in it", alive, len(report.Members)))
	if report.AllowTies {
		sb.WriteString(", ties count.")
	} else {
		sb.WriteString(", outright only.")
	}

	if report.WinnerMemberID != "" {
		for _, m := range report.Members {
			if m.MemberID == report.WinnerMemberID {
				sb.WriteString(fmt.Sprintf("\n🏆 Declared winner: *%s*", m.Name))
			}
		}
	}

	return sb.String()
}

func (s *PoolService) GetStandings(ctx context.Context) (string, error) {
	seasonID, err := s.SeasonID(ctx)
	if err != nil {
		return "", err
	}
	page, err := s.resolveWeek(ctx, seasonID, 0)
	if err != nil {
		return "", fmt.Errorf("error fetching standings: %w", err)
	}

	members := append([]models.Member(nil), page.Members...)
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].SeasonRecord.Wins != members[j].SeasonRecord.Wins {
			return members[i].SeasonRecord.Wins > members[j].SeasonRecord.Wins
		}
		if members[i].SeasonRecord.Losses != members[j].SeasonRecord.Losses {
			return members[i].SeasonRecord.Losses < members[j].SeasonRecord.Losses
		}
		return members[i].Name < members[j].Name
	})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏆 *%s Standings*\n\n", page.Season.Label))
	for i, m := range members {
		sb.WriteString(fmt.Sprintf("%d. *%s*\n", i+1, m.Name))
		sb.WriteString(fmt.Sprintf("   Record: %d-%d\n", m.SeasonRecord.Wins, m.SeasonRecord.Losses))
		sb.WriteString(fmt.Sprintf("   Last Week: %d-%d\n", m.LastWeekRecord.Wins, m.LastWeekRecord.Losses))
		sb.WriteString(fmt.Sprintf("   Weeks Won: %d\n\n", m.WeeksWon))
	}

	return sb.String(), nil
}

func (s *PoolService) MemberPicks(ctx context.Context, name string) (models.MemberPicksReport, error) {
	seasonID, err := s.SeasonID(ctx)
	if err != nil {
		return models.MemberPicksReport{}, err
	}
	page, err := s.resolveWeek(ctx, seasonID, 0)
	if err != nil {
		return models.MemberPicksReport{}, err
	}

	member, ok := findMember(page.Members, name)
	if !ok {
		return models.MemberPicksReport{}, fmt.Errorf("%w: %q", ErrMemberNotFound, name)
	}

	report := models.MemberPicksReport{
		MemberName: member.Name,
		Week:       page.ActiveWeek.Number,
	}
	for _, game := range page.Games {
		pick := models.MemberPick{
			GameKey: game.GameKey,
			Matchup: matchup(game),
			Status:  "no pick",
		}
		for _, p := range game.Picks {
			if p.MemberID != member.ID {
				continue
			}
			pick.Side = strings.ToLower(p.ChosenSide)
			pick.TeamCode = sideTeam(game, pick.Side).Code
			pick.Status = gradePick(game, pick.Side)
		}
		report.Picks = append(report.Picks, pick)
	}

	contenders, err := EvaluatePage(ctx, page, s.opts)
	if err != nil {
		return models.MemberPicksReport{}, err
	}
	for _, m := range contenders.Members {
		if m.MemberID == member.ID {
			report.Contention = m
		}
	}

	return report, nil
}

func (s *PoolService) GetMemberPicks(ctx context.Context, name string) (string, error) {
	report, err := s.MemberPicks(ctx, name)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *%s's Week %d Picks*\n\n", report.MemberName, report.Week))
	for _, p := range report.Picks {
		switch p.Status {
		case "no pick":
			sb.WriteString(fmt.Sprintf("▫️ %s - no pick\n", p.Matchup))
		case models.PickCorrect:
			sb.WriteString(fmt.Sprintf("✅ %s - %s\n", p.Matchup, p.TeamCode))
		case models.PickIncorrect:
			sb.WriteString(fmt.Sprintf("❌ %s - %s\n", p.Matchup, p.TeamCode))
		default:
			sb.WriteString(fmt.Sprintf("⏳ %s - %s\n", p.Matchup, p.TeamCode))
		}
	}

	c := report.Contention
	sb.WriteString(fmt.Sprintf("\n%d %s, max %d", c.CurrentWins, plural(c.CurrentWins, "win", "wins"), c.MaxWins))
	if c.Alive {
		sb.WriteString(" - still in contention")
	} else {
		sb.WriteString(" - eliminated")
	}

	return sb.String(), nil
}

func (s *PoolService) WeekSummary(ctx context.Context) ([]models.GameSummary, int, error) {
	seasonID, err := s.SeasonID(ctx)
	if err != nil {
		return nil, 0, err
	}
	page, err := s.resolveWeek(ctx, seasonID, 0)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]models.GameSummary, 0, len(page.Games))
	for _, game := range page.Games {
		summary := models.GameSummary{
			GameKey: game.GameKey,
			Matchup: matchup(game),
			Status:  game.Status,
			Winner:  sideTeam(game, game.Winner).Code,
		}
		sides := make(map[string]string, len(game.Picks))
		for _, p := range game.Picks {
			sides[p.MemberID] = strings.ToLower(p.ChosenSide)
		}
		for _, m := range page.Members {
			switch sides[m.ID] {
			case "home":
				summary.HomePicks++
			case "away":
				summary.AwayPicks++
			default:
				summary.NoPick++
			}
		}
		summaries = append(summaries, summary)
	}

	return summaries, page.ActiveWeek.Number, nil
}

func (s *PoolService) GetWeekSummary(ctx context.Context) (string, error) {
	games, week, err := s.WeekSummary(ctx)
	if err != nil {
		return "", fmt.Errorf("error fetching week: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🗓 *Week %d Games*\n\n", week))
	if len(games) == 0 {
		sb.WriteString("No games scheduled yet.")
		return sb.String(), nil
	}

	for _, g := range games {
		sb.WriteString(fmt.Sprintf("*%s*\n", g.Matchup))
		sb.WriteString(fmt.Sprintf("Picks: %d away - %d home", g.AwayPicks, g.HomePicks))
		if g.NoPick > 0 {
			sb.WriteString(fmt.Sprintf(" (%d missing)", g.NoPick))
		}
		sb.WriteString("\n")
		if g.Status == models.GameFinal && g.Winner != "" {
			sb.WriteString(fmt.Sprintf("(Final, %s won)\n", g.Winner))
		} else if g.Status == models.GameInProgress {
			sb.WriteString("(In Progress)\n")
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// findMember prefers an in-order character match ("dani" for "Danielle")
// and falls back to edit distance for typos.
func findMember(members []models.Member, query string) (models.Member, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.Member{}, false
	}

	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) > 0 {
		sort.Stable(ranks)
		return members[ranks[0].OriginalIndex], true
	}

	best, bestSimilarity := -1, 0.0
	for i, name := range names {
		distance := fuzzy.LevenshteinDistance(strings.ToLower(query), strings.ToLower(name))
		maxLen := float64(max(len(query), len(name)))
		similarity := 1 - float64(distance)/maxLen
		if similarity >= 0.6 && similarity > bestSimilarity {
			best = i
			bestSimilarity = similarity
		}
	}
	if best < 0 {
		return models.Member{}, false
	}
	return members[best], true
}

func matchup(game models.Game) string {
	return fmt.Sprintf("%s @ %s", game.AwayTeam.Code, game.HomeTeam.Code)
}

func sideTeam(game models.Game, side string) models.TeamInfo {
	switch strings.ToLower(side) {
	case "home":
		return game.HomeTeam
	case "away":
		return game.AwayTeam
	default:
		return models.TeamInfo{}
	}
}

func gradePick(game models.Game, side string) string {
	if !game.Decided() {
		return models.PickPending
	}
	if strings.EqualFold(game.Winner, side) {
		return models.PickCorrect
	}
	return models.PickIncorrect
}

func weekTitle(number int, label string) string {
	if label != "" {
		return label
	}
	return fmt.Sprintf("Week %d", number)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
