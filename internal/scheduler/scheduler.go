package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/omarshaarawi/bigdogpool/internal/config"
)

const jobTimeout = time.Minute

type Reporter interface {
	GetContenders(ctx context.Context) (string, error)
	GetStandings(ctx context.Context) (string, error)
}

type Scheduler struct {
	s              gocron.Scheduler
	reporter       Reporter
	sendMessage    func(string) error
	contendersCron string
}

func NewScheduler(cfg config.Schedule, reporter Reporter, sendMessage func(string) error) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Location)
	if err != nil {
		slog.Error("Failed to load location, using UTC", "location", cfg.Location, "error", err)
		location = time.UTC
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:              s,
		reporter:       reporter,
		sendMessage:    sendMessage,
		contendersCron: cfg.ContendersCron,
	}, nil
}

func (s *Scheduler) Start() error {
	if err := s.addJobs(); err != nil {
		return err
	}
	s.s.Start()
	return nil
}

func (s *Scheduler) addJobs() error {
	var err error

	// Contenders on the configured schedule, Sunday night by default
	_, err = s.s.NewJob(
		gocron.CronJob(s.contendersCron, false),
		gocron.NewTask(s.sendContenders),
	)
	if err != nil {
		return fmt.Errorf("failed to create contenders job: %w", err)
	}

	// Contenders after the early Sunday games
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Sunday), gocron.NewAtTimes(gocron.NewAtTime(15, 0, 0))),
		gocron.NewTask(s.sendContenders),
	)
	if err != nil {
		return fmt.Errorf("failed to create Sunday contenders job: %w", err)
	}

	// Contenders before Monday night
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Monday), gocron.NewAtTimes(gocron.NewAtTime(18, 30, 0))),
		gocron.NewTask(s.sendContenders),
	)
	if err != nil {
		return fmt.Errorf("failed to create Monday contenders job: %w", err)
	}

	// Standings - Tuesday 7:30
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Tuesday), gocron.NewAtTimes(gocron.NewAtTime(7, 30, 0))),
		gocron.NewTask(s.sendStandings),
	)
	if err != nil {
		return fmt.Errorf("failed to create standings job: %w", err)
	}

	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) sendContenders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	report, err := s.reporter.GetContenders(ctx)
	if err != nil {
		slog.Error("Failed to get contenders", "error", err)
		return
	}
	if err := s.sendMessage(report); err != nil {
		slog.Error("Failed to send contenders", "error", err)
	}
}

func (s *Scheduler) sendStandings() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	standings, err := s.reporter.GetStandings(ctx)
	if err != nil {
		slog.Error("Failed to get standings", "error", err)
		return
	}
	if err := s.sendMessage(standings); err != nil {
		slog.Error("Failed to send standings", "error", err)
	}
}
