package pickem

import (
	"context"
	"errors"

	"github.com/omarshaarawi/bigdogpool/internal/api/pool"
	"github.com/omarshaarawi/bigdogpool/internal/models"
)

var ErrNoSeasons = errors.New("no seasons configured")

type API struct {
	poolAPI *pool.API
}

func NewAPI(poolAPI *pool.API) *API {
	return &API{poolAPI: poolAPI}
}

func (a *API) ListSeasons(ctx context.Context) ([]models.Season, error) {
	return a.poolAPI.ListSeasons(ctx)
}

func (a *API) ListWeeks(ctx context.Context, seasonID string) ([]models.Week, error) {
	return a.poolAPI.ListWeeks(ctx, seasonID)
}

func (a *API) GetCurrentWeek(ctx context.Context, seasonID string) (int, error) {
	return a.poolAPI.GetCurrentWeek(ctx, seasonID)
}

func (a *API) GetPageData(ctx context.Context, seasonID string, week int) (*models.PageData, error) {
	return a.poolAPI.GetPageData(ctx, seasonID, week)
}

// LatestSeason returns the first season the backend lists, which is the newest.
func (a *API) LatestSeason(ctx context.Context) (models.Season, error) {
	seasons, err := a.poolAPI.ListSeasons(ctx)
	if err != nil {
		return models.Season{}, err
	}
	if len(seasons) == 0 {
		return models.Season{}, ErrNoSeasons
	}
	return seasons[0], nil
}
