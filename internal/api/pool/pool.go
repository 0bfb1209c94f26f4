package pool

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/omarshaarawi/bigdogpool/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) ListSeasons(ctx context.Context) ([]models.Season, error) {
	var resp models.SeasonsResponse
	if err := a.client.Get(ctx, "/api/seasons", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching seasons: %w", err)
	}
	return resp.Seasons, nil
}

func (a *API) ListWeeks(ctx context.Context, seasonID string) ([]models.Week, error) {
	var resp models.WeeksResponse
	endpoint := fmt.Sprintf("/api/seasons/%s/weeks", url.PathEscape(seasonID))
	if err := a.client.Get(ctx, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching weeks for season %s: %w", seasonID, err)
	}
	return resp.Weeks, nil
}

func (a *API) GetCurrentWeek(ctx context.Context, seasonID string) (int, error) {
	var resp models.CurrentWeekResponse
	endpoint := fmt.Sprintf("/api/seasons/%s/current-week", url.PathEscape(seasonID))
	if err := a.client.Get(ctx, endpoint, nil, &resp); err != nil {
		return 0, fmt.Errorf("fetching current week for season %s: %w", seasonID, err)
	}
	return resp.CurrentWeek, nil
}

func (a *API) GetPageData(ctx context.Context, seasonID string, week int) (*models.PageData, error) {
	var page models.PageData
	endpoint := fmt.Sprintf("/api/seasons/%s/weeks/%d", url.PathEscape(seasonID), week)
	if err := a.client.Get(ctx, endpoint, nil, &page); err != nil {
		return nil, fmt.Errorf("fetching page data for season %s week %d: %w", seasonID, week, err)
	}
	page.FetchedAt = time.Now()
	return &page, nil
}
