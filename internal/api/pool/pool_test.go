package pool

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/bigdogpool/internal/config"
)

const pageJSON = `{
	"season": {"id": "s1", "label": "2025 Regular Season", "year": 2025, "sportsDataSeasonKey": "2025REG"},
	"weeks": [{"id": "w5", "number": 5, "label": "Week 5"}],
	"activeWeek": {"id": "w5", "number": 5, "label": "Week 5"},
	"members": [{"id": "member-dallin", "name": "Dallin", "isCommissioner": false, "seasonRecord": {"wins": 44, "losses": 18}, "lastWeekRecord": {"wins": 10, "losses": 4}, "weeksWon": 4, "tieBreakers": {"5": 46}}],
	"games": [{
		"id": "g1", "gameKey": "202510501", "location": "Tottenham Hotspur Stadium", "status": "final",
		"home": {"code": "CLE", "name": "Browns", "location": "Cleveland"},
		"away": {"code": "MIN", "name": "Vikings", "location": "Minnesota"},
		"homeScore": 20, "awayScore": 24, "winner": "away",
		"picks": [{"memberId": "member-dallin", "chosenSide": "away", "status": "correct"}]
	}]
}`

func newTestAPI(t *testing.T, handler http.HandlerFunc) *API {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAPI(NewClient(config.PoolAPI{BaseURL: srv.URL + "/"}))
}

func TestGetPageData(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/seasons/s1/weeks/5", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(pageJSON))
	})

	page, err := api.GetPageData(context.Background(), "s1", 5)
	require.NoError(t, err)

	assert.Equal(t, "2025REG", page.Season.SportsDataSeasonKey)
	assert.Equal(t, 5, page.ActiveWeek.Number)
	require.Len(t, page.Members, 1)
	assert.Equal(t, 46, page.Members[0].TieBreakers[5])
	require.Len(t, page.Games, 1)
	assert.Equal(t, "MIN", page.Games[0].AwayTeam.Code)
	assert.True(t, page.Games[0].Decided())
	assert.False(t, page.FetchedAt.IsZero())
}

func TestListSeasonsAndWeeks(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/seasons":
			_, _ = w.Write([]byte(`{"seasons": [{"id": "s1", "year": 2025}]}`))
		case "/api/seasons/s1/weeks":
			_, _ = w.Write([]byte(`{"weeks": [{"id": "w1", "number": 1}, {"id": "w2", "number": 2}]}`))
		case "/api/seasons/s1/current-week":
			_, _ = w.Write([]byte(`{"currentWeek": 2}`))
		default:
			http.NotFound(w, r)
		}
	})

	ctx := context.Background()
	seasons, err := api.ListSeasons(ctx)
	require.NoError(t, err)
	require.Len(t, seasons, 1)

	weeks, err := api.ListWeeks(ctx, seasons[0].ID)
	require.NoError(t, err)
	assert.Len(t, weeks, 2)

	current, err := api.GetCurrentWeek(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, current)
}

func TestClientErrors(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/seasons/missing/weeks":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error": "store: season not found"}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`upstream down`))
		}
	})

	_, err := api.ListWeeks(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "store: season not found")

	_, err = api.ListSeasons(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 502")
}
