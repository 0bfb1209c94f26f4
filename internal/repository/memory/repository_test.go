package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/omarshaarawi/bigdogpool/internal/models"
)

func TestCurrentWeekExpires(t *testing.T) {
	now := time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC)
	repo := NewRepository()
	repo.now = func() time.Time { return now }

	_, ok := repo.GetCurrentWeek("s1")
	assert.False(t, ok)

	repo.SaveCurrentWeek("s1", 5)
	week, ok := repo.GetCurrentWeek("s1")
	assert.True(t, ok)
	assert.Equal(t, 5, week)

	now = now.Add(25 * time.Hour)
	_, ok = repo.GetCurrentWeek("s1")
	assert.False(t, ok)
}

func TestPageDataExpires(t *testing.T) {
	now := time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC)
	repo := NewRepository()
	repo.now = func() time.Time { return now }

	page := &models.PageData{ActiveWeek: models.Week{Number: 5}, FetchedAt: now}
	repo.SavePageData("s1", 5, page)

	assert.Same(t, page, repo.GetPageData("s1", 5))
	assert.Nil(t, repo.GetPageData("s1", 6))

	now = now.Add(6 * time.Minute)
	assert.Nil(t, repo.GetPageData("s1", 5))
}

func TestSavePageDataDropsStaleWeeks(t *testing.T) {
	now := time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC)
	repo := NewRepository()
	repo.now = func() time.Time { return now }

	for week := 1; week <= 3; week++ {
		repo.SavePageData("s1", week, &models.PageData{FetchedAt: now})
	}
	assert.Len(t, repo.pages, 3)

	now = now.Add(10 * time.Minute)
	fresh := &models.PageData{FetchedAt: now}
	repo.SavePageData("s1", 4, fresh)

	assert.Len(t, repo.pages, 1)
	assert.Same(t, fresh, repo.GetPageData("s1", 4))
}
