package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/omarshaarawi/bigdogpool/internal/models"
)

const (
	currentWeekTTL = 24 * time.Hour
	pageDataTTL    = 5 * time.Minute
)

type currentWeek struct {
	week      int
	updatedAt time.Time
}

type Repository struct {
	weeks map[string]currentWeek
	pages map[string]*models.PageData
	now   func() time.Time
	mu    sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{
		weeks: make(map[string]currentWeek),
		pages: make(map[string]*models.PageData),
		now:   time.Now,
	}
}

func (r *Repository) SaveCurrentWeek(seasonID string, week int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.weeks[seasonID] = currentWeek{week: week, updatedAt: r.now()}
}

func (r *Repository) GetCurrentWeek(seasonID string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cw, ok := r.weeks[seasonID]
	if !ok || r.now().Sub(cw.updatedAt) > currentWeekTTL {
		return 0, false
	}
	return cw.week, true
}

// SavePageData stores page and drops any cached weeks that have gone stale.
func (r *Repository) SavePageData(seasonID string, week int, page *models.PageData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for key, cached := range r.pages {
		if now.Sub(cached.FetchedAt) > pageDataTTL {
			delete(r.pages, key)
		}
	}
	r.pages[pageKey(seasonID, week)] = page
}

func (r *Repository) GetPageData(seasonID string, week int) *models.PageData {
	r.mu.RLock()
	defer r.mu.RUnlock()
	page, ok := r.pages[pageKey(seasonID, week)]
	if !ok || r.now().Sub(page.FetchedAt) > pageDataTTL {
		return nil
	}
	return page
}

func pageKey(seasonID string, week int) string {
	return fmt.Sprintf("%s/%d", seasonID, week)
}
