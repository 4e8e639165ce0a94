// internal/services/luckydraw_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jong1uk/Auction-Back/internal/models"
)

func TestNextDrawStartMidweek(t *testing.T) {
	// Wednesday 2026-08-26.
	now := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)
	start := NextDrawStart(now)

	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, time.Date(2026, 8, 31, 11, 0, 0, 0, time.UTC), start)
}

func TestNextDrawStartMondayBeforeAnchor(t *testing.T) {
	// Monday 2026-08-31 before 11:00 starts the same day.
	now := time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 31, 11, 0, 0, 0, time.UTC), NextDrawStart(now))
}

func TestNextDrawStartMondayAfterAnchor(t *testing.T) {
	// Monday after 11:00 rolls to the following week.
	now := time.Date(2026, 8, 31, 11, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC), NextDrawStart(now))
}

func TestDrawWindow(t *testing.T) {
	start := time.Date(2026, 8, 31, 11, 0, 0, 0, time.UTC)
	gotStart, end, announce := DrawWindow(start)

	assert.Equal(t, start, gotStart)
	assert.Equal(t, time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC), end)
	assert.Equal(t, time.Date(2026, 9, 8, 18, 0, 0, 0, time.UTC), announce)
}

func TestPickWinnersCapsAtEntries(t *testing.T) {
	entries := []models.DrawEntry{
		{UserID: 1}, {UserID: 2}, {UserID: 3},
	}

	winners := pickWinners(entries, 5)
	assert.Len(t, winners, 3)
	assert.ElementsMatch(t, []int64{1, 2, 3}, winners)
}

func TestPickWinnersSubset(t *testing.T) {
	entries := []models.DrawEntry{
		{UserID: 1}, {UserID: 2}, {UserID: 3}, {UserID: 4},
	}

	winners := pickWinners(entries, 2)
	assert.Len(t, winners, 2)
	for _, w := range winners {
		assert.Contains(t, []int64{1, 2, 3, 4}, w)
	}
}

func TestPickWinnersNoEntries(t *testing.T) {
	assert.Nil(t, pickWinners(nil, 3))
}
