// internal/services/luckydraw_service.go
package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jong1uk/Auction-Back/internal/database"
	"github.com/jong1uk/Auction-Back/internal/models"
)

// LuckyDrawService runs the raffle lifecycle: admins create READY draws,
// the scheduler assigns the weekly window and opens them, users enter while
// open, and winners are drawn at announce time.
type LuckyDrawService struct {
	db *gorm.DB
}

func NewLuckyDrawService(db *gorm.DB) *LuckyDrawService {
	return &LuckyDrawService{db: db}
}

var ErrDuplicateEntry = errors.New("already entered this draw")

type CreateDrawRequest struct {
	LuckyName   string `json:"lucky_name" validate:"required,max=255"`
	Content     string `json:"content" validate:"omitempty,max=5000"`
	LuckyImage  string `json:"lucky_image" validate:"omitempty,max=255"`
	LuckyPeople int    `json:"lucky_people" validate:"required,gte=1"`
}

// CreateDraw files a raffle in READY with no dates; the activation batch
// assigns the window.
func (s *LuckyDrawService) CreateDraw(req *CreateDrawRequest) (*models.LuckyDraw, error) {
	draw := &models.LuckyDraw{
		LuckyName:   req.LuckyName,
		Content:     req.Content,
		LuckyImage:  req.LuckyImage,
		LuckyPeople: req.LuckyPeople,
		Status:      models.DrawStatusReady,
	}
	if err := s.db.Create(draw).Error; err != nil {
		return nil, fmt.Errorf("failed to create lucky draw: %w", err)
	}
	return draw, nil
}

// ListOpen returns draws visible to users (open or finished).
func (s *LuckyDrawService) ListOpen() ([]models.LuckyDraw, error) {
	var draws []models.LuckyDraw
	err := s.db.
		Where("status IN ?", []models.DrawStatus{models.DrawStatusProcess, models.DrawStatusEnd}).
		Order("start_date DESC").
		Find(&draws).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list lucky draws: %w", err)
	}
	return draws, nil
}

// ListAll returns every draw regardless of status, for the admin console.
func (s *LuckyDrawService) ListAll() ([]models.LuckyDraw, error) {
	var draws []models.LuckyDraw
	if err := s.db.Order("id DESC").Find(&draws).Error; err != nil {
		return nil, fmt.Errorf("failed to list lucky draws: %w", err)
	}
	return draws, nil
}

func (s *LuckyDrawService) GetDraw(id int64) (*models.LuckyDraw, error) {
	var draw models.LuckyDraw
	if err := s.db.First(&draw, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("lucky draw %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load lucky draw: %w", err)
	}
	return &draw, nil
}

// Enter registers a user for an open draw. One entry per user per draw;
// entries outside the start/end window are rejected.
func (s *LuckyDrawService) Enter(userID, drawID int64) (*models.DrawEntry, error) {
	draw, err := s.GetDraw(drawID)
	if err != nil {
		return nil, err
	}
	if draw.Status != models.DrawStatusProcess {
		return nil, fmt.Errorf("lucky draw %d is %s: %w", drawID, draw.Status, ErrStateConflict)
	}

	now := time.Now()
	if draw.StartDate != nil && now.Before(*draw.StartDate) {
		return nil, fmt.Errorf("lucky draw %d has not started: %w", drawID, ErrStateConflict)
	}
	if draw.EndDate != nil && now.After(*draw.EndDate) {
		return nil, fmt.Errorf("lucky draw %d has ended: %w", drawID, ErrStateConflict)
	}

	var existing int64
	err = s.db.Model(&models.DrawEntry{}).
		Where("lucky_draw_id = ? AND user_id = ?", drawID, userID).
		Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check existing entry: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("lucky draw %d user %d: %w", drawID, userID, ErrDuplicateEntry)
	}

	entry := &models.DrawEntry{
		LuckyDrawID: drawID,
		UserID:      userID,
		EnteredAt:   now,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create draw entry: %w", err)
	}
	return entry, nil
}

// NextDrawStart returns the upcoming Monday 11:00 anchor; if now is a
// Monday before 11:00 the anchor is today.
func NextDrawStart(now time.Time) time.Time {
	anchor := time.Date(now.Year(), now.Month(), now.Day(), 11, 0, 0, 0, now.Location())
	offset := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	anchor = anchor.AddDate(0, 0, offset)
	if !anchor.After(now) {
		anchor = anchor.AddDate(0, 0, 7)
	}
	return anchor
}

// DrawWindow derives the full schedule from one start anchor: the draw runs
// seven days and winners are announced at 18:00 the day after it closes.
func DrawWindow(start time.Time) (time.Time, time.Time, time.Time) {
	end := start.AddDate(0, 0, 7)
	announceDay := end.AddDate(0, 0, 1)
	announce := time.Date(announceDay.Year(), announceDay.Month(), announceDay.Day(),
		18, 0, 0, 0, announceDay.Location())
	return start, end, announce
}

// ActivateReadyDraws assigns the weekly window to every READY draw and
// flips it to PROCESS. Safe against double-firing: only rows still READY
// are touched.
func (s *LuckyDrawService) ActivateReadyDraws(now time.Time) (int, error) {
	start, end, announce := DrawWindow(NextDrawStart(now))

	res := s.db.Model(&models.LuckyDraw{}).
		Where("status = ?", models.DrawStatusReady).
		Updates(map[string]interface{}{
			"status":        models.DrawStatusProcess,
			"start_date":    start,
			"end_date":      end,
			"announce_date": announce,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to activate ready draws: %w", res.Error)
	}

	if res.RowsAffected > 0 {
		logrus.WithFields(logrus.Fields{
			"activated":  res.RowsAffected,
			"start_date": start,
			"end_date":   end,
		}).Info("Lucky draws activated")
	}

	return int(res.RowsAffected), nil
}

// AnnounceWinners closes a PROCESS draw: picks up to LuckyPeople winners at
// random from its entries, marks them won, records the winner ids, and
// flips the draw to END. The flip is conditional so a repeat call fails.
func (s *LuckyDrawService) AnnounceWinners(drawID int64) (*models.LuckyDraw, error) {
	draw, err := s.GetDraw(drawID)
	if err != nil {
		return nil, err
	}
	if draw.Status != models.DrawStatusProcess {
		return nil, fmt.Errorf("lucky draw %d is %s: %w", drawID, draw.Status, ErrStateConflict)
	}

	var entries []models.DrawEntry
	if err := s.db.Where("lucky_draw_id = ?", drawID).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	winners := pickWinners(entries, draw.LuckyPeople)

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		res := tx.Model(&models.LuckyDraw{}).
			Where("id = ? AND status = ?", drawID, models.DrawStatusProcess).
			Updates(map[string]interface{}{
				"status":     models.DrawStatusEnd,
				"winner_ids": pq.Int64Array(winners),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to close draw: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("lucky draw %d already announced: %w", drawID, ErrStateConflict)
		}

		if len(winners) > 0 {
			err := tx.Model(&models.DrawEntry{}).
				Where("lucky_draw_id = ? AND user_id IN ?", drawID, winners).
				Update("won", true).Error
			if err != nil {
				return fmt.Errorf("failed to mark winners: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"lucky_draw_id": drawID,
		"entries":       len(entries),
		"winners":       len(winners),
	}).Info("Lucky draw winners announced")

	return s.GetDraw(drawID)
}

func pickWinners(entries []models.DrawEntry, count int) []int64 {
	if count > len(entries) {
		count = len(entries)
	}
	if count <= 0 {
		return nil
	}

	perm := rand.Perm(len(entries))
	winners := make([]int64, 0, count)
	for _, i := range perm[:count] {
		winners = append(winners, entries[i].UserID)
	}
	return winners
}

// ListUserEntries returns a user's draw history with the parent draws.
func (s *LuckyDrawService) ListUserEntries(userID int64) ([]models.DrawEntry, error) {
	var entries []models.DrawEntry
	err := s.db.Preload("LuckyDraw").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list draw entries: %w", err)
	}
	return entries, nil
}
