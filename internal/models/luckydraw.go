// internal/models/luckydraw.go
package models

import (
	"time"

	"github.com/lib/pq"
)

// LuckyDraw is a raffle. Admins create it in READY with no dates; the
// scheduler assigns the weekly window and flips it to PROCESS.
type LuckyDraw struct {
	BaseModel
	LuckyName    string        `json:"lucky_name" gorm:"size:255;not null"`
	Content      string        `json:"content" gorm:"type:text"`
	LuckyImage   string        `json:"lucky_image" gorm:"size:255"`
	LuckyPeople  int           `json:"lucky_people" gorm:"default:1"`
	Status       DrawStatus    `json:"status" gorm:"type:varchar(20);default:'READY';index"`
	StartDate    *time.Time    `json:"start_date"`
	EndDate      *time.Time    `json:"end_date"`
	AnnounceDate *time.Time    `json:"announce_date"`
	WinnerIDs    pq.Int64Array `json:"winner_ids" gorm:"type:bigint[]"`

	Entries []DrawEntry `json:"entries,omitempty" gorm:"foreignKey:LuckyDrawID"`
}

type DrawEntry struct {
	BaseModel
	LuckyDrawID int64     `json:"lucky_draw_id" gorm:"not null;index"`
	UserID      int64     `json:"user_id" gorm:"not null;index"`
	EnteredAt   time.Time `json:"entered_at"`
	Won         bool      `json:"won" gorm:"default:false"`

	LuckyDraw LuckyDraw `json:"lucky_draw,omitempty" gorm:"foreignKey:LuckyDrawID"`
	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
