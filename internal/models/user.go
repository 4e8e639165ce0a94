// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`
	Nickname     string `json:"nickname" gorm:"size:50"`
	Phone        string `json:"phone" gorm:"size:20"`
	ProfileImg   string `json:"profile_img" gorm:"size:255"`
	Grade        int    `json:"grade" gorm:"default:0"`
	IsAdmin      bool   `json:"is_admin" gorm:"default:false"`

	// Relationships
	Addresses   []Address     `json:"addresses,omitempty" gorm:"foreignKey:UserID"`
	BuyingBids  []BuyingBid   `json:"buying_bids,omitempty" gorm:"foreignKey:UserID"`
	SalesBids   []SalesBid    `json:"sales_bids,omitempty" gorm:"foreignKey:UserID"`
	Bookmarks   []Bookmark    `json:"bookmarks,omitempty" gorm:"foreignKey:UserID"`
	DrawEntries []DrawEntry   `json:"draw_entries,omitempty" gorm:"foreignKey:UserID"`
	Coupons     []CouponIssue `json:"coupons,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
