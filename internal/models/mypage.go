// internal/models/mypage.go
package models

import (
	"time"
)

type Address struct {
	BaseModel
	UserID      int64  `json:"user_id" gorm:"not null;index"`
	Name        string `json:"name" gorm:"size:50;not null"`
	Phone       string `json:"phone" gorm:"size:20"`
	Zonecode    string `json:"zonecode" gorm:"size:10"`
	Address     string `json:"address" gorm:"size:255;not null"`
	AddressLine string `json:"address_line" gorm:"size:255"`
	IsDefault   bool   `json:"is_default" gorm:"default:false"`
}

// Account is the payout bank account; one per user.
type Account struct {
	BaseModel
	UserID     int64  `json:"user_id" gorm:"uniqueIndex;not null"`
	BankName   string `json:"bank_name" gorm:"size:20;not null"`
	AccountNum string `json:"account_num" gorm:"size:50;not null"`
	Depositor  string `json:"depositor" gorm:"size:50"`
}

type Bookmark struct {
	BaseModel
	UserID    int64 `json:"user_id" gorm:"not null;index:idx_bookmarks_user_product,unique"`
	ProductID int64 `json:"product_id" gorm:"not null;index:idx_bookmarks_user_product,unique"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

type Coupon struct {
	BaseModel
	CouponName string     `json:"coupon_name" gorm:"size:100;not null"`
	Discount   int        `json:"discount" gorm:"not null"`
	ExpiresAt  *time.Time `json:"expires_at"`
}

type CouponIssue struct {
	BaseModel
	CouponID int64      `json:"coupon_id" gorm:"not null;index"`
	UserID   int64      `json:"user_id" gorm:"not null;index"`
	UsedAt   *time.Time `json:"used_at"`

	Coupon Coupon `json:"coupon,omitempty" gorm:"foreignKey:CouponID"`
}
