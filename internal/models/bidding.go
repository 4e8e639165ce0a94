// internal/models/bidding.go
package models

import (
	"time"
)

// BuyingBid is a standing offer to buy at a price. It stays PROCESS until a
// matching sale completes it.
type BuyingBid struct {
	BaseModel
	ProductID int64         `json:"product_id" gorm:"not null;index"`
	UserID    int64         `json:"user_id" gorm:"not null;index"`
	Price     int64         `json:"price" gorm:"not null"`
	Quantity  int           `json:"quantity" gorm:"default:1"`
	Status    BiddingStatus `json:"status" gorm:"type:varchar(20);default:'PROCESS';index"`
	BidTime   time.Time     `json:"bid_time"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// SalesBid is a standing offer to sell. A new listing enters INSPECTION and
// only becomes an open ask (PROCESS) once an admin approves it.
type SalesBid struct {
	BaseModel
	ProductID int64       `json:"product_id" gorm:"not null;index"`
	UserID    int64       `json:"user_id" gorm:"not null;index"`
	Price     int64       `json:"price" gorm:"not null"`
	Quantity  int         `json:"quantity" gorm:"default:1"`
	Status    SalesStatus `json:"status" gorm:"type:varchar(20);default:'INSPECTION';index"`
	BidTime   time.Time   `json:"bid_time"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
