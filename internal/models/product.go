// internal/models/product.go
package models

import (
	"time"
)

// Product is one size variant of a catalog entry. Variants share a model
// number; the (model_num, product_size) pair is unique among REGISTERED rows.
type Product struct {
	BaseModel
	ModelNum       string        `json:"model_num" gorm:"size:100;not null;index"`
	ProductSize    string        `json:"product_size" gorm:"size:20;not null"`
	ProductBrand   string        `json:"product_brand" gorm:"size:100"`
	ProductName    string        `json:"product_name" gorm:"size:255;not null"`
	ProductImg     string        `json:"product_img" gorm:"size:255"`
	MainDepartment string        `json:"main_department" gorm:"size:50;index"`
	SubDepartment  string        `json:"sub_department" gorm:"size:50;index"`
	OriginalPrice  int64         `json:"original_price" gorm:"not null"`
	Quantity       int           `json:"quantity" gorm:"default:0"`
	Status         ProductStatus `json:"product_status" gorm:"type:varchar(20);default:'REQUEST';index"`

	// Cached projection of the most recent completed trade for this model
	// number. Refreshed at most once per newly observed trade; never moves
	// backwards to an older trade.
	LatestPrice        int64      `json:"latest_price" gorm:"default:0"`
	PreviousPrice      int64      `json:"previous_price" gorm:"default:0"`
	PreviousPercentage float64    `json:"previous_percentage" gorm:"default:0"`
	DifferenceContract int64      `json:"difference_contract" gorm:"default:0"`
	LatestDate         *time.Time `json:"latest_date"`

	// Relationships
	BuyingBids []BuyingBid `json:"buying_bids,omitempty" gorm:"foreignKey:ProductID"`
	SalesBids  []SalesBid  `json:"sales_bids,omitempty" gorm:"foreignKey:ProductID"`
}
