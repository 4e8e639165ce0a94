// internal/models/review.go
package models

// PhotoReview is a style review attached to a product family (model number).
type PhotoReview struct {
	BaseModel
	ProductID     int64  `json:"product_id" gorm:"not null;index"`
	UserID        int64  `json:"user_id" gorm:"not null;index"`
	ReviewImg     string `json:"review_img" gorm:"size:255"`
	ReviewContent string `json:"review_content" gorm:"type:text"`
	ReviewLike    int    `json:"review_like" gorm:"default:0"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
