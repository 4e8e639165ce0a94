// internal/models/notice.go
package models

type Notice struct {
	BaseModel
	NoticeTitle   string `json:"notice_title" gorm:"size:150;not null"`
	NoticeContent string `json:"notice_content" gorm:"type:text;not null"`
	UserID        int64  `json:"user_id" gorm:"not null;index"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
