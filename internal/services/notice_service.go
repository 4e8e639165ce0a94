// internal/services/notice_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jong1uk/Auction-Back/internal/models"
	"github.com/jong1uk/Auction-Back/internal/utils"
)

// NoticeService is the announcement board: public reads, admin writes.
type NoticeService struct {
	db *gorm.DB
}

func NewNoticeService(db *gorm.DB) *NoticeService {
	return &NoticeService{db: db}
}

type NoticeRequest struct {
	NoticeTitle   string `json:"notice_title" validate:"required,max=150"`
	NoticeContent string `json:"notice_content" validate:"required"`
}

func (s *NoticeService) List(params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Notice{})

	if params.Search != "" {
		term := "%" + params.Search + "%"
		query = query.Where("LOWER(notice_title) LIKE LOWER(?)", term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count notices: %w", err)
	}

	var notices []models.Notice
	query = utils.ApplySort(query, params, []string{"created_at", "notice_title"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&notices).Error; err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}

	result := utils.CreatePaginationResult(notices, total, params)
	return &result, nil
}

func (s *NoticeService) Get(id int64) (*models.Notice, error) {
	var notice models.Notice
	if err := s.db.First(&notice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("notice %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load notice: %w", err)
	}
	return &notice, nil
}

func (s *NoticeService) Create(authorID int64, req *NoticeRequest) (*models.Notice, error) {
	notice := &models.Notice{
		NoticeTitle:   req.NoticeTitle,
		NoticeContent: req.NoticeContent,
		UserID:        authorID,
	}
	if err := s.db.Create(notice).Error; err != nil {
		return nil, fmt.Errorf("failed to create notice: %w", err)
	}
	return notice, nil
}

func (s *NoticeService) Update(id int64, req *NoticeRequest) (*models.Notice, error) {
	notice, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	notice.NoticeTitle = req.NoticeTitle
	notice.NoticeContent = req.NoticeContent
	if err := s.db.Save(notice).Error; err != nil {
		return nil, fmt.Errorf("failed to update notice: %w", err)
	}
	return notice, nil
}

func (s *NoticeService) Delete(id int64) error {
	notice, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(notice).Error; err != nil {
		return fmt.Errorf("failed to delete notice: %w", err)
	}
	return nil
}
