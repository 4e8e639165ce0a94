// internal/services/mypage_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jong1uk/Auction-Back/internal/database"
	"github.com/jong1uk/Auction-Back/internal/models"
)

// MypageService serves the account area: profile, addresses, payout
// account, bookmarks, and trade/draw histories.
type MypageService struct {
	db *gorm.DB
}

func NewMypageService(db *gorm.DB) *MypageService {
	return &MypageService{db: db}
}

type ModifyProfileRequest struct {
	Nickname   string `json:"nickname" validate:"omitempty,min=2,max=50"`
	Phone      string `json:"phone" validate:"omitempty,max=20"`
	ProfileImg string `json:"profile_img" validate:"omitempty,max=255"`
	Password   string `json:"password" validate:"omitempty,strong_password"`
}

type AddressRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	Zonecode    string `json:"zonecode" validate:"omitempty,max=10"`
	Address     string `json:"address" validate:"required,max=255"`
	AddressLine string `json:"address_line" validate:"omitempty,max=255"`
	IsDefault   bool   `json:"is_default"`
}

type AccountRequest struct {
	BankName   string `json:"bank_name" validate:"required,max=20"`
	AccountNum string `json:"account_num" validate:"required,max=50"`
	Depositor  string `json:"depositor" validate:"omitempty,max=50"`
}

// MypageMain is the account landing summary.
type MypageMain struct {
	User        *models.User `json:"user"`
	CouponCount int64        `json:"coupon_count"`
	OpenBuying  int64        `json:"open_buying"`
	OpenSelling int64        `json:"open_selling"`
	Bookmarks   int64        `json:"bookmarks"`
}

// GetMain aggregates the mypage landing counters.
func (s *MypageService) GetMain(userID int64) (*MypageMain, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	main := &MypageMain{User: &user}

	err := s.db.Model(&models.CouponIssue{}).
		Where("user_id = ? AND used_at IS NULL", userID).
		Count(&main.CouponCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count coupons: %w", err)
	}

	err = s.db.Model(&models.BuyingBid{}).
		Where("user_id = ? AND status = ?", userID, models.BiddingStatusProcess).
		Count(&main.OpenBuying).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count buying bids: %w", err)
	}

	err = s.db.Model(&models.SalesBid{}).
		Where("user_id = ? AND status IN ?", userID,
			[]models.SalesStatus{models.SalesStatusInspection, models.SalesStatusProcess}).
		Count(&main.OpenSelling).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count sales bids: %w", err)
	}

	err = s.db.Model(&models.Bookmark{}).
		Where("user_id = ?", userID).
		Count(&main.Bookmarks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count bookmarks: %w", err)
	}

	return main, nil
}

// ModifyProfile updates the mutable profile fields; empty fields are left
// untouched.
func (s *MypageService) ModifyProfile(userID int64, req *ModifyProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if req.Nickname != "" {
		user.Nickname = req.Nickname
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.ProfileImg != "" {
		user.ProfileImg = req.ProfileImg
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &user, nil
}

// Addresses

func (s *MypageService) ListAddresses(userID int64) ([]models.Address, error) {
	var addresses []models.Address
	err := s.db.Where("user_id = ?", userID).
		Order("is_default DESC, id DESC").
		Find(&addresses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

func (s *MypageService) CreateAddress(userID int64, req *AddressRequest) (*models.Address, error) {
	address := &models.Address{
		UserID:      userID,
		Name:        req.Name,
		Phone:       req.Phone,
		Zonecode:    req.Zonecode,
		Address:     req.Address,
		AddressLine: req.AddressLine,
		IsDefault:   req.IsDefault,
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := s.clearDefaultAddress(tx, userID); err != nil {
				return err
			}
		}
		return tx.Create(address).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return address, nil
}

func (s *MypageService) UpdateAddress(userID, addressID int64, req *AddressRequest) (*models.Address, error) {
	address, err := s.ownedAddress(userID, addressID)
	if err != nil {
		return nil, err
	}

	address.Name = req.Name
	address.Phone = req.Phone
	address.Zonecode = req.Zonecode
	address.Address = req.Address
	address.AddressLine = req.AddressLine
	address.IsDefault = req.IsDefault

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := s.clearDefaultAddress(tx, userID); err != nil {
				return err
			}
		}
		return tx.Save(address).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return address, nil
}

func (s *MypageService) DeleteAddress(userID, addressID int64) error {
	address, err := s.ownedAddress(userID, addressID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(address).Error; err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	return nil
}

func (s *MypageService) ownedAddress(userID, addressID int64) (*models.Address, error) {
	var address models.Address
	if err := s.db.First(&address, addressID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("address %d: %w", addressID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load address: %w", err)
	}
	if address.UserID != userID {
		return nil, fmt.Errorf("address %d: %w", addressID, ErrUnauthorized)
	}
	return &address, nil
}

func (s *MypageService) clearDefaultAddress(tx *gorm.DB, userID int64) error {
	return tx.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}

// Payout account; one per user, upserted.

func (s *MypageService) GetAccount(userID int64) (*models.Account, error) {
	var account models.Account
	err := s.db.Where("user_id = ?", userID).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("account for user %d: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return &account, nil
}

func (s *MypageService) UpsertAccount(userID int64, req *AccountRequest) (*models.Account, error) {
	var account models.Account
	err := s.db.Where("user_id = ?", userID).First(&account).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	account.UserID = userID
	account.BankName = req.BankName
	account.AccountNum = req.AccountNum
	account.Depositor = req.Depositor

	if err := s.db.Save(&account).Error; err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	return &account, nil
}

// Bookmarks

func (s *MypageService) ListBookmarks(userID int64) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	return bookmarks, nil
}

func (s *MypageService) AddBookmark(userID, productID int64) (*models.Bookmark, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	var existing int64
	err := s.db.Model(&models.Bookmark{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check bookmark: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("bookmark for product %d: %w", productID, ErrStateConflict)
	}

	bookmark := &models.Bookmark{UserID: userID, ProductID: productID}
	if err := s.db.Create(bookmark).Error; err != nil {
		return nil, fmt.Errorf("failed to create bookmark: %w", err)
	}
	return bookmark, nil
}

func (s *MypageService) RemoveBookmark(userID, productID int64) error {
	res := s.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Bookmark{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete bookmark: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("bookmark for product %d: %w", productID, ErrNotFound)
	}
	return nil
}

// Histories

func (s *MypageService) ListBuyingHistory(userID int64) ([]models.BuyingBid, error) {
	var bids []models.BuyingBid
	err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list buying history: %w", err)
	}
	return bids, nil
}

func (s *MypageService) ListSellingHistory(userID int64) ([]models.SalesBid, error) {
	var bids []models.SalesBid
	err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list selling history: %w", err)
	}
	return bids, nil
}
