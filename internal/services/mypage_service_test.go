// internal/services/mypage_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jong1uk/Auction-Back/internal/models"
)

type MypageServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *MypageService
	user    *models.User
}

func (s *MypageServiceTestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open("file:mypagetest?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	err = db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.BuyingBid{}, &models.SalesBid{},
		&models.Address{}, &models.Account{}, &models.Bookmark{},
		&models.Coupon{}, &models.CouponIssue{},
	)
	s.Require().NoError(err)

	s.db = db
	s.service = NewMypageService(db)
}

func (s *MypageServiceTestSuite) SetupTest() {
	for _, table := range []string{
		"coupon_issues", "coupons", "bookmarks", "accounts", "addresses",
		"buying_bids", "sales_bids", "products", "users",
	} {
		s.db.Exec("DELETE FROM " + table)
	}

	s.user = &models.User{Email: "user@example.com", Nickname: "tester"}
	s.Require().NoError(s.user.SetPassword("Str0ng!pass"))
	s.Require().NoError(s.db.Create(s.user).Error)
}

func (s *MypageServiceTestSuite) TestGetMainCountsCoupons() {
	coupon := &models.Coupon{CouponName: "welcome", Discount: 10}
	s.Require().NoError(s.db.Create(coupon).Error)
	s.Require().NoError(s.db.Create(&models.CouponIssue{CouponID: coupon.ID, UserID: s.user.ID}).Error)

	main, err := s.service.GetMain(s.user.ID)
	s.NoError(err)
	s.Equal(int64(1), main.CouponCount)
	s.Equal(s.user.ID, main.User.ID)
}

func (s *MypageServiceTestSuite) TestModifyProfilePartialUpdate() {
	user, err := s.service.ModifyProfile(s.user.ID, &ModifyProfileRequest{Nickname: "renamed"})
	s.NoError(err)
	s.Equal("renamed", user.Nickname)
	s.Equal("user@example.com", user.Email)
}

func (s *MypageServiceTestSuite) TestDefaultAddressSwitches() {
	first, err := s.service.CreateAddress(s.user.ID, &AddressRequest{
		Name: "Home", Address: "1 Main St", IsDefault: true,
	})
	s.Require().NoError(err)

	second, err := s.service.CreateAddress(s.user.ID, &AddressRequest{
		Name: "Office", Address: "2 Work Ave", IsDefault: true,
	})
	s.Require().NoError(err)
	s.True(second.IsDefault)

	var reloaded models.Address
	s.Require().NoError(s.db.First(&reloaded, first.ID).Error)
	s.False(reloaded.IsDefault)
}

func (s *MypageServiceTestSuite) TestAddressOwnership() {
	other := &models.User{Email: "other@example.com", Nickname: "other"}
	s.Require().NoError(other.SetPassword("Str0ng!pass"))
	s.Require().NoError(s.db.Create(other).Error)

	address, err := s.service.CreateAddress(other.ID, &AddressRequest{
		Name: "Home", Address: "1 Main St",
	})
	s.Require().NoError(err)

	err = s.service.DeleteAddress(s.user.ID, address.ID)
	s.ErrorIs(err, ErrUnauthorized)
}

func (s *MypageServiceTestSuite) TestUpsertAccount() {
	account, err := s.service.UpsertAccount(s.user.ID, &AccountRequest{
		BankName: "Kookmin", AccountNum: "110-123", Depositor: "tester",
	})
	s.Require().NoError(err)

	updated, err := s.service.UpsertAccount(s.user.ID, &AccountRequest{
		BankName: "Shinhan", AccountNum: "110-456", Depositor: "tester",
	})
	s.NoError(err)
	s.Equal(account.ID, updated.ID)
	s.Equal("Shinhan", updated.BankName)

	var count int64
	s.db.Model(&models.Account{}).Where("user_id = ?", s.user.ID).Count(&count)
	s.Equal(int64(1), count)
}

func (s *MypageServiceTestSuite) TestBookmarkLifecycle() {
	product := &models.Product{
		ModelNum: "DD1391-100", ProductSize: "270", ProductName: "Dunk Low",
		OriginalPrice: 129000, Status: models.ProductStatusRegistered,
	}
	s.Require().NoError(s.db.Create(product).Error)

	_, err := s.service.AddBookmark(s.user.ID, product.ID)
	s.Require().NoError(err)

	_, err = s.service.AddBookmark(s.user.ID, product.ID)
	s.ErrorIs(err, ErrStateConflict)

	bookmarks, err := s.service.ListBookmarks(s.user.ID)
	s.NoError(err)
	s.Len(bookmarks, 1)

	s.NoError(s.service.RemoveBookmark(s.user.ID, product.ID))
	s.ErrorIs(s.service.RemoveBookmark(s.user.ID, product.ID), ErrNotFound)
}

func TestMypageServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MypageServiceTestSuite))
}
