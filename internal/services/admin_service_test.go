// internal/services/admin_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jong1uk/Auction-Back/internal/models"
	"github.com/jong1uk/Auction-Back/internal/utils"
)

type AdminServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AdminService
}

func (s *AdminServiceTestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open("file:admintest?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	err = db.AutoMigrate(&models.User{}, &models.Product{}, &models.BuyingBid{}, &models.SalesBid{})
	s.Require().NoError(err)

	s.db = db
	s.service = NewAdminService(db)
}

func (s *AdminServiceTestSuite) SetupTest() {
	s.db.Exec("DELETE FROM buying_bids")
	s.db.Exec("DELETE FROM sales_bids")
	s.db.Exec("DELETE FROM products")
	s.db.Exec("DELETE FROM users")
}

func (s *AdminServiceTestSuite) createProduct(modelNum, size string, status models.ProductStatus) *models.Product {
	product := &models.Product{
		ModelNum:       modelNum,
		ProductSize:    size,
		ProductName:    "Test Shoe",
		MainDepartment: "sneakers",
		OriginalPrice:  100000,
		Status:         status,
	}
	s.Require().NoError(s.db.Create(product).Error)
	return product
}

func (s *AdminServiceTestSuite) TestCreateProductRequest() {
	product, err := s.service.CreateProductRequest(&ProductRequestInput{
		ModelNum:       "DD1391-100",
		ProductSize:    "270",
		ProductName:    "Dunk Low",
		MainDepartment: "sneakers",
		OriginalPrice:  129000,
	})
	s.NoError(err)
	s.Equal(models.ProductStatusRequest, product.Status)
	s.NotZero(product.ID)
}

func (s *AdminServiceTestSuite) TestAcceptProductRequest() {
	product := s.createProduct("DD1391-100", "270", models.ProductStatusRequest)

	registered, err := s.service.AcceptProductRequest(product.ID)
	s.NoError(err)
	s.Equal(models.ProductStatusRegistered, registered.Status)
	s.NotNil(registered.LatestDate)
}

func (s *AdminServiceTestSuite) TestAcceptProductRequestDuplicateRejected() {
	s.createProduct("DD1391-100", "270", models.ProductStatusRegistered)
	request := s.createProduct("DD1391-100", "270", models.ProductStatusRequest)

	_, err := s.service.AcceptProductRequest(request.ID)
	s.ErrorIs(err, ErrDuplicateProduct)

	// The REQUEST row is untouched.
	var reloaded models.Product
	s.Require().NoError(s.db.First(&reloaded, request.ID).Error)
	s.Equal(models.ProductStatusRequest, reloaded.Status)
}

func (s *AdminServiceTestSuite) TestAcceptProductRequestSingleUse() {
	product := s.createProduct("DD1391-100", "270", models.ProductStatusRequest)

	_, err := s.service.AcceptProductRequest(product.ID)
	s.Require().NoError(err)

	_, err = s.service.AcceptProductRequest(product.ID)
	s.ErrorIs(err, ErrStateConflict)
}

func (s *AdminServiceTestSuite) TestAcceptProductRequestNotFound() {
	_, err := s.service.AcceptProductRequest(99999)
	s.ErrorIs(err, ErrNotFound)
}

func (s *AdminServiceTestSuite) TestAcceptSalesApprovalIncrementsQuantityOnce() {
	product := s.createProduct("DD1391-100", "270", models.ProductStatusRegistered)

	bid := &models.SalesBid{
		ProductID: product.ID,
		UserID:    1,
		Price:     130000,
		Quantity:  1,
		Status:    models.SalesStatusInspection,
		BidTime:   time.Now(),
	}
	s.Require().NoError(s.db.Create(bid).Error)

	approved, err := s.service.AcceptSalesApproval(bid.ID)
	s.NoError(err)
	s.Equal(models.SalesStatusProcess, approved.Status)

	var reloaded models.Product
	s.Require().NoError(s.db.First(&reloaded, product.ID).Error)
	s.Equal(1, reloaded.Quantity)

	// The transition is single-use; quantity must not double-count.
	_, err = s.service.AcceptSalesApproval(bid.ID)
	s.ErrorIs(err, ErrStateConflict)

	s.Require().NoError(s.db.First(&reloaded, product.ID).Error)
	s.Equal(1, reloaded.Quantity)
}

func (s *AdminServiceTestSuite) TestAcceptSalesApprovalNotFound() {
	_, err := s.service.AcceptSalesApproval(99999)
	s.ErrorIs(err, ErrNotFound)
}

func (s *AdminServiceTestSuite) TestListRequestedProducts() {
	s.createProduct("DD1391-100", "270", models.ProductStatusRequest)
	s.createProduct("DD1391-100", "280", models.ProductStatusRequest)
	s.createProduct("CW2288-111", "270", models.ProductStatusRegistered)

	result, err := s.service.ListRequestedProducts(utils.PaginationParams{
		Page: 1, Limit: 10, Sort: "created_at", Order: "desc",
	})
	s.NoError(err)
	s.Equal(int64(2), result.Total)
}

func TestAdminServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceTestSuite))
}
