// internal/services/product_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jong1uk/Auction-Back/internal/models"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ProductService
}

func (s *ProductServiceTestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open("file:producttest?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	err = db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.BuyingBid{},
		&models.SalesBid{}, &models.PhotoReview{},
	)
	s.Require().NoError(err)

	s.db = db
	s.service = NewProductService(db, NewPriceService(db))
}

func (s *ProductServiceTestSuite) SetupTest() {
	for _, table := range []string{"photo_reviews", "buying_bids", "sales_bids", "products", "users"} {
		s.db.Exec("DELETE FROM " + table)
	}
}

func (s *ProductServiceTestSuite) createProduct(modelNum, size string) *models.Product {
	now := time.Now()
	product := &models.Product{
		ModelNum:       modelNum,
		ProductSize:    size,
		ProductName:    "Shoe " + modelNum,
		MainDepartment: "sneakers",
		SubDepartment:  "dunk",
		OriginalPrice:  129000,
		Status:         models.ProductStatusRegistered,
		LatestDate:     &now,
	}
	s.Require().NoError(s.db.Create(product).Error)
	return product
}

func (s *ProductServiceTestSuite) TestBoardFallsBackToOriginalPrice() {
	s.createProduct("DD1391-100", "270")

	boards, err := s.service.ListMainDepartment("sneakers")
	s.NoError(err)
	s.Require().Len(boards, 1)
	s.Equal(int64(129000), boards[0].LowestPrice)
	s.Equal(int64(0), boards[0].OpenBuying)
}

func (s *ProductServiceTestSuite) TestBoardUsesLowestOpenBid() {
	product := s.createProduct("DD1391-100", "270")
	s.createProduct("DD1391-100", "280")

	bid := &models.BuyingBid{
		ProductID: product.ID, UserID: 1, Price: 95000, Quantity: 1,
		Status: models.BiddingStatusProcess, BidTime: time.Now(),
	}
	s.Require().NoError(s.db.Create(bid).Error)

	boards, err := s.service.ListMainDepartment("sneakers")
	s.NoError(err)
	// One row per family despite two size variants.
	s.Require().Len(boards, 1)
	s.Equal(int64(95000), boards[0].LowestPrice)
	s.Equal(int64(1), boards[0].OpenBuying)
}

func (s *ProductServiceTestSuite) TestPlaceSellBidEntersInspection() {
	s.createProduct("DD1391-100", "270")

	created, err := s.service.PlaceBid(7, "DD1391-100", &PlaceBidRequest{
		Side: "sell", Size: "270", Price: 140000,
	})
	s.Require().NoError(err)

	bid, ok := created.(*models.SalesBid)
	s.Require().True(ok)
	s.Equal(models.SalesStatusInspection, bid.Status)
	s.Equal(1, bid.Quantity)
}

func (s *ProductServiceTestSuite) TestPlaceBuyBidOpensImmediately() {
	s.createProduct("DD1391-100", "270")

	created, err := s.service.PlaceBid(7, "DD1391-100", &PlaceBidRequest{
		Side: "buy", Size: "270", Price: 90000, Quantity: 2,
	})
	s.Require().NoError(err)

	bid, ok := created.(*models.BuyingBid)
	s.Require().True(ok)
	s.Equal(models.BiddingStatusProcess, bid.Status)
	s.Equal(2, bid.Quantity)
}

func (s *ProductServiceTestSuite) TestPlaceBidUnknownSize() {
	s.createProduct("DD1391-100", "270")

	_, err := s.service.PlaceBid(7, "DD1391-100", &PlaceBidRequest{
		Side: "buy", Size: "999", Price: 90000,
	})
	s.ErrorIs(err, ErrNotFound)
}

func (s *ProductServiceTestSuite) TestReviewOwnership() {
	s.createProduct("DD1391-100", "270")

	review, err := s.service.CreateReview(7, "DD1391-100", &ReviewRequest{
		ReviewContent: "great fit",
	})
	s.Require().NoError(err)

	_, err = s.service.UpdateReview(8, review.ID, &ReviewRequest{ReviewContent: "edited"})
	s.ErrorIs(err, ErrUnauthorized)

	updated, err := s.service.UpdateReview(7, review.ID, &ReviewRequest{ReviewContent: "edited"})
	s.NoError(err)
	s.Equal("edited", updated.ReviewContent)

	s.ErrorIs(s.service.DeleteReview(8, review.ID), ErrUnauthorized)
	s.NoError(s.service.DeleteReview(7, review.ID))
}

func (s *ProductServiceTestSuite) TestProductDetailComposition() {
	product := s.createProduct("DD1391-100", "270")
	s.createProduct("DD1391-100", "280")

	bid := &models.BuyingBid{
		ProductID: product.ID, UserID: 1, Price: 95000, Quantity: 1,
		Status: models.BiddingStatusProcess, BidTime: time.Now(),
	}
	s.Require().NoError(s.db.Create(bid).Error)

	detail, err := s.service.GetProductDetail("DD1391-100")
	s.NoError(err)
	s.Equal([]string{"270", "280"}, detail.Sizes)
	s.True(detail.Quote.HasBid)
	s.Equal(int64(95000), detail.Quote.BestBid)
	s.False(detail.Averages.HasTrades)
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

func TestSlicePage(t *testing.T) {
	boards := make([]ProductBoard, 5)
	for i := range boards {
		boards[i].ModelNum = string(rune('A' + i))
	}

	first := slicePage(boards, 1, 2)
	assert.True(t, first.HasNext)
	assert.Len(t, first.Data.([]ProductBoard), 2)

	last := slicePage(boards, 3, 2)
	assert.False(t, last.HasNext)
	assert.Len(t, last.Data.([]ProductBoard), 1)

	empty := slicePage(boards, 4, 2)
	assert.False(t, empty.HasNext)
	assert.Empty(t, empty.Data.([]ProductBoard))
}
