// internal/services/price_service_test.go
package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jong1uk/Auction-Back/internal/models"
)

type PriceServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *PriceService
}

func (s *PriceServiceTestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open("file:pricetest?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	err = db.AutoMigrate(&models.User{}, &models.Product{}, &models.BuyingBid{}, &models.SalesBid{})
	s.Require().NoError(err)

	s.db = db
	s.service = NewPriceService(db)
}

func (s *PriceServiceTestSuite) SetupTest() {
	s.db.Exec("DELETE FROM buying_bids")
	s.db.Exec("DELETE FROM sales_bids")
	s.db.Exec("DELETE FROM products")
	s.db.Exec("DELETE FROM users")
}

func (s *PriceServiceTestSuite) createProduct(modelNum, size string, watermark time.Time) *models.Product {
	product := &models.Product{
		ModelNum:       modelNum,
		ProductSize:    size,
		ProductName:    "Test Shoe",
		MainDepartment: "sneakers",
		OriginalPrice:  100000,
		Status:         models.ProductStatusRegistered,
		LatestDate:     &watermark,
	}
	s.Require().NoError(s.db.Create(product).Error)
	return product
}

func (s *PriceServiceTestSuite) createBuyingBid(productID, price int64, qty int) *models.BuyingBid {
	bid := &models.BuyingBid{
		ProductID: productID,
		UserID:    1,
		Price:     price,
		Quantity:  qty,
		Status:    models.BiddingStatusProcess,
		BidTime:   time.Now(),
	}
	s.Require().NoError(s.db.Create(bid).Error)
	return bid
}

func (s *PriceServiceTestSuite) createSalesBid(productID, price int64, status models.SalesStatus, bidTime time.Time) *models.SalesBid {
	bid := &models.SalesBid{
		ProductID: productID,
		UserID:    1,
		Price:     price,
		Quantity:  1,
		Status:    status,
		BidTime:   bidTime,
	}
	s.Require().NoError(s.db.Create(bid).Error)
	return bid
}

// completeTrade records a contract: both the sell side and a matching buy
// side reach COMPLETE.
func (s *PriceServiceTestSuite) completeTrade(productID, price int64, bidTime time.Time) {
	s.createSalesBid(productID, price, models.SalesStatusComplete, bidTime)
	buy := &models.BuyingBid{
		ProductID: productID,
		UserID:    2,
		Price:     price,
		Quantity:  1,
		Status:    models.BiddingStatusComplete,
		BidTime:   bidTime,
	}
	s.Require().NoError(s.db.Create(buy).Error)
}

func (s *PriceServiceTestSuite) TestResolveCurrentPricesNoBids() {
	s.createProduct("DD1391-100", "270", time.Now())

	quote, err := s.service.ResolveCurrentPrices("DD1391-100", "")
	s.NoError(err)
	s.Equal(int64(0), quote.BestBid)
	s.Equal(int64(0), quote.BestAsk)
	s.False(quote.HasBid)
	s.False(quote.HasAsk)
}

func (s *PriceServiceTestSuite) TestResolveCurrentPricesUnknownProduct() {
	_, err := s.service.ResolveCurrentPrices("NO-SUCH", "")
	s.ErrorIs(err, ErrNotFound)
}

func (s *PriceServiceTestSuite) TestBestBidIsMinimum() {
	product := s.createProduct("DD1391-100", "270", time.Now())
	s.createBuyingBid(product.ID, 120000, 1)
	s.createBuyingBid(product.ID, 95000, 1)

	quote, err := s.service.ResolveCurrentPrices("DD1391-100", "")
	s.NoError(err)
	s.True(quote.HasBid)
	s.Equal(int64(95000), quote.BestBid)

	// A lower bid strictly decreases the best bid.
	s.createBuyingBid(product.ID, 90000, 1)
	quote, err = s.service.ResolveCurrentPrices("DD1391-100", "")
	s.NoError(err)
	s.Equal(int64(90000), quote.BestBid)
}

func (s *PriceServiceTestSuite) TestBestAskIsMaximumOfOpenAsks() {
	product := s.createProduct("DD1391-100", "270", time.Now())
	s.createSalesBid(product.ID, 130000, models.SalesStatusProcess, time.Now())
	s.createSalesBid(product.ID, 150000, models.SalesStatusProcess, time.Now())
	// Under inspection, so excluded.
	s.createSalesBid(product.ID, 999999, models.SalesStatusInspection, time.Now())

	quote, err := s.service.ResolveCurrentPrices("DD1391-100", "")
	s.NoError(err)
	s.True(quote.HasAsk)
	s.Equal(int64(150000), quote.BestAsk)
}

func (s *PriceServiceTestSuite) TestRecentContractShiftAndIdempotentRead() {
	watermark := time.Now().Add(-time.Hour)
	s.createProduct("DD1391-100", "270", watermark)
	product := s.loadProduct("DD1391-100")

	t1 := time.Now().Add(-30 * time.Minute)
	s.completeTrade(product.ID, 110000, t1)

	recent, err := s.service.ResolveRecentContract("DD1391-100")
	s.NoError(err)
	s.Equal(int64(110000), recent.LatestPrice)

	// Second trade shifts the chain once.
	t2 := time.Now().Add(-10 * time.Minute)
	s.completeTrade(product.ID, 121000, t2)

	recent, err = s.service.ResolveRecentContract("DD1391-100")
	s.NoError(err)
	s.Equal(int64(121000), recent.LatestPrice)
	s.Equal(int64(110000), recent.PreviousPrice)
	s.Equal(int64(11000), recent.DifferenceContract)
	s.Equal(10.0, recent.ChangePercentage)

	// No new trade: repeated reads return identical values, no re-shift.
	again, err := s.service.ResolveRecentContract("DD1391-100")
	s.NoError(err)
	s.Equal(recent, again)
	s.Equal(int64(110000), again.PreviousPrice)
}

func (s *PriceServiceTestSuite) TestRecentContractShiftAtMostOnceUnderConcurrency() {
	watermark := time.Now().Add(-time.Hour)
	s.createProduct("DD1391-100", "270", watermark)
	product := s.loadProduct("DD1391-100")

	s.completeTrade(product.ID, 110000, time.Now().Add(-30*time.Minute))
	_, err := s.service.ResolveRecentContract("DD1391-100")
	s.Require().NoError(err)

	s.completeTrade(product.ID, 121000, time.Now().Add(-10*time.Minute))

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.service.ResolveRecentContract("DD1391-100")
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		s.NoError(err)
	}

	// Exactly one shift: previous is the first trade, never the second.
	final := s.loadProduct("DD1391-100")
	s.Equal(int64(121000), final.LatestPrice)
	s.Equal(int64(110000), final.PreviousPrice)
}

func (s *PriceServiceTestSuite) TestRecentContractZeroPreviousGuard() {
	// Product registered with a zero latest price; first trade divides by
	// nothing and must report a 0% change.
	watermark := time.Now().Add(-time.Hour)
	s.createProduct("DD1391-100", "270", watermark)
	product := s.loadProduct("DD1391-100")

	s.completeTrade(product.ID, 110000, time.Now().Add(-5*time.Minute))

	recent, err := s.service.ResolveRecentContract("DD1391-100")
	s.NoError(err)
	s.Equal(int64(110000), recent.LatestPrice)
	s.Equal(int64(0), recent.PreviousPrice)
	s.Equal(0.0, recent.ChangePercentage)
}

func (s *PriceServiceTestSuite) TestRecentContractIgnoresSalesOnlyCompletion() {
	watermark := time.Now().Add(-time.Hour)
	s.createProduct("DD1391-100", "270", watermark)
	product := s.loadProduct("DD1391-100")

	// Sell side marked COMPLETE with no completed buy side: not a contract.
	s.createSalesBid(product.ID, 110000, models.SalesStatusComplete, time.Now().Add(-5*time.Minute))

	recent, err := s.service.ResolveRecentContract("DD1391-100")
	s.NoError(err)
	s.Equal(int64(0), recent.LatestPrice)
	s.Equal(watermark.Unix(), recent.TradeTime.Unix())

	history, err := s.service.ListContractHistory("DD1391-100", 0)
	s.NoError(err)
	s.Empty(history)
}

func (s *PriceServiceTestSuite) TestRecentContractUsesNewestVariantWatermark() {
	// First variant registered two hours ago, second thirty minutes ago.
	oldWatermark := time.Now().Add(-2 * time.Hour)
	newWatermark := time.Now().Add(-30 * time.Minute)
	s.createProduct("DD1391-100", "270", oldWatermark)
	s.createProduct("DD1391-100", "280", newWatermark)
	product := s.loadProduct("DD1391-100")

	// A trade older than the newest watermark must not shift the cache,
	// even though it is newer than the first variant's watermark.
	s.completeTrade(product.ID, 110000, time.Now().Add(-time.Hour))

	recent, err := s.service.ResolveRecentContract("DD1391-100")
	s.NoError(err)
	s.Equal(int64(0), recent.LatestPrice)
	s.Equal(newWatermark.Unix(), recent.TradeTime.Unix())
}

func (s *PriceServiceTestSuite) TestGroupOpenBidsBySize() {
	p270 := s.createProduct("DD1391-100", "270", time.Now())
	p280 := s.createProduct("DD1391-100", "280", time.Now())

	s.createBuyingBid(p270.ID, 100000, 1)
	s.createBuyingBid(p270.ID, 95000, 1)
	s.createBuyingBid(p280.ID, 90000, 1)

	rows, err := s.service.GroupOpenBidsBySize("DD1391-100")
	s.NoError(err)
	s.Require().Len(rows, 2)
	// Ascending by per-size minimum.
	s.Equal(SizePrice{Size: "280", Price: 90000}, rows[0])
	s.Equal(SizePrice{Size: "270", Price: 95000}, rows[1])
}

func (s *PriceServiceTestSuite) TestListBuyingHopesMergesDuplicates() {
	p270 := s.createProduct("DD1391-100", "270", time.Now())

	s.createBuyingBid(p270.ID, 100000, 1)
	s.createBuyingBid(p270.ID, 100000, 2)
	s.createBuyingBid(p270.ID, 95000, 1)

	hopes, err := s.service.ListBuyingHopes("DD1391-100")
	s.NoError(err)
	s.Require().Len(hopes, 2)
	s.Equal(HopeEntry{Size: "270", Price: 100000, Quantity: 3}, hopes[0])
	s.Equal(HopeEntry{Size: "270", Price: 95000, Quantity: 1}, hopes[1])
}

func (s *PriceServiceTestSuite) loadProduct(modelNum string) *models.Product {
	var product models.Product
	s.Require().NoError(s.db.Where("model_num = ?", modelNum).Order("id ASC").First(&product).Error)
	return &product
}

func TestPriceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PriceServiceTestSuite))
}

func TestChangePercentage(t *testing.T) {
	assert.Equal(t, 10.0, ChangePercentage(100, 110))
	assert.Equal(t, -10.0, ChangePercentage(100, 90))
	assert.Equal(t, 0.0, ChangePercentage(0, 110))
	assert.Equal(t, 33.3, ChangePercentage(3, 4))
}

func TestMergeHopes(t *testing.T) {
	merged := MergeHopes([]HopeEntry{
		{Size: "270", Price: 100, Quantity: 1},
		{Size: "280", Price: 100, Quantity: 1},
		{Size: "270", Price: 100, Quantity: 2},
		{Size: "270", Price: 90, Quantity: 1},
	})

	assert.Equal(t, []HopeEntry{
		{Size: "270", Price: 100, Quantity: 3},
		{Size: "280", Price: 100, Quantity: 1},
		{Size: "270", Price: 90, Quantity: 1},
	}, merged)
}

func TestMergeHopesEmpty(t *testing.T) {
	assert.Empty(t, MergeHopes(nil))
}

func TestBucketAverages(t *testing.T) {
	since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	trades := []ContractPoint{
		{Price: 100, TradeTime: since.Add(1 * time.Hour)},
		{Price: 200, TradeTime: since.Add(2 * time.Hour)},
		{Price: 300, TradeTime: since.Add(25 * time.Hour)},
		// Before the window, dropped.
		{Price: 999, TradeTime: since.Add(-time.Hour)},
	}

	points := BucketAverages(trades, since, 24*time.Hour)
	assert.Equal(t, []AveragePricePoint{
		{BucketStart: since, AveragePrice: 150, TradeCount: 2},
		{BucketStart: since.Add(24 * time.Hour), AveragePrice: 300, TradeCount: 1},
	}, points)
}

func TestBucketAveragesNoTrades(t *testing.T) {
	assert.Nil(t, BucketAverages(nil, time.Now(), time.Hour))
}
