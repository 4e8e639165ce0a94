// internal/services/price_service.go
package services

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jong1uk/Auction-Back/internal/models"
)

// PriceService resolves current best bid/ask, the recent contract price
// cache, grouped size summaries, and historical averages for a product
// family (all size variants sharing a model number).
type PriceService struct {
	db *gorm.DB

	// Per-model-number locks serializing the recent-contract cache shift.
	// The conditional UPDATE keyed on latest_date is the real authority;
	// the lock just keeps concurrent callers from racing to the same write.
	locks sync.Map
}

func NewPriceService(db *gorm.DB) *PriceService {
	return &PriceService{db: db}
}

// PriceQuote carries the best open bid and ask. Zero prices are sentinels
// for "no open order"; HasBid/HasAsk disambiguate.
type PriceQuote struct {
	BestBid int64 `json:"best_bid"`
	BestAsk int64 `json:"best_ask"`
	HasBid  bool  `json:"has_bid"`
	HasAsk  bool  `json:"has_ask"`
}

// RecentPrice is the cached projection of the most recent completed trade.
type RecentPrice struct {
	LatestPrice        int64      `json:"latest_price"`
	PreviousPrice      int64      `json:"previous_price"`
	ChangePercentage   float64    `json:"change_percentage"`
	DifferenceContract int64      `json:"difference_contract"`
	TradeTime          *time.Time `json:"trade_time"`
}

// SizePrice is one per-size row of a grouped bid/ask summary.
type SizePrice struct {
	Size  string `json:"size"`
	Price int64  `json:"price"`
}

// HopeEntry is one merged open-order row; identical (size, price) orders
// collapse into a single entry with summed quantity.
type HopeEntry struct {
	Size     string `json:"size"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// ContractPoint is one completed trade in the contract history.
type ContractPoint struct {
	Price     int64     `json:"price"`
	TradeTime time.Time `json:"trade_time"`
}

// AveragePricePoint is the mean completed-trade price inside one time bucket.
type AveragePricePoint struct {
	BucketStart  time.Time `json:"bucket_start"`
	AveragePrice int64     `json:"average_price"`
	TradeCount   int       `json:"trade_count"`
}

// AveragePriceSeries holds the bucketed averages for the standard windows
// plus the whole-history mean.
type AveragePriceSeries struct {
	ThreeDay  []AveragePricePoint `json:"three_day"`
	OneMonth  []AveragePricePoint `json:"one_month"`
	SixMonth  []AveragePricePoint `json:"six_month"`
	OneYear   []AveragePricePoint `json:"one_year"`
	AllTime   int64               `json:"all_time"`
	HasTrades bool                `json:"has_trades"`
}

func (s *PriceService) lockFor(modelNum string) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(modelNum, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// ResolveCurrentPrices returns the best open bid (minimum buying price) and
// best open ask (maximum sales price) for a registered product family,
// optionally scoped to one size. Missing product yields ErrNotFound; a
// product with no open orders yields zero values with Has* false.
func (s *PriceService) ResolveCurrentPrices(modelNum, size string) (*PriceQuote, error) {
	query := s.db.Model(&models.Product{}).
		Where("model_num = ? AND status = ?", modelNum, models.ProductStatusRegistered)
	if size != "" {
		query = query.Where("product_size = ?", size)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("product %s: %w", modelNum, ErrNotFound)
	}

	quote := &PriceQuote{}

	var minBid sql.NullInt64
	bidQuery := s.db.Model(&models.BuyingBid{}).
		Select("MIN(buying_bids.price)").
		Joins("JOIN products ON products.id = buying_bids.product_id").
		Where("products.model_num = ? AND products.status = ?", modelNum, models.ProductStatusRegistered).
		Where("buying_bids.status = ?", models.BiddingStatusProcess)
	if size != "" {
		bidQuery = bidQuery.Where("products.product_size = ?", size)
	}
	if err := bidQuery.Scan(&minBid).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve best bid: %w", err)
	}
	if minBid.Valid {
		quote.BestBid = minBid.Int64
		quote.HasBid = true
	}

	var maxAsk sql.NullInt64
	askQuery := s.db.Model(&models.SalesBid{}).
		Select("MAX(sales_bids.price)").
		Joins("JOIN products ON products.id = sales_bids.product_id").
		Where("products.model_num = ? AND products.status = ?", modelNum, models.ProductStatusRegistered).
		Where("sales_bids.status = ?", models.SalesStatusProcess)
	if size != "" {
		askQuery = askQuery.Where("products.product_size = ?", size)
	}
	if err := askQuery.Scan(&maxAsk).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve best ask: %w", err)
	}
	if maxAsk.Valid {
		quote.BestAsk = maxAsk.Int64
		quote.HasAsk = true
	}

	return quote, nil
}

// ResolveRecentContract returns the recent-contract cache for a model
// number, shifting it first when a newer completed trade exists. The shift
// happens at most once per trade: callers serialize on a per-model lock and
// the persisted write is conditional on the latest_date the caller read.
func (s *PriceService) ResolveRecentContract(modelNum string) (*RecentPrice, error) {
	mu := s.lockFor(modelNum)
	mu.Lock()
	defer mu.Unlock()

	product, err := s.loadCacheRow(modelNum)
	if err != nil {
		return nil, err
	}

	// An absent latest_date means the cache was never initialized for this
	// family; treat "now" as the watermark so nothing older sneaks in.
	lastChecked := time.Now()
	if product.LatestDate != nil {
		lastChecked = *product.LatestDate
	}

	trade, err := s.newestTrade(modelNum)
	if err != nil {
		return nil, err
	}
	if trade == nil || !trade.BidTime.After(lastChecked) {
		return cachedRecentPrice(product), nil
	}

	previous := product.LatestPrice
	difference := trade.Price - previous
	percentage := ChangePercentage(previous, trade.Price)
	if previous == 0 {
		logrus.WithFields(logrus.Fields{
			"model_num":    modelNum,
			"latest_price": trade.Price,
		}).Warn("Recent-contract shift with zero previous price; reporting 0% change")
	}

	// One conditional UPDATE keyed on the watermark we read; it is its own
	// transaction, and all five cache fields land atomically.
	res := s.db.Model(&models.Product{}).
		Where("model_num = ? AND latest_date = ?", modelNum, product.LatestDate).
		Updates(map[string]interface{}{
			"previous_price":      previous,
			"latest_price":        trade.Price,
			"previous_percentage": percentage,
			"difference_contract": difference,
			"latest_date":         trade.BidTime,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to persist recent-contract cache: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		logrus.WithField("model_num", modelNum).
			Debug("Recent-contract shift lost to a concurrent writer; keeping theirs")
	}

	// Re-read so a lost conditional update still returns the winning state.
	product, err = s.loadCacheRow(modelNum)
	if err != nil {
		return nil, err
	}
	return cachedRecentPrice(product), nil
}

func (s *PriceService) loadCacheRow(modelNum string) (*models.Product, error) {
	// The family's watermark is its newest latest_date across size variants;
	// a variant registered later must not drag the watermark backwards.
	var product models.Product
	err := s.db.Where("model_num = ? AND status = ?", modelNum, models.ProductStatusRegistered).
		Order("latest_date DESC NULLS LAST").
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", modelNum, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return &product, nil
}

// A trade exists only where both sides completed: a COMPLETE sales bid on a
// registered product that has a COMPLETE buying bid. A sales bid marked
// COMPLETE with no completed buy side is not a contract.
func (s *PriceService) newestTrade(modelNum string) (*models.SalesBid, error) {
	var trade models.SalesBid
	err := s.db.Model(&models.SalesBid{}).
		Select("DISTINCT sales_bids.*").
		Joins("JOIN products ON products.id = sales_bids.product_id").
		Joins("JOIN buying_bids ON buying_bids.product_id = sales_bids.product_id AND buying_bids.status = ?",
			models.BiddingStatusComplete).
		Where("products.model_num = ? AND products.status = ?", modelNum, models.ProductStatusRegistered).
		Where("sales_bids.status = ?", models.SalesStatusComplete).
		Order("sales_bids.bid_time DESC").
		First(&trade).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query completed trades: %w", err)
	}
	return &trade, nil
}

func cachedRecentPrice(product *models.Product) *RecentPrice {
	return &RecentPrice{
		LatestPrice:        product.LatestPrice,
		PreviousPrice:      product.PreviousPrice,
		ChangePercentage:   product.PreviousPercentage,
		DifferenceContract: product.DifferenceContract,
		TradeTime:          product.LatestDate,
	}
}

// ChangePercentage computes the percentage delta between two contract
// prices, rounded to one decimal. A zero previous price reports 0 instead
// of dividing by zero.
func ChangePercentage(previous, latest int64) float64 {
	if previous == 0 {
		return 0
	}
	raw := (float64(latest-previous) / float64(previous)) * 100
	return math.Round(raw*10) / 10
}

// GroupOpenBidsBySize reports the minimum open buying price per size,
// ascending by that minimum.
func (s *PriceService) GroupOpenBidsBySize(modelNum string) ([]SizePrice, error) {
	var rows []SizePrice
	err := s.db.Model(&models.BuyingBid{}).
		Select("products.product_size AS size, MIN(buying_bids.price) AS price").
		Joins("JOIN products ON products.id = buying_bids.product_id").
		Where("products.model_num = ? AND products.status = ?", modelNum, models.ProductStatusRegistered).
		Where("buying_bids.status = ?", models.BiddingStatusProcess).
		Group("products.product_size").
		Order("price ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group bids by size: %w", err)
	}
	return rows, nil
}

// GroupOpenAsksBySize reports the maximum open sales price per size,
// descending by that maximum.
func (s *PriceService) GroupOpenAsksBySize(modelNum string) ([]SizePrice, error) {
	var rows []SizePrice
	err := s.db.Model(&models.SalesBid{}).
		Select("products.product_size AS size, MAX(sales_bids.price) AS price").
		Joins("JOIN products ON products.id = sales_bids.product_id").
		Where("products.model_num = ? AND products.status = ?", modelNum, models.ProductStatusRegistered).
		Where("sales_bids.status = ?", models.SalesStatusProcess).
		Group("products.product_size").
		Order("price DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group asks by size: %w", err)
	}
	return rows, nil
}

// ListBuyingHopes lists open buy orders merged by (size, price) with
// summed quantities, in first-seen order.
func (s *PriceService) ListBuyingHopes(modelNum string) ([]HopeEntry, error) {
	var raw []HopeEntry
	err := s.db.Model(&models.BuyingBid{}).
		Select("products.product_size AS size, buying_bids.price AS price, buying_bids.quantity AS quantity").
		Joins("JOIN products ON products.id = buying_bids.product_id").
		Where("products.model_num = ? AND products.status = ?", modelNum, models.ProductStatusRegistered).
		Where("buying_bids.status = ?", models.BiddingStatusProcess).
		Order("buying_bids.id ASC").
		Scan(&raw).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list buying hopes: %w", err)
	}
	return MergeHopes(raw), nil
}

// ListSalesHopes lists open sell orders merged by (size, price) with
// summed quantities, in first-seen order.
func (s *PriceService) ListSalesHopes(modelNum string) ([]HopeEntry, error) {
	var raw []HopeEntry
	err := s.db.Model(&models.SalesBid{}).
		Select("products.product_size AS size, sales_bids.price AS price, sales_bids.quantity AS quantity").
		Joins("JOIN products ON products.id = sales_bids.product_id").
		Where("products.model_num = ? AND products.status = ?", modelNum, models.ProductStatusRegistered).
		Where("sales_bids.status = ?", models.SalesStatusProcess).
		Order("sales_bids.id ASC").
		Scan(&raw).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sales hopes: %w", err)
	}
	return MergeHopes(raw), nil
}

// MergeHopes collapses entries sharing (size, price) into one row with the
// quantities summed, keeping the order the first occurrence appeared in.
func MergeHopes(entries []HopeEntry) []HopeEntry {
	type key struct {
		size  string
		price int64
	}

	merged := make([]HopeEntry, 0, len(entries))
	index := make(map[key]int, len(entries))

	for _, entry := range entries {
		k := key{size: entry.Size, price: entry.Price}
		if i, ok := index[k]; ok {
			merged[i].Quantity += entry.Quantity
			continue
		}
		index[k] = len(merged)
		merged = append(merged, entry)
	}

	return merged
}

// ListContractHistory returns completed trades for a model number, newest
// first, capped at limit (0 means no cap).
func (s *PriceService) ListContractHistory(modelNum string, limit int) ([]ContractPoint, error) {
	query := s.db.Model(&models.SalesBid{}).
		Select("DISTINCT sales_bids.price AS price, sales_bids.bid_time AS trade_time").
		Joins("JOIN products ON products.id = sales_bids.product_id").
		Joins("JOIN buying_bids ON buying_bids.product_id = sales_bids.product_id AND buying_bids.status = ?",
			models.BiddingStatusComplete).
		Where("products.model_num = ? AND products.status = ?", modelNum, models.ProductStatusRegistered).
		Where("sales_bids.status = ?", models.SalesStatusComplete).
		Order("sales_bids.bid_time DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var points []ContractPoint
	if err := query.Scan(&points).Error; err != nil {
		return nil, fmt.Errorf("failed to list contract history: %w", err)
	}
	return points, nil
}

// Standard chart windows: window length paired with bucket width.
var averageWindows = []struct {
	window   time.Duration
	interval time.Duration
}{
	{3 * 24 * time.Hour, 3 * time.Hour},
	{30 * 24 * time.Hour, 24 * time.Hour},
	{180 * 24 * time.Hour, 168 * time.Hour},
	{365 * 24 * time.Hour, 7200 * time.Hour},
}

// AveragePrices buckets the completed-trade history into the standard chart
// windows and reports the arithmetic mean per bucket, plus the whole-history
// mean. Empty buckets are omitted.
func (s *PriceService) AveragePrices(modelNum string) (*AveragePriceSeries, error) {
	trades, err := s.ListContractHistory(modelNum, 0)
	if err != nil {
		return nil, err
	}

	series := &AveragePriceSeries{}
	if len(trades) == 0 {
		return series, nil
	}
	series.HasTrades = true

	var sum int64
	for _, t := range trades {
		sum += t.Price
	}
	series.AllTime = sum / int64(len(trades))

	now := time.Now()
	series.ThreeDay = BucketAverages(trades, now.Add(-averageWindows[0].window), averageWindows[0].interval)
	series.OneMonth = BucketAverages(trades, now.Add(-averageWindows[1].window), averageWindows[1].interval)
	series.SixMonth = BucketAverages(trades, now.Add(-averageWindows[2].window), averageWindows[2].interval)
	series.OneYear = BucketAverages(trades, now.Add(-averageWindows[3].window), averageWindows[3].interval)

	return series, nil
}

// BucketAverages groups trades at or after since into fixed-width intervals
// anchored at since and averages each bucket. Buckets with no trades are
// dropped; output is ordered by bucket start ascending.
func BucketAverages(trades []ContractPoint, since time.Time, interval time.Duration) []AveragePricePoint {
	type bucket struct {
		sum   int64
		count int
	}
	buckets := make(map[int64]*bucket)

	for _, t := range trades {
		if t.TradeTime.Before(since) {
			continue
		}
		idx := int64(t.TradeTime.Sub(since) / interval)
		b, ok := buckets[idx]
		if !ok {
			b = &bucket{}
			buckets[idx] = b
		}
		b.sum += t.Price
		b.count++
	}

	if len(buckets) == 0 {
		return nil
	}

	indexes := make([]int64, 0, len(buckets))
	for idx := range buckets {
		indexes = append(indexes, idx)
	}
	sort.Slice(indexes, func(i, j int) bool { return indexes[i] < indexes[j] })

	points := make([]AveragePricePoint, 0, len(indexes))
	for _, idx := range indexes {
		b := buckets[idx]
		points = append(points, AveragePricePoint{
			BucketStart:  since.Add(time.Duration(idx) * interval),
			AveragePrice: b.sum / int64(b.count),
			TradeCount:   b.count,
		})
	}
	return points
}
