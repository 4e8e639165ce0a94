// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/jong1uk/Auction-Back/internal/models"
	"github.com/jong1uk/Auction-Back/internal/utils"
)

// ProductService serves catalog browsing, product detail composition, bid
// placement, and photo reviews. Price math lives in PriceService.
type ProductService struct {
	db     *gorm.DB
	prices *PriceService
}

func NewProductService(db *gorm.DB, prices *PriceService) *ProductService {
	return &ProductService{db: db, prices: prices}
}

// ProductBoard is one product family row on a department board. LowestPrice
// is the lowest open buying bid, falling back to the original listing price
// when the family has no open bids.
type ProductBoard struct {
	ModelNum     string `json:"model_num"`
	ProductBrand string `json:"product_brand"`
	ProductName  string `json:"product_name"`
	ProductImg   string `json:"product_img"`
	LowestPrice  int64  `json:"lowest_price"`
	OpenBuying   int64  `json:"open_buying"`
	OpenSelling  int64  `json:"open_selling"`

	createdAt time.Time
}

// ProductDetail composes everything the product page needs for one family.
type ProductDetail struct {
	ModelNum       string               `json:"model_num"`
	ProductBrand   string               `json:"product_brand"`
	ProductName    string               `json:"product_name"`
	ProductImg     string               `json:"product_img"`
	MainDepartment string               `json:"main_department"`
	SubDepartment  string               `json:"sub_department"`
	OriginalPrice  int64                `json:"original_price"`
	Sizes          []string             `json:"sizes"`
	Recent         *RecentPrice         `json:"recent"`
	Quote          *PriceQuote          `json:"quote"`
	BidsBySize     []SizePrice          `json:"bids_by_size"`
	AsksBySize     []SizePrice          `json:"asks_by_size"`
	BuyingHopes    []HopeEntry          `json:"buying_hopes"`
	SalesHopes     []HopeEntry          `json:"sales_hopes"`
	Averages       *AveragePriceSeries  `json:"averages"`
	History        []ContractPoint      `json:"history"`
	Reviews        []models.PhotoReview `json:"reviews"`
}

type PlaceBidRequest struct {
	Side     string `json:"side" validate:"required,oneof=buy sell"`
	Size     string `json:"size" validate:"required"`
	Price    int64  `json:"price" validate:"required,gt=0"`
	Quantity int    `json:"quantity" validate:"omitempty,gte=1"`
}

type ReviewRequest struct {
	ReviewImg     string `json:"review_img" validate:"omitempty,max=255"`
	ReviewContent string `json:"review_content" validate:"required,max=2000"`
}

// Board sort orders.
const (
	SortLatest  = "latest"
	SortBids    = "bids"
	SortBuying  = "buying"
	SortSelling = "selling"
)

// ListMainDepartment returns the board for a main department sorted by most
// recently registered family.
func (s *ProductService) ListMainDepartment(mainDepartment string) ([]ProductBoard, error) {
	return s.listBoard("main_department = ?", mainDepartment, SortLatest)
}

// ListAllByDepartment returns the full board for a main department with a
// caller-chosen sort order.
func (s *ProductService) ListAllByDepartment(mainDepartment, sortOrder string) ([]ProductBoard, error) {
	return s.listBoard("main_department = ?", mainDepartment, sortOrder)
}

// ListSubDepartment slice-paginates the board for a sub department. HasNext
// comes from fetching one family beyond the page.
func (s *ProductService) ListSubDepartment(subDepartment string, page, limit int) (*utils.SliceResult, error) {
	boards, err := s.listBoard("sub_department = ?", subDepartment, SortLatest)
	if err != nil {
		return nil, err
	}
	return slicePage(boards, page, limit), nil
}

func (s *ProductService) listBoard(where string, arg interface{}, sortOrder string) ([]ProductBoard, error) {
	// One representative variant per family keeps the board one row per
	// model number.
	var products []models.Product
	err := s.db.
		Where(where, arg).
		Where("status = ?", models.ProductStatusRegistered).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	boards := make([]ProductBoard, 0, len(products))
	index := make(map[string]int, len(products))
	for _, p := range products {
		if _, seen := index[p.ModelNum]; seen {
			continue
		}
		index[p.ModelNum] = len(boards)
		boards = append(boards, ProductBoard{
			ModelNum:     p.ModelNum,
			ProductBrand: p.ProductBrand,
			ProductName:  p.ProductName,
			ProductImg:   p.ProductImg,
			LowestPrice:  p.OriginalPrice,
			createdAt:    p.CreatedAt,
		})
	}
	if len(boards) == 0 {
		return boards, nil
	}

	type familyAgg struct {
		ModelNum string
		MinPrice int64
		Count    int64
	}

	var buying []familyAgg
	err = s.db.Model(&models.BuyingBid{}).
		Select("products.model_num AS model_num, MIN(buying_bids.price) AS min_price, COUNT(buying_bids.id) AS count").
		Joins("JOIN products ON products.id = buying_bids.product_id").
		Where("products.status = ?", models.ProductStatusRegistered).
		Where("buying_bids.status = ?", models.BiddingStatusProcess).
		Group("products.model_num").
		Scan(&buying).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate open bids: %w", err)
	}
	for _, agg := range buying {
		if i, ok := index[agg.ModelNum]; ok {
			boards[i].LowestPrice = agg.MinPrice
			boards[i].OpenBuying = agg.Count
		}
	}

	var selling []familyAgg
	err = s.db.Model(&models.SalesBid{}).
		Select("products.model_num AS model_num, MIN(sales_bids.price) AS min_price, COUNT(sales_bids.id) AS count").
		Joins("JOIN products ON products.id = sales_bids.product_id").
		Where("products.status = ?", models.ProductStatusRegistered).
		Where("sales_bids.status = ?", models.SalesStatusProcess).
		Group("products.model_num").
		Scan(&selling).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate open asks: %w", err)
	}
	for _, agg := range selling {
		if i, ok := index[agg.ModelNum]; ok {
			boards[i].OpenSelling = agg.Count
		}
	}

	sortBoards(boards, sortOrder)
	return boards, nil
}

func sortBoards(boards []ProductBoard, sortOrder string) {
	switch sortOrder {
	case SortBids:
		sort.SliceStable(boards, func(i, j int) bool {
			return boards[i].OpenBuying+boards[i].OpenSelling > boards[j].OpenBuying+boards[j].OpenSelling
		})
	case SortBuying:
		sort.SliceStable(boards, func(i, j int) bool {
			return boards[i].OpenBuying > boards[j].OpenBuying
		})
	case SortSelling:
		sort.SliceStable(boards, func(i, j int) bool {
			return boards[i].OpenSelling > boards[j].OpenSelling
		})
	default: // SortLatest
		sort.SliceStable(boards, func(i, j int) bool {
			return boards[i].createdAt.After(boards[j].createdAt)
		})
	}
}

func slicePage(boards []ProductBoard, page, limit int) *utils.SliceResult {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	start := (page - 1) * limit
	if start >= len(boards) {
		return &utils.SliceResult{Page: page, Limit: limit, Data: []ProductBoard{}}
	}

	end := start + limit
	hasNext := end < len(boards)
	if end > len(boards) {
		end = len(boards)
	}

	return &utils.SliceResult{
		Page:    page,
		Limit:   limit,
		HasNext: hasNext,
		Data:    boards[start:end],
	}
}

// GetProductDetail composes the full product page for one family.
func (s *ProductService) GetProductDetail(modelNum string) (*ProductDetail, error) {
	var products []models.Product
	err := s.db.
		Where("model_num = ? AND status = ?", modelNum, models.ProductStatusRegistered).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load product family: %w", err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("product %s: %w", modelNum, ErrNotFound)
	}

	head := products[0]
	detail := &ProductDetail{
		ModelNum:       head.ModelNum,
		ProductBrand:   head.ProductBrand,
		ProductName:    head.ProductName,
		ProductImg:     head.ProductImg,
		MainDepartment: head.MainDepartment,
		SubDepartment:  head.SubDepartment,
		OriginalPrice:  head.OriginalPrice,
	}
	for _, p := range products {
		detail.Sizes = append(detail.Sizes, p.ProductSize)
	}

	if detail.Recent, err = s.prices.ResolveRecentContract(modelNum); err != nil {
		return nil, err
	}
	if detail.Quote, err = s.prices.ResolveCurrentPrices(modelNum, ""); err != nil {
		return nil, err
	}
	if detail.BidsBySize, err = s.prices.GroupOpenBidsBySize(modelNum); err != nil {
		return nil, err
	}
	if detail.AsksBySize, err = s.prices.GroupOpenAsksBySize(modelNum); err != nil {
		return nil, err
	}
	if detail.BuyingHopes, err = s.prices.ListBuyingHopes(modelNum); err != nil {
		return nil, err
	}
	if detail.SalesHopes, err = s.prices.ListSalesHopes(modelNum); err != nil {
		return nil, err
	}
	if detail.Averages, err = s.prices.AveragePrices(modelNum); err != nil {
		return nil, err
	}
	if detail.History, err = s.prices.ListContractHistory(modelNum, 50); err != nil {
		return nil, err
	}

	err = s.db.
		Joins("JOIN products ON products.id = photo_reviews.product_id").
		Where("products.model_num = ?", modelNum).
		Order("photo_reviews.id DESC").
		Find(&detail.Reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	return detail, nil
}

// GetBidQuote returns the per-size best bid/ask used by the bid form.
func (s *ProductService) GetBidQuote(modelNum, size string) (*PriceQuote, error) {
	return s.prices.ResolveCurrentPrices(modelNum, size)
}

// PlaceBid records a buy or sell order against one registered size variant.
// Buy orders open immediately; sell orders enter INSPECTION until an admin
// approves them.
func (s *ProductService) PlaceBid(userID int64, modelNum string, req *PlaceBidRequest) (interface{}, error) {
	var product models.Product
	err := s.db.
		Where("model_num = ? AND product_size = ? AND status = ?",
			modelNum, req.Size, models.ProductStatusRegistered).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s size %s: %w", modelNum, req.Size, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	switch req.Side {
	case "buy":
		bid := &models.BuyingBid{
			ProductID: product.ID,
			UserID:    userID,
			Price:     req.Price,
			Quantity:  quantity,
			Status:    models.BiddingStatusProcess,
			BidTime:   time.Now(),
		}
		if err := s.db.Create(bid).Error; err != nil {
			return nil, fmt.Errorf("failed to create buying bid: %w", err)
		}
		return bid, nil
	case "sell":
		bid := &models.SalesBid{
			ProductID: product.ID,
			UserID:    userID,
			Price:     req.Price,
			Quantity:  quantity,
			Status:    models.SalesStatusInspection,
			BidTime:   time.Now(),
		}
		if err := s.db.Create(bid).Error; err != nil {
			return nil, fmt.Errorf("failed to create sales bid: %w", err)
		}
		return bid, nil
	default:
		return nil, fmt.Errorf("side %q: %w", req.Side, ErrInvalidInput)
	}
}

// CreateReview attaches a photo review to a product family.
func (s *ProductService) CreateReview(userID int64, modelNum string, req *ReviewRequest) (*models.PhotoReview, error) {
	var product models.Product
	err := s.db.
		Where("model_num = ? AND status = ?", modelNum, models.ProductStatusRegistered).
		Order("id ASC").
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", modelNum, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	review := &models.PhotoReview{
		ProductID:     product.ID,
		UserID:        userID,
		ReviewImg:     req.ReviewImg,
		ReviewContent: req.ReviewContent,
	}
	if err := s.db.Create(review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// UpdateReview edits a review; only its author may.
func (s *ProductService) UpdateReview(userID, reviewID int64, req *ReviewRequest) (*models.PhotoReview, error) {
	var review models.PhotoReview
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review %d: %w", reviewID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	if review.UserID != userID {
		return nil, fmt.Errorf("review %d: %w", reviewID, ErrUnauthorized)
	}

	review.ReviewImg = req.ReviewImg
	review.ReviewContent = req.ReviewContent
	if err := s.db.Save(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return &review, nil
}

// DeleteReview removes a review; only its author may.
func (s *ProductService) DeleteReview(userID, reviewID int64) error {
	var review models.PhotoReview
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("review %d: %w", reviewID, ErrNotFound)
		}
		return fmt.Errorf("failed to load review: %w", err)
	}
	if review.UserID != userID {
		return fmt.Errorf("review %d: %w", reviewID, ErrUnauthorized)
	}

	if err := s.db.Delete(&review).Error; err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
