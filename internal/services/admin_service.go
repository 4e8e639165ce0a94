// internal/services/admin_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jong1uk/Auction-Back/internal/database"
	"github.com/jong1uk/Auction-Back/internal/models"
	"github.com/jong1uk/Auction-Back/internal/utils"
)

// AdminService owns the approval workflows: REQUEST→REGISTERED product
// registration and INSPECTION→PROCESS sales-bid approval. Both transitions
// are single-use check-and-set writes.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

type ProductRequestInput struct {
	ModelNum       string `json:"model_num" validate:"required,max=100"`
	ProductSize    string `json:"product_size" validate:"required,max=20"`
	ProductBrand   string `json:"product_brand" validate:"omitempty,max=100"`
	ProductName    string `json:"product_name" validate:"required,max=255"`
	ProductImg     string `json:"product_img" validate:"omitempty,max=255"`
	MainDepartment string `json:"main_department" validate:"required,max=50"`
	SubDepartment  string `json:"sub_department" validate:"omitempty,max=50"`
	OriginalPrice  int64  `json:"original_price" validate:"required,gt=0"`
}

// CreateProductRequest files a new catalog entry in REQUEST status.
func (s *AdminService) CreateProductRequest(req *ProductRequestInput) (*models.Product, error) {
	product := &models.Product{
		ModelNum:       req.ModelNum,
		ProductSize:    req.ProductSize,
		ProductBrand:   req.ProductBrand,
		ProductName:    req.ProductName,
		ProductImg:     req.ProductImg,
		MainDepartment: req.MainDepartment,
		SubDepartment:  req.SubDepartment,
		OriginalPrice:  req.OriginalPrice,
		Status:         models.ProductStatusRequest,
	}
	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product request: %w", err)
	}
	return product, nil
}

// ListRequestedProducts pages through products awaiting registration.
func (s *AdminService) ListRequestedProducts(params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Product{}).Where("status = ?", models.ProductStatusRequest)

	if params.Search != "" {
		term := "%" + params.Search + "%"
		query = query.Where("LOWER(product_name) LIKE LOWER(?) OR LOWER(model_num) LIKE LOWER(?)", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count requested products: %w", err)
	}

	var products []models.Product
	query = utils.ApplySort(query, params, []string{"created_at", "model_num", "product_name"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list requested products: %w", err)
	}

	result := utils.CreatePaginationResult(products, total, params)
	return &result, nil
}

func (s *AdminService) GetRequestedProduct(id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.Where("id = ? AND status = ?", id, models.ProductStatusRequest).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product request %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load product request: %w", err)
	}
	return &product, nil
}

// AcceptProductRequest registers a REQUEST product. Rejected when a
// REGISTERED row with the same model number and size already exists; the
// flip itself is conditional on the row still being REQUEST.
func (s *AdminService) AcceptProductRequest(id int64) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product.Status != models.ProductStatusRequest {
		return nil, fmt.Errorf("product %d is %s: %w", id, product.Status, ErrStateConflict)
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var dup int64
		err := tx.Model(&models.Product{}).
			Where("model_num = ? AND product_size = ? AND status = ?",
				product.ModelNum, product.ProductSize, models.ProductStatusRegistered).
			Count(&dup).Error
		if err != nil {
			return fmt.Errorf("failed to check duplicates: %w", err)
		}
		if dup > 0 {
			return fmt.Errorf("model %s size %s: %w",
				product.ModelNum, product.ProductSize, ErrDuplicateProduct)
		}

		// latest_date seeds the recent-contract watermark at registration
		// time so only trades from here on shift the cache.
		res := tx.Model(&models.Product{}).
			Where("id = ? AND status = ?", id, models.ProductStatusRequest).
			Updates(map[string]interface{}{
				"status":      models.ProductStatusRegistered,
				"latest_date": time.Now(),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to register product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product %d already transitioned: %w", id, ErrStateConflict)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.First(&product, id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"model_num":  product.ModelNum,
		"size":       product.ProductSize,
	}).Info("Product registered")

	return &product, nil
}

// AcceptSalesApproval moves one INSPECTION sales bid to PROCESS and bumps
// the product quantity by exactly one. The status flip is conditional, so a
// repeat call fails instead of double-counting.
func (s *AdminService) AcceptSalesApproval(salesBidID int64) (*models.SalesBid, error) {
	var bid models.SalesBid
	if err := s.db.First(&bid, salesBidID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sales bid %d: %w", salesBidID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load sales bid: %w", err)
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		res := tx.Model(&models.SalesBid{}).
			Where("id = ? AND status = ?", salesBidID, models.SalesStatusInspection).
			Update("status", models.SalesStatusProcess)
		if res.Error != nil {
			return fmt.Errorf("failed to approve sales bid: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("sales bid %d is not under inspection: %w", salesBidID, ErrStateConflict)
		}

		err := tx.Model(&models.Product{}).
			Where("id = ?", bid.ProductID).
			Update("quantity", gorm.Expr("quantity + 1")).Error
		if err != nil {
			return fmt.Errorf("failed to increment product quantity: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.First(&bid, salesBidID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload sales bid: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"sales_bid_id": bid.ID,
		"product_id":   bid.ProductID,
	}).Info("Sales bid approved")

	return &bid, nil
}

// ListProductsByDepartment is the admin catalog view; it includes REQUEST
// rows, unlike the public boards.
func (s *AdminService) ListProductsByDepartment(mainDepartment string, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Product{}).Where("main_department = ?", mainDepartment)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	query = utils.ApplySort(query, params, []string{"created_at", "model_num", "product_name", "status"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	result := utils.CreatePaginationResult(products, total, params)
	return &result, nil
}

// GetProductFamily returns every variant of a model number, any status.
func (s *AdminService) GetProductFamily(modelNum string) ([]models.Product, error) {
	var products []models.Product
	err := s.db.Where("model_num = ?", modelNum).Order("id ASC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load product family: %w", err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("product %s: %w", modelNum, ErrNotFound)
	}
	return products, nil
}
