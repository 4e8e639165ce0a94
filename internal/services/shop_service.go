// internal/services/shop_service.go
package services

import (
	"github.com/jong1uk/Auction-Back/internal/utils"
)

// ShopService serves the shop browse tabs: flat slice-paginated listings of
// registered product families, optionally filtered by department.
type ShopService struct {
	products *ProductService
}

func NewShopService(products *ProductService) *ShopService {
	return &ShopService{products: products}
}

func (s *ShopService) ListAll(page, limit int) (*utils.SliceResult, error) {
	boards, err := s.products.listBoard("1 = ?", 1, SortLatest)
	if err != nil {
		return nil, err
	}
	return slicePage(boards, page, limit), nil
}

func (s *ShopService) ListByMainDepartment(mainDepartment string, page, limit int) (*utils.SliceResult, error) {
	boards, err := s.products.listBoard("main_department = ?", mainDepartment, SortLatest)
	if err != nil {
		return nil, err
	}
	return slicePage(boards, page, limit), nil
}

func (s *ShopService) ListBySubDepartment(subDepartment string, page, limit int) (*utils.SliceResult, error) {
	boards, err := s.products.listBoard("sub_department = ?", subDepartment, SortLatest)
	if err != nil {
		return nil, err
	}
	return slicePage(boards, page, limit), nil
}
