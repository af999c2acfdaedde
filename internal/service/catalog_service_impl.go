package service

import (
	"context"

	"github.com/warunggenz/pos-backend/internal/dto"
	"github.com/warunggenz/pos-backend/internal/repository"
	pkgdto "github.com/warunggenz/pos-backend/pkg/dto"
	"github.com/warunggenz/pos-backend/pkg/errs"
)

type CatalogServiceImpl struct {
	repository repository.ProductRepository
}

func CreateCatalogService(repository repository.ProductRepository) CatalogService {
	return &CatalogServiceImpl{repository: repository}
}

func (s *CatalogServiceImpl) GetProducts(ctx context.Context, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error) {
	filter.Normalize()

	count, err := s.repository.CountProducts(ctx, filter)
	if err != nil {
		return resp, err
	}

	products, err := s.repository.GetProducts(ctx, filter)
	if err != nil {
		return resp, err
	}

	records := make([]dto.ProductResponse, 0, len(products))
	for _, product := range products {
		records = append(records, dto.ProductResponse{
			ID:         product.ID,
			CategoryID: product.CategoryID,
			Name:       product.Name,
			Price:      product.Price,
			Stock:      product.Stock,
		})
	}

	resp.Metadata = pkgdto.PaginationMetadata{
		TotalCount: count,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	resp.Records = records

	return resp, nil
}

func (s *CatalogServiceImpl) GetProductByID(ctx context.Context, id int64) (resp dto.ProductResponse, err error) {
	product, err := s.repository.GetProductByID(ctx, id)
	if err != nil {
		return resp, err
	}

	if product.ID == 0 {
		return resp, errs.ErrNotFound
	}

	return dto.ProductResponse{
		ID:         product.ID,
		CategoryID: product.CategoryID,
		Name:       product.Name,
		Price:      product.Price,
		Stock:      product.Stock,
	}, nil
}
