package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/studentdiscount/marketplace-api/internal/core/domain"
	"github.com/studentdiscount/marketplace-api/internal/core/ports"
)

// ProductService implements catalog use cases over the product repository.
type ProductService struct {
	repo   ports.ProductRepository
	audit  ports.AuditEmitter // nil disables the audit trail
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, audit ports.AuditEmitter, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, audit: audit, logger: logger}
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context, filter ports.ProductFilter) ([]*domain.Product, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *ProductService) Search(ctx context.Context, params ports.SearchParams) ([]*domain.Product, error) {
	return s.repo.Search(ctx, params)
}

// Create adds a product to the catalog. New products without an explicit
// status start as pending review.
func (s *ProductService) Create(ctx context.Context, actor string, input ports.CreateProductInput) (*domain.Product, error) {
	status := input.Status
	if status == "" {
		status = domain.StatusPending
	}

	product := &domain.Product{
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		OriginalPrice:  input.OriginalPrice,
		Discount:       input.Discount,
		Category:       input.Category,
		Subcategory:    input.Subcategory,
		Images:         input.Images,
		Stock:          input.Stock,
		VendorID:       input.VendorID,
		Specifications: input.Specifications,
		Status:         status,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("vendor_id", input.VendorID).Msg("product create failed")
		return nil, err
	}

	s.emit(actor, domain.AuditProductCreated, created.ID)
	s.logger.Info().Str("product_id", created.ID).Str("vendor_id", created.VendorID).Msg("product created")
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, actor, id string, patch ports.ProductUpdate) (*domain.Product, error) {
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.emit(actor, domain.AuditProductUpdated, id)
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, actor, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.emit(actor, domain.AuditProductDeleted, id)
		s.logger.Info().Str("product_id", id).Msg("product deleted")
	}
	return deleted, nil
}

func (s *ProductService) emit(actor, action, entityID string) {
	if s.audit == nil {
		return
	}
	s.audit.Emit(domain.AuditEvent{
		Actor:    actor,
		Action:   action,
		Entity:   "product",
		EntityID: entityID,
		At:       time.Now().UTC(),
	})
}
