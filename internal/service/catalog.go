package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/domain"
	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/event"
	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/repository"
	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/storage"
	apperrors "github.com/Emmanation-Designs/Gibsons-Collections3/pkg/errors"
)

// ProductInput holds the fields for creating or updating a product. Images
// carries the final ordered URL list after any pending uploads resolve.
type ProductInput struct {
	Name        string   `json:"name" validate:"required"`
	Price       int64    `json:"price" validate:"gte=0"`
	Category    string   `json:"category" validate:"required"`
	Description string   `json:"description"`
	Images      []string `json:"images" validate:"required,min=1,max=5"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gte=0"`
}

// CatalogService implements the business logic for the product catalog.
type CatalogService struct {
	repo     repository.ProductRepository
	storage  storage.Storage
	producer event.Publisher
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.ProductRepository, store storage.Storage, producer event.Publisher, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		storage:  store,
		producer: producer,
		logger:   logger,
	}
}

// List returns the visible catalog for the given search query and category
// filter, newest first. An empty category behaves like the "All" sentinel.
func (s *CatalogService) List(ctx context.Context, query, category string) ([]domain.Product, error) {
	if category == "" {
		category = domain.CategoryAll
	}
	if category != domain.CategoryAll && !domain.IsValidCategory(category) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown category %q", category))
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return domain.FilterProducts(products, query, category), nil
}

// Get returns a single product by ID.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	return s.repo.GetByID(ctx, id)
}

// GetByIDs returns the products for the given identifier set. Unknown IDs
// are skipped, so a wishlist pointing at deleted products still resolves.
func (s *CatalogService) GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	return s.repo.ListByIDs(ctx, ids)
}

// Create validates the input and inserts a new product, then publishes a
// product.created event. Event failures are logged, never surfaced.
func (s *CatalogService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Price:       input.Price,
		Category:    input.Category,
		Description: input.Description,
		Images:      input.Images,
		Quantity:    input.Quantity,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := s.producer.PublishProductCreated(ctx, product); err != nil {
		s.logger.WarnContext(ctx, "failed to publish product.created",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	return product, nil
}

// Update validates the input and replaces the stored product fields, then
// publishes a product.updated event.
func (s *CatalogService) Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}

	existing.Name = input.Name
	existing.Price = input.Price
	existing.Category = input.Category
	existing.Description = input.Description
	existing.Images = input.Images
	existing.Quantity = input.Quantity

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	if err := s.producer.PublishProductUpdated(ctx, existing); err != nil {
		s.logger.WarnContext(ctx, "failed to publish product.updated",
			slog.String("product_id", existing.ID),
			slog.String("error", err.Error()),
		)
	}

	return existing, nil
}

// Delete removes a product and publishes a product.deleted event.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("product id is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if err := s.producer.PublishProductDeleted(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "failed to publish product.deleted",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// UploadImages resolves an image set against the storage backend: pending
// files are uploaded in order under the given product key prefix and the
// final ordered URL list is returned. The first upload failure aborts the
// remainder; files already stored are not rolled back.
func (s *CatalogService) UploadImages(ctx context.Context, keyPrefix string, set *domain.ImageSet) ([]string, error) {
	n := 0
	return set.Resolve(func(f domain.PendingFile) (string, error) {
		n++
		key := fmt.Sprintf("%s/%d-%s", keyPrefix, n, f.Name)
		res, err := s.storage.Upload(ctx, &storage.UploadInput{
			Key:         key,
			ContentType: f.ContentType,
			Size:        int64(len(f.Data)),
			Data:        bytes.NewReader(f.Data),
		})
		if err != nil {
			return "", err
		}
		return res.URL, nil
	})
}

func (s *CatalogService) validateInput(input ProductInput) error {
	if input.Name == "" {
		return apperrors.InvalidInput("product name is required")
	}
	if input.Price < 0 {
		return apperrors.InvalidInput("price must not be negative")
	}
	if !domain.IsValidCategory(input.Category) {
		return apperrors.InvalidInput(fmt.Sprintf("unknown category %q", input.Category))
	}
	if len(input.Images) == 0 {
		return apperrors.InvalidInput("at least one image is required")
	}
	if len(input.Images) > domain.MaxProductImages {
		return apperrors.InvalidInput(fmt.Sprintf("you can only upload a maximum of %d images", domain.MaxProductImages))
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		return apperrors.InvalidInput("quantity must not be negative")
	}
	return nil
}
