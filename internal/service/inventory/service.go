package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medhq/hms-api/internal/email"
	"github.com/medhq/hms-api/internal/model"
	"github.com/medhq/hms-api/internal/repository"
	apperrors "github.com/medhq/hms-api/pkg/errors"
)

type Service struct {
	repo    repository.InventoryRepository
	emailer email.Service
}

func NewService(repo repository.InventoryRepository, emailer email.Service) *Service {
	return &Service{repo: repo, emailer: emailer}
}

func (s *Service) CreateItem(ctx context.Context, req *model.CreateInventoryItemRequest) (*model.InventoryItem, error) {
	expiry, err := parseOptionalDate(req.ExpiryDate)
	if err != nil {
		return nil, apperrors.Validation("expiry_date must be a valid date")
	}

	item := &model.InventoryItem{
		Base:         model.Base{ID: uuid.New()},
		Name:         req.Name,
		Category:     model.InventoryCategory(req.Category),
		Unit:         req.Unit,
		Quantity:     *req.Quantity,
		ReorderLevel: req.ReorderLevel,
		Cost:         *req.Cost,
		Supplier:     req.Supplier,
		ExpiryDate:   expiry,
		Location:     req.Location,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateItem(ctx context.Context, id uuid.UUID, req *model.UpdateInventoryItemRequest) (*model.InventoryItem, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	wasLow := item.LowStock()

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = model.InventoryCategory(*req.Category)
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.ReorderLevel != nil {
		item.ReorderLevel = *req.ReorderLevel
	}
	if req.Cost != nil {
		item.Cost = *req.Cost
	}
	if req.Supplier != nil {
		item.Supplier = req.Supplier
	}
	if req.ExpiryDate != nil {
		expiry, err := parseOptionalDate(req.ExpiryDate)
		if err != nil {
			return nil, apperrors.Validation("expiry_date must be a valid date")
		}
		item.ExpiryDate = expiry
	}
	if req.Location != nil {
		item.Location = req.Location
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	// Alert only on the crossing, not on every write while low.
	if !wasLow && item.LowStock() {
		if err := s.emailer.SendLowStockAlert(ctx, item); err != nil {
			log.Warn().Err(err).Str("item", item.Name).Msg("low stock alert failed")
		}
	}

	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListItems(ctx context.Context) ([]*model.InventoryItem, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]*model.InventoryItem, error) {
	switch model.InventoryCategory(category) {
	case model.InventoryCategoryMedicine, model.InventoryCategoryEquipment, model.InventoryCategorySupplies:
	default:
		return nil, apperrors.Validation("invalid category")
	}
	return s.repo.ListByCategory(ctx, model.InventoryCategory(category))
}

func (s *Service) ListLowStock(ctx context.Context) ([]*model.InventoryItem, error) {
	return s.repo.ListLowStock(ctx)
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := time.Parse(model.DateOnly, *value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
