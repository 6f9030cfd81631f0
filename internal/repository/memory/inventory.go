package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medhq/hms-api/internal/model"
	apperrors "github.com/medhq/hms-api/pkg/errors"
)

type InventoryRepository struct {
	store *Store
}

func (r *InventoryRepository) Create(_ context.Context, item *model.InventoryItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *item
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	r.store.items = append(r.store.items, &copied)
	item.CreatedAt = copied.CreatedAt
	item.UpdatedAt = copied.UpdatedAt
	return nil
}

func (r *InventoryRepository) Get(_ context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, item := range r.store.items {
		if item.ID == id {
			copied := *item
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("inventory item")
}

func (r *InventoryRepository) Update(_ context.Context, item *model.InventoryItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, stored := range r.store.items {
		if stored.ID == item.ID {
			copied := *item
			copied.CreatedAt = stored.CreatedAt
			copied.UpdatedAt = time.Now()
			r.store.items[i] = &copied
			return nil
		}
	}
	return apperrors.NotFound("inventory item")
}

func (r *InventoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, item := range r.store.items {
		if item.ID == id {
			r.store.items = append(r.store.items[:i], r.store.items[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("inventory item")
}

func (r *InventoryRepository) List(_ context.Context) ([]*model.InventoryItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.collect(func(*model.InventoryItem) bool { return true }), nil
}

func (r *InventoryRepository) ListByCategory(_ context.Context, category model.InventoryCategory) ([]*model.InventoryItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.collect(func(item *model.InventoryItem) bool {
		return item.Category == category
	}), nil
}

func (r *InventoryRepository) ListLowStock(_ context.Context) ([]*model.InventoryItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.collect((*model.InventoryItem).LowStock), nil
}

func (r *InventoryRepository) CountLowStock(_ context.Context) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	count := 0
	for _, item := range r.store.items {
		if item.LowStock() {
			count++
		}
	}
	return count, nil
}

func (r *InventoryRepository) collect(keep func(*model.InventoryItem) bool) []*model.InventoryItem {
	items := []*model.InventoryItem{}
	for _, item := range r.store.items {
		if keep(item) {
			copied := *item
			items = append(items, &copied)
		}
	}
	return items
}
