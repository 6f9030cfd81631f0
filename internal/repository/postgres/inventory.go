package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medhq/hms-api/internal/model"
	"github.com/medhq/hms-api/internal/repository"
)

type inventoryRepository struct {
	db *sqlx.DB
}

func NewInventoryRepository(db *sqlx.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (
			id, name, category, unit, quantity, reorder_level, cost,
			supplier, expiry_date, location, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Name,
		item.Category,
		item.Unit,
		item.Quantity,
		item.ReorderLevel,
		item.Cost,
		item.Supplier,
		item.ExpiryDate,
		item.Location,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "inventory item")
	}
	return nil
}

func (r *inventoryRepository) Get(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	query := `SELECT * FROM inventory_items WHERE id = $1`
	var item model.InventoryItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, mapError(err, "inventory item")
	}
	return &item, nil
}

func (r *inventoryRepository) Update(ctx context.Context, item *model.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $1, category = $2, unit = $3, quantity = $4,
			reorder_level = $5, cost = $6, supplier = $7,
			expiry_date = $8, location = $9, updated_at = $10
		WHERE id = $11
	`
	item.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		item.Name,
		item.Category,
		item.Unit,
		item.Quantity,
		item.ReorderLevel,
		item.Cost,
		item.Supplier,
		item.ExpiryDate,
		item.Location,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return mapError(err, "inventory item")
	}
	return requireRow(result, "inventory item")
}

func (r *inventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "inventory item")
	}
	return requireRow(result, "inventory item")
}

func (r *inventoryRepository) List(ctx context.Context) ([]*model.InventoryItem, error) {
	items := []*model.InventoryItem{}
	if err := r.db.SelectContext(ctx, &items, `SELECT * FROM inventory_items ORDER BY name`); err != nil {
		return nil, mapError(err, "inventory items")
	}
	return items, nil
}

func (r *inventoryRepository) ListByCategory(ctx context.Context, category model.InventoryCategory) ([]*model.InventoryItem, error) {
	items := []*model.InventoryItem{}
	err := r.db.SelectContext(ctx, &items,
		`SELECT * FROM inventory_items WHERE category = $1 ORDER BY name`, category)
	if err != nil {
		return nil, mapError(err, "inventory items")
	}
	return items, nil
}

// Low stock means quantity at or below the item's own reorder level.
func (r *inventoryRepository) ListLowStock(ctx context.Context) ([]*model.InventoryItem, error) {
	items := []*model.InventoryItem{}
	err := r.db.SelectContext(ctx, &items,
		`SELECT * FROM inventory_items WHERE quantity <= reorder_level ORDER BY name`)
	if err != nil {
		return nil, mapError(err, "inventory items")
	}
	return items, nil
}

func (r *inventoryRepository) CountLowStock(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM inventory_items WHERE quantity <= reorder_level`)
	if err != nil {
		return 0, mapError(err, "inventory items")
	}
	return count, nil
}
