package model

import "time"

type InventoryCategory string

const (
	InventoryCategoryMedicine  InventoryCategory = "MEDICINE"
	InventoryCategoryEquipment InventoryCategory = "EQUIPMENT"
	InventoryCategorySupplies  InventoryCategory = "SUPPLIES"
)

type InventoryItem struct {
	Base
	Name         string            `json:"name" db:"name"`
	Category     InventoryCategory `json:"category" db:"category"`
	Unit         string            `json:"unit" db:"unit"`
	Quantity     int               `json:"quantity" db:"quantity"`
	ReorderLevel int               `json:"reorder_level" db:"reorder_level"`
	Cost         float64           `json:"cost" db:"cost"`
	Supplier     *string           `json:"supplier,omitempty" db:"supplier"`
	ExpiryDate   *time.Time        `json:"expiry_date,omitempty" db:"expiry_date"`
	Location     *string           `json:"location,omitempty" db:"location"`
}

// LowStock reports whether the item is at or below its reorder level.
func (i *InventoryItem) LowStock() bool {
	return i.Quantity <= i.ReorderLevel
}

type CreateInventoryItemRequest struct {
	Name         string   `json:"name" binding:"required"`
	Category     string   `json:"category" binding:"required,oneof=MEDICINE EQUIPMENT SUPPLIES"`
	Unit         string   `json:"unit" binding:"required"`
	Quantity     *int     `json:"quantity" binding:"required,gte=0"`
	ReorderLevel int      `json:"reorder_level" binding:"required,gte=1"`
	Cost         *float64 `json:"cost" binding:"required,gte=0"`
	Supplier     *string  `json:"supplier"`
	ExpiryDate   *string  `json:"expiry_date" binding:"omitempty,datetime=2006-01-02"`
	Location     *string  `json:"location"`
}

type UpdateInventoryItemRequest struct {
	Name         *string  `json:"name"`
	Category     *string  `json:"category" binding:"omitempty,oneof=MEDICINE EQUIPMENT SUPPLIES"`
	Unit         *string  `json:"unit"`
	Quantity     *int     `json:"quantity" binding:"omitempty,gte=0"`
	ReorderLevel *int     `json:"reorder_level" binding:"omitempty,gte=1"`
	Cost         *float64 `json:"cost" binding:"omitempty,gte=0"`
	Supplier     *string  `json:"supplier"`
	ExpiryDate   *string  `json:"expiry_date" binding:"omitempty,datetime=2006-01-02"`
	Location     *string  `json:"location"`
}
