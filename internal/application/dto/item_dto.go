package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un ítem. La cantidad inicial genera
// un movimiento CHECKIN de apertura: el ledger explica todo el stock.
type CreateItemRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	SKU               string          `json:"sku" validate:"required,min=1,max=50"`
	InitialQuantity   int             `json:"initial_quantity" validate:"min=0"`
	MinStock          int             `json:"min_stock" validate:"min=0"`
	MaxStock          int             `json:"max_stock" validate:"min=0"`
	EsEPP             bool            `json:"es_epp"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	NextMaintenanceAt *time.Time      `json:"next_maintenance_at,omitempty"`
}

// UpdateItemRequest entrada para actualizar un ítem. SKU y cantidad no se
// tocan: la cantidad solo cambia vía movimientos.
type UpdateItemRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	MinStock          int             `json:"min_stock" validate:"min=0"`
	MaxStock          int             `json:"max_stock" validate:"min=0"`
	EsEPP             bool            `json:"es_epp"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	LastMaintenanceAt *time.Time      `json:"last_maintenance_at,omitempty"`
	NextMaintenanceAt *time.Time      `json:"next_maintenance_at,omitempty"`
}

// ItemResponse salida de un ítem.
type ItemResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	SKU               string          `json:"sku"`
	Quantity          int             `json:"quantity"`
	MinStock          int             `json:"min_stock"`
	MaxStock          int             `json:"max_stock"`
	EsEPP             bool            `json:"es_epp"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	LastMaintenanceAt *time.Time      `json:"last_maintenance_at,omitempty"`
	NextMaintenanceAt *time.Time      `json:"next_maintenance_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
