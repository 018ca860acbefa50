package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/bodega-epp/internal/domain"
)

// Item representa un artículo de bodega (herramienta, consumible o EPP).
// Quantity es una proyección materializada del ledger de movimientos:
// solo se muta vía IncreaseStock/DecreaseStock, siempre junto con el
// registro del movimiento en la misma transacción.
type Item struct {
	ID                string
	Name              string
	SKU               string // inmutable después de creado
	Quantity          int    // >= 0 en todo punto de commit
	MinStock          int
	MaxStock          int
	EsEPP             bool // equipo de protección personal: checkout exige receptor y firma
	UnitCost          decimal.Decimal
	ExpiryDate        *time.Time
	LastMaintenanceAt *time.Time
	NextMaintenanceAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DecreaseStock resta amount del stock. Falla con ErrInvalidInput si
// amount <= 0 y con ErrInsufficientStock si amount > Quantity.
func (i *Item) DecreaseStock(amount int, now time.Time) error {
	if amount <= 0 {
		return domain.ErrInvalidInput
	}
	if amount > i.Quantity {
		return domain.ErrInsufficientStock
	}
	i.Quantity -= amount
	i.UpdatedAt = now
	return nil
}

// IncreaseStock suma amount al stock. Falla con ErrInvalidInput si amount <= 0.
// No hay tope duro: un exceso sobre MaxStock es una alerta de reportes, no un error.
func (i *Item) IncreaseStock(amount int, now time.Time) error {
	if amount <= 0 {
		return domain.ErrInvalidInput
	}
	i.Quantity += amount
	i.UpdatedAt = now
	return nil
}
