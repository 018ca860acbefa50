package repository

import (
	"context"

	"github.com/tu-usuario/bodega-epp/internal/domain/entity"
	"github.com/tu-usuario/bodega-epp/internal/domain/query"
)

// ItemRepository puerto de persistencia para ítems de bodega.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Item, error)
	// GetByIDForUpdate carga el ítem bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Item, error)
	// Update persiste todos los campos mutables; nunca toca SKU.
	Update(ctx context.Context, item *entity.Item) error
	// Delete falla con ErrItemReferenced si existen movimientos del ítem.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params query.ListParams) (query.Page[entity.Item], error)
}
