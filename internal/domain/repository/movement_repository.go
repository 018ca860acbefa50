package repository

import (
	"context"

	"github.com/tu-usuario/bodega-epp/internal/domain/entity"
	"github.com/tu-usuario/bodega-epp/internal/domain/query"
)

// MovementFilter filtros opcionales sobre el listado paginado del ledger.
type MovementFilter struct {
	ItemID      string
	OperatorID  string
	RecipientID string
	Type        string
}

// MovementRepository puerto del ledger de movimientos. Solo inserción y
// lectura: las entradas del ledger nunca se actualizan ni se borran.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.Movement, error)
	ListByOperator(ctx context.Context, operatorID string, limit, offset int) ([]*entity.Movement, error)
	ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]*entity.Movement, error)
	List(ctx context.Context, filter MovementFilter, params query.ListParams) (query.Page[entity.Movement], error)
}
