package repository

import (
	"context"

	"github.com/tu-usuario/bodega-epp/internal/domain/entity"
	"github.com/tu-usuario/bodega-epp/internal/domain/query"
)

// AuditRepository puerto de la bitácora. Solo inserción y lectura.
type AuditRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, params query.ListParams) (query.Page[entity.AuditLog], error)
}
