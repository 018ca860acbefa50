package movement

import (
	"context"

	"github.com/tu-usuario/bodega-epp/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la mutación del ítem, la
// entrada del ledger y la bitácora se confirman como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		auditRepo repository.AuditRepository,
	) error) error
}
