package auth

import (
	"context"

	"github.com/tu-usuario/bodega-epp/internal/domain/repository"
)

// TokenTxRunner ejecuta la rotación de credenciales de refresh dentro de una
// transacción: revocar la presentada y persistir la nueva es todo o nada.
type TokenTxRunner interface {
	RunTokens(ctx context.Context, fn func(tokenRepo repository.RefreshTokenRepository) error) error
}
