package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/bodega-epp/internal/domain/entity"
)

// RefreshTokenRepository puerto de persistencia para credenciales de refresh.
// Las filas nunca se borran: la revocación es un marcado.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *entity.RefreshToken) error
	// GetByHash busca por el hash SHA-256 del token presentado. (nil, nil) si no existe.
	GetByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)
	// Revoke marca el token como revocado solo si sigue activo (no revocado y
	// no vencido a la hora now). Devuelve false si otro escritor ganó la
	// carrera o el token ya no era usable: el caller debe fallar cerrado.
	Revoke(ctx context.Context, id string, now time.Time, replacedByID *string) (bool, error)
	// RevokeAllByUser revoca todos los tokens activos del usuario (cambio de
	// contraseña, desactivación de cuenta).
	RevokeAllByUser(ctx context.Context, userID string, now time.Time) error
}
