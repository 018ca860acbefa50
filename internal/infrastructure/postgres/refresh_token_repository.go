package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/bodega-epp/internal/domain/entity"
	"github.com/tu-usuario/bodega-epp/internal/domain/repository"
)

var _ repository.RefreshTokenRepository = (*RefreshTokenRepo)(nil)

// RefreshTokenRepo implementación sobre PostgreSQL (usable con pool o tx).
// Las filas nunca se borran: la revocación es un marcado con timestamp.
type RefreshTokenRepo struct {
	q Querier
}

// NewRefreshTokenRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRefreshTokenRepository(q Querier) *RefreshTokenRepo {
	return &RefreshTokenRepo{q: q}
}

// Create persiste una credencial de refresh (solo el hash del token).
func (r *RefreshTokenRepo) Create(ctx context.Context, t *entity.RefreshToken) error {
	sql := `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, revoked_at, replaced_by_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, sql,
		t.ID, t.UserID, t.TokenHash, t.ExpiresAt, t.RevokedAt, t.ReplacedByID, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

// GetByHash busca por el hash SHA-256 del token presentado. (nil, nil) si no existe.
func (r *RefreshTokenRepo) GetByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	sql := `
		SELECT id, user_id, token_hash, expires_at, revoked_at, replaced_by_id, created_at
		FROM refresh_tokens WHERE token_hash = $1`
	var t entity.RefreshToken
	err := r.q.QueryRow(ctx, sql, tokenHash).Scan(
		&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.RevokedAt, &t.ReplacedByID, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}
	return &t, nil
}

// Revoke marca el token como revocado solo si sigue activo. El UPDATE
// condicional es el árbitro de la carrera: entre dos rotaciones concurrentes
// de la misma credencial exactamente una ve rowsAffected = 1.
func (r *RefreshTokenRepo) Revoke(ctx context.Context, id string, now time.Time, replacedByID *string) (bool, error) {
	sql := `
		UPDATE refresh_tokens SET revoked_at = $2, replaced_by_id = $3
		WHERE id = $1 AND revoked_at IS NULL AND expires_at > $2`
	tag, err := r.q.Exec(ctx, sql, id, now, replacedByID)
	if err != nil {
		return false, fmt.Errorf("revoke refresh token: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// RevokeAllByUser revoca todas las credenciales activas del usuario.
func (r *RefreshTokenRepo) RevokeAllByUser(ctx context.Context, userID string, now time.Time) error {
	sql := `
		UPDATE refresh_tokens SET revoked_at = $2
		WHERE user_id = $1 AND revoked_at IS NULL`
	_, err := r.q.Exec(ctx, sql, userID, now)
	if err != nil {
		return fmt.Errorf("revoke refresh tokens by user: %w", err)
	}
	return nil
}
