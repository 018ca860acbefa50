package entity

import "time"

// RefreshToken es la credencial opaca de renovación de sesión.
//
// Notas de seguridad:
//   - Nunca se guarda el token en claro, solo su hash SHA-256 (TokenHash).
//   - En cada refresh se rota: el token presentado se revoca y se emite uno
//     nuevo; ReplacedByID enlaza la cadena para detectar reuso post-revocación
//     (señal de robo de credencial).
//   - Las filas nunca se borran físicamente.
type RefreshToken struct {
	ID           string
	UserID       string
	TokenHash    string // hex del SHA-256 del token en claro
	ExpiresAt    time.Time
	RevokedAt    *time.Time
	ReplacedByID *string
	CreatedAt    time.Time
}

// IsExpired indica si el token venció respecto a now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// IsRevoked indica si el token ya fue revocado.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}
