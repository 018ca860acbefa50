package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/bodega-epp/internal/application/audit"
	"github.com/tu-usuario/bodega-epp/internal/application/dto"
	"github.com/tu-usuario/bodega-epp/internal/domain"
	"github.com/tu-usuario/bodega-epp/internal/domain/entity"
	"github.com/tu-usuario/bodega-epp/internal/domain/repository"
	"github.com/tu-usuario/bodega-epp/pkg/jwt"
	"github.com/tu-usuario/bodega-epp/pkg/logger"
)

// JWTConfig configuración para emisión de tokens.
type JWTConfig struct {
	Secret      string
	ExpMinutes  int
	RefreshDays int
	Issuer      string
}

// UseCase casos de uso de autenticación: login, refresh con rotación,
// logout y cambio de contraseña.
//
// Todo fallo de credenciales sale como domain.ErrUnauthorized, sin
// distinguir "usuario inexistente" de "password incorrecto" ni "token
// revocado" de "token desconocido".
type UseCase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.RefreshTokenRepository
	txRunner  TokenTxRunner
	recorder  *audit.Recorder
	log       *logger.Logger
	jwtCfg    JWTConfig
	now       func() time.Time
}

// NewUseCase construye el caso de uso de auth. now inyectable para tests.
func NewUseCase(
	userRepo repository.UserRepository,
	tokenRepo repository.RefreshTokenRepository,
	txRunner TokenTxRunner,
	recorder *audit.Recorder,
	log *logger.Logger,
	jwtCfg JWTConfig,
	now func() time.Time,
) *UseCase {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &UseCase{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		txRunner:  txRunner,
		recorder:  recorder,
		log:       log,
		jwtCfg:    jwtCfg,
		now:       now,
	}
}

// NormalizeEmail normaliza el email para búsqueda y unicidad case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login verifica email/password y emite el par de tokens: access token JWT
// firmado más credencial de refresh opaca persistida por su hash.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	accessToken, expiresAt, err := uc.issueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshPlain, row, err := uc.newRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.tokenRepo.Create(ctx, row); err != nil {
		return nil, err
	}

	uc.recorder.Record(ctx, audit.Entry{
		ActorID:  user.ID,
		Action:   entity.AuditActionLogin,
		Entity:   "user",
		EntityID: user.ID,
	})

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshPlain,
		ExpiresAt:    expiresAt,
		User:         *toUserResponse(user),
	}, nil
}

// Refresh rota la credencial presentada: la revoca y emite un par nuevo en
// una sola transacción. Máquina de estados: Active → Revoked (usada) o
// Expired (vencida); no hay vuelta atrás. Dos refresh concurrentes con la
// misma credencial producen a lo sumo un éxito: el perdedor ve
// ErrUnauthorized, nunca un error de servidor.
func (uc *UseCase) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.RefreshResponse, error) {
	if in.RefreshToken == "" {
		return nil, domain.ErrUnauthorized
	}
	now := uc.now()
	presented, err := uc.tokenRepo.GetByHash(ctx, hashToken(in.RefreshToken))
	if err != nil {
		return nil, err
	}
	if presented == nil {
		return nil, domain.ErrUnauthorized
	}
	if presented.IsRevoked() {
		// Reuso de una credencial ya rotada: señal de posible robo.
		uc.log.Warn().
			Str("user_id", presented.UserID).
			Str("token_id", presented.ID).
			Msg("reuso de credencial de refresh revocada")
		return nil, domain.ErrUnauthorized
	}
	if presented.IsExpired(now) {
		return nil, domain.ErrUnauthorized
	}

	user, err := uc.userRepo.GetByID(ctx, presented.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrUnauthorized
	}

	refreshPlain, newRow, err := uc.newRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	// El access token se emite antes de la rotación: firmar no tiene
	// efectos secundarios, y un fallo aquí no debe dejar al cliente con
	// la credencial vieja ya revocada y la nueva sin entregar.
	accessToken, expiresAt, err := uc.issueAccessToken(user)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunTokens(ctx, func(tokenRepo repository.RefreshTokenRepository) error {
		// Revocación condicional: un solo ganador entre escritores concurrentes.
		ok, err := tokenRepo.Revoke(ctx, presented.ID, now, &newRow.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrUnauthorized
		}
		return tokenRepo.Create(ctx, newRow)
	})
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshPlain,
		ExpiresAt:    expiresAt,
	}, nil
}

// Logout revoca la credencial de refresh presentada. Idempotente: una
// credencial desconocida o ya revocada no es un error.
func (uc *UseCase) Logout(ctx context.Context, in dto.LogoutRequest) error {
	if in.RefreshToken == "" {
		return nil
	}
	token, err := uc.tokenRepo.GetByHash(ctx, hashToken(in.RefreshToken))
	if err != nil {
		return err
	}
	if token == nil || token.IsRevoked() {
		return nil
	}
	_, err = uc.tokenRepo.Revoke(ctx, token.ID, uc.now(), nil)
	return err
}

// ChangePassword cambia la contraseña del usuario verificando primero la
// actual contra el hash almacenado; sin prueba de la actual no hay cambio,
// ni siquiera para una sesión ya autenticada. Revoca todas las credenciales
// de refresh activas del usuario.
func (uc *UseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	if len(in.NewPassword) < 8 {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := uc.now()
	user.PasswordHash = string(hash)
	user.UpdatedAt = now
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return err
	}
	if err := uc.tokenRepo.RevokeAllByUser(ctx, userID, now); err != nil {
		return err
	}
	uc.recorder.Record(ctx, audit.Entry{
		ActorID:  userID,
		Action:   entity.AuditActionUpdate,
		Entity:   "user",
		EntityID: userID,
		Detail:   `{"change":"password"}`,
	})
	return nil
}

func (uc *UseCase) issueAccessToken(user *entity.User) (string, time.Time, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return "", time.Time{}, err
	}
	expiresAt := uc.now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute)
	return token, expiresAt, nil
}

// newRefreshToken genera la credencial opaca (32 bytes aleatorios, 256 bits
// de entropía) y su fila persistible: en BD solo va el hash SHA-256.
func (uc *UseCase) newRefreshToken(userID string) (string, *entity.RefreshToken, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", nil, fmt.Errorf("generar refresh token: %w", err)
	}
	plain := hex.EncodeToString(raw)
	now := uc.now()
	row := &entity.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    userID,
		TokenHash: hashToken(plain),
		ExpiresAt: now.AddDate(0, 0, uc.jwtCfg.RefreshDays),
		CreatedAt: now,
	}
	return plain, row, nil
}

func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Active:     u.Active,
		CostCenter: u.CostCenter,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
