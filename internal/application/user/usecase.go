package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/bodega-epp/internal/application/audit"
	"github.com/tu-usuario/bodega-epp/internal/application/auth"
	"github.com/tu-usuario/bodega-epp/internal/application/dto"
	"github.com/tu-usuario/bodega-epp/internal/domain"
	"github.com/tu-usuario/bodega-epp/internal/domain/entity"
	"github.com/tu-usuario/bodega-epp/internal/domain/query"
	"github.com/tu-usuario/bodega-epp/internal/domain/repository"
)

// UseCase administración de usuarios (solo admin).
type UseCase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.RefreshTokenRepository
	recorder  *audit.Recorder
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(userRepo repository.UserRepository, tokenRepo repository.RefreshTokenRepository, recorder *audit.Recorder, now func() time.Time) *UseCase {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &UseCase{userRepo: userRepo, tokenRepo: tokenRepo, recorder: recorder, now: now}
}

// Create crea un usuario: hashea el password con bcrypt y persiste.
// Email duplicado (case-insensitive) → ErrEmailAlreadyExists (Conflict).
func (uc *UseCase) Create(ctx context.Context, actorID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Email == "" || len(in.Password) < 8 || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Role {
	case entity.RoleAdmin, entity.RoleRRHH, entity.RoleEmpleado:
	default:
		return nil, domain.ErrInvalidInput
	}
	email := auth.NormalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		Active:       true,
		CostCenter:   in.CostCenter,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, audit.Entry{
		ActorID:  actorID,
		Action:   entity.AuditActionCreate,
		Entity:   "user",
		EntityID: u.ID,
	})
	return toUserResponse(u), nil
}

// Update actualiza nombre, rol, centro de costos y estado. Al desactivar se
// revocan las credenciales de refresh activas del usuario.
func (uc *UseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Role {
	case entity.RoleAdmin, entity.RoleRRHH, entity.RoleEmpleado:
	default:
		return nil, domain.ErrInvalidInput
	}
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	deactivated := u.Active && !in.Active
	now := uc.now()
	u.Name = in.Name
	u.Role = in.Role
	u.Active = in.Active
	u.CostCenter = in.CostCenter
	u.UpdatedAt = now
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	if deactivated {
		if err := uc.tokenRepo.RevokeAllByUser(ctx, u.ID, now); err != nil {
			return nil, err
		}
	}
	uc.recorder.Record(ctx, audit.Entry{
		ActorID:  actorID,
		Action:   entity.AuditActionUpdate,
		Entity:   "user",
		EntityID: u.ID,
	})
	return toUserResponse(u), nil
}

// Get devuelve un usuario por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(u), nil
}

// List devuelve usuarios paginados con búsqueda y orden.
func (uc *UseCase) List(ctx context.Context, in dto.ListRequest) (query.Page[dto.UserResponse], error) {
	page, err := uc.userRepo.List(ctx, in.ToParams())
	if err != nil {
		return query.Page[dto.UserResponse]{}, err
	}
	users := make([]dto.UserResponse, 0, len(page.Items))
	for i := range page.Items {
		users = append(users, *toUserResponse(&page.Items[i]))
	}
	return query.Page[dto.UserResponse]{
		Items:      users,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
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
