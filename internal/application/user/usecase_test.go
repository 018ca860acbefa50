package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/bodega-epp/internal/application/audit"
	"github.com/tu-usuario/bodega-epp/internal/application/dto"
	"github.com/tu-usuario/bodega-epp/internal/application/user"
	"github.com/tu-usuario/bodega-epp/internal/domain"
	"github.com/tu-usuario/bodega-epp/internal/domain/entity"
	"github.com/tu-usuario/bodega-epp/internal/domain/query"
	"github.com/tu-usuario/bodega-epp/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, p query.ListParams) (query.Page[entity.User], error) {
	return query.NewPage[entity.User](nil, 0, p), nil
}

type fakeTokenRepo struct {
	revokedFor []string
}

func (r *fakeTokenRepo) Create(_ context.Context, _ *entity.RefreshToken) error { return nil }

func (r *fakeTokenRepo) GetByHash(_ context.Context, _ string) (*entity.RefreshToken, error) {
	return nil, nil
}

func (r *fakeTokenRepo) Revoke(_ context.Context, _ string, _ time.Time, _ *string) (bool, error) {
	return false, nil
}

func (r *fakeTokenRepo) RevokeAllByUser(_ context.Context, userID string, _ time.Time) error {
	r.revokedFor = append(r.revokedFor, userID)
	return nil
}

type fakeAuditRepo struct {
	entries []entity.AuditLog
}

func (r *fakeAuditRepo) Create(_ context.Context, log *entity.AuditLog) error {
	r.entries = append(r.entries, *log)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, p query.ListParams) (query.Page[entity.AuditLog], error) {
	return query.NewPage[entity.AuditLog](nil, 0, p), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminID    = "00000000-0000-0000-0000-0000000000aa"
	existingID = "00000000-0000-0000-0000-0000000000bb"
)

func buildFixture(t *testing.T) (*user.UseCase, *fakeUserRepo, *fakeTokenRepo) {
	t.Helper()
	users := newFakeUserRepo()
	tokens := &fakeTokenRepo{}

	hash, err := bcrypt.GenerateFromPassword([]byte("clave-inicial"), bcrypt.MinCost)
	require.NoError(t, err)
	users.users[existingID] = entity.User{
		ID: existingID, Email: "empleado@acme.com", PasswordHash: string(hash),
		Name: "Empleado", Role: entity.RoleEmpleado, Active: true,
	}

	log := logger.New(logger.Config{Env: "test", Level: "error"})
	recorder := audit.NewRecorder(&fakeAuditRepo{}, log, nil)
	now := func() time.Time { return time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC) }
	return user.NewUseCase(users, tokens, recorder, now), users, tokens
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NormalizaEmailYHasheaPassword(t *testing.T) {
	uc, users, _ := buildFixture(t)

	resp, err := uc.Create(context.Background(), adminID, dto.CreateUserRequest{
		Email: "  Nuevo@Acme.COM ", Password: "clave-segura", Name: "Nuevo", Role: entity.RoleRRHH,
	})
	require.NoError(t, err)

	assert.Equal(t, "nuevo@acme.com", resp.Email)
	stored := users.users[resp.ID]
	assert.NotEqual(t, "clave-segura", stored.PasswordHash, "el password nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave-segura")))
}

func TestCreate_EmailDuplicado_Conflicto(t *testing.T) {
	uc, _, _ := buildFixture(t)

	_, err := uc.Create(context.Background(), adminID, dto.CreateUserRequest{
		Email: "EMPLEADO@acme.com", Password: "clave-segura", Name: "Otro", Role: entity.RoleEmpleado,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestCreate_RolDesconocido_Rechazado(t *testing.T) {
	uc, _, _ := buildFixture(t)

	_, err := uc.Create(context.Background(), adminID, dto.CreateUserRequest{
		Email: "nuevo@acme.com", Password: "clave-segura", Name: "Nuevo", Role: "superadmin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_RolDesconocido_Rechazado(t *testing.T) {
	uc, users, _ := buildFixture(t)

	_, err := uc.Update(context.Background(), adminID, existingID, dto.UpdateUserRequest{
		Name: "Empleado", Role: "gerente", Active: true,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.RoleEmpleado, users.users[existingID].Role, "el rol no debe cambiar")
}

func TestUpdate_RolVacio_Rechazado(t *testing.T) {
	uc, _, _ := buildFixture(t)

	_, err := uc.Update(context.Background(), adminID, existingID, dto.UpdateUserRequest{
		Name: "Empleado", Active: true,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_CambiaRolYNombre(t *testing.T) {
	uc, _, _ := buildFixture(t)

	resp, err := uc.Update(context.Background(), adminID, existingID, dto.UpdateUserRequest{
		Name: "Empleado Senior", Role: entity.RoleRRHH, Active: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Empleado Senior", resp.Name)
	assert.Equal(t, entity.RoleRRHH, resp.Role)
}

func TestUpdate_Desactivar_RevocaRefresh(t *testing.T) {
	uc, users, tokens := buildFixture(t)

	_, err := uc.Update(context.Background(), adminID, existingID, dto.UpdateUserRequest{
		Name: "Empleado", Role: entity.RoleEmpleado, Active: false,
	})
	require.NoError(t, err)

	assert.False(t, users.users[existingID].Active)
	assert.Equal(t, []string{existingID}, tokens.revokedFor, "desactivar revoca las credenciales activas")
}

func TestUpdate_UsuarioInexistente(t *testing.T) {
	uc, _, _ := buildFixture(t)

	_, err := uc.Update(context.Background(), adminID, "no-existe", dto.UpdateUserRequest{
		Name: "Alguien", Role: entity.RoleEmpleado, Active: true,
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
