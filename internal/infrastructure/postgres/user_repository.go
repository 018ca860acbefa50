package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/bodega-epp/internal/domain"
	"github.com/tu-usuario/bodega-epp/internal/domain/entity"
	"github.com/tu-usuario/bodega-epp/internal/domain/query"
	"github.com/tu-usuario/bodega-epp/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// Lista blanca de claves de orden del listado de usuarios.
var userSortKeys = query.SortKeys{
	Default: "name",
	Columns: map[string]string{
		"name":      "name",
		"email":     "email",
		"role":      "role",
		"createdAt": "created_at",
	},
}

const userColumns = `id, email, password_hash, name, role, active, cost_center, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// userRow fila de users para scany.
type userRow struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Role         string    `db:"role"`
	Active       bool      `db:"active"`
	CostCenter   string    `db:"cost_center"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r userRow) toEntity() entity.User {
	return entity.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Name:         r.Name,
		Role:         r.Role,
		Active:       r.Active,
		CostCenter:   r.CostCenter,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// Create persiste un nuevo usuario. Email duplicado → ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	sql := `
		INSERT INTO users (id, email, password_hash, name, role, active, cost_center, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, sql,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role, user.Active,
		user.CostCenter, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email ya normalizado. La comparación es
// case-insensitive por si quedan filas históricas sin normalizar.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = $1 LIMIT 1`, email)
}

func (r *UserRepo) getOne(ctx context.Context, sql string, arg any) (*entity.User, error) {
	var row userRow
	err := r.q.QueryRow(ctx, sql, arg).Scan(
		&row.ID, &row.Email, &row.PasswordHash, &row.Name, &row.Role, &row.Active,
		&row.CostCenter, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u := row.toEntity()
	return &u, nil
}

// Update actualiza un usuario. El email no cambia.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	sql := `
		UPDATE users SET password_hash = $2, name = $3, role = $4, active = $5,
			cost_center = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, sql,
		user.ID, user.PasswordHash, user.Name, user.Role, user.Active, user.CostCenter, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// List devuelve usuarios paginados con búsqueda por nombre y email.
func (r *UserRepo) List(ctx context.Context, params query.ListParams) (query.Page[entity.User], error) {
	var page query.Page[entity.User]

	q := builder().
		Select("id", "email", "password_hash", "name", "role", "active", "cost_center",
			"created_at", "updated_at").
		From("users")
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"email": pattern},
		})
	}

	total, err := countRows(ctx, r.q, q)
	if err != nil {
		return page, fmt.Errorf("count users: %w", err)
	}

	q = q.OrderBy(userSortKeys.Resolve(params.SortBy) + " " + sqlOrder(params.SortOrder)).
		Limit(uint64(params.PageSize)).
		Offset(uint64(params.Offset()))
	sql, args, err := q.ToSql()
	if err != nil {
		return page, fmt.Errorf("build users query: %w", err)
	}

	var rows []userRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return page, fmt.Errorf("list users: %w", err)
	}
	users := make([]entity.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toEntity())
	}
	return query.NewPage(users, total, params), nil
}
