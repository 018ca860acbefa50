package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/tu-usuario/bodega-epp/internal/domain/entity"
	"github.com/tu-usuario/bodega-epp/internal/domain/query"
	"github.com/tu-usuario/bodega-epp/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// Lista blanca de claves de orden del ledger. Por defecto el más reciente primero.
var movementSortKeys = query.SortKeys{
	Default: "createdAt",
	Columns: map[string]string{
		"createdAt": "created_at",
		"type":      "type",
		"quantity":  "quantity",
	},
}

const movementColumns = `id, item_id, operator_id, type, quantity, recipient_id,
		expected_return_at, note, signature, created_at`

// MovementRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
// Solo INSERT y SELECT: las filas del ledger jamás se actualizan ni se borran.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// movementRow fila de movements para scany.
type movementRow struct {
	ID               string     `db:"id"`
	ItemID           string     `db:"item_id"`
	OperatorID       string     `db:"operator_id"`
	Type             string     `db:"type"`
	Quantity         int        `db:"quantity"`
	RecipientID      *string    `db:"recipient_id"`
	ExpectedReturnAt *time.Time `db:"expected_return_at"`
	Note             string     `db:"note"`
	Signature        string     `db:"signature"`
	CreatedAt        time.Time  `db:"created_at"`
}

func (r movementRow) toEntity() entity.Movement {
	return entity.Movement{
		ID:               r.ID,
		ItemID:           r.ItemID,
		OperatorID:       r.OperatorID,
		Type:             r.Type,
		Quantity:         r.Quantity,
		RecipientID:      r.RecipientID,
		ExpectedReturnAt: r.ExpectedReturnAt,
		Note:             r.Note,
		Signature:        r.Signature,
		CreatedAt:        r.CreatedAt,
	}
}

// Create persiste una entrada del ledger.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	sql := `
		INSERT INTO movements (id, item_id, operator_id, type, quantity, recipient_id,
			expected_return_at, note, signature, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, sql,
		m.ID, m.ItemID, m.OperatorID, m.Type, m.Quantity, m.RecipientID,
		m.ExpectedReturnAt, m.Note, m.Signature, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListByItem lista los movimientos de un ítem, más recientes primero.
func (r *MovementRepo) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.Movement, error) {
	return r.listWhere(ctx, "item_id = $1", itemID, limit, offset)
}

// ListByOperator lista los movimientos registrados por un usuario.
func (r *MovementRepo) ListByOperator(ctx context.Context, operatorID string, limit, offset int) ([]*entity.Movement, error) {
	return r.listWhere(ctx, "operator_id = $1", operatorID, limit, offset)
}

// ListByRecipient lista los movimientos con el usuario dado como receptor.
func (r *MovementRepo) ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]*entity.Movement, error) {
	return r.listWhere(ctx, "recipient_id = $1", recipientID, limit, offset)
}

func (r *MovementRepo) listWhere(ctx context.Context, where string, arg any, limit, offset int) ([]*entity.Movement, error) {
	sql := fmt.Sprintf(`
		SELECT %s FROM movements WHERE %s
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, movementColumns, where)
	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, arg, limit, offset); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	list := make([]*entity.Movement, 0, len(rows))
	for _, row := range rows {
		m := row.toEntity()
		list = append(list, &m)
	}
	return list, nil
}

// List devuelve el ledger paginado con filtros y búsqueda por nota.
// El conteo corre sobre la consulta filtrada sin paginar.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter, params query.ListParams) (query.Page[entity.Movement], error) {
	var page query.Page[entity.Movement]

	q := builder().
		Select("id", "item_id", "operator_id", "type", "quantity", "recipient_id",
			"expected_return_at", "note", "signature", "created_at").
		From("movements")
	if filter.ItemID != "" {
		q = q.Where(squirrel.Eq{"item_id": filter.ItemID})
	}
	if filter.OperatorID != "" {
		q = q.Where(squirrel.Eq{"operator_id": filter.OperatorID})
	}
	if filter.RecipientID != "" {
		q = q.Where(squirrel.Eq{"recipient_id": filter.RecipientID})
	}
	if filter.Type != "" {
		q = q.Where(squirrel.Eq{"type": filter.Type})
	}
	if params.Search != "" {
		q = q.Where(squirrel.ILike{"note": "%" + params.Search + "%"})
	}

	total, err := countRows(ctx, r.q, q)
	if err != nil {
		return page, fmt.Errorf("count movements: %w", err)
	}

	// Orden por defecto del ledger: más reciente primero.
	order := sqlOrder(params.SortOrder)
	if params.SortBy == "" {
		order = "DESC"
	}
	q = q.OrderBy(movementSortKeys.Resolve(params.SortBy) + " " + order).
		Limit(uint64(params.PageSize)).
		Offset(uint64(params.Offset()))
	sql, args, err := q.ToSql()
	if err != nil {
		return page, fmt.Errorf("build movements query: %w", err)
	}

	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return page, fmt.Errorf("list movements: %w", err)
	}
	movs := make([]entity.Movement, 0, len(rows))
	for _, row := range rows {
		movs = append(movs, row.toEntity())
	}
	return query.NewPage(movs, total, params), nil
}
