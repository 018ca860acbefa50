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

var _ repository.AuditRepository = (*AuditRepo)(nil)

// Lista blanca de claves de orden de la bitácora.
var auditSortKeys = query.SortKeys{
	Default: "createdAt",
	Columns: map[string]string{
		"createdAt": "created_at",
		"action":    "action",
		"entity":    "entity",
	},
}

// AuditRepo implementación de la bitácora sobre PostgreSQL (usable con pool o tx).
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// auditRow fila de audit_logs para scany.
type auditRow struct {
	ID        string    `db:"id"`
	ActorID   string    `db:"actor_id"`
	Action    string    `db:"action"`
	Entity    string    `db:"entity"`
	EntityID  string    `db:"entity_id"`
	Detail    string    `db:"detail"`
	CreatedAt time.Time `db:"created_at"`
}

// Create persiste un registro de bitácora.
func (r *AuditRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	sql := `
		INSERT INTO audit_logs (id, actor_id, action, entity, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, sql,
		log.ID, log.ActorID, log.Action, log.Entity, log.EntityID, log.Detail, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List devuelve la bitácora paginada, más reciente primero por defecto.
func (r *AuditRepo) List(ctx context.Context, params query.ListParams) (query.Page[entity.AuditLog], error) {
	var page query.Page[entity.AuditLog]

	q := builder().
		Select("id", "actor_id", "action", "entity", "entity_id", "detail", "created_at").
		From("audit_logs")
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"action": pattern},
			squirrel.ILike{"entity": pattern},
			squirrel.ILike{"entity_id": pattern},
		})
	}

	total, err := countRows(ctx, r.q, q)
	if err != nil {
		return page, fmt.Errorf("count audit logs: %w", err)
	}

	order := sqlOrder(params.SortOrder)
	if params.SortBy == "" {
		order = "DESC"
	}
	q = q.OrderBy(auditSortKeys.Resolve(params.SortBy) + " " + order).
		Limit(uint64(params.PageSize)).
		Offset(uint64(params.Offset()))
	sql, args, err := q.ToSql()
	if err != nil {
		return page, fmt.Errorf("build audit query: %w", err)
	}

	var rows []auditRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return page, fmt.Errorf("list audit logs: %w", err)
	}
	logs := make([]entity.AuditLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, entity.AuditLog{
			ID:        row.ID,
			ActorID:   row.ActorID,
			Action:    row.Action,
			Entity:    row.Entity,
			EntityID:  row.EntityID,
			Detail:    row.Detail,
			CreatedAt: row.CreatedAt,
		})
	}
	return query.NewPage(logs, total, params), nil
}
