package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/bodega-epp/internal/domain"
	"github.com/tu-usuario/bodega-epp/internal/domain/entity"
	"github.com/tu-usuario/bodega-epp/internal/domain/query"
	"github.com/tu-usuario/bodega-epp/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// Lista blanca de claves de orden del listado de ítems.
var itemSortKeys = query.SortKeys{
	Default: "name",
	Columns: map[string]string{
		"name":       "name",
		"sku":        "sku",
		"quantity":   "quantity",
		"expiryDate": "expiry_date",
		"createdAt":  "created_at",
	},
}

const itemColumns = `id, name, sku, quantity, min_stock, max_stock, es_epp, unit_cost,
		expiry_date, last_maintenance_at, next_maintenance_at, created_at, updated_at`

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// itemRow fila de items para scany.
type itemRow struct {
	ID                string          `db:"id"`
	Name              string          `db:"name"`
	SKU               string          `db:"sku"`
	Quantity          int             `db:"quantity"`
	MinStock          int             `db:"min_stock"`
	MaxStock          int             `db:"max_stock"`
	EsEPP             bool            `db:"es_epp"`
	UnitCost          decimal.Decimal `db:"unit_cost"`
	ExpiryDate        *time.Time      `db:"expiry_date"`
	LastMaintenanceAt *time.Time      `db:"last_maintenance_at"`
	NextMaintenanceAt *time.Time      `db:"next_maintenance_at"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

func (r itemRow) toEntity() entity.Item {
	return entity.Item{
		ID:                r.ID,
		Name:              r.Name,
		SKU:               r.SKU,
		Quantity:          r.Quantity,
		MinStock:          r.MinStock,
		MaxStock:          r.MaxStock,
		EsEPP:             r.EsEPP,
		UnitCost:          r.UnitCost,
		ExpiryDate:        r.ExpiryDate,
		LastMaintenanceAt: r.LastMaintenanceAt,
		NextMaintenanceAt: r.NextMaintenanceAt,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// Create persiste un nuevo ítem. SKU duplicado → ErrSkuAlreadyExists.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	sql := `
		INSERT INTO items (id, name, sku, quantity, min_stock, max_stock, es_epp, unit_cost,
			expiry_date, last_maintenance_at, next_maintenance_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, sql,
		item.ID, item.Name, item.SKU, item.Quantity, item.MinStock, item.MaxStock, item.EsEPP,
		item.UnitCost, item.ExpiryDate, item.LastMaintenanceAt, item.NextMaintenanceAt,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSkuAlreadyExists
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID. (nil, nil) si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

// GetBySKU obtiene un ítem por SKU. (nil, nil) si no existe.
func (r *ItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE sku = $1`, sku)
}

// GetByIDForUpdate obtiene el ítem bloqueando la fila (SELECT FOR UPDATE)
// para serializar la secuencia leer-comparar-escribir sobre quantity.
func (r *ItemRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id)
}

func (r *ItemRepo) getOne(ctx context.Context, sql string, arg any) (*entity.Item, error) {
	var row itemRow
	err := r.q.QueryRow(ctx, sql, arg).Scan(
		&row.ID, &row.Name, &row.SKU, &row.Quantity, &row.MinStock, &row.MaxStock, &row.EsEPP,
		&row.UnitCost, &row.ExpiryDate, &row.LastMaintenanceAt, &row.NextMaintenanceAt,
		&row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	item := row.toEntity()
	return &item, nil
}

// Update persiste los campos mutables del ítem. Nunca toca el SKU.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	sql := `
		UPDATE items SET name = $2, quantity = $3, min_stock = $4, max_stock = $5, es_epp = $6,
			unit_cost = $7, expiry_date = $8, last_maintenance_at = $9, next_maintenance_at = $10,
			updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, sql,
		item.ID, item.Name, item.Quantity, item.MinStock, item.MaxStock, item.EsEPP,
		item.UnitCost, item.ExpiryDate, item.LastMaintenanceAt, item.NextMaintenanceAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Delete elimina el ítem. La FK de movements bloquea el borrado si el ítem
// tiene movimientos: se traduce a ErrItemReferenced.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrItemReferenced
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// List devuelve ítems paginados. El conteo corre sobre la consulta filtrada
// sin paginar, así el total es exacto aunque la página quede vacía.
func (r *ItemRepo) List(ctx context.Context, params query.ListParams) (query.Page[entity.Item], error) {
	var page query.Page[entity.Item]

	q := builder().
		Select("id", "name", "sku", "quantity", "min_stock", "max_stock", "es_epp", "unit_cost",
			"expiry_date", "last_maintenance_at", "next_maintenance_at", "created_at", "updated_at").
		From("items")
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"sku": pattern},
		})
	}

	total, err := countRows(ctx, r.q, q)
	if err != nil {
		return page, fmt.Errorf("count items: %w", err)
	}

	q = q.OrderBy(itemSortKeys.Resolve(params.SortBy) + " " + sqlOrder(params.SortOrder)).
		Limit(uint64(params.PageSize)).
		Offset(uint64(params.Offset()))
	sql, args, err := q.ToSql()
	if err != nil {
		return page, fmt.Errorf("build items query: %w", err)
	}

	var rows []itemRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return page, fmt.Errorf("list items: %w", err)
	}
	items := make([]entity.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return query.NewPage(items, total, params), nil
}
