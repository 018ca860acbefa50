package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/tu-usuario/bodega-epp/internal/domain/query"
)

// builder devuelve un builder squirrel con placeholders $n de PostgreSQL.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// countRows cuenta las filas de la consulta filtrada, antes de aplicar la
// ventana de paginación.
func countRows(ctx context.Context, q Querier, sq squirrel.SelectBuilder) (int, error) {
	countSQL, args, err := builder().Select("COUNT(*)").FromSelect(sq, "sub").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return total, nil
}

// sqlOrder traduce el orden normalizado a la palabra clave SQL.
func sqlOrder(order string) string {
	if order == query.OrderDesc {
		return "DESC"
	}
	return "ASC"
}
