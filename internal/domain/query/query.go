// Package query define el motor genérico de búsqueda + orden + paginación
// que reutilizan todos los listados (ítems, movimientos, usuarios, bitácora).
package query

// Límites y valores por defecto de paginación.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Órdenes válidos.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListParams parámetros de un listado: búsqueda, orden y página.
type ListParams struct {
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// Normalize aplica los valores por defecto: página 1, tamaño 20 (tope 100),
// orden ascendente. Nunca falla: entrada malformada produce valores por defecto.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.SortOrder != OrderDesc {
		p.SortOrder = OrderAsc
	}
}

// Offset devuelve el desplazamiento SQL de la página.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// SortKeys es la lista blanca de claves de orden de un listado: mapea el
// nombre expuesto en la API a la columna real. Una clave desconocida cae a
// Default en vez de fallar (política permisiva deliberada: input malformado
// del cliente nunca produce error, solo un orden distinto al esperado).
type SortKeys struct {
	Default string
	Columns map[string]string
}

// Resolve devuelve la columna para sortBy, o la columna por defecto si la
// clave no está en la lista blanca.
func (s SortKeys) Resolve(sortBy string) string {
	if col, ok := s.Columns[sortBy]; ok {
		return col
	}
	return s.Columns[s.Default]
}

// Page es una página de resultados con el conteo total exacto, calculado
// sobre la consulta filtrada pero sin paginar.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPage arma la página y calcula TotalPages = ceil(total/pageSize).
func NewPage[T any](items []T, total int, p ListParams) Page[T] {
	totalPages := 0
	if p.PageSize > 0 {
		totalPages = (total + p.PageSize - 1) / p.PageSize
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		TotalCount: total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: totalPages,
	}
}
