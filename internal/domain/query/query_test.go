package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/bodega-epp/internal/domain/query"
)

// ──────────────────────────────────────────────────────────────────────────────
// Normalize
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalize_ValoresPorDefecto(t *testing.T) {
	p := query.ListParams{}
	p.Normalize()

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, query.DefaultPageSize, p.PageSize)
	assert.Equal(t, query.OrderAsc, p.SortOrder)
}

func TestNormalize_EntradaMalformadaNoFalla(t *testing.T) {
	p := query.ListParams{Page: -7, PageSize: -1, SortOrder: "DROP TABLE"}
	p.Normalize()

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, query.DefaultPageSize, p.PageSize)
	assert.Equal(t, query.OrderAsc, p.SortOrder, "orden desconocido cae a asc")
}

func TestNormalize_TopeDeTamanoDePagina(t *testing.T) {
	p := query.ListParams{PageSize: 5000}
	p.Normalize()

	assert.Equal(t, query.MaxPageSize, p.PageSize)
}

func TestNormalize_RespetaDesc(t *testing.T) {
	p := query.ListParams{SortOrder: "desc"}
	p.Normalize()

	assert.Equal(t, query.OrderDesc, p.SortOrder)
}

func TestOffset(t *testing.T) {
	p := query.ListParams{Page: 3, PageSize: 20}
	assert.Equal(t, 40, p.Offset())

	p = query.ListParams{Page: 1, PageSize: 20}
	assert.Equal(t, 0, p.Offset())
}

// ──────────────────────────────────────────────────────────────────────────────
// SortKeys
// ──────────────────────────────────────────────────────────────────────────────

var itemKeys = query.SortKeys{
	Default: "name",
	Columns: map[string]string{
		"name":      "name",
		"sku":       "sku",
		"createdAt": "created_at",
	},
}

func TestResolve_ClaveConocida(t *testing.T) {
	assert.Equal(t, "created_at", itemKeys.Resolve("createdAt"))
}

// Una clave fuera de la lista blanca cae a la columna por defecto, nunca
// llega texto del cliente al ORDER BY.
func TestResolve_ClaveDesconocidaCaeAlDefault(t *testing.T) {
	assert.Equal(t, "name", itemKeys.Resolve("password_hash; --"))
	assert.Equal(t, "name", itemKeys.Resolve(""))
}

// ──────────────────────────────────────────────────────────────────────────────
// NewPage
// ──────────────────────────────────────────────────────────────────────────────

func TestNewPage_CalculaTotalPages(t *testing.T) {
	p := query.ListParams{Page: 1, PageSize: 20}

	page := query.NewPage([]int{1, 2, 3}, 41, p)

	assert.Equal(t, 41, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages, "ceil(41/20) = 3")
	assert.Len(t, page.Items, 3)
}

func TestNewPage_TotalExacto(t *testing.T) {
	p := query.ListParams{Page: 2, PageSize: 20}

	page := query.NewPage([]int{}, 40, p)

	assert.Equal(t, 2, page.TotalPages, "40/20 = 2 sin redondeo")
}

// Items nil debe serializar como lista vacía, no como null.
func TestNewPage_ItemsNilQuedaVacio(t *testing.T) {
	p := query.ListParams{Page: 1, PageSize: 20}

	page := query.NewPage[string](nil, 0, p)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
}
