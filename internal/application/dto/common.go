package dto

import "github.com/tu-usuario/bodega-epp/internal/domain/query"

// ListRequest parámetros de query comunes a todos los listados.
type ListRequest struct {
	SearchTerm string `query:"searchTerm"`
	SortBy     string `query:"sortBy"`
	SortOrder  string `query:"sortOrder"`
	PageNumber int    `query:"pageNumber"`
	PageSize   int    `query:"pageSize"`
}

// ToParams convierte el request a los parámetros del motor de listados,
// aplicando los valores por defecto.
func (r ListRequest) ToParams() query.ListParams {
	p := query.ListParams{
		Search:    r.SearchTerm,
		SortBy:    r.SortBy,
		SortOrder: r.SortOrder,
		Page:      r.PageNumber,
		PageSize:  r.PageSize,
	}
	p.Normalize()
	return p
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
