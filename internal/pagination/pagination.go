package pagination

import (
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PageRequest holds pagination and sort parameters parsed from query strings.
type PageRequest struct {
	Page      int    `form:"pagina" binding:"omitempty,min=1"`
	PageSize  int    `form:"tamanho_pagina" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"ordenar"`
	Direction string `form:"direcao" binding:"omitempty,oneof=asc desc"`
}

// Defaults fills in default values when pagina or tamanho_pagina are not provided.
func (p *PageRequest) Defaults() {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	p.Direction = strings.ToLower(p.Direction)
}

// Offset returns the SQL OFFSET for the current page.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// OrderClause maps the requested sort onto a whitelisted column. Unknown keys
// fall back to fallback so user input never reaches the ORDER BY verbatim.
func (p *PageRequest) OrderClause(columns map[string]string, fallback string) string {
	column, ok := columns[p.SortBy]
	if !ok {
		return fallback
	}
	dir := "DESC"
	if p.Direction == "asc" {
		dir = "ASC"
	}
	return fmt.Sprintf("%s %s", column, dir)
}

// PageResponse wraps a paginated list of items with metadata.
type PageResponse[T any] struct {
	Data       []T   `json:"dados"`
	Page       int   `json:"pagina"`
	PageSize   int   `json:"tamanho_pagina"`
	TotalItems int64 `json:"total_itens"`
	TotalPages int   `json:"total_paginas"`
}

// NewPageResponse creates a PageResponse from the given data and total count.
func NewPageResponse[T any](data []T, page, pageSize int, totalItems int64) PageResponse[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(pageSize)))
	}
	if data == nil {
		data = []T{}
	}
	return PageResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given page request.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}
