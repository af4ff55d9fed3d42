package controller

import (
	"strings"

	"github.com/tu-usuario/thelab-panel/internal/domain/entity"
)

// StockFilter tri-estado del filtro de existencias.
type StockFilter string

const (
	StockAll        StockFilter = "all"
	StockInStock    StockFilter = "in-stock"
	StockOutOfStock StockFilter = "out-of-stock"
)

// ParseStockFilter valores desconocidos caen en "all".
func ParseStockFilter(raw string) StockFilter {
	switch StockFilter(raw) {
	case StockInStock:
		return StockInStock
	case StockOutOfStock:
		return StockOutOfStock
	default:
		return StockAll
	}
}

// ProductFilter dos predicados independientes sobre la colección: búsqueda por
// substring (case-insensitive, sobre name y sku) y existencias. La lista
// visible es la conjunción de ambos; se recalcula en cada render y se resetea
// sin tocar la colección.
type ProductFilter struct {
	Search string
	Stock  StockFilter
}

// Match evalúa ambos predicados sobre un producto.
func (f ProductFilter) Match(p entity.Product) bool {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	matchesSearch := term == "" ||
		strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.SKU), term)
	if !matchesSearch {
		return false
	}
	switch f.Stock {
	case StockInStock:
		return p.Quantity > 0
	case StockOutOfStock:
		return p.Quantity == 0
	default:
		return true
	}
}

// Apply devuelve la sublista filtrada preservando el orden.
func (f ProductFilter) Apply(items []entity.Product) []entity.Product {
	out := make([]entity.Product, 0, len(items))
	for _, p := range items {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Active indica si hay algún filtro aplicado (para pintar el botón de reset).
func (f ProductFilter) Active() bool {
	return strings.TrimSpace(f.Search) != "" || (f.Stock != "" && f.Stock != StockAll)
}
