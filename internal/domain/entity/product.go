package entity

import "time"

// PlaceholderNA valor por defecto que el panel muestra cuando el backend no
// trae location, description o barcodes.
const PlaceholderNA = "N/A"

// Product representa un producto del inventario ya normalizado para el panel.
// Quantity nunca es negativa: se clampa a 0 tanto al leer como al capturar.
type Product struct {
	ID          int64
	Name        string
	SKU         string
	Quantity    int
	Location    string
	Description string
	Barcodes    string
	Category    *Category // nil si el backend no embebe categoría
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InStock indica si hay existencias (quantity > 0).
func (p Product) InStock() bool {
	return p.Quantity > 0
}

// Category referencia de solo lectura adjunta a Product.
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
