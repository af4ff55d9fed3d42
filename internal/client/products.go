package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tu-usuario/thelab-panel/internal/domain/entity"
)

// apiProduct registro de producto tal como lo envía el backend. Los campos
// opcionales llegan ausentes o null; la normalización los rellena.
type apiProduct struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	SKU         string       `json:"sku"`
	Quantity    *int         `json:"quantity"`
	Location    *string      `json:"location"`
	Description *string      `json:"description"`
	Barcodes    *string      `json:"barcodes"`
	Category    *apiCategory `json:"category"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type apiCategory struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// normalizeProduct aplica los defaults de lectura: quantity→0,
// location/description/barcodes→"N/A", categoría ausente→nil.
func normalizeProduct(item apiProduct) entity.Product {
	p := entity.Product{
		ID:          item.ID,
		Name:        item.Name,
		SKU:         item.SKU,
		Location:    entity.PlaceholderNA,
		Description: entity.PlaceholderNA,
		Barcodes:    entity.PlaceholderNA,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
	if item.Quantity != nil && *item.Quantity > 0 {
		p.Quantity = *item.Quantity
	}
	if item.Location != nil && *item.Location != "" {
		p.Location = *item.Location
	}
	if item.Description != nil && *item.Description != "" {
		p.Description = *item.Description
	}
	if item.Barcodes != nil && *item.Barcodes != "" {
		p.Barcodes = *item.Barcodes
	}
	if item.Category != nil {
		p.Category = &entity.Category{
			ID:        item.Category.ID,
			Name:      item.Category.Name,
			CreatedAt: item.Category.CreatedAt,
			UpdatedAt: item.Category.UpdatedAt,
		}
	}
	return p
}

// CreateProductInput cuerpo de POST /inventory. Los opcionales vacíos se
// omiten del JSON (punteros nil) en lugar de viajar como string vacío.
type CreateProductInput struct {
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	SKU         *string `json:"sku,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
	Barcodes    *string `json:"barcodes,omitempty"`
}

// UpdateProductInput cuerpo de PATCH /inventory/{id}; solo viajan los campos
// no nil. El flujo de edición manda el placeholder "N/A" en los opcionales
// vaciados porque el backend los exige con valor.
type UpdateProductInput struct {
	Name        *string `json:"name,omitempty"`
	SKU         *string `json:"sku,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
	Barcodes    *string `json:"barcodes,omitempty"`
}

// Products cliente REST del inventario.
type Products struct {
	base *Client
}

// NewProducts construye el cliente de productos.
func NewProducts(base *Client) *Products {
	return &Products{base: base}
}

// List trae el inventario completo normalizado.
func (c *Products) List(ctx context.Context) ([]entity.Product, error) {
	var records []apiProduct
	if err := c.base.do(ctx, http.MethodGet, "/inventory", nil, &records, "No se pudieron cargar los productos"); err != nil {
		return nil, err
	}
	items := make([]entity.Product, 0, len(records))
	for _, r := range records {
		items = append(items, normalizeProduct(r))
	}
	return items, nil
}

// Get trae un producto por id; ErrNotFound si el backend responde 404.
func (c *Products) Get(ctx context.Context, id int64) (*entity.Product, error) {
	var record apiProduct
	if err := c.base.do(ctx, http.MethodGet, fmt.Sprintf("/inventory/%d", id), nil, &record, "Producto no encontrado"); err != nil {
		return nil, err
	}
	p := normalizeProduct(record)
	return &p, nil
}

// Create da de alta un producto y devuelve el registro confirmado.
func (c *Products) Create(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	var record apiProduct
	if err := c.base.do(ctx, http.MethodPost, "/inventory", in, &record, "No se pudo crear el producto"); err != nil {
		return nil, err
	}
	p := normalizeProduct(record)
	return &p, nil
}

// Update aplica un PATCH parcial y devuelve el registro confirmado.
func (c *Products) Update(ctx context.Context, id int64, in UpdateProductInput) (*entity.Product, error) {
	var record apiProduct
	if err := c.base.do(ctx, http.MethodPatch, fmt.Sprintf("/inventory/%d", id), in, &record, "No se pudo actualizar el producto"); err != nil {
		return nil, err
	}
	p := normalizeProduct(record)
	return &p, nil
}

// Delete elimina el producto.
func (c *Products) Delete(ctx context.Context, id int64) error {
	return c.base.do(ctx, http.MethodDelete, fmt.Sprintf("/inventory/%d", id), nil, nil, "No se pudo eliminar el producto")
}
