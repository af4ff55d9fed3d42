package controller

import (
	"strconv"
	"strings"

	"github.com/tu-usuario/thelab-panel/internal/client"
	"github.com/tu-usuario/thelab-panel/internal/domain/entity"
)

// CoerceQuantity coerción de cantidades capturadas como texto libre:
// max(0, parseado-o-cero). "-5" y "abc" dan 0; "12" da 12.
func CoerceQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ProductDraft copia local editable de un producto. Todos los campos son
// string, incluso los numéricos, para permitir edición libre; la coerción
// ocurre al normalizar, no al teclear.
type ProductDraft struct {
	Name        string
	SKU         string
	Quantity    string
	Location    string
	Description string
	Barcodes    string
}

// BlankProductDraft plantilla de fila vacía para el modo creación.
func BlankProductDraft() ProductDraft {
	return ProductDraft{Quantity: "0"}
}

// ProductDraftFrom snapshot de una entidad existente para el modo edición.
func ProductDraftFrom(p entity.Product) ProductDraft {
	return ProductDraft{
		Name:        p.Name,
		SKU:         p.SKU,
		Quantity:    strconv.Itoa(p.Quantity),
		Location:    p.Location,
		Description: p.Description,
		Barcodes:    p.Barcodes,
	}
}

// trimmed devuelve el borrador con todos los strings recortados.
func (d ProductDraft) trimmed() ProductDraft {
	return ProductDraft{
		Name:        strings.TrimSpace(d.Name),
		SKU:         strings.TrimSpace(d.SKU),
		Quantity:    strings.TrimSpace(d.Quantity),
		Location:    strings.TrimSpace(d.Location),
		Description: strings.TrimSpace(d.Description),
		Barcodes:    strings.TrimSpace(d.Barcodes),
	}
}

// CreateInput normaliza el borrador para POST /inventory. Un nombre vacío tras
// trim invalida la fila (ok=false): no se envía nada y no se muestra error.
// Los opcionales vacíos se omiten para que el backend aplique sus defaults.
func (d ProductDraft) CreateInput() (client.CreateProductInput, bool) {
	t := d.trimmed()
	if t.Name == "" {
		return client.CreateProductInput{}, false
	}
	return client.CreateProductInput{
		Name:        t.Name,
		Quantity:    CoerceQuantity(t.Quantity),
		SKU:         optional(t.SKU),
		Location:    optional(t.Location),
		Description: optional(t.Description),
		Barcodes:    optional(t.Barcodes),
	}, true
}

// UpdateInput normaliza el borrador para PATCH /inventory/{id} desde el
// formulario de edición. Los opcionales vaciados viajan como "N/A" porque en
// este flujo el backend los exige con valor; el SKU vacío se omite para no
// pisar el autogenerado.
func (d ProductDraft) UpdateInput() (client.UpdateProductInput, bool) {
	t := d.trimmed()
	if t.Name == "" {
		return client.UpdateProductInput{}, false
	}
	qty := CoerceQuantity(t.Quantity)
	return client.UpdateProductInput{
		Name:        &t.Name,
		SKU:         optional(t.SKU),
		Quantity:    &qty,
		Location:    placeholderIfEmpty(t.Location),
		Description: placeholderIfEmpty(t.Description),
		Barcodes:    placeholderIfEmpty(t.Barcodes),
	}, true
}

// NormalizeBatch valida cada fila del alta rápida por separado: las que no
// pasan el requisito de nombre se descartan en silencio. Un resultado vacío
// significa que no hay nada que enviar.
func NormalizeBatch(drafts []ProductDraft) []client.CreateProductInput {
	batch := make([]client.CreateProductInput, 0, len(drafts))
	for _, d := range drafts {
		if in, ok := d.CreateInput(); ok {
			batch = append(batch, in)
		}
	}
	return batch
}

// UserDraft copia local editable de un usuario.
type UserDraft struct {
	FullName string
	Role     string
	Password string
}

// CreateInput normaliza para POST /users; fullName vacío tras trim descarta el
// envío. Un rol no reconocido cae en service; el password vacío se omite.
func (d UserDraft) CreateInput() (client.CreateUserInput, bool) {
	fullName := strings.TrimSpace(d.FullName)
	if fullName == "" {
		return client.CreateUserInput{}, false
	}
	return client.CreateUserInput{
		FullName: fullName,
		Role:     normalizeRole(d.Role),
		Password: optional(strings.TrimSpace(d.Password)),
	}, true
}

// UpdateInput normaliza para PATCH /users/{id}.
func (d UserDraft) UpdateInput() (client.UpdateUserInput, bool) {
	fullName := strings.TrimSpace(d.FullName)
	if fullName == "" {
		return client.UpdateUserInput{}, false
	}
	role := normalizeRole(d.Role)
	return client.UpdateUserInput{
		FullName: &fullName,
		Role:     &role,
		Password: optional(strings.TrimSpace(d.Password)),
	}, true
}

func normalizeRole(raw string) string {
	switch strings.TrimSpace(raw) {
	case entity.RoleSysadmin, entity.RoleAdmin, entity.RoleManager:
		return strings.TrimSpace(raw)
	default:
		return entity.RoleService
	}
}

// optional string vacío → ausente en el JSON.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// placeholderIfEmpty string vacío → "N/A".
func placeholderIfEmpty(s string) *string {
	if s == "" {
		na := entity.PlaceholderNA
		return &na
	}
	return &s
}
