package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tu-usuario/thelab-panel/internal/domain/entity"
)

// apiUser registro de usuario del backend. El campo de rol viaja como "type"
// en los registros; todos los campos pueden faltar en el prototipo.
type apiUser struct {
	ID        *int64     `json:"id"`
	FullName  *string    `json:"fullName"`
	Type      *string    `json:"type"`
	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// normalizeUser rellena los ausentes: nombre "Sin nombre", rol service, id por
// posición en la lista y fechas al momento de la lectura.
func normalizeUser(item apiUser, index int) entity.UserProfile {
	now := time.Now()
	u := entity.UserProfile{
		ID:        int64(index + 1),
		FullName:  "Sin nombre",
		Role:      entity.RoleService,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if item.ID != nil {
		u.ID = *item.ID
	}
	if item.FullName != nil && *item.FullName != "" {
		u.FullName = *item.FullName
	}
	if item.Type != nil && *item.Type != "" {
		u.Role = *item.Type
	}
	if item.CreatedAt != nil {
		u.CreatedAt = *item.CreatedAt
	}
	if item.UpdatedAt != nil {
		u.UpdatedAt = *item.UpdatedAt
	}
	return u
}

// CreateUserInput cuerpo de POST /users. Password solo viaja si se capturó.
type CreateUserInput struct {
	FullName string  `json:"fullName"`
	Role     string  `json:"role"`
	Password *string `json:"password,omitempty"`
}

// UpdateUserInput cuerpo de PATCH /users/{id}; solo viajan los no nil.
type UpdateUserInput struct {
	FullName *string `json:"fullName,omitempty"`
	Role     *string `json:"role,omitempty"`
	Password *string `json:"password,omitempty"`
}

// Users cliente REST de usuarios.
type Users struct {
	base *Client
}

// NewUsers construye el cliente de usuarios.
func NewUsers(base *Client) *Users {
	return &Users{base: base}
}

// List trae todos los usuarios normalizados.
func (c *Users) List(ctx context.Context) ([]entity.UserProfile, error) {
	var records []apiUser
	if err := c.base.do(ctx, http.MethodGet, "/users", nil, &records, "No se pudieron cargar usuarios"); err != nil {
		return nil, err
	}
	items := make([]entity.UserProfile, 0, len(records))
	for i, r := range records {
		items = append(items, normalizeUser(r, i))
	}
	return items, nil
}

// Create da de alta un usuario y devuelve el registro confirmado.
func (c *Users) Create(ctx context.Context, in CreateUserInput) (*entity.UserProfile, error) {
	var record apiUser
	if err := c.base.do(ctx, http.MethodPost, "/users", in, &record, "No se pudo crear el usuario"); err != nil {
		return nil, err
	}
	u := normalizeUser(record, 0)
	return &u, nil
}

// Update aplica un PATCH parcial sobre el usuario.
func (c *Users) Update(ctx context.Context, id int64, in UpdateUserInput) (*entity.UserProfile, error) {
	var record apiUser
	if err := c.base.do(ctx, http.MethodPatch, fmt.Sprintf("/users/%d", id), in, &record, "No se pudo actualizar el usuario"); err != nil {
		return nil, err
	}
	u := normalizeUser(record, 0)
	return &u, nil
}

// Delete elimina el usuario.
func (c *Users) Delete(ctx context.Context, id int64) error {
	return c.base.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil, "No se pudo eliminar el usuario")
}
