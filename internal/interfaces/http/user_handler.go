package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/thelab-panel/internal/client"
	"github.com/tu-usuario/thelab-panel/internal/controller"
	"github.com/tu-usuario/thelab-panel/internal/domain/entity"
	"github.com/tu-usuario/thelab-panel/pkg/logger"
)

// UserHandler pantalla de control de acceso (solo sysadmin): lista, alta,
// edición y baja de usuarios contra el backend.
type UserHandler struct {
	users *client.Users
	col   *controller.Collection[entity.UserProfile]
	gate  controller.SubmitGate
	log   *logger.Logger
}

// NewUserHandler construye el handler.
func NewUserHandler(users *client.Users, log *logger.Logger) *UserHandler {
	return &UserHandler{
		users: users,
		col:   controller.NewCollection(func(u entity.UserProfile) int64 { return u.ID }),
		log:   log,
	}
}

// List GET /users.
func (h *UserHandler) List(c *fiber.Ctx) error {
	seq := h.col.Begin()
	var loadErr string
	items, err := h.users.List(c.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("cargar usuarios")
		loadErr = err.Error()
	} else {
		h.col.ReplaceAll(seq, items)
	}
	return h.renderList(c, userListView{Error: loadErr})
}

// Create POST /users. fullName vacío tras trim: no-op silencioso.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	draft := parseUserDraft(c)
	in, ok := draft.CreateInput()
	if !ok {
		return c.Redirect("/users", fiber.StatusFound)
	}
	if !h.gate.TryBegin() {
		return c.Redirect("/users", fiber.StatusFound)
	}
	defer h.gate.End()

	created, err := h.users.Create(c.Context(), in)
	if err != nil {
		// El borrador se conserva en el re-render para corregir.
		h.log.Warn().Err(err).Msg("crear usuario")
		return h.renderList(c, userListView{Error: err.Error(), Draft: draft})
	}

	h.col.Prepend(*created)
	SetFlash(c, "Usuario creado")
	return c.Redirect("/users", fiber.StatusFound)
}

// Update POST /users/:id. PATCH parcial; el éxito reconcilia solo ese elemento.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Redirect("/users", fiber.StatusFound)
	}
	draft := parseUserDraft(c)
	in, ok := draft.UpdateInput()
	if !ok {
		return c.Redirect("/users", fiber.StatusFound)
	}
	if !h.gate.TryBegin() {
		return c.Redirect("/users", fiber.StatusFound)
	}
	defer h.gate.End()

	updated, err := h.users.Update(c.Context(), id, in)
	if err != nil {
		// Lo tecleado en la fila se conserva tal cual para corregir y
		// reintentar; la colección no se toca.
		h.log.Warn().Err(err).Int64("id", id).Msg("actualizar usuario")
		return h.renderList(c, userListView{Error: err.Error(), EditID: id, EditDraft: draft})
	}

	h.col.Reconcile(*updated)
	SetFlash(c, "Usuario actualizado")
	return c.Redirect("/users", fiber.StatusFound)
}

// Delete POST /users/:id/delete. Exige confirmación explícita.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Redirect("/users", fiber.StatusFound)
	}
	if c.FormValue("confirm") != "1" {
		SetFlash(c, "Confirma la eliminación antes de continuar")
		return c.Redirect("/users", fiber.StatusFound)
	}

	if err := h.users.Delete(c.Context(), id); err != nil {
		h.log.Warn().Err(err).Int64("id", id).Msg("eliminar usuario")
		SetFlash(c, err.Error())
		return c.Redirect("/users", fiber.StatusFound)
	}

	h.col.Remove(id)
	SetFlash(c, "Usuario eliminado")
	return c.Redirect("/users", fiber.StatusFound)
}

// userListView estado de la pantalla de usuarios. Draft es el borrador del
// alta; EditID/EditDraft señalan la fila cuyo envío falló, para pintar lo que
// el usuario tecleó en lugar de los valores de la colección.
type userListView struct {
	Error     string
	Draft     controller.UserDraft
	EditID    int64
	EditDraft controller.UserDraft
}

func (h *UserHandler) renderList(c *fiber.Ctx, view userListView) error {
	items := h.col.Items()
	sysadmins := 0
	for _, u := range items {
		if u.Role == entity.RoleSysadmin {
			sysadmins++
		}
	}
	return render(c, "users/index", fiber.Map{
		"Users":     items,
		"Total":     len(items),
		"Sysadmins": sysadmins,
		"Loaded":    h.col.Loaded(),
		"Draft":     view.Draft,
		"EditID":    view.EditID,
		"EditDraft": view.EditDraft,
		"Error":     view.Error,
		"Roles":     []string{entity.RoleService, entity.RoleManager, entity.RoleAdmin, entity.RoleSysadmin},
	})
}

func parseUserDraft(c *fiber.Ctx) controller.UserDraft {
	return controller.UserDraft{
		FullName: c.FormValue("fullName"),
		Role:     c.FormValue("role"),
		Password: c.FormValue("password"),
	}
}
