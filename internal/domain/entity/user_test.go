package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/thelab-panel/internal/domain/entity"
)

// Solo sysadmin puede ver la sección de usuarios.
func TestCapabilitiesFor_UsuariosSoloSysadmin(t *testing.T) {
	assert.True(t, entity.CapabilitiesFor(entity.RoleSysadmin).CanViewUsers)

	for _, role := range []string{entity.RoleAdmin, entity.RoleManager, entity.RoleService} {
		assert.False(t, entity.CapabilitiesFor(role).CanViewUsers,
			"el rol %s no debe ver usuarios", role)
	}
}

// Productos: sysadmin, admin y manager sí; service no.
func TestCapabilitiesFor_Productos(t *testing.T) {
	for _, role := range []string{entity.RoleSysadmin, entity.RoleAdmin, entity.RoleManager} {
		assert.True(t, entity.CapabilitiesFor(role).CanViewProducts,
			"el rol %s debe ver productos", role)
	}
	assert.False(t, entity.CapabilitiesFor(entity.RoleService).CanViewProducts)
}

// Un rol desconocido o vacío no otorga nada; la función es total.
func TestCapabilitiesFor_RolDesconocido(t *testing.T) {
	for _, role := range []string{"", "root", "SYSADMIN", "invitado"} {
		caps := entity.CapabilitiesFor(role)
		assert.Equal(t, entity.Capabilities{}, caps, "rol %q", role)
	}
}

// Un perfil nil se comporta como sin permisos (sesión ausente).
func TestCapabilities_PerfilNil(t *testing.T) {
	var u *entity.UserProfile
	assert.Equal(t, entity.Capabilities{}, u.Capabilities())
}
