package entity

import "time"

// Roles válidos para UserProfile.
const (
	RoleSysadmin = "sysadmin"
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleService  = "service"
)

// UserProfile representa un usuario del panel tal como lo entrega el backend.
// La identidad es el ID; los campos solo cambian mediante un update explícito.
type UserProfile struct {
	ID        int64
	FullName  string
	Role      string // sysadmin, admin, manager, service
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Capabilities conjunto de permisos derivado del rol. Es la única fuente de
// autorización del panel: la consultan el guard de rutas y las vistas; ninguna
// página calcula su propia lista de roles.
type Capabilities struct {
	CanViewUsers    bool // solo sysadmin
	CanViewProducts bool // sysadmin, admin, manager
}

// CapabilitiesFor es total sobre los cuatro roles conocidos; un rol
// desconocido o vacío devuelve el conjunto vacío, nunca panic.
func CapabilitiesFor(role string) Capabilities {
	switch role {
	case RoleSysadmin:
		return Capabilities{CanViewUsers: true, CanViewProducts: true}
	case RoleAdmin, RoleManager:
		return Capabilities{CanViewProducts: true}
	default:
		return Capabilities{}
	}
}

// Capabilities permisos del perfil. Un perfil nil no tiene ninguno.
func (u *UserProfile) Capabilities() Capabilities {
	if u == nil {
		return Capabilities{}
	}
	return CapabilitiesFor(u.Role)
}
