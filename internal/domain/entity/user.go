package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Roles conocidos por el backend.
const (
	RolePrefix  = "ROLE_"
	RoleAdmin   = "ROLE_ADMIN"
	RoleCliente = "ROLE_CLIENTE"
	RoleEntidad = "ROLE_ENTIDAD"

	// PrimordialAdmin es la cuenta creada por el backend al arrancar; no se puede borrar.
	PrimordialAdmin = "admin"
)

// User representa un usuario del sistema (listado de administración).
type User struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	NIF      string   `json:"nif"`
	Roles    []string `json:"roles"`
}

// HasRole indica si el usuario tiene el rol indicado.
func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsPrimordialAdmin indica si es la cuenta admin original.
func (u User) IsPrimordialAdmin() bool {
	return u.Username == PrimordialAdmin
}

// Role representa un rol asignable.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BaseName devuelve el nombre sin prefijo ROLE_ y en mayúsculas (ROLE_admin -> ADMIN).
func (r Role) BaseName() string {
	return strings.ToUpper(strings.TrimPrefix(r.Name, RolePrefix))
}

// IsProtected indica si el rol es del sistema y no admite edición ni borrado desde la UI.
func (r Role) IsProtected() bool {
	switch r.BaseName() {
	case "ADMIN", "CLIENTE", "ENTIDAD":
		return true
	}
	return false
}

// TopUser cliente del ranking de mayor gasto (GET /users/top-users).
type TopUser struct {
	Username   string          `json:"username"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
	OrderCount int64           `json:"orderCount"`
}
