package entity

import "time"

// Identity claims decodificados del token de sesión.
type Identity struct {
	Subject   string
	Username  string
	Roles     []string
	ExpiresAt time.Time
}

// HasRole indica si la identidad tiene el rol indicado.
func (i *Identity) HasRole(role string) bool {
	if i == nil {
		return false
	}
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin indica si la identidad lleva la marca de administrador.
func (i *Identity) IsAdmin() bool {
	return i.HasRole(RoleAdmin)
}
