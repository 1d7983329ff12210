package guard

import "github.com/jhoicas/tevo-storefront/internal/domain/entity"

// Rutas de redirección.
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Decision resultado de evaluar un guard: Allow o redirección a RedirectTo.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// IdentitySource expone la identidad vigente (nil sin sesión).
type IdentitySource interface {
	Identity() *entity.Identity
}

// Guard evalúa el acceso a una pantalla.
type Guard func(IdentitySource) Decision

var allow = Decision{Allow: true}

// RequireAuth exige usuario autenticado; si no, redirige al login.
func RequireAuth(src IdentitySource) Decision {
	if src.Identity() == nil {
		return Decision{RedirectTo: LoginPath}
	}
	return allow
}

// RequireAdmin exige ROLE_ADMIN; sin él redirige a la portada.
func RequireAdmin(src IdentitySource) Decision {
	if !src.Identity().IsAdmin() {
		return Decision{RedirectTo: HomePath}
	}
	return allow
}

// RedirectIfAuthenticated pantallas solo para invitados (login, registro).
func RedirectIfAuthenticated(src IdentitySource) Decision {
	if src.Identity() != nil {
		return Decision{RedirectTo: HomePath}
	}
	return allow
}
