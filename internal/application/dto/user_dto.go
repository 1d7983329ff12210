package dto

// LoginRequest cuerpo para POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse respuesta del login con el token JWT.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest cuerpo para POST /users/register (sin la confirmación de contraseña).
type RegisterRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	NIF      string `json:"nif"`
	Password string `json:"password"`
}

// RoleRequest cuerpo para POST /roles y PUT /roles/:id.
type RoleRequest struct {
	Name string `json:"name"`
}
