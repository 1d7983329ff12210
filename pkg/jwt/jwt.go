package jwt

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed se devuelve cuando el token no puede decodificarse.
var ErrMalformed = errors.New("jwt: token mal formado")

// Roles acepta el claim "roles" como array de strings o como un único string.
type Roles []string

// UnmarshalJSON implementa json.Unmarshaler.
func (r *Roles) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*r = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("jwt: claim roles inválido: %w", err)
	}
	if one == "" {
		*r = nil
		return nil
	}
	*r = Roles{one}
	return nil
}

// Claims incluye los claims estándar JWT más los emitidos por el backend de TEvoSales.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
	Roles    Roles  `json:"roles,omitempty"`
}

// Decode lee el payload del token SIN verificar la firma: el backend es quien lo emitió y
// quien lo valida en cada petición. Un token sin subject se considera mal formado.
func Decode(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMalformed
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: falta sub", ErrMalformed)
	}
	return claims, nil
}

// Generate firma un token HS256 con el formato del backend. Se usa en fixtures y herramientas de desarrollo.
func Generate(secret, subject string, roles []string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Roles: roles,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
