package jwt_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/tevo-storefront/pkg/jwt"
)

func TestDecode_ExtraeSubjectYRoles(t *testing.T) {
	tok, err := pkgjwt.Generate("cualquier-secreto", "alice", []string{"ROLE_CLIENTE", "ROLE_ADMIN"}, 60)
	require.NoError(t, err)

	claims, err := pkgjwt.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, pkgjwt.Roles{"ROLE_CLIENTE", "ROLE_ADMIN"}, claims.Roles)
	require.NotNil(t, claims.ExpiresAt)
}

func TestDecode_NoVerificaFirmaNiExpiracion(t *testing.T) {
	// Expirado hace un minuto: el cliente no decide la validez, solo el backend.
	tok, err := pkgjwt.Generate("secreto-del-backend", "bob", nil, -1)
	require.NoError(t, err)

	claims, err := pkgjwt.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Subject)
}

func TestDecode_RolComoString(t *testing.T) {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"carol","username":"Carol","roles":"ROLE_ADMIN"}`))

	claims, err := pkgjwt.Decode(header + "." + payload + ".firma")
	require.NoError(t, err)
	assert.Equal(t, "Carol", claims.Username)
	assert.Equal(t, pkgjwt.Roles{"ROLE_ADMIN"}, claims.Roles)
}

func TestDecode_TokensInvalidos(t *testing.T) {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256"}`))
	sinSub := base64.RawURLEncoding.EncodeToString([]byte(`{"roles":["ROLE_CLIENTE"]}`))

	casos := map[string]string{
		"vacío":        "",
		"basura":       "no-es-un-jwt",
		"payload roto": header + ".%%%.firma",
		"sin subject":  header + "." + sinSub + ".firma",
	}
	for nombre, tok := range casos {
		t.Run(nombre, func(t *testing.T) {
			_, err := pkgjwt.Decode(tok)
			assert.ErrorIs(t, err, pkgjwt.ErrMalformed)
		})
	}
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "alice", nil, 60)
	assert.Error(t, err)
}
