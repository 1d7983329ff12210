package account_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tevo-storefront/internal/application/account"
	"github.com/jhoicas/tevo-storefront/internal/application/dto"
	"github.com/jhoicas/tevo-storefront/internal/application/workflow"
	"github.com/jhoicas/tevo-storefront/internal/domain"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

type fakeAuth struct {
	calls      int
	loginErr   error
	token      string
	registered []dto.RegisterRequest
	regErr     error
}

func (f *fakeAuth) Login(_ context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	f.calls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &dto.LoginResponse{Token: f.token}, nil
}

func (f *fakeAuth) Register(_ context.Context, in dto.RegisterRequest) error {
	f.calls++
	f.registered = append(f.registered, in)
	return f.regErr
}

type fakeSession struct {
	token string
	err   error
}

func (s *fakeSession) Login(_ context.Context, token string) error {
	if s.err != nil {
		return s.err
	}
	s.token = token
	return nil
}

type backendErr string

func (e backendErr) Error() string       { return "backend: " + string(e) }
func (e backendErr) UserMessage() string { return string(e) }

func newService(auth *fakeAuth, sess *fakeSession) *account.Service {
	return account.NewService(auth, sess, workflow.NewValidator(), logger.Nop())
}

func TestLogin_CamposObligatorios(t *testing.T) {
	auth := &fakeAuth{}
	err := newService(auth, &fakeSession{}).Login(context.Background(), account.LoginForm{Username: "  "})

	var fields workflow.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "El usuario es obligatorio", fields["username"])
	assert.Equal(t, "La contraseña es obligatoria", fields["password"])
	assert.Zero(t, auth.calls)
}

func TestLogin_AbreSesion(t *testing.T) {
	auth := &fakeAuth{token: "tok"}
	sess := &fakeSession{}
	require.NoError(t, newService(auth, sess).Login(context.Background(), account.LoginForm{Username: "alice", Password: "x"}))
	assert.Equal(t, "tok", sess.token)
}

func TestLogin_MensajesDeFallo(t *testing.T) {
	casos := map[string]struct {
		err  error
		want string
	}{
		"con mensaje del backend": {backendErr("Usuario bloqueado"), "Credenciales incorrectas: Usuario bloqueado"},
		"sin mensaje":             {errors.New("dial tcp: connection refused"), account.MsgLoginFailed},
	}
	for nombre, c := range casos {
		t.Run(nombre, func(t *testing.T) {
			sess := &fakeSession{}
			err := newService(&fakeAuth{loginErr: c.err}, sess).Login(context.Background(), account.LoginForm{Username: "alice", Password: "x"})
			assert.Equal(t, c.want, workflow.UserMessage(err, ""))
			assert.ErrorIs(t, err, c.err)
			assert.Empty(t, sess.token)
		})
	}
}

func TestLogin_TokenInutilizable(t *testing.T) {
	sess := &fakeSession{err: domain.ErrInvalidSession}
	err := newService(&fakeAuth{token: "basura"}, sess).Login(context.Background(), account.LoginForm{Username: "alice", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}

func validRegister() account.RegisterForm {
	return account.RegisterForm{
		Username:  "alice",
		Name:      "Alice",
		Email:     "alice@example.com",
		NIF:       "12345678Z",
		Password:  "secreto",
		Password2: "secreto",
	}
}

func TestRegister_Validaciones(t *testing.T) {
	auth := &fakeAuth{}
	f := validRegister()
	f.Username = "a"
	f.Email = "alice@"
	f.NIF = "12-34"
	f.Password = "corta"
	f.Password2 = "otra"

	var fields workflow.FieldErrors
	require.ErrorAs(t, newService(auth, &fakeSession{}).Register(context.Background(), f), &fields)
	assert.Equal(t, "Mínimo 2 caracteres", fields["username"])
	assert.Equal(t, "Email no válido", fields["email"])
	assert.Equal(t, "DNI/NIF no válido", fields["nif"])
	assert.Equal(t, "Mínimo 6 caracteres", fields["password"])
	assert.Equal(t, "Las contraseñas no coinciden", fields["password2"])
	assert.Zero(t, auth.calls)
}

func TestRegister_EnviaSinConfirmacion(t *testing.T) {
	auth := &fakeAuth{}
	require.NoError(t, newService(auth, &fakeSession{}).Register(context.Background(), validRegister()))
	require.Len(t, auth.registered, 1)
	assert.Equal(t, dto.RegisterRequest{
		Username: "alice", Name: "Alice", Email: "alice@example.com", NIF: "12345678Z", Password: "secreto",
	}, auth.registered[0])
}

func TestRegister_Duplicado(t *testing.T) {
	auth := &fakeAuth{regErr: fmt.Errorf("backend 409: %w", domain.ErrConflict)}
	err := newService(auth, &fakeSession{}).Register(context.Background(), validRegister())
	assert.Equal(t, account.MsgUserExists, workflow.UserMessage(err, ""))

	auth.regErr = errors.New("timeout")
	err = newService(auth, &fakeSession{}).Register(context.Background(), validRegister())
	assert.Equal(t, "Error al registrar usuario: error de conexión", workflow.UserMessage(err, ""))
}
