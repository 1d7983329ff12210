package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/tevo-storefront/internal/application/dto"
	"github.com/jhoicas/tevo-storefront/internal/application/workflow"
	"github.com/jhoicas/tevo-storefront/internal/domain"
	"github.com/jhoicas/tevo-storefront/internal/domain/repository"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

// Mensajes de las pantallas de acceso.
const (
	MsgLoginFailed     = "Credenciales incorrectas o error de conexión"
	MsgLoginPrefix     = "Credenciales incorrectas: "
	MsgUserExists      = "El usuario, email o DNI ya existe."
	MsgRegisterPrefix  = "Error al registrar usuario: "
	MsgRegistered      = "¡Registro exitoso!"
	msgConnectionError = "error de conexión"
)

// LoginForm formulario de inicio de sesión.
type LoginForm struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

var loginMessages = workflow.Messages{
	"username": "El usuario es obligatorio",
	"password": "La contraseña es obligatoria",
}

// RegisterForm formulario de alta. Password2 solo se comprueba en local.
type RegisterForm struct {
	Username  string `json:"username" validate:"required,min=2"`
	Name      string `json:"name" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,mail"`
	NIF       string `json:"nif" validate:"required,nif"`
	Password  string `json:"password" validate:"required,min=6"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
}

var registerMessages = workflow.Messages{
	"username.required":  "El nombre de usuario es obligatorio",
	"name.required":      "El nombre es obligatorio",
	"email.required":     "El email es obligatorio",
	"nif.required":       "El DNI/NIF es obligatorio",
	"password.required":  "La contraseña es obligatoria",
	"password2.required": "Repite la contraseña",
	"password2.eqfield":  "Las contraseñas no coinciden",
}

// Failure fallo de envío con el texto que muestra el formulario.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return "account: " + f.Message
	}
	return fmt.Sprintf("account: %s: %v", f.Message, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// UserMessage texto apto para el usuario.
func (f *Failure) UserMessage() string { return f.Message }

// SessionStarter recibe el token emitido por el backend.
type SessionStarter interface {
	Login(ctx context.Context, token string) error
}

// Service casos de uso de login y registro.
type Service struct {
	auth repository.AuthRepository
	sess SessionStarter
	v    *workflow.Validator
	log  *logger.Logger
}

// NewService construye el servicio de cuentas.
func NewService(auth repository.AuthRepository, sess SessionStarter, v *workflow.Validator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{auth: auth, sess: sess, v: v, log: log.Component("account")}
}

// Login valida, pide el token y abre la sesión. Devuelve FieldErrors sin llamar a la red
// si el formulario está incompleto.
func (s *Service) Login(ctx context.Context, f LoginForm) error {
	if fields := s.v.Struct(f, loginMessages); fields != nil {
		return fields
	}
	username := strings.TrimSpace(f.Username)
	resp, err := s.auth.Login(ctx, dto.LoginRequest{Username: username, Password: f.Password})
	if err != nil {
		s.log.Info().Err(err).Str("username", username).Msg("login rechazado")
		msg := MsgLoginFailed
		if backend := workflow.UserMessage(err, ""); backend != "" {
			msg = MsgLoginPrefix + backend
		}
		return &Failure{Message: msg, Err: err}
	}
	if err := s.sess.Login(ctx, resp.Token); err != nil {
		s.log.Error().Err(err).Msg("token de login no utilizable")
		return &Failure{Message: MsgLoginFailed, Err: err}
	}
	s.log.Info().Str("username", username).Msg("sesión iniciada")
	return nil
}

// Register valida y da de alta al usuario. Un 409 del backend significa usuario, email o
// DNI duplicado.
func (s *Service) Register(ctx context.Context, f RegisterForm) error {
	if fields := s.v.Struct(f, registerMessages); fields != nil {
		return fields
	}
	err := s.auth.Register(ctx, dto.RegisterRequest{
		Username: strings.TrimSpace(f.Username),
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		NIF:      strings.TrimSpace(f.NIF),
		Password: f.Password,
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrConflict):
		return &Failure{Message: MsgUserExists, Err: err}
	default:
		s.log.Warn().Err(err).Msg("registro fallido")
		return &Failure{Message: MsgRegisterPrefix + workflow.UserMessage(err, msgConnectionError), Err: err}
	}
}
