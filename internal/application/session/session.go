package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/tevo-storefront/internal/domain"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
	"github.com/jhoicas/tevo-storefront/internal/domain/repository"
	pkgjwt "github.com/jhoicas/tevo-storefront/pkg/jwt"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

// TokenKey clave del almacenamiento local donde se guarda el token en bruto.
const TokenKey = "token"

// LoginPath pantalla a la que se navega cuando el backend invalida la sesión.
const LoginPath = "/login"

// Navigator cambia la pantalla activa de la aplicación.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapta una función a Navigator.
type NavigatorFunc func(path string)

// Navigate implementa Navigator.
func (f NavigatorFunc) Navigate(path string) { f(path) }

// Session token en bruto más la identidad decodificada. Identity es nil si y solo si Token está vacío.
type Session struct {
	Token    string
	Identity *entity.Identity
}

// Authenticated indica si hay un usuario con sesión.
func (s Session) Authenticated() bool {
	return s.Identity != nil
}

// Store única fuente de verdad sobre el usuario autenticado y sus roles.
type Store struct {
	kv  repository.KeyValueStore
	nav Navigator
	log *logger.Logger

	mu      sync.RWMutex
	current Session

	lmu       sync.Mutex
	listeners map[int]func(Session)
	nextID    int
}

// New rehidrata la sesión desde el almacenamiento de forma síncrona. Un token guardado que no
// se puede decodificar equivale a no tener sesión y se elimina.
func New(ctx context.Context, kv repository.KeyValueStore, nav Navigator, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{
		kv:        kv,
		nav:       nav,
		log:       log.Component("session"),
		listeners: make(map[int]func(Session)),
	}

	raw, found, err := kv.Get(ctx, TokenKey)
	if err != nil {
		return nil, fmt.Errorf("session: leer token: %w", err)
	}
	if !found || len(raw) == 0 {
		return s, nil
	}
	sess, err := decode(string(raw))
	if err != nil {
		s.log.Warn().Err(err).Msg("token almacenado descartado")
		if err := kv.Delete(ctx, TokenKey); err != nil {
			return nil, fmt.Errorf("session: borrar token inválido: %w", err)
		}
		return s, nil
	}
	s.current = sess
	s.log.Info().Str("user", sess.Identity.Username).Msg("sesión restaurada")
	return s, nil
}

func decode(token string) (Session, error) {
	claims, err := pkgjwt.Decode(token)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", domain.ErrInvalidSession, err)
	}
	id := &entity.Identity{
		Subject:  claims.Subject,
		Username: claims.Username,
		Roles:    append([]string(nil), claims.Roles...),
	}
	if id.Username == "" {
		id.Username = claims.Subject
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return Session{Token: token, Identity: id}, nil
}

// Login decodifica el token (sin verificar firma), lo persiste y actualiza la identidad.
func (s *Store) Login(ctx context.Context, token string) error {
	sess, err := decode(token)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, TokenKey, []byte(token)); err != nil {
		return fmt.Errorf("session: guardar token: %w", err)
	}
	s.set(sess)
	s.log.Info().Str("user", sess.Identity.Username).Msg("login")
	return nil
}

// Logout borra el token persistido y la identidad en memoria.
func (s *Store) Logout(ctx context.Context) error {
	err := s.kv.Delete(ctx, TokenKey)
	s.set(Session{})
	if err != nil {
		return fmt.Errorf("session: borrar token: %w", err)
	}
	return nil
}

// Expire cierra la sesión porque el backend rechazó el token y navega al login.
func (s *Store) Expire() {
	if err := s.Logout(context.Background()); err != nil {
		s.log.Error().Err(err).Msg("logout tras sesión expirada")
	}
	if s.nav != nil {
		s.nav.Navigate(LoginPath)
	}
}

// Current devuelve una copia de la sesión vigente.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token implementa gateway.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// Identity devuelve la identidad vigente o nil.
func (s *Store) Identity() *entity.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Identity
}

// OnChange registra fn para cada login/logout y devuelve la función de baja.
func (s *Store) OnChange(fn func(Session)) (unsubscribe func()) {
	s.lmu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.lmu.Unlock()
	return func() {
		s.lmu.Lock()
		delete(s.listeners, id)
		s.lmu.Unlock()
	}
}

func (s *Store) set(sess Session) {
	s.mu.Lock()
	prev := s.current
	s.current = sess
	s.mu.Unlock()

	if prev.Token == sess.Token {
		return
	}
	s.lmu.Lock()
	fns := make([]func(Session), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.lmu.Unlock()
	for _, fn := range fns {
		fn(sess)
	}
}

// Follow aplica los cambios de token hechos por otra instancia que comparte el almacenamiento
// hasta que ctx termina.
func (s *Store) Follow(ctx context.Context) error {
	changes, err := s.kv.Watch(ctx, TokenKey)
	if err != nil {
		return fmt.Errorf("session: observar token: %w", err)
	}
	go func() {
		for c := range changes {
			if c.Deleted {
				s.set(Session{})
				continue
			}
			sess, err := decode(string(c.Value))
			if errors.Is(err, domain.ErrInvalidSession) {
				s.log.Warn().Err(err).Msg("token remoto descartado")
				s.set(Session{})
				continue
			}
			s.set(sess)
		}
	}()
	return nil
}
