package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tevo-storefront/internal/application/session"
	"github.com/jhoicas/tevo-storefront/internal/domain"
	"github.com/jhoicas/tevo-storefront/internal/infrastructure/gateway"
	"github.com/jhoicas/tevo-storefront/internal/infrastructure/storage"
	pkgjwt "github.com/jhoicas/tevo-storefront/pkg/jwt"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

func token(t *testing.T, subject string, roles ...string) string {
	t.Helper()
	tok, err := pkgjwt.Generate("test", subject, roles, 60)
	require.NoError(t, err)
	return tok
}

type navSpy struct{ paths []string }

func (n *navSpy) Navigate(path string) { n.paths = append(n.paths, path) }

func TestNew_SinToken(t *testing.T) {
	s, err := session.New(context.Background(), storage.NewMemoryStore(), nil, logger.Nop())
	require.NoError(t, err)
	assert.False(t, s.Current().Authenticated())
	assert.Empty(t, s.Token())
}

func TestNew_RehidrataToken(t *testing.T) {
	kv := storage.NewMemoryStore()
	tok := token(t, "alice", "ROLE_ADMIN")
	require.NoError(t, kv.Set(context.Background(), session.TokenKey, []byte(tok)))

	s, err := session.New(context.Background(), kv, nil, logger.Nop())
	require.NoError(t, err)
	cur := s.Current()
	require.True(t, cur.Authenticated())
	assert.Equal(t, "alice", cur.Identity.Subject)
	assert.Equal(t, "alice", cur.Identity.Username, "sin claim username se usa el subject")
	assert.True(t, cur.Identity.IsAdmin())
	assert.Equal(t, tok, s.Token())
}

func TestNew_TokenInvalidoEsSinSesion(t *testing.T) {
	kv := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, session.TokenKey, []byte("basura")))

	s, err := session.New(ctx, kv, nil, logger.Nop())
	require.NoError(t, err)
	assert.False(t, s.Current().Authenticated())

	_, found, err := kv.Get(ctx, session.TokenKey)
	require.NoError(t, err)
	assert.False(t, found, "el token inválido se elimina")
}

func TestLogin_PersisteYNotifica(t *testing.T) {
	kv := storage.NewMemoryStore()
	ctx := context.Background()
	s, err := session.New(ctx, kv, nil, logger.Nop())
	require.NoError(t, err)

	var seen []session.Session
	s.OnChange(func(sess session.Session) { seen = append(seen, sess) })

	tok := token(t, "bob", "ROLE_CLIENTE")
	require.NoError(t, s.Login(ctx, tok))

	raw, found, err := kv.Get(ctx, session.TokenKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, tok, string(raw))
	require.Len(t, seen, 1)
	assert.Equal(t, "bob", seen[0].Identity.Subject)
	assert.False(t, s.Current().Identity.IsAdmin())

	require.NoError(t, s.Logout(ctx))
	require.Len(t, seen, 2)
	assert.False(t, seen[1].Authenticated())
	_, found, _ = kv.Get(ctx, session.TokenKey)
	assert.False(t, found)
}

func TestLogin_TokenMalFormado(t *testing.T) {
	kv := storage.NewMemoryStore()
	s, err := session.New(context.Background(), kv, nil, logger.Nop())
	require.NoError(t, err)

	err = s.Login(context.Background(), "no.es.jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
	assert.False(t, s.Current().Authenticated())
}

func TestExpire_DesdeGatewayLimpiaTokenYNavegaAlLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"TOKEN_EXPIRED"}`))
	}))
	defer srv.Close()

	kv := storage.NewMemoryStore()
	ctx := context.Background()
	nav := &navSpy{}
	s, err := session.New(ctx, kv, nav, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Login(ctx, token(t, "alice")))

	client := gateway.New(gateway.Config{BaseURL: srv.URL, Timeout: time.Second}, s, logger.Nop())
	client.OnAuthFailure(func(gateway.AuthFailure) { s.Expire() })

	_, err = client.MyOrders(ctx, nil, 0)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)

	assert.Equal(t, []string{session.LoginPath}, nav.paths)
	assert.False(t, s.Current().Authenticated())
	_, found, _ := kv.Get(ctx, session.TokenKey)
	assert.False(t, found)
}

func TestFollow_AplicaCambiosDeOtraInstancia(t *testing.T) {
	kv := storage.NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := session.New(ctx, kv, nil, logger.Nop())
	require.NoError(t, err)
	b, err := session.New(ctx, kv, nil, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, b.Follow(ctx))

	require.NoError(t, a.Login(ctx, token(t, "carol")))
	assert.Eventually(t, func() bool { return b.Current().Authenticated() }, time.Second, 5*time.Millisecond)

	require.NoError(t, a.Logout(ctx))
	assert.Eventually(t, func() bool { return !b.Current().Authenticated() }, time.Second, 5*time.Millisecond)
}
