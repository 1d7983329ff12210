package gateway_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tevo-storefront/internal/application/dto"
)

func TestLogin(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]string{"token": "abc"})
	}, "")

	res, err := c.Login(context.Background(), dto.LoginRequest{Username: "alice", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, "abc", res.Token)
}

func TestLogin_RespuestaSinToken(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{})
	}, "")

	_, err := c.Login(context.Background(), dto.LoginRequest{Username: "alice", Password: "x"})
	assert.Error(t, err)
}

func TestListProducts_EnviaPaginaYFiltros(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "Acme", r.URL.Query().Get("brand"))
		_, _ = io.WriteString(w, `{"content":[{"id":1,"name":"Taza","price":12.5,"stock":3}],"totalPages":4}`)
	}, "")

	page, err := c.ListProducts(context.Background(), map[string]string{"brand": "Acme", "name": ""}, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, page.TotalPages)
	require.Len(t, page.Content, 1)
	assert.True(t, decimal.RequireFromString("12.5").Equal(page.Content[0].Price))
}

func TestListProducts_ContentNuloComoVacio(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"totalPages":0}`)
	}, "")

	page, err := c.ListProducts(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.NotNil(t, page.Content)
	assert.True(t, page.Empty())
}

func TestCreateProduct_PrecioComoNumero(t *testing.T) {
	var raw map[string]json.RawMessage
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &raw)
		_, _ = io.WriteString(w, `{"id":9,"name":"Lámpara"}`)
	}, "")

	p, err := c.CreateProduct(context.Background(), dto.ProductRequest{Name: "Lámpara", Price: decimal.RequireFromString("19.99")})
	require.NoError(t, err)
	assert.Equal(t, int64(9), p.ID)
	assert.Equal(t, "19.99", string(raw["price"]))
}

func TestUpdateUserRoles_EnviaArray(t *testing.T) {
	var body []string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/users/roles/5", r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &body)
		w.WriteHeader(http.StatusOK)
	}, "tok")

	require.NoError(t, c.UpdateUserRoles(context.Background(), 5, []string{"ROLE_CLIENTE", "ROLE_VIP"}))
	assert.Equal(t, []string{"ROLE_CLIENTE", "ROLE_VIP"}, body)
}

func TestUpdateOrderStatus(t *testing.T) {
	var body dto.OrderStatusRequest
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/3", r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &body)
		_, _ = io.WriteString(w, `{"id":3,"status":"ENVIADO","createdAt":"2024-05-01T10:30:00"}`)
	}, "tok")

	o, err := c.UpdateOrderStatus(context.Background(), 3, "ENVIADO")
	require.NoError(t, err)
	assert.Equal(t, "ENVIADO", body.Status)
	assert.Equal(t, "ENVIADO", o.Status)
	assert.Equal(t, 2024, o.CreatedAt.Year())
}

func TestAllOrders_Ruta(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/all", r.URL.Path)
		assert.Equal(t, "PENDIENTE", r.URL.Query().Get("status"))
		_, _ = io.WriteString(w, `{"content":[],"totalPages":1}`)
	}, "tok")

	page, err := c.AllOrders(context.Background(), map[string]string{"status": "PENDIENTE"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalPages)
}

func TestListRoles_UsaPaged(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/roles/paged", r.URL.Path)
		_, _ = io.WriteString(w, `{"content":[{"id":1,"name":"ROLE_ADMIN"}],"totalPages":1}`)
	}, "tok")

	page, err := c.ListRoles(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.True(t, page.Content[0].IsProtected())
}
