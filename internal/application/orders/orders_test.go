package orders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tevo-storefront/internal/application/dto"
	"github.com/jhoicas/tevo-storefront/internal/application/orders"
	"github.com/jhoicas/tevo-storefront/internal/domain"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

type fakeOrders struct {
	pages   [][]entity.Order
	filters []map[string]string
	asked   []int
}

func (f *fakeOrders) PlaceOrder(context.Context, dto.OrderRequest) (*entity.Order, error) {
	return nil, nil
}

func (f *fakeOrders) MyOrders(_ context.Context, filters map[string]string, page int) (entity.Page[entity.Order], error) {
	f.filters = append(f.filters, filters)
	f.asked = append(f.asked, page)
	if page >= len(f.pages) {
		return entity.Page[entity.Order]{Content: []entity.Order{}, TotalPages: len(f.pages)}, nil
	}
	return entity.Page[entity.Order]{Content: f.pages[page], TotalPages: len(f.pages)}, nil
}

func (f *fakeOrders) AllOrders(context.Context, map[string]string, int) (entity.Page[entity.Order], error) {
	return entity.Page[entity.Order]{}, nil
}

func (f *fakeOrders) UpdateOrderStatus(context.Context, int64, string) (*entity.Order, error) {
	return nil, nil
}

func TestFilterDates_FormatoYPagina0(t *testing.T) {
	repo := &fakeOrders{pages: [][]entity.Order{{{ID: 1}}, {{ID: 2}}, {{ID: 3}}}}
	h := orders.NewHistory(repo, logger.Nop())
	ctx := context.Background()

	require.NoError(t, h.List.SetPage(ctx, 2))
	require.NoError(t, h.FilterDates(ctx, "2024-03-01", "2024-03-31"))

	last := len(repo.asked) - 1
	assert.Equal(t, 0, repo.asked[last])
	assert.Equal(t, "2024-03-01T00:00:00", repo.filters[last]["startDate"])
	assert.Equal(t, "2024-03-31T23:59:59", repo.filters[last]["endDate"])
}

func TestFilterDates_FechaInvalida(t *testing.T) {
	repo := &fakeOrders{}
	err := orders.NewHistory(repo, logger.Nop()).FilterDates(context.Background(), "01/03/2024", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.asked)
}

func TestHistorialVacio(t *testing.T) {
	h := orders.NewHistory(&fakeOrders{}, logger.Nop())
	require.NoError(t, h.List.Reload(context.Background()))
	assert.Equal(t, orders.MsgNoOrders, h.List.View().EmptyMessage)
}

func TestFind_RecorrePaginas(t *testing.T) {
	repo := &fakeOrders{pages: [][]entity.Order{{{ID: 1}, {ID: 2}}, {{ID: 3}}}}
	h := orders.NewHistory(repo, logger.Nop())

	o, err := h.Find(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), o.ID)
	assert.Equal(t, []int{0, 1}, repo.asked)

	_, err = h.Find(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShippingLine(t *testing.T) {
	o := entity.Order{Address: "Calle Mayor", Number: "5", PostalCode: "28013"}
	assert.Equal(t, "Calle Mayor, Nº 5, CP 28013", orders.ShippingLine(o))
	o.Floor = "2B"
	assert.Equal(t, "Calle Mayor, Nº 5, Piso 2B, CP 28013", orders.ShippingLine(o))
}

type renderFunc func(context.Context, *entity.Order) ([]byte, error)

func (f renderFunc) Render(ctx context.Context, o *entity.Order) ([]byte, error) { return f(ctx, o) }

func TestReceipt(t *testing.T) {
	repo := &fakeOrders{pages: [][]entity.Order{{{ID: 5, Username: "alice"}}}}
	h := orders.NewHistory(repo, logger.Nop())

	var rendered *entity.Order
	r := renderFunc(func(_ context.Context, o *entity.Order) ([]byte, error) {
		rendered = o
		return []byte("%PDF-1.3"), nil
	})

	doc, err := h.Receipt(context.Background(), 5, r)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(doc))
	assert.Equal(t, "alice", rendered.Username)

	_, err = h.Receipt(context.Background(), 6, r)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
