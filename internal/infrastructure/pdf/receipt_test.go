package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/tevo-storefront/internal/application/present"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
	"github.com/jhoicas/tevo-storefront/internal/infrastructure/pdf"
)

func sampleOrder() *entity.Order {
	return &entity.Order{
		ID:         12,
		Username:   "alice",
		CreatedAt:  entity.Timestamp{Time: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)},
		Status:     entity.OrderEnviado,
		Total:      decimal.RequireFromString("18.50"),
		Address:    "Calle Mayor",
		Number:     "5",
		PostalCode: "28013",
		Items: []entity.OrderItem{
			{ProductID: 1, ProductName: "Taza", Quantity: 2, Price: decimal.RequireFromString("5.25")},
			{ProductID: 2, Quantity: 1, Price: decimal.NewFromInt(8)},
		},
	}
}

func TestRender_GeneraPDF(t *testing.T) {
	g := pdf.NewReceiptGenerator("TEvoSales", "https://tienda.example.com/", present.NewPriceFormatter(language.Spanish))

	doc, err := g.Render(context.Background(), sampleOrder())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestRender_SinQRNiFecha(t *testing.T) {
	g := pdf.NewReceiptGenerator("TEvoSales", "", present.NewPriceFormatter(language.Spanish))
	o := sampleOrder()
	o.CreatedAt = entity.Timestamp{}
	o.Total = decimal.Zero

	doc, err := g.Render(context.Background(), o)
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}

func TestRender_PedidoNil(t *testing.T) {
	g := pdf.NewReceiptGenerator("TEvoSales", "", present.NewPriceFormatter(language.Spanish))
	_, err := g.Render(context.Background(), nil)
	assert.Error(t, err)
}
