package present

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
)

// StatusBadge etiqueta y tono de color del estado de un pedido.
type StatusBadge struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Tone   string `json:"tone"`
}

var statusTones = map[string]string{
	entity.OrderPendiente:  "yellow",
	entity.OrderConfirmado: "blue",
	entity.OrderEnviado:    "cyan",
	entity.OrderEntregado:  "emerald",
	entity.OrderCancelado:  "red",
}

// Badge "ENVIADO" -> Enviado/cyan; estados desconocidos usan el tono gris.
func Badge(status string) StatusBadge {
	tone, ok := statusTones[status]
	if !ok {
		tone = "gray"
	}
	label := status
	if status != "" {
		label = status[:1] + strings.ToLower(status[1:])
	}
	return StatusBadge{Status: status, Label: label, Tone: tone}
}

// RoleLabel nombre de rol sin el prefijo ROLE_.
func RoleLabel(name string) string {
	return strings.TrimPrefix(name, entity.RolePrefix)
}

// RoleLabels aplica RoleLabel a cada rol.
func RoleLabels(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = RoleLabel(n)
	}
	return out
}

// PriceFormatter formatea importes en euros con las convenciones del idioma.
type PriceFormatter struct {
	p *message.Printer
}

// NewPriceFormatter usa es por defecto.
func NewPriceFormatter(tag language.Tag) *PriceFormatter {
	if tag == language.Und {
		tag = language.Spanish
	}
	return &PriceFormatter{p: message.NewPrinter(tag)}
}

// Format 1234567.891 -> "1.234.567,89 €".
func (f *PriceFormatter) Format(amount decimal.Decimal) string {
	return f.p.Sprintf("%.2f €", amount.Round(2).InexactFloat64())
}
