package present

import (
	"strconv"

	"github.com/jhoicas/tevo-storefront/internal/application/listing"
)

// PageButton botón numerado; Label es 1-based.
type PageButton struct {
	Index   int    `json:"index"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
}

// PagerView control de paginación listo para dibujar; sin Visible no se dibuja nada.
type PagerView struct {
	Visible      bool         `json:"visible"`
	Buttons      []PageButton `json:"buttons,omitempty"`
	PrevDisabled bool         `json:"prevDisabled"`
	NextDisabled bool         `json:"nextDisabled"`
	Prev         int          `json:"prev"`
	Next         int          `json:"next"`
}

// Pager traduce el cálculo de listing.Pager a botones.
func Pager(p listing.Pager) PagerView {
	if !p.Visible {
		return PagerView{}
	}
	buttons := make([]PageButton, len(p.Pages))
	for i, idx := range p.Pages {
		buttons[i] = PageButton{Index: idx, Label: strconv.Itoa(idx + 1), Current: idx == p.Current}
	}
	return PagerView{
		Visible:      true,
		Buttons:      buttons,
		PrevDisabled: !p.HasPrev,
		NextDisabled: !p.HasNext,
		Prev:         p.Current - 1,
		Next:         p.Current + 1,
	}
}
