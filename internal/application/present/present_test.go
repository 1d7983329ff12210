package present_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/jhoicas/tevo-storefront/internal/application/listing"
	"github.com/jhoicas/tevo-storefront/internal/application/present"
)

func TestTransferList(t *testing.T) {
	tl := present.NewTransferList([]string{"ROLE_VIP", "ROLE_ENTIDAD", "ROLE_GOLD"}, []string{"ROLE_EDITOR"})

	tl.Toggle("ROLE_VIP")
	tl.Toggle("ROLE_GOLD")
	tl.Toggle("ROLE_EDITOR")
	assert.Equal(t, []string{"ROLE_VIP", "ROLE_GOLD"}, tl.LeftChecked())
	assert.Equal(t, []string{"ROLE_EDITOR"}, tl.RightChecked())

	tl.MoveCheckedRight()
	assert.Equal(t, []string{"ROLE_ENTIDAD"}, tl.Left())
	assert.Equal(t, []string{"ROLE_EDITOR", "ROLE_VIP", "ROLE_GOLD"}, tl.Right())
	assert.Equal(t, []string{"ROLE_EDITOR"}, tl.Checked())

	tl.MoveCheckedLeft()
	assert.Equal(t, []string{"ROLE_ENTIDAD", "ROLE_EDITOR"}, tl.Left())
	assert.Empty(t, tl.Checked())

	tl.Toggle("ROLE_VIP")
	tl.Toggle("ROLE_VIP")
	assert.Empty(t, tl.Checked(), "Toggle dos veces desmarca")

	tl.MoveAllRight()
	assert.Empty(t, tl.Left())
	assert.Len(t, tl.Right(), 4)

	tl.MoveAllLeft()
	assert.Len(t, tl.Left(), 4)
	assert.Empty(t, tl.Right())
}

func TestBadge(t *testing.T) {
	assert.Equal(t, present.StatusBadge{Status: "ENVIADO", Label: "Enviado", Tone: "cyan"}, present.Badge("ENVIADO"))
	assert.Equal(t, "red", present.Badge("CANCELADO").Tone)
	assert.Equal(t, "gray", present.Badge("DEVUELTO").Tone)
	assert.Equal(t, "", present.Badge("").Label)
}

func TestRoleLabel(t *testing.T) {
	assert.Equal(t, "ADMIN", present.RoleLabel("ROLE_ADMIN"))
	assert.Equal(t, "VIP", present.RoleLabel("VIP"))
	assert.Equal(t, []string{"CLIENTE", "ADMIN"}, present.RoleLabels([]string{"ROLE_CLIENTE", "ROLE_ADMIN"}))
}

func TestPriceFormatter(t *testing.T) {
	f := present.NewPriceFormatter(language.Spanish)
	assert.Equal(t, "12,50 €", f.Format(decimal.RequireFromString("12.5")))
	assert.Equal(t, "1.234.567,89 €", f.Format(decimal.RequireFromString("1234567.891")))
}

func TestPager(t *testing.T) {
	assert.False(t, present.Pager(listing.NewPager(0, 1)).Visible)

	v := present.Pager(listing.NewPager(11, 12))
	assert.True(t, v.Visible)
	assert.Len(t, v.Buttons, 5)
	assert.Equal(t, present.PageButton{Index: 7, Label: "8"}, v.Buttons[0])
	assert.Equal(t, present.PageButton{Index: 11, Label: "12", Current: true}, v.Buttons[4])
	assert.False(t, v.PrevDisabled)
	assert.True(t, v.NextDisabled)
}
