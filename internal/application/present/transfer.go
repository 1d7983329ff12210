package present

import "slices"

// not elementos de a que no están en b.
func not[T comparable](a, b []T) []T {
	out := make([]T, 0, len(a))
	for _, v := range a {
		if !slices.Contains(b, v) {
			out = append(out, v)
		}
	}
	return out
}

// intersection elementos de a que también están en b.
func intersection[T comparable](a, b []T) []T {
	out := make([]T, 0, len(a))
	for _, v := range a {
		if slices.Contains(b, v) {
			out = append(out, v)
		}
	}
	return out
}

// TransferList dos listas (disponibles / asignados) con selección y movimientos entre ellas.
type TransferList[T comparable] struct {
	left    []T
	right   []T
	checked []T
}

// NewTransferList copia las listas de partida.
func NewTransferList[T comparable](left, right []T) *TransferList[T] {
	return &TransferList[T]{
		left:  slices.Clone(left),
		right: slices.Clone(right),
	}
}

// Toggle marca o desmarca v.
func (t *TransferList[T]) Toggle(v T) {
	if i := slices.Index(t.checked, v); i >= 0 {
		t.checked = slices.Delete(t.checked, i, i+1)
		return
	}
	t.checked = append(t.checked, v)
}

// MoveAllRight asigna todos los disponibles.
func (t *TransferList[T]) MoveAllRight() {
	t.checked = not(t.checked, t.left)
	t.right = append(t.right, t.left...)
	t.left = nil
}

// MoveCheckedRight asigna los disponibles marcados.
func (t *TransferList[T]) MoveCheckedRight() {
	moving := t.LeftChecked()
	t.right = append(t.right, moving...)
	t.left = not(t.left, moving)
	t.checked = not(t.checked, moving)
}

// MoveCheckedLeft retira los asignados marcados.
func (t *TransferList[T]) MoveCheckedLeft() {
	moving := t.RightChecked()
	t.left = append(t.left, moving...)
	t.right = not(t.right, moving)
	t.checked = not(t.checked, moving)
}

// MoveAllLeft retira todos los asignados.
func (t *TransferList[T]) MoveAllLeft() {
	t.checked = not(t.checked, t.right)
	t.left = append(t.left, t.right...)
	t.right = nil
}

func (t *TransferList[T]) Left() []T    { return slices.Clone(t.left) }
func (t *TransferList[T]) Right() []T   { return slices.Clone(t.right) }
func (t *TransferList[T]) Checked() []T { return slices.Clone(t.checked) }

// LeftChecked marcados en la lista de disponibles.
func (t *TransferList[T]) LeftChecked() []T { return intersection(t.checked, t.left) }

// RightChecked marcados en la lista de asignados.
func (t *TransferList[T]) RightChecked() []T { return intersection(t.checked, t.right) }
