package entity

// Page porción paginada de un listado; el índice de página es 0-based y lo gestiona la pantalla.
type Page[T any] struct {
	Content    []T `json:"content"`
	TotalPages int `json:"totalPages"`
}

// Empty indica si la página no tiene elementos.
func (p Page[T]) Empty() bool {
	return len(p.Content) == 0
}
