package listing

// MaxPagerButtons número máximo de botones de página visibles.
const MaxPagerButtons = 5

// Pager control de paginación. Si Visible es false no se dibuja nada.
type Pager struct {
	Visible bool
	Current int
	Pages   []int // índices 0-based de los botones, en orden
	HasPrev bool
	HasNext bool
}

// NewPager calcula la ventana de como mucho cinco botones centrada en page, desplazada para
// no salir de [0, totalPages).
func NewPager(page, totalPages int) Pager {
	if totalPages <= 1 {
		return Pager{}
	}
	if page < 0 {
		page = 0
	}
	if page > totalPages-1 {
		page = totalPages - 1
	}

	size := min(MaxPagerButtons, totalPages)
	start := max(0, page-size/2)
	end := start + size
	if end > totalPages {
		end = totalPages
		start = max(0, end-size)
	}

	pages := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		pages = append(pages, i)
	}
	return Pager{
		Visible: true,
		Current: page,
		Pages:   pages,
		HasPrev: page > 0,
		HasNext: page+1 < totalPages,
	}
}
