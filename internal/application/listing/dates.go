package listing

import (
	"fmt"
	"time"
)

const (
	dateLayout    = "2006-01-02"
	apiDateLayout = "2006-01-02T15:04:05"
)

// FormatDateForAPI convierte una fecha de calendario al formato de los filtros del backend:
// inicio del día (T00:00:00) o, con endOfDay, su último segundo (T23:59:59).
func FormatDateForAPI(date time.Time, endOfDay bool) string {
	y, m, d := date.Date()
	if endOfDay {
		return time.Date(y, m, d, 23, 59, 59, 0, time.UTC).Format(apiDateLayout)
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Format(apiDateLayout)
}

// DateFilter interpreta una fecha YYYY-MM-DD de un formulario. La cadena vacía devuelve vacío
// (el filtro no se envía).
func DateFilter(value string, endOfDay bool) (string, error) {
	if value == "" {
		return "", nil
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return "", fmt.Errorf("listing: fecha %q inválida, se espera AAAA-MM-DD", value)
	}
	return FormatDateForAPI(d, endOfDay), nil
}
