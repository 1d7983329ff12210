package dto

// ErrorResponse cuerpo de error HTTP de la app shell.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// BackendError cuerpo de error devuelto por el backend REST. Según el endpoint el código
// viaja en "error" o en "message".
type BackendError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// BannerResponse aviso transitorio de éxito o error mostrado tras una operación.
type BannerResponse struct {
	Kind    string `json:"kind"` // success | error
	Message string `json:"message"`
}
