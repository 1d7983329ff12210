package gateway

// Códigos con los que el backend marca un token caducado o inválido.
const (
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeTokenInvalid = "TOKEN_INVALID"
)

// AuthFailure evento publicado una vez por cada respuesta 401/403 con código de token.
type AuthFailure struct {
	Status int
	Code   string
	Method string
	Path   string
}

func isTokenFailure(code string) bool {
	return code == CodeTokenExpired || code == CodeTokenInvalid
}

// OnAuthFailure registra fn y devuelve la función para darla de baja. Los suscriptores se
// ejecutan de forma síncrona en la goroutine de la petición fallida.
func (c *Client) OnAuthFailure(fn func(AuthFailure)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

func (c *Client) publish(ev AuthFailure) {
	c.mu.Lock()
	subs := make([]func(AuthFailure), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	c.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}
