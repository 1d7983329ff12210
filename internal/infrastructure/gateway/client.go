package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

// El backend espera los importes como números JSON, no como strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	// maxResponseBytes límite de lectura del cuerpo de cualquier respuesta.
	maxResponseBytes = 4 << 20

	headerRequestID = "X-Request-ID"
)

// TokenSource entrega el token de sesión vigente; vacío si no hay sesión.
type TokenSource interface {
	Token() string
}

// TokenFunc adapta una función a TokenSource.
type TokenFunc func() string

// Token implementa TokenSource.
func (f TokenFunc) Token() string { return f() }

// Config parámetros del cliente.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client // opcional; si es nil se crea uno con Timeout
}

// Client es el único punto de acceso al backend REST: añade el bearer token, el
// X-Request-ID y traduce las respuestas de error. No reintenta ni cachea.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        *logger.Logger

	mu          sync.Mutex
	subscribers map[int]func(AuthFailure)
	nextSubID   int
}

// New construye el cliente. tokens puede ser nil (peticiones anónimas).
func New(cfg Config, tokens TokenSource, log *logger.Logger) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  hc,
		tokens:      tokens,
		log:         log.Component("gateway"),
		subscribers: make(map[int]func(AuthFailure)),
	}
}

// Do ejecuta method sobre path (relativo a la URL base). body se serializa a JSON si no es nil;
// params con valor vacío no se envían; la respuesta se decodifica en out si no es nil.
func (c *Client) Do(ctx context.Context, method, path string, body any, params map[string]string, out any) error {
	route := routeLabel(path)
	start := time.Now()
	status, err := c.do(ctx, method, path, body, params, out)
	observe(method, route, status, time.Since(start))
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body any, params map[string]string, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("gateway: serializar cuerpo: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("gateway: crear petición: %w", err)
	}
	if q := encodeParams(params); q != "" {
		req.URL.RawQuery = q
	}
	requestID := uuid.NewString()
	req.Header.Set(headerRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, fmt.Errorf("gateway: %s %s cancelada: %w", method, path, ctx.Err())
		}
		return 0, fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("gateway: leer respuesta: %w", err)
	}

	c.log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("respuesta del backend")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, c.handleError(method, path, resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, fmt.Errorf("gateway: decodificar %s %s: %w", method, path, err)
	}
	return resp.StatusCode, nil
}

func (c *Client) handleError(method, path string, status int, raw []byte) error {
	apiErr := newAPIError(status, raw)
	if (status == http.StatusUnauthorized || status == http.StatusForbidden) && isTokenFailure(apiErr.Code) {
		c.log.Warn().Str("path", path).Str("code", apiErr.Code).Msg("sesión rechazada por el backend")
		c.publish(AuthFailure{Status: status, Code: apiErr.Code, Method: method, Path: path})
		return &SessionError{Status: status, Code: apiErr.Code}
	}
	if status >= http.StatusInternalServerError {
		c.log.Error().Str("path", path).Int("status", status).Msg("error del backend")
	}
	return apiErr
}

func encodeParams(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	q := url.Values{}
	for k, v := range params {
		if v == "" {
			continue
		}
		q.Set(k, v)
	}
	return q.Encode()
}

var idSegment = regexp.MustCompile(`/\d+(/|$)`)

// routeLabel normaliza los identificadores numéricos para acotar la cardinalidad de métricas.
func routeLabel(path string) string {
	for idSegment.MatchString(path) {
		path = idSegment.ReplaceAllString(path, "/:id$1")
	}
	return path
}
