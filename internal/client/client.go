package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/thelab-panel/internal/domain"
)

// Client transporte base hacia el backend REST del ERP. Cada cliente de
// recurso (users, products, auth) lo comparte; no guarda estado de sesión.
type Client struct {
	baseURL string
	http    *http.Client
}

// New construye el cliente base. baseURL sin slash final (ej. http://localhost:3000/api).
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// do ejecuta una petición JSON y decodifica la respuesta en out (si no es nil).
// failMsg es el mensaje corto de la operación; viaja en el error para que la
// capa de UI lo muestre tal cual. Taxonomía:
//   - fallo de red (sin respuesta) → RequestError envolviendo ErrBackendDown
//   - 404 → RequestError envolviendo ErrNotFound
//   - otro non-2xx → RequestError con el status (cuerpo sin esquema, se descarta)
func (c *Client) do(ctx context.Context, method, path string, body, out any, failMsg string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: serializar cuerpo: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("client: construir petición: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.RequestError{
			Message: failMsg,
			Err:     fmt.Errorf("%w: %v", domain.ErrBackendDown, err),
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return &domain.RequestError{Status: resp.StatusCode, Message: failMsg, Err: domain.ErrNotFound}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		_, _ = io.Copy(io.Discard, resp.Body)
		return &domain.RequestError{Status: resp.StatusCode, Message: failMsg}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.RequestError{
			Status:  resp.StatusCode,
			Message: failMsg,
			Err:     fmt.Errorf("decodificar respuesta: %w", err),
		}
	}
	return nil
}
