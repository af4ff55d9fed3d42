package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	// ErrNotFound el backend respondió 404 para un recurso concreto.
	ErrNotFound = errors.New("recurso no encontrado")
	// ErrBackendDown fallo de transporte: no se recibió respuesta del backend.
	ErrBackendDown = errors.New("backend no disponible")
	// ErrUnauthorized credenciales rechazadas en el login.
	ErrUnauthorized = errors.New("credenciales inválidas")
)

// RequestError rechazo de aplicación: el backend respondió non-2xx. El cuerpo
// de esas respuestas no tiene esquema garantizado, así que Message es el texto
// de la operación que falló, no lo que dijera el servidor. Err conserva la
// causa (por ejemplo ErrBackendDown) para errors.Is/As; de cara al usuario
// ambas categorías colapsan en el mismo mensaje.
type RequestError struct {
	Status  int // 0 si no hubo respuesta
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("petición rechazada (HTTP %d)", e.Status)
}

func (e *RequestError) Unwrap() error { return e.Err }
