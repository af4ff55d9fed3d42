package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/tu-usuario/thelab-panel/internal/domain"
	"github.com/tu-usuario/thelab-panel/internal/domain/entity"
)

// loginRequest cuerpo de POST /auth/login.
type loginRequest struct {
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

// loginResponse la respuesta embebe el registro del usuario autenticado.
type loginResponse struct {
	User apiUser `json:"user"`
}

// Auth cliente del endpoint de login.
type Auth struct {
	base *Client
}

// NewAuth construye el cliente de autenticación.
func NewAuth(base *Client) *Auth {
	return &Auth{base: base}
}

// Login valida credenciales contra el backend y devuelve el perfil con el que
// se puebla el Session Store. Un rechazo del backend se reporta como
// ErrUnauthorized con el mensaje de credenciales.
func (c *Auth) Login(ctx context.Context, fullName, password string) (*entity.UserProfile, error) {
	var out loginResponse
	err := c.base.do(ctx, http.MethodPost, "/auth/login", loginRequest{FullName: fullName, Password: password}, &out, "Credenciales invalidas")
	if err != nil {
		var re *domain.RequestError
		if errors.As(err, &re) && re.Status > 0 && !errors.Is(err, domain.ErrBackendDown) {
			re.Err = domain.ErrUnauthorized
		}
		return nil, err
	}
	profile := normalizeUser(out.User, 0)
	return &profile, nil
}
