package session

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tu-usuario/thelab-panel/internal/domain/entity"
)

// Claims incluye los claims estándar JWT más el perfil serializado. Las fechas
// del perfil viajan como NumericDate para que al decodificar vuelvan a ser
// time.Time y no strings.
type Claims struct {
	jwt.RegisteredClaims
	FullName         string           `json:"fullName"`
	Role             string           `json:"role"`
	ProfileCreatedAt *jwt.NumericDate `json:"profileCreatedAt,omitempty"`
	ProfileUpdatedAt *jwt.NumericDate `json:"profileUpdatedAt,omitempty"`
}

// Codec firma y verifica el perfil de sesión (HS256). Es el único formato en
// que la sesión toca almacenamiento durable.
type Codec struct {
	secret string
	ttl    time.Duration
	issuer string
}

// NewCodec construye el codec. secret no puede ser vacío al firmar.
func NewCodec(secret, issuer string, ttl time.Duration) *Codec {
	return &Codec{secret: secret, ttl: ttl, issuer: issuer}
}

// Encode serializa el perfil como JWT firmado.
func (c *Codec) Encode(profile entity.UserProfile) (string, error) {
	if c.secret == "" {
		return "", fmt.Errorf("session: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   strconv.FormatInt(profile.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		FullName:         profile.FullName,
		Role:             profile.Role,
		ProfileCreatedAt: jwt.NewNumericDate(profile.CreatedAt),
		ProfileUpdatedAt: jwt.NewNumericDate(profile.UpdatedAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.secret))
}

// Decode valida el token y reconstruye el perfil. Retorna error si el token es
// inválido, expirado o tiene firma incorrecta.
func (c *Codec) Decode(tokenString string) (*entity.UserProfile, error) {
	if c.secret == "" {
		return nil, fmt.Errorf("session: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(c.secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("subject inválido: %w", err)
	}
	profile := &entity.UserProfile{
		ID:       id,
		FullName: claims.FullName,
		Role:     claims.Role,
	}
	if claims.ProfileCreatedAt != nil {
		profile.CreatedAt = claims.ProfileCreatedAt.Time
	}
	if claims.ProfileUpdatedAt != nil {
		profile.UpdatedAt = claims.ProfileUpdatedAt.Time
	}
	return profile, nil
}
