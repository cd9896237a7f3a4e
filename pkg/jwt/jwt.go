package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/config"
)

var (
	ErrTokenExpirado = errors.New("token expirado")
	ErrTokenInvalido = errors.New("token no válido")
)

// Claims declaraciones del token de sesión
type Claims struct {
	UID string `json:"uid"`
	Rol string `json:"rol"`
	jwtv5.RegisteredClaims
}

// Manager firma y verifica tokens de sesión
type Manager struct {
	secret   []byte
	tokenTTL time.Duration
}

// NewManager crea el Manager a partir de la configuración
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: cfg.TokenTTL,
	}
}

// Generar emite un token firmado con uid y rol, expiración fija (12h)
func (m *Manager) Generar(uid, rol string) (string, error) {
	now := time.Now()
	claims := Claims{
		UID: uid,
		Rol: rol,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(m.tokenTTL)),
			Issuer:    "sistema-utiles-escolares",
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verificar valida firma y expiración y devuelve las declaraciones
func (m *Manager) Verificar(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalido
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpirado
		}
		return nil, ErrTokenInvalido
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalido
	}

	return claims, nil
}

// TTL devuelve la vigencia configurada del token
func (m *Manager) TTL() time.Duration {
	return m.tokenTTL
}
