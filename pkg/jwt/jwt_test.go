package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/config"
)

func newTestManager(ttl time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret: "secreto-de-prueba-suficientemente-largo",
		TokenTTL:  ttl,
	})
}

func TestManager_GenerarYVerificar(t *testing.T) {
	mgr := newTestManager(12 * time.Hour)

	token, err := mgr.Generar("user-001", "docente")
	if err != nil {
		t.Fatalf("Generar debería funcionar: %v", err)
	}

	claims, err := mgr.Verificar(token)
	if err != nil {
		t.Fatalf("Verificar debería funcionar: %v", err)
	}
	if claims.UID != "user-001" {
		t.Errorf("uid esperado user-001, recibido %s", claims.UID)
	}
	if claims.Rol != "docente" {
		t.Errorf("rol esperado docente, recibido %s", claims.Rol)
	}
	if claims.ID == "" {
		t.Error("el token debe llevar un jti")
	}
}

func TestManager_TokenExpirado(t *testing.T) {
	mgr := newTestManager(-1 * time.Minute)

	token, err := mgr.Generar("user-001", "padre")
	if err != nil {
		t.Fatalf("Generar debería funcionar: %v", err)
	}

	_, err = mgr.Verificar(token)
	if !errors.Is(err, ErrTokenExpirado) {
		t.Errorf("se esperaba ErrTokenExpirado, recibido: %v", err)
	}
}

func TestManager_TokenManipulado(t *testing.T) {
	mgr := newTestManager(12 * time.Hour)

	token, _ := mgr.Generar("user-001", "padre")

	otro := NewManager(&config.AuthConfig{
		JWTSecret: "otro-secreto-distinto-y-tambien-largo",
		TokenTTL:  12 * time.Hour,
	})
	if _, err := otro.Verificar(token); !errors.Is(err, ErrTokenInvalido) {
		t.Errorf("firma ajena: se esperaba ErrTokenInvalido, recibido: %v", err)
	}

	if _, err := mgr.Verificar(token + "x"); !errors.Is(err, ErrTokenInvalido) {
		t.Errorf("token alterado: se esperaba ErrTokenInvalido, recibido: %v", err)
	}

	if _, err := mgr.Verificar("no-es-un-jwt"); !errors.Is(err, ErrTokenInvalido) {
		t.Errorf("token malformado: se esperaba ErrTokenInvalido, recibido: %v", err)
	}
}
