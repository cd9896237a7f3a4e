package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
)

func TestHistorialService_Registrar(t *testing.T) {
	repo := newTestRepository()
	svc := NewHistorialService(repo, zap.NewNop())
	ctx := context.Background()

	svc.Registrar(ctx, "usuario-1", model.RolDocente, "creación de lista",
		ptr("lista"), ptr("lista-1"), nil)

	entradas, total, err := svc.Listar(ctx, dto.PageQuery{Page: 1, Limit: 20}, "usuario-1", "")
	if err != nil {
		t.Fatalf("listar falló: %v", err)
	}
	if total != 1 || len(entradas) != 1 {
		t.Fatalf("entradas = %d (total %d), se esperaba 1", len(entradas), total)
	}
	if entradas[0].Accion != "creación de lista" {
		t.Errorf("acción = %q", entradas[0].Accion)
	}
}

func TestHistorialService_Registrar_SinActor(t *testing.T) {
	repo := newTestRepository()
	svc := NewHistorialService(repo, zap.NewNop())
	ctx := context.Background()

	// sin actor identificado no se inserta nada
	svc.Registrar(ctx, "", model.RolDocente, "acción anónima", nil, nil, nil)

	_, total, err := svc.Listar(ctx, dto.PageQuery{Page: 1, Limit: 20}, "", "")
	if err != nil {
		t.Fatalf("listar falló: %v", err)
	}
	if total != 0 {
		t.Errorf("entradas = %d, se esperaba 0", total)
	}
}
