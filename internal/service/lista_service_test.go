package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/repository"
)

func newListaForTest(t *testing.T) (ListaService, *repository.Repository) {
	t.Helper()
	repo := newTestRepository()
	logger := zap.NewNop()
	return NewListaService(repo, NewHistorialService(repo, logger), logger), repo
}

func sembrarMaterial(t *testing.T, repo *repository.Repository, nombre string, disponible bool, centros ...string) *model.Material {
	t.Helper()
	m := &model.Material{
		Nombre:                 nombre,
		CategoriaID:            "categoria-1",
		Activo:                 true,
		DisponibleParaDocentes: disponible,
		CentrosAsignados:       model.StringArray(centros),
	}
	if err := repo.Material.Create(context.Background(), m); err != nil {
		t.Fatal(err)
	}
	return m
}

func docenteDePrueba(centroID string) *model.Usuario {
	u := &model.Usuario{
		UsuarioID: "docente-1",
		Nombre:    "Docente de Prueba",
		Rol:       model.RolDocente,
		Estado:    model.EstadoActivo,
		Activo:    true,
	}
	if centroID != "" {
		u.CentroID = &centroID
	}
	return u
}

func TestListaService_Crear(t *testing.T) {
	svc, repo := newListaForTest(t)
	ctx := context.Background()
	cuaderno := sembrarMaterial(t, repo, "Cuaderno", true)
	docente := docenteDePrueba("")

	lista, err := svc.Crear(ctx, docente, &dto.CrearListaRequest{
		Nombre:     "Lista 3er grado",
		Nivel:      "Primaria",
		Materiales: []model.ItemMaterial{{MaterialID: cuaderno.MaterialID, Cantidad: 5}},
	})
	if err != nil {
		t.Fatalf("crear falló: %v", err)
	}
	if lista.CreadoPorID != docente.UsuarioID {
		t.Error("la lista debe quedar a nombre del docente")
	}
	if !lista.Activo {
		t.Error("la lista nueva debe estar activa")
	}
}

func TestListaService_Crear_AliasDeNivel(t *testing.T) {
	svc, repo := newListaForTest(t)
	ctx := context.Background()
	cuaderno := sembrarMaterial(t, repo, "Cuaderno", true)
	docente := docenteDePrueba("")

	// clientes viejos envían nivelEducativo en lugar de nivel
	lista, err := svc.Crear(ctx, docente, &dto.CrearListaRequest{
		Nombre:         "Lista kinder",
		NivelEducativo: "Preescolar",
		Materiales:     []model.ItemMaterial{{MaterialID: cuaderno.MaterialID, Cantidad: 1}},
	})
	if err != nil {
		t.Fatalf("crear falló: %v", err)
	}
	if lista.NivelEducativo != "Preescolar" {
		t.Errorf("nivel = %q, se esperaba Preescolar", lista.NivelEducativo)
	}
}

func TestListaService_Crear_Rechazos(t *testing.T) {
	svc, repo := newListaForTest(t)
	ctx := context.Background()
	restringido := sembrarMaterial(t, repo, "Material del centro", false, "centro-9")
	inactivo := sembrarMaterial(t, repo, "Descontinuado", true)
	inactivo.Activo = false
	if err := repo.Material.Update(ctx, inactivo); err != nil {
		t.Fatal(err)
	}
	docente := docenteDePrueba("")

	casos := []struct {
		nombre  string
		req     dto.CrearListaRequest
		esperar error
	}{
		{
			"sin materiales",
			dto.CrearListaRequest{Nombre: "Vacía", Nivel: "Primaria"},
			ErrListaSinMateriales,
		},
		{
			"cantidad cero",
			dto.CrearListaRequest{Nombre: "Cantidades", Nivel: "Primaria",
				Materiales: []model.ItemMaterial{{MaterialID: restringido.MaterialID, Cantidad: 0}}},
			ErrCantidadInvalida,
		},
		{
			"material inexistente",
			dto.CrearListaRequest{Nombre: "Fantasma", Nivel: "Primaria",
				Materiales: []model.ItemMaterial{{MaterialID: "no-existe", Cantidad: 1}}},
			ErrMaterialNoEncontrado,
		},
		{
			"material de otro centro",
			dto.CrearListaRequest{Nombre: "Ajena", Nivel: "Primaria",
				Materiales: []model.ItemMaterial{{MaterialID: restringido.MaterialID, Cantidad: 1}}},
			ErrMaterialNoPermitido,
		},
		{
			"material inactivo",
			dto.CrearListaRequest{Nombre: "Vieja", Nivel: "Primaria",
				Materiales: []model.ItemMaterial{{MaterialID: inactivo.MaterialID, Cantidad: 1}}},
			ErrMaterialNoPermitido,
		},
	}
	for _, c := range casos {
		if _, err := svc.Crear(ctx, docente, &c.req); !errors.Is(err, c.esperar) {
			t.Errorf("%s: err = %v, se esperaba %v", c.nombre, err, c.esperar)
		}
	}
}

func TestListaService_Crear_MaterialAsignadoAlCentro(t *testing.T) {
	svc, repo := newListaForTest(t)
	ctx := context.Background()
	restringido := sembrarMaterial(t, repo, "Uniforme", false, "centro-1")

	// el docente del centro asignado sí puede usarlo
	docente := docenteDePrueba("centro-1")
	if _, err := svc.Crear(ctx, docente, &dto.CrearListaRequest{
		Nombre:     "Lista con uniforme",
		Nivel:      "Primaria",
		Materiales: []model.ItemMaterial{{MaterialID: restringido.MaterialID, Cantidad: 1}},
	}); err != nil {
		t.Errorf("docente del centro asignado: err = %v", err)
	}
}

func TestListaService_Actualizar_SoloElDueno(t *testing.T) {
	svc, repo := newListaForTest(t)
	ctx := context.Background()
	cuaderno := sembrarMaterial(t, repo, "Cuaderno", true)
	duena := docenteDePrueba("")

	lista, err := svc.Crear(ctx, duena, &dto.CrearListaRequest{
		Nombre:     "Lista original",
		Nivel:      "Primaria",
		Materiales: []model.ItemMaterial{{MaterialID: cuaderno.MaterialID, Cantidad: 2}},
	})
	if err != nil {
		t.Fatal(err)
	}

	otro := &model.Usuario{UsuarioID: "docente-2", Rol: model.RolDocente}
	nuevoNombre := "Lista ajena"
	if _, err := svc.Actualizar(ctx, otro, lista.ListaID, &dto.ActualizarListaRequest{Nombre: &nuevoNombre}); !errors.Is(err, ErrAccesoDenegado) {
		t.Errorf("otro docente: err = %v, se esperaba ErrAccesoDenegado", err)
	}

	// ni siquiera el coordinador edita listas ajenas, solo las desactiva
	coordinador := &model.Usuario{UsuarioID: "coord-1", Rol: model.RolCoordinador}
	if _, err := svc.Actualizar(ctx, coordinador, lista.ListaID, &dto.ActualizarListaRequest{Nombre: &nuevoNombre}); !errors.Is(err, ErrAccesoDenegado) {
		t.Errorf("coordinador: err = %v, se esperaba ErrAccesoDenegado", err)
	}

	renombrada := "Lista corregida"
	actualizada, err := svc.Actualizar(ctx, duena, lista.ListaID, &dto.ActualizarListaRequest{Nombre: &renombrada})
	if err != nil {
		t.Fatalf("dueña: err = %v", err)
	}
	if actualizada.Nombre != renombrada {
		t.Errorf("nombre = %q", actualizada.Nombre)
	}
}

func TestListaService_Listar_DocenteSoloVeLasSuyas(t *testing.T) {
	svc, repo := newListaForTest(t)
	ctx := context.Background()
	cuaderno := sembrarMaterial(t, repo, "Cuaderno", true)

	d1 := docenteDePrueba("")
	d2 := &model.Usuario{UsuarioID: "docente-2", Rol: model.RolDocente, Estado: model.EstadoActivo, Activo: true}
	for _, d := range []*model.Usuario{d1, d2} {
		if _, err := svc.Crear(ctx, d, &dto.CrearListaRequest{
			Nombre:     "Lista de " + d.UsuarioID,
			Nivel:      "Primaria",
			Materiales: []model.ItemMaterial{{MaterialID: cuaderno.MaterialID, Cantidad: 1}},
		}); err != nil {
			t.Fatal(err)
		}
	}

	listas, total, err := svc.Listar(ctx, d1, dto.ListasQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(listas) != 1 {
		t.Fatalf("docente ve %d listas, se esperaba 1", total)
	}
	if listas[0].CreadoPorID != d1.UsuarioID {
		t.Error("el docente solo debe ver sus propias listas")
	}

	coordinador := &model.Usuario{UsuarioID: "coord-1", Rol: model.RolCoordinador}
	_, total, err = svc.Listar(ctx, coordinador, dto.ListasQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Errorf("coordinador ve %d listas, se esperaban 2", total)
	}
}

func TestListaService_VistaPadre(t *testing.T) {
	svc, repo := newListaForTest(t)
	ctx := context.Background()
	cuaderno := sembrarMaterial(t, repo, "Cuaderno", true)
	docente := docenteDePrueba("")

	for _, nivel := range []string{"Primaria", "Secundaria", "Preescolar"} {
		if _, err := svc.Crear(ctx, docente, &dto.CrearListaRequest{
			Nombre:     "Lista " + nivel,
			Nivel:      nivel,
			Materiales: []model.ItemMaterial{{MaterialID: cuaderno.MaterialID, Cantidad: 1}},
		}); err != nil {
			t.Fatal(err)
		}
	}

	// dos hijos activos en niveles distintos y uno transferido
	hijos := []model.Estudiante{
		{Nombre: "Luis", Cedula: "1-1111-1111", Nivel: "Primaria", Grado: "2°", PadreID: "padre-1", Estado: model.EstadoActivo},
		{Nombre: "Ana", Cedula: "1-2222-2222", Nivel: "Secundaria", Grado: "9°", PadreID: "padre-1", Estado: model.EstadoActivo},
		{Nombre: "Sofía", Cedula: "1-3333-3333", Nivel: "Preescolar", Grado: "Kinder", PadreID: "padre-1", Estado: model.EstadoTransferido},
	}
	if err := repo.Estudiante.CreateBatch(ctx, hijos); err != nil {
		t.Fatal(err)
	}

	vista, err := svc.VistaPadre(ctx, "padre-1")
	if err != nil {
		t.Fatalf("vista del padre falló: %v", err)
	}
	if len(vista) != 2 {
		t.Fatalf("entradas = %d, se esperaban 2 (el transferido queda fuera)", len(vista))
	}
	for _, entrada := range vista {
		if len(entrada.Listas) != 1 {
			t.Errorf("estudiante %s: %d listas, se esperaba 1", entrada.Estudiante.Nombre, len(entrada.Listas))
		}
		if len(entrada.Listas) > 0 && entrada.Listas[0].NivelEducativo != entrada.Estudiante.Nivel {
			t.Errorf("estudiante %s recibió lista de nivel %q", entrada.Estudiante.Nombre, entrada.Listas[0].NivelEducativo)
		}
	}
}

func TestListaService_Desactivar(t *testing.T) {
	svc, repo := newListaForTest(t)
	ctx := context.Background()
	cuaderno := sembrarMaterial(t, repo, "Cuaderno", true)
	docente := docenteDePrueba("")

	lista, err := svc.Crear(ctx, docente, &dto.CrearListaRequest{
		Nombre:     "Por retirar",
		Nivel:      "Primaria",
		Materiales: []model.ItemMaterial{{MaterialID: cuaderno.MaterialID, Cantidad: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}

	// el coordinador sí puede desactivar listas ajenas
	coordinador := &model.Usuario{UsuarioID: "coord-1", Rol: model.RolCoordinador}
	if err := svc.Desactivar(ctx, coordinador, lista.ListaID); err != nil {
		t.Fatalf("desactivar falló: %v", err)
	}

	guardada, err := repo.Lista.GetByID(ctx, lista.ListaID)
	if err != nil {
		t.Fatal(err)
	}
	if guardada.Activo {
		t.Error("la lista debe quedar inactiva, no borrada")
	}
}
