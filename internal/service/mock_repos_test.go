package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/repository"
)

// ── Mock UsuarioRepository ──

type mockUsuarioRepo struct {
	usuarios map[string]*model.Usuario
	seq      int
}

func newMockUsuarioRepo() *mockUsuarioRepo {
	return &mockUsuarioRepo{usuarios: make(map[string]*model.Usuario)}
}

func (m *mockUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.UsuarioID == "" {
		m.seq++
		u.UsuarioID = fmt.Sprintf("usuario-%d", m.seq)
	}
	m.usuarios[u.UsuarioID] = u
	return nil
}

func (m *mockUsuarioRepo) GetByID(_ context.Context, id string) (*model.Usuario, error) {
	if u, ok := m.usuarios[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUsuarioRepo) GetByCorreo(_ context.Context, correo string) (*model.Usuario, error) {
	for _, u := range m.usuarios {
		if strings.EqualFold(u.Correo, correo) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUsuarioRepo) GetByResetToken(_ context.Context, token string) (*model.Usuario, error) {
	for _, u := range m.usuarios {
		if u.ResetToken != nil && *u.ResetToken == token {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	m.usuarios[u.UsuarioID] = u
	return nil
}

func (m *mockUsuarioRepo) RegistrarLogin(_ context.Context, id string, cuando time.Time) error {
	if u, ok := m.usuarios[id]; ok {
		u.FechaUltimoLogin = &cuando
	}
	return nil
}

func (m *mockUsuarioRepo) List(_ context.Context, q dto.UsuariosQuery) ([]model.Usuario, int64, error) {
	var result []model.Usuario
	for _, u := range m.usuarios {
		if q.Rol != "" && u.Rol != q.Rol {
			continue
		}
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

func (m *mockUsuarioRepo) CountByRol(_ context.Context) (map[string]int64, error) {
	conteo := make(map[string]int64)
	for _, u := range m.usuarios {
		if u.Activo {
			conteo[u.Rol]++
		}
	}
	return conteo, nil
}

// ── Mock EstudianteRepository ──

type mockEstudianteRepo struct {
	estudiantes map[string]*model.Estudiante
	seq         int
}

func newMockEstudianteRepo() *mockEstudianteRepo {
	return &mockEstudianteRepo{estudiantes: make(map[string]*model.Estudiante)}
}

func (m *mockEstudianteRepo) Create(_ context.Context, e *model.Estudiante) error {
	if e.EstudianteID == "" {
		m.seq++
		e.EstudianteID = fmt.Sprintf("estudiante-%d", m.seq)
	}
	m.estudiantes[e.EstudianteID] = e
	return nil
}

func (m *mockEstudianteRepo) CreateBatch(ctx context.Context, estudiantes []model.Estudiante) error {
	for i := range estudiantes {
		if err := m.Create(ctx, &estudiantes[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockEstudianteRepo) GetByID(_ context.Context, id string) (*model.Estudiante, error) {
	if e, ok := m.estudiantes[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEstudianteRepo) GetByCedula(_ context.Context, cedula string) (*model.Estudiante, error) {
	for _, e := range m.estudiantes {
		if e.Cedula == cedula {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEstudianteRepo) Update(_ context.Context, e *model.Estudiante) error {
	m.estudiantes[e.EstudianteID] = e
	return nil
}

func (m *mockEstudianteRepo) List(_ context.Context, q dto.EstudiantesQuery) ([]model.Estudiante, int64, error) {
	var result []model.Estudiante
	for _, e := range m.estudiantes {
		if q.PadreID != "" && e.PadreID != q.PadreID {
			continue
		}
		if q.Nivel != "" && e.Nivel != q.Nivel {
			continue
		}
		result = append(result, *e)
	}
	return result, int64(len(result)), nil
}

func (m *mockEstudianteRepo) ListByPadre(_ context.Context, padreID string) ([]model.Estudiante, error) {
	var result []model.Estudiante
	for _, e := range m.estudiantes {
		if e.PadreID == padreID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockEstudianteRepo) CountByNivel(_ context.Context, centroID string) ([]dto.ConteoPorClave, error) {
	conteo := make(map[string]int64)
	for _, e := range m.estudiantes {
		if e.Estado != model.EstadoActivo {
			continue
		}
		if centroID != "" && (e.CentroID == nil || *e.CentroID != centroID) {
			continue
		}
		conteo[e.Nivel]++
	}
	var filas []dto.ConteoPorClave
	for nivel, total := range conteo {
		filas = append(filas, dto.ConteoPorClave{Clave: nivel, Nombre: nivel, Total: total})
	}
	return filas, nil
}

// ── Mock CentroRepository ──

type mockCentroRepo struct {
	centros map[string]*model.CentroEducativo
	seq     int
}

func newMockCentroRepo() *mockCentroRepo {
	return &mockCentroRepo{centros: make(map[string]*model.CentroEducativo)}
}

func (m *mockCentroRepo) Create(_ context.Context, c *model.CentroEducativo) error {
	if c.CentroID == "" {
		m.seq++
		c.CentroID = fmt.Sprintf("centro-%d", m.seq)
	}
	m.centros[c.CentroID] = c
	return nil
}

func (m *mockCentroRepo) GetByID(_ context.Context, id string) (*model.CentroEducativo, error) {
	if c, ok := m.centros[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCentroRepo) GetByCodigoMEP(_ context.Context, codigo string) (*model.CentroEducativo, error) {
	for _, c := range m.centros {
		if c.CodigoMEP != nil && *c.CodigoMEP == codigo {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCentroRepo) Update(_ context.Context, c *model.CentroEducativo) error {
	m.centros[c.CentroID] = c
	return nil
}

func (m *mockCentroRepo) List(_ context.Context, _ dto.CentrosQuery) ([]model.CentroEducativo, int64, error) {
	var result []model.CentroEducativo
	for _, c := range m.centros {
		result = append(result, *c)
	}
	return result, int64(len(result)), nil
}

func (m *mockCentroRepo) ListActivos(_ context.Context) ([]model.CentroEducativo, error) {
	var result []model.CentroEducativo
	for _, c := range m.centros {
		if c.Estado == model.EstadoActivo {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCentroRepo) Count(_ context.Context) (int64, error) {
	var total int64
	for _, c := range m.centros {
		if c.Estado == model.EstadoActivo {
			total++
		}
	}
	return total, nil
}

// ── Mock NivelRepository ──

type mockNivelRepo struct {
	niveles map[string]*model.NivelEducativo
	seq     int
}

func newMockNivelRepo() *mockNivelRepo {
	return &mockNivelRepo{niveles: make(map[string]*model.NivelEducativo)}
}

func (m *mockNivelRepo) Create(_ context.Context, n *model.NivelEducativo) error {
	if n.NivelID == "" {
		m.seq++
		n.NivelID = fmt.Sprintf("nivel-%d", m.seq)
	}
	m.niveles[n.NivelID] = n
	return nil
}

func (m *mockNivelRepo) GetByID(_ context.Context, id string) (*model.NivelEducativo, error) {
	if n, ok := m.niveles[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNivelRepo) GetByNombreYAmbito(_ context.Context, nombre, ambito string) (*model.NivelEducativo, error) {
	for _, n := range m.niveles {
		if strings.EqualFold(n.Nombre, nombre) && n.Ambito == ambito {
			return n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNivelRepo) Update(_ context.Context, n *model.NivelEducativo) error {
	m.niveles[n.NivelID] = n
	return nil
}

func (m *mockNivelRepo) ListVisibles(_ context.Context, ambito string) ([]model.NivelEducativo, error) {
	var result []model.NivelEducativo
	for _, n := range m.niveles {
		if !n.Activo {
			continue
		}
		if n.Ambito == model.AmbitoGeneral || n.Ambito == ambito {
			result = append(result, *n)
		}
	}
	return result, nil
}

func (m *mockNivelRepo) ListByAmbito(_ context.Context, ambito string) ([]model.NivelEducativo, error) {
	var result []model.NivelEducativo
	for _, n := range m.niveles {
		if n.Ambito == ambito {
			result = append(result, *n)
		}
	}
	return result, nil
}

// ── Mock CategoriaRepository ──

type mockCategoriaRepo struct {
	categorias map[string]*model.Categoria
	materiales *mockMaterialRepo
	seq        int
}

func newMockCategoriaRepo(materiales *mockMaterialRepo) *mockCategoriaRepo {
	return &mockCategoriaRepo{
		categorias: make(map[string]*model.Categoria),
		materiales: materiales,
	}
}

func (m *mockCategoriaRepo) Create(_ context.Context, c *model.Categoria) error {
	if c.CategoriaID == "" {
		m.seq++
		c.CategoriaID = fmt.Sprintf("categoria-%d", m.seq)
	}
	m.categorias[c.CategoriaID] = c
	return nil
}

func (m *mockCategoriaRepo) GetByID(_ context.Context, id string) (*model.Categoria, error) {
	if c, ok := m.categorias[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCategoriaRepo) GetByNombre(_ context.Context, nombre string) (*model.Categoria, error) {
	for _, c := range m.categorias {
		if strings.EqualFold(c.Nombre, nombre) {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCategoriaRepo) Update(_ context.Context, c *model.Categoria) error {
	m.categorias[c.CategoriaID] = c
	return nil
}

func (m *mockCategoriaRepo) List(_ context.Context, soloActivas bool) ([]model.Categoria, error) {
	var result []model.Categoria
	for _, c := range m.categorias {
		if soloActivas && !c.Activo {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCategoriaRepo) CountMateriales(_ context.Context, categoriaID string) (int64, error) {
	var total int64
	for _, mat := range m.materiales.materiales {
		if mat.CategoriaID == categoriaID && mat.Activo {
			total++
		}
	}
	return total, nil
}

// ── Mock MaterialRepository ──

type mockMaterialRepo struct {
	materiales map[string]*model.Material
	seq        int
}

func newMockMaterialRepo() *mockMaterialRepo {
	return &mockMaterialRepo{materiales: make(map[string]*model.Material)}
}

func (m *mockMaterialRepo) Create(_ context.Context, mat *model.Material) error {
	if mat.MaterialID == "" {
		m.seq++
		mat.MaterialID = fmt.Sprintf("material-%d", m.seq)
	}
	m.materiales[mat.MaterialID] = mat
	return nil
}

func (m *mockMaterialRepo) GetByID(_ context.Context, id string) (*model.Material, error) {
	if mat, ok := m.materiales[id]; ok {
		return mat, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMaterialRepo) GetByNombre(_ context.Context, nombre string) (*model.Material, error) {
	for _, mat := range m.materiales {
		if strings.EqualFold(mat.Nombre, nombre) {
			return mat, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMaterialRepo) GetByIDs(_ context.Context, ids []string) ([]model.Material, error) {
	var result []model.Material
	for _, id := range ids {
		if mat, ok := m.materiales[id]; ok {
			result = append(result, *mat)
		}
	}
	return result, nil
}

func (m *mockMaterialRepo) Update(_ context.Context, mat *model.Material) error {
	m.materiales[mat.MaterialID] = mat
	return nil
}

func (m *mockMaterialRepo) List(_ context.Context, _ dto.MaterialesQuery) ([]model.Material, int64, error) {
	var result []model.Material
	for _, mat := range m.materiales {
		result = append(result, *mat)
	}
	return result, int64(len(result)), nil
}

func (m *mockMaterialRepo) ListParaDocente(_ context.Context, centroID string) ([]model.Material, error) {
	var result []model.Material
	for _, mat := range m.materiales {
		if !mat.Activo {
			continue
		}
		if mat.DisponibleParaDocentes || (centroID != "" && mat.CentrosAsignados.Contains(centroID)) {
			result = append(result, *mat)
		}
	}
	return result, nil
}

func (m *mockMaterialRepo) CountByCategoria(_ context.Context) ([]dto.ConteoPorClave, error) {
	conteo := make(map[string]int64)
	for _, mat := range m.materiales {
		if mat.Activo {
			conteo[mat.CategoriaID]++
		}
	}
	var filas []dto.ConteoPorClave
	for id, total := range conteo {
		filas = append(filas, dto.ConteoPorClave{Clave: id, Nombre: id, Total: total})
	}
	return filas, nil
}

// ── Mock ListaRepository ──

type mockListaRepo struct {
	listas map[string]*model.ListaUtiles
	seq    int
}

func newMockListaRepo() *mockListaRepo {
	return &mockListaRepo{listas: make(map[string]*model.ListaUtiles)}
}

func (m *mockListaRepo) Create(_ context.Context, l *model.ListaUtiles) error {
	if l.ListaID == "" {
		m.seq++
		l.ListaID = fmt.Sprintf("lista-%d", m.seq)
	}
	m.listas[l.ListaID] = l
	return nil
}

func (m *mockListaRepo) GetByID(_ context.Context, id string) (*model.ListaUtiles, error) {
	if l, ok := m.listas[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockListaRepo) Update(_ context.Context, l *model.ListaUtiles) error {
	m.listas[l.ListaID] = l
	return nil
}

func (m *mockListaRepo) List(_ context.Context, q dto.ListasQuery) ([]model.ListaUtiles, int64, error) {
	var result []model.ListaUtiles
	for _, l := range m.listas {
		if q.Docente != "" && l.CreadoPorID != q.Docente {
			continue
		}
		if q.Nivel != "" && l.NivelEducativo != q.Nivel {
			continue
		}
		result = append(result, *l)
	}
	return result, int64(len(result)), nil
}

func (m *mockListaRepo) ListByDocente(_ context.Context, docenteID string) ([]model.ListaUtiles, error) {
	var result []model.ListaUtiles
	for _, l := range m.listas {
		if l.CreadoPorID == docenteID {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockListaRepo) ListParaNiveles(_ context.Context, niveles []string) ([]model.ListaUtiles, error) {
	quiere := make(map[string]bool, len(niveles))
	for _, n := range niveles {
		quiere[n] = true
	}
	var result []model.ListaUtiles
	for _, l := range m.listas {
		if l.Activo && quiere[l.NivelEducativo] {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockListaRepo) ListConFechaLimite(_ context.Context) ([]model.ListaUtiles, error) {
	var result []model.ListaUtiles
	for _, l := range m.listas {
		if l.Activo && l.FechaLimite != nil {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockListaRepo) CountByNivel(_ context.Context) ([]dto.ConteoPorClave, error) {
	conteo := make(map[string]int64)
	for _, l := range m.listas {
		if l.Activo {
			conteo[l.NivelEducativo]++
		}
	}
	var filas []dto.ConteoPorClave
	for nivel, total := range conteo {
		filas = append(filas, dto.ConteoPorClave{Clave: nivel, Nombre: nivel, Total: total})
	}
	return filas, nil
}

func (m *mockListaRepo) CountByDocente(_ context.Context) ([]dto.ConteoPorClave, error) {
	conteo := make(map[string]int64)
	for _, l := range m.listas {
		if l.Activo {
			conteo[l.CreadoPorID]++
		}
	}
	var filas []dto.ConteoPorClave
	for id, total := range conteo {
		filas = append(filas, dto.ConteoPorClave{Clave: id, Nombre: id, Total: total})
	}
	return filas, nil
}

// ── Mock SoporteRepository ──

type mockSoporteRepo struct {
	mensajes map[string]*model.Soporte
	seq      int
}

func newMockSoporteRepo() *mockSoporteRepo {
	return &mockSoporteRepo{mensajes: make(map[string]*model.Soporte)}
}

func (m *mockSoporteRepo) Create(_ context.Context, s *model.Soporte) error {
	if s.SoporteID == "" {
		m.seq++
		s.SoporteID = fmt.Sprintf("soporte-%d", m.seq)
	}
	m.mensajes[s.SoporteID] = s
	return nil
}

func (m *mockSoporteRepo) GetByID(_ context.Context, id string) (*model.Soporte, error) {
	if s, ok := m.mensajes[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSoporteRepo) Update(_ context.Context, s *model.Soporte) error {
	m.mensajes[s.SoporteID] = s
	return nil
}

func (m *mockSoporteRepo) List(_ context.Context, q dto.SoporteQuery) ([]model.Soporte, int64, error) {
	var result []model.Soporte
	for _, s := range m.mensajes {
		if q.Estado != "" && s.Estado != q.Estado {
			continue
		}
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (m *mockSoporteRepo) ListByUsuario(_ context.Context, usuarioID string) ([]model.Soporte, error) {
	var result []model.Soporte
	for _, s := range m.mensajes {
		if s.UsuarioID == usuarioID {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── Mock ConfiguracionRepository ──

type mockConfiguracionRepo struct {
	cfg *model.Configuracion
}

func newMockConfiguracionRepo() *mockConfiguracionRepo {
	return &mockConfiguracionRepo{}
}

func (m *mockConfiguracionRepo) Get(_ context.Context) (*model.Configuracion, error) {
	if m.cfg == nil {
		m.cfg = &model.Configuracion{
			Singleton:     true,
			NombreSistema: "Sistema de útiles escolares",
		}
	}
	return m.cfg, nil
}

func (m *mockConfiguracionRepo) Update(_ context.Context, c *model.Configuracion) error {
	m.cfg = c
	return nil
}

// ── Mock HistorialRepository ──

type mockHistorialRepo struct {
	entradas []model.Historial
}

func newMockHistorialRepo() *mockHistorialRepo {
	return &mockHistorialRepo{}
}

func (m *mockHistorialRepo) Create(_ context.Context, h *model.Historial) error {
	m.entradas = append(m.entradas, *h)
	return nil
}

func (m *mockHistorialRepo) List(_ context.Context, _ dto.PageQuery, usuarioID, entidad string) ([]model.Historial, int64, error) {
	var result []model.Historial
	for _, h := range m.entradas {
		if usuarioID != "" && h.UsuarioID != usuarioID {
			continue
		}
		if entidad != "" && (h.Entidad == nil || *h.Entidad != entidad) {
			continue
		}
		result = append(result, h)
	}
	return result, int64(len(result)), nil
}

// ── Mock Mailer ──

type mockMailer struct {
	restablecimientos []string
	bienvenidas       []string
	fallo             error
}

func (m *mockMailer) EnviarRestablecimiento(_ context.Context, destino, _, _ string) error {
	if m.fallo != nil {
		return m.fallo
	}
	m.restablecimientos = append(m.restablecimientos, destino)
	return nil
}

func (m *mockMailer) EnviarBienvenida(_ context.Context, destino, _, _ string) error {
	if m.fallo != nil {
		return m.fallo
	}
	m.bienvenidas = append(m.bienvenidas, destino)
	return nil
}

// newTestRepository agregado con todos los mocks
func newTestRepository() *repository.Repository {
	materiales := newMockMaterialRepo()
	return &repository.Repository{
		Usuario:       newMockUsuarioRepo(),
		Estudiante:    newMockEstudianteRepo(),
		Centro:        newMockCentroRepo(),
		Nivel:         newMockNivelRepo(),
		Categoria:     newMockCategoriaRepo(materiales),
		Material:      materiales,
		Lista:         newMockListaRepo(),
		Soporte:       newMockSoporteRepo(),
		Configuracion: newMockConfiguracionRepo(),
		Historial:     newMockHistorialRepo(),
	}
}
