package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/repository"
)

var ErrReporteSinDatos = errors.New("no hay datos para el reporte")

// ReporteService reportes agregados y exportaciones (Excel, PDF, calendario)
type ReporteService interface {
	Resumen(ctx context.Context) (*dto.ResumenGeneral, error)
	ListasPorNivel(ctx context.Context) ([]dto.ConteoPorClave, error)
	ListasPorDocente(ctx context.Context) ([]dto.ConteoPorClave, error)
	MaterialesPorCategoria(ctx context.Context) ([]dto.ConteoPorClave, error)
	EstudiantesPorNivel(ctx context.Context, centroID string) ([]dto.ConteoPorClave, error)
	// ExportarListaExcel una lista con sus materiales como .xlsx
	ExportarListaExcel(ctx context.Context, listaID string) (*bytes.Buffer, string, error)
	// ExportarListaPDF la misma lista en PDF imprimible para los padres
	ExportarListaPDF(ctx context.Context, listaID string) (*bytes.Buffer, string, error)
	// CalendarioFechasLimite calendario iCalendar con las fechas límite
	// de entrega de todas las listas activas
	CalendarioFechasLimite(ctx context.Context) (*bytes.Buffer, string, error)
}

type reporteService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReporteService crea el servicio de reportes
func NewReporteService(repo *repository.Repository, logger *zap.Logger) ReporteService {
	return &reporteService{repo: repo, logger: logger}
}

func (s *reporteService) Resumen(ctx context.Context) (*dto.ResumenGeneral, error) {
	resumen := &dto.ResumenGeneral{}

	var err error
	if resumen.Centros, err = s.repo.Centro.Count(ctx); err != nil {
		return nil, err
	}

	porRol, err := s.repo.Usuario.CountByRol(ctx)
	if err != nil {
		return nil, err
	}
	for _, total := range porRol {
		resumen.Usuarios += total
	}

	porNivel, err := s.repo.Estudiante.CountByNivel(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, fila := range porNivel {
		resumen.Estudiantes += fila.Total
	}

	listas, err := s.repo.Lista.CountByNivel(ctx)
	if err != nil {
		return nil, err
	}
	for _, fila := range listas {
		resumen.Listas += fila.Total
	}

	materiales, err := s.repo.Material.CountByCategoria(ctx)
	if err != nil {
		return nil, err
	}
	for _, fila := range materiales {
		resumen.Materiales += fila.Total
	}

	return resumen, nil
}

func (s *reporteService) ListasPorNivel(ctx context.Context) ([]dto.ConteoPorClave, error) {
	return s.repo.Lista.CountByNivel(ctx)
}

func (s *reporteService) ListasPorDocente(ctx context.Context) ([]dto.ConteoPorClave, error) {
	return s.repo.Lista.CountByDocente(ctx)
}

func (s *reporteService) MaterialesPorCategoria(ctx context.Context) ([]dto.ConteoPorClave, error) {
	return s.repo.Material.CountByCategoria(ctx)
}

func (s *reporteService) EstudiantesPorNivel(ctx context.Context, centroID string) ([]dto.ConteoPorClave, error) {
	return s.repo.Estudiante.CountByNivel(ctx, centroID)
}

// filaLista par nombre de material y cantidad ya resuelto contra el catálogo
type filaLista struct {
	nombre    string
	categoria string
	cantidad  int
}

func (s *reporteService) cargarLista(ctx context.Context, listaID string) (*model.ListaUtiles, []filaLista, error) {
	lista, err := s.repo.Lista.GetByID(ctx, listaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrListaNoEncontrada
		}
		return nil, nil, err
	}
	if len(lista.Materiales) == 0 {
		return nil, nil, ErrReporteSinDatos
	}

	ids := make([]string, 0, len(lista.Materiales))
	for _, item := range lista.Materiales {
		ids = append(ids, item.MaterialID)
	}
	materiales, err := s.repo.Material.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	porID := make(map[string]model.Material, len(materiales))
	for _, m := range materiales {
		porID[m.MaterialID] = m
	}

	filas := make([]filaLista, 0, len(lista.Materiales))
	for _, item := range lista.Materiales {
		fila := filaLista{nombre: "(material eliminado)", cantidad: item.Cantidad}
		if m, ok := porID[item.MaterialID]; ok {
			fila.nombre = m.Nombre
			if m.Categoria != nil {
				fila.categoria = m.Categoria.Nombre
			}
		}
		filas = append(filas, fila)
	}
	return lista, filas, nil
}

func (s *reporteService) ExportarListaExcel(ctx context.Context, listaID string) (*bytes.Buffer, string, error) {
	lista, filas, err := s.cargarLista(ctx, listaID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const hoja = "Lista de útiles"
	f.SetSheetName("Sheet1", hoja)

	f.SetCellValue(hoja, "A1", lista.Nombre)
	f.SetCellValue(hoja, "A2", "Nivel: "+lista.NivelEducativo)
	if lista.Docente != nil {
		f.SetCellValue(hoja, "A3", "Docente: "+lista.Docente.Nombre)
	}
	if lista.FechaLimite != nil {
		f.SetCellValue(hoja, "A4", "Fecha límite: "+lista.FechaLimite.Format("02/01/2006"))
	}

	f.SetCellValue(hoja, "A6", "Material")
	f.SetCellValue(hoja, "B6", "Categoría")
	f.SetCellValue(hoja, "C6", "Cantidad")

	estilo, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetCellStyle(hoja, "A6", "C6", estilo)
	}

	for i, fila := range filas {
		rowNum := 7 + i
		f.SetCellValue(hoja, fmt.Sprintf("A%d", rowNum), fila.nombre)
		f.SetCellValue(hoja, fmt.Sprintf("B%d", rowNum), fila.categoria)
		f.SetCellValue(hoja, fmt.Sprintf("C%d", rowNum), fila.cantidad)
	}

	f.SetColWidth(hoja, "A", "A", 40)
	f.SetColWidth(hoja, "B", "B", 25)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("error al generar Excel de lista", zap.Error(err))
		return nil, "", err
	}

	nombre := fmt.Sprintf("lista_%s.xlsx", lista.ListaID)
	return buf, nombre, nil
}

func (s *reporteService) ExportarListaPDF(ctx context.Context, listaID string) (*bytes.Buffer, string, error) {
	lista, filas, err := s.cargarLista(ctx, listaID)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	// tildes y eñes del contenido en español
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(lista.Nombre))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, tr("Nivel: "+lista.NivelEducativo))
	pdf.Ln(7)
	if lista.Docente != nil {
		pdf.Cell(0, 7, tr("Docente: "+lista.Docente.Nombre))
		pdf.Ln(7)
	}
	if lista.FechaLimite != nil {
		pdf.Cell(0, 7, tr("Fecha límite: "+lista.FechaLimite.Format("02/01/2006")))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(100, 8, tr("Material"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, tr("Categoría"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, tr("Cantidad"), "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, fila := range filas {
		pdf.CellFormat(100, 8, tr(fila.nombre), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, tr(fila.categoria), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", fila.cantidad), "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.logger.Error("error al generar PDF de lista", zap.Error(err))
		return nil, "", err
	}

	nombre := fmt.Sprintf("lista_%s.pdf", lista.ListaID)
	return &buf, nombre, nil
}

func (s *reporteService) CalendarioFechasLimite(ctx context.Context) (*bytes.Buffer, string, error) {
	listas, err := s.repo.Lista.ListConFechaLimite(ctx)
	if err != nil {
		return nil, "", err
	}
	if len(listas) == 0 {
		return nil, "", ErrReporteSinDatos
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Sistema de Utiles Escolares//ES")

	for _, lista := range listas {
		evento := cal.AddEvent("lista-" + lista.ListaID + "@utiles-escolares")
		evento.SetSummary("Entrega de útiles: " + lista.Nombre)
		descripcion := "Nivel " + lista.NivelEducativo
		if lista.Docente != nil {
			descripcion += ", docente " + lista.Docente.Nombre
		}
		evento.SetDescription(descripcion)
		evento.SetAllDayStartAt(*lista.FechaLimite)
		evento.SetAllDayEndAt(lista.FechaLimite.Add(24 * time.Hour))
		evento.SetDtStampTime(time.Now())
	}

	var buf bytes.Buffer
	if err := cal.SerializeTo(&buf); err != nil {
		s.logger.Error("error al serializar calendario", zap.Error(err))
		return nil, "", err
	}
	return &buf, "fechas_limite.ics", nil
}
