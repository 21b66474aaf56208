package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Xdennizhu20X/back-abg/internal/apierror"
	"github.com/Xdennizhu20X/back-abg/internal/dto"
	"github.com/Xdennizhu20X/back-abg/internal/infra"
	"github.com/Xdennizhu20X/back-abg/internal/model"
	"github.com/Xdennizhu20X/back-abg/internal/repository"

	"github.com/rs/zerolog/log"
)

type ReporteService interface {
	GenerarExcel(ctx context.Context, f dto.ReporteFilter) ([]byte, error)
	GenerarExcelPorCedula(ctx context.Context, cedula string) ([]byte, error)
	DatosGrafico(ctx context.Context, cedula, fechaDesde, fechaHasta string) (*dto.DatosGrafico, error)
	DatosGraficoGlobal(ctx context.Context, fechaDesde, fechaHasta string) (*dto.DatosGrafico, error)
}

type reporteService struct {
	movilizaciones repository.MovilizacionRepository
}

func NewReporteService(movilizaciones repository.MovilizacionRepository) ReporteService {
	return &reporteService{movilizaciones: movilizaciones}
}

func (s *reporteService) GenerarExcel(ctx context.Context, f dto.ReporteFilter) ([]byte, error) {
	desde, hasta, err := expandirRangoFechas(f)
	if err != nil {
		return nil, apierror.Validation("El año o mes del filtro no es válido")
	}

	movs, err := s.movilizaciones.List(ctx, dto.MovilizacionFilter{
		Estado:      f.Estado,
		FechaInicio: desde,
		FechaFin:    hasta,
		CI:          f.Cedula,
	})
	if err != nil {
		return nil, err
	}
	return s.render(movs)
}

func (s *reporteService) GenerarExcelPorCedula(ctx context.Context, cedula string) ([]byte, error) {
	if cedula == "" {
		return nil, apierror.Validation("El número de cédula es requerido.")
	}
	movs, err := s.movilizaciones.List(ctx, dto.MovilizacionFilter{CI: cedula})
	if err != nil {
		return nil, err
	}
	return s.render(movs)
}

func (s *reporteService) DatosGrafico(ctx context.Context, cedula, fechaDesde, fechaHasta string) (*dto.DatosGrafico, error) {
	if cedula == "" {
		return nil, apierror.Validation("El número de cédula es requerido.")
	}
	return s.totales(ctx, dto.MovilizacionFilter{CI: cedula, FechaInicio: fechaDesde, FechaFin: fechaHasta})
}

func (s *reporteService) DatosGraficoGlobal(ctx context.Context, fechaDesde, fechaHasta string) (*dto.DatosGrafico, error) {
	return s.totales(ctx, dto.MovilizacionFilter{FechaInicio: fechaDesde, FechaFin: fechaHasta})
}

func (s *reporteService) totales(ctx context.Context, f dto.MovilizacionFilter) (*dto.DatosGrafico, error) {
	movs, err := s.movilizaciones.List(ctx, f)
	if err != nil {
		return nil, err
	}
	datos := &dto.DatosGrafico{TotalMovilizaciones: len(movs)}
	for _, m := range movs {
		datos.TotalAnimales += len(m.Animales)
		for _, ave := range m.Aves {
			if ave.TotalAves != nil {
				datos.TotalAves += *ave.TotalAves
			}
		}
	}
	return datos, nil
}

func (s *reporteService) render(movs []model.Movilizacion) ([]byte, error) {
	buffer, err := infra.GenerarReporteExcel(movs)
	if err != nil {
		log.Error().Err(err).Msg("reporte: fallo la generación del xlsx")
		return nil, apierror.Render("Error al generar el reporte")
	}
	return buffer, nil
}

// expandirRangoFechas resolves the año/mes shorthand into a concrete date
// range. Precedence: mes específico > rango de meses > año completo. Without
// año, the explicit fechaDesde/fechaHasta pass through untouched.
func expandirRangoFechas(f dto.ReporteFilter) (string, string, error) {
	if f.Anio == "" {
		return f.FechaDesde, f.FechaHasta, nil
	}
	year, err := strconv.Atoi(f.Anio)
	if err != nil {
		return "", "", err
	}

	mesInicio, mesFin := 1, 12
	switch {
	case f.Mes != "":
		m, err := strconv.Atoi(f.Mes)
		if err != nil || m < 1 || m > 12 {
			return "", "", fmt.Errorf("mes inválido: %q", f.Mes)
		}
		mesInicio, mesFin = m, m
	case f.MesDesde != "" && f.MesHasta != "":
		md, err := strconv.Atoi(f.MesDesde)
		if err != nil || md < 1 || md > 12 {
			return "", "", fmt.Errorf("mes inválido: %q", f.MesDesde)
		}
		mh, err := strconv.Atoi(f.MesHasta)
		if err != nil || mh < 1 || mh > 12 {
			return "", "", fmt.Errorf("mes inválido: %q", f.MesHasta)
		}
		mesInicio, mesFin = md, mh
	}

	desde := time.Date(year, time.Month(mesInicio), 1, 0, 0, 0, 0, time.UTC)
	// Día 0 del mes siguiente = último día del mes.
	hasta := time.Date(year, time.Month(mesFin)+1, 0, 0, 0, 0, 0, time.UTC)
	return desde.Format("2006-01-02"), hasta.Format("2006-01-02"), nil
}
