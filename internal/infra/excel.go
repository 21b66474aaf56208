package infra

import (
	"bytes"
	"fmt"

	"github.com/Xdennizhu20X/back-abg/internal/model"

	"github.com/xuri/excelize/v2"
)

// GenerarReporteExcel renders the filtered movilizaciones as an xlsx workbook,
// one row per movement with requester and predio data flattened in.
func GenerarReporteExcel(movs []model.Movilizacion) ([]byte, error) {
	f := excelize.NewFile()
	const hoja = "Movilizaciones"
	f.SetSheetName("Sheet1", hoja)

	headers := []string{
		"N°", "Fecha de solicitud", "Solicitante", "Cédula",
		"Predio origen", "Predio destino", "Estado",
		"Animales", "Aves", "Técnico", "Fecha de aprobación",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(hoja, cell, h); err != nil {
			return nil, fmt.Errorf("excel: header %q: %w", h, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2563EB"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: header style: %w", err)
	}
	fin, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(hoja, "A1", fin, headerStyle); err != nil {
		return nil, fmt.Errorf("excel: apply header style: %w", err)
	}

	for i, m := range movs {
		fila := i + 2

		solicitante, cedula := "", ""
		if m.Usuario != nil {
			solicitante, cedula = m.Usuario.Nombre, m.Usuario.CI
		}
		origen, destino := "", ""
		if m.PredioOrigen != nil {
			origen = m.PredioOrigen.Nombre
		}
		if m.PredioDestino != nil {
			destino = m.PredioDestino.Nombre
		}
		tecnico := ""
		if m.Validacion != nil && m.Validacion.NombreTecnico != nil {
			tecnico = *m.Validacion.NombreTecnico
		}
		aprobacion := ""
		if m.FechaAprobacion != nil {
			aprobacion = m.FechaAprobacion.Format("02/01/2006")
		}
		totalAves := 0
		for _, av := range m.Aves {
			if av.TotalAves != nil {
				totalAves += *av.TotalAves
			}
		}

		valores := []interface{}{
			m.ID,
			m.FechaSolicitud.Format("02/01/2006"),
			solicitante,
			cedula,
			origen,
			destino,
			m.Estado,
			len(m.Animales),
			totalAves,
			tecnico,
			aprobacion,
		}
		for col, v := range valores {
			cell, _ := excelize.CoordinatesToCellName(col+1, fila)
			if err := f.SetCellValue(hoja, cell, v); err != nil {
				return nil, fmt.Errorf("excel: fila %d: %w", fila, err)
			}
		}
	}

	// Column widths tuned by eye for the header labels.
	_ = f.SetColWidth(hoja, "A", "A", 8)
	_ = f.SetColWidth(hoja, "B", "B", 18)
	_ = f.SetColWidth(hoja, "C", "C", 28)
	_ = f.SetColWidth(hoja, "D", "F", 20)
	_ = f.SetColWidth(hoja, "G", "I", 12)
	_ = f.SetColWidth(hoja, "J", "K", 22)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
