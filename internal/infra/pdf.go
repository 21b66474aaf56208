package infra

// pdf.go — Certificado Sanitario de Movilización rendered with go-pdf/fpdf.
// A4 portrait with:
//   - Agency header and certificate number
//   - Requester block (nombre, cédula, teléfono)
//   - Origin / destination predio blocks
//   - Animal table (especie, identificador, categoría, raza, sexo, color, edad)
//   - Bird table (galpón, categoría, edad, total)
//   - Transport block
//   - Validity window and technician signature line
//
// The renderer works off the flat dto.Certificado alone; it never reaches
// back into the movilización aggregate. The document is returned as bytes so
// the handler can stream it directly.

import (
	"bytes"
	"fmt"

	"github.com/Xdennizhu20X/back-abg/internal/dto"

	"github.com/go-pdf/fpdf"
)

func GenerarCertificadoPDF(cert dto.Certificado) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, tr("Agencia de Regulación y Control de la"), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 7, tr("Bioseguridad y Cuarentena para Galápagos"), "", 1, "C", false, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 8, tr("CERTIFICADO SANITARIO DE MOVILIZACIÓN"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, tr("N° "+cert.Numero), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, tr("Isla Santa Cruz, Provincia de Galápagos"), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, tr("Fecha de emisión: "+cert.FechaEmision.Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	seccion := func(titulo string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(contentW, 6, tr(titulo), "1", 1, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
	}
	campo := func(etiqueta, valor string) {
		if valor == "" {
			valor = "-"
		}
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(48, 5, tr(etiqueta), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW-48, 5, tr(valor), "", 1, "L", false, 0, "")
	}

	// ── Solicitante ──────────────────────────────────────────────────────────
	seccion("DATOS DEL SOLICITANTE")
	campo("Nombre:", cert.Solicitante.Nombre)
	campo("Cédula:", cert.Solicitante.Cedula)
	campo("Teléfono:", cert.Solicitante.Telefono)
	pdf.Ln(2)

	// ── Predios ──────────────────────────────────────────────────────────────
	seccion("PREDIO DE ORIGEN")
	campo("Nombre:", cert.Origen.Nombre)
	campo("Ubicación:", cert.Origen.Ubicacion)
	campo("Parroquia:", cert.Origen.Parroquia)
	campo("Dirección:", cert.Origen.Direccion)
	pdf.Ln(2)

	seccion("PREDIO DE DESTINO")
	campo("Nombre:", cert.Destino.Nombre)
	campo("Ubicación:", cert.Destino.Ubicacion)
	campo("Parroquia:", cert.Destino.Parroquia)
	campo("Localidad:", cert.Destino.Localidad)
	campo("Condición de tenencia:", cert.Destino.CondicionTenencia)
	pdf.Ln(2)

	// ── Animales ─────────────────────────────────────────────────────────────
	if len(cert.Animales) > 0 {
		seccion(fmt.Sprintf("ANIMALES (%d)", len(cert.Animales)))
		cols := []struct {
			titulo string
			ancho  float64
		}{
			{"Especie", 28}, {"Identificador", 32}, {"Categoría", 26},
			{"Raza", 26}, {"Sexo", 16}, {"Color", 24}, {"Edad", 15},
		}
		pdf.SetFont("Helvetica", "B", 8)
		for _, c := range cols {
			pdf.CellFormat(c.ancho, 5, tr(c.titulo), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
		for _, a := range cert.Animales {
			valores := []string{
				a.Especie, a.Identificador, a.Categoria,
				a.Raza, a.Sexo, a.Color, fmt.Sprintf("%d", a.Edad),
			}
			for i, v := range valores {
				if v == "" {
					v = "-"
				}
				pdf.CellFormat(cols[i].ancho, 5, tr(v), "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(2)
	}

	// ── Aves ─────────────────────────────────────────────────────────────────
	if len(cert.Aves) > 0 {
		seccion(fmt.Sprintf("AVES (%d galpones)", len(cert.Aves)))
		anchos := []float64{45, 45, 35, 42}
		titulos := []string{"Galpón", "Categoría", "Edad", "Total de aves"}
		pdf.SetFont("Helvetica", "B", 8)
		for i, t := range titulos {
			pdf.CellFormat(anchos[i], 5, tr(t), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
		for _, av := range cert.Aves {
			fila := []string{av.Galpon, av.Categoria, av.Edad, av.Total}
			for i, v := range fila {
				if v == "" {
					v = "-"
				}
				pdf.CellFormat(anchos[i], 5, tr(v), "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(2)
	}

	// ── Transporte ───────────────────────────────────────────────────────────
	seccion("TRANSPORTE")
	switch {
	case !cert.Transporte.Registrado:
		campo("Vía:", "No registrada")
	case cert.Transporte.EsTerrestre:
		campo("Vía:", "Terrestre")
		campo("Transportista:", cert.Transporte.Transportista)
		campo("Placa:", cert.Transporte.Placa)
		campo("Tipo de transporte:", cert.Transporte.Tipo)
		campo("Teléfono:", cert.Transporte.Telefono)
		campo("Cédula:", cert.Transporte.Cedula)
	default:
		campo("Vía:", "Otra")
		campo("Detalle:", cert.Transporte.DetalleOtro)
	}
	pdf.Ln(2)

	// ── Validez ──────────────────────────────────────────────────────────────
	seccion("VALIDEZ DEL CERTIFICADO")
	campo("Tiempo de validez:", cert.TiempoValidez)
	campo("Horario de movilización:", cert.HoraInicio+" a "+cert.HoraFin)
	pdf.Ln(10)

	// ── Firma ────────────────────────────────────────────────────────────────
	firmaW := 70.0
	firmaX := (pageW - firmaW) / 2
	pdf.Line(firmaX, pdf.GetY(), firmaX+firmaW, pdf.GetY())
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, tr(cert.NombreTecnico), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4, tr("Técnico responsable"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render certificado: %w", err)
	}
	return buf.Bytes(), nil
}
