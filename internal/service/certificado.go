package service

import (
	"fmt"
	"time"

	"github.com/Xdennizhu20X/back-abg/internal/dto"
	"github.com/Xdennizhu20X/back-abg/internal/model"
)

// Ventana de validez estándar cuando el técnico no fija una propia.
const (
	validezPorDefecto    = "48 horas"
	horaInicioPorDefecto = "08:00"
	horaFinPorDefecto    = "20:00"
)

// NumeroCertificado formats the certificate number from the movement id,
// zero-padded to six digits.
func NumeroCertificado(id uint) string {
	return fmt.Sprintf("%06d", id)
}

// CertificadoDe flattens the aggregate into the render-ready certificate data:
// requester, both predios, transport, one row per animal and per galpón, and
// the validity window (technician overrides win over the defaults).
// Pure: no clock reads beyond the emission fallback, no I/O.
func CertificadoDe(mov *model.Movilizacion) dto.Certificado {
	cert := dto.Certificado{
		Numero:        NumeroCertificado(mov.ID),
		FechaEmision:  time.Now(),
		TiempoValidez: validezPorDefecto,
		HoraInicio:    horaInicioPorDefecto,
		HoraFin:       horaFinPorDefecto,
		NombreTecnico: "Técnico Responsable",
	}

	if u := mov.Usuario; u != nil {
		cert.Solicitante = dto.CertificadoSolicitante{
			Nombre:   u.Nombre,
			Cedula:   u.CI,
			Telefono: derefStr(u.Telefono),
		}
	}
	if p := mov.PredioOrigen; p != nil {
		cert.Origen = dto.CertificadoPredio{
			Nombre:    p.Nombre,
			Ubicacion: p.Ubicacion,
			Parroquia: derefStr(p.Parroquia),
			Direccion: derefStr(p.Direccion),
		}
	}
	if p := mov.PredioDestino; p != nil {
		cert.Destino = dto.CertificadoPredio{
			Nombre:            p.Nombre,
			Ubicacion:         p.Ubicacion,
			Parroquia:         derefStr(p.Parroquia),
			Localidad:         derefStr(p.Localidad),
			CondicionTenencia: derefStr(p.CondicionTenencia),
		}
	}
	if t := mov.Transporte; t != nil {
		cert.Transporte = dto.CertificadoTransporte{
			Registrado:    true,
			EsTerrestre:   t.EsTerrestre,
			Transportista: derefStr(t.NombreTransportista),
			Placa:         derefStr(t.Placa),
			Tipo:          derefStr(t.TipoTransporte),
			Telefono:      derefStr(t.TelefonoTransportista),
			Cedula:        derefStr(t.CedulaTransportista),
			DetalleOtro:   derefStr(t.DetalleOtro),
		}
	}

	cert.Animales = make([]dto.CertificadoAnimal, len(mov.Animales))
	for i, a := range mov.Animales {
		cert.Animales[i] = dto.CertificadoAnimal{
			Especie:       derefStr(a.Especie),
			Identificador: derefStr(a.Identificador),
			Categoria:     derefStr(a.Categoria),
			Raza:          derefStr(a.Raza),
			Sexo:          derefStr(a.Sexo),
			Color:         derefStr(a.Color),
			Edad:          a.Edad,
		}
	}
	cert.Aves = make([]dto.CertificadoAve, len(mov.Aves))
	for i, av := range mov.Aves {
		cert.Aves[i] = dto.CertificadoAve{
			Galpon:    derefStr(av.NumeroGalpon),
			Categoria: derefStr(av.Categoria),
			Edad:      derefInt(av.Edad),
			Total:     derefInt(av.TotalAves),
		}
	}

	v := mov.Validacion
	if v == nil {
		return cert
	}
	if !v.FechaEmision.IsZero() {
		cert.FechaEmision = v.FechaEmision
	}
	if v.TiempoValidez != nil && *v.TiempoValidez != "" {
		cert.TiempoValidez = *v.TiempoValidez
	}
	if v.HoraInicio != nil && *v.HoraInicio != "" {
		cert.HoraInicio = *v.HoraInicio
	}
	if v.HoraFin != nil && *v.HoraFin != "" {
		cert.HoraFin = *v.HoraFin
	}
	if v.NombreTecnico != nil && *v.NombreTecnico != "" {
		cert.NombreTecnico = *v.NombreTecnico
	}
	if v.FirmaTecnico != nil {
		cert.FirmaTecnico = *v.FirmaTecnico
	}
	return cert
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%d", *n)
}
