package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Xdennizhu20X/back-abg/internal/apierror"
	"github.com/Xdennizhu20X/back-abg/internal/config"
	"github.com/Xdennizhu20X/back-abg/internal/dto"
	"github.com/Xdennizhu20X/back-abg/internal/infra"
	"github.com/Xdennizhu20X/back-abg/internal/model"
	"github.com/Xdennizhu20X/back-abg/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Colores de presentación para el gráfico de estados.
var coloresEstado = map[string]string{
	model.EstadoPendiente:  "#fbbf24",
	model.EstadoFinalizado: "#10b981",
	model.EstadoAlerta:     "#ef4444",
	model.EstadoAprobado:   "#3b82f6",
}

const colorEstadoDefecto = "#6b7280"

type MovilizacionService interface {
	RegistrarCompleta(ctx context.Context, solicitante *model.Usuario, req dto.RegistroCompletoRequest) (*model.Movilizacion, error)
	Listar(ctx context.Context, f dto.MovilizacionFilter) ([]model.Movilizacion, error)
	Obtener(ctx context.Context, id uint) (*model.Movilizacion, error)
	ObtenerAnimales(ctx context.Context, id uint) ([]model.Animal, error)
	// ActualizarEstado returns the updated record plus a non-empty warning
	// when the committed change could not be mailed to the requester.
	ActualizarEstado(ctx context.Context, id uint, nuevoEstado string) (*model.Movilizacion, string, error)
	Validar(ctx context.Context, id uint, tecnico *model.Usuario, req dto.ValidacionRequest) (*model.Movilizacion, error)
	Rechazar(ctx context.Context, id uint, tecnico *model.Usuario, req dto.RechazoRequest) (*model.Movilizacion, error)
	EscalarPendientes(ctx context.Context) (int, error)
	Estadisticas(ctx context.Context) ([]dto.EstadoCount, error)
	ContarPendientes(ctx context.Context) (int64, error)
	GenerarCertificado(ctx context.Context, id uint) ([]byte, error)
}

type movilizacionService struct {
	movilizaciones repository.MovilizacionRepository
	usuarios       repository.UsuarioRepository
	cfg            *config.Config
	notificador    Notificador
	mailer         Mailer
}

func NewMovilizacionService(
	movilizaciones repository.MovilizacionRepository,
	usuarios repository.UsuarioRepository,
	cfg *config.Config,
	notificador Notificador,
	mailer Mailer,
) MovilizacionService {
	return &movilizacionService{
		movilizaciones: movilizaciones,
		usuarios:       usuarios,
		cfg:            cfg,
		notificador:    notificador,
		mailer:         mailer,
	}
}

// ─── Registro completo ───────────────────────────────────────────────────────

func (s *movilizacionService) RegistrarCompleta(ctx context.Context, solicitante *model.Usuario, req dto.RegistroCompletoRequest) (*model.Movilizacion, error) {
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, apierror.Validation("El formato de la fecha no es válido")
	}
	if req.PredioOrigen == nil || req.PredioOrigen.Nombre == "" || req.PredioOrigen.Parroquia == "" {
		return nil, apierror.Validation("El predio de origen requiere nombre y parroquia")
	}
	if req.Destino == nil || req.Destino.NombreNormalizado() == "" || req.Destino.Parroquia == "" {
		return nil, apierror.Validation("El predio de destino requiere nombre_predio y parroquia")
	}

	origen := &model.Predio{
		UsuarioID:           solicitante.ID,
		Nombre:              req.PredioOrigen.Nombre,
		Ubicacion:           req.PredioOrigen.Ubicacion,
		Parroquia:           strPtr(req.PredioOrigen.Parroquia),
		Tipo:                model.PredioOrigen,
		Localidad:           req.PredioOrigen.Localidad,
		Direccion:           req.PredioOrigen.Direccion,
		EsCentroFaenamiento: req.PredioOrigen.EsCentroFaenamiento,
	}
	destino := &model.Predio{
		UsuarioID:           solicitante.ID,
		Nombre:              req.Destino.NombreNormalizado(),
		Ubicacion:           req.Destino.Ubicacion,
		Parroquia:           strPtr(req.Destino.Parroquia),
		Tipo:                model.PredioDestino,
		Localidad:           req.Destino.Localidad,
		CondicionTenencia:   req.Destino.CondicionTenencia,
		Direccion:           req.Destino.Direccion,
		EsCentroFaenamiento: req.Destino.EsCentroFaenamiento,
	}

	mov := &model.Movilizacion{
		UsuarioID:      solicitante.ID,
		FechaSolicitud: fecha,
		Estado:         model.EstadoPendiente,
	}

	animales := make([]model.Animal, len(req.Animales))
	for i, a := range req.Animales {
		edad := 0
		if a.Edad != nil {
			edad = *a.Edad
		}
		animales[i] = model.Animal{
			Especie:       a.Especie,
			Identificador: a.IdentificadorNormalizado(),
			Categoria:     a.Categoria,
			Raza:          a.Raza,
			Sexo:          a.Sexo,
			Color:         a.Color,
			Edad:          edad,
			Comerciante:   a.Comerciante,
			Observaciones: a.Observaciones,
		}
	}

	aves := make([]model.Ave, len(req.Aves))
	for i, a := range req.Aves {
		aves[i] = model.Ave{
			NumeroGalpon:  a.GalponNormalizado(),
			Categoria:     a.Categoria,
			Edad:          a.Edad,
			TotalAves:     a.TotalNormalizado(),
			Observaciones: a.Observaciones,
		}
	}

	var transporte *model.Transporte
	if t := req.Transporte; t != nil {
		transporte = &model.Transporte{
			EsTerrestre:           t.EsTerrestreNormalizado(),
			NombreTransportista:   t.NombreTransportista,
			Placa:                 t.Placa,
			TipoTransporte:        t.TipoTransporte,
			TelefonoTransportista: t.TelefonoTransportista,
			CedulaTransportista:   t.CedulaTransportista,
			DetalleOtro:           t.DetalleOtro,
		}
	}

	if err := s.movilizaciones.CrearCompleta(ctx, origen, destino, mov, animales, aves, transporte); err != nil {
		return nil, err
	}
	mov.PredioOrigen = origen
	mov.PredioDestino = destino
	mov.Usuario = solicitante

	s.notificarRegistro(ctx, solicitante, mov)
	return mov, nil
}

// notificarRegistro runs after the commit; every enqueue is independent and
// failures stay in the logs.
func (s *movilizacionService) notificarRegistro(ctx context.Context, solicitante *model.Usuario, mov *model.Movilizacion) {
	enlace := fmt.Sprintf("%s/api/movilizaciones/%d/certificado", s.cfg.BaseURL, mov.ID)
	s.notificador.EncolarEmail(ctx, solicitante.Email,
		fmt.Sprintf("Registro Exitoso - Movilización #%d", mov.ID),
		htmlRegistroMovilizacion(solicitante.Nombre, mov.ID, enlace))

	admins, err := s.usuarios.ListByRol(ctx, model.RolAdmin)
	if err != nil {
		log.Error().Err(err).Msg("movilizacion: no se pudo listar admins para notificar registro")
		return
	}
	for _, admin := range admins {
		s.notificador.EncolarEmail(ctx, admin.Email,
			fmt.Sprintf("Nueva Movilización para Revisión - #%d", mov.ID),
			htmlMovilizacionParaRevision(mov.ID, solicitante.Nombre))
	}
}

// ─── Consultas ───────────────────────────────────────────────────────────────

func (s *movilizacionService) Listar(ctx context.Context, f dto.MovilizacionFilter) ([]model.Movilizacion, error) {
	return s.movilizaciones.List(ctx, f)
}

func (s *movilizacionService) Obtener(ctx context.Context, id uint) (*model.Movilizacion, error) {
	return s.buscar(ctx, id)
}

func (s *movilizacionService) ObtenerAnimales(ctx context.Context, id uint) ([]model.Animal, error) {
	if _, err := s.buscar(ctx, id); err != nil {
		return nil, err
	}
	return s.movilizaciones.ListAnimales(ctx, id)
}

func (s *movilizacionService) ContarPendientes(ctx context.Context) (int64, error) {
	return s.movilizaciones.CountPendientes(ctx)
}

func (s *movilizacionService) Estadisticas(ctx context.Context) ([]dto.EstadoCount, error) {
	filas, err := s.movilizaciones.CountPorEstado(ctx)
	if err != nil {
		return nil, err
	}
	datos := make([]dto.EstadoCount, len(filas))
	for i, fila := range filas {
		color, ok := coloresEstado[fila.Estado]
		if !ok {
			color = colorEstadoDefecto
		}
		datos[i] = dto.EstadoCount{Estado: fila.Estado, Total: fila.Total, Color: color}
	}
	return datos, nil
}

// ─── Cambios de estado ───────────────────────────────────────────────────────

func (s *movilizacionService) ActualizarEstado(ctx context.Context, id uint, nuevoEstado string) (*model.Movilizacion, string, error) {
	if nuevoEstado != model.EstadoAlerta && nuevoEstado != model.EstadoFinalizado {
		return nil, "", apierror.Validation(`Solo se permite cambiar a "alerta" o "finalizado"`)
	}

	mov, err := s.buscar(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if mov.EsTerminal() {
		return nil, "", apierror.Conflict("No se puede modificar una movilización " + mov.Estado)
	}

	ahora := time.Now()
	switch nuevoEstado {
	case model.EstadoAlerta:
		mov.FechaAlerta = &ahora
	case model.EstadoFinalizado:
		mov.FechaFinalizacion = &ahora
		if mov.Estado == model.EstadoAlerta {
			mov.FechaResolucionAlerta = &ahora
		}
	}
	mov.Estado = nuevoEstado

	if err := s.movilizaciones.Update(ctx, mov); err != nil {
		return nil, "", err
	}

	// Correo sincrónico: este endpoint informa al llamador si el aviso falló.
	warning := ""
	if mov.Usuario == nil || mov.Usuario.Email == "" {
		warning = fmt.Sprintf("Estado actualizado a %s, pero no se pudo enviar correo: usuario no tiene email.", nuevoEstado)
	} else if err := s.mailer.Send(mov.Usuario.Email,
		"Movilización "+nuevoEstado,
		s.cuerpoCambioEstado(mov, nuevoEstado)); err != nil {
		log.Error().Err(err).Uint("movilizacion_id", mov.ID).Msg("movilizacion: fallo el correo de cambio de estado")
		warning = fmt.Sprintf("Estado actualizado a %s, pero hubo un error al enviar el correo", nuevoEstado)
	}
	return mov, warning, nil
}

func (s *movilizacionService) cuerpoCambioEstado(mov *model.Movilizacion, nuevoEstado string) string {
	if nuevoEstado == model.EstadoAlerta && mov.Usuario != nil {
		return htmlAlertaPorVencimiento(mov.Usuario.Nombre, mov.ID)
	}
	nombre := ""
	if mov.Usuario != nil {
		nombre = mov.Usuario.Nombre
	}
	obs := ""
	if mov.ObservacionesTecnico != nil {
		obs = *mov.ObservacionesTecnico
	}
	return htmlCambioEstado(nombre, mov.ID, nuevoEstado, obs)
}

func (s *movilizacionService) Validar(ctx context.Context, id uint, tecnico *model.Usuario, req dto.ValidacionRequest) (*model.Movilizacion, error) {
	mov, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov.EsTerminal() {
		return nil, apierror.Conflict("No se puede modificar una movilización " + mov.Estado)
	}

	ahora := time.Now()
	mov.Estado = model.EstadoAprobado
	mov.FechaAprobacion = &ahora
	mov.TecnicoID = &tecnico.ID

	val := &model.Validacion{
		MovilizacionID: mov.ID,
		TiempoValidez:  req.TiempoValidez,
		HoraInicio:     req.HoraInicio,
		HoraFin:        req.HoraFin,
		FechaEmision:   ahora,
		FirmaTecnico:   req.FirmaTecnico,
		NombreTecnico:  &tecnico.Nombre,
	}
	if err := s.movilizaciones.GuardarRevision(ctx, mov, val); err != nil {
		return nil, err
	}
	mov.Validacion = val

	if mov.Usuario != nil {
		s.notificador.EncolarEmail(ctx, mov.Usuario.Email,
			"Movilización aprobada",
			htmlCambioEstado(mov.Usuario.Nombre, mov.ID, model.EstadoAprobado, ""))
	}
	return mov, nil
}

func (s *movilizacionService) Rechazar(ctx context.Context, id uint, tecnico *model.Usuario, req dto.RechazoRequest) (*model.Movilizacion, error) {
	mov, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov.EsTerminal() {
		return nil, apierror.Conflict("No se puede modificar una movilización " + mov.Estado)
	}

	ahora := time.Now()
	mov.Estado = model.EstadoRechazado
	mov.FechaAprobacion = nil
	mov.TecnicoID = &tecnico.ID
	mov.ObservacionesTecnico = &req.Observaciones

	// El rechazo también deja Validacion, con ventana nula, como rastro de
	// que hubo revisión.
	val := &model.Validacion{
		MovilizacionID: mov.ID,
		FechaEmision:   ahora,
		FirmaTecnico:   req.FirmaTecnico,
		NombreTecnico:  &tecnico.Nombre,
	}
	if err := s.movilizaciones.GuardarRevision(ctx, mov, val); err != nil {
		return nil, err
	}
	mov.Validacion = val

	if mov.Usuario != nil {
		s.notificador.EncolarEmail(ctx, mov.Usuario.Email,
			"Movilización rechazada",
			htmlCambioEstado(mov.Usuario.Nombre, mov.ID, model.EstadoRechazado, req.Observaciones))
	}
	return mov, nil
}

// EscalarPendientes flips every pendiente older than the configured threshold
// to alerta. Idempotent: rows already in alerta are not selected again.
func (s *movilizacionService) EscalarPendientes(ctx context.Context) (int, error) {
	ahora := time.Now()
	cutoff := ahora.Add(-time.Duration(s.cfg.AlertaUmbralHoras) * time.Hour)

	escaladas, err := s.movilizaciones.EscalarPendientes(ctx, cutoff, ahora)
	if err != nil {
		return 0, err
	}
	for i := range escaladas {
		mov := &escaladas[i]
		if mov.Usuario == nil || mov.Usuario.Email == "" {
			continue
		}
		s.notificador.EncolarEmail(ctx, mov.Usuario.Email,
			"Alerta Automática: Movilización Pendiente por 72 horas",
			htmlAlertaPorVencimiento(mov.Usuario.Nombre, mov.ID))
	}
	return len(escaladas), nil
}

// ─── Certificado ─────────────────────────────────────────────────────────────

func (s *movilizacionService) GenerarCertificado(ctx context.Context, id uint) ([]byte, error) {
	mov, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	pdfBytes, err := infra.GenerarCertificadoPDF(CertificadoDe(mov))
	if err != nil {
		log.Error().Err(err).Uint("movilizacion_id", id).Msg("movilizacion: fallo la generación del certificado")
		return nil, apierror.Render("Ocurrió un error inesperado al generar el certificado. Por favor, contacte a soporte.")
	}
	return pdfBytes, nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (s *movilizacionService) buscar(ctx context.Context, id uint) (*model.Movilizacion, error) {
	mov, err := s.movilizaciones.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Movilización no encontrada")
		}
		return nil, err
	}
	return mov, nil
}

func parseFecha(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("fecha vacía")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func strPtr(s string) *string { return &s }
