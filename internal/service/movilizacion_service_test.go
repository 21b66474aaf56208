package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Xdennizhu20X/back-abg/internal/dto"
	"github.com/Xdennizhu20X/back-abg/internal/model"
	"github.com/Xdennizhu20X/back-abg/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory MovilizacionRepository stub ────────────────────────────────────

type stubMovilizacionRepo struct {
	seq         uint
	predioSeq   uint
	movs        map[uint]*model.Movilizacion
	fallarCrear bool
}

func newStubMovilizacionRepo() *stubMovilizacionRepo {
	return &stubMovilizacionRepo{movs: make(map[uint]*model.Movilizacion)}
}

var (
	_ repository.MovilizacionRepository = (*stubMovilizacionRepo)(nil)
	_ repository.UsuarioRepository      = (*stubUsuarioRepo)(nil)
)

func (r *stubMovilizacionRepo) CrearCompleta(_ context.Context, origen, destino *model.Predio, mov *model.Movilizacion, animales []model.Animal, aves []model.Ave, transporte *model.Transporte) error {
	if r.fallarCrear {
		// La transacción revienta: nada queda persistido.
		return errors.New("insert failed")
	}
	r.predioSeq++
	origen.ID = r.predioSeq
	r.predioSeq++
	destino.ID = r.predioSeq
	mov.PredioOrigenID = origen.ID
	mov.PredioDestinoID = destino.ID

	r.seq++
	mov.ID = r.seq
	for i := range animales {
		animales[i].MovilizacionID = mov.ID
	}
	for i := range aves {
		aves[i].MovilizacionID = mov.ID
	}
	if transporte != nil {
		transporte.MovilizacionID = mov.ID
	}
	mov.Animales = animales
	mov.Aves = aves
	mov.Transporte = transporte
	r.movs[mov.ID] = mov
	return nil
}

func (r *stubMovilizacionRepo) FindByID(_ context.Context, id uint) (*model.Movilizacion, error) {
	mov, ok := r.movs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return mov, nil
}

func (r *stubMovilizacionRepo) List(_ context.Context, f dto.MovilizacionFilter) ([]model.Movilizacion, error) {
	var out []model.Movilizacion
	for _, m := range r.movs {
		if f.UsuarioID != 0 && m.UsuarioID != f.UsuarioID {
			continue
		}
		if f.Estado != "" && m.Estado != f.Estado {
			continue
		}
		if f.CI != "" && (m.Usuario == nil || m.Usuario.CI != f.CI) {
			continue
		}
		if f.FechaInicio != "" {
			if desde, err := time.Parse("2006-01-02", f.FechaInicio); err == nil && m.FechaSolicitud.Before(desde) {
				continue
			}
		}
		if f.FechaFin != "" {
			if hasta, err := time.Parse("2006-01-02", f.FechaFin); err == nil && !m.FechaSolicitud.Before(hasta.AddDate(0, 0, 1)) {
				continue
			}
		}
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubMovilizacionRepo) ListAnimales(_ context.Context, movilizacionID uint) ([]model.Animal, error) {
	mov, ok := r.movs[movilizacionID]
	if !ok {
		return nil, nil
	}
	return mov.Animales, nil
}

func (r *stubMovilizacionRepo) Update(_ context.Context, mov *model.Movilizacion) error {
	if _, ok := r.movs[mov.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.movs[mov.ID] = mov
	return nil
}

func (r *stubMovilizacionRepo) GuardarRevision(_ context.Context, mov *model.Movilizacion, val *model.Validacion) error {
	if _, ok := r.movs[mov.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.movs[mov.ID] = mov
	if val != nil {
		if prev := mov.Validacion; prev != nil {
			val.ID = prev.ID
		} else {
			val.ID = mov.ID
		}
	}
	return nil
}

func (r *stubMovilizacionRepo) EscalarPendientes(_ context.Context, cutoff, ahora time.Time) ([]model.Movilizacion, error) {
	var vencidas []model.Movilizacion
	for _, m := range r.movs {
		if m.Estado != model.EstadoPendiente || m.FechaSolicitud.After(cutoff) {
			continue
		}
		m.Estado = model.EstadoAlerta
		t := ahora
		m.FechaAlerta = &t
		vencidas = append(vencidas, *m)
	}
	return vencidas, nil
}

func (r *stubMovilizacionRepo) CountPorEstado(_ context.Context) ([]repository.EstadoTotal, error) {
	conteo := map[string]int64{}
	for _, m := range r.movs {
		conteo[m.Estado]++
	}
	var filas []repository.EstadoTotal
	for estado, total := range conteo {
		filas = append(filas, repository.EstadoTotal{Estado: estado, Total: total})
	}
	return filas, nil
}

func (r *stubMovilizacionRepo) CountPendientes(_ context.Context) (int64, error) {
	var count int64
	for _, m := range r.movs {
		if m.Estado == model.EstadoPendiente {
			count++
		}
	}
	return count, nil
}

// ── Mailer stub (vía sincrónica) ─────────────────────────────────────────────

type stubMailer struct {
	fallar   bool
	enviados []correoCapturado
}

func (m *stubMailer) Send(to, subject, html string) error {
	if m.fallar {
		return errors.New("smtp: connection refused")
	}
	m.enviados = append(m.enviados, correoCapturado{To: to, Subject: subject, HTML: html})
	return nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type movFixture struct {
	repo     *stubMovilizacionRepo
	usuarios *stubUsuarioRepo
	notif    *capturaNotificador
	mailer   *stubMailer
	svc      MovilizacionService
}

func newMovFixture(t *testing.T) *movFixture {
	t.Helper()
	f := &movFixture{
		repo:     newStubMovilizacionRepo(),
		usuarios: newStubUsuarioRepo(),
		notif:    &capturaNotificador{},
		mailer:   &stubMailer{},
	}
	f.svc = NewMovilizacionService(f.repo, f.usuarios, newTestCfg(), f.notif, f.mailer)
	return f
}

func registroCompletoValido() dto.RegistroCompletoRequest {
	edad := 3
	total := 120
	especie := "bovino"
	placa := "GPS-1234"
	return dto.RegistroCompletoRequest{
		Fecha: "2024-01-10",
		Animales: []dto.AnimalRequest{
			// "identificacion" es el alias histórico de "identificador".
			{Identificacion: "COW001", Especie: &especie, Edad: &edad},
		},
		Aves: []dto.AveRequest{
			{Galpon: "G1", Total: &total},
		},
		PredioOrigen: &dto.PredioOrigenRequest{
			Nombre:    "Finca El Progreso",
			Parroquia: "Bellavista",
			Ubicacion: "Santa Cruz",
		},
		Destino: &dto.DestinoRequest{
			NombrePredio: "Camal Municipal",
			Parroquia:    "Puerto Ayora",
			Ubicacion:    "Santa Cruz",
		},
		Transporte: &dto.TransporteRequest{
			TipoVia: "terrestre",
			Placa:   &placa,
		},
	}
}

func (f *movFixture) seedMovilizacion(t *testing.T, estado string, solicitada time.Time) *model.Movilizacion {
	t.Helper()
	solicitante := seedUsuario(t, f.usuarios, "Pedro Gómez", "0955555555", "pedro@example.com", "clave1234", model.RolGanadero, model.EstadoCuentaActivo)

	f.repo.seq++
	mov := &model.Movilizacion{
		ID:             f.repo.seq,
		UsuarioID:      solicitante.ID,
		FechaSolicitud: solicitada,
		Estado:         estado,
		Usuario:        solicitante,
	}
	f.repo.movs[mov.ID] = mov
	return mov
}

// ── Tests: Registro completo ─────────────────────────────────────────────────

func TestRegistrarCompleta_Exitoso(t *testing.T) {
	f := newMovFixture(t)
	seedUsuario(t, f.usuarios, "Admin", "0999999999", "admin@abg.gob.ec", "clave1234", model.RolAdmin, model.EstadoCuentaActivo)
	solicitante := seedUsuario(t, f.usuarios, "Pedro Gómez", "0955555555", "pedro@example.com", "clave1234", model.RolGanadero, model.EstadoCuentaActivo)

	mov, err := f.svc.RegistrarCompleta(context.Background(), solicitante, registroCompletoValido())
	require.NoError(t, err)

	assert.Equal(t, model.EstadoPendiente, mov.Estado)
	assert.NotZero(t, mov.PredioOrigenID)
	assert.NotZero(t, mov.PredioDestinoID)

	// Aliases normalizados
	require.Len(t, mov.Animales, 1)
	require.NotNil(t, mov.Animales[0].Identificador)
	assert.Equal(t, "COW001", *mov.Animales[0].Identificador)
	require.Len(t, mov.Aves, 1)
	require.NotNil(t, mov.Aves[0].TotalAves)
	assert.Equal(t, 120, *mov.Aves[0].TotalAves)
	require.NotNil(t, mov.Transporte)
	assert.True(t, mov.Transporte.EsTerrestre)

	// Correo al solicitante + uno por admin
	require.Len(t, f.notif.enviados, 2)
	assert.Equal(t, "pedro@example.com", f.notif.enviados[0].To)
	assert.Contains(t, f.notif.enviados[0].HTML, "/api/movilizaciones/1/certificado")
	assert.Equal(t, "admin@abg.gob.ec", f.notif.enviados[1].To)
}

func TestRegistrarCompleta_FechaInvalida(t *testing.T) {
	f := newMovFixture(t)
	solicitante := seedUsuario(t, f.usuarios, "Pedro", "0955555555", "pedro@example.com", "clave1234", model.RolGanadero, model.EstadoCuentaActivo)

	req := registroCompletoValido()
	req.Fecha = "10-01-2024"
	_, err := f.svc.RegistrarCompleta(context.Background(), solicitante, req)
	assertAPIError(t, err, 400, "El formato de la fecha no es válido")
}

func TestRegistrarCompleta_FechaRFC3339Aceptada(t *testing.T) {
	f := newMovFixture(t)
	solicitante := seedUsuario(t, f.usuarios, "Pedro", "0955555555", "pedro@example.com", "clave1234", model.RolGanadero, model.EstadoCuentaActivo)

	req := registroCompletoValido()
	req.Fecha = "2024-01-10T08:30:00Z"
	mov, err := f.svc.RegistrarCompleta(context.Background(), solicitante, req)
	require.NoError(t, err)
	assert.Equal(t, 2024, mov.FechaSolicitud.Year())
}

func TestRegistrarCompleta_DestinoIncompleto(t *testing.T) {
	f := newMovFixture(t)
	solicitante := seedUsuario(t, f.usuarios, "Pedro", "0955555555", "pedro@example.com", "clave1234", model.RolGanadero, model.EstadoCuentaActivo)

	req := registroCompletoValido()
	req.Destino.NombrePredio = ""
	req.Destino.Nombre = ""
	_, err := f.svc.RegistrarCompleta(context.Background(), solicitante, req)
	assertAPIError(t, err, 400, "El predio de destino requiere nombre_predio y parroquia")
}

func TestRegistrarCompleta_FallaDePersistenciaNoDejaRastro(t *testing.T) {
	f := newMovFixture(t)
	solicitante := seedUsuario(t, f.usuarios, "Pedro", "0955555555", "pedro@example.com", "clave1234", model.RolGanadero, model.EstadoCuentaActivo)
	f.repo.fallarCrear = true

	_, err := f.svc.RegistrarCompleta(context.Background(), solicitante, registroCompletoValido())
	require.Error(t, err)
	assert.Empty(t, f.repo.movs)
	assert.Empty(t, f.notif.enviados, "no debe notificar una movilización que no se guardó")
}

// ── Tests: Cambios de estado ─────────────────────────────────────────────────

func TestActualizarEstado_SoloAlertaOFinalizado(t *testing.T) {
	f := newMovFixture(t)
	mov := f.seedMovilizacion(t, model.EstadoPendiente, time.Now())

	_, _, err := f.svc.ActualizarEstado(context.Background(), mov.ID, model.EstadoAprobado)
	assertAPIError(t, err, 400, `Solo se permite cambiar a "alerta" o "finalizado"`)
}

func TestActualizarEstado_TerminalDevuelveConflicto(t *testing.T) {
	f := newMovFixture(t)
	mov := f.seedMovilizacion(t, model.EstadoFinalizado, time.Now())

	_, _, err := f.svc.ActualizarEstado(context.Background(), mov.ID, model.EstadoAlerta)
	assertAPIError(t, err, 409, "No se puede modificar una movilización finalizado")
}

func TestActualizarEstado_NoEncontrada(t *testing.T) {
	f := newMovFixture(t)

	_, _, err := f.svc.ActualizarEstado(context.Background(), 99, model.EstadoFinalizado)
	assertAPIError(t, err, 404, "Movilización no encontrada")
}

func TestActualizarEstado_FinalizarDesdeAlertaResuelveLaAlerta(t *testing.T) {
	f := newMovFixture(t)
	mov := f.seedMovilizacion(t, model.EstadoAlerta, time.Now())

	actualizada, warning, err := f.svc.ActualizarEstado(context.Background(), mov.ID, model.EstadoFinalizado)
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Equal(t, model.EstadoFinalizado, actualizada.Estado)
	assert.NotNil(t, actualizada.FechaFinalizacion)
	assert.NotNil(t, actualizada.FechaResolucionAlerta)
	require.Len(t, f.mailer.enviados, 1)
	assert.Equal(t, "pedro@example.com", f.mailer.enviados[0].To)
}

func TestActualizarEstado_CorreoFallaPeroElCambioQueda(t *testing.T) {
	f := newMovFixture(t)
	mov := f.seedMovilizacion(t, model.EstadoPendiente, time.Now())
	f.mailer.fallar = true

	actualizada, warning, err := f.svc.ActualizarEstado(context.Background(), mov.ID, model.EstadoFinalizado)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoFinalizado, actualizada.Estado)
	assert.Equal(t, "Estado actualizado a finalizado, pero hubo un error al enviar el correo", warning)
}

func TestActualizarEstado_SinEmailDelSolicitante(t *testing.T) {
	f := newMovFixture(t)
	mov := f.seedMovilizacion(t, model.EstadoPendiente, time.Now())
	mov.Usuario.Email = ""

	_, warning, err := f.svc.ActualizarEstado(context.Background(), mov.ID, model.EstadoAlerta)
	require.NoError(t, err)
	assert.Equal(t, "Estado actualizado a alerta, pero no se pudo enviar correo: usuario no tiene email.", warning)
}

// ── Tests: Validación y rechazo ──────────────────────────────────────────────

func TestValidar_ApruebaYGuardaLaRevision(t *testing.T) {
	f := newMovFixture(t)
	mov := f.seedMovilizacion(t, model.EstadoPendiente, time.Now())
	tecnico := seedUsuario(t, f.usuarios, "Dra. Salas", "0944444444", "salas@abg.gob.ec", "clave1234", model.RolTecnico, model.EstadoCuentaActivo)

	validez := "24 horas"
	aprobada, err := f.svc.Validar(context.Background(), mov.ID, tecnico, dto.ValidacionRequest{TiempoValidez: &validez})
	require.NoError(t, err)

	assert.Equal(t, model.EstadoAprobado, aprobada.Estado)
	assert.NotNil(t, aprobada.FechaAprobacion)
	require.NotNil(t, aprobada.TecnicoID)
	assert.Equal(t, tecnico.ID, *aprobada.TecnicoID)
	require.NotNil(t, aprobada.Validacion)
	require.NotNil(t, aprobada.Validacion.NombreTecnico)
	assert.Equal(t, "Dra. Salas", *aprobada.Validacion.NombreTecnico)

	require.Len(t, f.notif.enviados, 1)
	assert.Equal(t, "Movilización aprobada", f.notif.enviados[0].Subject)
}

func TestValidar_TerminalDevuelveConflicto(t *testing.T) {
	f := newMovFixture(t)
	mov := f.seedMovilizacion(t, model.EstadoRechazado, time.Now())
	tecnico := seedUsuario(t, f.usuarios, "Dra. Salas", "0944444444", "salas@abg.gob.ec", "clave1234", model.RolTecnico, model.EstadoCuentaActivo)

	_, err := f.svc.Validar(context.Background(), mov.ID, tecnico, dto.ValidacionRequest{})
	assertAPIError(t, err, 409, "No se puede modificar una movilización rechazado")
}

func TestRechazar_GuardaObservacionesYAuditoria(t *testing.T) {
	f := newMovFixture(t)
	mov := f.seedMovilizacion(t, model.EstadoPendiente, time.Now())
	tecnico := seedUsuario(t, f.usuarios, "Dra. Salas", "0944444444", "salas@abg.gob.ec", "clave1234", model.RolTecnico, model.EstadoCuentaActivo)

	rechazada, err := f.svc.Rechazar(context.Background(), mov.ID, tecnico, dto.RechazoRequest{Observaciones: "Documentación incompleta"})
	require.NoError(t, err)

	assert.Equal(t, model.EstadoRechazado, rechazada.Estado)
	assert.Nil(t, rechazada.FechaAprobacion)
	require.NotNil(t, rechazada.ObservacionesTecnico)
	assert.Equal(t, "Documentación incompleta", *rechazada.ObservacionesTecnico)
	// El rechazo también deja rastro de revisión, con ventana nula.
	require.NotNil(t, rechazada.Validacion)
	assert.Nil(t, rechazada.Validacion.TiempoValidez)

	require.Len(t, f.notif.enviados, 1)
	assert.Contains(t, f.notif.enviados[0].HTML, "Documentación incompleta")
}

// ── Tests: Escalamiento a alerta ─────────────────────────────────────────────

func TestEscalarPendientes_SoloVencidasYEsIdempotente(t *testing.T) {
	f := newMovFixture(t)
	antigua1 := f.seedMovilizacion(t, model.EstadoPendiente, time.Now().Add(-80*time.Hour))
	antigua2 := f.seedMovilizacion(t, model.EstadoPendiente, time.Now().Add(-73*time.Hour))
	reciente := f.seedMovilizacion(t, model.EstadoPendiente, time.Now().Add(-2*time.Hour))
	f.seedMovilizacion(t, model.EstadoAlerta, time.Now().Add(-100*time.Hour))

	count, err := f.svc.EscalarPendientes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, model.EstadoAlerta, antigua1.Estado)
	assert.Equal(t, model.EstadoAlerta, antigua2.Estado)
	assert.Equal(t, model.EstadoPendiente, reciente.Estado)
	assert.Len(t, f.notif.enviados, 2)

	// Segunda pasada: las ya escaladas no vuelven a contarse.
	count, err = f.svc.EscalarPendientes(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Len(t, f.notif.enviados, 2)
}

// ── Tests: Consultas ─────────────────────────────────────────────────────────

func TestEstadisticas_AsignaColoresPorEstado(t *testing.T) {
	f := newMovFixture(t)
	f.seedMovilizacion(t, model.EstadoPendiente, time.Now())
	f.seedMovilizacion(t, model.EstadoPendiente, time.Now())
	f.seedMovilizacion(t, model.EstadoAprobado, time.Now())
	f.seedMovilizacion(t, model.EstadoRechazado, time.Now())

	datos, err := f.svc.Estadisticas(context.Background())
	require.NoError(t, err)
	require.Len(t, datos, 3)

	porEstado := map[string]dto.EstadoCount{}
	for _, d := range datos {
		porEstado[d.Estado] = d
	}
	assert.Equal(t, int64(2), porEstado[model.EstadoPendiente].Total)
	assert.Equal(t, "#fbbf24", porEstado[model.EstadoPendiente].Color)
	assert.Equal(t, "#3b82f6", porEstado[model.EstadoAprobado].Color)
	// Estado sin color propio cae al gris por defecto.
	assert.Equal(t, "#6b7280", porEstado[model.EstadoRechazado].Color)
}

func TestContarPendientes(t *testing.T) {
	f := newMovFixture(t)
	f.seedMovilizacion(t, model.EstadoPendiente, time.Now())
	f.seedMovilizacion(t, model.EstadoFinalizado, time.Now())

	total, err := f.svc.ContarPendientes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestObtenerAnimales_MovilizacionInexistente(t *testing.T) {
	f := newMovFixture(t)

	_, err := f.svc.ObtenerAnimales(context.Background(), 42)
	assertAPIError(t, err, 404, "Movilización no encontrada")
}

// ── Tests: Certificado ───────────────────────────────────────────────────────

func TestGenerarCertificado_DevuelvePDF(t *testing.T) {
	f := newMovFixture(t)
	mov := f.seedMovilizacion(t, model.EstadoAprobado, time.Now())
	parroquia := "Bellavista"
	mov.PredioOrigen = &model.Predio{Nombre: "Finca El Progreso", Ubicacion: "Santa Cruz", Parroquia: &parroquia}
	mov.PredioDestino = &model.Predio{Nombre: "Camal Municipal", Ubicacion: "Santa Cruz"}

	pdfBytes, err := f.svc.GenerarCertificado(context.Background(), mov.ID)
	require.NoError(t, err)
	require.Greater(t, len(pdfBytes), 4)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}
