package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Xdennizhu20X/back-abg/internal/apierror"
	"github.com/Xdennizhu20X/back-abg/internal/dto"
	"github.com/Xdennizhu20X/back-abg/internal/middleware"
	"github.com/Xdennizhu20X/back-abg/internal/model"
	"github.com/Xdennizhu20X/back-abg/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── MovilizacionService stub ─────────────────────────────────────────────────

type stubMovSvc struct {
	registrada     *model.Movilizacion
	filtroRecibido dto.MovilizacionFilter
	estadoRecibido string
	warning        string
	err            error
	escaladas      int
}

var _ service.MovilizacionService = (*stubMovSvc)(nil)

func (s *stubMovSvc) RegistrarCompleta(_ context.Context, _ *model.Usuario, _ dto.RegistroCompletoRequest) (*model.Movilizacion, error) {
	return s.registrada, s.err
}

func (s *stubMovSvc) Listar(_ context.Context, f dto.MovilizacionFilter) ([]model.Movilizacion, error) {
	s.filtroRecibido = f
	return []model.Movilizacion{}, s.err
}

func (s *stubMovSvc) Obtener(_ context.Context, _ uint) (*model.Movilizacion, error) {
	return s.registrada, s.err
}

func (s *stubMovSvc) ObtenerAnimales(_ context.Context, _ uint) ([]model.Animal, error) {
	return nil, s.err
}

func (s *stubMovSvc) ActualizarEstado(_ context.Context, _ uint, nuevoEstado string) (*model.Movilizacion, string, error) {
	s.estadoRecibido = nuevoEstado
	return s.registrada, s.warning, s.err
}

func (s *stubMovSvc) Validar(_ context.Context, _ uint, _ *model.Usuario, _ dto.ValidacionRequest) (*model.Movilizacion, error) {
	return s.registrada, s.err
}

func (s *stubMovSvc) Rechazar(_ context.Context, _ uint, _ *model.Usuario, _ dto.RechazoRequest) (*model.Movilizacion, error) {
	return s.registrada, s.err
}

func (s *stubMovSvc) EscalarPendientes(_ context.Context) (int, error) {
	return s.escaladas, s.err
}

func (s *stubMovSvc) Estadisticas(_ context.Context) ([]dto.EstadoCount, error) {
	return nil, s.err
}

func (s *stubMovSvc) ContarPendientes(_ context.Context) (int64, error) { return 0, s.err }

func (s *stubMovSvc) GenerarCertificado(_ context.Context, _ uint) ([]byte, error) {
	return []byte("%PDF-1.4 fake"), s.err
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func conUsuario(u *model.Usuario) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UsuarioKey, u)
		c.Next()
	}
}

func movRouter(svc *stubMovSvc, usuario *model.Usuario, cronSecret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewMovilizacionesHandler(svc, cronSecret)

	r.POST("/actualizar-estados-automaticos", h.EjecutarSweep)
	r.GET("/:id/certificado", h.Certificado)

	auth := r.Group("", conUsuario(usuario))
	auth.POST("/registro-completo", h.RegistrarCompleta)
	auth.GET("", h.Listar)
	auth.PATCH("/:id/estado", h.ActualizarEstado)
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func ganadero() *model.Usuario {
	return &model.Usuario{ID: 7, Nombre: "Pedro Gómez", CI: "0955555555", Rol: model.RolGanadero}
}

// ── Tests: registro completo ─────────────────────────────────────────────────

func TestRegistrarCompleta_Responde201(t *testing.T) {
	svc := &stubMovSvc{registrada: &model.Movilizacion{ID: 12, Estado: model.EstadoPendiente}}
	r := movRouter(svc, ganadero(), "")

	edad := 3
	w := doJSON(r, http.MethodPost, "/registro-completo", dto.RegistroCompletoRequest{
		Fecha:    "2024-01-10",
		Animales: []dto.AnimalRequest{{Identificador: "COW001", Edad: &edad}},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Success        bool   `json:"success"`
		Message        string `json:"message"`
		MovilizacionID uint   `json:"movilizacion_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Movilización registrada exitosamente", resp.Message)
	assert.Equal(t, uint(12), resp.MovilizacionID)
}

func TestRegistrarCompleta_AnimalSinEdad(t *testing.T) {
	svc := &stubMovSvc{}
	r := movRouter(svc, ganadero(), "")

	w := doJSON(r, http.MethodPost, "/registro-completo", dto.RegistroCompletoRequest{
		Fecha:    "2024-01-10",
		Animales: []dto.AnimalRequest{{Identificador: "COW001"}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error de validación")
}

func TestRegistrarCompleta_ErrorDelServicio(t *testing.T) {
	svc := &stubMovSvc{err: apierror.Validation("El formato de la fecha no es válido")}
	r := movRouter(svc, ganadero(), "")

	edad := 3
	w := doJSON(r, http.MethodPost, "/registro-completo", dto.RegistroCompletoRequest{
		Fecha:    "mala-fecha",
		Animales: []dto.AnimalRequest{{Edad: &edad}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "El formato de la fecha no es válido")
}

// ── Tests: listado ───────────────────────────────────────────────────────────

func TestListar_GanaderoSoloVeLoSuyo(t *testing.T) {
	svc := &stubMovSvc{}
	r := movRouter(svc, ganadero(), "")

	w := doJSON(r, http.MethodGet, "/?nombre=Otro&ci=0911111111&estado=pendiente", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	// El filtro por nombre/cédula ajeno se descarta y se fija su usuario_id.
	assert.Equal(t, uint(7), svc.filtroRecibido.UsuarioID)
	assert.Empty(t, svc.filtroRecibido.Nombre)
	assert.Empty(t, svc.filtroRecibido.CI)
	assert.Equal(t, "pendiente", svc.filtroRecibido.Estado)
}

func TestListar_RevisorConservaLosFiltros(t *testing.T) {
	svc := &stubMovSvc{}
	tecnico := &model.Usuario{ID: 3, Rol: model.RolTecnico}
	r := movRouter(svc, tecnico, "")

	w := doJSON(r, http.MethodGet, "/?nombre=Pedro&ci=0955555555", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, svc.filtroRecibido.UsuarioID)
	assert.Equal(t, "Pedro", svc.filtroRecibido.Nombre)
	assert.Equal(t, "0955555555", svc.filtroRecibido.CI)
}

// ── Tests: actualizar estado ─────────────────────────────────────────────────

func TestActualizarEstado_MensajeNormal(t *testing.T) {
	svc := &stubMovSvc{registrada: &model.Movilizacion{ID: 5, Estado: model.EstadoFinalizado}}
	r := movRouter(svc, ganadero(), "")

	w := doJSON(r, http.MethodPatch, "/5/estado", dto.ActualizarEstadoRequest{NuevoEstado: "finalizado"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Estado actualizado a finalizado")
	assert.Equal(t, "finalizado", svc.estadoRecibido)
}

func TestActualizarEstado_ElWarningReemplazaElMensaje(t *testing.T) {
	svc := &stubMovSvc{
		registrada: &model.Movilizacion{ID: 5, Estado: model.EstadoFinalizado},
		warning:    "Estado actualizado a finalizado, pero hubo un error al enviar el correo",
	}
	r := movRouter(svc, ganadero(), "")

	w := doJSON(r, http.MethodPatch, "/5/estado", dto.ActualizarEstadoRequest{NuevoEstado: "finalizado"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pero hubo un error al enviar el correo")
}

// ── Tests: certificado ───────────────────────────────────────────────────────

func TestCertificado_DescargaComoAdjunto(t *testing.T) {
	svc := &stubMovSvc{}
	r := movRouter(svc, ganadero(), "")

	w := doJSON(r, http.MethodGet, "/9/certificado", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="certificado_9.pdf"`, w.Header().Get("Content-Disposition"))
}

func TestCertificado_IdInvalido(t *testing.T) {
	svc := &stubMovSvc{}
	r := movRouter(svc, ganadero(), "")

	w := doJSON(r, http.MethodGet, "/abc/certificado", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ── Tests: sweep externo ─────────────────────────────────────────────────────

func TestEjecutarSweep_TokenCorrecto(t *testing.T) {
	svc := &stubMovSvc{escaladas: 3}
	r := movRouter(svc, ganadero(), "super-secreto")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/actualizar-estados-automaticos", nil)
	req.Header.Set("X-Cron-Token", "super-secreto")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"actualizadas":3`)
}

func TestEjecutarSweep_TokenIncorrecto(t *testing.T) {
	svc := &stubMovSvc{}
	r := movRouter(svc, ganadero(), "super-secreto")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/actualizar-estados-automaticos", nil)
	req.Header.Set("X-Cron-Token", "adivinanza")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEjecutarSweep_SinSecretoConfiguradoSiempreRechaza(t *testing.T) {
	svc := &stubMovSvc{}
	r := movRouter(svc, ganadero(), "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/actualizar-estados-automaticos", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
