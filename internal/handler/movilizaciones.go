package handler

import (
	"fmt"
	"net/http"

	"github.com/Xdennizhu20X/back-abg/internal/dto"
	"github.com/Xdennizhu20X/back-abg/internal/middleware"
	"github.com/Xdennizhu20X/back-abg/internal/model"
	"github.com/Xdennizhu20X/back-abg/internal/service"

	"github.com/gin-gonic/gin"
)

type MovilizacionesHandler struct {
	svc        service.MovilizacionService
	cronSecret string
}

func NewMovilizacionesHandler(svc service.MovilizacionService, cronSecret string) *MovilizacionesHandler {
	return &MovilizacionesHandler{svc: svc, cronSecret: cronSecret}
}

func (h *MovilizacionesHandler) RegistrarCompleta(c *gin.Context) {
	var req dto.RegistroCompletoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuario := middleware.GetUsuario(c)
	mov, err := h.svc.RegistrarCompleta(c.Request.Context(), usuario, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":         true,
		"message":         "Movilización registrada exitosamente",
		"movilizacion_id": mov.ID,
	})
}

// Listar serves both GET / and GET /filtrar: the second simply accepts the
// extra nombre/ci fields of the same query binding. Ganaderos only ever see
// their own records.
func (h *MovilizacionesHandler) Listar(c *gin.Context) {
	var filtro dto.MovilizacionFilter
	if err := c.ShouldBindQuery(&filtro); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Filtros inválidos"})
		return
	}
	usuario := middleware.GetUsuario(c)
	if usuario.Rol == model.RolGanadero {
		filtro.UsuarioID = usuario.ID
		filtro.Nombre = ""
		filtro.CI = ""
	}

	movs, err := h.svc.Listar(c.Request.Context(), filtro)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    movs,
		"total":   len(movs),
	})
}

func (h *MovilizacionesHandler) ContarPendientes(c *gin.Context) {
	total, err := h.svc.ContarPendientes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "total": total})
}

func (h *MovilizacionesHandler) Obtener(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	mov, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": mov})
}

func (h *MovilizacionesHandler) Animales(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	animales, err := h.svc.ObtenerAnimales(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"movilizacion_id": id,
		"count":           len(animales),
		"animales":        animales,
	})
}

func (h *MovilizacionesHandler) Certificado(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	pdfBytes, err := h.svc.GenerarCertificado(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="certificado_%d.pdf"`, id))
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *MovilizacionesHandler) ActualizarEstado(c *gin.Context) {
	var req dto.ActualizarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	// El id puede venir por ruta o, como en el API original, dentro del body.
	id := req.ID
	if raw := c.Param("id"); raw != "" {
		pathID, ok := paramID(c, "id")
		if !ok {
			return
		}
		id = pathID
	}
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Identificador inválido"})
		return
	}

	mov, warning, err := h.svc.ActualizarEstado(c.Request.Context(), id, req.NuevoEstado)
	if err != nil {
		respondError(c, err)
		return
	}
	mensaje := "Estado actualizado a " + req.NuevoEstado
	if warning != "" {
		mensaje = warning
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      mensaje,
		"movilizacion": mov,
	})
}

func (h *MovilizacionesHandler) Validar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ValidacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	tecnico := middleware.GetUsuario(c)
	mov, err := h.svc.Validar(c.Request.Context(), id, tecnico, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Movilización aprobada correctamente",
		"movilizacion": mov,
	})
}

func (h *MovilizacionesHandler) Rechazar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.RechazoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	tecnico := middleware.GetUsuario(c)
	mov, err := h.svc.Rechazar(c.Request.Context(), id, tecnico, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Movilización rechazada",
		"movilizacion": mov,
	})
}

func (h *MovilizacionesHandler) Estadisticas(c *gin.Context) {
	datos, err := h.svc.Estadisticas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": datos})
}

// EjecutarSweep exposes the escalation sweep to an external scheduler.
// Guarded by a shared secret instead of a user token.
func (h *MovilizacionesHandler) EjecutarSweep(c *gin.Context) {
	if h.cronSecret == "" || c.GetHeader("X-Cron-Token") != h.cronSecret {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Token de cron inválido",
		})
		return
	}
	count, err := h.svc.EscalarPendientes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      fmt.Sprintf("%d movilizaciones actualizadas a alerta", count),
		"actualizadas": count,
	})
}
