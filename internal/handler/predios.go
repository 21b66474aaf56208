package handler

import (
	"net/http"

	"github.com/Xdennizhu20X/back-abg/internal/dto"
	"github.com/Xdennizhu20X/back-abg/internal/middleware"
	"github.com/Xdennizhu20X/back-abg/internal/model"
	"github.com/Xdennizhu20X/back-abg/internal/service"

	"github.com/gin-gonic/gin"
)

type PrediosHandler struct {
	svc service.PredioService
}

func NewPrediosHandler(svc service.PredioService) *PrediosHandler {
	return &PrediosHandler{svc: svc}
}

func (h *PrediosHandler) Crear(c *gin.Context) {
	var req dto.CrearPredioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuario := middleware.GetUsuario(c)
	predio, err := h.svc.Crear(c.Request.Context(), usuario.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Predio creado correctamente",
		"data":    predio,
	})
}

// Listar answers every predio for reviewers and only the caller's own
// records for ganaderos.
func (h *PrediosHandler) Listar(c *gin.Context) {
	usuario := middleware.GetUsuario(c)

	var (
		predios []model.Predio
		err     error
	)
	if usuario.Rol == model.RolGanadero {
		predios, err = h.svc.ListarPorUsuario(c.Request.Context(), usuario.ID)
	} else {
		predios, err = h.svc.Listar(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": predios})
}

func (h *PrediosHandler) ListarPorUsuario(c *gin.Context) {
	usuarioID, ok := paramID(c, "usuarioId")
	if !ok {
		return
	}
	predios, err := h.svc.ListarPorUsuario(c.Request.Context(), usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": predios})
}

func (h *PrediosHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarPredioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	predio, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Predio actualizado correctamente",
		"data":    predio,
	})
}

func (h *PrediosHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Predio eliminado correctamente",
	})
}
