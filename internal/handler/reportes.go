package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Xdennizhu20X/back-abg/internal/dto"
	"github.com/Xdennizhu20X/back-abg/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportesHandler struct {
	svc service.ReporteService
}

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

func (h *ReportesHandler) DescargarMovilizaciones(c *gin.Context) {
	var filtro dto.ReporteFilter
	if err := c.ShouldBindQuery(&filtro); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Filtros inválidos"})
		return
	}
	buffer, err := h.svc.GenerarExcel(c.Request.Context(), filtro)
	if err != nil {
		respondError(c, err)
		return
	}
	h.enviarXLSX(c, buffer, fmt.Sprintf("reporte_movilizaciones_%d.xlsx", time.Now().UnixMilli()))
}

func (h *ReportesHandler) DescargarPorCedula(c *gin.Context) {
	cedula := c.Param("cedula")
	buffer, err := h.svc.GenerarExcelPorCedula(c.Request.Context(), cedula)
	if err != nil {
		respondError(c, err)
		return
	}
	h.enviarXLSX(c, buffer, fmt.Sprintf("reporte_%s.xlsx", cedula))
}

func (h *ReportesHandler) DatosGrafico(c *gin.Context) {
	datos, err := h.svc.DatosGrafico(c.Request.Context(),
		c.Query("cedula"), c.Query("fechaDesde"), c.Query("fechaHasta"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": datos})
}

func (h *ReportesHandler) DatosGraficoGlobal(c *gin.Context) {
	datos, err := h.svc.DatosGraficoGlobal(c.Request.Context(),
		c.Query("fechaDesde"), c.Query("fechaHasta"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": datos})
}

func (h *ReportesHandler) enviarXLSX(c *gin.Context, buffer []byte, nombre string) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, nombre))
	c.Data(http.StatusOK, xlsxContentType, buffer)
}
