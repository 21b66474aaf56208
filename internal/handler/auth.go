package handler

import (
	"net/http"

	"github.com/Xdennizhu20X/back-abg/internal/dto"
	"github.com/Xdennizhu20X/back-abg/internal/middleware"
	"github.com/Xdennizhu20X/back-abg/internal/model"
	"github.com/Xdennizhu20X/back-abg/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	mensaje := "Usuario registrado exitosamente"
	if resp.Usuario.Estado == model.EstadoCuentaPendiente {
		mensaje = "Usuario registrado exitosamente. Tu cuenta está pendiente de aprobación."
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": mensaje,
		"data":    resp,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Inicio de sesión exitoso",
		"data":    resp,
	})
}

// Logout is a stateless acknowledgment: the token lives client-side and is
// simply discarded there. Kept for API compatibility.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sesión cerrada exitosamente",
	})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	usuario := middleware.GetUsuario(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    perfilDe(usuario),
	})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	// Misma respuesta exista o no la cuenta.
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Se envió un enlace de recuperación a tu correo electrónico.",
	})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	token := c.Query("token")
	if err := h.svc.ResetPassword(c.Request.Context(), token, req.NuevaPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Contraseña actualizada correctamente",
	})
}

func perfilDe(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:       u.ID,
		Nombre:   u.Nombre,
		CI:       u.CI,
		Email:    u.Email,
		Telefono: u.Telefono,
		Rol:      u.Rol,
		Estado:   u.Estado,
	}
}
