package middleware

import (
	"net/http"
	"strings"

	"github.com/Xdennizhu20X/back-abg/internal/model"
	"github.com/Xdennizhu20X/back-abg/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimsKey  = "claims"
	UsuarioKey = "usuario"
)

// JWTClaims are the custom claims embedded in every access token. Purpose is
// empty for session tokens; password-reset tokens carry "password_reset" and
// are not accepted here.
type JWTClaims struct {
	UserID  uint   `json:"user_id"`
	Rol     string `json:"rol"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token on every protected route and resolves
// the user row, so tokens of deleted accounts stop working immediately.
func JWTAuth(secret string, usuarios repository.UsuarioRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abortAuth(c, "Autenticación requerida")
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid || claims.Purpose != "" {
			abortAuth(c, "Token inválido o expirado")
			return
		}

		usuario, err := usuarios.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			abortAuth(c, "Token inválido o expirado")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UsuarioKey, usuario)
		c.Next()
	}
}

// RequireRole rejects requests whose resolved user role is not allowed.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		usuario := GetUsuario(c)
		if usuario == nil || !allowed[usuario.Rol] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Permisos insuficientes",
			})
			return
		}
		c.Next()
	}
}

// GetUsuario retrieves the authenticated user from the Gin context. Nil when
// the route was not behind JWTAuth.
func GetUsuario(c *gin.Context) *model.Usuario {
	v, ok := c.Get(UsuarioKey)
	if !ok {
		return nil
	}
	usuario, _ := v.(*model.Usuario)
	return usuario
}

func abortAuth(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": msg,
	})
}
