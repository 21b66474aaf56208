package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Xdennizhu20X/back-abg/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

// ── UsuarioRepository stub ───────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uint]*model.Usuario
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error { return nil }

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uint) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, _ string) (*model.Usuario, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByCI(_ context.Context, _ string) (*model.Usuario, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error)            { return nil, nil }
func (r *stubUsuarioRepo) ListByRol(_ context.Context, _ string) ([]model.Usuario, error) {
	return nil, nil
}
func (r *stubUsuarioRepo) Update(_ context.Context, _ *model.Usuario) error { return nil }
func (r *stubUsuarioRepo) Delete(_ context.Context, _ uint) error           { return nil }

// ── Helpers ──────────────────────────────────────────────────────────────────

func signToken(t *testing.T, userID uint, rol, purpose string, ttl time.Duration) string {
	t.Helper()
	claims := JWTClaims{
		UserID:  userID,
		Rol:     rol,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func testRouter(repo *stubUsuarioRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuth(testSecret, repo))
	r.GET("/protegido", func(c *gin.Context) {
		usuario := GetUsuario(c)
		c.JSON(http.StatusOK, gin.H{"id": usuario.ID, "rol": usuario.Rol})
	})
	r.GET("/revision", RequireRole(model.RolTecnico, model.RolAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func seedRepo(rol string) *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: map[uint]*model.Usuario{
		1: {ID: 1, Nombre: "Test", Rol: rol, Estado: model.EstadoCuentaActivo},
	}}
}

// ── Tests: JWTAuth ───────────────────────────────────────────────────────────

func TestJWTAuth_SinToken(t *testing.T) {
	w := doGet(testRouter(seedRepo(model.RolGanadero)), "/protegido", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_TokenValidoResuelveUsuario(t *testing.T) {
	r := testRouter(seedRepo(model.RolGanadero))
	w := doGet(r, "/protegido", signToken(t, 1, model.RolGanadero, "", time.Hour))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rol":"ganadero"`)
}

func TestJWTAuth_TokenExpirado(t *testing.T) {
	r := testRouter(seedRepo(model.RolGanadero))
	w := doGet(r, "/protegido", signToken(t, 1, model.RolGanadero, "", -time.Second))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_RechazaTokenDeReset(t *testing.T) {
	// Un token de recuperación de contraseña no abre sesión.
	r := testRouter(seedRepo(model.RolGanadero))
	w := doGet(r, "/protegido", signToken(t, 1, model.RolGanadero, "password_reset", time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_UsuarioEliminado(t *testing.T) {
	// El token era válido, pero la cuenta ya no existe.
	r := testRouter(&stubUsuarioRepo{usuarios: map[uint]*model.Usuario{}})
	w := doGet(r, "/protegido", signToken(t, 1, model.RolGanadero, "", time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ── Tests: RequireRole ───────────────────────────────────────────────────────

func TestRequireRole_RolInsuficiente(t *testing.T) {
	r := testRouter(seedRepo(model.RolGanadero))
	w := doGet(r, "/revision", signToken(t, 1, model.RolGanadero, "", time.Hour))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Permisos insuficientes")
}

func TestRequireRole_RolPermitido(t *testing.T) {
	r := testRouter(seedRepo(model.RolTecnico))
	w := doGet(r, "/revision", signToken(t, 1, model.RolTecnico, "", time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_UsaElRolDeLaBase(t *testing.T) {
	// El rol vigente es el de la fila, no el que dice el token.
	r := testRouter(seedRepo(model.RolGanadero))
	w := doGet(r, "/revision", signToken(t, 1, model.RolAdmin, "", time.Hour))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
