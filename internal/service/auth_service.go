package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/Xdennizhu20X/back-abg/internal/apierror"
	"github.com/Xdennizhu20X/back-abg/internal/config"
	"github.com/Xdennizhu20X/back-abg/internal/dto"
	"github.com/Xdennizhu20X/back-abg/internal/middleware"
	"github.com/Xdennizhu20X/back-abg/internal/model"
	"github.com/Xdennizhu20X/back-abg/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const resetTokenTTL = 15 * time.Minute

var (
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	ciRegex       = regexp.MustCompile(`^\d{10}$`)
	telefonoRegex = regexp.MustCompile(`^[\d\s+-]{7,15}$`)
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, nuevaPassword string) error
}

type authService struct {
	usuarios    repository.UsuarioRepository
	cfg         *config.Config
	notificador Notificador
}

func NewAuthService(usuarios repository.UsuarioRepository, cfg *config.Config, notificador Notificador) AuthService {
	return &authService{usuarios: usuarios, cfg: cfg, notificador: notificador}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if req.Nombre == "" || req.Email == "" || req.Password == "" || req.CI == "" {
		return nil, apierror.Validation("Todos los campos son obligatorios (nombre, email, password, ci)")
	}
	if !emailRegex.MatchString(req.Email) {
		return nil, apierror.Validation("El formato del email no es válido")
	}
	if len(req.Password) < 6 {
		return nil, apierror.Validation("La contraseña debe tener al menos 6 caracteres")
	}
	if !ciRegex.MatchString(req.CI) {
		return nil, apierror.Validation("La cédula debe tener exactamente 10 dígitos numéricos")
	}
	rol := req.Rol
	if rol == "" {
		rol = model.RolGanadero
	}
	if rol != model.RolGanadero && rol != model.RolTecnico && rol != model.RolAdmin {
		return nil, apierror.Validation("El rol debe ser uno de: ganadero, tecnico, admin")
	}
	if req.Telefono != nil && *req.Telefono != "" && !telefonoRegex.MatchString(*req.Telefono) {
		return nil, apierror.Validation("El formato del teléfono no es válido")
	}

	if _, err := s.usuarios.FindByEmail(ctx, req.Email); err == nil {
		return nil, apierror.Conflict("El email ya está registrado")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.usuarios.FindByCI(ctx, req.CI); err == nil {
		return nil, apierror.Conflict("La cédula ya está registrada")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Los técnicos entran en revisión; el resto queda activo de inmediato.
	estado := model.EstadoCuentaActivo
	if rol == model.RolTecnico {
		estado = model.EstadoCuentaPendiente
	}

	usuario := &model.Usuario{
		Nombre:   req.Nombre,
		CI:       req.CI,
		Email:    req.Email,
		Telefono: req.Telefono,
		Rol:      rol,
		Estado:   estado,
	}
	if err := usuario.SetPassword(req.Password); err != nil {
		return nil, err
	}
	if err := s.usuarios.Create(ctx, usuario); err != nil {
		return nil, err
	}

	s.notificarRegistro(ctx, usuario)

	resp := &dto.RegisterResponse{Usuario: usuarioResponse(usuario)}
	if estado == model.EstadoCuentaActivo {
		token, err := s.generarToken(usuario, time.Duration(s.cfg.JWTExpirationHours)*time.Hour, "")
		if err != nil {
			return nil, err
		}
		resp.Token = token
	}
	return resp, nil
}

// notificarRegistro enqueues the user's welcome/pending mail and one review
// mail per admin. Each enqueue is independent; a failure never blocks the
// registration response.
func (s *authService) notificarRegistro(ctx context.Context, usuario *model.Usuario) {
	if usuario.Estado == model.EstadoCuentaPendiente {
		s.notificador.EncolarEmail(ctx, usuario.Email,
			"Registro Pendiente de Aprobación", htmlCuentaPendiente(usuario.Nombre, usuario.Rol))
	} else {
		s.notificador.EncolarEmail(ctx, usuario.Email,
			"Registro Exitoso", htmlBienvenida(usuario.Nombre))
	}

	admins, err := s.usuarios.ListByRol(ctx, model.RolAdmin)
	if err != nil {
		log.Error().Err(err).Msg("auth: no se pudo listar admins para notificar registro")
		return
	}
	pendiente := usuario.Estado == model.EstadoCuentaPendiente
	asunto := "Nuevo Usuario Registrado"
	if pendiente {
		asunto = "Nuevo Usuario para Aprobación"
	}
	for _, admin := range admins {
		s.notificador.EncolarEmail(ctx, admin.Email, asunto,
			htmlNuevoUsuarioAdmin(usuario.Nombre, usuario.Email, usuario.Rol, pendiente))
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apierror.Validation("Email y contraseña son obligatorios")
	}
	if !emailRegex.MatchString(req.Email) {
		return nil, apierror.Validation("El formato del email no es válido")
	}

	usuario, err := s.usuarios.FindByEmail(ctx, req.Email)
	if err != nil {
		// Mismo mensaje para cuenta inexistente y contraseña errada.
		return nil, apierror.Auth("Credenciales inválidas")
	}
	if !usuario.CheckPassword(req.Password) {
		return nil, apierror.Auth("Credenciales inválidas")
	}
	if usuario.Estado == model.EstadoCuentaPendiente {
		return nil, apierror.Forbidden("Tu cuenta está pendiente de aprobación por un administrador.")
	}

	token, err := s.generarToken(usuario, time.Duration(s.cfg.JWTExpirationHours)*time.Hour, "")
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Usuario: usuarioResponse(usuario), Token: token}, nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return apierror.Validation("Email requerido")
	}
	usuario, err := s.usuarios.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// La respuesta no revela si la cuenta existe.
			return nil
		}
		return err
	}

	token, err := s.generarToken(usuario, resetTokenTTL, "password_reset")
	if err != nil {
		return err
	}
	enlace := s.cfg.FrontendURL + "/reset-password?token=" + token
	s.notificador.EncolarEmail(ctx, usuario.Email,
		"Recuperación de contraseña", htmlRecuperacionPassword(enlace))
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, tokenStr, nuevaPassword string) error {
	if tokenStr == "" || nuevaPassword == "" {
		return apierror.Validation("Token y nueva contraseña requeridos")
	}
	if len(nuevaPassword) < 6 {
		return apierror.Validation("La contraseña debe tener al menos 6 caracteres")
	}

	claims := &middleware.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid || claims.Purpose != "password_reset" {
		return apierror.Auth("Token inválido o expirado")
	}

	usuario, err := s.usuarios.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Usuario no encontrado")
		}
		return err
	}
	if err := usuario.SetPassword(nuevaPassword); err != nil {
		return err
	}
	return s.usuarios.Update(ctx, usuario)
}

func (s *authService) generarToken(usuario *model.Usuario, ttl time.Duration, purpose string) (string, error) {
	now := time.Now()
	claims := middleware.JWTClaims{
		UserID:  usuario.ID,
		Rol:     usuario.Rol,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   usuario.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func usuarioResponse(u *model.Usuario) dto.UsuarioResponse {
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
