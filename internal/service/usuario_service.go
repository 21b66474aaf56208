package service

import (
	"context"
	"errors"

	"github.com/Xdennizhu20X/back-abg/internal/apierror"
	"github.com/Xdennizhu20X/back-abg/internal/dto"
	"github.com/Xdennizhu20X/back-abg/internal/model"
	"github.com/Xdennizhu20X/back-abg/internal/repository"

	"gorm.io/gorm"
)

// UsuarioService covers the admin-side account management flows.
type UsuarioService interface {
	Listar(ctx context.Context) ([]dto.UsuarioResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	Aprobar(ctx context.Context, id uint) (*dto.UsuarioResponse, error)
	RechazarRegistro(ctx context.Context, id uint) error
	Eliminar(ctx context.Context, id uint) error
}

type usuarioService struct {
	usuarios    repository.UsuarioRepository
	notificador Notificador
}

func NewUsuarioService(usuarios repository.UsuarioRepository, notificador Notificador) UsuarioService {
	return &usuarioService{usuarios: usuarios, notificador: notificador}
}

func (s *usuarioService) Listar(ctx context.Context) ([]dto.UsuarioResponse, error) {
	usuarios, err := s.usuarios.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(usuarios))
	for i := range usuarios {
		resp[i] = usuarioResponse(&usuarios[i])
	}
	return resp, nil
}

func (s *usuarioService) Actualizar(ctx context.Context, id uint, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	usuario, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" && req.Email != usuario.Email {
		if _, err := s.usuarios.FindByEmail(ctx, req.Email); err == nil {
			return nil, apierror.Conflict("El email ya está registrado")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		usuario.Email = req.Email
	}
	if req.Nombre != "" {
		usuario.Nombre = req.Nombre
	}
	if req.Telefono != nil {
		usuario.Telefono = req.Telefono
	}
	if req.Rol != "" {
		usuario.Rol = req.Rol
	}
	if req.Password != "" {
		if err := usuario.SetPassword(req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.usuarios.Update(ctx, usuario); err != nil {
		return nil, err
	}
	resp := usuarioResponse(usuario)
	return &resp, nil
}

func (s *usuarioService) Aprobar(ctx context.Context, id uint) (*dto.UsuarioResponse, error) {
	usuario, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	if usuario.Estado != model.EstadoCuentaPendiente {
		return nil, apierror.Conflict("El usuario no está pendiente de aprobación")
	}

	usuario.Estado = model.EstadoCuentaActivo
	if err := s.usuarios.Update(ctx, usuario); err != nil {
		return nil, err
	}
	s.notificador.EncolarEmail(ctx, usuario.Email,
		"Cuenta Activada", htmlCuentaActivada(usuario.Nombre))

	resp := usuarioResponse(usuario)
	return &resp, nil
}

func (s *usuarioService) RechazarRegistro(ctx context.Context, id uint) error {
	usuario, err := s.buscar(ctx, id)
	if err != nil {
		return err
	}
	if usuario.Estado != model.EstadoCuentaPendiente {
		return apierror.Conflict("Solo se pueden rechazar cuentas pendientes")
	}
	if err := s.usuarios.Delete(ctx, id); err != nil {
		return err
	}
	s.notificador.EncolarEmail(ctx, usuario.Email,
		"Solicitud de Registro Rechazada", htmlCuentaRechazada(usuario.Nombre))
	return nil
}

func (s *usuarioService) Eliminar(ctx context.Context, id uint) error {
	if _, err := s.buscar(ctx, id); err != nil {
		return err
	}
	return s.usuarios.Delete(ctx, id)
}

func (s *usuarioService) buscar(ctx context.Context, id uint) (*model.Usuario, error) {
	usuario, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Usuario no encontrado")
		}
		return nil, err
	}
	return usuario, nil
}
