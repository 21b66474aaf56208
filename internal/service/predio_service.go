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

type PredioService interface {
	Crear(ctx context.Context, usuarioID uint, req dto.CrearPredioRequest) (*model.Predio, error)
	Listar(ctx context.Context) ([]model.Predio, error)
	ListarPorUsuario(ctx context.Context, usuarioID uint) ([]model.Predio, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarPredioRequest) (*model.Predio, error)
	Eliminar(ctx context.Context, id uint) error
}

type predioService struct {
	predios repository.PredioRepository
}

func NewPredioService(predios repository.PredioRepository) PredioService {
	return &predioService{predios: predios}
}

func (s *predioService) Crear(ctx context.Context, usuarioID uint, req dto.CrearPredioRequest) (*model.Predio, error) {
	predio := &model.Predio{
		UsuarioID:           usuarioID,
		Nombre:              req.Nombre,
		Ubicacion:           req.Ubicacion,
		Tipo:                req.Tipo,
		Parroquia:           req.Parroquia,
		Localidad:           req.Localidad,
		CondicionTenencia:   req.CondicionTenencia,
		Direccion:           req.Direccion,
		EsCentroFaenamiento: req.EsCentroFaenamiento,
	}
	if err := s.predios.Create(ctx, predio); err != nil {
		return nil, err
	}
	return predio, nil
}

func (s *predioService) Listar(ctx context.Context) ([]model.Predio, error) {
	return s.predios.List(ctx)
}

func (s *predioService) ListarPorUsuario(ctx context.Context, usuarioID uint) ([]model.Predio, error) {
	return s.predios.ListByUsuario(ctx, usuarioID)
}

func (s *predioService) Actualizar(ctx context.Context, id uint, req dto.ActualizarPredioRequest) (*model.Predio, error) {
	predio, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Nombre != "" {
		predio.Nombre = req.Nombre
	}
	if req.Ubicacion != "" {
		predio.Ubicacion = req.Ubicacion
	}
	if req.Parroquia != nil {
		predio.Parroquia = req.Parroquia
	}
	if req.Localidad != nil {
		predio.Localidad = req.Localidad
	}
	if req.CondicionTenencia != nil {
		predio.CondicionTenencia = req.CondicionTenencia
	}
	if req.Direccion != nil {
		predio.Direccion = req.Direccion
	}
	if req.EsCentroFaenamiento != nil {
		predio.EsCentroFaenamiento = req.EsCentroFaenamiento
	}
	if err := s.predios.Update(ctx, predio); err != nil {
		return nil, err
	}
	return predio, nil
}

func (s *predioService) Eliminar(ctx context.Context, id uint) error {
	if _, err := s.buscar(ctx, id); err != nil {
		return err
	}
	refs, err := s.predios.CountReferencias(ctx, id)
	if err != nil {
		return err
	}
	// Un predio referenciado respalda certificados ya emitidos.
	if refs > 0 {
		return apierror.Conflict("El predio está asociado a movilizaciones y no puede eliminarse")
	}
	return s.predios.Delete(ctx, id)
}

func (s *predioService) buscar(ctx context.Context, id uint) (*model.Predio, error) {
	predio, err := s.predios.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Predio no encontrado")
		}
		return nil, err
	}
	return predio, nil
}
