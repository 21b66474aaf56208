package repository

import (
	"context"

	"github.com/Xdennizhu20X/back-abg/internal/model"

	"gorm.io/gorm"
)

type PredioRepository interface {
	Create(ctx context.Context, p *model.Predio) error
	FindByID(ctx context.Context, id uint) (*model.Predio, error)
	List(ctx context.Context) ([]model.Predio, error)
	ListByUsuario(ctx context.Context, usuarioID uint) ([]model.Predio, error)
	Update(ctx context.Context, p *model.Predio) error
	Delete(ctx context.Context, id uint) error
	// CountReferencias reports how many movilizaciones point at the predio,
	// as origin or destination. Used to refuse deleting certified predios.
	CountReferencias(ctx context.Context, predioID uint) (int64, error)
}

type predioRepo struct{ db *gorm.DB }

func NewPredioRepository(db *gorm.DB) PredioRepository { return &predioRepo{db: db} }

func (r *predioRepo) Create(ctx context.Context, p *model.Predio) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *predioRepo) FindByID(ctx context.Context, id uint) (*model.Predio, error) {
	var p model.Predio
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *predioRepo) List(ctx context.Context) ([]model.Predio, error) {
	var predios []model.Predio
	err := r.db.WithContext(ctx).Order("id ASC").Find(&predios).Error
	return predios, err
}

func (r *predioRepo) ListByUsuario(ctx context.Context, usuarioID uint) ([]model.Predio, error) {
	var predios []model.Predio
	err := r.db.WithContext(ctx).Where("usuario_id = ?", usuarioID).Order("id ASC").Find(&predios).Error
	return predios, err
}

func (r *predioRepo) Update(ctx context.Context, p *model.Predio) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *predioRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Predio{}, id).Error
}

func (r *predioRepo) CountReferencias(ctx context.Context, predioID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Movilizacion{}).
		Where("predio_origen_id = ? OR predio_destino_id = ?", predioID, predioID).
		Count(&count).Error
	return count, err
}
