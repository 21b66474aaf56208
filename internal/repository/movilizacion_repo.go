package repository

import (
	"context"
	"time"

	"github.com/Xdennizhu20X/back-abg/internal/dto"
	"github.com/Xdennizhu20X/back-abg/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EstadoTotal is one row of the estado aggregation.
type EstadoTotal struct {
	Estado string
	Total  int64
}

type MovilizacionRepository interface {
	// CrearCompleta persists the whole aggregate (both predios, the movement
	// and its line items) in a single transaction. Nothing is left behind if
	// any insert fails.
	CrearCompleta(ctx context.Context, origen, destino *model.Predio, mov *model.Movilizacion, animales []model.Animal, aves []model.Ave, transporte *model.Transporte) error
	FindByID(ctx context.Context, id uint) (*model.Movilizacion, error)
	List(ctx context.Context, f dto.MovilizacionFilter) ([]model.Movilizacion, error)
	ListAnimales(ctx context.Context, movilizacionID uint) ([]model.Animal, error)
	Update(ctx context.Context, mov *model.Movilizacion) error
	// GuardarRevision writes the reviewed movement and upserts its validación
	// atomically. val may be nil when the review carries no certificate data.
	GuardarRevision(ctx context.Context, mov *model.Movilizacion, val *model.Validacion) error
	// EscalarPendientes flips every pendiente older than cutoff to alerta and
	// returns the affected rows with requester and predios preloaded.
	EscalarPendientes(ctx context.Context, cutoff, ahora time.Time) ([]model.Movilizacion, error)
	CountPorEstado(ctx context.Context) ([]EstadoTotal, error)
	CountPendientes(ctx context.Context) (int64, error)
}

type movilizacionRepo struct{ db *gorm.DB }

func NewMovilizacionRepository(db *gorm.DB) MovilizacionRepository {
	return &movilizacionRepo{db: db}
}

func (r *movilizacionRepo) CrearCompleta(ctx context.Context, origen, destino *model.Predio, mov *model.Movilizacion, animales []model.Animal, aves []model.Ave, transporte *model.Transporte) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(origen).Error; err != nil {
			return err
		}
		if err := tx.Create(destino).Error; err != nil {
			return err
		}
		mov.PredioOrigenID = origen.ID
		mov.PredioDestinoID = destino.ID
		if err := tx.Create(mov).Error; err != nil {
			return err
		}
		for i := range animales {
			animales[i].MovilizacionID = mov.ID
		}
		if len(animales) > 0 {
			if err := tx.Create(&animales).Error; err != nil {
				return err
			}
		}
		for i := range aves {
			aves[i].MovilizacionID = mov.ID
		}
		if len(aves) > 0 {
			if err := tx.Create(&aves).Error; err != nil {
				return err
			}
		}
		if transporte != nil {
			transporte.MovilizacionID = mov.ID
			if err := tx.Create(transporte).Error; err != nil {
				return err
			}
		}
		mov.Animales = animales
		mov.Aves = aves
		mov.Transporte = transporte
		return nil
	})
}

func (r *movilizacionRepo) FindByID(ctx context.Context, id uint) (*model.Movilizacion, error) {
	var mov model.Movilizacion
	err := r.db.WithContext(ctx).
		Preload("Animales", func(db *gorm.DB) *gorm.DB {
			return db.Order("especie ASC, edad DESC")
		}).
		Preload("Aves").
		Preload("Transporte").
		Preload("Validacion").
		Preload("PredioOrigen").
		Preload("PredioDestino").
		Preload("Usuario").
		First(&mov, id).Error
	return &mov, err
}

func (r *movilizacionRepo) List(ctx context.Context, f dto.MovilizacionFilter) ([]model.Movilizacion, error) {
	q := r.db.WithContext(ctx).Model(&model.Movilizacion{}).
		Preload("Animales").
		Preload("Aves").
		Preload("Transporte").
		Preload("Validacion").
		Preload("PredioOrigen").
		Preload("PredioDestino").
		Preload("Usuario")

	if f.UsuarioID != 0 {
		q = q.Where("movilizaciones.usuario_id = ?", f.UsuarioID)
	}
	if f.Estado != "" {
		q = q.Where("movilizaciones.estado = ?", f.Estado)
	}
	if f.FechaInicio != "" {
		if desde, err := time.Parse("2006-01-02", f.FechaInicio); err == nil {
			q = q.Where("movilizaciones.fecha_solicitud >= ?", desde)
		}
	}
	if f.FechaFin != "" {
		if hasta, err := time.Parse("2006-01-02", f.FechaFin); err == nil {
			q = q.Where("movilizaciones.fecha_solicitud < ?", hasta.AddDate(0, 0, 1))
		}
	}
	if f.Nombre != "" || f.CI != "" {
		q = q.Joins("JOIN usuarios ON usuarios.id = movilizaciones.usuario_id")
		if f.Nombre != "" {
			q = q.Where("usuarios.nombre ILIKE ?", "%"+f.Nombre+"%")
		}
		if f.CI != "" {
			q = q.Where("usuarios.ci = ?", f.CI)
		}
	}

	var movs []model.Movilizacion
	err := q.Order("movilizaciones.fecha_solicitud DESC").Find(&movs).Error
	return movs, err
}

func (r *movilizacionRepo) ListAnimales(ctx context.Context, movilizacionID uint) ([]model.Animal, error) {
	var animales []model.Animal
	err := r.db.WithContext(ctx).
		Where("movilizacion_id = ?", movilizacionID).
		Order("especie ASC, edad DESC").
		Find(&animales).Error
	return animales, err
}

func (r *movilizacionRepo) Update(ctx context.Context, mov *model.Movilizacion) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(mov).Error
}

func (r *movilizacionRepo) GuardarRevision(ctx context.Context, mov *model.Movilizacion, val *model.Validacion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(mov).Error; err != nil {
			return err
		}
		if val == nil {
			return nil
		}
		var existente model.Validacion
		err := tx.Where("movilizacion_id = ?", mov.ID).First(&existente).Error
		switch {
		case err == nil:
			val.ID = existente.ID
			val.CreatedAt = existente.CreatedAt
			return tx.Save(val).Error
		case err == gorm.ErrRecordNotFound:
			return tx.Create(val).Error
		default:
			return err
		}
	})
}

func (r *movilizacionRepo) EscalarPendientes(ctx context.Context, cutoff, ahora time.Time) ([]model.Movilizacion, error) {
	var vencidas []model.Movilizacion
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Preload("Usuario").
			Preload("PredioOrigen").
			Preload("PredioDestino").
			Where("estado = ? AND fecha_solicitud <= ?", model.EstadoPendiente, cutoff).
			Find(&vencidas).Error; err != nil {
			return err
		}
		if len(vencidas) == 0 {
			return nil
		}
		ids := make([]uint, len(vencidas))
		for i := range vencidas {
			ids[i] = vencidas[i].ID
		}
		if err := tx.Model(&model.Movilizacion{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{"estado": model.EstadoAlerta, "fecha_alerta": ahora}).Error; err != nil {
			return err
		}
		for i := range vencidas {
			vencidas[i].Estado = model.EstadoAlerta
			t := ahora
			vencidas[i].FechaAlerta = &t
		}
		return nil
	})
	return vencidas, err
}

func (r *movilizacionRepo) CountPorEstado(ctx context.Context) ([]EstadoTotal, error) {
	var filas []EstadoTotal
	err := r.db.WithContext(ctx).Model(&model.Movilizacion{}).
		Select("estado, COUNT(*) AS total").
		Group("estado").
		Scan(&filas).Error
	return filas, err
}

func (r *movilizacionRepo) CountPendientes(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Movilizacion{}).
		Where("estado = ?", model.EstadoPendiente).
		Count(&count).Error
	return count, err
}
