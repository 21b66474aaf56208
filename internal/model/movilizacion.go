package model

import "time"

// Estados del ciclo de vida de una movilización.
//
//	pendiente ──(validación)──▶ aprobado
//	pendiente ──(rechazo)─────▶ rechazado   (terminal)
//	pendiente ──(72h sweep)───▶ alerta
//	pendiente/alerta ─────────▶ finalizado  (terminal)
const (
	EstadoPendiente  = "pendiente"
	EstadoAprobado   = "aprobado"
	EstadoRechazado  = "rechazado"
	EstadoAlerta     = "alerta"
	EstadoFinalizado = "finalizado"
)

// Movilizacion is the central aggregate: a movement request from an origin
// predio to a destination predio, with animal/bird line items, an optional
// transport record, and the technician validation issued on review.
type Movilizacion struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UsuarioID       uint      `gorm:"not null;index" json:"usuario_id"`
	PredioOrigenID  uint      `gorm:"not null" json:"predio_origen_id"`
	PredioDestinoID uint      `gorm:"not null" json:"predio_destino_id"`
	FechaSolicitud  time.Time `gorm:"not null;index" json:"fecha_solicitud"`
	Estado          string    `gorm:"type:varchar(20);not null;default:'pendiente';index" json:"estado"`

	// Revisión técnica
	TecnicoID             *uint      `json:"tecnico_id,omitempty"`
	ObservacionesTecnico  *string    `json:"observaciones_tecnico,omitempty"`
	FechaAprobacion       *time.Time `json:"fecha_aprobacion,omitempty"`
	FechaAlerta           *time.Time `json:"fecha_alerta,omitempty"`
	FechaFinalizacion     *time.Time `json:"fecha_finalizacion,omitempty"`
	FechaResolucionAlerta *time.Time `json:"fecha_resolucion_alerta,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Animales      []Animal    `gorm:"foreignKey:MovilizacionID" json:"animales"`
	Aves          []Ave       `gorm:"foreignKey:MovilizacionID" json:"aves"`
	Transporte    *Transporte `gorm:"foreignKey:MovilizacionID" json:"transporte,omitempty"`
	Validacion    *Validacion `gorm:"foreignKey:MovilizacionID" json:"validacion,omitempty"`
	PredioOrigen  *Predio     `gorm:"foreignKey:PredioOrigenID" json:"predio_origen,omitempty"`
	PredioDestino *Predio     `gorm:"foreignKey:PredioDestinoID" json:"predio_destino,omitempty"`
	Usuario       *Usuario    `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
}

func (Movilizacion) TableName() string { return "movilizaciones" }

// EsTerminal reports whether the record accepts no further transitions.
func (m *Movilizacion) EsTerminal() bool {
	return m.Estado == EstadoFinalizado || m.Estado == EstadoRechazado
}
