package model

import "time"

// Validacion is the technician review record. One per movilización, updated
// in place on re-validation. A rejection also writes one (with a null
// validity window) so the audit trail shows a review occurred.
type Validacion struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	MovilizacionID uint      `gorm:"not null;uniqueIndex" json:"movilizacion_id"`
	TiempoValidez  *string   `json:"tiempo_validez,omitempty"`
	HoraInicio     *string   `json:"hora_inicio,omitempty"`
	HoraFin        *string   `json:"hora_fin,omitempty"`
	FechaEmision   time.Time `gorm:"not null" json:"fecha_emision"`
	FirmaTecnico   *string   `json:"firma_tecnico,omitempty"` // ruta o URL a la imagen
	NombreTecnico  *string   `json:"nombre_tecnico,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Validacion) TableName() string { return "validaciones" }
