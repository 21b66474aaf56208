package model

import "time"

// Ave is a poultry line item: a shed (galpón) with a head count rather than
// individually identified animals.
type Ave struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	MovilizacionID uint      `gorm:"not null;index" json:"movilizacion_id"`
	NumeroGalpon   *string   `json:"numero_galpon,omitempty"`
	Categoria      *string   `json:"categoria,omitempty"` // Engorde | Postura
	Edad           *int      `json:"edad,omitempty"`
	TotalAves      *int      `json:"total_aves,omitempty"`
	Observaciones  *string   `json:"observaciones,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Ave) TableName() string { return "aves" }
