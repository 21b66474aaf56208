package model

import "time"

// Animal is a livestock line item of a movilización. Edad is the only
// mandatory attribute; identifiers may be absent for unmarked animals.
type Animal struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	MovilizacionID uint      `gorm:"not null;index" json:"movilizacion_id"`
	Especie        *string   `json:"especie,omitempty"`
	Identificador  *string   `json:"identificador,omitempty"`
	Categoria      *string   `json:"categoria,omitempty"`
	Raza           *string   `json:"raza,omitempty"`
	Sexo           *string   `gorm:"type:varchar(10)" json:"sexo,omitempty"` // M | H | Otro
	Color          *string   `json:"color,omitempty"`
	Edad           int       `gorm:"not null" json:"edad"`
	Comerciante    *string   `json:"comerciante,omitempty"`
	Observaciones  *string   `json:"observaciones,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Animal) TableName() string { return "animales" }
