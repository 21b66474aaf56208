package model

import "time"

// Tipos de predio dentro de una movilización.
const (
	PredioOrigen  = "origen"
	PredioDestino = "destino"
)

// Predio is a registered land parcel, tagged as origin or destination of a
// movement. Created either standalone or as a side effect of a
// registro-completo submission.
type Predio struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UsuarioID uint    `gorm:"not null;index" json:"usuario_id"`
	Nombre    string  `gorm:"not null" json:"nombre"`
	Ubicacion string  `gorm:"not null" json:"ubicacion"`
	Parroquia *string `json:"parroquia,omitempty"`
	Tipo      string  `gorm:"type:varchar(10);not null" json:"tipo"`

	// Campos exclusivos de destino
	Localidad         *string `json:"localidad,omitempty"`
	CondicionTenencia *string `gorm:"type:varchar(20)" json:"condicion_tenencia,omitempty"` // Propio | Arrendado | Prestado

	// Campos exclusivos de origen
	Direccion           *string `json:"direccion,omitempty"`
	EsCentroFaenamiento *bool   `json:"es_centro_faenamiento,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Predio) TableName() string { return "predios" }
