package model

import "time"

// Transporte describes how the animals move. At most one per movilización.
// Carrier fields apply when EsTerrestre; DetalleOtro describes any other mode.
type Transporte struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	MovilizacionID uint `gorm:"not null;uniqueIndex" json:"movilizacion_id"`
	EsTerrestre    bool `gorm:"not null;default:true" json:"es_terrestre"`

	NombreTransportista   *string `json:"nombre_transportista,omitempty"`
	Placa                 *string `json:"placa,omitempty"`
	TipoTransporte        *string `json:"tipo_transporte,omitempty"`
	TelefonoTransportista *string `json:"telefono_transportista,omitempty"`
	CedulaTransportista   *string `json:"cedula_transportista,omitempty"`
	DetalleOtro           *string `json:"detalle_otro,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Transporte) TableName() string { return "transportes" }
