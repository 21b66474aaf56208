package dto

type CrearPredioRequest struct {
	Nombre              string  `json:"nombre" validate:"required"`
	Ubicacion           string  `json:"ubicacion" validate:"required"`
	Tipo                string  `json:"tipo" validate:"required,oneof=origen destino"`
	Parroquia           *string `json:"parroquia"`
	Localidad           *string `json:"localidad"`
	CondicionTenencia   *string `json:"condicion_tenencia" validate:"omitempty,oneof=Propio Arrendado Prestado"`
	Direccion           *string `json:"direccion"`
	EsCentroFaenamiento *bool   `json:"es_centro_faenamiento"`
}

// ActualizarPredioRequest: zero-valued fields are ignored.
type ActualizarPredioRequest struct {
	Nombre              string  `json:"nombre"`
	Ubicacion           string  `json:"ubicacion"`
	Parroquia           *string `json:"parroquia"`
	Localidad           *string `json:"localidad"`
	CondicionTenencia   *string `json:"condicion_tenencia" validate:"omitempty,oneof=Propio Arrendado Prestado"`
	Direccion           *string `json:"direccion"`
	EsCentroFaenamiento *bool   `json:"es_centro_faenamiento"`
}
