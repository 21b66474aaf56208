package dto

import "time"

// Certificado is the flat, render-ready data set of a movement certificate:
// everything the PDF prints, already dereferenced and defaulted, so the
// renderer never touches the aggregate.
type Certificado struct {
	Numero       string    `json:"numero"`
	FechaEmision time.Time `json:"fecha_emision"`

	Solicitante CertificadoSolicitante `json:"solicitante"`
	Origen      CertificadoPredio      `json:"origen"`
	Destino     CertificadoPredio      `json:"destino"`
	Transporte  CertificadoTransporte  `json:"transporte"`

	Animales []CertificadoAnimal `json:"animales"`
	Aves     []CertificadoAve    `json:"aves"`

	TiempoValidez string `json:"tiempo_validez"`
	HoraInicio    string `json:"hora_inicio"`
	HoraFin       string `json:"hora_fin"`
	NombreTecnico string `json:"nombre_tecnico"`
	FirmaTecnico  string `json:"firma_tecnico,omitempty"`
}

type CertificadoSolicitante struct {
	Nombre   string `json:"nombre"`
	Cedula   string `json:"cedula"`
	Telefono string `json:"telefono"`
}

// CertificadoPredio covers both blocks; origin leaves the destination-only
// fields empty and vice versa.
type CertificadoPredio struct {
	Nombre            string `json:"nombre"`
	Ubicacion         string `json:"ubicacion"`
	Parroquia         string `json:"parroquia"`
	Localidad         string `json:"localidad,omitempty"`
	Direccion         string `json:"direccion,omitempty"`
	CondicionTenencia string `json:"condicion_tenencia,omitempty"`
}

type CertificadoTransporte struct {
	Registrado    bool   `json:"registrado"`
	EsTerrestre   bool   `json:"es_terrestre"`
	Transportista string `json:"transportista,omitempty"`
	Placa         string `json:"placa,omitempty"`
	Tipo          string `json:"tipo,omitempty"`
	Telefono      string `json:"telefono,omitempty"`
	Cedula        string `json:"cedula,omitempty"`
	DetalleOtro   string `json:"detalle_otro,omitempty"`
}

// CertificadoAnimal is one row of the livestock table.
type CertificadoAnimal struct {
	Especie       string `json:"especie"`
	Identificador string `json:"identificador"`
	Categoria     string `json:"categoria"`
	Raza          string `json:"raza"`
	Sexo          string `json:"sexo"`
	Color         string `json:"color"`
	Edad          int    `json:"edad"`
}

// CertificadoAve is one row of the poultry table. Edad and Total stay as
// strings so "not reported" renders as an empty cell, not a zero.
type CertificadoAve struct {
	Galpon    string `json:"galpon"`
	Categoria string `json:"categoria"`
	Edad      string `json:"edad"`
	Total     string `json:"total"`
}
