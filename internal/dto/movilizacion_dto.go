package dto

// ─── Registro completo ───────────────────────────────────────────────────────

// PredioOrigenRequest is the nested origin section of a registro-completo.
type PredioOrigenRequest struct {
	Nombre              string  `json:"nombre"`
	Parroquia           string  `json:"parroquia"`
	Ubicacion           string  `json:"ubicacion"`
	Direccion           *string `json:"direccion"`
	Localidad           *string `json:"localidad"`
	EsCentroFaenamiento *bool   `json:"es_centro_faenamiento"`
}

// DestinoRequest is the nested destination section. The original API named
// the property field "nombre_predio"; "nombre" is accepted as an alias.
type DestinoRequest struct {
	NombrePredio        string  `json:"nombre_predio"`
	Nombre              string  `json:"nombre"`
	Parroquia           string  `json:"parroquia"`
	Ubicacion           string  `json:"ubicacion"`
	Direccion           *string `json:"direccion"`
	Localidad           *string `json:"localidad"`
	CondicionTenencia   *string `json:"condicion_tenencia"`
	EsCentroFaenamiento *bool   `json:"es_centro_faenamiento"`
}

// NombreNormalizado resolves the nombre_predio/nombre alias pair.
func (d *DestinoRequest) NombreNormalizado() string {
	if d.NombrePredio != "" {
		return d.NombrePredio
	}
	return d.Nombre
}

// AnimalRequest accepts both historical spellings of the identifier field.
// Identificador wins when both are present.
type AnimalRequest struct {
	Identificador  string  `json:"identificador"`
	Identificacion string  `json:"identificacion"`
	Especie        *string `json:"especie"`
	Categoria      *string `json:"categoria"`
	Raza           *string `json:"raza"`
	Sexo           *string `json:"sexo" validate:"omitempty,oneof=M H Otro"`
	Color          *string `json:"color"`
	Edad           *int    `json:"edad" validate:"required"`
	Comerciante    *string `json:"comerciante"`
	Observaciones  *string `json:"observaciones"`
}

// IdentificadorNormalizado returns the canonical identifier or nil.
func (a *AnimalRequest) IdentificadorNormalizado() *string {
	if a.Identificador != "" {
		return &a.Identificador
	}
	if a.Identificacion != "" {
		return &a.Identificacion
	}
	return nil
}

// AveRequest accepts numero_galpon/galpon and total_aves/total alias pairs.
type AveRequest struct {
	NumeroGalpon  string  `json:"numero_galpon"`
	Galpon        string  `json:"galpon"`
	Categoria     *string `json:"categoria"`
	Edad          *int    `json:"edad"`
	TotalAves     *int    `json:"total_aves"`
	Total         *int    `json:"total"`
	Observaciones *string `json:"observaciones"`
}

func (a *AveRequest) GalponNormalizado() *string {
	if a.NumeroGalpon != "" {
		return &a.NumeroGalpon
	}
	if a.Galpon != "" {
		return &a.Galpon
	}
	return nil
}

func (a *AveRequest) TotalNormalizado() *int {
	if a.TotalAves != nil {
		return a.TotalAves
	}
	return a.Total
}

// TransporteRequest derives the terrestrial flag from either the explicit
// boolean or tipo_via == "terrestre".
type TransporteRequest struct {
	EsTerrestre           *bool   `json:"es_terrestre"`
	TipoVia               string  `json:"tipo_via"`
	NombreTransportista   *string `json:"nombre_transportista"`
	Placa                 *string `json:"placa"`
	TipoTransporte        *string `json:"tipo_transporte"`
	TelefonoTransportista *string `json:"telefono_transportista"`
	CedulaTransportista   *string `json:"cedula_transportista"`
	DetalleOtro           *string `json:"detalle_otro"`
}

func (t *TransporteRequest) EsTerrestreNormalizado() bool {
	if t.EsTerrestre != nil {
		return *t.EsTerrestre
	}
	return t.TipoVia == "terrestre"
}

// RegistroCompletoRequest is the body of POST /movilizaciones/registro-completo.
type RegistroCompletoRequest struct {
	Fecha        string               `json:"fecha" validate:"required"`
	Animales     []AnimalRequest      `json:"animales" validate:"dive"`
	Aves         []AveRequest         `json:"aves" validate:"dive"`
	PredioOrigen *PredioOrigenRequest `json:"predio_origen"`
	Destino      *DestinoRequest      `json:"destino"`
	Transporte   *TransporteRequest   `json:"transporte"`
}

// ─── Estado / validación / rechazo ───────────────────────────────────────────

type ActualizarEstadoRequest struct {
	ID          uint   `json:"id"`
	NuevoEstado string `json:"nuevoEstado" validate:"required"`
}

type ValidacionRequest struct {
	TiempoValidez *string `json:"tiempo_validez"`
	HoraInicio    *string `json:"hora_inicio"`
	HoraFin       *string `json:"hora_fin"`
	FirmaTecnico  *string `json:"firma_tecnico"`
}

type RechazoRequest struct {
	Observaciones string  `json:"observaciones" validate:"required"`
	FirmaTecnico  *string `json:"firma_tecnico"`
}

// ─── Filtros ─────────────────────────────────────────────────────────────────

// MovilizacionFilter is bound from the query string of the list endpoints.
// UsuarioID is injected by the handler when the caller is a ganadero.
type MovilizacionFilter struct {
	Estado      string `form:"estado"`
	FechaInicio string `form:"fecha_inicio"`
	FechaFin    string `form:"fecha_fin"`
	Nombre      string `form:"nombre"`
	CI          string `form:"ci"`
	UsuarioID   uint   `form:"-"`
}

// ─── Respuestas ──────────────────────────────────────────────────────────────

type EstadoCount struct {
	Estado string `json:"estado"`
	Total  int64  `json:"total"`
	Color  string `json:"color"`
}
