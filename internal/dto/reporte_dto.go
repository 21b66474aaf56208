package dto

// ReporteFilter drives both the xlsx report and the chart aggregations.
// The año/mes fields expand into FechaDesde/FechaHasta before querying.
type ReporteFilter struct {
	FechaDesde string `form:"fechaDesde"`
	FechaHasta string `form:"fechaHasta"`
	Estado     string `form:"estado"`
	Cedula     string `form:"cedula"`
	Anio       string `form:"año"`
	Mes        string `form:"mes"`
	MesDesde   string `form:"mesDesde"`
	MesHasta   string `form:"mesHasta"`
}

// DatosGrafico are the dashboard totals for one requester (or global).
type DatosGrafico struct {
	TotalMovilizaciones int `json:"totalMovilizaciones"`
	TotalAnimales       int `json:"totalAnimales"`
	TotalAves           int `json:"totalAves"`
}
