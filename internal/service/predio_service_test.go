package service

import (
	"context"
	"testing"

	"github.com/Xdennizhu20X/back-abg/internal/dto"
	"github.com/Xdennizhu20X/back-abg/internal/model"
	"github.com/Xdennizhu20X/back-abg/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory PredioRepository stub ──────────────────────────────────────────

type stubPredioRepo struct {
	seq         uint
	predios     map[uint]*model.Predio
	referencias map[uint]int64
}

var _ repository.PredioRepository = (*stubPredioRepo)(nil)

func newStubPredioRepo() *stubPredioRepo {
	return &stubPredioRepo{
		predios:     make(map[uint]*model.Predio),
		referencias: make(map[uint]int64),
	}
}

func (r *stubPredioRepo) Create(_ context.Context, p *model.Predio) error {
	r.seq++
	p.ID = r.seq
	r.predios[p.ID] = p
	return nil
}

func (r *stubPredioRepo) FindByID(_ context.Context, id uint) (*model.Predio, error) {
	p, ok := r.predios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPredioRepo) List(_ context.Context) ([]model.Predio, error) {
	out := make([]model.Predio, 0, len(r.predios))
	for _, p := range r.predios {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPredioRepo) ListByUsuario(_ context.Context, usuarioID uint) ([]model.Predio, error) {
	var out []model.Predio
	for _, p := range r.predios {
		if p.UsuarioID == usuarioID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPredioRepo) Update(_ context.Context, p *model.Predio) error {
	r.predios[p.ID] = p
	return nil
}

func (r *stubPredioRepo) Delete(_ context.Context, id uint) error {
	delete(r.predios, id)
	return nil
}

func (r *stubPredioRepo) CountReferencias(_ context.Context, predioID uint) (int64, error) {
	return r.referencias[predioID], nil
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCrearPredio_AsignaPropietario(t *testing.T) {
	repo := newStubPredioRepo()
	svc := NewPredioService(repo)

	predio, err := svc.Crear(context.Background(), 7, dto.CrearPredioRequest{
		Nombre:    "Finca El Progreso",
		Ubicacion: "Santa Cruz",
		Tipo:      model.PredioOrigen,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), predio.UsuarioID)
	assert.NotZero(t, predio.ID)
}

func TestListarPorUsuario_SoloLosPropios(t *testing.T) {
	repo := newStubPredioRepo()
	svc := NewPredioService(repo)

	_, err := svc.Crear(context.Background(), 1, dto.CrearPredioRequest{Nombre: "A", Ubicacion: "X", Tipo: model.PredioOrigen})
	require.NoError(t, err)
	_, err = svc.Crear(context.Background(), 2, dto.CrearPredioRequest{Nombre: "B", Ubicacion: "Y", Tipo: model.PredioDestino})
	require.NoError(t, err)

	propios, err := svc.ListarPorUsuario(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, propios, 1)
	assert.Equal(t, "A", propios[0].Nombre)
}

func TestActualizarPredio_IgnoraCamposVacios(t *testing.T) {
	repo := newStubPredioRepo()
	svc := NewPredioService(repo)
	predio, err := svc.Crear(context.Background(), 1, dto.CrearPredioRequest{Nombre: "A", Ubicacion: "X", Tipo: model.PredioOrigen})
	require.NoError(t, err)

	actualizado, err := svc.Actualizar(context.Background(), predio.ID, dto.ActualizarPredioRequest{Ubicacion: "Isabela"})
	require.NoError(t, err)
	assert.Equal(t, "A", actualizado.Nombre)
	assert.Equal(t, "Isabela", actualizado.Ubicacion)
}

func TestEliminarPredio_ConMovilizacionesRechaza(t *testing.T) {
	repo := newStubPredioRepo()
	svc := NewPredioService(repo)
	predio, err := svc.Crear(context.Background(), 1, dto.CrearPredioRequest{Nombre: "A", Ubicacion: "X", Tipo: model.PredioOrigen})
	require.NoError(t, err)
	repo.referencias[predio.ID] = 3

	err = svc.Eliminar(context.Background(), predio.ID)
	assertAPIError(t, err, 409, "El predio está asociado a movilizaciones y no puede eliminarse")
	assert.Contains(t, repo.predios, predio.ID)
}

func TestEliminarPredio_SinReferencias(t *testing.T) {
	repo := newStubPredioRepo()
	svc := NewPredioService(repo)
	predio, err := svc.Crear(context.Background(), 1, dto.CrearPredioRequest{Nombre: "A", Ubicacion: "X", Tipo: model.PredioOrigen})
	require.NoError(t, err)

	require.NoError(t, svc.Eliminar(context.Background(), predio.ID))
	assert.NotContains(t, repo.predios, predio.ID)
}

func TestEliminarPredio_NoEncontrado(t *testing.T) {
	svc := NewPredioService(newStubPredioRepo())

	err := svc.Eliminar(context.Background(), 42)
	assertAPIError(t, err, 404, "Predio no encontrado")
}
