package facecache

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/employee"
)

// fakeProvider devolve um vetor fixo, ou erro para imagens marcadas.
type fakeProvider struct {
	failOn map[string]struct{}
}

func (f *fakeProvider) Embed(_ context.Context, image []byte) ([]float64, error) {
	if _, bad := f.failOn[string(image)]; bad {
		return nil, errors.New("provedor indisponível")
	}
	vector := make([]float64, 128)
	vector[0] = float64(len(image))
	return vector, nil
}

type fakeEmployeeRepo struct {
	rows   map[uuid.UUID]*employee.Funcionario
	photos map[uuid.UUID][]employee.FotoFacial
}

func (f *fakeEmployeeRepo) WithTx(_ *sql.Tx) employee.Repository                    { return f }
func (f *fakeEmployeeRepo) Create(_ context.Context, _ *employee.Funcionario) error { return nil }
func (f *fakeEmployeeRepo) Update(_ context.Context, _ *employee.Funcionario) error { return nil }
func (f *fakeEmployeeRepo) FindByID(_ context.Context, id uuid.UUID) (*employee.Funcionario, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}
func (f *fakeEmployeeRepo) FindAll(_ context.Context, _ uuid.UUID, _ bool) ([]employee.Funcionario, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindAllActive(_ context.Context, tenantID *uuid.UUID) ([]employee.Funcionario, error) {
	var out []employee.Funcionario
	for _, row := range f.rows {
		if !row.Ativo {
			continue
		}
		if tenantID != nil && row.TenantID != *tenantID {
			continue
		}
		out = append(out, *row)
	}
	return out, nil
}
func (f *fakeEmployeeRepo) HasTimeRecords(_ context.Context, _ uuid.UUID) (bool, error) {
	return false, nil
}
func (f *fakeEmployeeRepo) ListPhotos(_ context.Context, funcionarioID uuid.UUID) ([]employee.FotoFacial, error) {
	return f.photos[funcionarioID], nil
}
func (f *fakeEmployeeRepo) AddPhoto(_ context.Context, _ *employee.FotoFacial) error { return nil }
func (f *fakeEmployeeRepo) DeletePhotos(_ context.Context, _, _ uuid.UUID) error     { return nil }

func photo(funcID uuid.UUID, content, desc string) employee.FotoFacial {
	return employee.FotoFacial{
		ID:            uuid.New(),
		FuncionarioID: funcID,
		Conteudo:      []byte(content),
		Descricao:     desc,
		Ativa:         true,
	}
}

func TestRebuildWritesAtomically(t *testing.T) {
	tenantID := uuid.New()
	empA := uuid.New()
	empB := uuid.New()

	repo := &fakeEmployeeRepo{
		rows: map[uuid.UUID]*employee.Funcionario{
			empA: {ID: empA, TenantID: tenantID, Codigo: "F001", Nome: "Carlos", Ativo: true},
			empB: {ID: empB, TenantID: tenantID, Codigo: "F002", Nome: "Maria", Ativo: true},
		},
		photos: map[uuid.UUID][]employee.FotoFacial{
			empA: {photo(empA, "img-a1", "frente"), photo(empA, "img-a2", "perfil")},
			empB: {photo(empB, "img-b1", "frente")},
		},
	}

	store := NewStore(t.TempDir())
	svc := NewService(store, &fakeProvider{}, repo)

	stats, err := svc.Rebuild(context.Background(), &tenantID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Funcionarios)
	assert.Equal(t, 3, stats.Embeddings)
	assert.Zero(t, stats.ImagensComFalha)

	cache, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, cache)
	assert.Equal(t, ModelName, cache.ModelName)
	assert.Len(t, cache.Entries, 2)
	assert.Len(t, cache.Entries[empA.String()].Embeddings, 2)
}

func TestRebuildSkipsFailedImagesAndDropsEmpty(t *testing.T) {
	tenantID := uuid.New()
	empA := uuid.New()
	empB := uuid.New()

	repo := &fakeEmployeeRepo{
		rows: map[uuid.UUID]*employee.Funcionario{
			empA: {ID: empA, TenantID: tenantID, Codigo: "F001", Nome: "Carlos", Ativo: true},
			empB: {ID: empB, TenantID: tenantID, Codigo: "F002", Nome: "Maria", Ativo: true},
		},
		photos: map[uuid.UUID][]employee.FotoFacial{
			empA: {photo(empA, "ruim", "frente"), photo(empA, "boa", "perfil")},
			empB: {photo(empB, "ruim", "frente")},
		},
	}

	store := NewStore(t.TempDir())
	svc := NewService(store, &fakeProvider{failOn: map[string]struct{}{"ruim": {}}}, repo)

	// a reconstrução inteira sucede mesmo com imagens falhando
	stats, err := svc.Rebuild(context.Background(), &tenantID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Funcionarios)
	assert.Equal(t, 2, stats.ImagensComFalha)
	assert.Equal(t, 1, stats.Descartados)

	cache, err := store.Load()
	require.NoError(t, err)
	_, hasA := cache.Entries[empA.String()]
	_, hasB := cache.Entries[empB.String()]
	assert.True(t, hasA)
	assert.False(t, hasB)
}

func TestRebuildForTenantPreservesOtherPartitions(t *testing.T) {
	tenantA := uuid.New()
	tenantB := uuid.New()
	empA := uuid.New()
	empB := uuid.New()

	repo := &fakeEmployeeRepo{
		rows: map[uuid.UUID]*employee.Funcionario{
			empA: {ID: empA, TenantID: tenantA, Codigo: "F001", Nome: "Carlos", Ativo: true},
			empB: {ID: empB, TenantID: tenantB, Codigo: "F001", Nome: "Maria", Ativo: true},
		},
		photos: map[uuid.UUID][]employee.FotoFacial{
			empA: {photo(empA, "img-a", "frente")},
			empB: {photo(empB, "img-b", "frente")},
		},
	}

	store := NewStore(t.TempDir())
	svc := NewService(store, &fakeProvider{}, repo)

	_, err := svc.Rebuild(context.Background(), nil)
	require.NoError(t, err)

	// reconstruir só o tenant A não apaga a fatia do tenant B
	_, err = svc.Rebuild(context.Background(), &tenantA)
	require.NoError(t, err)

	cache, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, cache.Entries, 2)
}

func TestRefreshOneAndRemove(t *testing.T) {
	tenantID := uuid.New()
	empA := uuid.New()

	repo := &fakeEmployeeRepo{
		rows: map[uuid.UUID]*employee.Funcionario{
			empA: {ID: empA, TenantID: tenantID, Codigo: "F001", Nome: "Carlos", Ativo: true},
		},
		photos: map[uuid.UUID][]employee.FotoFacial{
			empA: {photo(empA, "img-a", "frente")},
		},
	}

	store := NewStore(t.TempDir())
	svc := NewService(store, &fakeProvider{}, repo)

	require.NoError(t, svc.RefreshOne(context.Background(), empA))
	cache, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, cache.Entries, 1)

	require.NoError(t, svc.Remove(context.Background(), empA))
	cache, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, cache.Entries)

	// remover de novo é inócuo
	require.NoError(t, svc.Remove(context.Background(), empA))
}

func TestLoadMissingReturnsNil(t *testing.T) {
	store := NewStore(t.TempDir())
	cache, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, cache)
}
