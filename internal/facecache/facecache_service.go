package facecache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/employee"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/apperror"
)

// Stats resume uma reconstrução: funcionários gravados, embeddings
// computados, imagens puladas por falha do provedor e funcionários
// descartados por não sobrar imagem válida.
type Stats struct {
	Funcionarios    int `json:"funcionarios"`
	Embeddings      int `json:"embeddings"`
	ImagensComFalha int `json:"imagens_com_falha"`
	Descartados     int `json:"descartados"`
}

//go:generate mockgen -source=facecache_service.go -destination=mock/facecache_service_mock.go -package=mock
type Service interface {
	Rebuild(ctx context.Context, tenantID *uuid.UUID) (Stats, error)
	RefreshOne(ctx context.Context, employeeID uuid.UUID) error
	Remove(ctx context.Context, employeeID uuid.UUID) error
	Load() (*File, error)
}

type service struct {
	store     *Store
	provider  Provider
	employees employee.Repository
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(store *Store, provider Provider, employees employee.Repository) Service {
	return &service{
		store:     store,
		provider:  provider,
		employees: employees,
		sf:        &singleflight.Group{},
		logger:    zap.L().Named("facecache.service"),
	}
}

// Rebuild recomputa o cache inteiro (ou só a partição de um tenant) e o
// grava atomicamente. Reconstruções concorrentes colapsam numa só.
func (s *service) Rebuild(ctx context.Context, tenantID *uuid.UUID) (Stats, error) {
	key := "rebuild:all"
	if tenantID != nil {
		key = "rebuild:" + tenantID.String()
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.rebuild(ctx, tenantID)
	})
	if err != nil {
		return Stats{}, err
	}
	return v.(Stats), nil
}

func (s *service) rebuild(ctx context.Context, tenantID *uuid.UUID) (Stats, error) {
	rows, err := s.employees.FindAllActive(ctx, tenantID)
	if err != nil {
		return Stats{}, err
	}

	cache := NewFile()
	if tenantID != nil {
		// reconstrução parcial preserva as fatias dos outros tenants
		if existing, err := s.store.Load(); err == nil && existing != nil {
			for id, entry := range existing.Entries {
				if entry.TenantID != tenantID.String() {
					cache.Entries[id] = entry
				}
			}
		}
	}

	var stats Stats
	for i := range rows {
		entry, skipped, err := s.buildEntry(ctx, &rows[i])
		if err != nil {
			return Stats{}, err
		}
		stats.ImagensComFalha += skipped
		if entry == nil {
			stats.Descartados++
			continue
		}
		cache.Entries[rows[i].ID.String()] = *entry
		stats.Funcionarios++
		stats.Embeddings += len(entry.Embeddings)
	}

	if err := s.store.Write(cache); err != nil {
		return Stats{}, apperror.Dependency(err, "escrita do cache facial")
	}

	s.logger.Info("cache facial reconstruído",
		zap.Int("funcionarios", stats.Funcionarios),
		zap.Int("embeddings", stats.Embeddings),
		zap.Int("imagens_com_falha", stats.ImagensComFalha),
		zap.Int("descartados", stats.Descartados),
	)
	return stats, nil
}

// buildEntry computa a fatia de um funcionário. Falha do provedor numa
// imagem é logada e a imagem pulada; sem nenhuma imagem válida o
// funcionário sai do cache mas a reconstrução segue.
func (s *service) buildEntry(ctx context.Context, emp *employee.Funcionario) (*Entry, int, error) {
	photos, err := s.employees.ListPhotos(ctx, emp.ID)
	if err != nil {
		return nil, 0, err
	}

	skipped := 0
	var embeddings []Embedding
	for _, photo := range photos {
		vector, err := s.provider.Embed(ctx, photo.Conteudo)
		if err != nil {
			skipped++
			s.logger.Warn("embedding falhou, imagem pulada",
				zap.String("funcionario_id", emp.ID.String()),
				zap.String("foto_id", photo.ID.String()),
				zap.Error(err),
			)
			continue
		}
		embeddings = append(embeddings, Embedding{
			Vector:     vector,
			Descriptor: photo.Descricao,
		})
	}

	if len(embeddings) == 0 {
		return nil, skipped, nil
	}

	return &Entry{
		TenantID:   emp.TenantID.String(),
		Nome:       emp.Nome,
		Codigo:     emp.Codigo,
		Embeddings: embeddings,
		UpdatedAt:  time.Now().UTC(),
	}, skipped, nil
}

// RefreshOne recomputa só a fatia de um funcionário e regrava o arquivo.
func (s *service) RefreshOne(ctx context.Context, employeeID uuid.UUID) error {
	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return err
	}

	cache, err := s.store.Load()
	if err != nil {
		return err
	}
	if cache == nil {
		cache = NewFile()
	}

	entry, _, err := s.buildEntry(ctx, emp)
	if err != nil {
		return err
	}
	if entry == nil {
		delete(cache.Entries, employeeID.String())
	} else {
		cache.Entries[employeeID.String()] = *entry
	}

	if err := s.store.Write(cache); err != nil {
		return apperror.Dependency(err, fmt.Sprintf("escrita do cache facial (%s)", employeeID))
	}
	return nil
}

// Remove descarta a fatia do funcionário e regrava.
func (s *service) Remove(_ context.Context, employeeID uuid.UUID) error {
	cache, err := s.store.Load()
	if err != nil {
		return err
	}
	if cache == nil {
		return nil
	}
	if _, ok := cache.Entries[employeeID.String()]; !ok {
		return nil
	}

	delete(cache.Entries, employeeID.String())
	return s.store.Write(cache)
}

func (s *service) Load() (*File, error) {
	return s.store.Load()
}
