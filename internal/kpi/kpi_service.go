package kpi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/calendar"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/employee"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/schedule"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/apperror"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/tenant"
)

const dateLayout = "2006-01-02"

const cacheTTL = 10 * time.Minute

// KeyPrefix devolve o prefixo de cache do par (tenant, funcionário); o
// consumidor de invalidação varre e remove tudo sob ele.
func KeyPrefix(tenantID, funcionarioID string) string {
	return fmt.Sprintf("kpi:%s:%s:", tenantID, funcionarioID)
}

func cacheKey(tenantID, funcionarioID string, start, end time.Time) string {
	return KeyPrefix(tenantID, funcionarioID) + start.Format(dateLayout) + ":" + end.Format(dateLayout)
}

//go:generate mockgen -source=kpi_service.go -destination=mock/kpi_service_mock.go -package=mock
type Service interface {
	Compute(ctx context.Context, actor tenant.Actor, req ComputeKPIRequest) (KPIResponse, error)
}

type service struct {
	snapshots SnapshotReader
	employees employee.Repository
	schedules schedule.Repository
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger

	// força salário/220 independentemente de horário e calendário; só para
	// determinismo em ambiente de teste
	forceRateFallback bool
}

func NewService(
	snapshots SnapshotReader,
	employees employee.Repository,
	schedules schedule.Repository,
	rdb *redis.Client,
	forceRateFallback bool,
) Service {
	return &service{
		snapshots:         snapshots,
		employees:         employees,
		schedules:         schedules,
		rdb:               rdb,
		sf:                &singleflight.Group{},
		logger:            zap.L().Named("kpi.service"),
		forceRateFallback: forceRateFallback,
	}
}

func (s *service) Compute(ctx context.Context, actor tenant.Actor, req ComputeKPIRequest) (KPIResponse, error) {
	funcID, err := uuid.Parse(req.FuncionarioID)
	if err != nil {
		return KPIResponse{}, apperror.InvalidField("funcionario_id")
	}

	start, err := time.Parse(dateLayout, req.DataInicio)
	if err != nil {
		return KPIResponse{}, apperror.InvalidField("data_inicio")
	}
	end, err := time.Parse(dateLayout, req.DataFim)
	if err != nil {
		return KPIResponse{}, apperror.InvalidField("data_fim")
	}
	if end.Before(start) {
		return KPIResponse{}, apperror.ErrInvalidPeriod
	}

	// a violação de posse é levantada antes de qualquer leitura de ponto
	emp, err := s.employees.FindByID(ctx, funcID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return KPIResponse{}, apperror.ErrNotFound
		}
		return KPIResponse{}, err
	}
	if err := tenant.AssertOwned(emp, actor.ResolveTenant()); err != nil {
		return KPIResponse{}, err
	}

	key := cacheKey(emp.TenantID.String(), emp.ID.String(), start, end)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp KPIResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		resp, err := s.compute(ctx, emp, start, end)
		if err != nil {
			return nil, err
		}
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, key, jsonData, cacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return KPIResponse{}, err
	}
	return v.(KPIResponse), nil
}

func (s *service) compute(ctx context.Context, emp *employee.Funcionario, start, end time.Time) (KPIResponse, error) {
	snap, err := s.snapshots.ReadPeriod(ctx, emp.TenantID, emp.ID, start, end)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return KPIResponse{}, apperror.ErrTimeout
		}
		return KPIResponse{}, err
	}

	dailyHours := 0.0
	if emp.HorarioTrabalhoID != nil {
		horario, err := s.schedules.FindByID(ctx, emp.TenantID, *emp.HorarioTrabalhoID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return KPIResponse{}, err
		}
		if err == nil {
			dailyHours = horario.HorasDiarias
		}
	}

	workingDays := calendar.WorkingDays(start, end, snap.Holidays)

	rateDaily, rateDays := dailyHours, workingDays
	if s.forceRateFallback {
		rateDaily, rateDays = 0, 0
	}
	rate, fallback := calendar.HourlyRate(emp.Salario, rateDaily, rateDays)

	result := Aggregate(Input{
		Records:      snap.Records,
		Adjustments:  snap.Adjustments,
		Meals:        snap.Meals,
		HourlyRate:   rate,
		RateFallback: fallback,
		WorkingDays:  workingDays,
		DailyHours:   dailyHours,
	})

	if result.InternalInvariantViolations > 0 {
		s.logger.Warn("registros corrompidos no período",
			zap.String("funcionario_id", emp.ID.String()),
			zap.Int("violacoes", result.InternalInvariantViolations),
		)
	}

	return KPIResponse{
		FuncionarioID: emp.ID.String(),
		DataInicio:    start.Format(dateLayout),
		DataFim:       end.Format(dateLayout),

		HorasTrabalhadas:   result.HoursWorked,
		HorasExtras:        result.OvertimeHours,
		Faltas:             result.UnjustifiedAbsences,
		AtrasosHoras:       result.DelayHours,
		ProdutividadePct:   result.ProductivityPct,
		AbsenteismoPct:     result.AbsenteeismPct,
		MediaDiariaHoras:   result.DailyAverageHours,
		FaltasJustificadas: result.JustifiedAbsences,
		CustoMaoObra:       result.LabourCost.StringFixed(2),
		CustoAlimentacao:   result.MealCost.StringFixed(2),
		CustoTransporte:    result.TransportCost.StringFixed(2),
		OutrosCustos:       result.OtherCosts.StringFixed(2),
		CustoTotal:         result.TotalCost.StringFixed(2),
		EficienciaPct:      result.EfficiencyPct,
		HorasPerdidas:      result.LostHours,

		ValorHora:           rate.Round(2).StringFixed(2),
		RateFallback:        fallback,
		ViolacoesInvariante: result.InternalInvariantViolations,
		DiasUteis:           workingDays,
	}, nil
}
