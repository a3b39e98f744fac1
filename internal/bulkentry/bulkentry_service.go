package bulkentry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/employee"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/schedule"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/apperror"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/tenant"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/timerecord"
)

const dateLayout = "2006-01-02"

const maxPeriodDays = 92

//go:generate mockgen -source=bulkentry_service.go -destination=mock/bulkentry_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, actor tenant.Actor, req ApplyRequest) (ApplyResponse, error)
}

type service struct {
	records   timerecord.Service
	store     timerecord.Repository
	employees employee.Repository
	schedules schedule.Repository
	logger    *zap.Logger
}

func NewService(
	records timerecord.Service,
	store timerecord.Repository,
	employees employee.Repository,
	schedules schedule.Repository,
) Service {
	return &service{
		records:   records,
		store:     store,
		employees: employees,
		schedules: schedules,
		logger:    zap.L().Named("bulkentry.service"),
	}
}

// Apply percorre o produto (funcionários × dias) aplicando o template via o
// normalizador. A operação não é atômica entre pares; cada par é atômico, e
// uma repetição com skip_existing converge.
func (s *service) Apply(ctx context.Context, actor tenant.Actor, req ApplyRequest) (ApplyResponse, error) {
	start, err := time.Parse(dateLayout, req.DataInicio)
	if err != nil {
		return ApplyResponse{}, apperror.InvalidField("data_inicio")
	}
	end, err := time.Parse(dateLayout, req.DataFim)
	if err != nil {
		return ApplyResponse{}, apperror.InvalidField("data_fim")
	}
	if end.Before(start) || end.Sub(start) > maxPeriodDays*24*time.Hour {
		return ApplyResponse{}, apperror.ErrInvalidPeriod
	}

	tipo, err := timerecord.ParseRecordType(req.Template.Tipo)
	if err != nil {
		return ApplyResponse{}, err
	}

	var resp ApplyResponse
	for _, rawID := range req.FuncionarioIDs {
		funcID, err := uuid.Parse(rawID)
		if err != nil {
			return ApplyResponse{}, apperror.InvalidField("funcionario_ids")
		}

		emp, err := s.employees.FindByID(ctx, funcID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ApplyResponse{}, apperror.ErrNotFound
			}
			return ApplyResponse{}, err
		}
		if err := tenant.AssertOwned(emp, actor.ResolveTenant()); err != nil {
			return ApplyResponse{}, err
		}

		horario, err := s.scheduleFor(ctx, emp)
		if err != nil {
			return ApplyResponse{}, err
		}

		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if !coversDay(horario, tipo, d) {
				continue
			}
			outcome := s.applyPair(ctx, actor, emp, tipo, d, req)
			resp.Resultados = append(resp.Resultados, outcome)
			switch outcome.Resultado {
			case OutcomeCreated:
				resp.Criados++
			case OutcomeUpdated:
				resp.Alterados++
			case OutcomeSkipped:
				resp.Ignorados++
			case OutcomeFailed:
				resp.Falhas++
			}
		}
	}

	s.logger.Info("lançamento em lote concluído",
		zap.Int("criados", resp.Criados),
		zap.Int("alterados", resp.Alterados),
		zap.Int("ignorados", resp.Ignorados),
		zap.Int("falhas", resp.Falhas),
	)
	return resp, nil
}

func (s *service) scheduleFor(ctx context.Context, emp *employee.Funcionario) (*schedule.HorarioTrabalho, error) {
	if emp.HorarioTrabalhoID == nil {
		return nil, nil
	}
	horario, err := s.schedules.FindByID(ctx, emp.TenantID, *emp.HorarioTrabalhoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return horario, nil
}

// coversDay decide se a data entra no lote: tipos de folga aplicam
// incondicionalmente; os demais respeitam a máscara de dias do horário.
// Sem horário atribuído, todos os dias entram.
func coversDay(horario *schedule.HorarioTrabalho, tipo timerecord.RecordType, d time.Time) bool {
	if tipo.IsRestDay() {
		return true
	}
	if horario == nil {
		return true
	}
	return horario.CoversWeekday(d.Weekday())
}

func (s *service) applyPair(
	ctx context.Context,
	actor tenant.Actor,
	emp *employee.Funcionario,
	tipo timerecord.RecordType,
	d time.Time,
	req ApplyRequest,
) PairOutcome {
	outcome := PairOutcome{
		FuncionarioID: emp.ID.String(),
		Data:          d.Format(dateLayout),
	}

	_, err := s.store.Get(ctx, emp.TenantID, emp.ID, d)
	exists := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		outcome.Resultado = OutcomeFailed
		outcome.Motivo = err.Error()
		return outcome
	}

	if exists {
		switch req.Politica {
		case PolicySkipExisting:
			outcome.Resultado = OutcomeSkipped
			return outcome
		case PolicyFailOnConflict:
			outcome.Resultado = OutcomeFailed
			outcome.Motivo = apperror.ErrConflict.Message
			return outcome
		}
	}

	_, err = s.records.Submit(ctx, actor, timerecord.SubmitRecordRequest{
		FuncionarioID:    emp.ID.String(),
		Data:             d.Format(dateLayout),
		Tipo:             tipo.String(),
		Entrada:          req.Template.Entrada,
		SaidaAlmoco:      req.Template.SaidaAlmoco,
		RetornoAlmoco:    req.Template.RetornoAlmoco,
		Saida:            req.Template.Saida,
		ObraID:           req.Template.ObraID,
		Observacoes:      req.Template.Observacoes,
		PercentualExtras: req.Template.PercentualExtras,
	})
	if err != nil {
		outcome.Resultado = OutcomeFailed
		outcome.Motivo = err.Error()
		return outcome
	}

	if exists {
		outcome.Resultado = OutcomeUpdated
	} else {
		outcome.Resultado = OutcomeCreated
	}
	return outcome
}
