package employee

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	employeeerrors "github.com/cassioviller/EnterpriseSync-1-sub000/internal/employee/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "idx_funcionario_tenant_codigo" {
			return employeeerrors.ErrCodeAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "idx_funcionario_tenant_codigo") {
		return employeeerrors.ErrCodeAlreadyExists
	}

	return err
}
