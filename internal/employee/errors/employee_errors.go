package employeeerrors

import (
	"net/http"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Funcionário não encontrado",
		http.StatusNotFound,
	)
	ErrCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Já existe funcionário com este código no tenant",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"ID de funcionário inválido",
		http.StatusBadRequest,
	)
	ErrInvalidSalary = apperror.New(
		apperror.CodeInvalidInput,
		"Salário deve ser positivo",
		http.StatusBadRequest,
	)
	ErrHasHistory = apperror.New(
		apperror.CodeConflict,
		"Funcionário com histórico não pode ser excluído; desative-o",
		http.StatusConflict,
	)
)
