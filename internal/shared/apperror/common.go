package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Recurso não encontrado",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"Você não tem permissão para acessar este recurso",
		http.StatusForbidden,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Autenticação necessária",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"Dados de entrada inválidos",
		http.StatusBadRequest,
	)

	ErrInternal = New(
		CodeInternalError,
		"Ocorreu um erro inesperado",
		http.StatusInternalServerError,
	)

	// ErrOwnership é levantado pelo filtro de tenant antes de qualquer
	// leitura quando o registro referenciado pertence a outro administrador.
	ErrOwnership = New(
		CodeOwnershipViolation,
		"Registro pertence a outro administrador",
		http.StatusForbidden,
	)

	ErrConflict = New(
		CodeConflict,
		"Registro já existe para este dia",
		http.StatusConflict,
	)

	ErrInvalidPeriod = New(
		CodeInvalidPeriod,
		"Período inválido: data final anterior à inicial",
		http.StatusBadRequest,
	)

	ErrTimeout = New(
		CodeTimeout,
		"Operação excedeu o tempo limite",
		http.StatusGatewayTimeout,
	)
)

func MissingTimes(recordType string) *AppError {
	return New(
		CodeMissingTimes,
		fmt.Sprintf("Tipo %q exige horários de entrada e saída", recordType),
		http.StatusBadRequest,
	)
}

func ScheduleMismatch(recordType string) *AppError {
	return New(
		CodeScheduleMismatch,
		fmt.Sprintf("Tipo %q não admite horários", recordType),
		http.StatusBadRequest,
	)
}

// InternalInvariant sinaliza um registro que viola invariantes após a
// normalização. É bug, não erro de usuário: aborta a transação.
func InternalInvariant(detail string) *AppError {
	return New(
		CodeInternalInvariant,
		"Registro normalizado viola invariante: "+detail,
		http.StatusInternalServerError,
	)
}

func Dependency(err error, what string) *AppError {
	return Wrap(err, CodeDependency, "Falha em dependência externa: "+what, http.StatusBadGateway)
}

func RequiredField(field string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s is required", field), http.StatusBadRequest)
}

func InvalidField(field string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s is invalid", field), http.StatusBadRequest)
}
