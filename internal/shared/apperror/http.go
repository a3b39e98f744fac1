package apperror

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP converte qualquer erro do core para a forma que o envelope JSON
// espera. Erros desconhecidos são registrados e viram INTERNAL_ERROR para não
// vazar detalhes internos.
func ToHTTP(err error) HTTPError {
	var app *AppError
	if errors.As(err, &app) {
		var details any
		if app.Err != nil && app.HTTPStatus < http.StatusInternalServerError {
			details = app.Err.Error()
		}
		return HTTPError{
			Status:  app.HTTPStatus,
			Code:    app.Code,
			Message: app.Message,
			Details: details,
		}
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return HTTPError{
			Status:  ErrNotFound.HTTPStatus,
			Code:    ErrNotFound.Code,
			Message: ErrNotFound.Message,
		}
	case errors.Is(err, context.DeadlineExceeded):
		return HTTPError{
			Status:  ErrTimeout.HTTPStatus,
			Code:    ErrTimeout.Code,
			Message: ErrTimeout.Message,
		}
	}

	zap.L().Error("unhandled error reached HTTP boundary", zap.Error(err))
	return HTTPError{
		Status:  ErrInternal.HTTPStatus,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
}
