package contract

import (
	"errors"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/batch"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
)

type ErrorCode string

const (
	ErrCodeValidation     ErrorCode = "VALIDATION"
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"
	ErrCodeNotStakeholder ErrorCode = "NOT_STAKEHOLDER"
	ErrCodeContention     ErrorCode = "CONTENTION"
	ErrCodePersistence    ErrorCode = "PERSISTENCE"
	ErrCodeSchemaMode     ErrorCode = "SCHEMA_MODE"
	ErrCodeInternal       ErrorCode = "INTERNAL_ERROR"
)

// ErrorResponse is the single error body returned for a failed request.
type ErrorResponse struct {
	Message   string    `json:"message"`
	Code      ErrorCode `json:"code"`
	Retryable bool      `json:"retryable,omitempty"`
}

// CodeFor classifies err. ErrNotStakeholder is checked before the generic
// not-found kind it is carried under.
func CodeFor(err error) ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrNotStakeholder):
		return ErrCodeNotStakeholder
	case errors.Is(err, batch.ErrValidation):
		return ErrCodeValidation
	case errors.Is(err, batch.ErrNotFound):
		return ErrCodeNotFound
	case errors.Is(err, batch.ErrContention):
		return ErrCodeContention
	case errors.Is(err, batch.ErrSchemaMode):
		return ErrCodeSchemaMode
	case errors.Is(err, batch.ErrPersistence):
		return ErrCodePersistence
	default:
		return ErrCodeInternal
	}
}

// NewErrorResponse builds the body for err. Persistence and internal
// failures get a generic message; store details stay in the logs.
func NewErrorResponse(err error) ErrorResponse {
	code := CodeFor(err)
	msg := err.Error()
	switch code {
	case ErrCodePersistence, ErrCodeInternal:
		msg = "the request could not be completed"
	case ErrCodeSchemaMode:
		msg = "the store is misconfigured"
	case ErrCodeNotStakeholder:
		msg = "user is not a stakeholder for this use case"
	}
	return ErrorResponse{Message: msg, Code: code, Retryable: batch.IsRetryable(err)}
}
