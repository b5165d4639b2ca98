package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
	ErrDatabaseTimeout    = errors.New("database timeout")
	ErrInvalidID          = errors.New("invalid id")
)

func NewAlreadyExists(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("%s %w", entity, ErrAlreadyExists),
	}
}

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// NewInvalidIDError reports an identifier that is not a valid document id.
func NewInvalidIDError(entity, raw string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("%s %w", entity, ErrInvalidID),
		Details:    fmt.Sprintf("%q is not a valid %s id", raw, entity),
		Field:      "id",
		Cause:      cause,
	}
}

// NewDatabaseError creates a new database error with details about the operation
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	switch {
	case cause == nil:
	case errors.Is(cause, mongo.ErrNoDocuments):
		apiErr := NewNotFound(entity)
		apiErr.Details = details
		return apiErr
	case mongo.IsDuplicateKeyError(cause):
		apiErr := NewAlreadyExists(entity)
		apiErr.Details = details
		apiErr.Cause = cause
		return apiErr
	case mongo.IsTimeout(cause), errors.Is(cause, context.DeadlineExceeded):
		return &ApiErr{
			StatusCode: http.StatusServiceUnavailable,
			err:        ErrDatabaseTimeout,
			Details:    details,
			Cause:      cause,
		}
	case mongo.IsNetworkError(cause), errors.Is(cause, mongo.ErrClientDisconnected):
		return &ApiErr{
			StatusCode: http.StatusServiceUnavailable,
			err:        ErrDatabaseConnection,
			Details:    "Unable to connect to database",
			Cause:      cause,
		}
	}

	// Generic database error
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		Details:    details,
		Cause:      cause,
	}
}
