package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Message broker errors
var (
	ErrServiceUnreachable = errors.New("service unreachable")
	ErrPublishFailed      = errors.New("publish failed")
	ErrJSONMarshal        = errors.New("JSON marshal error")
)

func NewServiceUnreachableError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrServiceUnreachable,
		Details:    fmt.Sprintf("Cannot reach %s", service),
		Cause:      cause,
	}
}

func NewPublishError(service, routingKey string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrPublishFailed,
		Details:    fmt.Sprintf("Failed to publish %s to %s", routingKey, service),
		Cause:      cause,
	}
}

func NewJSONMarshalError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrJSONMarshal,
		Details:    fmt.Sprintf("Failed to marshal JSON during %s", operation),
		Cause:      cause,
	}
}
