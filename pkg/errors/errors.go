package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	CodeAppError         = "APP_ERROR"
	CodeAPIError         = "API_ERROR"
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeCache            = "CACHE_ERROR"
	CodeService          = "SERVICE_ERROR"
)

type AppError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewAppError(message, code string, statusCode int, context map[string]any) *AppError {
	return &AppError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) errorCode() string {
	return e.Code
}

// APIError reports a failed call to a third-party API (transcription providers, YouTube).
type APIError struct {
	*AppError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

func (e *APIError) WithCause(cause error) *APIError {
	e.Cause = cause
	return e
}

type ValidationError struct {
	*AppError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: http.StatusBadRequest,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type NotFoundError struct {
	*AppError
	Resource string
	ID       string
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{
		AppError: &AppError{
			Message:    fmt.Sprintf("%s not found", resource),
			Code:       CodeNotFound,
			StatusCode: http.StatusNotFound,
			Context: map[string]any{
				"resource": resource,
				"id":       id,
			},
		},
		Resource: resource,
		ID:       id,
	}
}

type StoreUnavailableError struct {
	*AppError
	Store string
}

func NewStoreUnavailableError(store string, cause error) *StoreUnavailableError {
	return &StoreUnavailableError{
		AppError: &AppError{
			Message:    "Database not available",
			Code:       CodeStoreUnavailable,
			StatusCode: http.StatusServiceUnavailable,
			Context: map[string]any{
				"store": store,
			},
			Cause: cause,
		},
		Store: store,
	}
}

type CacheError struct {
	*AppError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: http.StatusInternalServerError,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

type ServiceError struct {
	*AppError
	Service   string
	Operation string
}

func NewServiceError(message, service, operation string, cause error) *ServiceError {
	return &ServiceError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeService,
			StatusCode: http.StatusInternalServerError,
			Context: map[string]any{
				"service":   service,
				"operation": operation,
			},
			Cause: cause,
		},
		Service:   service,
		Operation: operation,
	}
}

// StatusCode extracts the HTTP status carried by any error in the chain.
// Errors outside this package map to 500.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		validation  *ValidationError
		notFound    *NotFoundError
		unavailable *StoreUnavailableError
		cacheErr    *CacheError
		serviceErr  *ServiceError
		apiErr      *APIError
		appErr      *AppError
	)

	switch {
	case stderrors.As(err, &validation):
		return validation.StatusCode
	case stderrors.As(err, &notFound):
		return notFound.StatusCode
	case stderrors.As(err, &unavailable):
		return unavailable.StatusCode
	case stderrors.As(err, &cacheErr):
		return cacheErr.StatusCode
	case stderrors.As(err, &serviceErr):
		return serviceErr.StatusCode
	case stderrors.As(err, &apiErr):
		return apiErr.StatusCode
	case stderrors.As(err, &appErr):
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return stderrors.As(err, &notFound)
}

// IsStoreUnavailable reports whether err is a StoreUnavailableError.
func IsStoreUnavailable(err error) bool {
	var unavailable *StoreUnavailableError
	return stderrors.As(err, &unavailable)
}

// Code returns the error code of the first typed error in the chain, or "".
func Code(err error) string {
	var coded interface{ errorCode() string }
	if stderrors.As(err, &coded) {
		return coded.errorCode()
	}
	return ""
}
