package domain

import "errors"

// Domain errors (для бизнес-логики)
var (
	// Validation errors
	ErrInvalidUserID           = errors.New("invalid user id")
	ErrInvalidDeactivationType = errors.New("deactivation_type must be 'immediate' or 'scheduled'")
	ErrScheduledDateRequired   = errors.New("scheduled_date is required for scheduled deactivation")
	ErrScheduledTimeNotFuture  = errors.New("scheduled time must be in the future")

	// Not found errors
	ErrUserNotFound   = errors.New("user not found")
	ErrActionNotFound = errors.New("scheduled action not found")

	// Precondition errors (нарушение предусловий машины статусов)
	ErrUserAlreadyActive       = errors.New("user is already active")
	ErrUserAlreadyInactive     = errors.New("user is already inactive")
	ErrUserNotInactive         = errors.New("user is not inactive")
	ErrNoScheduledDeactivation = errors.New("user does not have a scheduled deactivation")
	ErrActionNotPending        = errors.New("scheduled action is not pending")
)

// HTTPError для единообразных ответов об ошибках
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error HTTPError `json:"error"`
}

// Маппинг domain ошибок в HTTP ошибки
var ErrorMapping = map[error]HTTPError{
	ErrInvalidUserID:           {Code: "INVALID_USER_ID", Message: "user id must be a positive integer"},
	ErrInvalidDeactivationType: {Code: "INVALID_TYPE", Message: "deactivation_type must be 'immediate' or 'scheduled'"},
	ErrScheduledDateRequired:   {Code: "SCHEDULED_DATE_REQUIRED", Message: "scheduled_date is required for scheduled deactivation"},
	ErrScheduledTimeNotFuture:  {Code: "NOT_IN_FUTURE", Message: "scheduled time must be in the future"},
	ErrUserNotFound:            {Code: "NOT_FOUND", Message: "user not found"},
	ErrActionNotFound:          {Code: "NOT_FOUND", Message: "scheduled action not found"},
	ErrUserAlreadyActive:       {Code: "ALREADY_ACTIVE", Message: "user is already active"},
	ErrUserAlreadyInactive:     {Code: "ALREADY_INACTIVE", Message: "user is already inactive"},
	ErrUserNotInactive:         {Code: "NOT_INACTIVE", Message: "user is not inactive"},
	ErrNoScheduledDeactivation: {Code: "NOT_SCHEDULED", Message: "user does not have a scheduled deactivation"},
	ErrActionNotPending:        {Code: "NOT_PENDING", Message: "scheduled action is not pending"},
}

// ToHTTPError преобразует domain ошибку в HTTP ошибку
func ToHTTPError(err error) (HTTPError, bool) {
	httpErr, exists := ErrorMapping[err]
	return httpErr, exists
}
