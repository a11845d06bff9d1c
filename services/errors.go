package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ServiceError is a typed error with the HTTP status code the controller
// should respond with.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicate reports whether err is a unique-constraint violation. Postgres
// wraps these in driver-specific types, so match on the message like the rest
// of the codebase does.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
