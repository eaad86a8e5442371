package errors

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrorInfo is the parsed result of a storage-layer error
type ErrorInfo struct {
	Code    string
	Message string
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
)

// IsUniqueViolation reports whether err is a unique-constraint violation.
// Covers pq driver errors and the error text emitted by the postgres and
// sqlite drivers, so it works against the in-memory test database too.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique constraint failed")
}

// IsForeignKeyViolation reports whether err is a foreign-key violation.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgForeignKeyViolation
	}

	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

// ParseError converts a storage error into a code and user-facing message.
// Sensitive details stay out of the message; the original error goes to the
// log at the call site.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Something went wrong"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	if IsUniqueViolation(err) {
		return parseUniqueViolation(err.Error())
	}

	if IsForeignKeyViolation(err) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "A referenced record no longer exists",
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "null value") && strings.Contains(msg, "not-null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
	}

	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "The service is temporarily unavailable. Please try again later",
		}
	}

	return ErrorInfo{Code: InternalServerError, Message: defaultMessage(context)}
}

// ParseAndRespond parses err and writes it as a JSON error response.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}

func parseUniqueViolation(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "An account with this email already exists",
		}
	}

	if strings.Contains(errLower, "order_number") {
		return ErrorInfo{
			Code:    OrderNumberConflict,
			Message: "Order number collision, please retry",
		}
	}

	if strings.Contains(errLower, "favorites") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "This artwork is already in your favorites",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "This record already exists",
	}
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "product") || strings.Contains(contextLower, "artwork"):
		return "Artwork not found"
	case strings.Contains(contextLower, "order"):
		return "Order not found"
	case strings.Contains(contextLower, "cart"):
		return "Cart item not found"
	case strings.Contains(contextLower, "user"):
		return "User not found"
	}
	return "The requested record was not found"
}

func defaultMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"):
		return "Could not create the record. Please try again later"
	case strings.Contains(contextLower, "update"):
		return "Could not update the record. Please try again later"
	case strings.Contains(contextLower, "delete"):
		return "Could not delete the record. Please try again later"
	case strings.Contains(contextLower, "checkout") || strings.Contains(contextLower, "order"):
		return "There was a problem processing your order. Please try again"
	}
	return "Something went wrong. Please try again later"
}
