package helper

import (
	"fmt"
	"net/http"

	"catalog/catalog_admin_data_service/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

// ServiceError carries the HTTP classification of a failed operation. The
// underlying driver error is logged, never leaked to the client.
type ServiceError struct {
	StatusCode int
	ErrorCode  string
	Message    string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}

func NewServiceError(status int, code, message string) *ServiceError {
	return &ServiceError{StatusCode: status, ErrorCode: code, Message: message}
}

// HandleDatabaseError maps driver errors onto service errors. pgx's no-rows
// sentinel becomes 404; constraint violations become client errors; anything
// else is a generic 500 with the detail logged.
func HandleDatabaseError(err error, log logger.LoggerI, message string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return NewServiceError(http.StatusNotFound, "NOT_FOUND", "not found")
	}

	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		log.Error(message+": "+err.Error(), logger.String("column", pgErr.ColumnName), logger.String("code", pgErr.Code))

		switch pgErr.Code {
		case "23505":
			// Unique violation
			return NewServiceError(http.StatusConflict, "ALREADY_EXISTS", "record already exists")
		case "23503":
			// Foreign key violation
			return NewServiceError(http.StatusConflict, "FOREIGN_KEY_VIOLATION", "related record constraint violated")
		case "23514":
			// Check constraint violation
			return NewServiceError(http.StatusBadRequest, "CHECK_VIOLATION", "check constraint violated")
		case "23502":
			// Not null violation
			return NewServiceError(http.StatusBadRequest, "NOT_NULL_VIOLATION", "required field missing")
		case "40001":
			// Serialization failure under concurrent writes
			return NewServiceError(http.StatusConflict, "SERIALIZATION_FAILURE", "concurrent update conflict, retry the request")
		case "40P01":
			// Deadlock detected
			return NewServiceError(http.StatusConflict, "DEADLOCK", "concurrent update conflict, retry the request")
		case "08006":
			// Connection failure
			return NewServiceError(http.StatusServiceUnavailable, "DB_UNAVAILABLE", "database unavailable")
		case "42P01", "42703":
			// Undefined table / column: whitelist and schema drifted apart
			return NewServiceError(http.StatusInternalServerError, "SHAPE_MISMATCH", "query referenced an object missing from the database")
		default:
			return NewServiceError(http.StatusInternalServerError, "INTERNAL", "internal database error")
		}
	}

	log.Error(message+": "+err.Error())

	return NewServiceError(http.StatusInternalServerError, "INTERNAL", "internal error")
}
