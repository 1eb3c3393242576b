package storeerr

import (
	"github.com/jackc/pgx/v5/pgconn"
)

// Code is a driver independent category for Postgres SQLSTATE codes.
type Code string

const (
	Other             Code = "other"
	ConnectionFailure Code = "connection_failure"
	Unavailable       Code = "unavailable"
	QueryCanceled     Code = "query_canceled"
)

// MapCode maps a SQLSTATE to a Code. Only classes the users table and its
// connections can raise are told apart.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "08000", "08003", "08006", "08001", "08004":
		return ConnectionFailure
	case "53300", "57P01", "57P02", "57P03":
		return Unavailable
	case "57014":
		return QueryCanceled
	default:
		return Other
	}
}

// Severity mirrors the Postgres severity levels.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// MapSeverity maps the severity reported by Postgres; unknown values are
// treated as errors.
func MapSeverity(severity string) Severity {
	switch s := Severity(severity); s {
	case SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice,
		SeverityDebug, SeverityInfo, SeverityLog:
		return s
	default:
		return SeverityError
	}
}

// Error is a Postgres error normalised into Code and Severity.
type Error struct {
	Code         Code
	Severity     Severity
	DatabaseCode string
	Message      string
	TableName    string

	driverErr error
}

func (e *Error) Error() string {
	return string(e.Severity) + ": " + e.Message + " (SQLSTATE " + e.DatabaseCode + ")"
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// ConvertPgError converts a raw pgconn.PgError.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:         MapCode(src.Code),
		Severity:     MapSeverity(src.Severity),
		DatabaseCode: src.Code,
		Message:      src.Message,
		TableName:    src.TableName,
		driverErr:    src,
	}
}
