package sqlerr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/shoe-rental/internal/errs"
)

// ErrCode returns the Code of the first *Error or *pgconn.PgError in err's
// chain, or Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}
	return Other
}

// ConvertPgError normalizes a raw pgconn error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// errorCode builds a machine readable code such as CUSTOMER_INVALID.
func errorCode(tableName string, code Code) string {
	domain := strings.ToUpper(singular(tableName))
	if domain == "" {
		domain = "RECORD"
	}

	action := "ERROR"
	switch code {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidTextValue, NumericOutOfRange:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func userMessage(sqlErr *Error) string {
	entity := entityName(sqlErr.TableName, sqlErr.ColumnName)
	field := humanize(sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entity)

	case UniqueViolation:
		if column := uniqueColumn(sqlErr.ConstraintName); column != "" {
			return fmt.Sprintf("A %s with this %s already exists", entity, humanize(column))
		}
		return fmt.Sprintf("A %s with this identifier already exists", entity)

	case NotNullViolation:
		if field == "" {
			field = "field"
		}
		return fmt.Sprintf("The %s is required", field)

	case CheckViolation, NumericOutOfRange:
		if field == "" {
			if column := checkColumn(sqlErr.ConstraintName, sqlErr.TableName); column != "" {
				field = humanize(column)
			}
		}
		if field != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", field)
		}
		return "One or more values do not meet required conditions"

	case InvalidTextValue:
		return "One or more values have an invalid format"

	default:
		return "An error occurred while processing your request"
	}
}

// entityName prefers a foreign key column ("customer_id" -> "Customer")
// over the singular table name.
func entityName(tableName, columnName string) string {
	if column := strings.ToLower(columnName); strings.HasSuffix(column, "_id") {
		return humanize(strings.TrimSuffix(column, "_id"))
	}
	if tableName != "" {
		// customer_rentals -> Customer Rental
		return humanize(singular(tableName))
	}
	return "record"
}

func singular(name string) string {
	if len(name) > 1 && strings.HasSuffix(strings.ToLower(name), "s") {
		return name[:len(name)-1]
	}
	return name
}

var titleCaser = cases.Title(language.English)

// humanize turns "shoe_size" into "Shoe Size".
func humanize(text string) string {
	if text == "" {
		return ""
	}
	return titleCaser.String(strings.ReplaceAll(text, "_", " "))
}

var uniqueKeyPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// uniqueColumn reads the column out of "unique_<table>_<column>" or
// "<table>_<column>_key" constraint names.
func uniqueColumn(constraintName string) string {
	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueKeyPattern.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// checkColumn reads the column out of PostgreSQL's default
// "<table>_<column>_check" constraint name.
func checkColumn(constraintName, tableName string) string {
	name := strings.TrimSuffix(constraintName, "_check")
	if name == constraintName || tableName == "" {
		return ""
	}
	return strings.TrimPrefix(name, tableName+"_")
}

// HandleError maps a repository error onto an *errs.HTTPError.
//
//   - *errs.HTTPError is returned unchanged.
//   - Integrity and data errors from PostgreSQL become 400s.
//   - pgx.ErrNoRows becomes a 404.
//   - Anything else becomes a 500 without detail.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		sqlErr := ConvertPgError(pgErr)
		code := errorCode(sqlErr.TableName, sqlErr.Code)
		message := userMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(message, false, &code, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{{
				Field: strings.ToLower(sqlErr.ColumnName),
				Error: "is required",
			}}
			return errs.NewBadRequestError(message, true, &code, fieldErrors)

		case UniqueViolation, CheckViolation, InvalidTextValue, NumericOutOfRange:
			return errs.NewBadRequestError(message, true, &code, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
