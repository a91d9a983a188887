package types

import "github.com/pkg/errors"

// Errors raised while declaring fields and tables.
var (
	PrimaryKeyMustBeUnique         = errors.New("PrimaryKeyMustBeUnique")
	PrimaryKeyCannotHaveNulls      = errors.New("PrimaryKeyCannotHaveNulls")
	NoPrimaryKeySpecified          = errors.New("NoPrimaryKeySpecified")
	MoreThanOnePrimaryKeySpecified = errors.New("MoreThanOnePrimaryKeySpecified")
	FieldDoesNotExist              = errors.New("FieldDoesNotExist")
	FieldAlreadyBound              = errors.New("FieldAlreadyBound")
	DerivedFieldShadowsColumn      = errors.New("DerivedFieldShadowsColumn")
	UnknownAggregateFunction       = errors.New("UnknownAggregateFunction")
	GroupKeyNotGrouped             = errors.New("GroupKeyNotGrouped")
	NotAnAggregationTable          = errors.New("NotAnAggregationTable")
	UnknownFieldKind               = errors.New("UnknownFieldKind")
	UnknownFunction                = errors.New("UnknownFunction")
)

// Violations of the data contract of stored fields.
var (
	NullsNotAllowed      = errors.New("NullsNotAllowed")
	FieldTypeMismatch    = errors.New("FieldTypeMismatch")
	NonUniqueValuesFound = errors.New("NonUniqueValuesFound")
)

// Cross table wiring.
var (
	DuplicateTableId    = errors.New("DuplicateTableId")
	TableNotFound       = errors.New("TableNotFound")
	ForeignKeyNotFound  = errors.New("ForeignKeyNotFound")
	AmbiguousForeignKey = errors.New("AmbiguousForeignKey")
)

// Evaluation.
var (
	CannotEvaluateFields = errors.New("CannotEvaluateFields")
	ComputedFieldFailed  = errors.New("ComputedFieldFailed")
)

// Frame operations.
var (
	ColumnNotFound       = errors.New("ColumnNotFound")
	ColumnAlreadyExists  = errors.New("ColumnAlreadyExists")
	ColumnLengthMismatch = errors.New("ColumnLengthMismatch")
)
