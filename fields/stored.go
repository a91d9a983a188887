package fields

import (
	"time"

	"github.com/hashicorp/go-set/v2"
	"github.com/pkg/errors"
	"www.velocidex.com/golang/vtable/protocols"
	"www.velocidex.com/golang/vtable/types"
	"www.velocidex.com/golang/vtable/utils"
)

// The data type of a stored field.
type Kind int

const (
	Int Kind = iota
	String
	Float
	Bool
	Date
)

func (self Kind) String() string {
	switch self {
	case Int:
		return "int"
	case String:
		return "string"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Date:
		return "date"
	}
	return "unknown"
}

// Integer columns which contained NULLs at load time may carry
// floats, so Int accepts float64 as well.
func (self Kind) Accepts(value types.Any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return self == Int

	case float64:
		return self == Float || self == Int

	case float32:
		return self == Float

	case string:
		return self == String

	case bool:
		return self == Bool

	case time.Time, *time.Time:
		return self == Date
	}
	return false
}

type Constraints struct {
	Nulls      bool
	Unique     bool
	PrimaryKey bool
}

// A field whose column must be present in the table data. The column
// is validated when the table is constructed.
type StoredField struct {
	BaseField
	kind   Kind
	nulls  bool
	unique bool
}

func NewStoredField(kind Kind, constraints Constraints) (*StoredField, error) {
	if constraints.PrimaryKey && !constraints.Unique {
		return nil, errors.Wrap(types.PrimaryKeyMustBeUnique,
			"A primary key must be declared unique")
	}

	if constraints.PrimaryKey && constraints.Nulls {
		return nil, errors.Wrap(types.PrimaryKeyCannotHaveNulls,
			"A primary key cannot allow nulls")
	}

	return &StoredField{
		BaseField: BaseField{primary_key: constraints.PrimaryKey},
		kind:      kind,
		nulls:     constraints.Nulls,
		unique:    constraints.Unique,
	}, nil
}

func NewIntField(constraints Constraints) (*StoredField, error) {
	return NewStoredField(Int, constraints)
}

func NewStringField(constraints Constraints) (*StoredField, error) {
	return NewStoredField(String, constraints)
}

func NewFloatField(constraints Constraints) (*StoredField, error) {
	return NewStoredField(Float, constraints)
}

func NewBoolField(constraints Constraints) (*StoredField, error) {
	return NewStoredField(Bool, constraints)
}

func NewDateField(constraints Constraints) (*StoredField, error) {
	return NewStoredField(Date, constraints)
}

func (self *StoredField) Kind() string {
	return self.kind.String()
}

func (self *StoredField) IsDerived() bool {
	return false
}

func (self *StoredField) IsEvaluated() bool {
	return self.hasColumn()
}

func (self *StoredField) Validate(values []types.Any) error {
	return CheckColumn(QualifiedName(self), values,
		self.kind, self.nulls, self.unique)
}

// CheckColumn verifies the null, type and uniqueness contract of a
// column.
//
// Falsy values (0, false and "") skip the type check, so a 0 is
// accepted in a string column and an empty string in an int column.
func CheckColumn(name string, values []types.Any,
	kind Kind, nulls bool, unique bool) error {
	for _, value := range values {
		if types.IsNil(value) {
			if !nulls {
				return errors.Wrapf(types.NullsNotAllowed,
					"Field %v cannot contain nulls but null found", name)
			}
			continue
		}

		if !types.IsFalsy(value) && !kind.Accepts(value) {
			return errors.Wrapf(types.FieldTypeMismatch,
				"Field %v must have data type %v, but %T (%v) found",
				name, kind, value, utils.Repr(value))
		}
	}

	if !unique {
		return nil
	}

	seen := set.New[string](len(values))
	repeated := set.New[string](0)
	repeating_values := []interface{}{}
	for _, value := range values {
		if types.IsNil(value) {
			continue
		}

		key := protocols.HashKey(value)
		if seen.Insert(key) {
			continue
		}

		if repeated.Insert(key) {
			repeating_values = append(repeating_values, value)
		}
	}

	if len(repeating_values) > 0 {
		return errors.Wrapf(types.NonUniqueValuesFound,
			"Field %v must have unique values, but has repeating value(s): %v",
			name, utils.ReprList(repeating_values))
	}

	return nil
}
