// Named row functions for computed fields declared in model files.
//
// A row function receives the declared source columns of one row in
// declaration order. Functions are built from a name and optional
// string parameters so they can be declared in configuration.

package functions

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkg/errors"
	"www.velocidex.com/golang/vtable/protocols"
	"www.velocidex.com/golang/vtable/types"
	"www.velocidex.com/golang/vtable/utils"
)

// Builds a row function from its parameters.
type Builder func(params map[string]string) (types.RowFunction, error)

type FunctionInfo struct {
	Name    string
	Doc     string
	Builder Builder
}

var (
	mu       sync.Mutex
	registry = make(map[string]FunctionInfo)
)

func Register(info FunctionInfo) {
	mu.Lock()
	defer mu.Unlock()

	registry[info.Name] = info
}

func GetFunction(name string, params map[string]string) (types.RowFunction, error) {
	mu.Lock()
	info, pres := registry[name]
	mu.Unlock()

	if !pres {
		return nil, errors.Wrapf(types.UnknownFunction,
			"Function %v is not known", name)
	}

	return info.Builder(params)
}

// Describe all registered functions, sorted by name.
func Describe() []FunctionInfo {
	mu.Lock()
	defer mu.Unlock()

	result := make([]FunctionInfo, 0, len(registry))
	for _, info := range registry {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

func values(row types.RowValues) []types.Any {
	result := make([]types.Any, 0, row.Len())
	for _, key := range row.Keys() {
		value, _ := row.Get(key)
		result = append(result, value)
	}
	return result
}

func stateless(function types.RowFunction) Builder {
	return func(params map[string]string) (types.RowFunction, error) {
		return function, nil
	}
}

// Folds the values with a binary operator. Any NULL makes the result
// NULL.
func fold(op func(a, b types.Any) types.Any) Builder {
	return stateless(func(row types.RowValues) (types.Any, error) {
		items := values(row)
		if len(items) == 0 {
			return types.Null{}, nil
		}

		result := items[0]
		for _, item := range items[1:] {
			result = op(result, item)
		}
		return result, nil
	})
}

func single(name string, row types.RowValues) (types.Any, error) {
	items := values(row)
	if len(items) != 1 {
		return nil, errors.Errorf("%v: expects exactly one source field but got %v",
			name, len(items))
	}
	return items[0], nil
}

func init() {
	Register(FunctionInfo{
		Name: "len",
		Doc:  "Length of a string (in characters) or a list.",
		Builder: stateless(func(row types.RowValues) (types.Any, error) {
			value, err := single("len", row)
			if err != nil {
				return nil, err
			}

			if types.IsNil(value) {
				return types.Null{}, nil
			}

			str, ok := value.(string)
			if ok {
				return int64(utf8.RuneCountInString(str)), nil
			}

			if utils.IsArray(value) {
				return int64(reflect.ValueOf(value).Len()), nil
			}
			return nil, errors.Errorf("len: unsupported type %T", value)
		}),
	})

	Register(FunctionInfo{
		Name: "concat",
		Doc:  "Concatenate the values as strings, separated by the sep parameter. NULLs are skipped.",
		Builder: func(params map[string]string) (types.RowFunction, error) {
			sep := params["sep"]
			return func(row types.RowValues) (types.Any, error) {
				parts := []string{}
				for _, item := range values(row) {
					if types.IsNil(item) {
						continue
					}
					str, ok := utils.ToString(item)
					if !ok {
						str = fmt.Sprintf("%v", item)
					}
					parts = append(parts, str)
				}
				return strings.Join(parts, sep), nil
			}, nil
		},
	})

	Register(FunctionInfo{
		Name:    "add",
		Doc:     "Sum of the values.",
		Builder: fold(protocols.Add),
	})

	Register(FunctionInfo{
		Name:    "sub",
		Doc:     "The first value minus the others.",
		Builder: fold(protocols.Sub),
	})

	Register(FunctionInfo{
		Name:    "mul",
		Doc:     "Product of the values.",
		Builder: fold(protocols.Mul),
	})

	Register(FunctionInfo{
		Name:    "div",
		Doc:     "The first value divided by the others. Division by 0 is NULL.",
		Builder: fold(protocols.Div),
	})

	Register(FunctionInfo{
		Name: "coalesce",
		Doc:  "The first value which is not NULL.",
		Builder: stateless(func(row types.RowValues) (types.Any, error) {
			for _, item := range values(row) {
				if !types.IsNil(item) {
					return item, nil
				}
			}
			return types.Null{}, nil
		}),
	})

	Register(FunctionInfo{
		Name: "nullif",
		Doc:  "NULL if the first value equals any of the others, otherwise the first value.",
		Builder: stateless(func(row types.RowValues) (types.Any, error) {
			items := values(row)
			if len(items) == 0 {
				return types.Null{}, nil
			}

			for _, item := range items[1:] {
				if protocols.Eq(items[0], item) {
					return types.Null{}, nil
				}
			}
			return items[0], nil
		}),
	})

	Register(FunctionInfo{
		Name: "upper",
		Doc:  "Upper case a string.",
		Builder: stateless(func(row types.RowValues) (types.Any, error) {
			return mapString("upper", row, strings.ToUpper)
		}),
	})

	Register(FunctionInfo{
		Name: "lower",
		Doc:  "Lower case a string.",
		Builder: stateless(func(row types.RowValues) (types.Any, error) {
			return mapString("lower", row, strings.ToLower)
		}),
	})

	Register(FunctionInfo{
		Name: "format",
		Doc:  "Format the values according to the format parameter.",
		Builder: func(params map[string]string) (types.RowFunction, error) {
			format, pres := params["format"]
			if !pres {
				return nil, errors.New("format: the format parameter is required")
			}
			return func(row types.RowValues) (types.Any, error) {
				args := []interface{}{}
				for _, item := range values(row) {
					args = append(args, item)
				}
				return fmt.Sprintf(format, args...), nil
			}, nil
		},
	})
}

func mapString(name string, row types.RowValues,
	mapper func(string) string) (types.Any, error) {
	value, err := single(name, row)
	if err != nil {
		return nil, err
	}

	if types.IsNil(value) {
		return types.Null{}, nil
	}

	str, ok := utils.ToString(value)
	if !ok {
		return nil, errors.Errorf("%v: expected a string but got %T", name, value)
	}
	return mapper(str), nil
}
