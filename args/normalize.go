package args

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
)

// NotListError is returned when an argument source has no list shape.
type NotListError struct {
	Type reflect.Type
}

func (e *NotListError) Error() string {
	return fmt.Sprintf("args: %v is not a list of arguments", e.Type)
}

// Normalizer turns an argument source into a positional list.
//
// Accepted shapes: nil (empty list), []any, any slice or array, iter.Seq[any],
// and maps keyed by strings (values in key order). Pointers are followed.
type Normalizer struct{}

func (Normalizer) Normalize(src any) ([]any, error) {
	return Normalize(src)
}

func Normalize(src any) ([]any, error) {
	switch s := src.(type) {
	case nil:
		return []any{}, nil
	case []any:
		return slices.Clone(s), nil
	case iter.Seq[any]:
		return slices.Collect(s), nil
	}

	v := reflect.ValueOf(src)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return []any{}, nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, v.Len())
		for i := range out {
			out[i] = v.Index(i).Interface()
		}
		return out, nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			break
		}
		keys := v.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			switch {
			case a.String() < b.String():
				return -1
			case a.String() > b.String():
				return 1
			}
			return 0
		})
		out := make([]any, len(keys))
		for i, k := range keys {
			out[i] = v.MapIndex(k).Interface()
		}
		return out, nil
	}
	return nil, &NotListError{Type: reflect.TypeOf(src)}
}
