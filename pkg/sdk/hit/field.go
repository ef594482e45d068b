package hit

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// Field is a single protocol parameter. Value is converted to its wire
// form when it is merged into a FieldMap.
type Field struct {
	Key   string
	Value any
}

// F is shorthand for Field{Key: key, Value: value}.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Pairs builds fields from alternating key/value strings.
// An odd number of arguments yields nil.
func Pairs(kv ...string) []Field {
	if len(kv)%2 != 0 {
		return nil
	}

	result := make([]Field, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		result = append(result, Field{Key: kv[i], Value: kv[i+1]})
	}
	return result
}

// Ptr returns a pointer to v, for optional hit parameters.
func Ptr[T any](v T) *T {
	return &v
}

// stringify renders a scalar the way the collection protocol expects it.
// nil (including typed nil pointers) renders as the empty string.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Duration:
		return strconv.FormatInt(val.Milliseconds(), 10)
	case fmt.Stringer:
		return val.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return ""
		}
		return stringify(rv.Elem().Interface())
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	}
	return fmt.Sprint(v)
}
