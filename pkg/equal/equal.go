package equal

import (
	"fmt"
	"reflect"

	"github.com/aretw0/cardmenu/pkg/domain"
	"github.com/aretw0/cardmenu/pkg/kind"
)

// Compare reports whether a and b are structurally equal.
// It fails with *domain.InvalidInputError when a category it cannot recurse
// into (channels, unsafe pointers) reaches the recursive branch.
func Compare(a, b any) (bool, error) {
	return compare(reflect.ValueOf(a), reflect.ValueOf(b))
}

// Equal is Compare for callers that treat unsupported input as a bug.
// It panics with the *domain.InvalidInputError Compare would return.
func Equal(a, b any) bool {
	ok, err := Compare(a, b)
	if err != nil {
		panic(err)
	}
	return ok
}

func compare(a, b reflect.Value) (bool, error) {
	if identical(a, b) {
		return true, nil
	}

	a, b = indirect(a), indirect(b)
	ka, kb := kind.Of(a), kind.Of(b)
	if ka.Category != kb.Category {
		return false, nil
	}
	if !ka.IsReference {
		return primitiveEqual(ka.Category, a, b), nil
	}

	switch ka.Category {
	case kind.Array:
		if a.Len() != b.Len() {
			return false, nil
		}
		for i := 0; i < a.Len(); i++ {
			ok, err := compare(a.Index(i), b.Index(i))
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil

	case kind.Object:
		fa, err := fields(a)
		if err != nil {
			return false, err
		}
		fb, err := fields(b)
		if err != nil {
			return false, err
		}
		if len(fa) != len(fb) {
			return false, nil
		}
		for key, va := range fa {
			vb, ok := fb[key]
			if !ok {
				return false, nil
			}
			eq, err := compare(va, vb)
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil

	default:
		return false, &domain.InvalidInputError{
			Value:  interfaceOf(a),
			Reason: fmt.Sprintf("cannot compare values of category %q", ka.Category),
		}
	}
}

// indirect follows pointers and interfaces. Nil yields the zero Value.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// fields returns the keys of an object. Map keys are stringified; struct keys
// are exported field names. Two map keys with the same string form, such as
// 1 and "1", are rejected.
func fields(v reflect.Value) (map[string]reflect.Value, error) {
	out := make(map[string]reflect.Value)
	switch v.Kind() {
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			key := fmt.Sprint(iter.Key().Interface())
			if _, dup := out[key]; dup {
				return nil, &domain.InvalidInputError{
					Value:  interfaceOf(v),
					Reason: fmt.Sprintf("map has more than one key written %q", key),
				}
			}
			out[key] = iter.Value()
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			out[t.Field(i).Name] = v.Field(i)
		}
	}
	return out, nil
}

func primitiveEqual(c kind.Category, a, b reflect.Value) bool {
	switch c {
	case kind.Null, kind.Undefined:
		return true
	case kind.String:
		return a.String() == b.String()
	case kind.Boolean:
		return a.Bool() == b.Bool()
	case kind.Number:
		return numberEqual(a, b)
	case kind.Function:
		return a.Pointer() == b.Pointer()
	default:
		return false
	}
}

// numberEqual compares by numeric value across Go numeric types.
func numberEqual(a, b reflect.Value) bool {
	if isComplex(a) || isComplex(b) {
		return toComplex(a) == toComplex(b)
	}
	if isFloat(a) || isFloat(b) {
		return toFloat(a) == toFloat(b)
	}
	if isSigned(a) && isSigned(b) {
		return a.Int() == b.Int()
	}
	if !isSigned(a) && !isSigned(b) {
		return a.Uint() == b.Uint()
	}
	// One signed, one unsigned.
	s, u := a, b
	if !isSigned(a) {
		s, u = b, a
	}
	if s.Int() < 0 {
		return false
	}
	return uint64(s.Int()) == u.Uint()
}

func isComplex(v reflect.Value) bool {
	return v.Kind() == reflect.Complex64 || v.Kind() == reflect.Complex128
}

func isFloat(v reflect.Value) bool {
	return v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
}

func isSigned(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isFloat(v):
		return v.Float()
	case isSigned(v):
		return float64(v.Int())
	default:
		return float64(v.Uint())
	}
}

func toComplex(v reflect.Value) complex128 {
	if isComplex(v) {
		return v.Complex()
	}
	return complex(toFloat(v), 0)
}

func interfaceOf(v reflect.Value) any {
	if v.IsValid() && v.CanInterface() {
		return v.Interface()
	}
	return nil
}
