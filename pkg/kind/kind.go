package kind

import (
	"reflect"
)

// Category is the closed set of value categories.
type Category string

const (
	Array     Category = "array"
	Null      Category = "null"
	Object    Category = "object"
	String    Category = "string"
	Number    Category = "number"
	Boolean   Category = "boolean"
	Undefined Category = "undefined"
	Function  Category = "function"

	// Unsupported covers Go values with no meaning in the data model
	// (channels, unsafe pointers). It is a reference category so the
	// comparator rejects it instead of guessing.
	Unsupported Category = "unsupported"
)

// Kind is the result of Classify.
type Kind struct {
	Category    Category `json:"category"`
	IsReference bool     `json:"is_reference"`
}

// undefined is the type of the Absent sentinel.
type undefined struct{}

func (undefined) String() string { return "undefined" }

// Absent marks a value that was never set, as opposed to one explicitly set
// to nil.
var Absent any = undefined{}

// Classify reports the category of v.
// Null is checked before anything else and arrays before objects, so a nil
// pointer is never an object and a slice is never an object.
func Classify(v any) Kind {
	if v == nil {
		return Kind{Category: Null}
	}
	if _, ok := v.(undefined); ok {
		return Kind{Category: Undefined}
	}
	return Of(reflect.ValueOf(v))
}

// Of classifies a reflected value. Pointers and interfaces are followed.
func Of(rv reflect.Value) Kind {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Kind{Category: Null}
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return Kind{Category: Null}
	}
	if rv.Type() == reflect.TypeOf(undefined{}) {
		return Kind{Category: Undefined}
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return Kind{Category: Array, IsReference: true}
	case reflect.Map, reflect.Struct:
		return Kind{Category: Object, IsReference: true}
	case reflect.String:
		return Kind{Category: String}
	case reflect.Bool:
		return Kind{Category: Boolean}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return Kind{Category: Number}
	case reflect.Func:
		return Kind{Category: Function}
	default:
		return Kind{Category: Unsupported, IsReference: true}
	}
}

// Is reports whether v belongs to category c.
func Is(v any, c Category) bool {
	return Classify(v).Category == c
}
