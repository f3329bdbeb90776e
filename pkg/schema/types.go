package schema

import (
	"fmt"
	"math"
	"reflect"

	"github.com/aretw0/cardmenu/pkg/kind"
)

// Type defines the contract for field validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// categoryType accepts any value of one kind category.
type categoryType struct {
	name     string
	category kind.Category
}

func (t *categoryType) Name() string { return t.name }

func (t *categoryType) Validate(value any) error {
	if got := kind.Classify(value).Category; got != t.category {
		return fmt.Errorf("expected %s, got %s", t.name, got)
	}
	return nil
}

// intType accepts numbers with no fractional part.
type intType struct{}

func (t *intType) Name() string { return "int" }

func (t *intType) Validate(value any) error {
	if got := kind.Classify(value).Category; got != kind.Number {
		return fmt.Errorf("expected int, got %s", got)
	}
	rv := reflect.Indirect(reflect.ValueOf(value))
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		// JSON payloads decode whole numbers as floats.
		if f := rv.Float(); f != math.Trunc(f) {
			return fmt.Errorf("expected int, got float (not a whole number)")
		}
	case reflect.Complex64, reflect.Complex128:
		return fmt.Errorf("expected int, got complex")
	}
	return nil
}

// sliceType validates arrays of a specific element type.
type sliceType struct {
	elemType Type
}

func (t *sliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *sliceType) Validate(value any) error {
	if got := kind.Classify(value).Category; got != kind.Array {
		return fmt.Errorf("expected array, got %s", got)
	}
	rv := reflect.Indirect(reflect.ValueOf(value))
	for i := 0; i < rv.Len(); i++ {
		if err := t.elemType.Validate(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// customType applies a user-defined validation function.
type customType struct {
	name     string
	validate func(any) error
}

func (t *customType) Name() string { return t.name }

func (t *customType) Validate(value any) error {
	return t.validate(value)
}

// String accepts string values.
func String() Type { return &categoryType{name: "string", category: kind.String} }

// Number accepts any numeric value.
func Number() Type { return &categoryType{name: "number", category: kind.Number} }

// Int accepts whole numbers.
func Int() Type { return &intType{} }

// Bool accepts booleans.
func Bool() Type { return &categoryType{name: "bool", category: kind.Boolean} }

// Object accepts maps and structs.
func Object() Type { return &categoryType{name: "object", category: kind.Object} }

// Slice accepts arrays whose elements all satisfy elemType.
func Slice(elemType Type) Type {
	return &sliceType{elemType: elemType}
}

// Custom creates a type with a user-defined validation function.
func Custom(name string, validate func(any) error) Type {
	return &customType{name: name, validate: validate}
}

// ParseType converts a type name to a Type.
// Supports "string", "number", "int", "bool", "object" and "[T]" for arrays.
func ParseType(typeStr string) (Type, error) {
	if len(typeStr) > 2 && typeStr[0] == '[' && typeStr[len(typeStr)-1] == ']' {
		elemType, err := ParseType(typeStr[1 : len(typeStr)-1])
		if err != nil {
			return nil, err
		}
		return Slice(elemType), nil
	}

	switch typeStr {
	case "string":
		return String(), nil
	case "number":
		return Number(), nil
	case "int":
		return Int(), nil
	case "bool":
		return Bool(), nil
	case "object":
		return Object(), nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", typeStr)
	}
}

// ParseTypeMap converts a map of field names to type strings into a Schema.
func ParseTypeMap(typeMap map[string]string) (Schema, error) {
	result := make(Schema, len(typeMap))
	for key, typeStr := range typeMap {
		t, err := ParseType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		result[key] = t
	}
	return result, nil
}
