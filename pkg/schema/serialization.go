package schema

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// A Schema is written as a map of field names to type names, in JSON and
// YAML alike. Custom types are written under their name but cannot be read
// back.

func (s Schema) typeNames() (map[string]string, error) {
	names := make(map[string]string, len(s))
	for key, typ := range s {
		if typ == nil {
			return nil, fmt.Errorf("field %s: type is nil", key)
		}
		names[key] = typ.Name()
	}
	return names, nil
}

// MarshalJSON implements json.Marshaler.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	names, err := s.typeNames()
	if err != nil {
		return nil, err
	}
	return json.Marshal(names)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Schema) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}
	var names map[string]string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	return s.parse(names)
}

// MarshalYAML implements yaml.Marshaler.
func (s Schema) MarshalYAML() (any, error) {
	if s == nil {
		return nil, nil
	}
	return s.typeNames()
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	var names map[string]string
	if err := node.Decode(&names); err != nil {
		return err
	}
	if names == nil {
		*s = nil
		return nil
	}
	return s.parse(names)
}

func (s *Schema) parse(names map[string]string) error {
	parsed, err := ParseTypeMap(names)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
