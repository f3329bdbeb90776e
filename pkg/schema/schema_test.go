package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValidate_Success(t *testing.T) {
	contract := Schema{
		"cursor":  Int(),
		"ratio":   Number(),
		"title":   String(),
		"visible": Bool(),
		"hand":    Slice(String()),
		"meta":    Object(),
	}

	data := map[string]any{
		"cursor":  2,
		"ratio":   0.5,
		"title":   "Main menu",
		"visible": true,
		"hand":    []string{"sa", "hk"},
		"meta":    map[string]any{},
		"extra":   "ignored",
	}

	assert.NoError(t, Validate(contract, data))
}

func TestValidate_CollectsEveryFailure(t *testing.T) {
	contract := Schema{
		"cursor": Int(),
		"hand":   Slice(String()),
		"title":  String(),
	}

	err := Validate(contract, map[string]any{
		"cursor": 1.5,
		"hand":   []any{"sa", 3},
	})
	require.Error(t, err)

	var aggr *AggregateError
	require.True(t, errors.As(err, &aggr))
	failures := ValidationErrors(err)
	require.Len(t, failures, 3)

	// Sorted by field name.
	assert.Equal(t, "cursor", failures[0].Key)
	assert.Equal(t, "hand", failures[1].Key)
	assert.Contains(t, failures[1].Reason, "element 1")
	assert.Equal(t, "title", failures[2].Key)
	assert.Equal(t, "required", failures[2].Reason)
}

func TestInt_AcceptsWholeFloats(t *testing.T) {
	assert.NoError(t, Int().Validate(3.0))
	assert.NoError(t, Int().Validate(uint8(3)))
	assert.Error(t, Int().Validate(3.2))
	assert.Error(t, Int().Validate("3"))
}

func TestCustom(t *testing.T) {
	positive := Custom("positive", func(v any) error {
		if n, ok := v.(int); !ok || n <= 0 {
			return errors.New("must be a positive int")
		}
		return nil
	})
	assert.Equal(t, "positive", positive.Name())
	assert.NoError(t, positive.Validate(1))
	assert.Error(t, positive.Validate(0))
}

func TestParseTypeMap(t *testing.T) {
	parsed, err := ParseTypeMap(map[string]string{
		"hand":   "[string]",
		"grid":   "[[int]]",
		"cursor": "int",
	})
	require.NoError(t, err)
	assert.Equal(t, "[string]", parsed["hand"].Name())
	assert.Equal(t, "[[int]]", parsed["grid"].Name())

	_, err = ParseType("card")
	assert.Error(t, err)
}

func TestSchemaJSON(t *testing.T) {
	contract := Schema{"cursor": Int(), "hand": Slice(Object())}

	raw, err := json.Marshal(contract)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cursor":"int","hand":"[object]"}`, string(raw))

	var back Schema
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, contract.Fields(), back.Fields())
	assert.Equal(t, "[object]", back["hand"].Name())
}

func TestSchemaYAML(t *testing.T) {
	var doc struct {
		Schema Schema `yaml:"schema"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("schema:\n  page: int\n  hand: \"[object]\"\n"), &doc))
	assert.Equal(t, []string{"hand", "page"}, doc.Schema.Fields())

	out, err := yaml.Marshal(Schema{"page": Int()})
	require.NoError(t, err)
	assert.Equal(t, "page: int\n", string(out))

	err = yaml.Unmarshal([]byte("schema:\n  page: card\n"), &doc)
	assert.Error(t, err)
}
