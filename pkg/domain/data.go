package domain

import (
	"github.com/mitchellh/mapstructure"
)

// Fields returns a field view of mode data.
// Map data is returned as is; struct data is decoded using its mapstructure tags.
func Fields(data Data) (map[string]any, error) {
	switch v := data.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	}

	out := make(map[string]any)
	if err := mapstructure.Decode(data, &out); err != nil {
		return nil, &InvalidInputError{Value: data, Reason: err.Error()}
	}
	return out, nil
}

// DecodePayload decodes an action payload into out.
// Input is weakly typed so payloads that went through JSON (float64 numbers,
// string booleans) still decode into their Go types.
func DecodePayload(payload any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return &InvalidInputError{Value: out, Reason: err.Error()}
	}
	if err := dec.Decode(payload); err != nil {
		return &InvalidInputError{Value: payload, Reason: err.Error()}
	}
	return nil
}
