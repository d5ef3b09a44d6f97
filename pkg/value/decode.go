package value

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// tagName is the struct tag consulted when moving between Objects and structs.
const tagName = "json"

// Decode converts a dynamic value into T.
// When input already is a T it is returned as is; otherwise mapstructure
// decodes it, so an Object can become a struct and a List a typed slice.
func Decode[T any](input any) (T, error) {
	var out T
	if v, ok := input.(T); ok {
		return v, nil
	}
	if input == nil {
		return out, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: tagName,
		Result:  &out,
	})
	if err != nil {
		return out, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(input); err != nil {
		return out, fmt.Errorf("failed to decode %T into %T: %w", input, out, err)
	}
	return out, nil
}

// Encode converts a struct (or map) into an Object keyed by its json field names.
func Encode(input any) (Object, error) {
	out := Object{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: tagName,
		Result:  &out,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create encoder: %w", err)
	}
	if err := dec.Decode(input); err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", input, err)
	}
	return out, nil
}
