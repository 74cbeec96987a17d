package settings

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// MapProvider supplies Settings from a generic map keyed by the camelCase
// names in Keys. Values are weakly typed: "30s" and "true" are accepted for
// timeout and tlsVerify.
type MapProvider map[string]any

// Load implements Provider.
func (m MapProvider) Load(context.Context) (*Settings, error) {
	return decodeMap(m)
}

func decodeMap(values map[string]any) (*Settings, error) {
	var s Settings
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           &s,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create settings decoder: %w", err)
	}
	if err := decoder.Decode(values); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return &s, nil
}
