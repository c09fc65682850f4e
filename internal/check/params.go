package check

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// DecodeParams binds a resolved parameter map onto a check's typed parameter
// struct. Decoding is weakly typed so values arriving from different profile
// formats (HCL numbers, YAML scalars) coerce to the declared field types.
func DecodeParams(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("cannot build parameter decoder: %w", err)
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("invalid check parameters: %w", err)
	}
	return nil
}
