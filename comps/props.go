package comps

import (
	"github.com/mitchellh/mapstructure"

	"github.com/reusee/taideck/vars"
)

// BaseProps are the layout fields every property mapping must resolve.
type BaseProps struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// DecodeBaseProps pulls the base layout fields out of a property mapping.
// Weak decoding tolerates the numeric and string forms JSON transports
// produce.
func DecodeBaseProps(props map[string]any) (BaseProps, error) {
	var base BaseProps
	if err := mapstructure.WeakDecode(props, &base); err != nil {
		return base, err
	}
	return base, nil
}

// ResolveSize returns the width/height a context should carry, preferring
// the property mapping and falling back to the given measurements.
func ResolveSize(props map[string]any, width int, height int) (int, int) {
	base, err := DecodeBaseProps(props)
	if err != nil {
		return width, height
	}
	return vars.FirstNonZero(base.Width, width),
		vars.FirstNonZero(base.Height, height)
}
