package pipeline

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// DecodeHook is the mapstructure hook used to decode options. Enum
// values such as primaries and output modes decode from their names.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	)
}

// Load reads options from v on top of DefaultOptions. Options are looked
// up under key when it is not empty, otherwise at the top level.
func Load(v *viper.Viper, key string) (Options, error) {
	opts := DefaultOptions()
	var err error
	if key == "" {
		err = v.Unmarshal(&opts, viper.DecodeHook(DecodeHook()))
	} else {
		err = v.UnmarshalKey(key, &opts, viper.DecodeHook(DecodeHook()))
	}
	if err != nil {
		return opts, fmt.Errorf("pipeline: decode options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}
