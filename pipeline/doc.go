// Package pipeline turns user settings into the color pipeline parameters
// used for every frame of an output session.
//
// Options is the decoded configuration (viper/mapstructure, YAML or JSON).
// Build resolves it once per session into a read-only Params: scaler
// presets are looked up in the Presets table, filters whose enable flag or
// derived condition is off are left nil, and the custom LUT and shader are
// fetched through an asset.Loader.
//
// Params are not updated when settings change; reopen the session to
// apply new options.
package pipeline
