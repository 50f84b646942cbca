// Package config handles loading and validating macropad configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// The tool runs fine with no config file at all: defaults place the data
// directory under the user's config dir (~/.config/macropad) and assume an
// externally started AutoKey daemon. A missing file is therefore not an
// error; only unreadable or invalid files are.
//
// Performance Characteristics:
//   - Configuration is loaded once at startup
//   - No runtime overhead after initial load
//
// Usage:
//
//	cfg, err := config.Load(filepath.Join(dir, "config.yaml"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.BindingsPath())
package config
