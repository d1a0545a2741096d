// FILE: krail-config/doc.go

// Package config provides a thread-safe, layered application configuration
// built from several files in differing formats: INI, YAML, XML, JSON and TOML.
//
// Features:
//   - Sources declared with a unique priority index; the lowest index wins
//   - Optional sources that are skipped silently when missing or malformed
//   - Lazy loading on first access, with Clear to force a reload
//   - Typed accessors with a closed set of coercions and default values
//   - Struct scanning of the merged view via mapstructure
//   - Source tracking to see which file each value came from
//
// Quick Start:
//
//	cfg, err := config.NewBuilder().
//	    WithDirectory("/etc/myapp").
//	    WithSource(100, "krail.ini").
//	    WithSource(90, "local.yml").
//	    WithSource(10, "override.json", config.Required()).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	user, err := cfg.String("dbUser")
//	pets, err := cfg.StringsOr("pets", nil)
//	retries, err := config.GetOr(cfg, "db.retries", 3)
//
// Precedence:
// For a key defined by several sources the value from the source with the
// lowest index is used. Sequence values are replaced whole, never concatenated.
//
// Errors:
// A missing key gives ErrPropertyNotFound. A required source that cannot be
// loaded makes every accessor fail with an error matching both
// ErrPropertyNotFound and ErrConfigurationLoad until a later access loads
// successfully. Asking for a type outside the supported set gives
// ErrPropertyTypeNotKnown.
//
// Thread Safety:
// All operations are thread-safe. Loading happens at most once per load
// cycle, even under concurrent first access.
package config
