// FILE: krail-config/convenience.go
package config

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Has reports whether key is defined by any loaded source.
// A key whose winning value is null is not defined.
func (c *Config) Has(key string) (bool, error) {
	view, err := c.snapshot()
	if err != nil {
		return false, err
	}
	value, _, found := view.Lookup(key)
	return found && value != nil, nil
}

// Keys returns every key defined by any loaded source, sorted.
func (c *Config) Keys() ([]string, error) {
	view, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	return view.Keys(), nil
}

// Raw returns the uncoerced winning value for key and the source it came from.
func (c *Config) Raw(key string) (any, Descriptor, error) {
	view, err := c.snapshot()
	if err != nil {
		return nil, Descriptor{}, &PropertyNotFoundError{Key: key, Cause: err}
	}
	value, layer, found := view.Lookup(key)
	if !found || value == nil {
		return nil, Descriptor{}, &PropertyNotFoundError{Key: key}
	}
	return value, layer.Descriptor, nil
}

// Sources returns the raw value every loaded source holds for key, by index.
func (c *Config) Sources(key string) (map[int]any, error) {
	view, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	return view.Values(key), nil
}

// Layers returns the loaded sources, least authoritative first.
// Sources that were skipped are not included.
func (c *Config) Layers() ([]Layer, error) {
	view, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	return view.Layers(), nil
}

// Debug returns a formatted string showing every resolved value and the
// sources that define it.
func (c *Config) Debug() (string, error) {
	view, err := c.snapshot()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")
	b.WriteString("Layers (least to most authoritative):\n")
	for _, l := range view.Layers() {
		b.WriteString(fmt.Sprintf("  %d: %s\n", l.Descriptor.Index, l.Path))
	}
	b.WriteString("Current values:\n")

	for _, key := range view.Keys() {
		value, winner, _ := view.Lookup(key)
		b.WriteString(fmt.Sprintf("  %s:\n", key))
		b.WriteString(fmt.Sprintf("    Current: %v (from %d)\n", value, winner.Descriptor.Index))

		values := view.Values(key)
		indices := make([]int, 0, len(values))
		for idx := range values {
			indices = append(indices, idx)
		}
		sort.Ints(indices)
		for _, idx := range indices {
			b.WriteString(fmt.Sprintf("    %d: %v\n", idx, values[idx]))
		}
	}

	return b.String(), nil
}

// Dump writes the merged configuration to w in TOML format.
func (c *Config) Dump(w io.Writer) error {
	view, err := c.snapshot()
	if err != nil {
		return err
	}

	encoder := toml.NewEncoder(w)
	if err := encoder.Encode(view.nested()); err != nil {
		return fmt.Errorf("failed to marshal config data to TOML: %w", err)
	}
	return nil
}
