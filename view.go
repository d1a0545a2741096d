// FILE: krail-config/view.go
package config

import (
	"sort"
)

// Layer is one successfully loaded source.
type Layer struct {
	Descriptor Descriptor
	Path       string // absolute path the properties were read from
	Properties Properties
}

// View is the merged, layered key space of all loaded sources.
// Layers are held in the order they were added (descending index) and are
// searched from the last one backwards, so the lowest index wins.
// A View is never modified after it is committed to a Config.
type View struct {
	layers []Layer
}

// newView builds a View from layers given least-authoritative first.
func newView(layers ...Layer) *View {
	v := &View{layers: make([]Layer, 0, len(layers))}
	for _, l := range layers {
		v.add(l)
	}
	return v
}

// add places l above every layer added before it.
func (v *View) add(l Layer) {
	if l.Properties == nil {
		l.Properties = make(Properties)
	}
	v.layers = append(v.layers, l)
}

// Lookup returns the authoritative value for key and the layer it came from.
// Sequence values are returned whole from the winning layer.
func (v *View) Lookup(key string) (any, Layer, bool) {
	if v == nil {
		return nil, Layer{}, false
	}
	for i := len(v.layers) - 1; i >= 0; i-- {
		if value, exists := v.layers[i].Properties[key]; exists {
			return value, v.layers[i], true
		}
	}
	return nil, Layer{}, false
}

// Len returns the number of layers in the view.
func (v *View) Len() int {
	if v == nil {
		return 0
	}
	return len(v.layers)
}

// Layers returns a copy of the layers, least authoritative first.
func (v *View) Layers() []Layer {
	if v == nil {
		return nil
	}
	out := make([]Layer, len(v.layers))
	copy(out, v.layers)
	return out
}

// Keys returns every key defined by any layer, sorted.
func (v *View) Keys() []string {
	if v == nil {
		return nil
	}
	seen := make(map[string]bool)
	for _, l := range v.layers {
		for k := range l.Properties {
			seen[k] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns the value each layer holds for key, keyed by source index.
func (v *View) Values(key string) map[int]any {
	result := make(map[int]any)
	if v == nil {
		return result
	}
	for _, l := range v.layers {
		if value, exists := l.Properties[key]; exists {
			result[l.Descriptor.Index] = value
		}
	}
	return result
}

// merged resolves every key against the layers into one flat map.
func (v *View) merged() Properties {
	out := make(Properties)
	for _, key := range v.Keys() {
		value, _, _ := v.Lookup(key)
		out[key] = value
	}
	return out
}

// nested resolves the view into a nested map suitable for decoding or encoding.
// When one key is a path prefix of another ("server" and "server.port") they
// cannot both be placed; the one supplied by the lower index is kept and the
// other is dropped. On a tie the prefix is kept.
func (v *View) nested() map[string]any {
	flat := v.merged()
	origin := make(map[string]int, len(flat))
	for key := range flat {
		_, layer, _ := v.Lookup(key)
		origin[key] = layer.Descriptor.Index
	}

	shadowed := make(map[string]bool)
	for key := range flat {
		for i := 0; i < len(key); i++ {
			if key[i] != '.' {
				continue
			}
			prefix := key[:i]
			if _, exists := flat[prefix]; !exists {
				continue
			}
			if origin[prefix] <= origin[key] {
				shadowed[key] = true
			} else {
				shadowed[prefix] = true
			}
		}
	}

	keys := make([]string, 0, len(flat))
	for k := range flat {
		if !shadowed[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	nestedData := make(map[string]any)
	for _, k := range keys {
		setNestedValue(nestedData, k, flat[k])
	}
	return nestedData
}
