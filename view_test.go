// FILE: krail-config/view_test.go
package config

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func testLayer(index int, props Properties) Layer {
	return Layer{
		Descriptor: Descriptor{Index: index, Filename: "layer.yml"},
		Path:       "/conf/layer.yml",
		Properties: props,
	}
}

// TestViewLookup tests precedence between layers
func TestViewLookup(t *testing.T) {
	view := newView(
		testLayer(100, Properties{"test": "false", "pets": []any{"Hamster", "Parrot", "Snake"}, "item1": "one"}),
		testLayer(90, Properties{"test": "true"}),
		testLayer(80, Properties{"pets": []any{"Cat", "Dog", "Goldfish"}}),
	)

	t.Run("LowestIndexWins", func(t *testing.T) {
		value, layer, found := view.Lookup("test")
		require.True(t, found)
		assert.Equal(t, "true", value)
		assert.Equal(t, 90, layer.Descriptor.Index)
	})

	t.Run("FallThrough", func(t *testing.T) {
		value, layer, found := view.Lookup("item1")
		require.True(t, found)
		assert.Equal(t, "one", value)
		assert.Equal(t, 100, layer.Descriptor.Index)
	})

	t.Run("SequenceReplacedWhole", func(t *testing.T) {
		value, _, found := view.Lookup("pets")
		require.True(t, found)
		assert.Equal(t, []any{"Cat", "Dog", "Goldfish"}, value)
	})

	t.Run("Missing", func(t *testing.T) {
		_, _, found := view.Lookup("rubbish")
		assert.False(t, found)
	})

	t.Run("KeysAndValues", func(t *testing.T) {
		assert.Equal(t, []string{"item1", "pets", "test"}, view.Keys())
		assert.Equal(t, map[int]any{100: "false", 90: "true"}, view.Values("test"))
		assert.Empty(t, view.Values("rubbish"))
		assert.Equal(t, 3, view.Len())
	})

	t.Run("LayersAreCopied", func(t *testing.T) {
		layers := view.Layers()
		layers[0] = testLayer(1, nil)
		assert.Equal(t, 100, view.Layers()[0].Descriptor.Index)
	})

	t.Run("NilView", func(t *testing.T) {
		var empty *View
		_, _, found := empty.Lookup("test")
		assert.False(t, found)
		assert.Equal(t, 0, empty.Len())
		assert.Empty(t, empty.Keys())
	})
}

// TestViewNested tests reassembly of dotted keys
func TestViewNested(t *testing.T) {
	view := newView(
		testLayer(100, Properties{"database.host": "ini-host", "database.port": "5432"}),
		testLayer(90, Properties{"database.port": "6543", "name": "app"}),
	)

	nested := view.nested()
	assert.Equal(t, "app", nested["name"])
	assert.Equal(t, map[string]any{"host": "ini-host", "port": "6543"}, nested["database"])
}

// TestViewNestedPrefixCollision tests a scalar and a subtree under the same name
func TestViewNestedPrefixCollision(t *testing.T) {
	t.Run("ScalarWins", func(t *testing.T) {
		view := newView(
			testLayer(2, Properties{"server.port": "80", "server.host": "h"}),
			testLayer(1, Properties{"server": "primary"}),
		)
		assert.Equal(t, map[string]any{"server": "primary"}, view.nested())
	})

	t.Run("SubtreeWins", func(t *testing.T) {
		view := newView(
			testLayer(2, Properties{"server": "primary"}),
			testLayer(1, Properties{"server.port": "80"}),
		)
		assert.Equal(t, map[string]any{"server": map[string]any{"port": "80"}}, view.nested())
	})

	t.Run("SameLayerKeepsPrefix", func(t *testing.T) {
		view := newView(testLayer(1, Properties{"server": "primary", "server.port": "80"}))
		assert.Equal(t, map[string]any{"server": "primary"}, view.nested())
	})

	t.Run("DeepChain", func(t *testing.T) {
		view := newView(
			testLayer(3, Properties{"a.b": "mid"}),
			testLayer(2, Properties{"a": "top", "other": "x"}),
			testLayer(1, Properties{"a.b.c": "leaf"}),
		)
		assert.Equal(t, map[string]any{
			"a":     map[string]any{"b": map[string]any{"c": "leaf"}},
			"other": "x",
		}, view.nested())
	})
}

// TestViewPrecedenceProperty checks that the lowest index defining a key
// always supplies its value, whatever the registration order.
func TestViewPrecedenceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		indices := rapid.SliceOfNDistinct(rapid.IntRange(-500, 500), 1, 12, rapid.ID[int]).Draw(t, "indices")

		registry := NewRegistry()
		defines := make(map[int]bool)
		for _, idx := range indices {
			defines[idx] = rapid.Bool().Draw(t, "defines")
			if err := registry.Register(Descriptor{Index: idx, Filename: "layer.yml"}); err != nil {
				t.Fatalf("register %d: %v", idx, err)
			}
		}

		var layers []Layer
		for _, d := range registry.Descriptors() {
			props := Properties{"always": d.Index}
			if defines[d.Index] {
				props["sometimes"] = d.Index
			}
			layers = append(layers, Layer{Descriptor: d, Properties: props})
		}
		view := newView(layers...)

		sorted := append([]int(nil), indices...)
		sort.Ints(sorted)

		value, _, found := view.Lookup("always")
		if !found || value != sorted[0] {
			t.Fatalf("always: got %v, want %d", value, sorted[0])
		}

		want, wantFound := 0, false
		for _, idx := range sorted {
			if defines[idx] {
				want, wantFound = idx, true
				break
			}
		}
		value, _, found = view.Lookup("sometimes")
		if found != wantFound {
			t.Fatalf("sometimes: found %v, want %v", found, wantFound)
		}
		if found && value != want {
			t.Fatalf("sometimes: got %v, want %d", value, want)
		}
	})
}
