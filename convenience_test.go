// FILE: krail-config/convenience_test.go
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestdataConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := NewBuilder().
		WithDirectory("testdata").
		WithSource(100, "krail.ini").
		WithSource(90, "test.krail.ini").
		WithSource(80, "test.yml").
		WithSource(34, "missing.xml").
		Build()
	require.NoError(t, err)
	return cfg
}

// TestIntrospection tests Has, Keys, Raw, Sources and Layers
func TestIntrospection(t *testing.T) {
	cfg := newTestdataConfig(t)

	t.Run("Has", func(t *testing.T) {
		has, err := cfg.Has("database.port")
		require.NoError(t, err)
		assert.True(t, has)

		has, err = cfg.Has("rubbish")
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("Keys", func(t *testing.T) {
		keys, err := cfg.Keys()
		require.NoError(t, err)
		assert.Contains(t, keys, "dbUser")
		assert.Contains(t, keys, "database.pool")
		assert.Contains(t, keys, "floater")
		assert.IsIncreasing(t, keys)
	})

	t.Run("Raw", func(t *testing.T) {
		value, source, err := cfg.Raw("database.port")
		require.NoError(t, err)
		assert.Equal(t, "6543", value)
		assert.Equal(t, 90, source.Index)
		assert.Equal(t, "test.krail.ini", source.Filename)

		_, _, err = cfg.Raw("rubbish")
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})

	t.Run("Sources", func(t *testing.T) {
		sources, err := cfg.Sources("dbUser")
		require.NoError(t, err)
		assert.Equal(t, map[int]any{100: "java", 90: "kotlin", 80: "python"}, sources)
	})

	t.Run("Layers", func(t *testing.T) {
		layers, err := cfg.Layers()
		require.NoError(t, err)
		require.Len(t, layers, 3)
		assert.Equal(t, 100, layers[0].Descriptor.Index)
		assert.Equal(t, 80, layers[2].Descriptor.Index)
	})
}

// TestDebugAndDump tests the diagnostic output
func TestDebugAndDump(t *testing.T) {
	cfg := newTestdataConfig(t)

	t.Run("Debug", func(t *testing.T) {
		out, err := cfg.Debug()
		require.NoError(t, err)

		assert.Contains(t, out, "Configuration Debug Info:")
		assert.Contains(t, out, "  dbUser:\n    Current: python (from 80)\n    80: python\n    90: kotlin\n    100: java\n")
		assert.NotContains(t, out, "missing.xml")
	})

	t.Run("Dump", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, cfg.Dump(&buf))

		var dumped map[string]any
		_, err := toml.Decode(buf.String(), &dumped)
		require.NoError(t, err)

		assert.Equal(t, "python", dumped["dbUser"])
		assert.Equal(t, []any{"Cat", "Dog", "Goldfish"}, dumped["pets"])
		database, ok := dumped["database"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "ini-host", database["host"])
		assert.Equal(t, "6543", database["port"])
		assert.Equal(t, int64(10), database["pool"])
	})

	t.Run("LoadFailure", func(t *testing.T) {
		broken, err := NewBuilder().
			WithDirectory("testdata").
			WithSource(1, "missing.xml", Required()).
			Build()
		require.NoError(t, err)

		_, err = broken.Debug()
		assert.ErrorIs(t, err, ErrConfigurationLoad)

		var buf bytes.Buffer
		assert.ErrorIs(t, broken.Dump(&buf), ErrConfigurationLoad)
		assert.Zero(t, buf.Len())
	})
}

// TestDumpKeepsAuthoritativeValueOnPathCollision tests a winning scalar that
// shares its name with a lower priority section
func TestDumpKeepsAuthoritativeValueOnPathCollision(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.yml"), []byte("server: primary\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.ini"), []byte("[server]\nport=80\n"), 0644))

	cfg, err := NewBuilder().
		WithDirectory(dir).
		WithSource(1, "app.yml", Required()).
		WithSource(2, "base.ini", Required()).
		Build()
	require.NoError(t, err)

	server, err := cfg.String("server")
	require.NoError(t, err)
	assert.Equal(t, "primary", server)

	var buf bytes.Buffer
	require.NoError(t, cfg.Dump(&buf))
	assert.Contains(t, buf.String(), `server = "primary"`)
	assert.NotContains(t, buf.String(), "port")

	var target struct {
		Server string `config:"server"`
	}
	require.NoError(t, cfg.Scan("", &target))
	assert.Equal(t, "primary", target.Server)

	// The shadowed value is still reachable by its own key
	port, err := cfg.Int("server.port")
	require.NoError(t, err)
	assert.Equal(t, 80, port)
}

// TestNullValueIsAbsent tests that introspection agrees with the accessors
func TestNullValueIsAbsent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.yml"), []byte("empty:\nname: app\n"), 0644))

	cfg, err := NewBuilder().WithDirectory(dir).WithSource(1, "app.yml", Required()).Build()
	require.NoError(t, err)

	has, err := cfg.Has("empty")
	require.NoError(t, err)
	assert.False(t, has)

	_, _, err = cfg.Raw("empty")
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	_, err = cfg.String("empty")
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	def, err := cfg.StringOr("empty", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", def)

	has, err = cfg.Has("name")
	require.NoError(t, err)
	assert.True(t, has)
}
