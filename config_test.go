// FILE: krail-config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfigCreation tests a Config built without the builder
func TestConfigCreation(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(Descriptor{Index: 100, Filename: "krail.ini", Optional: true})

	cfg := New(registry, DirLocator("testdata"))
	require.NotNil(t, cfg)
	require.NotNil(t, cfg.Service())
	assert.False(t, cfg.Loaded())

	require.NoError(t, cfg.Load())
	assert.True(t, cfg.Loaded())
	assert.True(t, registry.Sealed())

	err := registry.Register(Descriptor{Index: 1, Filename: "late.yml"})
	assert.ErrorIs(t, err, ErrRegistrySealed)
}

// TestClearReadsFilesAgain tests that Clear picks up changed files
func TestClearReadsFilesAgain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yml")
	require.NoError(t, os.WriteFile(path, []byte("mode: first\n"), 0644))

	cfg, err := NewBuilder().WithDirectory(dir).WithSource(1, "app.yml", Required()).Build()
	require.NoError(t, err)

	mode, err := cfg.String("mode")
	require.NoError(t, err)
	assert.Equal(t, "first", mode)

	require.NoError(t, os.WriteFile(path, []byte("mode: second\n"), 0644))

	// Committed view is not re-read
	mode, err = cfg.String("mode")
	require.NoError(t, err)
	assert.Equal(t, "first", mode)

	cfg.Clear()
	mode, err = cfg.String("mode")
	require.NoError(t, err)
	assert.Equal(t, "second", mode)
}

// TestLoadFailureRetries tests that a failed load is not cached
func TestLoadFailureRetries(t *testing.T) {
	dir := t.TempDir()
	cfg, err := NewBuilder().WithDirectory(dir).WithSource(1, "late.yml", Required()).Build()
	require.NoError(t, err)

	_, err = cfg.String("ready")
	assert.ErrorIs(t, err, ErrConfigurationLoad)
	assert.False(t, cfg.Loaded())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "late.yml"), []byte("ready: yes\n"), 0644))

	ready, err := cfg.String("ready")
	require.NoError(t, err)
	assert.Equal(t, "yes", ready)
	assert.True(t, cfg.Loaded())
}

// TestClone tests that clones load independently and share the service
func TestClone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yml")
	require.NoError(t, os.WriteFile(path, []byte("mode: first\n"), 0644))

	original, err := NewBuilder().WithDirectory(dir).WithSource(1, "app.yml").WithEagerLoad().Build()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("mode: second\n"), 0644))

	clone := original.Clone()
	assert.Same(t, original.Service(), clone.Service())
	assert.False(t, clone.Loaded())

	mode, err := clone.String("mode")
	require.NoError(t, err)
	assert.Equal(t, "second", mode)

	mode, err = original.String("mode")
	require.NoError(t, err)
	assert.Equal(t, "first", mode)

	// Stopping the service clears both
	original.Service().Stop()
	assert.False(t, original.Loaded())
	assert.False(t, clone.Loaded())
}

// TestConcurrentAccess tests reads racing with Clear
func TestConcurrentAccess(t *testing.T) {
	cfg := newTestdataConfig(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				user, err := cfg.String("dbUser")
				assert.NoError(t, err)
				assert.Equal(t, "python", user)
			}
		}()
		go func() {
			defer wg.Done()
			cfg.Clear()
		}()
	}
	wg.Wait()

	port, err := cfg.Int("database.port")
	require.NoError(t, err)
	assert.Equal(t, 6543, port)
}

func (s *Service) attachedCount() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.pruneLocked()
	return len(s.targets)
}

// TestDroppedClonesAreReleased tests that clones do not accumulate on the service
func TestDroppedClonesAreReleased(t *testing.T) {
	cfg := newTestdataConfig(t)
	svc := cfg.Service()

	for i := 0; i < 200; i++ {
		clone := cfg.Clone()
		_, err := clone.String("dbUser")
		require.NoError(t, err)
	}

	kept := cfg.Clone()
	require.NoError(t, kept.Load())

	runtime.GC()
	runtime.GC()

	assert.Less(t, svc.attachedCount(), 200)

	// Live configurations are still cleared on stop
	svc.Stop()
	assert.False(t, cfg.Loaded())
	assert.False(t, kept.Loaded())
	runtime.KeepAlive(kept)
}
