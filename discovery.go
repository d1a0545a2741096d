// FILE: krail-config/discovery.go
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// PathLocator supplies the directory configuration files are resolved against.
type PathLocator interface {
	ConfigurationDirectory() string
}

// PathLocatorFunc adapts a function to the PathLocator interface
type PathLocatorFunc func() string

// ConfigurationDirectory calls f()
func (f PathLocatorFunc) ConfigurationDirectory() string {
	return f()
}

// DirLocator resolves every source against a fixed directory.
type DirLocator string

// ConfigurationDirectory returns the directory
func (d DirLocator) ConfigurationDirectory() string {
	return string(d)
}

// WorkingDirLocator resolves sources against the process working directory.
func WorkingDirLocator() PathLocator {
	return PathLocatorFunc(func() string {
		if cwd, err := os.Getwd(); err == nil {
			return cwd
		}
		return "."
	})
}

// DiscoveryOptions configures configuration directory discovery
type DiscoveryOptions struct {
	// Application name, used as the directory name under XDG roots
	Name string

	// Environment variable to check for an explicit directory
	EnvVar string

	// Custom search paths (checked before the defaults)
	Paths []string

	// Whether to search in XDG config directories
	UseXDG bool

	// Whether to fall back to the current directory
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns sensible defaults
func DefaultDiscoveryOptions(appName string) DiscoveryOptions {
	return DiscoveryOptions{
		Name:          appName,
		EnvVar:        strings.ToUpper(appName) + "_CONFIG_DIR",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// DiscoverLocator returns a locator for the first existing directory among:
// the EnvVar value, custom paths, XDG config directories, and the current
// directory. If none exists the current directory is used.
func DiscoverLocator(opts DiscoveryOptions) PathLocator {
	return DirLocator(discoverDirectory(opts))
}

func discoverDirectory(opts DiscoveryOptions) string {
	var searchPaths []string

	if opts.EnvVar != "" {
		if dir := os.Getenv(opts.EnvVar); dir != "" {
			searchPaths = append(searchPaths, dir)
		}
	}

	searchPaths = append(searchPaths, opts.Paths...)

	if opts.UseXDG && opts.Name != "" {
		searchPaths = append(searchPaths, getXDGConfigPaths(opts.Name)...)
	}

	for _, dir := range searchPaths {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	// No directory found is not an error - optional sources tolerate it
	if cwd, err := os.Getwd(); err == nil && opts.UseCurrentDir {
		return cwd
	}
	return "."
}

// getXDGConfigPaths returns XDG-compliant config search paths
func getXDGConfigPaths(appName string) []string {
	var paths []string

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}

	return paths
}
