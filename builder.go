// FILE: krail-config/builder.go
package config

import (
	"fmt"

	"go.uber.org/zap"
)

// ValidatorFunc defines the signature for a function that can validate a Config instance.
// It receives the loaded *Config object and should return an error if validation fails.
type ValidatorFunc func(c *Config) error

// SourceOption adjusts a Descriptor added through the Builder
type SourceOption func(*Descriptor)

// Optional marks a source whose absence or failure is tolerated
func Optional() SourceOption {
	return func(d *Descriptor) { d.Optional = true }
}

// Required marks a source whose failure aborts loading
func Required() SourceOption {
	return func(d *Descriptor) { d.Optional = false }
}

// AsType sets an explicit file type instead of inferring it from the extension
func AsType(ft FileType) SourceOption {
	return func(d *Descriptor) { d.FileType = ft }
}

// Builder provides a fluent interface for building configurations
type Builder struct {
	registry   *Registry
	locator    PathLocator
	parsers    map[FileType]Parser
	logger     *zap.Logger
	eager      bool
	err        error
	validators []ValidatorFunc
}

// NewBuilder creates a new configuration builder.
// Sources added with WithSource are optional unless Required is given.
func NewBuilder() *Builder {
	return &Builder{
		registry:   NewRegistry(),
		locator:    WorkingDirLocator(),
		parsers:    make(map[FileType]Parser),
		validators: make([]ValidatorFunc, 0),
	}
}

// WithSource registers filename at index. Lower indices override higher ones.
func (b *Builder) WithSource(index int, filename string, opts ...SourceOption) *Builder {
	d := Descriptor{Index: index, Filename: filename, FileType: FileTypeAuto, Optional: true}
	for _, opt := range opts {
		opt(&d)
	}
	return b.WithDescriptor(d)
}

// WithDescriptor registers d as given
func (b *Builder) WithDescriptor(d Descriptor) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.registry.Register(d); err != nil {
		b.err = err
	}
	return b
}

// WithDirectory resolves sources against a fixed directory
func (b *Builder) WithDirectory(dir string) *Builder {
	b.locator = DirLocator(dir)
	return b
}

// WithLocator sets the path resolution collaborator
func (b *Builder) WithLocator(locator PathLocator) *Builder {
	if locator == nil {
		b.err = fmt.Errorf("path locator cannot be nil")
		return b
	}
	b.locator = locator
	return b
}

// WithParser overrides the parser for one file type
func (b *Builder) WithParser(ft FileType, p Parser) *Builder {
	b.parsers[ft] = p
	return b
}

// WithLogger sets the structured logger; nil keeps the no-op logger
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

// WithEagerLoad materializes the configuration inside Build
func (b *Builder) WithEagerLoad() *Builder {
	b.eager = true
	return b
}

// WithValidator adds a validation function that runs at the end of the build process.
// Validators force an eager load and are executed in the order they are added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates the Config instance with all specified options
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}

	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	loader := NewLoader(b.locator, logger)
	for ft, p := range b.parsers {
		if err := loader.SetParser(ft, p); err != nil {
			return nil, err
		}
	}

	cfg := NewWithService(NewService(b.registry, loader, logger), logger)

	if b.eager || len(b.validators) > 0 {
		if err := cfg.Load(); err != nil {
			return nil, err
		}
	}

	for _, validator := range b.validators {
		if err := validator(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	return cfg, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return cfg
}

// BuildAndScan builds the configuration and decodes the section at basePath into target
func (b *Builder) BuildAndScan(basePath string, target any) (*Config, error) {
	cfg, err := b.Build()
	if err != nil {
		return nil, err
	}

	if err := cfg.Scan(basePath, target); err != nil {
		return nil, fmt.Errorf("failed to scan final config into target: %w", err)
	}
	return cfg, nil
}
