// FILE: krail-config/loader.go
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// Loader reads source descriptors into layers using one Parser per FileType.
// Loading has no side effects beyond file reads.
type Loader struct {
	locator PathLocator
	parsers map[FileType]Parser
	logger  *zap.Logger
}

// NewLoader creates a Loader resolving files against locator with the default parsers.
func NewLoader(locator PathLocator, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		locator: locator,
		parsers: DefaultParsers(),
		logger:  logger,
	}
}

// SetParser replaces the parser used for ft.
func (l *Loader) SetParser(ft FileType, p Parser) error {
	if ft == FileTypeAuto {
		return fmt.Errorf("cannot set a parser for file type %s", ft)
	}
	if p == nil {
		return fmt.Errorf("parser for file type %s cannot be nil", ft)
	}
	l.parsers[ft] = p
	return nil
}

// resolvePath joins the configuration directory and filename into an absolute path.
func (l *Loader) resolvePath(filename string) string {
	path := filename
	if !filepath.IsAbs(filename) {
		dir := ""
		if l.locator != nil {
			dir = l.locator.ConfigurationDirectory()
		}
		path = filepath.Join(dir, filename)
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// Load reads and parses the file described by d.
// An unsupported file type is always an error. Any other failure of an
// optional source returns an error matching ErrSourceSkipped; for a required
// source it returns a *LoadError.
func (l *Loader) Load(d Descriptor) (Layer, error) {
	fileType, err := ResolveFileType(d.Filename, d.FileType)
	if err != nil {
		return Layer{}, err
	}

	path := l.resolvePath(d.Filename)

	parser, ok := l.parsers[fileType]
	if !ok {
		return Layer{}, fmt.Errorf("no parser registered for file type %s (file '%s')", fileType, path)
	}

	props, err := parser.Parse(path)
	if err != nil {
		if d.Optional {
			return Layer{}, fmt.Errorf("%w: '%s': %w", ErrSourceSkipped, path, err)
		}
		return Layer{}, &LoadError{Path: path, Cause: err}
	}
	if props == nil {
		props = make(Properties)
	}

	return Layer{Descriptor: d, Path: path, Properties: props}, nil
}

// LoadAll loads descriptors in the given order, least authoritative first,
// and layers the results. Optional sources that fail are left out. The first
// fatal error aborts the load and no view is returned.
func (l *Loader) LoadAll(descriptors []Descriptor) (*View, error) {
	view := newView()

	for _, d := range descriptors {
		layer, err := l.Load(d)
		if err != nil {
			if errors.Is(err, ErrSourceSkipped) {
				l.logger.Debug("Skipping optional configuration source",
					zap.Int("index", d.Index),
					zap.String("filename", d.Filename),
					zap.Error(err))
				continue
			}
			return nil, err
		}

		l.logger.Debug("Loaded configuration source",
			zap.Int("index", d.Index),
			zap.String("path", layer.Path),
			zap.Int("properties", len(layer.Properties)))
		view.add(layer)
	}

	return view, nil
}
