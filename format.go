// FILE: krail-config/format.go
package config

import (
	"path/filepath"
	"strings"
)

// FileType identifies the format of a configuration file
type FileType int

const (
	// FileTypeAuto infers the format from the file extension
	FileTypeAuto FileType = iota
	// FileTypeINI is an INI file; section keys become "section.key"
	FileTypeINI
	// FileTypeYAML is a YAML document
	FileTypeYAML
	// FileTypeXML is an XML document; the root element is not part of the key
	FileTypeXML
	// FileTypeJSON is a JSON object
	FileTypeJSON
	// FileTypeTOML is a TOML document
	FileTypeTOML
)

func (ft FileType) String() string {
	switch ft {
	case FileTypeAuto:
		return "auto"
	case FileTypeINI:
		return "ini"
	case FileTypeYAML:
		return "yaml"
	case FileTypeXML:
		return "xml"
	case FileTypeJSON:
		return "json"
	case FileTypeTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// ParseFileType maps a format name ("ini", "yaml", "auto", ...) to a FileType.
func ParseFileType(name string) (FileType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return FileTypeAuto, nil
	case "ini":
		return FileTypeINI, nil
	case "yaml", "yml":
		return FileTypeYAML, nil
	case "xml":
		return FileTypeXML, nil
	case "json":
		return FileTypeJSON, nil
	case "toml", "tml":
		return FileTypeTOML, nil
	default:
		return FileTypeAuto, &UnsupportedFileTypeError{Filename: name, Ext: name}
	}
}

// ResolveFileType returns the effective format for filename.
// An explicit type is returned unchanged; FileTypeAuto is resolved from the
// extension, case-insensitively.
func ResolveFileType(filename string, ft FileType) (FileType, error) {
	if ft != FileTypeAuto {
		return ft, nil
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "ini":
		return FileTypeINI, nil
	case "xml":
		return FileTypeXML, nil
	case "yml", "yaml":
		return FileTypeYAML, nil
	case "json":
		return FileTypeJSON, nil
	case "toml", "tml":
		return FileTypeTOML, nil
	default:
		return FileTypeAuto, &UnsupportedFileTypeError{Filename: filename, Ext: ext}
	}
}
