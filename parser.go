// FILE: krail-config/parser.go
package config

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Properties is the flat key/value content of one parsed source.
// Keys are dot-separated paths; values are scalars or []any sequences.
type Properties map[string]any

// Parser reads one configuration file into Properties.
type Parser interface {
	Parse(path string) (Properties, error)
}

// ParserFunc adapts a plain function to the Parser interface
type ParserFunc func(path string) (Properties, error)

// Parse calls f(path)
func (f ParserFunc) Parse(path string) (Properties, error) {
	return f(path)
}

// DefaultParsers returns the built-in parser for every concrete FileType.
func DefaultParsers() map[FileType]Parser {
	return map[FileType]Parser{
		FileTypeINI:  ParserFunc(parseINI),
		FileTypeYAML: ParserFunc(parseYAML),
		FileTypeXML:  ParserFunc(parseXML),
		FileTypeJSON: ParserFunc(parseJSON),
		FileTypeTOML: ParserFunc(parseTOML),
	}
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file '%s' not found: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	return data, nil
}

// parseINI keeps default-section keys bare and prefixes the rest with
// "section.". Repeated keys become a sequence.
func parseINI(path string) (Properties, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	file, err := ini.LoadSources(ini.LoadOptions{AllowShadows: true}, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse INI config file '%s': %w", path, err)
	}

	props := make(Properties)
	for _, section := range file.Sections() {
		prefix := ""
		if section.Name() != ini.DefaultSection {
			prefix = section.Name() + "."
		}
		for _, key := range section.Keys() {
			shadows := key.ValueWithShadows()
			if len(shadows) > 1 {
				seq := make([]any, len(shadows))
				for i, v := range shadows {
					seq[i] = v
				}
				props[prefix+key.Name()] = seq
				continue
			}
			props[prefix+key.Name()] = key.Value()
		}
	}
	return props, nil
}

func parseYAML(path string) (Properties, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	fileConfig := make(map[string]any)
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config file '%s': %w", path, err)
	}
	return flattenMap(fileConfig, ""), nil
}

func parseJSON(path string) (Properties, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	fileConfig := make(map[string]any)
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // Preserve number precision
	if err := decoder.Decode(&fileConfig); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config file '%s': %w", path, err)
	}
	return flattenMap(fileConfig, ""), nil
}

func parseTOML(path string) (Properties, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	fileConfig := make(map[string]any)
	if err := toml.Unmarshal(data, &fileConfig); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config file '%s': %w", path, err)
	}
	return flattenMap(fileConfig, ""), nil
}

// xmlNode is one element of a parsed XML document
type xmlNode struct {
	name     string
	attrs    []xml.Attr
	text     strings.Builder
	children []*xmlNode
}

// parseXML drops the root element from keys. Nested elements join with dots,
// attributes become "element[@attr]", repeated leaf elements become a
// sequence and repeated complex elements are addressed as "element(i)".
func parseXML(path string) (Properties, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	root, err := decodeXMLTree(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML config file '%s': %w", path, err)
	}

	props := make(Properties)
	for _, attr := range root.attrs {
		props["[@"+attr.Name.Local+"]"] = attr.Value
	}
	flattenXMLChildren(root, "", props)
	return props, nil
}

func decodeXMLTree(data []byte) (*xmlNode, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	var root *xmlNode
	var stack []*xmlNode

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &xmlNode{name: t.Name.Local, attrs: t.Attr}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("no root element")
	}
	return root, nil
}

func flattenXMLChildren(node *xmlNode, prefix string, props Properties) {
	groups := make(map[string][]*xmlNode)
	var order []string
	for _, child := range node.children {
		if _, seen := groups[child.name]; !seen {
			order = append(order, child.name)
		}
		groups[child.name] = append(groups[child.name], child)
	}

	for _, name := range order {
		nodes := groups[name]
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		allLeaves := true
		for _, n := range nodes {
			if len(n.children) > 0 || len(n.attrs) > 0 {
				allLeaves = false
				break
			}
		}

		if len(nodes) == 1 {
			flattenXMLNode(nodes[0], path, props)
			continue
		}
		if allLeaves {
			seq := make([]any, len(nodes))
			for i, n := range nodes {
				seq[i] = strings.TrimSpace(n.text.String())
			}
			props[path] = seq
			continue
		}
		for i, n := range nodes {
			flattenXMLNode(n, path+"("+strconv.Itoa(i)+")", props)
		}
	}
}

func flattenXMLNode(node *xmlNode, path string, props Properties) {
	for _, attr := range node.attrs {
		props[path+"[@"+attr.Name.Local+"]"] = attr.Value
	}
	if len(node.children) == 0 {
		props[path] = strings.TrimSpace(node.text.String())
		return
	}
	flattenXMLChildren(node, path, props)
}
