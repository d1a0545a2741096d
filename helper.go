// FILE: krail-config/helper.go
package config

import (
	"fmt"
	"strings"
)

// flattenMap converts a nested map to flat Properties with dot-notation paths.
// Sequences are kept as leaf values.
func flattenMap(nested map[string]any, prefix string) Properties {
	flat := make(Properties)

	for key, value := range nested {
		newPath := key
		if prefix != "" {
			newPath = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]any:
			for subPath, subValue := range flattenMap(v, newPath) {
				flat[subPath] = subValue
			}
		case map[any]any:
			// yaml produces these for mappings with non-string keys
			converted := make(map[string]any, len(v))
			for k, sub := range v {
				converted[fmt.Sprint(k)] = sub
			}
			for subPath, subValue := range flattenMap(converted, newPath) {
				flat[subPath] = subValue
			}
		default:
			flat[newPath] = value
		}
	}

	return flat
}

// setNestedValue sets a value in a nested map using a dot-notation path.
// It creates intermediate maps if they don't exist.
// If a segment exists but is not a map, it will be overwritten by a new map.
func setNestedValue(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested

	for i := 0; i < len(segments)-1; i++ {
		segment := segments[i]

		next, exists := current[segment]
		if nextMap, isMap := next.(map[string]any); exists && isMap {
			current = nextMap
			continue
		}
		newMap := make(map[string]any)
		current[segment] = newMap
		current = newMap
	}

	current[segments[len(segments)-1]] = value
}

// navigateToPath traverses nested map to reach the specified path
func navigateToPath(nested map[string]any, path string) any {
	path = strings.TrimSuffix(path, ".")
	if path == "" {
		return nested
	}

	current := any(nested)
	for _, segment := range strings.Split(path, ".") {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil
		}

		value, exists := currentMap[segment]
		if !exists {
			return nil
		}
		current = value
	}

	return current
}
