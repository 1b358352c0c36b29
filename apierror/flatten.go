package apierror

import "fmt"

// Flatten normalizes a nested field-error tree into a flat FieldErrors map.
// The tree is a generic value of strings, lists, and maps as decoded from
// JSON: a string leaf becomes a singleton list, a list leaf is stringified
// element-wise, and a map recurses with its keys joined by ".". A wrapper
// key named "data" is elided from the path; its children are promoted to
// the parent path.
func Flatten(tree any) FieldErrors {
	result := FieldErrors{}
	flattenInto(result, tree, "")
	return result
}

func flattenInto(result FieldErrors, value any, prefix string) {
	switch node := value.(type) {
	case string:
		result[fieldName(prefix)] = []string{node}
	case []any:
		messages := make([]string, 0, len(node))
		for _, element := range node {
			messages = append(messages, stringify(element))
		}
		result[fieldName(prefix)] = messages
	case map[string]any:
		for key, child := range node {
			flattenInto(result, child, childPrefix(prefix, key))
		}
	}
}

// childPrefix extends the dotted path with a key, eliding the "data" wrapper.
func childPrefix(prefix, key string) string {
	if key == "data" {
		return prefix
	}
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// fieldName falls back to a generic name when a leaf sits at the tree root.
func fieldName(prefix string) string {
	if prefix == "" {
		return "field"
	}
	return prefix
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
