package rpc

import (
	"fmt"
	"strconv"
)

// Fields is the decoded field map of a Move struct. Integer fields wider
// than 32 bits arrive as decimal strings; narrower ones as JSON numbers.
type Fields map[string]any

// String returns a string field, or "" when absent.
func (f Fields) String(name string) string {
	value, ok := f[name].(string)
	if !ok {
		return ""
	}
	return value
}

// Uint64 reads an unsigned integer field in either encoding.
func (f Fields) Uint64(name string) (uint64, error) {
	switch value := f[name].(type) {
	case nil:
		return 0, fmt.Errorf("field %q is missing", name)
	case string:
		parsed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q: %w", name, err)
		}
		return parsed, nil
	case float64:
		if value < 0 || value != float64(uint64(value)) {
			return 0, fmt.Errorf("field %q: %v is not an unsigned integer", name, value)
		}
		return uint64(value), nil
	default:
		return 0, fmt.Errorf("field %q has type %T", name, value)
	}
}

// Strings reads a vector<String> field.
func (f Fields) Strings(name string) []string {
	raw, ok := f[name].([]any)
	if !ok {
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, item := range raw {
		if text, ok := item.(string); ok {
			values = append(values, text)
		}
	}
	return values
}

// Struct returns a nested struct's fields. Nested values are either a bare
// field map or wrapped as {"type": ..., "fields": {...}}.
func (f Fields) Struct(name string) Fields {
	nested, ok := f[name].(map[string]any)
	if !ok {
		return nil
	}
	if inner, ok := nested["fields"].(map[string]any); ok {
		return Fields(inner)
	}
	return Fields(nested)
}

// UID returns the id of a UID field such as "id".
func (f Fields) UID(name string) string {
	switch value := f[name].(type) {
	case string:
		return value
	case map[string]any:
		if id, ok := value["id"].(string); ok {
			return id
		}
	}
	return ""
}

// OptionID reads an Option<ID> field, returning "" for None.
func (f Fields) OptionID(name string) string {
	switch value := f[name].(type) {
	case string:
		return value
	case map[string]any:
		if vec, ok := value["vec"].([]any); ok && len(vec) > 0 {
			if id, ok := vec[0].(string); ok {
				return id
			}
		}
		if fields, ok := value["fields"].(map[string]any); ok {
			return Fields(fields).OptionID("vec")
		}
	case []any:
		if len(value) > 0 {
			if id, ok := value[0].(string); ok {
				return id
			}
		}
	}
	return ""
}
