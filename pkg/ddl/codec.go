package ddl

import (
	"fmt"
	"log/slog"
	"maps"
)

// Map form keys.
const (
	keyName         = "name"
	keyDataType     = "data_type"
	keyConstraints  = "constraints"
	keyColumns      = "columns"
	keyDatabaseName = "database_name"
	keyTables       = "tables"
	keySchema       = "schema"
	keyCharset      = "charset"
	keyCollation    = "collation"
	keyOptions      = "options"
)

// requiredString reads a mandatory string key.
func requiredString(m map[string]any, entity, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", malformed(entity, key, "is missing a required key")
	}
	s, ok := v.(string)
	if !ok {
		return "", malformed(entity, key, "has a non-string value").
			With("got", fmt.Sprintf("%T", v))
	}
	return s, nil
}

// optionalString reads a string key, falling back to def when absent.
func optionalString(m map[string]any, entity, key, def string) (string, error) {
	if _, ok := m[key]; !ok {
		return def, nil
	}
	return requiredString(m, entity, key)
}

// stringList reads a list of strings. Absent or null yields an empty, non-nil slice.
// Both []string and the []any produced by YAML/JSON decoders are accepted.
func stringList(m map[string]any, entity, key string) ([]string, error) {
	switch v := m[key].(type) {
	case nil:
		return []string{}, nil
	case []string:
		return append([]string{}, v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, malformed(entity, key, "has a non-string item").
					With("index", i).
					With("got", fmt.Sprintf("%T", item))
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, malformed(entity, key, "is not a list").
			With("got", fmt.Sprintf("%T", v))
	}
}

// mapList reads a list of nested map forms. Absent or null yields an empty slice.
func mapList(m map[string]any, entity, key string) ([]map[string]any, error) {
	switch v := m[key].(type) {
	case nil:
		return []map[string]any{}, nil
	case []map[string]any:
		return v, nil
	case []any:
		out := make([]map[string]any, 0, len(v))
		for i, item := range v {
			im, ok := item.(map[string]any)
			if !ok {
				return nil, malformed(entity, key, "has an item that is not a mapping").
					With("index", i).
					With("got", fmt.Sprintf("%T", item))
			}
			out = append(out, im)
		}
		return out, nil
	default:
		return nil, malformed(entity, key, "is not a list").
			With("got", fmt.Sprintf("%T", v))
	}
}

// optionsMap reads the free-form options mapping. Absent or null yields an empty map.
func optionsMap(m map[string]any, entity, key string) (map[string]any, error) {
	switch v := m[key].(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return maps.Clone(v), nil
	default:
		return nil, malformed(entity, key, "is not a mapping").
			With("got", fmt.Sprintf("%T", v))
	}
}

func logDecoded(entity, name string, attrs ...any) {
	slog.Debug("decoded "+entity, append([]any{"name", name}, attrs...)...)
}
