package extract

// Record is a JSON object recovered from generated text. Values use the
// encoding/json generic types: string, float64, bool, []any, map[string]any and nil.
type Record map[string]any

// Field is a key the caller requires in every extracted record.
type Field struct {
	Key     string
	Default any
	// Valid reports whether a parsed value is structurally usable for Key.
	// A nil Valid accepts any present value.
	Valid func(v any) bool
}

// Spec lists the required keys of one kind of generated response.
type Spec struct {
	Name   string
	Fields []Field
}

// Keys returns the required keys in declaration order.
func (s Spec) Keys() []string {
	keys := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		keys = append(keys, f.Key)
	}
	return keys
}

// Defaults returns a fresh record holding every default of the spec.
func (s Spec) Defaults() Record {
	rec := make(Record, len(s.Fields))
	for _, f := range s.Fields {
		rec[f.Key] = cloneValue(f.Default)
	}
	return rec
}

// HasStringField returns a validator accepting JSON objects whose name
// member is a non-empty string.
func HasStringField(name string) func(any) bool {
	return func(v any) bool {
		obj, ok := v.(map[string]any)
		if !ok {
			return false
		}
		s, ok := obj[name].(string)
		return ok && s != ""
	}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = cloneValue(item)
		}
		return out
	case Record:
		out := make(Record, len(t))
		for k, item := range t {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}
