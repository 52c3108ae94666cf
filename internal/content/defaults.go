package content

// WithDefaults returns a copy of raw in which every section, field and list documented
// by schema is present. A nil raw yields the all-defaults document.
//
// Keys not documented by the schema are carried over unchanged, at the top level and
// inside sections. Values of the wrong shape are treated as missing. An explicitly empty
// list is kept empty; only a missing list is defaulted. A section's "enabled" flag is
// false only when the input says false.
func WithDefaults(schema Schema, raw Node) Node {
	out := make(Node, len(raw)+len(schema.Sections))
	for k, v := range raw {
		out[k] = v
	}
	for _, sec := range schema.Sections {
		src, _ := raw[sec.Key].(map[string]any)
		section := resolveGroup(sec.Fields, src)
		section["enabled"] = enabled(src)
		out[sec.Key] = section
	}
	return out
}

// Defaults returns the all-defaults document for schema.
func Defaults(schema Schema) Node {
	return WithDefaults(schema, nil)
}

// SectionEnabled reports whether the section under key should render. Absent sections
// and sections without an explicit false are enabled.
func SectionEnabled(doc Node, key string) bool {
	sec, _ := doc[key].(map[string]any)
	return enabled(sec)
}

func enabled(src map[string]any) bool {
	v, ok := src["enabled"].(bool)
	return !ok || v
}

func resolveGroup(fields []Field, src map[string]any) Node {
	out := make(Node, len(src)+len(fields)+1)
	for k, v := range src {
		out[k] = v
	}
	for _, f := range fields {
		v, present := src[f.Name]
		out[f.Name] = resolveField(f, v, present)
	}
	return out
}

func resolveField(f Field, v any, present bool) any {
	switch f.Kind {
	case Array:
		if items, ok := asList(v); ok {
			return items
		}
		return []any{}
	case Object:
		nested, _ := v.(map[string]any)
		return resolveGroup(f.Fields, nested)
	default:
		return resolveScalar(f.Default, v, present)
	}
}

func resolveScalar(def, v any, present bool) any {
	if !present || v == nil {
		return def
	}
	if s, ok := v.(string); ok && s == "" {
		if d, ok := def.(string); ok && d != "" {
			return d
		}
	}
	return v
}

// asList accepts decoded JSON arrays as well as lists of objects built in Go.
func asList(v any) ([]any, bool) {
	switch items := v.(type) {
	case []any:
		out := make([]any, len(items))
		copy(out, items)
		return out, true
	case []map[string]any:
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = item
		}
		return out, true
	default:
		return nil, false
	}
}
