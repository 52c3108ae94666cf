package content

import (
	"net/url"
	"strings"
)

// DefaultMediaBase is the URL prefix media files are served under.
const DefaultMediaBase = "/media"

// MediaURL turns an upload reference into a URL. The reference may be an absolute or
// rooted URL (returned unchanged), a bare filename (served under base) or an upload
// object carrying "url" or "filename". Anything else yields "".
func MediaURL(ref any, base string) string {
	switch r := ref.(type) {
	case string:
		return urlFor(r, base)
	case map[string]any:
		if u, _ := r["url"].(string); u != "" {
			return urlFor(u, base)
		}
		if fn, _ := r["filename"].(string); fn != "" {
			return urlFor(fn, base)
		}
	}
	return ""
}

func urlFor(s, base string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, p := range []string{"http://", "https://", "//", "/", "data:"} {
		if strings.HasPrefix(s, p) {
			return s
		}
	}
	if base == "" {
		base = DefaultMediaBase
	}
	return strings.TrimSuffix(base, "/") + "/" + url.PathEscape(s)
}

// NormalizeMedia returns a copy of doc in which every documented media field, and every
// documented media key of list items, holds a URL string or nil.
func NormalizeMedia(schema Schema, doc Node, base string) Node {
	out := make(Node, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	for _, sec := range schema.Sections {
		if src, ok := doc[sec.Key].(map[string]any); ok {
			out[sec.Key] = normalizeGroup(sec.Fields, src, base)
		}
	}
	return out
}

func normalizeGroup(fields []Field, src map[string]any, base string) Node {
	out := make(Node, len(src))
	for k, v := range src {
		out[k] = v
	}
	for _, f := range fields {
		v, present := src[f.Name]
		if !present {
			continue
		}
		switch f.Kind {
		case Media:
			out[f.Name] = urlOrNil(v, base)
		case Object:
			if nested, ok := v.(map[string]any); ok {
				out[f.Name] = normalizeGroup(f.Fields, nested, base)
			}
		case Array:
			if len(f.ItemMedia) == 0 {
				continue
			}
			if items, ok := asList(v); ok {
				out[f.Name] = normalizeItems(items, f.ItemMedia, base)
			}
		}
	}
	return out
}

func normalizeItems(items []any, keys []string, base string) []any {
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		cp := make(map[string]any, len(m))
		for k, v := range m {
			cp[k] = v
		}
		for _, k := range keys {
			if v, present := m[k]; present {
				cp[k] = urlOrNil(v, base)
			}
		}
		items[i] = cp
	}
	return items
}

func urlOrNil(v any, base string) any {
	if u := MediaURL(v, base); u != "" {
		return u
	}
	return nil
}
