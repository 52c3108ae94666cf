// Package content fills partially authored CMS documents with their documented defaults
// so page rendering can rely on every section, field and list being present.
package content

import "sort"

// Node is a decoded JSON object.
type Node = map[string]any

// Kind is the shape of a documented field.
type Kind int

const (
	// Scalar fields fall back to Default when missing, nil, or an empty string with a
	// non-empty default.
	Scalar Kind = iota
	// Array fields fall back to an empty list when missing or not a list.
	Array
	// Object fields are nested groups of documented fields.
	Object
	// Media fields hold an upload reference; they default to nil and are rewritten to
	// URLs by NormalizeMedia.
	Media
)

// Field documents one key of a section.
type Field struct {
	Name    string
	Kind    Kind
	Default any
	// Fields documents the keys of an Object field.
	Fields []Field
	// ItemMedia names the media keys of an Array field's items.
	ItemMedia []string
}

// Section is an independently toggleable block of a page.
type Section struct {
	Key    string
	Fields []Field
}

// Schema documents a global.
type Schema struct {
	Slug     string
	Sections []Section
}

func str(name, def string) Field { return Field{Name: name, Kind: Scalar, Default: def} }
func null(name string) Field { return Field{Name: name, Kind: Scalar} }
func media(name string) Field { return Field{Name: name, Kind: Media} }
func list(name string, itemMedia ...string) Field {
	return Field{Name: name, Kind: Array, ItemMedia: itemMedia}
}
func object(name string, fields ...Field) Field {
	return Field{Name: name, Kind: Object, Fields: fields}
}

var registry = map[string]Schema{
	HomePage.Slug:     HomePage,
	SiteSettings.Slug: SiteSettings,
}

// Lookup returns the schema registered for a global slug.
func Lookup(slug string) (Schema, bool) {
	s, ok := registry[slug]
	return s, ok
}

// Slugs lists the registered globals in lexical order.
func Slugs() []string {
	out := make([]string, 0, len(registry))
	for slug := range registry {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}
