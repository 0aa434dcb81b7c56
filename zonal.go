// Package zonal provides a fluent API for rendering pages from a declarative
// geometry document, a set of content objects, and a style map.
//
// Basic usage:
//
//	html, warnings, err := zonal.Open("site/geometry.yaml").HTML("home")
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", zonal.FormatWarnings(warnings))
//	}
//
// With options:
//
//	html, _, err := zonal.Open("site/geometry.yaml").
//	    Objects("site/objects").
//	    Styles("site/style.yaml").
//	    HTML("home")
//
// Every page is validated before it is rendered; an invalid page yields an
// error and no markup. For advanced use cases, the lower-level geometry,
// store, validate, and render packages are also available.
package zonal

import (
	"github.com/tsawler/zonal/geometry"
	"github.com/tsawler/zonal/store"
)

// Open points a Pipeline at a geometry document on disk. The document is
// loaded lazily on the first terminal operation. Content objects default
// to an "objects" directory next to the geometry file unless Objects or
// WithSource says otherwise.
//
// Example:
//
//	html, warnings, err := zonal.Open("site/geometry.yaml").HTML("home")
func Open(geometryPath string) *Pipeline {
	return &Pipeline{
		geometryPath: geometryPath,
		options:      defaultOptions(),
	}
}

// FromDocuments creates a Pipeline from an already-built geometry document
// and object source. This is useful in tests and in programs that assemble
// documents in memory.
//
// Example:
//
//	doc, _ := geometry.FromRaw(raw)
//	html, _, err := zonal.FromDocuments(doc, store.MemSource{...}).HTML("home")
func FromDocuments(doc *geometry.Document, src store.Source) *Pipeline {
	return &Pipeline{
		doc:     doc,
		source:  src,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	ids := zonal.Must(zonal.Open("geometry.yaml").PageIDs())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustHTML is a helper that wraps a call to HTML() and panics if the error
// is non-nil. It discards warnings and returns just the markup. It is
// intended for use in scripts or tests where error handling would be
// cumbersome.
//
// Example:
//
//	markup := zonal.MustHTML(zonal.Open("geometry.yaml").HTML("home"))
func MustHTML[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
