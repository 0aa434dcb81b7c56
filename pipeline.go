package zonal

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/tsawler/zonal/geometry"
	"github.com/tsawler/zonal/notation"
	"github.com/tsawler/zonal/render"
	"github.com/tsawler/zonal/store"
	"github.com/tsawler/zonal/validate"
)

// Pipeline provides a fluent interface for validating and rendering pages.
// Each configuration method returns a new Pipeline instance, making it
// safe for concurrent use and allowing method chaining. Loading happens
// lazily on the first terminal operation; every rendered page is validated
// first, and an invalid page yields an error and no markup.
type Pipeline struct {
	// Source
	geometryPath string
	doc          *geometry.Document
	source       store.Source

	// Built lazily
	store  *store.Store
	styles *render.StyleMap
	parser *notation.Parser
	loaded bool

	// Configuration
	options renderOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Pipeline with a copy of options.
// This ensures immutability - each chain method returns a new instance.
func (p *Pipeline) clone() *Pipeline {
	return &Pipeline{
		geometryPath: p.geometryPath,
		doc:          p.doc,
		source:       p.source,
		store:        p.store,
		styles:       p.styles,
		parser:       p.parser,
		loaded:       p.loaded,
		options:      p.options.clone(),
		err:          p.err,
	}
}

// ============================================================================
// Configuration Methods (return new Pipeline instance)
// ============================================================================

// Objects sets the directory content objects are resolved from. Without it
// the pipeline looks in an "objects" directory next to the geometry file.
//
// Example:
//
//	html, _, err := zonal.Open("geometry.yaml").Objects("content").HTML("home")
func (p *Pipeline) Objects(dir string) *Pipeline {
	np := p.clone()
	np.options.objectsDir = dir
	np.source = nil
	np.loaded = false
	return np
}

// WithSource resolves content objects from an arbitrary source instead of
// a directory, such as a store.MemSource or a store.SQLiteSource.
//
// Example:
//
//	src, _ := store.OpenSQLite("site.db")
//	html, _, err := zonal.Open("geometry.yaml").WithSource(src).HTML("home")
func (p *Pipeline) WithSource(src store.Source) *Pipeline {
	np := p.clone()
	np.source = src
	np.loaded = false
	return np
}

// Styles sets the style map file translating zone ids and object types
// into presentation classes. Without it pages render unstyled.
//
// Example:
//
//	html, _, err := zonal.Open("geometry.yaml").Styles("style.yaml").HTML("home")
func (p *Pipeline) Styles(path string) *Pipeline {
	np := p.clone()
	np.options.stylePath = path
	np.styles = nil
	np.loaded = false
	return np
}

// WithStyleMap uses an already-built style map instead of loading one from
// disk.
func (p *Pipeline) WithStyleMap(m *render.StyleMap) *Pipeline {
	np := p.clone()
	np.styles = m
	np.options.stylePath = ""
	return np
}

// WithZonePattern overrides the zone id pattern accepted in tag notation.
// The default accepts ids like Z1, Z2, and Z12.
//
// Example:
//
//	html, _, err := zonal.Open("geometry.yaml").
//	    WithZonePattern(`ZONE-[A-Z]+`).
//	    HTML("home")
func (p *Pipeline) WithZonePattern(pattern string) *Pipeline {
	np := p.clone()
	np.options.zonePattern = pattern
	np.parser = nil
	np.loaded = false
	return np
}

// ============================================================================
// Loading
// ============================================================================

// ensureLoaded builds the geometry document, store, parser, and style map
// if they have not been built yet.
func (p *Pipeline) ensureLoaded() error {
	if p.err != nil {
		return p.err
	}
	if p.loaded {
		return nil
	}

	if p.doc == nil {
		if p.geometryPath == "" {
			p.err = fmt.Errorf("no geometry document specified")
			return p.err
		}
		doc, err := geometry.Load(p.geometryPath)
		if err != nil {
			p.err = err
			return p.err
		}
		p.doc = doc
	}

	if p.source == nil {
		dir := p.options.objectsDir
		if dir == "" {
			dir = filepath.Join(filepath.Dir(p.geometryPath), "objects")
		}
		src, err := store.NewDirSource(dir)
		if err != nil {
			p.err = err
			return p.err
		}
		p.source = src
	}
	p.store = store.New(p.source)

	if p.parser == nil {
		parser, err := notation.NewParserWithPattern(p.options.zonePattern)
		if err != nil {
			p.err = err
			return p.err
		}
		p.parser = parser
	}

	if p.styles == nil && p.options.stylePath != "" {
		styles, err := render.LoadStyleMap(p.options.stylePath)
		if err != nil {
			p.err = err
			return p.err
		}
		p.styles = styles
	}

	p.loaded = true
	return nil
}

func (p *Pipeline) validator() *validate.Validator {
	return validate.New(p.doc, p.store, p.parser)
}

func collectWarnings(pageID string, messages []string) []Warning {
	if len(messages) == 0 {
		return nil
	}
	warnings := make([]Warning, len(messages))
	for i, msg := range messages {
		warnings[i] = Warning{Page: pageID, Message: msg}
	}
	return warnings
}

// ============================================================================
// Terminal Operations
// ============================================================================

// HTML validates a page and renders it to markup. It returns the markup,
// any warnings found during validation, and an error if loading,
// validation, or rendering failed. An invalid page returns no markup.
//
// Example:
//
//	html, warnings, err := zonal.Open("geometry.yaml").HTML("home")
func (p *Pipeline) HTML(pageID string) (string, []Warning, error) {
	if err := p.ensureLoaded(); err != nil {
		return "", nil, err
	}

	v := p.validator()
	if err := v.ValidatePage(pageID); err != nil {
		return "", collectWarnings(pageID, v.Warnings()), err
	}
	warnings := collectWarnings(pageID, v.Warnings())

	r := render.New(p.doc, p.store, p.parser, p.styles)
	markup, err := r.RenderPage(pageID)
	if err != nil {
		return "", warnings, err
	}
	return markup, warnings, nil
}

// Validate checks a page without rendering it. It returns the warnings
// found and an error describing the violations, if any.
//
// Example:
//
//	if _, err := zonal.Open("geometry.yaml").Validate("home"); err != nil {
//	    log.Fatal(err)
//	}
func (p *Pipeline) Validate(pageID string) ([]Warning, error) {
	if err := p.ensureLoaded(); err != nil {
		return nil, err
	}

	v := p.validator()
	err := v.ValidatePage(pageID)
	return collectWarnings(pageID, v.Warnings()), err
}

// ValidationReport validates a page and returns a human-readable report of
// every error and warning found. The report is produced for valid and
// invalid pages alike; only loading failures return an error.
func (p *Pipeline) ValidationReport(pageID string) (string, error) {
	if err := p.ensureLoaded(); err != nil {
		return "", err
	}

	v := p.validator()
	if err := v.ValidatePage(pageID); err != nil {
		var verr *validate.PageError
		if !errors.As(err, &verr) {
			return "", err
		}
	}
	return v.Report(), nil
}

// PageIDs returns the ids of every page the geometry defines, sorted.
//
// Example:
//
//	ids, err := zonal.Open("geometry.yaml").PageIDs()
func (p *Pipeline) PageIDs() ([]string, error) {
	if err := p.ensureLoaded(); err != nil {
		return nil, err
	}
	return p.doc.PageIDs(), nil
}

// PageInfo returns a page's definition (name, description, zones), or an
// error if the id is unknown.
func (p *Pipeline) PageInfo(pageID string) (*geometry.Page, error) {
	if err := p.ensureLoaded(); err != nil {
		return nil, err
	}
	page := p.doc.GetPage(pageID)
	if page == nil {
		return nil, fmt.Errorf("page %q is not defined in the geometry", pageID)
	}
	return page, nil
}

// Document returns the loaded geometry document for direct inspection.
func (p *Pipeline) Document() (*geometry.Document, error) {
	if err := p.ensureLoaded(); err != nil {
		return nil, err
	}
	return p.doc, nil
}

// ListObjects returns the ids of every content object the source knows
// about, sorted.
func (p *Pipeline) ListObjects() ([]string, error) {
	if err := p.ensureLoaded(); err != nil {
		return nil, err
	}
	return p.store.ListObjects()
}

// Stats returns the store's cache and timing statistics accumulated so
// far. Useful for debug output.
func (p *Pipeline) Stats() (store.Stats, error) {
	if err := p.ensureLoaded(); err != nil {
		return store.Stats{}, err
	}
	return p.store.Stats(), nil
}

// ClearCache drops the store's memoized objects so subsequent loads hit
// the source again. Counters are preserved.
func (p *Pipeline) ClearCache() error {
	if err := p.ensureLoaded(); err != nil {
		return err
	}
	p.store.ClearCache()
	return nil
}
