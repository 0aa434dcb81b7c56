package geometry

import (
	"fmt"
	"sort"
)

// Document is the validated in-memory view of one geometry document.
// It is immutable once built.
type Document struct {
	pages       map[string]*Page
	objectTypes map[string]*ObjectType
	assignments map[string][]string
}

// Page describes one page of the site: its human-readable identity and
// the zones it is divided into.
type Page struct {
	Name        string
	Description string
	Zones       map[string]*Zone
}

// Zone is a named region within a page. AllowedObjects is the allow-list
// consulted during validation; Order is informational only and never
// overrides the order given by a tag notation. Properties is an opaque
// bag consumed by the presentation layer.
type Zone struct {
	Meaning        string
	AllowedObjects []string
	Order          []string
	Properties     map[string]any
}

// Allows reports whether the object id is in the zone's allow-list.
func (z *Zone) Allows(objectID string) bool {
	for _, id := range z.AllowedObjects {
		if id == objectID {
			return true
		}
	}
	return false
}

// StructureError reports a structural defect in a geometry document: a
// mandatory top-level section that is missing or has the wrong container
// kind. Structure errors are fatal; the pipeline halts before any page is
// processed.
type StructureError struct {
	Section string
	Reason  string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("geometry structure: section %q %s", e.Section, e.Reason)
}

// The three mandatory top-level sections of a geometry document.
const (
	sectionPages       = "pages"
	sectionObjectTypes = "object_types"
	sectionAssignments = "page_assignments"
)

// FromRaw builds a Document from a decoded geometry document. The three
// mandatory top-level sections are checked here, exactly once; a violation
// returns a *StructureError and no Document.
func FromRaw(raw map[string]any) (*Document, error) {
	rawPages, err := requireMapSection(raw, sectionPages)
	if err != nil {
		return nil, err
	}
	rawTypes, err := requireMapSection(raw, sectionObjectTypes)
	if err != nil {
		return nil, err
	}
	rawAssignments, err := requireMapSection(raw, sectionAssignments)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		pages:       make(map[string]*Page, len(rawPages)),
		objectTypes: make(map[string]*ObjectType, len(rawTypes)),
		assignments: make(map[string][]string, len(rawAssignments)),
	}

	for id, v := range rawPages {
		page, err := parsePage(id, v)
		if err != nil {
			return nil, err
		}
		doc.pages[id] = page
	}

	for name, v := range rawTypes {
		ot, err := parseObjectType(name, v)
		if err != nil {
			return nil, err
		}
		doc.objectTypes[name] = ot
	}

	for id, v := range rawAssignments {
		notations, ok := asStringSlice(v)
		if !ok {
			return nil, &StructureError{
				Section: sectionAssignments,
				Reason:  fmt.Sprintf("entry %q must be a sequence of notation strings", id),
			}
		}
		doc.assignments[id] = notations
	}

	return doc, nil
}

func requireMapSection(raw map[string]any, section string) (map[string]any, error) {
	v, ok := raw[section]
	if !ok {
		return nil, &StructureError{Section: section, Reason: "is missing"}
	}
	m, ok := asMap(v)
	if !ok {
		return nil, &StructureError{Section: section, Reason: "must be a mapping"}
	}
	return m, nil
}

func parsePage(id string, v any) (*Page, error) {
	m, ok := asMap(v)
	if !ok {
		return nil, &StructureError{
			Section: sectionPages,
			Reason:  fmt.Sprintf("page %q must be a mapping", id),
		}
	}

	page := &Page{
		Name:        stringAt(m, "name"),
		Description: stringAt(m, "description"),
		Zones:       make(map[string]*Zone),
	}

	if zv, ok := m["zones"]; ok {
		zones, ok := asMap(zv)
		if !ok {
			return nil, &StructureError{
				Section: sectionPages,
				Reason:  fmt.Sprintf("zones of page %q must be a mapping", id),
			}
		}
		for zoneID, zoneVal := range zones {
			zone, err := parseZone(id, zoneID, zoneVal)
			if err != nil {
				return nil, err
			}
			page.Zones[zoneID] = zone
		}
	}

	return page, nil
}

func parseZone(pageID, zoneID string, v any) (*Zone, error) {
	m, ok := asMap(v)
	if !ok {
		return nil, &StructureError{
			Section: sectionPages,
			Reason:  fmt.Sprintf("zone %q of page %q must be a mapping", zoneID, pageID),
		}
	}

	zone := &Zone{Meaning: stringAt(m, "meaning")}

	if av, ok := m["allowed_objects"]; ok {
		allowed, ok := asStringSlice(av)
		if !ok {
			return nil, &StructureError{
				Section: sectionPages,
				Reason:  fmt.Sprintf("allowed_objects of zone %q must be a sequence of ids", zoneID),
			}
		}
		zone.AllowedObjects = allowed
	}
	if ov, ok := m["order"]; ok {
		if order, ok := asStringSlice(ov); ok {
			zone.Order = order
		}
	}
	if pv, ok := m["properties"]; ok {
		if props, ok := asMap(pv); ok {
			zone.Properties = props
		}
	}

	return zone, nil
}

// GetPage returns the page definition, or nil if the id is unknown.
func (d *Document) GetPage(id string) *Page {
	return d.pages[id]
}

// GetObjectType returns the type grammar, or nil if the name is unknown.
func (d *Document) GetObjectType(name string) *ObjectType {
	return d.objectTypes[name]
}

// GetPageAssignment returns the ordered tag-notation strings for a page,
// or nil if the page has no assignment entry.
func (d *Document) GetPageAssignment(id string) []string {
	return d.assignments[id]
}

// PageIDs returns all defined page ids in sorted order.
func (d *Document) PageIDs() []string {
	ids := make([]string, 0, len(d.pages))
	for id := range d.pages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ObjectTypeNames returns all defined object type names in sorted order.
func (d *Document) ObjectTypeNames() []string {
	names := make([]string, 0, len(d.objectTypes))
	for name := range d.objectTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ============================================================================
// Decode helpers
// ============================================================================

// asMap normalizes decoded mappings. The yaml decoder produces
// map[string]any for string-keyed mappings; older decoders may produce
// map[any]any.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

func asStringSlice(v any) ([]string, bool) {
	s, ok := asSlice(v)
	if !ok {
		return nil, false
	}
	out := make([]string, len(s))
	for i, elem := range s {
		str, ok := elem.(string)
		if !ok {
			return nil, false
		}
		out[i] = str
	}
	return out, true
}

func stringAt(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func intAt(m map[string]any, key string) (int, bool) {
	switch n := m[key].(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func boolAt(m map[string]any, key string) (bool, bool) {
	b, ok := m[key].(bool)
	return b, ok
}
