package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/zonal/core"
	"github.com/tsawler/zonal/geometry"
	"github.com/tsawler/zonal/notation"
	"github.com/tsawler/zonal/store"
)

// FatalError reports a structural problem that halts validation of a page
// immediately: an unknown page id, a missing assignment list, or an
// unparseable tag notation. Nothing after it is checked.
type FatalError struct {
	PageID string
	Reason string
	Err    error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("page %q: %s", e.PageID, e.Reason)
}

func (e *FatalError) Unwrap() error { return e.Err }

// PageError aggregates every rule violation found on one page. It is
// only returned once the whole page has been checked.
type PageError struct {
	PageID   string
	Problems []string
}

func (e *PageError) Error() string {
	return fmt.Sprintf("validation failed for page %q:\n%s",
		e.PageID, strings.Join(e.Problems, "\n"))
}

// Validator checks pages against a geometry document and a content
// object store. It is stateful per ValidatePage call and not safe for
// concurrent use; construct one validator per render request.
type Validator struct {
	doc    *geometry.Document
	store  *store.Store
	parser *notation.Parser

	errors   []string
	warnings []string
}

// New creates a validator over a geometry document and content store.
func New(doc *geometry.Document, st *store.Store, parser *notation.Parser) *Validator {
	if parser == nil {
		parser = notation.NewParser()
	}
	return &Validator{doc: doc, store: st, parser: parser}
}

// ValidatePage validates a complete page. It returns nil when the page is
// valid, a *FatalError for structural problems, and a *PageError carrying
// every collected violation otherwise. Error and warning state is reset at
// the start of each call.
func (v *Validator) ValidatePage(pageID string) error {
	v.errors = nil
	v.warnings = nil

	page := v.doc.GetPage(pageID)
	if page == nil {
		return &FatalError{PageID: pageID, Reason: "not defined in the geometry"}
	}

	assignments := v.doc.GetPageAssignment(pageID)
	if assignments == nil {
		return &FatalError{PageID: pageID, Reason: "has no object assignments"}
	}
	return v.validate(pageID, page, assignments)
}

// ValidateAssignments validates an explicit list of tag-notation strings
// against a page, bypassing the geometry's own assignment table. Useful
// for checking a proposed layout before committing it to the document.
func (v *Validator) ValidateAssignments(pageID string, assignments []string) error {
	v.errors = nil
	v.warnings = nil

	page := v.doc.GetPage(pageID)
	if page == nil {
		return &FatalError{PageID: pageID, Reason: "not defined in the geometry"}
	}
	return v.validate(pageID, page, assignments)
}

func (v *Validator) validate(pageID string, page *geometry.Page, assignments []string) error {
	for _, raw := range assignments {
		parsed, err := v.parser.Parse(raw)
		if err != nil {
			return &FatalError{PageID: pageID, Reason: err.Error(), Err: err}
		}
		v.validateZone(pageID, page, parsed)
	}

	if len(v.errors) > 0 {
		return &PageError{PageID: pageID, Problems: append([]string(nil), v.errors...)}
	}
	return nil
}

// Errors returns the violations collected by the last ValidatePage call.
func (v *Validator) Errors() []string {
	return append([]string(nil), v.errors...)
}

// Warnings returns the non-fatal findings of the last ValidatePage call.
// Warnings survive both successful and failed runs.
func (v *Validator) Warnings() []string {
	return append([]string(nil), v.warnings...)
}

// HasErrors reports whether the last run collected any violation.
func (v *Validator) HasErrors() bool { return len(v.errors) > 0 }

// HasWarnings reports whether the last run collected any warning.
func (v *Validator) HasWarnings() bool { return len(v.warnings) > 0 }

// Report formats the collected errors and warnings as a numbered,
// human-readable validation report.
func (v *Validator) Report() string {
	var b strings.Builder
	b.WriteString("=== Validation Report ===\n\n")

	if len(v.errors) == 0 && len(v.warnings) == 0 {
		b.WriteString("Status: VALID\n")
		b.WriteString("No errors or warnings found.\n")
		return b.String()
	}

	if len(v.errors) > 0 {
		fmt.Fprintf(&b, "ERRORS (%d):\n", len(v.errors))
		for i, msg := range v.errors {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, msg)
		}
		b.WriteString("\n")
	}
	if len(v.warnings) > 0 {
		fmt.Fprintf(&b, "WARNINGS (%d):\n", len(v.warnings))
		for i, msg := range v.warnings {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, msg)
		}
	}
	return b.String()
}

func (v *Validator) errorf(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

// validateZone checks one parsed assignment: the zone must exist on the
// page, and every assigned object must both be allowed in the zone and
// conform to its own type grammar.
func (v *Validator) validateZone(pageID string, page *geometry.Page, parsed notation.Assignment) {
	zone, ok := page.Zones[parsed.Zone]
	if !ok {
		// Object checks are suppressed: there is no allow-list to check
		// against when the zone itself does not exist.
		v.errorf("zone %q is not defined for page %q", parsed.Zone, pageID)
		return
	}

	for _, objectID := range parsed.Objects {
		if !zone.Allows(objectID) {
			v.errorf("object %q is not allowed in zone %q (allowed: %s)",
				objectID, parsed.Zone, strings.Join(zone.AllowedObjects, ", "))
		}
		// The object's own grammar is checked regardless of zone
		// membership; both findings should surface together.
		v.validateObject(objectID)
	}
}

// validateObject checks one content object against its declared type's
// grammar. Resolution failures degrade the page to invalid, never to a
// crash.
func (v *Validator) validateObject(objectID string) {
	obj, err := v.store.Load(objectID)
	if err != nil {
		v.errors = append(v.errors, err.Error())
		return
	}

	objectType := v.doc.GetObjectType(obj.Type)
	if objectType == nil {
		v.errorf("object type %q is not defined (object %q)", obj.Type, objectID)
		return
	}

	switch spec := objectType.Spec.(type) {
	case *geometry.RuleFormat:
		v.validateRules(obj, spec)
	case *geometry.LegacyFormat:
		v.validateLegacy(obj, spec)
	}

	if len(objectType.Constraints) > 0 {
		v.validateConstraints(obj, objectType.Constraints)
	}
}

// isAbsent reports whether an attribute value counts as missing: an unset
// key, an explicit null and the empty string are all absence. Type checks
// never apply to absent values.
func isAbsent(value core.Value) bool {
	return value == nil || value == (core.Null{}) || value == core.String("")
}

// validateRules checks an object against the rule-per-attribute grammar.
func (v *Validator) validateRules(obj *store.Object, spec *geometry.RuleFormat) {
	for _, name := range spec.Names {
		rule := spec.Rules[name]
		value := obj.Attributes.Get(name)
		absent := isAbsent(value)

		if rule.Required && absent {
			v.errorf("required attribute %q missing in object %q (type %q)",
				name, obj.ID, obj.Type)
			continue
		}
		if absent {
			continue
		}

		v.validateDataType(obj.ID, name, value, rule)
	}
}

// validateDataType checks a present attribute value against its declared
// data type and the rule's refinements.
func (v *Validator) validateDataType(objectID, name string, value core.Value, rule *geometry.AttributeRule) {
	switch rule.DataType {
	case geometry.TypeString:
		s, ok := value.(core.String)
		if !ok {
			v.errorf("attribute %q in %q must be a string", name, objectID)
			return
		}
		length := utf8.RuneCountInString(string(s))
		if rule.MinLength > 0 && length < rule.MinLength {
			v.errorf("attribute %q in %q must have at least %d characters",
				name, objectID, rule.MinLength)
		}
		if rule.MaxLength > 0 && length > rule.MaxLength {
			v.errorf("attribute %q in %q may have at most %d characters",
				name, objectID, rule.MaxLength)
		}

	case geometry.TypeURL:
		s, ok := value.(core.String)
		if !ok {
			v.errorf("attribute %q in %q must be a URL or path", name, objectID)
			return
		}
		// Shape check is a heuristic only: relative paths, absolute URLs
		// and anchors all pass, anything else is flagged but not failed.
		str := string(s)
		if !strings.HasPrefix(str, "/") && !strings.HasPrefix(str, "http") && !strings.HasPrefix(str, "#") {
			v.warnf("attribute %q in %q may have an invalid path: %s", name, objectID, str)
		}

	case geometry.TypeEnum:
		// Exact membership, no coercion: a non-string value can never be
		// a member of the allowed string set.
		s, ok := value.(core.String)
		if !ok || !contains(rule.AllowedValues, string(s)) {
			v.errorf("attribute %q in %q has invalid value %q (allowed: %s)",
				name, objectID, value.String(), strings.Join(rule.AllowedValues, ", "))
		}

	case geometry.TypeArray:
		arr, ok := value.(core.Array)
		if !ok {
			v.errorf("attribute %q in %q must be an array", name, objectID)
			return
		}
		if rule.MinItems > 0 && arr.Len() < rule.MinItems {
			v.errorf("attribute %q in %q must have at least %d items",
				name, objectID, rule.MinItems)
		}
		if rule.ItemType == "string" {
			for i, item := range arr {
				if _, ok := item.(core.String); !ok {
					v.errorf("item %d of %q in %q must be a string", i, name, objectID)
				}
			}
		}

	case geometry.TypeBoolean:
		if _, ok := value.(core.Bool); !ok {
			v.errorf("attribute %q in %q must be a boolean", name, objectID)
		}
	}
}

// validateLegacy checks an object against the legacy required/optional
// grammar shape.
func (v *Validator) validateLegacy(obj *store.Object, spec *geometry.LegacyFormat) {
	for _, name := range spec.Required {
		if isAbsent(obj.Attributes.Get(name)) {
			v.errorf("required attribute %q missing in object %q (type %q)",
				name, obj.ID, obj.Type)
		}
	}

	if len(spec.ValidRoles) > 0 {
		if role := obj.Attributes.Get("role"); !isAbsent(role) {
			s, ok := role.(core.String)
			if !ok || !contains(spec.ValidRoles, string(s)) {
				v.errorf("invalid role %q in %q (allowed: %s)",
					role.String(), obj.ID, strings.Join(spec.ValidRoles, ", "))
			}
		}
	}
}

func contains(set []string, s string) bool {
	for _, member := range set {
		if member == s {
			return true
		}
	}
	return false
}
