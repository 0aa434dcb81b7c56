// Package geometry provides the structural model for zonal sites: which
// pages exist, which zones each page has, which content objects each zone
// permits, and the formal attribute grammar for every object type.
//
// # Document Structure
//
// The [Document] type is the in-memory view of one geometry document. It
// is built once by [Load] or [FromRaw] and treated as immutable for the
// duration of a render request. A geometry document has three mandatory
// top-level sections:
//
//   - pages: page definitions with their zones
//   - object_types: the attribute grammar per content object type
//   - page_assignments: ordered tag-notation strings per page
//
// A missing section, or a section of the wrong container kind, is a fatal
// load error surfaced as a [*StructureError]; nothing downstream runs.
//
// # Accessors
//
// Accessors on Document return absence (nil) for unknown keys rather than
// errors. Deciding that absence is a problem is the validator's job, not
// the model's.
//
// # Grammar
//
// Object type grammars come in two mutually exclusive shapes: the
// rule-per-attribute format ([RuleFormat], preferred) and the legacy
// required/optional list format ([LegacyFormat]). The shape is chosen once
// while the document loads and recorded as the type's [AttributeSpec]; it
// is never re-sniffed during validation.
package geometry
