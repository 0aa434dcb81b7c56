// Package validate checks a page's object placements and content objects
// against the geometry document's rules before anything is rendered.
//
// Validation is deliberately exhaustive: within one page every violation
// is collected before the page is failed, so an author sees the full
// picture in one pass instead of fixing errors one at a time. Only
// structural problems that make further checking meaningless — an unknown
// page id, a missing assignment list, an unparseable tag notation — abort
// immediately.
//
// A [Validator] is stateful per call: ValidatePage resets its error and
// warning lists on entry, then accumulates for that page only. Warnings
// (currently just the URL shape heuristic) never fail validation and stay
// queryable after the run, whatever its outcome.
package validate
