// Package store resolves content object ids to typed content objects.
//
// A [Source] is the backing mechanism that maps an object id to its raw
// attribute mapping. Three implementations are provided: [MemSource] for
// in-memory fixtures, [DirSource] for one YAML/JSON file per object, and
// [SQLiteSource] for objects kept in a SQLite database. The pipeline is
// agnostic to which one backs a site.
//
// A [Store] wraps a Source with per-instance memoization: every id is
// resolved at most once for the lifetime of the store, and hit/miss
// counters plus load timings are kept for diagnostics. Stores are not
// safe for concurrent use; construct one store per render request.
//
// Every content object must declare its type. A resolved value that is
// not a mapping, or that lacks a non-empty "type" field, is rejected with
// a [*MalformedError] unconditionally, before any grammar validation runs.
package store
