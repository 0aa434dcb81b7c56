// Package core provides the loosely-typed value model used for content
// object attributes.
//
// Content objects arrive as untyped attribute bags (decoded YAML or JSON,
// rows from a database, in-memory fixtures). Before validation they are
// converted into values satisfying the [Value] interface, one variant per
// wire-level kind:
//
//   - [Null] - absent or explicit null
//   - [Bool] - boolean values (true/false)
//   - [Int] - integers
//   - [Real] - floating point numbers
//   - [String] - text
//   - [Array] - ordered sequences
//   - [Dict] - string-keyed mappings
//
// The [FromAny] function performs the conversion from the dynamic values
// produced by decoders, and [Dict] offers typed accessors so that callers
// never reach back into interface{} values.
//
// This representation is the pre-validation wire format only: the grammar
// validator consumes it, and the renderer consumes it after validation has
// succeeded. Nothing in this package enforces a schema.
package core
