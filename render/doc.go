// Package render turns a validated page into HTML markup.
//
// Rendering is a pure projection: the geometry document decides structure,
// the content store supplies data, and a StyleMap translates zone ids and
// object types into presentation classes. The renderer itself holds no
// styling knowledge and makes no validity decisions. Callers are expected
// to validate a page first; RenderPage trusts its inputs and only fails on
// structural problems such as an unknown page id.
package render
