// Package notation parses the compact zone-assignment notation used by
// geometry documents.
//
// A notation string binds one zone to an ordered list of content object
// ids, for example:
//
//	Z1=O1,O2,O3
//
// The left-hand side must match the parser's zone-id pattern (by default
// "Z" followed by digits); the right-hand side is a comma-separated object
// id list. Parsing is pure and order-preserving.
package notation

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultZonePattern matches the reference zone-id grammar: "Z" followed
// by one or more digits.
const DefaultZonePattern = `Z\d+`

// Assignment is the result of parsing one notation string: a zone id and
// the ordered object ids assigned to it.
type Assignment struct {
	Zone    string
	Objects []string
}

// MalformedError reports a notation string that does not match the
// expected "<zone>=<id>,<id>,..." shape.
type MalformedError struct {
	Notation string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed tag notation %q", e.Notation)
}

// Parser parses tag-notation strings. The zero value is not usable;
// construct with NewParser.
type Parser struct {
	re *regexp.Regexp
}

// NewParser returns a parser using DefaultZonePattern for zone ids.
func NewParser() *Parser {
	p, _ := NewParserWithPattern(DefaultZonePattern)
	return p
}

// NewParserWithPattern returns a parser whose zone ids must match the
// given pattern. The pattern is anchored internally; callers supply only
// the id shape (e.g. `Z\d+` or `[a-z]+`).
func NewParserWithPattern(zonePattern string) (*Parser, error) {
	re, err := regexp.Compile(`^(` + zonePattern + `)=(.+)$`)
	if err != nil {
		return nil, fmt.Errorf("compiling zone pattern %q: %w", zonePattern, err)
	}
	return &Parser{re: re}, nil
}

// Parse parses a single notation string into an Assignment.
//
// Object ids are trimmed of surrounding whitespace but otherwise kept
// exactly as written: empty segments (e.g. from a trailing comma) are
// preserved, not filtered. They surface later as validation errors, since
// an empty id is never a member of a zone's allow-list.
func (p *Parser) Parse(s string) (Assignment, error) {
	m := p.re.FindStringSubmatch(s)
	if m == nil {
		return Assignment{}, &MalformedError{Notation: s}
	}

	parts := strings.Split(m[2], ",")
	objects := make([]string, len(parts))
	for i, part := range parts {
		objects[i] = strings.TrimSpace(part)
	}

	return Assignment{Zone: m[1], Objects: objects}, nil
}
