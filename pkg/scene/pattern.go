package scene

import (
	"strings"

	"github.com/matzehuels/spatialnav/pkg/errors"
)

// Pattern is a compiled element pattern.
type Pattern struct {
	src  string
	alts []compound
}

type compound struct {
	any     bool
	kind    string
	id      string
	classes []string
	attrs   []attrMatch
}

type attrMatch struct {
	name     string
	value    string
	hasValue bool
}

// CompilePattern parses a pattern such as "button.menu, #search".
func CompilePattern(src string) (*Pattern, error) {
	p := &Pattern{src: src}
	for _, part := range strings.Split(src, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, errors.New(errors.ErrCodeInvalidSelector, "empty compound in pattern %q", src)
		}
		c, err := parseCompound(part)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSelector, err, "pattern %q", src)
		}
		p.alts = append(p.alts, c)
	}
	return p, nil
}

// MustCompilePattern is CompilePattern that panics on error.
func MustCompilePattern(src string) *Pattern {
	p, err := CompilePattern(src)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pattern) String() string { return p.src }

// Match reports whether e matches any compound of the pattern.
func (p *Pattern) Match(e *Element) bool {
	if e == nil {
		return false
	}
	for _, c := range p.alts {
		if c.match(e) {
			return true
		}
	}
	return false
}

func (c compound) match(e *Element) bool {
	if c.any {
		return true
	}
	if c.kind != "" && !strings.EqualFold(c.kind, e.Kind) {
		return false
	}
	if c.id != "" && c.id != e.id {
		return false
	}
	for _, cl := range c.classes {
		if !e.HasClass(cl) {
			return false
		}
	}
	for _, a := range c.attrs {
		v, ok := e.Attr(a.name)
		if !ok || a.hasValue && v != a.value {
			return false
		}
	}
	return true
}

func parseCompound(s string) (compound, error) {
	if s == "*" {
		return compound{any: true}, nil
	}

	var c compound
	i := 0
	if isIdent(s[0]) {
		c.kind, i = scanIdent(s, 0)
	}

	for i < len(s) {
		switch s[i] {
		case '#':
			var id string
			id, i = scanIdent(s, i+1)
			if id == "" {
				return c, errors.New(errors.ErrCodeInvalidSelector, "missing id after # at offset %d", i)
			}
			c.id = id
		case '.':
			var cl string
			cl, i = scanIdent(s, i+1)
			if cl == "" {
				return c, errors.New(errors.ErrCodeInvalidSelector, "missing class after . at offset %d", i)
			}
			c.classes = append(c.classes, cl)
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return c, errors.New(errors.ErrCodeInvalidSelector, "unterminated attribute at offset %d", i)
			}
			a, err := parseAttr(s[i+1 : i+end])
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, a)
			i += end + 1
		default:
			return c, errors.New(errors.ErrCodeInvalidSelector, "unexpected %q at offset %d", s[i], i)
		}
	}
	return c, nil
}

func parseAttr(body string) (attrMatch, error) {
	name, value, hasValue := strings.Cut(body, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return attrMatch{}, errors.New(errors.ErrCodeInvalidSelector, "empty attribute name")
	}
	value = strings.Trim(strings.TrimSpace(value), `"'`)
	return attrMatch{name: name, value: value, hasValue: hasValue}, nil
}

func scanIdent(s string, i int) (string, int) {
	start := i
	for i < len(s) && isIdent(s[i]) {
		i++
	}
	return s[start:i], i
}

func isIdent(b byte) bool {
	return b == '-' || b == '_' ||
		b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
