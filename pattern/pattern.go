// Package pattern implements C7: bourne-glob-to-regex conversion, the
// structured ("/"-component) path matcher, and working-directory-relative
// expansion with the underflow retry from §4.7.
package pattern

import (
	"regexp"
	"strings"

	burnerrors "github.com/burnshell/burn/errors"
	"github.com/hashicorp/go-multierror"
)

// Pattern is a compiled glob: either literal (short-circuits to an exact
// compare) or a sequence of per-path-component regexes (§4.7 "structured
// mode").
type Pattern struct {
	raw        string
	literal    bool
	absolute   bool
	components []component
}

type component struct {
	raw     string
	dotdot  bool // ".." pops the previous component
	any     bool // "*" as a whole component: matches anything, including ""
	literal bool
	text    string // when literal
	re      *regexp.Regexp
}

// Compile converts a Bourne-shell glob into a Pattern, splitting on "/"
// into per-component regexes (§4.7). Compile errors across components are
// aggregated with go-multierror so callers see every bad component instead
// of only the first.
func Compile(raw string) (*Pattern, error) {
	p := &Pattern{raw: raw, absolute: strings.HasPrefix(raw, "/")}
	trimmed := strings.TrimPrefix(raw, "/")
	parts := strings.Split(trimmed, "/")

	if !strings.ContainsAny(raw, "*?[") {
		p.literal = true
		return p, nil
	}

	var errs *multierror.Error
	for _, part := range parts {
		c := component{raw: part}
		switch {
		case part == "..":
			c.dotdot = true
		case part == "*":
			c.any = true
		case !strings.ContainsAny(part, "*?["):
			c.literal = true
			c.text = part
		default:
			reSrc, err := bourneToRegex(part)
			if err != nil {
				errs = multierror.Append(errs, err)
				continue
			}
			re, err := regexp.Compile("^" + reSrc + "$")
			if err != nil {
				errs = multierror.Append(errs, err)
				continue
			}
			c.re = re
		}
		p.components = append(p.components, c)
	}
	if errs != nil {
		return nil, errs.ErrorOrNil()
	}
	return p, nil
}

// bourneToRegex converts one glob component to a regex source string:
// '*' -> ".*", '?' -> ".", "[...]" preserved, everything else escaped
// (§4.7).
func bourneToRegex(glob string) (string, error) {
	var b strings.Builder
	inClass := false
	for i := 0; i < len(glob); i++ {
		c := glob[i]
		switch {
		case inClass:
			b.WriteByte(c)
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
			b.WriteByte(c)
		case c == '*':
			b.WriteString(".*")
		case c == '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	if inClass {
		return "", burnerrors.ErrInvalidArgument.WithMessage("unterminated character class in pattern")
	}
	return b.String(), nil
}

// matchComponent reports whether name matches component i.
func (p *Pattern) matchComponent(i int, name string) bool {
	c := p.components[i]
	switch {
	case c.any:
		return true
	case c.literal:
		return c.text == name
	case c.re != nil:
		return c.re.MatchString(name)
	default:
		return false
	}
}

// Match reports whether the "/"-separated path matches the pattern,
// splitting it itself and, for a non-literal pattern, ignoring a leading
// "/"; it applies ".." pop semantics as it walks (§4.7).
func (p *Pattern) Match(path string) bool {
	if p.literal {
		return p.raw == path || strings.TrimPrefix(p.raw, "/") == path
	}
	pathParts := strings.Split(strings.TrimPrefix(path, "/"), "/")

	pi, ci := 0, 0
	for ci < len(p.components) {
		c := p.components[ci]
		if c.dotdot {
			if pi > 0 {
				pi--
			}
			ci++
			continue
		}
		if pi >= len(pathParts) {
			return false
		}
		if !p.matchComponent(ci, pathParts[pi]) {
			return false
		}
		pi++
		ci++
	}
	return pi == len(pathParts)
}

// IsLiteral reports whether the pattern had no wildcard metacharacters, in
// which case an empty expansion passes the literal through rather than
// erroring (§4.7).
func (p *Pattern) IsLiteral() bool { return p.literal }

// IsAbsolute reports whether the pattern was written with a leading "/".
func (p *Pattern) IsAbsolute() bool { return p.absolute }
