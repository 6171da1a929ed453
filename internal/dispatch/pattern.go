package dispatch

import (
	"regexp"
	"strconv"
	"strings"
)

// Input is one read from the input reader: a line, or the end of input.
type Input struct {
	Line string
	EOF  bool
}

// Line wraps a line of user input. An empty string is a line, not end of input.
func Line(s string) Input { return Input{Line: s} }

// EndOfInput is the input seen when the reader is exhausted.
func EndOfInput() Input { return Input{EOF: true} }

// Match holds the captures of a successful pattern test. Index 0 is the whole
// match; literal patterns yield only that.
type Match []string

// Group returns capture n, or "" when the group does not exist.
func (m Match) Group(n int) string {
	if n < 0 || n >= len(m) {
		return ""
	}
	return m[n]
}

// Pattern decides whether a rule applies to an input.
type Pattern interface {
	Match(in Input) (Match, bool)
	String() string
}

type regexpPattern struct{ re *regexp.Regexp }

// Regexp matches when re matches anywhere in the line. It never matches end of
// input.
func Regexp(re *regexp.Regexp) Pattern { return regexpPattern{re: re} }

// MustRegexp compiles expr and panics on error; for built-in rules.
func MustRegexp(expr string) Pattern { return Regexp(regexp.MustCompile(expr)) }

func (p regexpPattern) Match(in Input) (Match, bool) {
	if in.EOF {
		return nil, false
	}
	m := p.re.FindStringSubmatch(in.Line)
	if m == nil {
		return nil, false
	}
	return Match(m), true
}

func (p regexpPattern) String() string { return "/" + p.re.String() + "/" }

type literalPattern string

// Literal matches a line exactly equal to s with surrounding whitespace trimmed
// from s.
func Literal(s string) Pattern { return literalPattern(strings.TrimSpace(s)) }

func (p literalPattern) Match(in Input) (Match, bool) {
	if in.EOF || in.Line != string(p) {
		return nil, false
	}
	return Match{in.Line}, true
}

func (p literalPattern) String() string { return strconv.Quote(string(p)) }

type eofPattern struct{}

// EOF matches only the end of input, never an empty line.
func EOF() Pattern { return eofPattern{} }

func (eofPattern) Match(in Input) (Match, bool) {
	if !in.EOF {
		return nil, false
	}
	return Match{""}, true
}

func (eofPattern) String() string { return "<end of input>" }
