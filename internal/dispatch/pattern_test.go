package dispatch

import "testing"

func TestRegexpPattern_MatchesAnywhereWithCaptures(t *testing.T) {
	p := MustRegexp(`:(.*)`)
	m, ok := p.Match(Line("x :rake aaa"))
	if !ok {
		t.Fatalf("expected match")
	}
	if m.Group(1) != "rake aaa" {
		t.Fatalf("unexpected capture: %q", m.Group(1))
	}
	if _, ok := p.Match(EndOfInput()); ok {
		t.Fatalf("regexp must not match end of input")
	}
}

func TestRegexpPattern_CatchAllMatchesEmptyLine(t *testing.T) {
	m, ok := MustRegexp(`.*`).Match(Line(""))
	if !ok || m.Group(0) != "" {
		t.Fatalf("expected empty match, got %v %v", m, ok)
	}
}

func TestLiteralPattern_ExactAfterTrimmingPattern(t *testing.T) {
	p := Literal("  exit ")
	if _, ok := p.Match(Line("exit")); !ok {
		t.Fatalf("expected match")
	}
	if _, ok := p.Match(Line("exit now")); ok {
		t.Fatalf("literal must not match a longer line")
	}
	if _, ok := p.Match(Line(" exit")); ok {
		t.Fatalf("the line itself is not trimmed")
	}
	if _, ok := p.Match(EndOfInput()); ok {
		t.Fatalf("literal must not match end of input")
	}
}

func TestEOFPattern_OnlyEndOfInput(t *testing.T) {
	if _, ok := EOF().Match(EndOfInput()); !ok {
		t.Fatalf("expected match on end of input")
	}
	if _, ok := EOF().Match(Line("")); ok {
		t.Fatalf("an empty line is not end of input")
	}
}

func TestMatch_GroupOutOfRange(t *testing.T) {
	m := Match{"all", "one"}
	if m.Group(2) != "" || m.Group(-1) != "" {
		t.Fatalf("expected empty string for missing groups")
	}
}

func TestPatternString(t *testing.T) {
	cases := map[string]Pattern{
		`/^:(.*)/`:       MustRegexp(`^:(.*)`),
		`"%trace"`:       Literal("%trace"),
		"<end of input>": EOF(),
	}
	for want, p := range cases {
		if got := p.String(); got != want {
			t.Fatalf("got %s want %s", got, want)
		}
	}
}
