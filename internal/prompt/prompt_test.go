package prompt

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"testing/iotest"
)

func TestLineReader_ReadsLinesAndEOF(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewLineReader(strings.NewReader("status\r\n\nlog -l 3"), out, "> ")

	for _, want := range []string{"status", "", "log -l 3"} {
		got, err := r.ReadLine()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if got != want {
			t.Fatalf("got %q want %q", got, want)
		}
	}
	if _, err := r.ReadLine(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if out.String() != "> > > > " {
		t.Fatalf("unexpected prompt output: %q", out.String())
	}
}

func TestLineReader_SetPrompt(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewLineReader(strings.NewReader("a\nb\n"), out, "svn> ")
	if _, err := r.ReadLine(); err != nil {
		t.Fatalf("read: %v", err)
	}
	r.SetPrompt("hg> ")
	if _, err := r.ReadLine(); err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.String() != "svn> hg> " {
		t.Fatalf("unexpected prompt output: %q", out.String())
	}
}

func TestNew_NonTerminalUsesLineReader(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "input")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	defer f.Close()
	if _, ok := New(f, io.Discard, "> ", "vi", nil).(*LineReader); !ok {
		t.Fatalf("expected a LineReader for a regular file")
	}
}

func TestTerminalReader_CtrlCDiscardsLine(t *testing.T) {
	out := &bytes.Buffer{}
	in := iotest.OneByteReader(strings.NewReader("sta\x03log\r"))
	r := newTerminalReader(-1, in, out, "> ")

	got, err := r.readLine()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != "log" {
		t.Fatalf("got %q want %q", got, "log")
	}
	if !strings.Contains(out.String(), "^C") {
		t.Fatalf("expected interrupt echo, got %q", out.String())
	}
	if _, err := r.readLine(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestTerminalReader_CtrlDEndsInput(t *testing.T) {
	r := newTerminalReader(-1, iotest.OneByteReader(strings.NewReader("\x04status\r")), io.Discard, "> ")
	if _, err := r.readLine(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestTerminalReader_HistorySurvivesCtrlC(t *testing.T) {
	// Ctrl-P recalls the previous line.
	in := iotest.OneByteReader(strings.NewReader("one\rtw\x03\x10\r"))
	r := newTerminalReader(-1, in, io.Discard, "> ")
	for _, want := range []string{"one", "one"} {
		got, err := r.readLine()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if got != want {
			t.Fatalf("got %q want %q", got, want)
		}
	}
}
