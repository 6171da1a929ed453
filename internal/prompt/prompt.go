// Package prompt reads lines of user input, with line editing when attached
// to a terminal.
package prompt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// Reader yields one line per call. It returns io.EOF once input is exhausted
// and "" for an empty line.
type Reader interface {
	ReadLine() (string, error)
	SetPrompt(prompt string)
}

// New picks a TerminalReader when in is a terminal and a LineReader otherwise.
// mode is the configured editing mode; only emacs-style bindings exist.
func New(in *os.File, out io.Writer, prompt, mode string, logger *zap.Logger) Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mode == "vi" {
		logger.Warn("vi editing mode is not supported, using emacs bindings")
	}
	if term.IsTerminal(int(in.Fd())) {
		return NewTerminalReader(in, out, prompt)
	}
	return NewLineReader(in, out, prompt)
}

// LineReader reads newline-terminated lines from a plain stream, writing the
// prompt before each read.
type LineReader struct {
	r      *bufio.Reader
	out    io.Writer
	prompt string
}

func NewLineReader(in io.Reader, out io.Writer, prompt string) *LineReader {
	return &LineReader{r: bufio.NewReader(in), out: out, prompt: prompt}
}

func (l *LineReader) SetPrompt(prompt string) { l.prompt = prompt }

func (l *LineReader) ReadLine() (string, error) {
	if l.out != nil && l.prompt != "" {
		fmt.Fprint(l.out, l.prompt)
	}
	line, err := l.r.ReadString('\n')
	if err != nil {
		// A final line without a newline still counts.
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// TerminalReader edits lines with golang.org/x/term. The terminal is in raw
// mode only while a line is being read, so commands run in between own it.
// Ctrl-C discards the current line; Ctrl-D on an empty line ends input.
type TerminalReader struct {
	fd     int
	in     *interruptWatcher
	out    io.Writer
	prompt string
	t      *term.Terminal
}

func NewTerminalReader(in *os.File, out io.Writer, prompt string) *TerminalReader {
	return newTerminalReader(int(in.Fd()), in, out, prompt)
}

func newTerminalReader(fd int, in io.Reader, out io.Writer, prompt string) *TerminalReader {
	r := &TerminalReader{fd: fd, in: &interruptWatcher{r: in}, out: out, prompt: prompt}
	r.t = term.NewTerminal(r.rw(), prompt)
	return r
}

func (r *TerminalReader) rw() io.ReadWriter {
	return struct {
		io.Reader
		io.Writer
	}{r.in, r.out}
}

func (r *TerminalReader) SetPrompt(prompt string) {
	r.prompt = prompt
	r.t.SetPrompt(prompt)
}

func (r *TerminalReader) ReadLine() (string, error) {
	state, err := term.MakeRaw(r.fd)
	if err != nil {
		return "", fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer term.Restore(r.fd, state)
	return r.readLine()
}

func (r *TerminalReader) readLine() (string, error) {
	for {
		if w, h, err := term.GetSize(r.fd); err == nil {
			_ = r.t.SetSize(w, h)
		}
		r.in.interrupted = false
		line, err := r.t.ReadLine()
		switch {
		case errors.Is(err, term.ErrPasteIndicator):
			return line, nil
		case errors.Is(err, io.EOF) && r.in.interrupted:
			// x/term reports Ctrl-C as end of input and keeps the
			// half-typed line, so start over on a fresh terminal.
			fmt.Fprint(r.out, "^C\r\n")
			r.reset()
			continue
		}
		return line, err
	}
}

// reset replaces the terminal state, keeping its history.
func (r *TerminalReader) reset() {
	history := r.t.History
	r.t = term.NewTerminal(r.rw(), r.prompt)
	r.t.History = history
}

// interruptWatcher notes whether a Ctrl-C byte passed through.
type interruptWatcher struct {
	r           io.Reader
	interrupted bool
}

const ctrlC = 3

func (w *interruptWatcher) Read(p []byte) (int, error) {
	n, err := w.r.Read(p)
	if bytes.IndexByte(p[:n], ctrlC) >= 0 {
		w.interrupted = true
	}
	return n, err
}
