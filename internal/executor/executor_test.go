package executor

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fakeProcess runs nothing; it reports Ran for the commands listed in ok.
type fakeProcess struct {
	ok       map[string]int
	attempts []string
}

func (f *fakeProcess) Run(_ context.Context, command string) Outcome {
	f.attempts = append(f.attempts, command)
	if status, ok := f.ok[command]; ok {
		return Outcome{Ran: true, ExitStatus: status}
	}
	return Outcome{ExitStatus: exitNotFound}
}

func TestAddExtension_AttachesToExecutableOnly(t *testing.T) {
	cases := []struct {
		command, ext, want string
	}{
		{"rake stats", ".bat", "rake.bat stats"},
		{"svn commit -m 'a b'", ".exe", "svn.exe commit -m 'a b'"},
		{"hg", ".cmd", "hg.cmd"},
		{"git  log   --oneline", ".exe", "git.exe  log   --oneline"},
		{"rake stats", "", "rake stats"},
	}
	for _, c := range cases {
		if got := AddExtension(c.command, c.ext); got != c.want {
			t.Fatalf("AddExtension(%q, %q) = %q, want %q", c.command, c.ext, got, c.want)
		}
	}
}

func TestExecute_StopsAtFirstAttemptThatRan(t *testing.T) {
	proc := &fakeProcess{ok: map[string]int{"svn status": 0}}
	x := New(proc, []string{".bat", ".exe"}, &bytes.Buffer{}, nil)
	if err := x.Execute(context.Background(), "svn status", false); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if diff := cmp.Diff([]string{"svn status"}, proc.attempts); diff != "" {
		t.Fatalf("attempts mismatch (-want +got):\n%s", diff)
	}
}

func TestExecute_NonZeroExitStillCountsAsRan(t *testing.T) {
	proc := &fakeProcess{ok: map[string]int{"svn bogus": 1}}
	x := New(proc, []string{".bat"}, &bytes.Buffer{}, nil)
	if err := x.Execute(context.Background(), "svn bogus", false); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(proc.attempts) != 1 {
		t.Fatalf("expected a single attempt, got %v", proc.attempts)
	}
}

func TestExecute_FallsThroughToExtension(t *testing.T) {
	proc := &fakeProcess{ok: map[string]int{"rake.exe stats": 0}}
	x := New(proc, []string{".bat", ".exe", ".cmd"}, &bytes.Buffer{}, nil)
	if err := x.Execute(context.Background(), "rake stats", false); err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := []string{"rake stats", "rake.bat stats", "rake.exe stats"}
	if diff := cmp.Diff(want, proc.attempts); diff != "" {
		t.Fatalf("attempts mismatch (-want +got):\n%s", diff)
	}
}

func TestExecute_ReportsFailureAfterAllSuffixes(t *testing.T) {
	proc := &fakeProcess{}
	x := New(proc, []string{".bat"}, &bytes.Buffer{}, nil)
	err := x.Execute(context.Background(), "rake stats", false)
	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecError, got %v", err)
	}
	if execErr.Command != "rake stats" || execErr.Status != exitNotFound {
		t.Fatalf("unexpected error: %+v", execErr)
	}
	if err.Error() != "failed to exec 'rake stats': status 127" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if diff := cmp.Diff([]string{"rake stats", "rake.bat stats"}, proc.attempts); diff != "" {
		t.Fatalf("attempts mismatch (-want +got):\n%s", diff)
	}
}

func TestExecute_TraceEchoesEveryAttempt(t *testing.T) {
	proc := &fakeProcess{ok: map[string]int{"hg.bat log": 0}}
	var out bytes.Buffer
	x := New(proc, []string{".bat"}, &out, nil)
	if err := x.Execute(context.Background(), "hg log", true); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.String() != "hg log\nhg.bat log\n" {
		t.Fatalf("unexpected trace output: %q", out.String())
	}

	out.Reset()
	if err := x.Execute(context.Background(), "hg log", false); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output without trace, got %q", out.String())
	}
}

func TestNew_CopiesExtensions(t *testing.T) {
	exts := []string{".bat"}
	x := New(&fakeProcess{}, exts, &bytes.Buffer{}, nil)
	exts[0] = ".exe"
	if x.Extensions[0] != ".bat" {
		t.Fatalf("extensions aliased caller slice: %v", x.Extensions)
	}
}
