package buildinfo

import (
	"testing"

	"github.com/flarebyte/reposh/cli"
)

func TestSummaryIncludesCommitAndDate(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	defer func() { Version, Commit, Date = oldVersion, oldCommit, oldDate }()

	Version = "0.4.0"
	Commit = "0123456789abcdef"
	Date = "2026-10-01"
	if got := Summary(); got != "0.4.0 (commit=0123456, date=2026-10-01)" {
		t.Fatalf("unexpected summary: %q", got)
	}
	if got := Short(); got != "0.4.0" {
		t.Fatalf("unexpected short version: %q", got)
	}
}

func TestShortFallsBackToDev(t *testing.T) {
	oldVersion := Version
	defer func() { Version = oldVersion }()

	Version = ""
	if got := Short(); got != "dev" {
		t.Fatalf("unexpected short version: %q", got)
	}
}

func TestSummaryFallsBackToCLIVars(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	oldCLIVersion, oldCLIDate := cli.Version, cli.Date
	defer func() {
		Version, Commit, Date = oldVersion, oldCommit, oldDate
		cli.Version, cli.Date = oldCLIVersion, oldCLIDate
	}()

	Version, Commit, Date = "", "", ""
	cli.Version = "1.2.3"
	cli.Date = "2026-02-09"
	if got := Summary(); got != "1.2.3 (date=2026-02-09)" {
		t.Fatalf("unexpected summary: %q", got)
	}
}
