package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"krimiwiki/internal/audit"
	"krimiwiki/internal/series"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Findings", statusWarn, "3", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Findings:", "[WARN] 3")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Episodes", statusOK, "12", true)
	if !strings.HasPrefix(got, ansiGreen) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected green line, got %q", got)
	}
}

func TestRenderAuditSummary(t *testing.T) {
	profile, err := series.Lookup("tatort")
	if err != nil {
		t.Fatal(err)
	}
	report := &audit.Report{
		Profile:  profile,
		Records:  []*audit.Record{{Episode: 1, Name: "Taxi nach Leipzig"}},
		Findings: []audit.Finding{{Page: "Tatort: X", Text: "Missing IMDb"}},
		Pages:    2,
	}
	lines := renderAuditSummary(report, "/work", true, false)
	joined := strings.Join(lines, "\n")
	for _, want := range []string{
		"== Tatort audit ==",
		"[WARN] 2 read, 1 not in the episode sequence",
		"Episodes:",
		"[WARN] 1",
		"Wrote:" + strings.Repeat(" ", 7) + "/work/tatort-wiki-episodes.txt",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("summary missing %q:\n%s", want, joined)
		}
	}
}

func TestRenderAuditSummaryClean(t *testing.T) {
	profile, err := series.Lookup("polizeiruf110")
	if err != nil {
		t.Fatal(err)
	}
	report := &audit.Report{Profile: profile, Pages: 0}
	got := renderAuditSummary(report, "/work", false, false)
	want := []string{
		"== Polizeiruf 110 audit ==",
		renderStatusLine("Pages", statusOK, "0 read", false),
		renderStatusLine("Episodes", statusError, "none found", false),
		renderStatusLine("Findings", statusOK, "none", false),
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("summary mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestDownloaderStatusLine(t *testing.T) {
	got := downloaderStatusLine("clearly-not-present-binary", false)
	if !strings.Contains(got, "Downloader:") || !strings.Contains(got, "[ERROR] binary \"clearly-not-present-binary\" not found") {
		t.Fatalf("unexpected status line %q", got)
	}
}
