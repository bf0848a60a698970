package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testIndexPage = `<!DOCTYPE html>
<html><body>
<select name="filterBoxTitle">
<option value="/">Bitte wählen Sie eine Folge</option>
<option value="taxi-nach-leipzig-100">Taxi nach Leipzig (29.11.1970)</option>
<option value="saarbruecken-an-einem-montag-100">Saarbrücken, an einem Montag … (27.12.1970)</option>
</select>
</body></html>`

func TestDasErsteFetchUrlmapAndDiff(t *testing.T) {
	requests := 0
	env := setupCLITestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tatort/index.html" {
			http.NotFound(w, r)
			return
		}
		requests++
		fmt.Fprint(w, testIndexPage)
	}))

	out, _, err := runCLI(t, []string{"daserste", "fetch"}, env.configPath)
	if err != nil {
		t.Fatalf("daserste fetch: %v", err)
	}
	if requests != 1 {
		t.Fatalf("expected one download, got %d", requests)
	}
	requireContains(t, out, "1|1970-11-29|Taxi nach Leipzig|taxi-nach-leipzig-100\n")
	requireContains(t, out, "|1970-12-27|Saarbrücken, an einem Montag …|saarbruecken-an-einem-montag-100\n")

	cached, _, err := runCLI(t, []string{"daserste", "html2txt"}, env.configPath)
	if err != nil {
		t.Fatalf("daserste html2txt: %v", err)
	}
	if cached != out {
		t.Fatalf("html2txt output differs from fetch output:\n%s\n%s", cached, out)
	}

	writeWorkFile(t, env, "tatort-wiki-episodes.txt",
		"1|1970-11-29|Taxi nach Leipzig|taxi-nach-leipzig-100\n"+
			"2|1970-12-28|Saarbrücken an einem Montag|saarbruecken-an-einem-montag-100\n")
	writeWorkFile(t, env, "tatort-title-map.txt",
		"Saarbrücken an einem Montag\nSaarbrücken, an einem Montag …\n")

	out, _, err = runCLI(t, []string{"daserste", "diff"}, env.configPath)
	if err != nil {
		t.Fatalf("daserste diff: %v", err)
	}
	requireContains(t, out, "MOD|2|DATE|1970-12-28|1970-12-27\n")
	if strings.Contains(out, "|TITLE|") {
		t.Fatalf("title map not applied:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"daserste", "urlmap"}, env.configPath)
	if err != nil {
		t.Fatalf("daserste urlmap: %v", err)
	}
	if strings.Contains(out, "taxi-nach-leipzig") {
		t.Fatalf("matching slug reported:\n%s", out)
	}
}

func TestDasErsteWithoutCache(t *testing.T) {
	env := setupCLITestEnv(t, nil)
	_, _, err := runCLI(t, []string{"daserste", "html2txt"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "daserste fetch") {
		t.Fatalf("expected hint to fetch first, got %v", err)
	}
	_, _, err = runCLI(t, []string{"daserste", "diff"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "audit tatort") {
		t.Fatalf("expected hint to run the audit first, got %v", err)
	}
}

func TestDasErsteFetchFailure(t *testing.T) {
	env := setupCLITestEnv(t, nil)
	if _, _, err := runCLI(t, []string{"daserste", "fetch"}, env.configPath); err == nil {
		t.Fatal("expected error for failed download")
	}
	if _, err := os.Stat(filepath.Join(env.workDir, "tatort.html")); !os.IsNotExist(err) {
		t.Fatalf("failed download left a cache file: %v", err)
	}
}

func TestFansFetchAndURLMap(t *testing.T) {
	var env *cliTestEnv
	env = setupCLITestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/category/tatort-1970-1979/1970/" {
			http.NotFound(w, r)
			return
		}
		base := env.server.URL
		fmt.Fprintf(w, `<html><body>
<h2 class="entry-title"><a href="%[1]s/tatort-001-taxi-nach-leipzig/">Taxi nach Leipzig</a></h2>
<h2 class="entry-title"><a href="%[1]s/tatort-002-saarbruecken-an-einem-montag/">Saarbrücken</a></h2>
</body></html>`, base)
	}))

	out, _, err := runCLI(t, []string{"fans", "fetch", "1970"}, env.configPath)
	if err != nil {
		t.Fatalf("fans fetch: %v", err)
	}
	if out != "1|taxi-nach-leipzig\n2|saarbruecken-an-einem-montag\n" {
		t.Fatalf("unexpected fans fetch output %q", out)
	}

	writeWorkFile(t, env, "tatort-wiki-episodes.txt",
		"1|1970-11-29|Taxi nach Leipzig|taxi-nach-leipzig-100\n"+
			"2|1970-12-27|Saarbrücken, an einem Montag …|saarbruecken-an-einem-montag-100\n")
	out, _, err = runCLI(t, []string{"fans", "urlmap"}, env.configPath)
	if err != nil {
		t.Fatalf("fans urlmap: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no slug mismatches, got %q", out)
	}
}

func TestFansFetchRejectsBadArguments(t *testing.T) {
	env := setupCLITestEnv(t, nil)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"fans", "fetch", "1969"}, "start year must be a number between 1970"},
		{[]string{"fans", "fetch", "1980", "1975"}, "end year must be a number between 1980"},
		{[]string{"fans", "fetch", "1970", "1971", "1972"}, "too many"},
	}
	for _, tt := range tests {
		_, _, err := runCLI(t, tt.args, env.configPath)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%v: expected error containing %q, got %v", tt.args, tt.want, err)
		}
	}
}
