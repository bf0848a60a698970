package daserste

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"

	"krimiwiki/internal/episodefile"
)

func TestDiff(t *testing.T) {
	wikiEpisodes := []episodefile.WikiEpisode{
		{Number: 1, Date: "1970-11-29", Title: "Taxi nach Leipzig", URL: "taxi-nach-leipzig-100"},
		{Number: 2, Date: "1970-12-28", Title: "Romeo und Julia", URL: "romeo-und-julia-100"},
	}
	wiki := PrepareWiki(wikiEpisodes, map[string]string{"Romeo und Julia": "Romeo & Julia"}, nil)
	index := []Entry{
		{1, "1970-11-29", "Taxi nach Leipzig", "taxi-nach-leipzig-100"},
		{2, "1970-12-27", "Romeo & Julia", "romeo-und-julia-102"},
		{3, "1971-01-24", "Kressin und der tote Mann im Fleet", "kressin-und-der-tote-mann-im-fleet-100"},
	}

	var got []string
	for _, c := range Diff(wiki, index) {
		got = append(got, c.String())
	}
	want := []string{
		"MOD|2|DATE|1970-12-28|1970-12-27",
		"MOD|2|URL|romeo-und-julia-100|romeo-und-julia-102",
		"ADD|3|1971-01-24|Kressin und der tote Mann im Fleet|kressin-und-der-tote-mann-im-fleet-100",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("diff mismatch (-want +got):\n%s", diff)
	}
}

func TestURLMap(t *testing.T) {
	wiki := []episodefile.WikiEpisode{
		{Number: 1, Title: "Taxi nach Leipzig"},
		{Number: 2, Title: "Saarbrücken, an einem Montag …"},
		{Number: 3, Title: "Frankfurter Gold"},
	}
	index := []Entry{
		{Number: 1, URL: "taxi-nach-leipzig-100"},
		{Number: 2, URL: "saarbruecken-an-einem-montag-100"},
		{Number: 3, URL: "frankfurter-gold-neu-102"},
		{Number: 4, URL: "unknown-100"},
	}
	got := URLMap(wiki, index, nil)
	want := []SlugMismatch{{Number: 3, Slug: "frankfurter-gold-neu-"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("URLMap mismatch (-want +got):\n%s", diff)
	}
}

func TestValidSuffix(t *testing.T) {
	for url, want := range map[string]bool{
		"taxi-nach-leipzig-100": true,
		"der-maulwurf-122":      true,
		"foo-101":               false,
		"foo-300":               false,
		"100":                   false,
	} {
		if got := validSuffix(url); got != want {
			t.Errorf("validSuffix(%q) = %v, want %v", url, got, want)
		}
	}
}

func TestExternalSlugs(t *testing.T) {
	pattern := regexp.MustCompile(`^(?:[0-9]{4}/)?([0-9a-z]+(?:-[0-9a-z]+)*-?[0-9]{3})\.html$`)
	prefix := "www.daserste.de/unterhaltung/krimi/polizeiruf-110/sendung/"
	links := []string{
		"https://www.daserste.de/unterhaltung/krimi/polizeiruf-110/sendung/2019/heilig-sei-die-nacht-100.html",
		"http://www.daserste.de/unterhaltung/krimi/polizeiruf-110/sendung/tod-in-der-kueche-102.html",
		"https://www.imdb.com/title/tt0000001/",
		"ftp://example.org/file",
		"https://www.daserste.de/unterhaltung/krimi/polizeiruf-110/sendung/index.html",
	}
	slugs, findings := ExternalSlugs(links, prefix, pattern)
	if diff := cmp.Diff([]string{"heilig-sei-die-nacht-100", "tod-in-der-kueche-102"}, slugs); diff != "" {
		t.Fatalf("slugs mismatch (-want +got):\n%s", diff)
	}
	wantFindings := []string{
		"Unexpected URL protocol|ftp://example.org/file",
		"Unexpected URL suffix|index.html",
	}
	if diff := cmp.Diff(wantFindings, findings); diff != "" {
		t.Fatalf("findings mismatch (-want +got):\n%s", diff)
	}
}
