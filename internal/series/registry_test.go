package series

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNames(t *testing.T) {
	if diff := cmp.Diff([]string{"polizeiruf110", "tatort"}, Names()); diff != "" {
		t.Fatalf("Names mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupTatort(t *testing.T) {
	p, err := Lookup("Tatort")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if p.Selection() != "Tatort-Folge" {
		t.Fatalf("selection = %q", p.Selection())
	}
	if p.BoundaryMarker != EnDash {
		t.Fatalf("boundary = %q", p.BoundaryMarker)
	}
	if p.FileStem() != "tatort" {
		t.Fatalf("file stem = %q", p.FileStem())
	}
	if got := p.RegionalEpisodes[199]; len(got) != 2 || got[1].Name != "Flucht in den Tod" {
		t.Fatalf("unexpected regional episodes after 199: %#v", got)
	}
	if p.ExtraMonths["Juni."] != 6 {
		t.Fatalf("expected Juni. alias")
	}
	if len(p.Catalogs) != 3 || p.Catalogs[0].NumberExceptions["Tatort: Einmal täglich"] != "456" {
		t.Fatalf("unexpected catalogs %#v", p.Catalogs)
	}
	if p.Fans == nil || p.Fans.NumberCorrections["1005-angriff-auf-wache-08"] != 1105 {
		t.Fatalf("unexpected fans archive %#v", p.Fans)
	}
	if !p.Fans.FolgePrefixExpected(172) || p.Fans.FolgePrefixExpected(171) || !p.Fans.FolgeException(84) {
		t.Fatal("unexpected folge prefix rules")
	}
	if p.DasErste == nil || len(p.DasErste.DateFixes) != 3 {
		t.Fatalf("unexpected Das Erste corrections %#v", p.DasErste)
	}
	sub := p.AlternateInfoboxDates["Tatort: Passion"]
	if sub != (DateSubstitute{From: "1999-11-17", To: "2000-07-30"}) {
		t.Fatalf("unexpected date substitute %#v", sub)
	}
	if p.ExternalPattern() != nil {
		t.Fatal("tatort takes URLs from the catalog, expected no external pattern")
	}
}

func TestLookupPolizeiruf(t *testing.T) {
	p, err := Lookup("polizeiruf110")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if p.Selection() != "Folgenleiste Polizeiruf-110-Folgen" {
		t.Fatalf("selection = %q", p.Selection())
	}
	if !p.DoubleEpisodes || !p.CheckLinks || !p.CheckLastBoundary || !p.MainNamespaceOnly {
		t.Fatalf("unexpected flags %+v", p)
	}
	if p.FileStem() != "polizeiruf110" {
		t.Fatalf("file stem = %q", p.FileStem())
	}
	m := p.ExternalPattern().FindStringSubmatch("2019/crash-104.html")
	if m == nil || m[1] != "crash-104" {
		t.Fatalf("external pattern match = %v", m)
	}
	sd, ok := p.SpecialDate("Polizeiruf 110: Kreise", "NF-DATUM")
	if !ok || sd.Date != "2015-09-27" {
		t.Fatalf("special date = %#v, %v", sd, ok)
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("derkommissar"); err == nil {
		t.Fatal("expected error for unknown series")
	}
}

func TestEpisodeName(t *testing.T) {
	tatort, _ := Lookup("tatort")
	polizeiruf, _ := Lookup("polizeiruf110")
	tests := []struct {
		p    *Profile
		page string
		want string
	}{
		{tatort, "Tatort: Taxi nach Leipzig (1970)", "Taxi nach Leipzig"},
		{tatort, "Tatort: Aus der Traum (2006)", "Aus der Traum"},
		{tatort, "Tatort: Borowski und der stille Gast", "Borowski und der stille Gast"},
		{tatort, "Zabou (Film)", "Zabou"},
		{tatort, "Tatort: Tod im All (Folge-Nr. 350)", "Tod im All (Folge-Nr. 350)"},
		{polizeiruf, "Polizeiruf 110: Der Fall Lisa Murnau (Film)", "Der Fall Lisa Murnau"},
		{polizeiruf, "Polizeiruf 110: Kleine Dealer, große Träume (2013)", "Kleine Dealer, große Träume"},
		{polizeiruf, "Polizeiruf 110: Abschied (Teil 1)", "Abschied (Teil 1)"},
	}
	for _, tt := range tests {
		if got := tt.p.EpisodeName(tt.page); got != tt.want {
			t.Errorf("%s EpisodeName(%q) = %q, want %q", tt.p.Key, tt.page, got, tt.want)
		}
	}
}
