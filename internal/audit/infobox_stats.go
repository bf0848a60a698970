package audit

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"krimiwiki/internal/wikitext"
)

type usage int

const (
	usageOptional usage = iota
	usageEmpty
	usageFilled
)

// infoboxParams lists the known Infobox Episode parameters. Names on one
// line are aliases of each other. Parameters with grouped set collect a
// histogram of their values.
var infoboxParams = []struct {
	names   []string
	usage   usage
	grouped bool
}{
	{names: []string{"Franchise"}},
	{names: []string{"Serie", "SERIE"}},
	{names: []string{"Serie_Link", "SLINK"}},
	{names: []string{"Reihe", "REIHE"}, usage: usageFilled},
	{names: []string{"Titel", "DT"}, usage: usageEmpty},
	{names: []string{"Originaltitel", "OT"}, usage: usageFilled},
	{names: []string{"Untertitel", "UT"}},
	{names: []string{"Bild", "BILD"}},
	{names: []string{"Produktionsland", "PL"}, usage: usageFilled, grouped: true},
	{names: []string{"Produktionsunternehmen", "PROU"}},
	{names: []string{"Originalsprache", "OS"}, usage: usageFilled, grouped: true},
	{names: []string{"Länge", "LEN"}},
	{names: []string{"Staffel", "ST"}, usage: usageEmpty},
	{names: []string{"Episode", "EP"}, usage: usageFilled},
	{names: []string{"Episode_gesamt", "EPG"}, usage: usageEmpty},
	{names: []string{"Erstausstrahlung", "EAS"}, usage: usageFilled},
	{names: []string{"Sender", "SEN"}, usage: usageFilled, grouped: true},
	{names: []string{"Erstausstrahlung_DE", "EASDE"}, usage: usageEmpty},
	{names: []string{"Sender_DE", "SENDE"}, usage: usageEmpty},
	{names: []string{"Altersfreigabe", "AF", "FSK"}},
	{names: []string{"BMUKK", "JMK"}},
	{names: []string{"Regie", "REG"}, usage: usageFilled},
	{names: []string{"Drehbuch", "DRB"}, usage: usageFilled},
	{names: []string{"Produzent", "PRO"}},
	{names: []string{"Musik", "MUSIK"}},
	{names: []string{"Kamera", "KAMERA"}, usage: usageFilled},
	{names: []string{"Schnitt", "SCHNITT"}, usage: usageFilled},
	{names: []string{"Besetzung", "DS"}, usage: usageFilled},
	{names: []string{"Gastauftritt", "GAST"}, usage: usageFilled},
	{names: []string{"Synchronisation", "SYN"}, usage: usageEmpty},
	{names: []string{"Episodenliste", "EPL"}, usage: usageFilled},
	{names: []string{"Chronologie", "CHR"}, usage: usageFilled},
}

// seriesOnlyParams are unexpected in an infobox of a standalone film.
var seriesOnlyParams = map[string]bool{
	"DT": true, "Titel": true,
	"EP": true, "Episode": true,
	"EPL": true, "Episodenliste": true,
	"OT": true, "Originaltitel": true,
	"REIHE": true, "Reihe": true,
	"SLINK": true, "Serie_Link": true,
}

// commonParams must appear in every infobox under one of the two names.
var commonParams = [][2]string{
	{"DRB", "Drehbuch"},
	{"DS", "Besetzung"},
	{"KAMERA", "Kamera"},
	{"OS", "Originalsprache"},
	{"PL", "Produktionsland"},
	{"REG", "Regie"},
	{"SCHNITT", "Schnitt"},
	{"SEN", "Sender"},
}

type paramStats struct {
	used  int
	empty int
}

// ParamGroup counts the usage of one parameter and its aliases.
type ParamGroup struct {
	Names  []string
	usage  usage
	used   int
	empty  int
	params []*paramStats
	// values is nil unless the group collects a value histogram.
	values map[string]int
	seen   bool
}

// InfoboxStats accumulates parameter usage over all episode infoboxes.
type InfoboxStats struct {
	groups []*ParamGroup
	lookup map[string]*ParamGroup
	index  map[string]int
}

// NewInfoboxStats returns empty statistics for the known parameters.
func NewInfoboxStats() *InfoboxStats {
	s := &InfoboxStats{
		lookup: make(map[string]*ParamGroup),
		index:  make(map[string]int),
	}
	for _, spec := range infoboxParams {
		g := &ParamGroup{Names: spec.names, usage: spec.usage}
		if spec.grouped {
			g.values = make(map[string]int)
		}
		for i, name := range spec.names {
			g.params = append(g.params, &paramStats{})
			s.lookup[name] = g
			s.index[name] = i
		}
		s.groups = append(s.groups, g)
	}
	sort.Slice(s.groups, func(i, j int) bool {
		return slices.Compare(s.groups[i].Names, s.groups[j].Names) < 0
	})
	return s
}

// updateInfoboxStats counts one infobox and reports parameter problems. Parameters in
// exclude are treated as unknown.
func (a *Auditor) updateInfoboxStats(r *Record, params []wikitext.Param, exclude map[string]bool) {
	s := a.stats
	for _, g := range s.groups {
		g.seen = false
	}
	for _, p := range params {
		g, ok := s.lookup[p.Name]
		if !ok || exclude[p.Name] {
			a.report(r, "Should remove Infobox parameter %s", p.Name)
			continue
		}
		ps := g.params[s.index[p.Name]]
		if p.Value != "" {
			ps.used++
			g.used++
			if g.usage == usageEmpty {
				a.report(r, "Infobox parameter %s should be empty", p.Name)
			}
		} else {
			ps.empty++
			g.empty++
			if g.usage == usageFilled {
				a.report(r, "Infobox parameter %s should not be empty", p.Name)
			}
		}
		if g.values != nil {
			g.values[p.Value]++
		}
		if g.seen {
			a.report(r, "Should specify only one Infobox parameter %s", p.Name)
		} else {
			g.seen = true
		}
	}
}

// Write renders the used and empty counts followed by the value histograms.
func (s *InfoboxStats) Write(w io.Writer) error {
	if err := s.writeCounts(w, "Used", func(g *ParamGroup) int { return g.used }, func(p *paramStats) int { return p.used }); err != nil {
		return err
	}
	if err := s.writeCounts(w, "Empty", func(g *ParamGroup) int { return g.empty }, func(p *paramStats) int { return p.empty }); err != nil {
		return err
	}
	for _, g := range s.groups {
		if g.values == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "------+ %s ----\n", strings.Join(g.Names, ", ")); err != nil {
			return err
		}
		values := make([]string, 0, len(g.values))
		for v := range g.values {
			values = append(values, v)
		}
		sort.Strings(values)
		for _, v := range values {
			if _, err := fmt.Fprintf(w, " %4d | %s\n", g.values[v], v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *InfoboxStats) writeCounts(w io.Writer, label string, group func(*ParamGroup) int, param func(*paramStats) int) error {
	if _, err := fmt.Fprintf(w, "------+ %s Infobox Parameters ----\n", label); err != nil {
		return err
	}
	for _, g := range s.groups {
		n := group(g)
		if n == 0 {
			continue
		}
		parts := make([]string, len(g.Names))
		for i, name := range g.Names {
			parts[i] = fmt.Sprintf("%s (%d)", name, param(g.params[i]))
		}
		if _, err := fmt.Fprintf(w, " %4d | %s\n", n, strings.Join(parts, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// Used returns how many infoboxes set the parameter group containing name
// to a non-empty value.
func (s *InfoboxStats) Used(name string) int {
	if g, ok := s.lookup[name]; ok {
		return g.used
	}
	return 0
}

// Empty returns how many infoboxes left the group containing name empty.
func (s *InfoboxStats) Empty(name string) int {
	if g, ok := s.lookup[name]; ok {
		return g.empty
	}
	return 0
}
