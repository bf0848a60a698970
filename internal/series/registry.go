package series

import (
	"embed"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var profileFS embed.FS

// Lookup loads the embedded profile for key ("tatort", "polizeiruf110").
func Lookup(key string) (*Profile, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	data, err := profileFS.ReadFile("data/" + key + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("series %q not found (available: %s): %w",
			key, strings.Join(Names(), ", "), err)
	}
	return parse(key, data)
}

// Names returns the keys of all embedded profiles, sorted.
func Names() []string {
	entries, _ := profileFS.ReadDir("data")
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	sort.Strings(names)
	return names
}

func parse(key string, data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse series %q: %w", key, err)
	}
	if p.Key == "" {
		p.Key = key
	}
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("series %q: %w", key, err)
	}
	if p.PageSuffixPattern != "" {
		re, err := regexp.Compile(p.PageSuffixPattern)
		if err != nil {
			return nil, fmt.Errorf("series %q: page_suffix_pattern: %w", key, err)
		}
		p.pageSuffix = re
	}
	if p.URLSource.ExternalRegex != "" {
		re, err := regexp.Compile(p.URLSource.ExternalRegex)
		if err != nil {
			return nil, fmt.Errorf("series %q: url_source.external_pattern: %w", key, err)
		}
		p.externalPattern = re
	}
	if p.FirstEpisode == 0 {
		p.FirstEpisode = 1
	}
	return &p, nil
}

func (p *Profile) validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("name is required")
	case p.NavigationTemplate == "":
		return fmt.Errorf("navigation_template is required")
	case p.PagePrefix == "":
		return fmt.Errorf("page_prefix is required")
	}
	if !p.IsBoundary(p.BoundaryMarker) {
		return fmt.Errorf("boundary_marker must be empty or an en dash, got %q", p.BoundaryMarker)
	}
	for _, c := range p.Catalogs {
		if c.Template == "" {
			return fmt.Errorf("catalog without template")
		}
	}
	return nil
}
