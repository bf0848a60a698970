package wikitext

import (
	"sort"
	"strconv"
	"strings"
)

// Param is a single template argument. Positional arguments are named by
// their one-based position among the unnamed arguments.
type Param struct {
	Name  string
	Value string
}

// Template is one transclusion found in page source.
type Template struct {
	Name   string
	Params []Param
}

// Get returns the value of the named parameter.
func (t Template) Get(name string) (string, bool) {
	for _, p := range t.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Value returns the named parameter or "" when absent.
func (t Template) Value(name string) string {
	v, _ := t.Get(name)
	return v
}

// Has reports whether the parameter is present, even with an empty value.
func (t Template) Has(name string) bool {
	_, ok := t.Get(name)
	return ok
}

// Map copies the parameters into a map.
func (t Template) Map() map[string]string {
	out := make(map[string]string, len(t.Params))
	for _, p := range t.Params {
		out[p.Name] = p.Value
	}
	return out
}

// Stringify renders params as "k=v|k=v" sorted by name.
func Stringify(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + params[k]
	}
	return strings.Join(parts, "|")
}

func buildParams(segments []segment) []Param {
	params := make([]Param, 0, len(segments))
	index := make(map[string]int, len(segments))
	positional := 0
	for _, seg := range segments {
		var name, value string
		if seg.eq >= 0 {
			name = strings.TrimSpace(seg.text[:seg.eq])
			value = seg.text[seg.eq+1:]
		} else {
			positional++
			name = strconv.Itoa(positional)
			value = seg.text
		}
		value = strings.TrimSpace(value)
		if i, ok := index[name]; ok {
			params[i].Value = value
			continue
		}
		index[name] = len(params)
		params = append(params, Param{Name: name, Value: value})
	}
	return params
}
