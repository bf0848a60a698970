package wikitext

import "strings"

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	nowikiOpen   = "<nowiki>"
	nowikiClose  = "</nowiki>"
)

type segment struct {
	text string
	// eq is the offset of the first top-level "=" in text, or -1.
	eq int
}

type parsed struct {
	Template
	skip bool
}

// result is the outcome of parsing the template at one offset: its end, or
// -1 when unclosed, and the templates it produced.
type result struct {
	end int
	out []parsed
}

type extractor struct {
	src  string
	out  []parsed
	seen map[int]result
}

// ExtractTemplates returns every template transcluded in text in pre-order.
// Parser functions and template argument references are not reported, and an
// unclosed "{{" is treated as plain text.
func ExtractTemplates(text string) []Template {
	e := &extractor{src: text, seen: make(map[int]result)}
	for i := 0; i < len(e.src); {
		switch {
		case strings.HasPrefix(e.src[i:], commentOpen):
			i = e.skipComment(i)
		case strings.HasPrefix(e.src[i:], nowikiOpen):
			i = e.skipNowiki(i)
		case strings.HasPrefix(e.src[i:], "{{{"):
			if end := e.skipArgument(i); end > 0 {
				i = end
				continue
			}
			i = e.templateOrText(i)
		case strings.HasPrefix(e.src[i:], "{{"):
			i = e.templateOrText(i)
		default:
			i++
		}
	}

	templates := make([]Template, 0, len(e.out))
	for _, p := range e.out {
		if !p.skip {
			templates = append(templates, p.Template)
		}
	}
	return templates
}

func (e *extractor) templateOrText(i int) int {
	if end, ok := e.template(i); ok {
		return end
	}
	return i + 2
}

// template parses the transclusion starting at src[i:] ("{{") and returns the
// offset just past its closing braces.
func (e *extractor) template(i int) (int, bool) {
	if r, ok := e.seen[i]; ok {
		if r.end < 0 {
			return 0, false
		}
		e.out = append(e.out, r.out...)
		return r.end, true
	}

	slot := len(e.out)
	e.out = append(e.out, parsed{})

	var (
		segments []segment
		buf      strings.Builder
		eq       = -1
	)
	flush := func() {
		segments = append(segments, segment{text: buf.String(), eq: eq})
		buf.Reset()
		eq = -1
	}

	pos := i + 2
	for pos < len(e.src) {
		rest := e.src[pos:]
		switch {
		case strings.HasPrefix(rest, commentOpen):
			pos = e.skipComment(pos)
		case strings.HasPrefix(rest, nowikiOpen):
			end := e.skipNowiki(pos)
			buf.WriteString(e.src[pos:end])
			pos = end
		case strings.HasPrefix(rest, "{{{"):
			if end := e.skipArgument(pos); end > 0 {
				buf.WriteString(e.src[pos:end])
				pos = end
				continue
			}
			pos = e.nested(&buf, pos)
		case strings.HasPrefix(rest, "{{"):
			pos = e.nested(&buf, pos)
		case strings.HasPrefix(rest, "[["):
			if end := e.skipLink(pos); end > 0 {
				buf.WriteString(e.src[pos:end])
				pos = end
				continue
			}
			buf.WriteString("[[")
			pos += 2
		case strings.HasPrefix(rest, "}}"):
			flush()
			e.finish(slot, segments)
			e.seen[i] = result{end: pos + 2, out: append([]parsed(nil), e.out[slot:]...)}
			return pos + 2, true
		case rest[0] == '|':
			flush()
			pos++
		case rest[0] == '=' && eq < 0 && len(segments) > 0:
			eq = buf.Len()
			buf.WriteByte('=')
			pos++
		default:
			buf.WriteByte(rest[0])
			pos++
		}
	}

	e.out = e.out[:slot]
	e.seen[i] = result{end: -1}
	return 0, false
}

func (e *extractor) nested(buf *strings.Builder, pos int) int {
	if end, ok := e.template(pos); ok {
		buf.WriteString(e.src[pos:end])
		return end
	}
	buf.WriteString("{{")
	return pos + 2
}

func (e *extractor) finish(slot int, segments []segment) {
	name := NormalizeName(segments[0].text)
	if name == "" || isParserFunction(name) {
		e.out[slot].skip = true
		return
	}
	e.out[slot].Template = Template{Name: name, Params: buildParams(segments[1:])}
}

func (e *extractor) skipComment(i int) int {
	end := strings.Index(e.src[i+len(commentOpen):], commentClose)
	if end < 0 {
		return len(e.src)
	}
	return i + len(commentOpen) + end + len(commentClose)
}

func (e *extractor) skipNowiki(i int) int {
	end := strings.Index(e.src[i+len(nowikiOpen):], nowikiClose)
	if end < 0 {
		return i + len(nowikiOpen)
	}
	return i + len(nowikiOpen) + end + len(nowikiClose)
}

// skipArgument returns the offset past a balanced "{{{...}}}", or -1.
func (e *extractor) skipArgument(i int) int {
	depth := 0
	for pos := i; pos < len(e.src); {
		rest := e.src[pos:]
		switch {
		case strings.HasPrefix(rest, "{{{"):
			depth++
			pos += 3
		case strings.HasPrefix(rest, "}}}"):
			depth--
			pos += 3
			if depth == 0 {
				return pos
			}
		default:
			pos++
		}
	}
	return -1
}

// skipLink returns the offset past a balanced "[[...]]", or -1 when the link
// is not closed before the enclosing template ends.
func (e *extractor) skipLink(i int) int {
	depth := 0
	braces := 0
	for pos := i; pos < len(e.src); {
		rest := e.src[pos:]
		switch {
		case strings.HasPrefix(rest, "[["):
			depth++
			pos += 2
		case strings.HasPrefix(rest, "]]"):
			depth--
			pos += 2
			if depth == 0 {
				return pos
			}
		case strings.HasPrefix(rest, "{{"):
			braces++
			pos += 2
		case strings.HasPrefix(rest, "}}"):
			if braces == 0 {
				return -1
			}
			braces--
			pos += 2
		default:
			pos++
		}
	}
	return -1
}
