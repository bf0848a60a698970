// Package wikitext extracts template transclusions and their parameters from
// raw MediaWiki page source.
//
// It is not a general wikitext parser. It understands just enough structure
// (nested templates, links, HTML comments, nowiki sections and template
// argument references) to split parameters correctly, and returns every
// template on a page in document order, outer before inner.
package wikitext
