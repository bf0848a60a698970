// Package mediawiki is a small client for the MediaWiki action API.
//
// It covers the three queries the audit needs: pages transcluding a
// template, page content with categories and external links, and the
// revision history of a page. Responses are requested with
// formatversion=2 and continuation is followed transparently.
package mediawiki
