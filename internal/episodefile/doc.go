// Package episodefile reads and writes the pipe-delimited text files that
// connect the audit runs: the wiki episode report, the title map and the
// usage counters.
package episodefile
