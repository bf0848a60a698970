// Package series holds the per-series audit profiles.
//
// Each profile is an embedded YAML document naming the wiki templates a
// series uses, the boundary marker written in its first and last navigation
// entries, the behaviour switches that differ between series (double
// episodes, article link checks, regional broadcasts) and the tables of known
// exceptions that the audit must not report.
package series
