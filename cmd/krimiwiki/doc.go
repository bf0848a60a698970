// Package main hosts the krimiwiki CLI entrypoint and command graph.
//
// The Cobra-based command tree wires configuration, logging and the work
// directory lock into the audit, broadcaster, fan-site and revision
// statistics packages. Reports go to stdout; logs and findings go to stderr.
package main
