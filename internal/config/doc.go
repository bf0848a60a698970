// Package config loads, normalizes, and validates krimiwiki configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// KRIMIWIKI_USER_AGENT. A .env file in the working directory is read before
// the environment is consulted, without overriding variables that are already
// set.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
