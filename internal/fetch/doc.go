// Package fetch downloads broadcaster and fan-site pages into the working
// directory.
//
// Downloads normally go through an external curl-compatible utility run as a
// subprocess; an in-process HTTP fetcher is available as an alternative.
// Consecutive downloads are spaced by a Pacer so the sites are not hammered.
package fetch
