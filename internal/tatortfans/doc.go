// Package tatortfans reads the yearly archive pages of the tatort-fans.de
// fan site, which lists every episode under a numbered URL.
package tatortfans
