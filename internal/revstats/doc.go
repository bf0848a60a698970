// Package revstats counts who wrote and edited the episode articles of a
// series, per user and per year, from the complete revision histories.
package revstats
