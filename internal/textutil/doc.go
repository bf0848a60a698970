// Package textutil provides text helpers shared by the broadcaster and fan-site
// tooling.
//
// The primary use cases are:
//   - Deriving URL slugs from German episode titles
//   - Reporting characters outside the expected title alphabet
package textutil
