// Package daserste reads the broadcaster's episode data: the Tatort index
// page with its episode selector, and the Polizeiruf 110 episode URLs linked
// from wiki articles. It compares both with the wiki episode report.
package daserste
