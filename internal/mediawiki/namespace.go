package mediawiki

import "strconv"

// MainNamespace is the article namespace.
const MainNamespace = 0

var canonicalNamespaces = map[int]string{
	-2:  "Media",
	-1:  "Special",
	0:   "",
	1:   "Talk",
	2:   "User",
	3:   "User talk",
	4:   "Project",
	5:   "Project talk",
	6:   "File",
	7:   "File talk",
	8:   "MediaWiki",
	9:   "MediaWiki talk",
	10:  "Template",
	11:  "Template talk",
	12:  "Help",
	13:  "Help talk",
	14:  "Category",
	15:  "Category talk",
	100: "Portal",
	101: "Portal talk",
}

// NamespaceName returns the canonical (English) name of a namespace id.
func NamespaceName(id int) string {
	if name, ok := canonicalNamespaces[id]; ok {
		return name
	}
	return strconv.Itoa(id)
}
