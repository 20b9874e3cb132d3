package lineitems

import "strings"

// DefaultGLCode is assigned when no keyword matches a description.
const DefaultGLCode = "501-000"

// glEntry pairs a lookup keyword with its GL account code. Order matters:
// the first keyword contained in the lower-cased description wins.
type glEntry struct {
	keyword string
	code    string
}

var glTable = []glEntry{
	{"lorry sale", "500-000"},
	{"rental", "535-000"},
	{"refurbish", "501-000"},
	{"repair", "501-000"},
	{"service", "501-000"},
	{"jpj", "930-000"},
	{"road tax", "930-000"},
	{"inspection", "930-000"},
	{"puspakom", "930-000"},
	{"insurance", "931-000"},
	{"sticker", "501-000"},
	{"agreement fee", "501-000"},
}

// GLCodeFor maps a free-text description to its accounting category code.
// Stable and total: same input always yields the same code, and an unmatched
// description falls back to DefaultGLCode.
func GLCodeFor(description string) string {
	desc := strings.ToLower(description)
	for _, e := range glTable {
		if strings.Contains(desc, e.keyword) {
			return e.code
		}
	}
	return DefaultGLCode
}
