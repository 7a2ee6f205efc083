// Package rank maps free-text academic rank strings to canonical codes.
package rank

import "strings"

// Other is the fallback code for non-empty input that matches no alias.
const Other = "OTHER"

// Table maps upper-cased, period-less aliases to canonical rank codes.
type Table map[string]string

var defaultTable = Table{
	"STAFF":              "STAFF",
	"SENIOR":             "SENIOR",
	"JUNIOR":             "JUNIOR",
	"VISITOR":            "VISITOR",
	"VISITING SCIENTIST": "VISITOR",
	"POSTDOC":            "POSTDOC",
	"PD":                 "POSTDOC",
	"PHD":                "PHD",
	"STUDENT":            "PHD",
	"MASTER":             "MASTER",
	"MS":                 "MASTER",
	"MSC":                "MASTER",
	"UNDERGRADUATE":      "UNDERGRADUATE",
	"UG":                 "UNDERGRADUATE",
	"BACHELOR":           "UNDERGRADUATE",
	"BS":                 "UNDERGRADUATE",
	"BSC":                "UNDERGRADUATE",
}

// DefaultTable returns a copy of the built-in alias table.
func DefaultTable() Table {
	t := make(Table, len(defaultTable))
	for k, v := range defaultTable {
		t[k] = v
	}
	return t
}

// Normalizer resolves rank strings against an immutable alias table.
type Normalizer struct {
	table Table
}

// New returns a Normalizer using the given table, or the default table when
// nil. The table must not be mutated after being passed in.
func New(table Table) *Normalizer {
	if table == nil {
		table = defaultTable
	}
	return &Normalizer{table: table}
}

// Normalize maps value to a canonical rank code. Periods are stripped and
// the lookup is case-insensitive. Unmatched non-empty input yields Other;
// empty input reports not ok.
func (n *Normalizer) Normalize(value string) (string, bool) {
	key := strings.TrimSpace(strings.ToUpper(strings.ReplaceAll(value, ".", "")))
	if key == "" {
		return "", false
	}
	if code, ok := n.table[key]; ok {
		return code, true
	}
	return Other, true
}

// Normalize maps value to a canonical rank code using the default table.
func Normalize(value string) (string, bool) {
	return New(nil).Normalize(value)
}
