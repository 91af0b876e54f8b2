package domain

import (
	"fmt"
	"strings"
)

// Table is a normalized dataset result: ordered human-readable column labels
// plus rows of cell text. A table with no rows renders as the "None."
// placeholder; whether the portal returned nothing or everything was filtered
// out is deliberately indistinguishable downstream.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// collapseNames merges a primary and alternate business name into one
// upper-cased label, e.g. "ACME LTD (DBA: ACME)". Identical names collapse to
// the primary alone.
func collapseNames(primary, alternate, tag string) string {
	name := primary
	if alternate != primary {
		name = fmt.Sprintf("%s (%s: %s)", primary, tag, alternate)
	}
	return strings.ToUpper(name)
}

// truncateDay trims a portal timestamp such as "2024-03-04T00:00:00.000" to
// its calendar day. Shorter values pass through unchanged.
func truncateDay(ts string) string {
	if len(ts) > 10 {
		return ts[:10]
	}
	return ts
}
