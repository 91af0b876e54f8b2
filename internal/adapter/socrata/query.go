package socrata

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timestampLayout is the floating timestamp format the portal expects in
// $where predicates.
const timestampLayout = "2006-01-02T15:04:05.000"

// DateBetween selects rows whose field falls inside the seven-day window
// beginning at start: field >= start AND field < start+7d, both at midnight.
func DateBetween(field string, start time.Time) string {
	end := start.AddDate(0, 0, 7)
	return fmt.Sprintf("%s >= %s AND %s < %s",
		field, quote(start.Format(timestampLayout)),
		field, quote(end.Format(timestampLayout)))
}

// WithinCircle selects rows whose point field lies within radiusMeters of
// (lat, lon), using the portal's native geo predicate.
func WithinCircle(field string, lat, lon float64, radiusMeters int) string {
	return fmt.Sprintf("within_circle(%s, %s, %s, %d)",
		field, formatCoord(lat), formatCoord(lon), radiusMeters)
}

// ValueIn selects rows whose field equals one of values.
func ValueIn(field string, values []string) string {
	return fmt.Sprintf("%s IN (%s)", field, quoteList(values))
}

// ValueNotIn selects rows whose field equals none of values.
func ValueNotIn(field string, values []string) string {
	return fmt.Sprintf("%s NOT IN (%s)", field, quoteList(values))
}

// CombineAnd joins predicates with AND, preserving argument order.
func CombineAnd(preds ...string) string {
	return strings.Join(preds, " AND ")
}

// quote single-quotes a value, doubling embedded quotes per SoQL escaping
// rules. Every interpolated value funnels through here so the escaping policy
// lives in one place.
func quote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}
	return strings.Join(quoted, ", ")
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
