// Package domain models the civic records summarized by the weekly digest.
//
// # Data Source
//
// All three datasets live on the city's Socrata open-data portal and are
// queried by resource ID (see the socrata adapter):
//
//	Business licenses  uupf-x98q  filtered server-side by location and issue date
//	Food inspections   4ijn-s7e5  filtered server-side by date only
//	Filming permits    c2az-nhru  filtered server-side by location and start date
//
// The food inspections resource exposes latitude/longitude columns but does
// not support the within_circle operator on them, so radius filtering for
// that dataset happens client-side via [FilterWithinArea].
//
// # Reporting Window
//
// A digest always covers the most recently completed Sunday-to-Saturday week
// in the civic time zone: the window start is the last Sunday strictly before
// the run date, and the end is seven days later, exclusive. The run date
// itself is never inside the window. See [CurrentWindow].
//
// # Normalization
//
// Raw portal rows are decoded into typed records at the fetch boundary;
// fields the portal omits decode to empty strings and are tolerated
// everywhere. Each dataset has a Normalize function projecting records into a
// fixed-column [Table] for rendering: names collapsed into a single label,
// timestamps truncated to the calendar day, and a deterministic sort order.
// Permit end dates shift forward one calendar day because the portal stores
// an exclusive end date while the digest displays an inclusive one.
package domain
