package domain

import (
	"sort"
	"strings"
	"time"
)

// PermitRecord is one row of the filming permits resource. Street address
// components arrive split across five columns and are joined during
// normalization.
type PermitRecord struct {
	PrimaryContactLast   string `json:"primarycontactlast"`
	StreetNumberFrom     string `json:"streetnumberfrom"`
	StreetNumberTo       string `json:"streetnumberto"`
	Direction            string `json:"direction"`
	StreetName           string `json:"streetname"`
	Suffix               string `json:"suffix"`
	ApplicationStartDate string `json:"applicationstartdate"`
	ApplicationEndDate   string `json:"applicationenddate"`
	Detail               string `json:"detail"`
}

var permitColumns = []string{"Contact Name", "Address", "Start Date", "End Date", "Details"}

// NormalizePermits projects raw permit records into the digest table: street
// components joined into one address, the end date shifted forward one
// calendar day, rows sorted by ascending start date and then ascending end
// date.
func NormalizePermits(recs []PermitRecord) Table {
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, []string{
			rec.PrimaryContactLast,
			permitAddress(rec),
			truncateDay(rec.ApplicationStartDate),
			plusOneDay(truncateDay(rec.ApplicationEndDate)),
			rec.Detail,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i][2] != rows[j][2] {
			return rows[i][2] < rows[j][2]
		}
		return rows[i][3] < rows[j][3]
	})

	return Table{Columns: permitColumns, Rows: rows}
}

// permitAddress joins the street-number range, direction, street name, and
// suffix into one address, omitting absent parts.
func permitAddress(rec PermitRecord) string {
	parts := make([]string, 0, 4)
	if rec.StreetNumberFrom != "" || rec.StreetNumberTo != "" {
		parts = append(parts, rec.StreetNumberFrom+"-"+rec.StreetNumberTo)
	}
	for _, p := range []string{rec.Direction, rec.StreetName, rec.Suffix} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// plusOneDay shifts a YYYY-MM-DD date forward one calendar day. The portal
// stores a permit end date that excludes the final day; the digest displays
// an inclusive end date. Unparseable values pass through unchanged.
func plusOneDay(day string) string {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return day
	}
	return t.AddDate(0, 0, 1).Format("2006-01-02")
}
