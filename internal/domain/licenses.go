package domain

import "sort"

// LicenseRecord is one row of the business licenses resource.
type LicenseRecord struct {
	LegalName        string `json:"legal_name"`
	DBAName          string `json:"doing_business_as_name"`
	Address          string `json:"address"`
	LicenseStartDate string `json:"license_start_date"`
	ExpirationDate   string `json:"expiration_date"`
	BusinessActivity string `json:"business_activity"`
}

var licenseColumns = []string{"Business Name", "Address", "Start Date", "End Date", "License Type"}

// NormalizeLicenses projects raw license records into the digest table:
// legal and DBA names collapsed, dates truncated to the calendar day, rows
// sorted by descending end date and then descending start date.
func NormalizeLicenses(recs []LicenseRecord) Table {
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, []string{
			collapseNames(rec.LegalName, rec.DBAName, "DBA"),
			rec.Address,
			truncateDay(rec.LicenseStartDate),
			truncateDay(rec.ExpirationDate),
			rec.BusinessActivity,
		})
	}

	// End date is the primary sort key even though start date comes first in
	// the table; ties fall back to start date, both descending.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i][3] != rows[j][3] {
			return rows[i][3] > rows[j][3]
		}
		return rows[i][2] > rows[j][2]
	})

	return Table{Columns: licenseColumns, Rows: rows}
}
