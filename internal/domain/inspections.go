package domain

import (
	"sort"
	"strconv"
)

// InspectionRecord is one row of the food inspections resource. The portal
// returns coordinates as strings; they stay raw here and are parsed by the
// geofilter.
type InspectionRecord struct {
	DBAName        string `json:"dba_name"`
	AKAName        string `json:"aka_name"`
	Address        string `json:"address"`
	InspectionDate string `json:"inspection_date"`
	InspectionType string `json:"inspection_type"`
	Results        string `json:"results"`
	Risk           string `json:"risk"`
	Violations     string `json:"violations"`
	Latitude       string `json:"latitude"`
	Longitude      string `json:"longitude"`
}

var inspectionColumns = []string{
	"Business Name", "Address", "Inspection Date", "Inspection Type",
	"Result", "Risk Level", "Violations",
}

// FilterWithinArea keeps the inspection records whose coordinates fall inside
// the search circle. The inspections resource has no server-side radius
// operator, so this runs client-side on the already date-filtered rows.
// Records with missing or unparseable coordinates are dropped: a row that
// cannot place itself inside the circle is treated as outside it.
func FilterWithinArea(recs []InspectionRecord, area SearchArea) []InspectionRecord {
	kept := make([]InspectionRecord, 0, len(recs))
	for _, rec := range recs {
		lat, errLat := strconv.ParseFloat(rec.Latitude, 64)
		lon, errLon := strconv.ParseFloat(rec.Longitude, 64)
		if errLat != nil || errLon != nil {
			continue
		}
		if area.Contains(lat, lon) {
			kept = append(kept, rec)
		}
	}
	return kept
}

// NormalizeInspections projects raw inspection records into the digest table:
// DBA and AKA names collapsed, dates truncated to the calendar day, rows
// sorted by descending inspection date.
func NormalizeInspections(recs []InspectionRecord) Table {
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, []string{
			collapseNames(rec.DBAName, rec.AKAName, "AKA"),
			rec.Address,
			truncateDay(rec.InspectionDate),
			rec.InspectionType,
			rec.Results,
			rec.Risk,
			rec.Violations,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i][2] > rows[j][2]
	})

	return Table{Columns: inspectionColumns, Rows: rows}
}
