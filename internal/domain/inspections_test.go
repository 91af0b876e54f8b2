package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeInspections(t *testing.T) {
	t.Run("collapses identical DBA and AKA names", func(t *testing.T) {
		table := NormalizeInspections([]InspectionRecord{
			{DBAName: "Lou's Diner", AKAName: "Lou's Diner"},
		})
		require.Len(t, table.Rows, 1)
		assert.Equal(t, "LOU'S DINER", table.Rows[0][0])
	})

	t.Run("annotates a differing AKA name", func(t *testing.T) {
		table := NormalizeInspections([]InspectionRecord{
			{DBAName: "Lou's Diner", AKAName: "Lou's"},
		})
		require.Len(t, table.Rows, 1)
		assert.Equal(t, "LOU'S DINER (AKA: LOU'S)", table.Rows[0][0])
	})

	t.Run("sorts by descending inspection date", func(t *testing.T) {
		table := NormalizeInspections([]InspectionRecord{
			{DBAName: "OLD", AKAName: "OLD", InspectionDate: "2024-03-04T00:00:00.000"},
			{DBAName: "NEW", AKAName: "NEW", InspectionDate: "2024-03-08T00:00:00.000"},
		})
		require.Len(t, table.Rows, 2)
		assert.Equal(t, "NEW", table.Rows[0][0])
		assert.Equal(t, "2024-03-08", table.Rows[0][2])
		assert.Equal(t, "OLD", table.Rows[1][0])
	})

	t.Run("missing violations render as an empty cell", func(t *testing.T) {
		table := NormalizeInspections([]InspectionRecord{
			{DBAName: "X", AKAName: "X", Results: "Pass", Risk: "Risk 1 (High)"},
		})
		require.Len(t, table.Rows, 1)
		assert.Equal(t, "Pass", table.Rows[0][4])
		assert.Equal(t, "Risk 1 (High)", table.Rows[0][5])
		assert.Equal(t, "", table.Rows[0][6])
	})

	t.Run("column order is fixed", func(t *testing.T) {
		table := NormalizeInspections(nil)
		assert.Equal(t, []string{
			"Business Name", "Address", "Inspection Date", "Inspection Type",
			"Result", "Risk Level", "Violations",
		}, table.Columns)
	})
}
