package socrata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateBetween(t *testing.T) {
	start := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t,
		"date_issued >= '2024-03-03T00:00:00.000' AND date_issued < '2024-03-10T00:00:00.000'",
		DateBetween("date_issued", start))
}

func TestWithinCircle(t *testing.T) {
	assert.Equal(t,
		"within_circle(location, 41.88, -87.63, 2750)",
		WithinCircle("location", 41.88, -87.63, 2750))
}

func TestValueIn(t *testing.T) {
	assert.Equal(t, "results IN ('Pass', 'Pass w/ Conditions', 'Fail')",
		ValueIn("results", []string{"Pass", "Pass w/ Conditions", "Fail"}))

	assert.Equal(t, "application_type IN ('ISSUE')",
		ValueIn("application_type", []string{"ISSUE"}))
}

func TestValueNotIn(t *testing.T) {
	assert.Equal(t, "currentmilestone NOT IN ('Cancelled')",
		ValueNotIn("currentmilestone", []string{"Cancelled"}))
}

func TestValueIn_EscapesEmbeddedQuotes(t *testing.T) {
	assert.Equal(t, "dba_name IN ('O''HARE CAFE')",
		ValueIn("dba_name", []string{"O'HARE CAFE"}))
}

func TestCombineAnd_PreservesOrder(t *testing.T) {
	assert.Equal(t, "a = '1' AND b = '2' AND c = '3'",
		CombineAnd("a = '1'", "b = '2'", "c = '3'"))
}
