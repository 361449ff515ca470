package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildCasePredicateEmptyMatchesEverything(t *testing.T) {
	q, err := BuildCasePredicate(CaseFilters{})
	require.NoError(t, err)
	assert.Empty(t, q)
}

func TestBuildCasePredicateExactFields(t *testing.T) {
	q, err := BuildCasePredicate(CaseFilters{Status: "new", Priority: "high"})
	require.NoError(t, err)
	assert.Equal(t, "new", q["status"])
	assert.Equal(t, "high", q["priority"])
}

func TestBuildCasePredicateCaseInsensitiveSubstrings(t *testing.T) {
	q, err := BuildCasePredicate(CaseFilters{Country: "pal", Region: "west", Search: "hospital"})
	require.NoError(t, err)

	for field, pattern := range map[string]string{
		"location.country": "pal",
		"location.region":  "west",
		"title":            "hospital",
	} {
		m, ok := q[field].(bson.M)
		require.True(t, ok, "field %s", field)
		rx, ok := m["$regex"].(primitive.Regex)
		require.True(t, ok, "field %s", field)
		assert.Equal(t, pattern, rx.Pattern)
		assert.Equal(t, "i", rx.Options)
	}
}

func TestBuildCasePredicateViolationTypesRequiresAll(t *testing.T) {
	q, err := BuildCasePredicate(CaseFilters{ViolationTypes: "war_crimes, civilian_targeting"})
	require.NoError(t, err)

	m, ok := q["violation_types"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, []string{"war_crimes", "civilian_targeting"}, m["$all"])
}

func TestBuildCasePredicateDateRangeInclusive(t *testing.T) {
	q, err := BuildCasePredicate(CaseFilters{DateFrom: "2024-03-01", DateTo: "2024-03-01"})
	require.NoError(t, err)

	rangeQ, ok := q["created_at"].(bson.M)
	require.True(t, ok)

	from := rangeQ["$gte"].(time.Time)
	to := rangeQ["$lte"].(time.Time)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), from)
	// date_to covers the whole day so same-day records are not excluded
	assert.Equal(t, time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC), to)
}

func TestBuildCasePredicateRejectsBadDates(t *testing.T) {
	for _, f := range []CaseFilters{
		{DateFrom: "03/01/2024"},
		{DateTo: "2024-13-40"},
		{DateFrom: "yesterday"},
	} {
		_, err := BuildCasePredicate(f)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	}
}

func TestBuildReportPredicate(t *testing.T) {
	q, err := BuildReportPredicate(ReportFilters{
		Status:   "open",
		Country:  "sudan",
		City:     "khartoum",
		DateFrom: "2023-01-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "open", q["status"])
	assert.Contains(t, q, "incident_details.location.country")
	assert.Contains(t, q, "incident_details.location.city")
	assert.Contains(t, q, "incident_details.date_occurred")
}

func TestSplitCSV(t *testing.T) {
	assert.Nil(t, splitCSV(""))
	assert.Nil(t, splitCSV("   "))
	assert.Equal(t, []string{"a"}, splitCSV("a"))
	assert.Equal(t, []string{"a", "b"}, splitCSV(" a , b ,, "))
}
