package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JalilAbdallah/hrm-backend/models"
	"github.com/JalilAbdallah/hrm-backend/repository"
)

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		name        string
		total       int64
		skip, limit int64
		returned    int
		hasNext     bool
		hasPrev     bool
	}{
		{"empty result", 0, 0, 100, 0, false, false},
		{"single page", 5, 0, 100, 5, false, false},
		{"first of many", 250, 0, 100, 100, true, false},
		{"middle page", 250, 100, 100, 100, true, true},
		{"last page", 250, 200, 100, 50, false, true},
		{"exact boundary", 200, 100, 100, 100, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := buildPagination(tt.total, tt.skip, tt.limit, tt.returned)
			assert.Equal(t, tt.hasNext, p.HasNext, "has_next")
			assert.Equal(t, tt.hasPrev, p.HasPrev, "has_prev")
			assert.Equal(t, tt.total, p.TotalCount)
			assert.Equal(t, tt.skip, p.CurrentSkip)
			assert.Equal(t, tt.limit, p.CurrentLimit)
			assert.Equal(t, tt.returned, p.ReturnedCount)
		})
	}
}

func TestBuildCaseEnvelopeEchoesEveryFilterField(t *testing.T) {
	res := &repository.CaseListResult{Cases: []models.Case{}, TotalCount: 0}
	env := buildCaseEnvelope(res, repository.CaseFilters{Status: "new"}, 0, 100)

	// every recognized field is present, null when unset
	for _, key := range []string{"status", "country", "region", "violation_types", "priority", "search", "date_from", "date_to"} {
		assert.Contains(t, env.FiltersApplied, key)
	}
	if assert.NotNil(t, env.FiltersApplied["status"]) {
		assert.Equal(t, "new", *env.FiltersApplied["status"])
	}
	assert.Nil(t, env.FiltersApplied["country"])
	assert.Nil(t, env.FiltersApplied["date_to"])
}

func TestBuildReportEnvelopeEchoesEveryFilterField(t *testing.T) {
	res := &repository.ReportListResult{Reports: []models.IncidentReport{}, TotalCount: 3, ReturnedCount: 3}
	env := buildReportEnvelope(res, repository.ReportFilters{City: "aleppo"}, 0, 50)

	for _, key := range []string{"status", "country", "city", "date_from", "date_to"} {
		assert.Contains(t, env.FiltersApplied, key)
	}
	if assert.NotNil(t, env.FiltersApplied["city"]) {
		assert.Equal(t, "aleppo", *env.FiltersApplied["city"])
	}
	assert.Nil(t, env.FiltersApplied["status"])
}
