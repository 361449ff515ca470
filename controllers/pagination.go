package controllers

import (
	"github.com/JalilAbdallah/hrm-backend/models"
	"github.com/JalilAbdallah/hrm-backend/repository"
)

// buildPagination derives the metadata block. has_next is exact against the
// total count; has_prev only needs a non-zero skip.
func buildPagination(total, skip, limit int64, returned int) models.Pagination {
	return models.Pagination{
		TotalCount:    total,
		CurrentSkip:   skip,
		CurrentLimit:  limit,
		ReturnedCount: returned,
		HasNext:       skip+limit < total,
		HasPrev:       skip > 0,
	}
}

// buildCaseEnvelope wraps one result page. Every recognized filter field is
// echoed, present or not; clients rely on the shape being stable.
func buildCaseEnvelope(res *repository.CaseListResult, f repository.CaseFilters, skip, limit int64) models.CaseEnvelope {
	return models.CaseEnvelope{
		Cases:      res.Cases,
		Pagination: buildPagination(res.TotalCount, skip, limit, res.ReturnedCount),
		FiltersApplied: map[string]*string{
			"status":          echo(f.Status),
			"country":         echo(f.Country),
			"region":          echo(f.Region),
			"violation_types": echo(f.ViolationTypes),
			"priority":        echo(f.Priority),
			"search":          echo(f.Search),
			"date_from":       echo(f.DateFrom),
			"date_to":         echo(f.DateTo),
		},
	}
}

// buildReportEnvelope is the report-side twin of buildCaseEnvelope.
func buildReportEnvelope(res *repository.ReportListResult, f repository.ReportFilters, skip, limit int64) models.ReportEnvelope {
	return models.ReportEnvelope{
		Reports:    res.Reports,
		Pagination: buildPagination(res.TotalCount, skip, limit, res.ReturnedCount),
		FiltersApplied: map[string]*string{
			"status":    echo(f.Status),
			"country":   echo(f.Country),
			"city":      echo(f.City),
			"date_from": echo(f.DateFrom),
			"date_to":   echo(f.DateTo),
		},
	}
}

// echo maps "" to null in the filters_applied block.
func echo(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
