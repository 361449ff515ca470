package repository

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dateLayout = "2006-01-02"

// CaseFilters are the recognized query parameters for case list endpoints.
// Empty string means "no constraint".
type CaseFilters struct {
	Status         string
	Country        string
	Region         string
	ViolationTypes string // comma-separated, AND semantics
	Priority       string
	Search         string
	DateFrom       string // YYYY-MM-DD
	DateTo         string // YYYY-MM-DD, inclusive of the whole day
}

// BuildCasePredicate translates filters into a Mongo predicate. Pure:
// no collection access. An empty filter set matches everything.
func BuildCasePredicate(f CaseFilters) (bson.M, error) {
	q := bson.M{}

	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Priority != "" {
		q["priority"] = f.Priority
	}
	if f.Country != "" {
		q["location.country"] = bson.M{"$regex": primitive.Regex{Pattern: f.Country, Options: "i"}}
	}
	if f.Region != "" {
		q["location.region"] = bson.M{"$regex": primitive.Regex{Pattern: f.Region, Options: "i"}}
	}
	if f.Search != "" {
		q["title"] = bson.M{"$regex": primitive.Regex{Pattern: f.Search, Options: "i"}}
	}
	if types := splitCSV(f.ViolationTypes); len(types) > 0 {
		// $all: the case's set must contain every listed type.
		q["violation_types"] = bson.M{"$all": types}
	}

	dateQ, err := buildDateRange(f.DateFrom, f.DateTo)
	if err != nil {
		return nil, err
	}
	if len(dateQ) > 0 {
		q["created_at"] = dateQ
	}

	return q, nil
}

// ReportFilters are the recognized query parameters for report listing.
type ReportFilters struct {
	Status   string
	Country  string
	City     string
	DateFrom string
	DateTo   string
}

// BuildReportPredicate mirrors BuildCasePredicate for incident reports.
// The date range applies to when the incident occurred, not when the
// report was filed.
func BuildReportPredicate(f ReportFilters) (bson.M, error) {
	q := bson.M{}

	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Country != "" {
		q["incident_details.location.country"] = bson.M{"$regex": primitive.Regex{Pattern: f.Country, Options: "i"}}
	}
	if f.City != "" {
		q["incident_details.location.city"] = bson.M{"$regex": primitive.Regex{Pattern: f.City, Options: "i"}}
	}

	dateQ, err := buildDateRange(f.DateFrom, f.DateTo)
	if err != nil {
		return nil, err
	}
	if len(dateQ) > 0 {
		q["incident_details.date_occurred"] = dateQ
	}

	return q, nil
}

// buildDateRange parses the inclusive range. dateTo is pushed to the end of
// its day so a single day's records are not excluded.
func buildDateRange(from, to string) (bson.M, error) {
	q := bson.M{}
	if from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			return nil, validationf("invalid date format %q, use YYYY-MM-DD", from)
		}
		q["$gte"] = t
	}
	if to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return nil, validationf("invalid date format %q, use YYYY-MM-DD", to)
		}
		q["$lte"] = t.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	}
	return q, nil
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
