package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/JalilAbdallah/hrm-backend/database"
)

// ValidViolationTypes is the closed set accepted by trend queries.
var ValidViolationTypes = []string{
	"attack_on_medical",
	"attack_on_education",
	"war_crimes",
	"civilian_targeting",
	"infrastructure_damage",
	"other",
}

// AnalyticsRepository runs read-only aggregations over the same
// collections the CRUD repositories own.
type AnalyticsRepository struct {
	db *database.Mongo
}

func NewAnalyticsRepository(db *database.Mongo) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) cases() *mongo.Collection   { return r.db.Col(database.ColCases) }
func (r *AnalyticsRepository) reports() *mongo.Collection { return r.db.Col(database.ColReports) }
func (r *AnalyticsRepository) victims() *mongo.Collection { return r.db.Col(database.ColIndividuals) }

// StatusCount is a status bucket from a group-by.
type StatusCount struct {
	Status string `bson:"_id" json:"status"`
	Count  int64  `bson:"count" json:"count"`
}

// RiskLevelCount buckets individuals by risk level.
type RiskLevelCount struct {
	RiskLevel string `bson:"_id" json:"risk_level"`
	Count     int64  `bson:"count" json:"count"`
}

// ViolationCount buckets reports by violation type.
type ViolationCount struct {
	ViolationType string `bson:"_id" json:"violation_type"`
	Count         int64  `bson:"count" json:"count"`
}

// Dashboard is the front-page summary.
type Dashboard struct {
	TotalCases      int64            `json:"total_cases"`
	TotalReports    int64            `json:"total_reports"`
	TotalVictims    int64            `json:"total_victims"`
	CasesByStatus   []StatusCount    `json:"cases_by_status"`
	ReportsByStatus []StatusCount    `json:"reports_by_status"`
	VictimsByRisk   []RiskLevelCount `json:"victims_by_risk"`
	RecentActivity  map[string]int64 `json:"recent_activity"`
}

// Dashboard aggregates totals, distributions, and 30-day activity.
func (r *AnalyticsRepository) Dashboard(ctx context.Context) (*Dashboard, error) {
	totalCases, err := r.cases().CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count cases: %w", err)
	}
	totalReports, err := r.reports().CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}
	totalVictims, err := r.victims().CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count victims: %w", err)
	}

	casesByStatus, err := r.statusDistribution(ctx, r.cases(), "$status")
	if err != nil {
		return nil, err
	}
	reportsByStatus, err := r.statusDistribution(ctx, r.reports(), "$status")
	if err != nil {
		return nil, err
	}

	var victimsByRisk []RiskLevelCount
	if err := r.groupCount(ctx, r.victims(), "$risk_assessment.level", &victimsByRisk); err != nil {
		return nil, err
	}

	thirtyDaysAgo := time.Now().UTC().AddDate(0, 0, -30)
	recentCases, err := r.cases().CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": thirtyDaysAgo}})
	if err != nil {
		return nil, fmt.Errorf("count recent cases: %w", err)
	}
	recentReports, err := r.reports().CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": thirtyDaysAgo}})
	if err != nil {
		return nil, fmt.Errorf("count recent reports: %w", err)
	}

	return &Dashboard{
		TotalCases:      totalCases,
		TotalReports:    totalReports,
		TotalVictims:    totalVictims,
		CasesByStatus:   casesByStatus,
		ReportsByStatus: reportsByStatus,
		VictimsByRisk:   victimsByRisk,
		RecentActivity: map[string]int64{
			"new_cases":   recentCases,
			"new_reports": recentReports,
		},
	}, nil
}

// ViolationsResult is the violation-type breakdown over reports.
type ViolationsResult struct {
	Data            []ViolationCount `json:"data"`
	TotalViolations int64            `json:"total_violations"`
	UniqueTypes     int              `json:"unique_types"`
}

// ViolationFilters narrow the violations aggregation.
type ViolationFilters struct {
	DateFrom      string
	DateTo        string
	Country       string
	City          string
	ViolationType string
}

// Violations unwinds report violation types and counts each.
func (r *AnalyticsRepository) Violations(ctx context.Context, f ViolationFilters) (*ViolationsResult, error) {
	match := bson.M{}
	if f.Country != "" {
		match["incident_details.location.country"] = f.Country
	}
	if f.City != "" {
		match["incident_details.location.city"] = f.City
	}
	if f.ViolationType != "" {
		match["incident_details.violation_types"] = f.ViolationType
	}
	dateQ, err := buildDateRange(f.DateFrom, f.DateTo)
	if err != nil {
		return nil, err
	}
	if len(dateQ) > 0 {
		match["incident_details.date_occurred"] = dateQ
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$unwind", Value: "$incident_details.violation_types"}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$incident_details.violation_types",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cur, err := r.reports().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("violations aggregate: %w", err)
	}
	defer cur.Close(ctx)

	counts := []ViolationCount{}
	if err := cur.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("decode violations: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c.Count
	}
	return &ViolationsResult{Data: counts, TotalViolations: total, UniqueTypes: len(counts)}, nil
}

// GeoPointCount is one map pin: a location with its incident count.
type GeoPointCount struct {
	Location       map[string]float64 `json:"location"`
	Region         string             `json:"region"`
	Country        string             `json:"country"`
	IncidentCount  int64              `json:"incident_count"`
	ViolationTypes []string           `json:"violation_types"`
}

// GeodataResult is the map layer payload.
type GeodataResult struct {
	Data           []GeoPointCount `json:"data"`
	TotalLocations int             `json:"total_locations"`
}

// Geodata groups reports by country/city/coordinates for map rendering.
func (r *AnalyticsRepository) Geodata(ctx context.Context, violationType, country string) (*GeodataResult, error) {
	match := bson.M{}
	if country != "" {
		match["incident_details.location.country"] = country
	}
	if violationType != "" {
		match["incident_details.violation_types"] = violationType
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"country":     "$incident_details.location.country",
				"city":        "$incident_details.location.city",
				"coordinates": "$incident_details.location.coordinates.coordinates",
			},
			"incident_count": bson.M{"$sum": 1},
			"violation_types": bson.M{
				"$addToSet": bson.M{"$arrayElemAt": bson.A{"$incident_details.violation_types", 0}},
			},
		}}},
		{{Key: "$match", Value: bson.M{
			"_id.coordinates": bson.M{"$exists": true, "$ne": nil},
			"_id.country":     bson.M{"$exists": true, "$ne": nil},
			"_id.city":        bson.M{"$exists": true, "$ne": nil},
		}}},
		{{Key: "$sort", Value: bson.M{"incident_count": -1}}},
	}

	cur, err := r.reports().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("geodata aggregate: %w", err)
	}
	defer cur.Close(ctx)

	var raw []struct {
		ID struct {
			Country     string    `bson:"country"`
			City        string    `bson:"city"`
			Coordinates []float64 `bson:"coordinates"`
		} `bson:"_id"`
		IncidentCount  int64    `bson:"incident_count"`
		ViolationTypes []string `bson:"violation_types"`
	}
	if err := cur.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("decode geodata: %w", err)
	}

	points := []GeoPointCount{}
	for _, item := range raw {
		if len(item.ID.Coordinates) < 2 {
			continue
		}
		points = append(points, GeoPointCount{
			// GeoJSON stores [lng, lat].
			Location:       map[string]float64{"lat": item.ID.Coordinates[1], "lng": item.ID.Coordinates[0]},
			Region:         item.ID.City,
			Country:        item.ID.Country,
			IncidentCount:  item.IncidentCount,
			ViolationTypes: item.ViolationTypes,
		})
	}

	return &GeodataResult{Data: points, TotalLocations: len(points)}, nil
}

// YearlyTrend is one year's violation breakdown, zero-filled for every
// requested type.
type YearlyTrend struct {
	Year            int              `json:"year"`
	Violations      []ViolationCount `json:"violations"`
	TotalViolations int64            `json:"total_violations"`
}

// TrendsResult is the multi-year trend payload.
type TrendsResult struct {
	Data                    []YearlyTrend `json:"data"`
	YearsAnalyzed           int           `json:"years_analyzed"`
	ViolationTypesIncluded  []string      `json:"violation_types_included"`
	TotalViolationsAllYears int64         `json:"total_violations_all_years"`
}

// Trends buckets reports by year and violation type over [yearFrom, yearTo].
func (r *AnalyticsRepository) Trends(ctx context.Context, yearFrom, yearTo int, violationTypes []string) (*TrendsResult, error) {
	if yearTo == 0 {
		yearTo = time.Now().UTC().Year()
	}
	if yearFrom > yearTo {
		return nil, validationf("year_from cannot be greater than year_to")
	}

	target := violationTypes
	if len(target) == 0 {
		target = ValidViolationTypes
	}
	for _, vt := range target {
		if !containsString(ValidViolationTypes, vt) {
			return nil, validationf("invalid violation type: %s", vt)
		}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"incident_details.date_occurred": bson.M{
				"$gte": time.Date(yearFrom, 1, 1, 0, 0, 0, 0, time.UTC),
				"$lte": time.Date(yearTo, 12, 31, 23, 59, 59, 0, time.UTC),
			},
		}}},
		{{Key: "$addFields", Value: bson.M{
			"year": bson.M{"$year": "$incident_details.date_occurred"},
		}}},
		{{Key: "$unwind", Value: "$incident_details.violation_types"}},
		{{Key: "$match", Value: bson.M{
			"incident_details.violation_types": bson.M{"$in": target},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":           "$year",
				"violation_type": "$incident_details.violation_types",
			},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "_id.year", Value: 1},
			{Key: "_id.violation_type", Value: 1},
		}}},
	}

	cur, err := r.reports().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("trends aggregate: %w", err)
	}
	defer cur.Close(ctx)

	var raw []struct {
		ID struct {
			Year          int    `bson:"year"`
			ViolationType string `bson:"violation_type"`
		} `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := cur.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("decode trends: %w", err)
	}

	perYear := map[int]map[string]int64{}
	for y := yearFrom; y <= yearTo; y++ {
		perYear[y] = map[string]int64{}
		for _, vt := range target {
			perYear[y][vt] = 0
		}
	}

	var grandTotal int64
	for _, item := range raw {
		if counts, ok := perYear[item.ID.Year]; ok {
			counts[item.ID.ViolationType] += item.Count
			grandTotal += item.Count
		}
	}

	data := make([]YearlyTrend, 0, yearTo-yearFrom+1)
	for y := yearFrom; y <= yearTo; y++ {
		violations := make([]ViolationCount, 0, len(target))
		var yearTotal int64
		for vt, count := range perYear[y] {
			violations = append(violations, ViolationCount{ViolationType: vt, Count: count})
			yearTotal += count
		}
		sort.Slice(violations, func(i, j int) bool {
			return violations[i].ViolationType < violations[j].ViolationType
		})
		data = append(data, YearlyTrend{Year: y, Violations: violations, TotalViolations: yearTotal})
	}

	return &TrendsResult{
		Data:                    data,
		YearsAnalyzed:           yearTo - yearFrom + 1,
		ViolationTypesIncluded:  target,
		TotalViolationsAllYears: grandTotal,
	}, nil
}

func (r *AnalyticsRepository) statusDistribution(ctx context.Context, col *mongo.Collection, field string) ([]StatusCount, error) {
	var out []StatusCount
	if err := r.groupCount(ctx, col, field, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AnalyticsRepository) groupCount(ctx context.Context, col *mongo.Collection, field string, out any) error {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": field, "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("group %s: %w", field, err)
	}
	defer cur.Close(ctx)
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s groups: %w", field, err)
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
