package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/JalilAbdallah/hrm-backend/database"
	"github.com/JalilAbdallah/hrm-backend/models"
)

// ReportRepository is the single-collection sibling of CaseRepository:
// incident reports are created once and status-patched, never archived.
type ReportRepository struct {
	db *database.Mongo
}

func NewReportRepository(db *database.Mongo) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) col() *mongo.Collection { return r.db.Col(database.ColReports) }

// ReportListResult is one page of reports plus the total match count.
type ReportListResult struct {
	Reports       []models.IncidentReport
	TotalCount    int64
	ReturnedCount int
}

// Create persists a new report. Status is forced to "new" and the
// assignment fields start out null; a report id is generated when the
// reporting institution did not supply one.
func (r *ReportRepository) Create(ctx context.Context, in models.ReportCreate) (*models.IncidentReport, error) {
	if strings.TrimSpace(in.InstitutionID) == "" {
		return nil, validationf("missing required field: institution_id")
	}
	if strings.TrimSpace(in.Details.Title) == "" {
		return nil, validationf("missing required field: incident_details.title")
	}
	institutionID, err := EncodeID(in.InstitutionID)
	if err != nil {
		return nil, err
	}

	reportID := strings.TrimSpace(in.ReportID)
	if reportID == "" {
		reportID = "IR-" + uuid.NewString()[:8]
	}

	now := time.Now().UTC()
	doc := models.IncidentReport{
		ReportID:      reportID,
		InstitutionID: institutionID,
		Anonymous:     in.Anonymous,
		Details:       in.Details,
		Victims:       in.Victims,
		AssignedAdmin: nil,
		LinkedCaseID:  nil,
		Status:        models.ReportStatusNew,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	res, err := r.col().InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return &doc, nil
}

// GetByID returns (nil, nil) when absent.
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*models.IncidentReport, error) {
	oid, err := EncodeID(id)
	if err != nil {
		return nil, err
	}
	var rep models.IncidentReport
	err = r.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&rep)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find report %s: %w", id, err)
	}
	return &rep, nil
}

// UpdateStatus patches a report's status by its human-readable report id.
func (r *ReportRepository) UpdateStatus(ctx context.Context, reportID, status string) (*models.IncidentReport, error) {
	switch status {
	case models.ReportStatusNew, models.ReportStatusOpen, models.ReportStatusClosed:
	default:
		return nil, validationf("invalid status %q, must be one of: new, open, closed", status)
	}

	res := r.col().FindOneAndUpdate(ctx,
		bson.M{"report_id": reportID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var rep models.IncidentReport
	if err := res.Decode(&rep); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update report %s: %w", reportID, err)
	}
	return &rep, nil
}

// AttachEvidence appends one evidence reference to a report.
func (r *ReportRepository) AttachEvidence(ctx context.Context, reportID string, ev models.Evidence) error {
	res, err := r.col().UpdateOne(ctx,
		bson.M{"report_id": reportID},
		bson.M{
			"$push": bson.M{"evidence": ev},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("attach evidence to %s: %w", reportID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns one page of reports matching the filters.
func (r *ReportRepository) List(ctx context.Context, f ReportFilters, skip, limit int64) (*ReportListResult, error) {
	predicate, err := BuildReportPredicate(f)
	if err != nil {
		return nil, err
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.col().Find(ctx, predicate, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer cur.Close(ctx)

	reports := make([]models.IncidentReport, 0, limit)
	if err := cur.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}

	total, err := r.col().CountDocuments(ctx, predicate)
	if err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}

	return &ReportListResult{Reports: reports, TotalCount: total, ReturnedCount: len(reports)}, nil
}
