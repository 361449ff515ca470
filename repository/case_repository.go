package repository

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/JalilAbdallah/hrm-backend/database"
	"github.com/JalilAbdallah/hrm-backend/models"
)

// caseIDBase keeps generated ids looking like an established sequence.
const caseIDBase = 4000

// CaseRepository owns the case lifecycle and the active/archived collection
// split. A case is always in exactly one of the two collections.
type CaseRepository struct {
	db *database.Mongo
}

func NewCaseRepository(db *database.Mongo) *CaseRepository {
	return &CaseRepository{db: db}
}

func (r *CaseRepository) active() *mongo.Collection   { return r.db.Col(database.ColCases) }
func (r *CaseRepository) archived() *mongo.Collection { return r.db.Col(database.ColArchivedCases) }
func (r *CaseRepository) history() *mongo.Collection  { return r.db.Col(database.ColStatusHistory) }

// CaseListResult is one page of cases plus the total match count.
type CaseListResult struct {
	Cases         []models.Case
	TotalCount    int64
	ReturnedCount int
}

// Create validates, persists, and appends the initial history entry.
// The caller never chooses the starting status; every case begins as "new".
func (r *CaseRepository) Create(ctx context.Context, in models.CaseCreate) (*models.Case, error) {
	if err := validateCaseCreate(in); err != nil {
		return nil, err
	}

	sourceReports, err := EncodeIDs(in.SourceReports)
	if err != nil {
		return nil, err
	}
	victimIDs, err := EncodeIDs(in.VictimIDs)
	if err != nil {
		return nil, err
	}
	var createdBy primitive.ObjectID
	if in.CreatedBy != "" {
		if createdBy, err = EncodeID(in.CreatedBy); err != nil {
			return nil, err
		}
	}

	caseID, err := r.nextCaseID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := models.Case{
		CaseID:         caseID,
		Title:          strings.TrimSpace(in.Title),
		Description:    in.Description,
		ViolationTypes: in.ViolationTypes,
		Status:         models.CaseStatusNew,
		Priority:       in.Priority,
		Location:       in.Location,
		SourceReports:  sourceReports,
		VictimIDs:      victimIDs,
		CreatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	res, err := r.active().InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert case: %w", err)
	}

	// First ledger entry mirrors the creation status. Best effort: a failure
	// here leaves the case committed with an empty ledger.
	if err := r.appendHistory(ctx, caseID, models.StatusHistoryEntry{
		Status:    models.CaseStatusNew,
		UpdatedAt: now,
		UpdatedBy: createdBy,
	}); err != nil {
		log.Printf("cases: history append failed for %s: %v", caseID, err)
	}

	return r.GetByID(ctx, res.InsertedID.(primitive.ObjectID).Hex())
}

// GetByID fetches from the active collection. Returns (nil, nil) when the
// case is absent; a malformed id is a ValidationError.
func (r *CaseRepository) GetByID(ctx context.Context, id string) (*models.Case, error) {
	return r.getFrom(ctx, r.active(), id)
}

// GetArchivedByID is GetByID against the archived collection.
func (r *CaseRepository) GetArchivedByID(ctx context.Context, id string) (*models.Case, error) {
	return r.getFrom(ctx, r.archived(), id)
}

func (r *CaseRepository) getFrom(ctx context.Context, col *mongo.Collection, id string) (*models.Case, error) {
	oid, err := EncodeID(id)
	if err != nil {
		return nil, err
	}
	var c models.Case
	err = col.FindOne(ctx, bson.M{"_id": oid}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find case %s: %w", id, err)
	}
	return &c, nil
}

// Update applies a partial update to an active case. The updated_at stamp
// is always refreshed, even when no semantic field changed. A status change
// requires an actor for history attribution and pushes a ledger entry.
func (r *CaseRepository) Update(ctx context.Context, id string, u models.CaseUpdate) (*models.Case, error) {
	oid, err := EncodeID(id)
	if err != nil {
		return nil, err
	}
	if u.Empty() {
		return nil, validationf("no fields provided for update")
	}
	if u.Status != nil && u.UpdatedBy == "" {
		return nil, validationf("updated_by is required when changing status")
	}

	var existing models.Case
	if err := r.active().FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find case %s: %w", id, err)
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.ViolationTypes != nil {
		set["violation_types"] = *u.ViolationTypes
	}
	if u.Status != nil {
		set["status"] = *u.Status
	}
	if u.Priority != nil {
		set["priority"] = *u.Priority
	}
	if u.Location != nil {
		set["location"] = *u.Location
	}
	if u.SourceReports != nil {
		ids, err := EncodeIDs(*u.SourceReports)
		if err != nil {
			return nil, err
		}
		set["source_reports"] = ids
	}
	if u.VictimIDs != nil {
		ids, err := EncodeIDs(*u.VictimIDs)
		if err != nil {
			return nil, err
		}
		set["victim_ids"] = ids
	}

	var updatedBy primitive.ObjectID
	if u.UpdatedBy != "" {
		if updatedBy, err = EncodeID(u.UpdatedBy); err != nil {
			return nil, err
		}
		set["updated_by"] = updatedBy
	}

	if _, err := r.active().UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set}); err != nil {
		return nil, fmt.Errorf("update case %s: %w", id, err)
	}

	// Ledger append only when the stored status actually changed. Not
	// transactional with the update above: a crash between the two leaves
	// the ledger one entry behind.
	if u.Status != nil && *u.Status != existing.Status {
		if err := r.appendHistory(ctx, existing.CaseID, models.StatusHistoryEntry{
			Status:    *u.Status,
			UpdatedAt: time.Now().UTC(),
			UpdatedBy: updatedBy,
		}); err != nil {
			log.Printf("cases: history append failed for %s: %v", existing.CaseID, err)
		}
	}

	// Re-read so callers get the stored document, not the in-memory merge.
	// The case can vanish between the update and this read (concurrent
	// archive); that is a not-found, never a nil success.
	updated, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// List returns one page of active cases matching the filters.
func (r *CaseRepository) List(ctx context.Context, f CaseFilters, skip, limit int64) (*CaseListResult, error) {
	return r.listFrom(ctx, r.active(), f, skip, limit)
}

// ListArchived is List against the archived collection.
func (r *CaseRepository) ListArchived(ctx context.Context, f CaseFilters, skip, limit int64) (*CaseListResult, error) {
	return r.listFrom(ctx, r.archived(), f, skip, limit)
}

func (r *CaseRepository) listFrom(ctx context.Context, col *mongo.Collection, f CaseFilters, skip, limit int64) (*CaseListResult, error) {
	predicate, err := BuildCasePredicate(f)
	if err != nil {
		return nil, err
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := col.Find(ctx, predicate, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	defer cur.Close(ctx)

	cases := make([]models.Case, 0, limit)
	if err := cur.All(ctx, &cases); err != nil {
		return nil, fmt.Errorf("decode cases: %w", err)
	}

	total, err := col.CountDocuments(ctx, predicate)
	if err != nil {
		return nil, fmt.Errorf("count cases: %w", err)
	}

	return &CaseListResult{Cases: cases, TotalCount: total, ReturnedCount: len(cases)}, nil
}

// Archive moves a case from the active to the archived collection.
// Returns false when the case is not in the active collection.
func (r *CaseRepository) Archive(ctx context.Context, id string) (bool, error) {
	return r.move(ctx, id, r.active(), r.archived())
}

// Restore is the exact inverse of Archive.
func (r *CaseRepository) Restore(ctx context.Context, id string) (bool, error) {
	return r.move(ctx, id, r.archived(), r.active())
}

// move is the two-phase cross-collection transfer: fetch from source,
// insert into target, delete from source. There is no multi-document
// transaction; if the source delete fails the just-inserted target copy is
// deleted so the case never visibly exists in both collections. If that
// compensating delete also fails the duplication is reported as a
// ConsistencyError and logged as fatal for the operator.
func (r *CaseRepository) move(ctx context.Context, id string, source, target *mongo.Collection) (bool, error) {
	oid, err := EncodeID(id)
	if err != nil {
		return false, err
	}

	var doc models.Case
	if err := source.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, fmt.Errorf("find case %s: %w", id, err)
	}

	if _, err := target.InsertOne(ctx, doc); err != nil {
		return false, fmt.Errorf("insert case %s into %s: %w", id, target.Name(), err)
	}

	if _, err := source.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		if _, compErr := target.DeleteOne(ctx, bson.M{"_id": oid}); compErr != nil {
			cerr := &ConsistencyError{
				CaseID: doc.CaseID,
				Err:    fmt.Errorf("source delete failed (%v) and target compensation failed (%v)", err, compErr),
			}
			log.Printf("cases: FATAL consistency error, case duplicated across collections: %v", cerr)
			return false, cerr
		}
		return false, fmt.Errorf("delete case %s from %s: %w", id, source.Name(), err)
	}

	return true, nil
}

// GetStatusHistory returns the ordered ledger for a human-readable case id,
// or an empty slice when no ledger exists yet.
func (r *CaseRepository) GetStatusHistory(ctx context.Context, caseID string) ([]models.StatusHistoryEntry, error) {
	var ledger models.CaseStatusHistory
	err := r.history().FindOne(ctx, bson.M{"case_id": caseID}).Decode(&ledger)
	if err == mongo.ErrNoDocuments {
		return []models.StatusHistoryEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find history %s: %w", caseID, err)
	}
	return ledger.History, nil
}

// appendHistory upserts the ledger document and pushes one entry. Entries
// are never reordered or deduplicated.
func (r *CaseRepository) appendHistory(ctx context.Context, caseID string, entry models.StatusHistoryEntry) error {
	_, err := r.history().UpdateOne(ctx,
		bson.M{"case_id": caseID},
		bson.M{"$push": bson.M{"history": entry}},
		options.Update().SetUpsert(true),
	)
	return err
}

// nextCaseID derives HRM-<year>-<seq> from the combined size of both
// collections. Not serialized: two concurrent creates can observe the same
// counts and collide; the unique index on case_id turns that into an
// insert error rather than silent duplication.
func (r *CaseRepository) nextCaseID(ctx context.Context) (string, error) {
	activeCount, err := r.active().CountDocuments(ctx, bson.M{})
	if err != nil {
		return "", fmt.Errorf("count active cases: %w", err)
	}
	archivedCount, err := r.archived().CountDocuments(ctx, bson.M{})
	if err != nil {
		return "", fmt.Errorf("count archived cases: %w", err)
	}
	seq := caseIDBase + activeCount + archivedCount + 1
	return fmt.Sprintf("HRM-%d-%d", time.Now().UTC().Year(), seq), nil
}

func validateCaseCreate(in models.CaseCreate) error {
	if strings.TrimSpace(in.Title) == "" {
		return validationf("missing required field: title")
	}
	if strings.TrimSpace(in.Description) == "" {
		return validationf("missing required field: description")
	}
	if len(in.ViolationTypes) == 0 {
		return validationf("missing required field: violation_types")
	}
	if strings.TrimSpace(in.Priority) == "" {
		return validationf("missing required field: priority")
	}
	if strings.TrimSpace(in.Location.Country) == "" {
		return validationf("missing required field: location.country")
	}
	return nil
}
