package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/JalilAbdallah/hrm-backend/database"
	"github.com/JalilAbdallah/hrm-backend/models"
)

// VictimRepository manages victim/witness records. Single collection, no
// archive; individuals are linked to cases by reference only.
type VictimRepository struct {
	db *database.Mongo
}

func NewVictimRepository(db *database.Mongo) *VictimRepository {
	return &VictimRepository{db: db}
}

func (r *VictimRepository) col() *mongo.Collection { return r.db.Col(database.ColIndividuals) }

// Create persists a new individual and returns its id.
func (r *VictimRepository) Create(ctx context.Context, v models.Victim) (string, error) {
	if v.Type != "victim" && v.Type != "witness" {
		return "", validationf("type must be victim or witness")
	}
	now := time.Now().UTC()
	v.ID = primitive.NilObjectID
	v.CreatedAt = now
	v.UpdatedAt = now

	res, err := r.col().InsertOne(ctx, v)
	if err != nil {
		return "", fmt.Errorf("insert victim: %w", err)
	}
	return DecodeID(res.InsertedID.(primitive.ObjectID)), nil
}

// GetByID returns (nil, nil) when absent. Contact info is stripped for
// anonymous individuals so it can never leak through a read path.
func (r *VictimRepository) GetByID(ctx context.Context, id string) (*models.Victim, error) {
	oid, err := EncodeID(id)
	if err != nil {
		return nil, err
	}
	var v models.Victim
	err = r.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find victim %s: %w", id, err)
	}
	if v.Anonymous {
		v.ContactInfo = nil
	}
	return &v, nil
}

// UpdateRisk re-assesses an individual: only the provided risk fields are
// touched. Returns ErrNotFound when the individual does not exist.
func (r *VictimRepository) UpdateRisk(ctx context.Context, id string, u models.RiskUpdate) error {
	oid, err := EncodeID(id)
	if err != nil {
		return err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if u.Level != nil {
		set["risk_assessment.level"] = *u.Level
	}
	if u.Threats != nil {
		set["risk_assessment.threats"] = *u.Threats
	}
	if u.ProtectionNeeded != nil {
		set["risk_assessment.protection_needed"] = *u.ProtectionNeeded
	}
	if len(set) == 1 {
		return validationf("no risk fields provided for update")
	}

	res, err := r.col().UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update risk %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByCase returns every individual whose cases_involved contains the
// given case. Anonymous contact info is stripped here too.
func (r *VictimRepository) ListByCase(ctx context.Context, caseID string) ([]models.Victim, error) {
	oid, err := EncodeID(caseID)
	if err != nil {
		return nil, err
	}

	cur, err := r.col().Find(ctx, bson.M{"cases_involved": oid})
	if err != nil {
		return nil, fmt.Errorf("list victims by case %s: %w", caseID, err)
	}
	defer cur.Close(ctx)

	victims := []models.Victim{}
	if err := cur.All(ctx, &victims); err != nil {
		return nil, fmt.Errorf("decode victims: %w", err)
	}
	for i := range victims {
		if victims[i].Anonymous {
			victims[i].ContactInfo = nil
		}
	}
	return victims, nil
}
