package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusHistoryEntry is one status transition on a case.
type StatusHistoryEntry struct {
	Status    string             `bson:"status" json:"status"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
	UpdatedBy primitive.ObjectID `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
}

// CaseStatusHistory is the append-only ledger for a single case, keyed by
// the human-readable case id (HRM-...), not the storage _id. The first entry
// is written at case creation; one more is pushed per observed status change.
type CaseStatusHistory struct {
	ID      primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	CaseID  string               `bson:"case_id" json:"case_id"`
	History []StatusHistoryEntry `bson:"history" json:"history"`
}
