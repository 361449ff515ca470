package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Case statuses. Historical data written before the enum was settled may
// still carry "open"; everything the API writes uses these three.
const (
	CaseStatusNew                = "new"
	CaseStatusUnderInvestigation = "under_investigation"
	CaseStatusClosed             = "closed"
)

// Priorities shared by cases.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Location is the place a case or incident is anchored to. Country is the
// only required part.
type Location struct {
	Country string `bson:"country" json:"country"`
	Region  string `bson:"region,omitempty" json:"region,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
}

// Case is an investigative record aggregating incident reports and victims.
// A case lives in exactly one of the cases / archived_cases collections.
type Case struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	CaseID         string               `bson:"case_id" json:"case_id"`
	Title          string               `bson:"title" json:"title"`
	Description    string               `bson:"description" json:"description"`
	ViolationTypes []string             `bson:"violation_types" json:"violation_types"`
	Status         string               `bson:"status" json:"status"`
	Priority       string               `bson:"priority" json:"priority"`
	Location       Location             `bson:"location" json:"location"`
	SourceReports  []primitive.ObjectID `bson:"source_reports,omitempty" json:"source_reports,omitempty"`
	VictimIDs      []primitive.ObjectID `bson:"victim_ids,omitempty" json:"victim_ids,omitempty"`
	CreatedBy      primitive.ObjectID   `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt      time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time            `bson:"updated_at" json:"updated_at"`
}

// CaseCreate is the payload for POST /cases. Status is intentionally absent:
// a new case always starts as "new" regardless of what the caller wants.
type CaseCreate struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	ViolationTypes []string `json:"violation_types"`
	Priority       string   `json:"priority"`
	Location       Location `json:"location"`
	SourceReports  []string `json:"source_reports,omitempty"`
	VictimIDs      []string `json:"victim_ids,omitempty"`
	CreatedBy      string   `json:"created_by,omitempty"`
}

// CaseUpdate is the partial-update payload for PATCH /cases/{id}. One
// optional slot per updatable field, so field presence is carried by the
// type instead of a map-membership check. UpdatedBy is required whenever
// Status is set, for history attribution.
type CaseUpdate struct {
	Title          *string   `json:"title,omitempty"`
	Description    *string   `json:"description,omitempty"`
	ViolationTypes *[]string `json:"violation_types,omitempty"`
	Status         *string   `json:"status,omitempty"`
	Priority       *string   `json:"priority,omitempty"`
	Location       *Location `json:"location,omitempty"`
	SourceReports  *[]string `json:"source_reports,omitempty"`
	VictimIDs      *[]string `json:"victim_ids,omitempty"`
	UpdatedBy      string    `json:"updated_by,omitempty"`
}

// Empty reports whether no updatable field is present.
func (u CaseUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.ViolationTypes == nil &&
		u.Status == nil && u.Priority == nil && u.Location == nil &&
		u.SourceReports == nil && u.VictimIDs == nil
}
