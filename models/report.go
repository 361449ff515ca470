package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report statuses. Reports use "open" where cases use "under_investigation".
const (
	ReportStatusNew    = "new"
	ReportStatusOpen   = "open"
	ReportStatusClosed = "closed"
)

// GeoPoint is a GeoJSON point: coordinates are [lng, lat].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// IncidentLocation extends the shared location with geocoordinates.
type IncidentLocation struct {
	Country     string    `bson:"country" json:"country"`
	Region      string    `bson:"region,omitempty" json:"region,omitempty"`
	City        string    `bson:"city,omitempty" json:"city,omitempty"`
	Coordinates *GeoPoint `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

// IncidentDetails is the embedded account of what happened.
type IncidentDetails struct {
	Title            string           `bson:"title" json:"title"`
	Description      string           `bson:"description" json:"description"`
	DateOccurred     time.Time        `bson:"date_occurred" json:"date_occurred"`
	Location         IncidentLocation `bson:"location" json:"location"`
	ViolationTypes   []string         `bson:"violation_types" json:"violation_types"`
	EstimatedVictims int              `bson:"estimated_victims,omitempty" json:"estimated_victims,omitempty"`
}

// VictimStub is an embedded, unverified mention of a person in a report.
type VictimStub struct {
	Name       string `bson:"name,omitempty" json:"name,omitempty"`
	Gender     string `bson:"gender,omitempty" json:"gender,omitempty"`
	Age        int    `bson:"age,omitempty" json:"age,omitempty"`
	Occupation string `bson:"occupation,omitempty" json:"occupation,omitempty"`
}

// Evidence is a reference to an uploaded file.
type Evidence struct {
	Type        string    `bson:"type" json:"type"`
	URL         string    `bson:"url" json:"url"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	UploadedAt  time.Time `bson:"uploaded_at" json:"uploaded_at"`
}

// IncidentReport is a single submitted account of a violation. Created once,
// status-patched thereafter; never archived or deleted.
type IncidentReport struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ReportID      string              `bson:"report_id" json:"report_id"`
	InstitutionID primitive.ObjectID  `bson:"institution_id" json:"institution_id"`
	Anonymous     bool                `bson:"anonymous" json:"anonymous"`
	Details       IncidentDetails     `bson:"incident_details" json:"incident_details"`
	Victims       []VictimStub        `bson:"victims,omitempty" json:"victims,omitempty"`
	Evidence      []Evidence          `bson:"evidence,omitempty" json:"evidence,omitempty"`
	AssignedAdmin *primitive.ObjectID `bson:"assigned_admin" json:"assigned_admin"`
	LinkedCaseID  *primitive.ObjectID `bson:"linked_case_id" json:"linked_case_id"`
	Status        string              `bson:"status" json:"status"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
}

// ReportCreate is the payload for POST /reports.
type ReportCreate struct {
	ReportID      string          `json:"report_id,omitempty"`
	InstitutionID string          `json:"institution_id"`
	Anonymous     bool            `json:"anonymous"`
	Details       IncidentDetails `json:"incident_details"`
	Victims       []VictimStub    `json:"victims,omitempty"`
}
