package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Risk levels for victims/witnesses.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Demographics of a victim or witness.
type Demographics struct {
	Gender     string `bson:"gender,omitempty" json:"gender,omitempty"`
	Age        int    `bson:"age,omitempty" json:"age,omitempty"`
	Occupation string `bson:"occupation,omitempty" json:"occupation,omitempty"`
	Ethnicity  string `bson:"ethnicity,omitempty" json:"ethnicity,omitempty"`
}

// ContactInfo is never serialized for anonymous individuals.
type ContactInfo struct {
	Email           string `bson:"email,omitempty" json:"email,omitempty"`
	Phone           string `bson:"phone,omitempty" json:"phone,omitempty"`
	SecureMessaging string `bson:"secure_messaging,omitempty" json:"secure_messaging,omitempty"`
}

// RiskAssessment captures the current threat picture for an individual.
type RiskAssessment struct {
	Level            string   `bson:"level" json:"level"`
	Threats          []string `bson:"threats" json:"threats"`
	ProtectionNeeded bool     `bson:"protection_needed" json:"protection_needed"`
}

// SupportService is one service engaged for the individual.
type SupportService struct {
	Type     string `bson:"type" json:"type"`
	Provider string `bson:"provider" json:"provider"`
	Status   string `bson:"status" json:"status"`
}

// CreationContext records where an individual record originated.
type CreationContext struct {
	SourceReport   primitive.ObjectID `bson:"source_report,omitempty" json:"source_report,omitempty"`
	SourceCase     primitive.ObjectID `bson:"source_case,omitempty" json:"source_case,omitempty"`
	CreatedByAdmin primitive.ObjectID `bson:"created_by_admin,omitempty" json:"created_by_admin,omitempty"`
}

// Victim is a person record (victim or witness) linked to cases by
// reference. ContactInfo is dropped on read when Anonymous is set.
type Victim struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Type            string               `bson:"type" json:"type"` // victim | witness
	Name            string               `bson:"name" json:"name"`
	Anonymous       bool                 `bson:"anonymous" json:"anonymous"`
	Demographics    Demographics         `bson:"demographics" json:"demographics"`
	ContactInfo     *ContactInfo         `bson:"contact_info,omitempty" json:"contact_info,omitempty"`
	RiskAssessment  RiskAssessment       `bson:"risk_assessment" json:"risk_assessment"`
	SupportServices []SupportService     `bson:"support_services" json:"support_services"`
	CreationContext CreationContext      `bson:"creation_context" json:"creation_context"`
	CasesInvolved   []primitive.ObjectID `bson:"cases_involved,omitempty" json:"cases_involved,omitempty"`
	CreatedAt       time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time            `bson:"updated_at" json:"updated_at"`
}

// RiskUpdate is the partial payload for PATCH /victims/{id}; nil fields are
// left untouched.
type RiskUpdate struct {
	Level            *string   `json:"level,omitempty"`
	Threats          *[]string `json:"threats,omitempty"`
	ProtectionNeeded *bool     `json:"protection_needed,omitempty"`
}
