package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/JalilAbdallah/hrm-backend/config"
	"github.com/JalilAbdallah/hrm-backend/database"
	"github.com/JalilAbdallah/hrm-backend/models"
)

// SiblingRepositoriesSuite covers the single-collection repositories.
// Gated the same way as CaseRepositorySuite.
type SiblingRepositoriesSuite struct {
	suite.Suite
	db      *database.Mongo
	reports *ReportRepository
	victims *VictimRepository
	ctx     context.Context
}

func TestSiblingRepositoriesSuite(t *testing.T) {
	if os.Getenv("HRM_TEST_MONGO_URI") == "" {
		t.Skip("HRM_TEST_MONGO_URI not set, skipping integration tests")
	}
	suite.Run(t, new(SiblingRepositoriesSuite))
}

func (s *SiblingRepositoriesSuite) SetupSuite() {
	s.ctx = context.Background()
	db, err := database.Open(s.ctx, config.MongoConfig{
		Mode:   "local",
		URI:    os.Getenv("HRM_TEST_MONGO_URI"),
		DBName: "hrm_test",
	})
	s.Require().NoError(err)
	s.db = db
	s.reports = NewReportRepository(db)
	s.victims = NewVictimRepository(db)
}

func (s *SiblingRepositoriesSuite) TearDownSuite() {
	if s.db != nil {
		_ = s.db.Col(database.ColReports).Database().Drop(s.ctx)
		_ = s.db.Close(s.ctx)
	}
}

func (s *SiblingRepositoriesSuite) SetupTest() {
	for _, col := range []string{database.ColReports, database.ColIndividuals} {
		_, err := s.db.Col(col).DeleteMany(s.ctx, bson.M{})
		s.Require().NoError(err)
	}
}

func validReport() models.ReportCreate {
	return models.ReportCreate{
		InstitutionID: primitive.NewObjectID().Hex(),
		Anonymous:     false,
		Details: models.IncidentDetails{
			Title:          "Checkpoint detention",
			Description:    "Three civilians detained overnight.",
			DateOccurred:   time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC),
			Location:       models.IncidentLocation{Country: "Testland", City: "Port City"},
			ViolationTypes: []string{"civilian_targeting"},
		},
	}
}

func (s *SiblingRepositoriesSuite) TestReportCreateForcesNewStatus() {
	created, err := s.reports.Create(s.ctx, validReport())
	s.Require().NoError(err)

	s.Equal(models.ReportStatusNew, created.Status)
	s.NotEmpty(created.ReportID)
	s.Nil(created.AssignedAdmin)
	s.Nil(created.LinkedCaseID)

	fetched, err := s.reports.GetByID(s.ctx, created.ID.Hex())
	s.Require().NoError(err)
	s.Require().NotNil(fetched)
	s.Equal(created.ReportID, fetched.ReportID)
}

func (s *SiblingRepositoriesSuite) TestReportCreateValidation() {
	in := validReport()
	in.InstitutionID = ""
	_, err := s.reports.Create(s.ctx, in)
	s.True(IsValidation(err))

	in = validReport()
	in.InstitutionID = "not-hex"
	_, err = s.reports.Create(s.ctx, in)
	s.True(IsValidation(err))
}

func (s *SiblingRepositoriesSuite) TestReportStatusPatchByReportID() {
	created, err := s.reports.Create(s.ctx, validReport())
	s.Require().NoError(err)

	updated, err := s.reports.UpdateStatus(s.ctx, created.ReportID, models.ReportStatusOpen)
	s.Require().NoError(err)
	s.Equal(models.ReportStatusOpen, updated.Status)
	s.True(updated.UpdatedAt.After(created.CreatedAt) || updated.UpdatedAt.Equal(created.CreatedAt))

	_, err = s.reports.UpdateStatus(s.ctx, created.ReportID, "solved")
	s.True(IsValidation(err), "unknown status")

	_, err = s.reports.UpdateStatus(s.ctx, "IR-missing", models.ReportStatusClosed)
	s.ErrorIs(err, ErrNotFound)
}

func (s *SiblingRepositoriesSuite) TestAttachEvidence() {
	created, err := s.reports.Create(s.ctx, validReport())
	s.Require().NoError(err)

	ev := models.Evidence{Type: "photo", URL: "/uploads/x.jpg", UploadedAt: time.Now().UTC()}
	s.Require().NoError(s.reports.AttachEvidence(s.ctx, created.ReportID, ev))

	fetched, err := s.reports.GetByID(s.ctx, created.ID.Hex())
	s.Require().NoError(err)
	s.Require().Len(fetched.Evidence, 1)
	s.Equal("/uploads/x.jpg", fetched.Evidence[0].URL)

	s.ErrorIs(s.reports.AttachEvidence(s.ctx, "IR-missing", ev), ErrNotFound)
}

func validVictim(anonymous bool) models.Victim {
	return models.Victim{
		Type:      "victim",
		Name:      "A. Person",
		Anonymous: anonymous,
		ContactInfo: &models.ContactInfo{
			Email: "contact@example.org",
		},
		RiskAssessment: models.RiskAssessment{
			Level:   models.RiskMedium,
			Threats: []string{"intimidation"},
		},
	}
}

func (s *SiblingRepositoriesSuite) TestAnonymousVictimContactSuppressed() {
	id, err := s.victims.Create(s.ctx, validVictim(true))
	s.Require().NoError(err)

	fetched, err := s.victims.GetByID(s.ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(fetched)
	s.Nil(fetched.ContactInfo, "anonymous contact info must not surface")

	id, err = s.victims.Create(s.ctx, validVictim(false))
	s.Require().NoError(err)
	fetched, err = s.victims.GetByID(s.ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(fetched.ContactInfo)
	s.Equal("contact@example.org", fetched.ContactInfo.Email)
}

func (s *SiblingRepositoriesSuite) TestVictimRiskUpdatePartial() {
	id, err := s.victims.Create(s.ctx, validVictim(false))
	s.Require().NoError(err)

	level := models.RiskHigh
	s.Require().NoError(s.victims.UpdateRisk(s.ctx, id, models.RiskUpdate{Level: &level}))

	fetched, err := s.victims.GetByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(models.RiskHigh, fetched.RiskAssessment.Level)
	// untouched fields survive a partial update
	s.Equal([]string{"intimidation"}, fetched.RiskAssessment.Threats)

	s.True(IsValidation(s.victims.UpdateRisk(s.ctx, id, models.RiskUpdate{})), "empty risk payload")
	s.ErrorIs(s.victims.UpdateRisk(s.ctx, "ffffffffffffffffffffffff", models.RiskUpdate{Level: &level}), ErrNotFound)
}

func (s *SiblingRepositoriesSuite) TestVictimsByCaseMembership() {
	caseID := primitive.NewObjectID()

	v := validVictim(false)
	v.CasesInvolved = []primitive.ObjectID{caseID}
	_, err := s.victims.Create(s.ctx, v)
	s.Require().NoError(err)

	other := validVictim(false)
	_, err = s.victims.Create(s.ctx, other)
	s.Require().NoError(err)

	got, err := s.victims.ListByCase(s.ctx, caseID.Hex())
	s.Require().NoError(err)
	s.Len(got, 1)

	none, err := s.victims.ListByCase(s.ctx, primitive.NewObjectID().Hex())
	s.Require().NoError(err)
	s.Empty(none)
}
