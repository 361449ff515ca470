package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/JalilAbdallah/hrm-backend/config"
	"github.com/JalilAbdallah/hrm-backend/database"
	"github.com/JalilAbdallah/hrm-backend/models"
	"github.com/JalilAbdallah/hrm-backend/repository"
)

// CaseEndpointsSuite drives the case handlers over HTTP against a real
// MongoDB, gated on HRM_TEST_MONGO_URI like the repository suites. Auth
// middleware is deliberately absent; these tests cover handler contracts,
// not route gating.
type CaseEndpointsSuite struct {
	suite.Suite
	db  *database.Mongo
	app *fiber.App
	ctx context.Context
}

func TestCaseEndpointsSuite(t *testing.T) {
	if os.Getenv("HRM_TEST_MONGO_URI") == "" {
		t.Skip("HRM_TEST_MONGO_URI not set, skipping integration tests")
	}
	suite.Run(t, new(CaseEndpointsSuite))
}

func (s *CaseEndpointsSuite) SetupSuite() {
	s.ctx = context.Background()
	db, err := database.Open(s.ctx, config.MongoConfig{
		Mode:   "local",
		URI:    os.Getenv("HRM_TEST_MONGO_URI"),
		DBName: "hrm_test",
	})
	s.Require().NoError(err)
	s.db = db

	ct := NewCaseController(repository.NewCaseRepository(db))
	app := fiber.New()
	app.Post("/cases/", ct.Create)
	app.Get("/cases/", ct.List)
	app.Get("/cases/archive/", ct.ListArchived)
	app.Get("/cases/archive/:id", ct.GetArchived)
	app.Post("/cases/archive/:id/restore", ct.Restore)
	app.Get("/cases/history/:id", ct.History)
	app.Get("/cases/:id", ct.Get)
	app.Patch("/cases/:id", ct.Update)
	app.Delete("/cases/:id", ct.Archive)
	s.app = app
}

func (s *CaseEndpointsSuite) TearDownSuite() {
	if s.db != nil {
		_ = s.db.Col(database.ColCases).Database().Drop(s.ctx)
		_ = s.db.Close(s.ctx)
	}
}

func (s *CaseEndpointsSuite) SetupTest() {
	for _, col := range []string{database.ColCases, database.ColArchivedCases, database.ColStatusHistory} {
		_, err := s.db.Col(col).DeleteMany(s.ctx, bson.M{})
		s.Require().NoError(err)
	}
}

func (s *CaseEndpointsSuite) do(method, path string, body any) (int, []byte) {
	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		s.Require().NoError(err)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := s.app.Test(req, 15000)
	s.Require().NoError(err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, raw
}

func (s *CaseEndpointsSuite) createCase() models.Case {
	code, raw := s.do(http.MethodPost, "/cases/", fiber.Map{
		"title":           "Destruction of civilian infrastructure",
		"description":     "Targeted strikes on a water treatment facility.",
		"violation_types": []string{"infrastructure_destruction"},
		"priority":        models.PriorityHigh,
		"location":        fiber.Map{"country": "Testland"},
	})
	s.Require().Equal(http.StatusCreated, code, string(raw))

	var out models.CaseMutationResp
	s.Require().NoError(json.Unmarshal(raw, &out))
	s.Require().NotNil(out.Case)
	return *out.Case
}

func (s *CaseEndpointsSuite) TestRestoreRespondsWithHumanReadableCaseID() {
	created := s.createCase()
	id := created.ID.Hex()

	code, raw := s.do(http.MethodDelete, "/cases/"+id, nil)
	s.Require().Equal(http.StatusOK, code, string(raw))

	code, raw = s.do(http.MethodPost, "/cases/archive/"+id+"/restore", nil)
	s.Require().Equal(http.StatusOK, code, string(raw))

	var out models.RestoreResp
	s.Require().NoError(json.Unmarshal(raw, &out))
	s.Equal(created.CaseID, out.CaseID)
	s.True(strings.HasPrefix(out.CaseID, "HRM-"), "case_id %q is not the human-readable id", out.CaseID)

	// restoring from an empty archive is a 404, never a fabricated success
	code, _ = s.do(http.MethodPost, "/cases/archive/"+id+"/restore", nil)
	s.Equal(http.StatusNotFound, code)
}

func (s *CaseEndpointsSuite) TestUpdateNeverAnswersWithNullCase() {
	created := s.createCase()
	id := created.ID.Hex()

	code, raw := s.do(http.MethodPatch, "/cases/"+id, fiber.Map{"title": "Renamed"})
	s.Require().Equal(http.StatusOK, code, string(raw))

	var out models.CaseMutationResp
	s.Require().NoError(json.Unmarshal(raw, &out))
	s.Require().NotNil(out.Case, "successful update must carry the case body")
	s.Equal("Renamed", out.Case.Title)

	// once the case has left the active collection the update is a 404,
	// not a 200 with a null case
	code, raw = s.do(http.MethodDelete, "/cases/"+id, nil)
	s.Require().Equal(http.StatusOK, code, string(raw))

	code, _ = s.do(http.MethodPatch, "/cases/"+id, fiber.Map{"title": "Renamed again"})
	s.Equal(http.StatusNotFound, code)
}
