package controllers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/JalilAbdallah/hrm-backend/models"
	"github.com/JalilAbdallah/hrm-backend/repository"
)

// ReportController exposes incident-report CRUD plus evidence upload.
type ReportController struct {
	repo      *repository.ReportRepository
	uploadDir string
}

func NewReportController(repo *repository.ReportRepository, uploadDir string) *ReportController {
	return &ReportController{repo: repo, uploadDir: uploadDir}
}

func reportFiltersFrom(c *fiber.Ctx) repository.ReportFilters {
	return repository.ReportFilters{
		Status:   c.Query("status"),
		Country:  c.Query("country"),
		City:     c.Query("city"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}
}

// List handles GET /reports/.
func (rt *ReportController) List(c *fiber.Ctx) error {
	filters := reportFiltersFrom(c)
	skip, limit := parsePage(c)

	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	res, err := rt.repo.List(ctx, filters, skip, limit)
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(buildReportEnvelope(res, filters, skip, limit))
}

// Create handles POST /reports/.
func (rt *ReportController) Create(c *fiber.Ctx) error {
	var in models.ReportCreate
	if err := c.BodyParser(&in); err != nil {
		return badReq(c, "invalid JSON")
	}

	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	created, err := rt.repo.Create(ctx, in)
	if err != nil {
		return repoErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Report created successfully",
		"report":  created,
	})
}

// Get handles GET /reports/:id (storage id, not report_id).
func (rt *ReportController) Get(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	found, err := rt.repo.GetByID(ctx, c.Params("id"))
	if err != nil {
		return repoErr(c, err)
	}
	if found == nil {
		return notFound(c, "report not found")
	}
	return c.JSON(found)
}

// UpdateStatus handles PATCH /reports/:report_id/status.
func (rt *ReportController) UpdateStatus(c *fiber.Ctx) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badReq(c, "invalid JSON")
	}

	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	updated, err := rt.repo.UpdateStatus(ctx, c.Params("report_id"), body.Status)
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Report status updated",
		"report":  updated,
	})
}

// UploadEvidence handles POST /reports/:report_id/evidence with
// multipart/form-data. Every file under an "evidence"-prefixed key is
// stored in the upload dir and referenced on the report.
func (rt *ReportController) UploadEvidence(c *fiber.Ctx) error {
	if !strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		return c.Status(fiber.StatusUnsupportedMediaType).
			JSON(models.ErrorResp{OK: false, Error: "expected multipart/form-data"})
	}

	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return badReq(c, "invalid multipart form")
	}
	description := strings.TrimSpace(c.FormValue("description"))

	var saved []models.Evidence
	for key, files := range form.File {
		if !strings.HasPrefix(key, "evidence") {
			continue
		}
		for _, fh := range files {
			url, err := rt.saveFormFile("evidence", fh)
			if err != nil {
				return serverErr(c, err)
			}
			saved = append(saved, models.Evidence{
				Type:        evidenceType(fh.Filename),
				URL:         url,
				Description: description,
				UploadedAt:  time.Now().UTC(),
			})
		}
	}
	if len(saved) == 0 {
		return badReq(c, "no evidence files supplied")
	}

	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	reportID := c.Params("report_id")
	for _, ev := range saved {
		if err := rt.repo.AttachEvidence(ctx, reportID, ev); err != nil {
			return repoErr(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"message":  "Evidence uploaded",
		"evidence": saved,
	})
}

func (rt *ReportController) saveFormFile(prefix string, f *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(f.Filename))
	if len(ext) > 8 {
		ext = ext[:8]
	}
	name := fmt.Sprintf("%s_%d_%s%s", prefix, time.Now().UnixNano(), randString(6), ext)
	dst := filepath.Join(rt.uploadDir, name)
	if err := cpyFile(f, dst); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

func cpyFile(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

func evidenceType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return "photo"
	case ".mp4", ".mov", ".avi":
		return "video"
	case ".mp3", ".wav", ".ogg", ".m4a":
		return "audio"
	case ".pdf", ".doc", ".docx", ".txt":
		return "document"
	default:
		return "file"
	}
}

// randString returns a short random hex string of length n.
func randString(n int) string {
	if n <= 0 {
		n = 6
	}
	b := make([]byte, (n+1)/2)
	_, _ = rand.Read(b)
	s := hex.EncodeToString(b)
	if len(s) > n {
		return s[:n]
	}
	return s
}
