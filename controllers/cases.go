package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/JalilAbdallah/hrm-backend/models"
	"github.com/JalilAbdallah/hrm-backend/repository"
)

const queryTimeout = 8 * time.Second

// CaseController exposes the case lifecycle over HTTP. All storage
// semantics live in the repository; handlers only parse, dispatch, and map
// errors.
type CaseController struct {
	repo *repository.CaseRepository
}

func NewCaseController(repo *repository.CaseRepository) *CaseController {
	return &CaseController{repo: repo}
}

func caseFiltersFrom(c *fiber.Ctx) repository.CaseFilters {
	return repository.CaseFilters{
		Status:         c.Query("status"),
		Country:        c.Query("country"),
		Region:         c.Query("region"),
		ViolationTypes: c.Query("violation_types"),
		Priority:       c.Query("priority"),
		Search:         c.Query("search"),
		DateFrom:       c.Query("date_from"),
		DateTo:         c.Query("date_to"),
	}
}

// List handles GET /cases/.
func (ct *CaseController) List(c *fiber.Ctx) error {
	return ct.list(c, false)
}

// ListArchived handles GET /cases/archive/.
func (ct *CaseController) ListArchived(c *fiber.Ctx) error {
	return ct.list(c, true)
}

func (ct *CaseController) list(c *fiber.Ctx, archived bool) error {
	filters := caseFiltersFrom(c)
	skip, limit := parsePage(c)

	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	var (
		res *repository.CaseListResult
		err error
	)
	if archived {
		res, err = ct.repo.ListArchived(ctx, filters, skip, limit)
	} else {
		res, err = ct.repo.List(ctx, filters, skip, limit)
	}
	if err != nil {
		return repoErr(c, err)
	}

	return c.JSON(buildCaseEnvelope(res, filters, skip, limit))
}

// Create handles POST /cases/.
func (ct *CaseController) Create(c *fiber.Ctx) error {
	var in models.CaseCreate
	if err := c.BodyParser(&in); err != nil {
		return badReq(c, "invalid JSON")
	}

	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	created, err := ct.repo.Create(ctx, in)
	if err != nil {
		return repoErr(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.CaseMutationResp{
		Message: "Case created successfully",
		Case:    created,
	})
}

// Get handles GET /cases/:id.
func (ct *CaseController) Get(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	found, err := ct.repo.GetByID(ctx, c.Params("id"))
	if err != nil {
		return repoErr(c, err)
	}
	if found == nil {
		return notFound(c, "case not found")
	}
	return c.JSON(found)
}

// GetArchived handles GET /cases/archive/:id.
func (ct *CaseController) GetArchived(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	found, err := ct.repo.GetArchivedByID(ctx, c.Params("id"))
	if err != nil {
		return repoErr(c, err)
	}
	if found == nil {
		return notFound(c, "case not found in archive")
	}
	return c.JSON(found)
}

// Update handles PATCH /cases/:id.
func (ct *CaseController) Update(c *fiber.Ctx) error {
	var u models.CaseUpdate
	if err := c.BodyParser(&u); err != nil {
		return badReq(c, "invalid JSON")
	}

	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	updated, err := ct.repo.Update(ctx, c.Params("id"), u)
	if err != nil {
		return repoErr(c, err)
	}

	return c.JSON(models.CaseMutationResp{
		Message: "Case updated successfully",
		Case:    updated,
	})
}

// Archive handles DELETE /cases/:id — a soft delete via collection move.
func (ct *CaseController) Archive(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	moved, err := ct.repo.Archive(ctx, c.Params("id"))
	if err != nil {
		return repoErr(c, err)
	}
	if !moved {
		return notFound(c, "case not found")
	}
	return c.JSON(models.MessageResp{Message: "Case archived successfully"})
}

// Restore handles POST /cases/archive/:id/restore.
func (ct *CaseController) Restore(c *fiber.Ctx) error {
	id := c.Params("id")

	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	moved, err := ct.repo.Restore(ctx, id)
	if err != nil {
		return repoErr(c, err)
	}
	if !moved {
		return notFound(c, "case not found in archive")
	}

	// case_id in the response is always the human-readable HRM-... id, so
	// a failed re-read is surfaced rather than papered over with the
	// storage hex id.
	restored, err := ct.repo.GetByID(ctx, id)
	if err != nil {
		return repoErr(c, err)
	}
	if restored == nil {
		return serverErr(c, errors.New("case restored but not readable"))
	}
	return c.JSON(models.RestoreResp{Message: "Case restored successfully", CaseID: restored.CaseID})
}

// History handles GET /cases/history/:id, where :id is the human-readable
// case id (HRM-...). An absent ledger is an empty list, not a 404.
func (ct *CaseController) History(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	entries, err := ct.repo.GetStatusHistory(ctx, c.Params("id"))
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(fiber.Map{
		"case_id": c.Params("id"),
		"history": entries,
	})
}
