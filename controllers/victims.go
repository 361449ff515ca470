package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/JalilAbdallah/hrm-backend/models"
	"github.com/JalilAbdallah/hrm-backend/repository"
)

// VictimController exposes victim/witness records.
type VictimController struct {
	repo *repository.VictimRepository
}

func NewVictimController(repo *repository.VictimRepository) *VictimController {
	return &VictimController{repo: repo}
}

// Create handles POST /victims/.
func (vt *VictimController) Create(c *fiber.Ctx) error {
	var v models.Victim
	if err := c.BodyParser(&v); err != nil {
		return badReq(c, "invalid JSON")
	}

	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	id, err := vt.repo.Create(ctx, v)
	if err != nil {
		return repoErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// Get handles GET /victims/:id. Anonymous individuals come back without
// contact info.
func (vt *VictimController) Get(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	found, err := vt.repo.GetByID(ctx, c.Params("id"))
	if err != nil {
		return repoErr(c, err)
	}
	if found == nil {
		return notFound(c, "victim not found")
	}
	return c.JSON(found)
}

// UpdateRisk handles PATCH /victims/:id.
func (vt *VictimController) UpdateRisk(c *fiber.Ctx) error {
	var u models.RiskUpdate
	if err := c.BodyParser(&u); err != nil {
		return badReq(c, "invalid JSON")
	}

	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	if err := vt.repo.UpdateRisk(ctx, c.Params("id"), u); err != nil {
		return repoErr(c, err)
	}
	return c.JSON(models.MessageResp{Message: "Risk level updated"})
}

// ListByCase handles GET /victims/case/:case_id.
func (vt *VictimController) ListByCase(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	victims, err := vt.repo.ListByCase(ctx, c.Params("case_id"))
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(victims)
}
