package controllers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/JalilAbdallah/hrm-backend/repository"
)

// AnalyticsController serves the read-only aggregate reports.
type AnalyticsController struct {
	repo *repository.AnalyticsRepository
}

func NewAnalyticsController(repo *repository.AnalyticsRepository) *AnalyticsController {
	return &AnalyticsController{repo: repo}
}

// Dashboard handles GET /analytics/dashboard.
func (an *AnalyticsController) Dashboard(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	out, err := an.repo.Dashboard(ctx)
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(out)
}

// Violations handles GET /analytics/violations.
func (an *AnalyticsController) Violations(c *fiber.Ctx) error {
	f := repository.ViolationFilters{
		DateFrom:      c.Query("date_from"),
		DateTo:        c.Query("date_to"),
		Country:       c.Query("country"),
		City:          c.Query("city"),
		ViolationType: c.Query("violation_type"),
	}

	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	out, err := an.repo.Violations(ctx, f)
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(out)
}

// Geodata handles GET /analytics/geodata.
func (an *AnalyticsController) Geodata(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	out, err := an.repo.Geodata(ctx, c.Query("violation_type"), c.Query("country"))
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(out)
}

// Trends handles GET /analytics/trends.
func (an *AnalyticsController) Trends(c *fiber.Ctx) error {
	yearFrom, err := strconv.Atoi(c.Query("year_from"))
	if err != nil {
		return badReq(c, "year_from is required and must be a year")
	}
	yearTo := 0
	if v := c.Query("year_to"); v != "" {
		if yearTo, err = strconv.Atoi(v); err != nil {
			return badReq(c, "year_to must be a year")
		}
	}

	var violationTypes []string
	if v := c.Query("violation_types"); v != "" {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				violationTypes = append(violationTypes, part)
			}
		}
	}

	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	out, err := an.repo.Trends(ctx, yearFrom, yearTo, violationTypes)
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(out)
}
