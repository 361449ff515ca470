package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/JalilAbdallah/hrm-backend/models"
	"github.com/JalilAbdallah/hrm-backend/repository"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

func badReq(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResp{OK: false, Error: msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(models.ErrorResp{OK: false, Error: msg})
}

func serverErr(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResp{OK: false, Error: err.Error()})
}

// repoErr maps the repository error taxonomy onto HTTP statuses:
// ValidationError → 400, ErrNotFound → 404, ConsistencyError → 500 with an
// operator-facing log line, anything else → 500 with the driver message.
func repoErr(c *fiber.Ctx, err error) error {
	if repository.IsValidation(err) {
		return badReq(c, err.Error())
	}
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, err.Error())
	}
	var cerr *repository.ConsistencyError
	if errors.As(err, &cerr) {
		log.Printf("http: consistency error surfaced to client: %v", cerr)
	}
	return serverErr(c, err)
}

// parsePage reads skip/limit query params with the shared bounds.
func parsePage(c *fiber.Ctx) (skip, limit int64) {
	skip = 0
	limit = defaultLimit
	if v := c.Query("skip"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			skip = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			if n < 1 {
				n = 1
			}
			if n > maxLimit {
				n = maxLimit
			}
			limit = n
		}
	}
	return skip, limit
}
