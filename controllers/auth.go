package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/JalilAbdallah/hrm-backend/auth"
	"github.com/JalilAbdallah/hrm-backend/models"
)

// AuthController exposes token issuance.
type AuthController struct {
	svc *auth.Service
}

func NewAuthController(svc *auth.Service) *AuthController {
	return &AuthController{svc: svc}
}

// Login handles POST /auth/login.
func (at *AuthController) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badReq(c, "invalid JSON")
	}

	ctx, cancel := context.WithTimeout(c.Context(), queryTimeout)
	defer cancel()

	resp, err := at.svc.Login(ctx, body.Email, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			return badReq(c, err.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).
				JSON(models.ErrorResp{OK: false, Error: err.Error()})
		default:
			return serverErr(c, err)
		}
	}
	return c.JSON(resp)
}
