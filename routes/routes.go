package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JalilAbdallah/hrm-backend/auth"
	"github.com/JalilAbdallah/hrm-backend/controllers"
	"github.com/JalilAbdallah/hrm-backend/models"
)

// Deps are the constructed controllers plus the auth service used for
// route gating.
type Deps struct {
	Auth      *auth.Service
	AuthCtl   *controllers.AuthController
	Cases     *controllers.CaseController
	Reports   *controllers.ReportController
	Victims   *controllers.VictimController
	Analytics *controllers.AnalyticsController
}

// Register attaches all API endpoints to the app. Case mutation and listing
// is admin-only; report submission is open to institutions as well. The
// repositories themselves never see roles — gating stops here.
func Register(app *fiber.App, d Deps) {
	app.Post("/auth/login", d.AuthCtl.Login)

	admin := d.Auth.RequireRole(models.RoleAdmin)
	adminOrInstitution := d.Auth.RequireAnyRole(models.RoleAdmin, models.RoleInstitution)

	cases := app.Group("/cases", admin)
	cases.Get("/", d.Cases.List)
	cases.Post("/", d.Cases.Create)
	cases.Get("/archive/", d.Cases.ListArchived)
	cases.Get("/archive/:id", d.Cases.GetArchived)
	cases.Post("/archive/:id/restore", d.Cases.Restore)
	cases.Get("/history/:id", d.Cases.History)
	cases.Get("/:id", d.Cases.Get)
	cases.Patch("/:id", d.Cases.Update)
	cases.Delete("/:id", d.Cases.Archive)

	reports := app.Group("/reports", adminOrInstitution)
	reports.Get("/", d.Reports.List)
	reports.Post("/", d.Reports.Create)
	reports.Get("/:id", d.Reports.Get)
	reports.Patch("/:report_id/status", d.Reports.UpdateStatus)
	reports.Post("/:report_id/evidence", d.Reports.UploadEvidence)

	victims := app.Group("/victims", admin)
	victims.Post("/", d.Victims.Create)
	victims.Get("/case/:case_id", d.Victims.ListByCase)
	victims.Get("/:id", d.Victims.Get)
	victims.Patch("/:id", d.Victims.UpdateRisk)

	analytics := app.Group("/analytics", admin)
	analytics.Get("/dashboard", d.Analytics.Dashboard)
	analytics.Get("/violations", d.Analytics.Violations)
	analytics.Get("/geodata", d.Analytics.Geodata)
	analytics.Get("/trends", d.Analytics.Trends)
}
