package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/kuruchon/leaveApp/config"
	"github.com/kuruchon/leaveApp/handlers"
	"github.com/kuruchon/leaveApp/middlewares"
	"github.com/kuruchon/leaveApp/models"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(cfg.JWTSecret)
	act := handlers.NewActionHandler(auth)
	lv := handlers.NewLeaveRequestHandler()
	sm := handlers.NewSummaryHandler()
	ex := handlers.NewExportHandler()
	lt := handlers.NewLeaveTypeHandler()

	e.GET("/health", handlers.Health)

	// ===== Action protocol (FE เดิมยิง envelope เดียว) =====
	// login/getInitialData เป็น public, action ที่แก้ข้อมูลตรวจ token เองใน handler
	e.POST("/api", act.Handle, middlewares.AttachUser(cfg.JWTSecret))

	// ===== Protected Groups =====
	authMW := middlewares.RequireAuth(cfg.JWTSecret)

	// ===== Staff routes (ครู + แอดมิน) =====
	staff := e.Group("/teacher", authMW, middlewares.RequireRole(models.RoleTeacher, models.RoleAdmin))

	staff.GET("/leave-requests", lv.List)
	staff.GET("/leave-requests/pending-count", lv.PendingCount)
	staff.GET("/leave-requests/export", ex.Export)

	staff.GET("/dashboard/cards", sm.Cards)
	staff.GET("/leave-summary", sm.Window)

	// ===== Admin routes =====
	admin := e.Group("/admin", authMW, middlewares.RequireRole(models.RoleAdmin))

	admin.GET("/leave-types", lt.List)
	admin.POST("/leave-types", lt.Create)
	admin.DELETE("/leave-types/:id", lt.Delete)
}
