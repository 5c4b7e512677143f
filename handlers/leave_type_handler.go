package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/kuruchon/leaveApp/database"
	"github.com/kuruchon/leaveApp/models"
)

type LeaveTypeHandler struct{}

func NewLeaveTypeHandler() *LeaveTypeHandler { return &LeaveTypeHandler{} }

// GET /admin/leave-types
func (h *LeaveTypeHandler) List(c echo.Context) error {
	var rows []models.LeaveType
	if err := database.DB.Order("position ASC, id ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

type leaveTypeReq struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// POST /admin/leave-types
func (h *LeaveTypeHandler) Create(c echo.Context) error {
	var req leaveTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var dup models.LeaveType
	if err := database.DB.Where("name = ?", name).First(&dup).Error; err == nil {
		return c.JSON(http.StatusConflict, map[string]any{"error": "NAME_EXISTS"})
	}

	rec := models.LeaveType{Name: name, Position: req.Position}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, rec)
}

// DELETE /admin/leave-types/:id
// ใบลาเก่าที่ใช้ประเภทนี้อยู่ไม่ถูกแตะ (ไม่ตรวจย้อนหลัง)
func (h *LeaveTypeHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := database.DB.First(&models.LeaveType{}, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	if err := database.DB.Delete(&models.LeaveType{}, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}
