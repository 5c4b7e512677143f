package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kuruchon/leaveApp/database"
	"github.com/kuruchon/leaveApp/middlewares"
	"github.com/kuruchon/leaveApp/models"
)

type LeaveRequestHandler struct{}

func NewLeaveRequestHandler() *LeaveRequestHandler { return &LeaveRequestHandler{} }

// GET /teacher/leave-requests?status=&type=&from=&to=&q=&page=&size=
// ครูเห็นเฉพาะใบของตัวเอง แอดมินเห็นทุกใบ
func (h *LeaveRequestHandler) List(c echo.Context) error {
	uid, role, _, _ := middlewares.CurrentUser(c)

	status := strings.TrimSpace(c.QueryParam("status")) // PENDING/APPROVED/REJECTED
	typ := strings.TrimSpace(c.QueryParam("type"))      // ลาป่วย/ลากิจ/...
	from := strings.TrimSpace(c.QueryParam("from"))     // YYYY-MM-DD
	to := strings.TrimSpace(c.QueryParam("to"))         // YYYY-MM-DD
	q := strings.TrimSpace(c.QueryParam("q"))           // คีย์เวิร์ดใน reason

	page := atoiOr(c.QueryParam("page"), 1)
	size := atoiOr(c.QueryParam("size"), 10)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}

	tx := database.DB.Model(&models.LeaveRequest{})

	if role != models.RoleAdmin {
		tx = tx.Where("user_id = ?", uid)
	}
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if typ != "" {
		tx = tx.Where("leave_type = ?", typ)
	}
	if from != "" && to != "" {
		// ทับซ้อนช่วง (overlap): (StartDate <= to) AND (EndDate >= from)
		tx = tx.Where("start_date <= ? AND end_date >= ?", to, from)
	}
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(reason) LIKE ?", like)
	}

	// เรียงล่าสุดก่อน
	var rows []models.LeaveRequest
	offset := (page - 1) * size
	if err := tx.Order("submitted_at DESC, id DESC").Offset(offset).Limit(size).Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, rows)
}

// GET /teacher/leave-requests/pending-count
func (h *LeaveRequestHandler) PendingCount(c echo.Context) error {
	uid, role, _, _ := middlewares.CurrentUser(c)

	tx := database.DB.Model(&models.LeaveRequest{}).Where("status = ?", models.StatusPending)
	if role != models.RoleAdmin {
		tx = tx.Where("user_id = ?", uid)
	}

	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"count": n})
}
