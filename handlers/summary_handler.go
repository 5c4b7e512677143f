package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kuruchon/leaveApp/database"
	"github.com/kuruchon/leaveApp/leave"
	"github.com/kuruchon/leaveApp/middlewares"
	"github.com/kuruchon/leaveApp/models"
)

type SummaryHandler struct{}

func NewSummaryHandler() *SummaryHandler { return &SummaryHandler{} }

// GET /teacher/dashboard/cards
// ตัวเลขการ์ดบนแดชบอร์ด: วันลาที่อนุมัติรวม / รายการรออนุมัติ / รายการอนุมัติแล้ว
func (h *SummaryHandler) Cards(c echo.Context) error {
	uid, role, _, _ := middlewares.CurrentUser(c)

	tx := database.DB.Model(&models.LeaveRequest{})
	if role != models.RoleAdmin {
		tx = tx.Where("user_id = ?", uid)
	}

	var rows []models.LeaveRequest
	if err := tx.Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var totalDays float64
	var pending, approved int
	for _, r := range rows {
		switch r.Status {
		case models.StatusApproved:
			approved++
			totalDays += leave.RequestDays(r)
		case models.StatusPending:
			pending++
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"totalApprovedDays": totalDays,
		"pendingCount":      pending,
		"approvedCount":     approved,
	})
}

// GET /teacher/leave-summary?from=&to=&type=
// ไม่ส่งช่วงมา = เดือนปัจจุบัน (ตาม FE เดิม)
// ครู → สรุปแยกประเภทของตัวเอง, แอดมิน → สรุปรายคนของทุกคน
func (h *SummaryHandler) Window(c echo.Context) error {
	uid, role, _, _ := middlewares.CurrentUser(c)

	from, to := monthWindow(time.Now())
	if v := strings.TrimSpace(c.QueryParam("from")); v != "" {
		from = v
	}
	if v := strings.TrimSpace(c.QueryParam("to")); v != "" {
		to = v
	}
	typ := strings.TrimSpace(c.QueryParam("type"))
	if typ == "" {
		typ = leave.AllTypes
	}

	var rows []models.LeaveRequest
	if err := database.DB.Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	filtered := leave.Filter(rows, from, to, typ)

	if role == models.RoleAdmin {
		return c.JSON(http.StatusOK, map[string]any{
			"scope": models.RoleAdmin,
			"from":  from, "to": to, "type": typ,
			"summary": leave.SummarizeByUser(filtered),
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"scope": models.RoleTeacher,
		"from":  from, "to": to, "type": typ,
		"summary": leave.SummarizeByType(filtered, uid),
	})
}

// monthWindow คืนวันแรกกับวันสุดท้ายของเดือนที่ t อยู่
func monthWindow(t time.Time) (string, string) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}
