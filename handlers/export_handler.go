package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"github.com/kuruchon/leaveApp/database"
	"github.com/kuruchon/leaveApp/leave"
	"github.com/kuruchon/leaveApp/middlewares"
	"github.com/kuruchon/leaveApp/models"
)

type ExportHandler struct{}

func NewExportHandler() *ExportHandler { return &ExportHandler{} }

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GET /teacher/leave-requests/export?from=&to=&type=
// ดาวน์โหลดใบลาที่อนุมัติแล้วในช่วงที่เลือกเป็นไฟล์ .xlsx
// ครูได้เฉพาะของตัวเอง แอดมินได้ทั้งหมด
func (h *ExportHandler) Export(c echo.Context) error {
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

	tx := database.DB.Model(&models.LeaveRequest{})
	if role != models.RoleAdmin {
		tx = tx.Where("user_id = ?", uid)
	}
	var rows []models.LeaveRequest
	if err := tx.Order("submitted_at DESC, id DESC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	filtered := leave.Filter(rows, from, to, typ)

	buf, err := buildWorkbook(filtered, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "EXPORT_FAILED"})
	}

	filename := fmt.Sprintf("leave-report-%s-%s.xlsx", from, to)
	c.Response().Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

func buildWorkbook(rows []models.LeaveRequest, from, to string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "สรุปการลา"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "B", 14)
	f.SetColWidth(sheet, "C", "D", 12)
	f.SetColWidth(sheet, "E", "E", 14)
	f.SetColWidth(sheet, "F", "F", 10)
	f.SetColWidth(sheet, "G", "G", 36)
	f.SetColWidth(sheet, "H", "H", 18)
	f.SetColWidth(sheet, "I", "I", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheet, "A1", fmt.Sprintf("รายงานการลาที่อนุมัติแล้ว %s ถึง %s", from, to))
	f.MergeCell(sheet, "A1", "I1")
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	headers := []string{"ชื่อผู้ลา", "ประเภทการลา", "ตั้งแต่วันที่", "ถึงวันที่", "ระยะเวลา", "จำนวนวัน", "เหตุผล", "อนุมัติโดย", "สถานะ"}
	for i, hd := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheet, cell, hd)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 3
	var totalDays float64
	for _, r := range rows {
		days := leave.RequestDays(r)
		totalDays += days

		approvedBy := "-"
		if r.ApprovedBy != nil {
			approvedBy = *r.ApprovedBy
		}
		values := []any{
			r.UserName,
			r.LeaveType,
			r.StartDate,
			r.EndDate,
			models.DurationDisplays[r.Duration],
			days,
			r.Reason,
			approvedBy,
			models.StatusDisplays[r.Status].Label,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "รวมทั้งหมด")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), totalDays)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
