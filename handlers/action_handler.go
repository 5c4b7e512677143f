package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/kuruchon/leaveApp/database"
	"github.com/kuruchon/leaveApp/middlewares"
	"github.com/kuruchon/leaveApp/models"
)

// ActionHandler รับ envelope {action, payload} จาก FE เดิม (เดิมคุยกับ Apps Script)
// ตอบ {success, message?, data?, user?, token?} ด้วย HTTP 200 เสมอ
// เพราะ FE เช็ค result.success ไม่ใช่ status code
type ActionHandler struct {
	Auth     *AuthHandler
	validate *validator.Validate
}

func NewActionHandler(auth *AuthHandler) *ActionHandler {
	return &ActionHandler{
		Auth:     auth,
		validate: validator.New(),
	}
}

type envelope struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

type loginPayload struct {
	UserID   string `json:"userId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type leavePayload struct {
	ID        string               `json:"id"`
	UserID    string               `json:"userId" validate:"required"`
	LeaveType string               `json:"leaveType" validate:"required"`
	StartDate string               `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string               `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Duration  models.LeaveDuration `json:"duration" validate:"required,oneof=FULL_DAY MORNING AFTERNOON"`
	Reason    string               `json:"reason"`
	Signature string               `json:"signature"`
	Status    models.LeaveStatus   `json:"status" validate:"omitempty,oneof=PENDING APPROVED REJECTED"`
}

type deletePayload struct {
	ID string `json:"id" validate:"required"`
}

func ok(c echo.Context, fields map[string]any) error {
	body := map[string]any{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	return c.JSON(http.StatusOK, body)
}

func fail(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, map[string]any{"success": false, "message": message})
}

// Handle — POST /api
func (h *ActionHandler) Handle(c echo.Context) error {
	var env envelope
	if err := c.Bind(&env); err != nil {
		return fail(c, "รูปแบบคำขอไม่ถูกต้อง")
	}

	switch env.Action {
	case "getInitialData":
		return h.getInitialData(c)
	case "login":
		return h.login(c, env.Payload)
	case "createLeave":
		return h.createLeave(c, env.Payload)
	case "updateLeave":
		return h.updateLeave(c, env.Payload)
	case "deleteLeave":
		return h.deleteLeave(c, env.Payload)
	default:
		return fail(c, "ไม่รู้จักคำสั่ง: "+env.Action)
	}
}

func (h *ActionHandler) getInitialData(c echo.Context) error {
	var users []models.User
	if err := database.DB.Order("id ASC").Find(&users).Error; err != nil {
		return fail(c, "ไม่สามารถโหลดข้อมูลได้ กรุณาลองใหม่อีกครั้ง")
	}

	var types []models.LeaveType
	if err := database.DB.Order("position ASC, id ASC").Find(&types).Error; err != nil {
		return fail(c, "ไม่สามารถโหลดข้อมูลได้ กรุณาลองใหม่อีกครั้ง")
	}
	typeNames := make([]string, 0, len(types))
	for _, t := range types {
		typeNames = append(typeNames, t.Name)
	}

	// เรียงใหม่สุดก่อน — FE พึ่งลำดับนี้ตอนแสดงลิสต์
	var requests []models.LeaveRequest
	if err := database.DB.Order("submitted_at DESC, id DESC").Find(&requests).Error; err != nil {
		return fail(c, "ไม่สามารถโหลดข้อมูลได้ กรุณาลองใหม่อีกครั้ง")
	}

	return ok(c, map[string]any{"data": map[string]any{
		"users":         users,
		"leaveTypes":    typeNames,
		"leaveRequests": requests,
	}})
}

func (h *ActionHandler) login(c echo.Context, raw json.RawMessage) error {
	var p loginPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fail(c, "รูปแบบคำขอไม่ถูกต้อง")
	}
	if err := h.validate.Struct(&p); err != nil {
		return fail(c, "กรุณากรอกรหัสผู้ใช้และรหัสผ่าน")
	}

	user, token, err := h.Auth.Login(p.UserID, p.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return fail(c, "รหัสผู้ใช้หรือรหัสผ่านไม่ถูกต้อง")
		}
		return fail(c, "เกิดข้อผิดพลาดในการสื่อสารกับเซิร์ฟเวอร์")
	}
	return ok(c, map[string]any{"user": user, "token": token})
}

func (h *ActionHandler) createLeave(c echo.Context, raw json.RawMessage) error {
	uid, role, _, authed := middlewares.CurrentUser(c)
	if !authed {
		return fail(c, "กรุณาเข้าสู่ระบบใหม่")
	}

	var p leavePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fail(c, "รูปแบบคำขอไม่ถูกต้อง")
	}
	if err := h.validate.Struct(&p); err != nil {
		return fail(c, "ข้อมูลใบลาไม่ครบถ้วน")
	}
	if strings.TrimSpace(p.Reason) == "" {
		return fail(c, "กรุณากรอกเหตุผลการลา")
	}
	// ยื่นครั้งแรกต้องมีลายมือชื่อเสมอ
	if strings.TrimSpace(p.Signature) == "" {
		return fail(c, "กรุณาลงลายมือชื่อ")
	}
	// ครูยื่นแทนคนอื่นไม่ได้ (แอดมินยื่นแทนได้)
	if role != models.RoleAdmin && p.UserID != uid {
		return fail(c, "ไม่มีสิทธิ์ยื่นใบลาแทนผู้อื่น")
	}

	// ประเภทการลาต้องเป็นประเภทที่เปิดอยู่ ณ ตอนสร้าง
	var n int64
	if err := database.DB.Model(&models.LeaveType{}).Where("name = ?", p.LeaveType).Count(&n).Error; err != nil || n == 0 {
		return fail(c, "ประเภทการลาไม่ถูกต้อง")
	}

	var owner models.User
	if err := database.DB.Where("id = ?", p.UserID).First(&owner).Error; err != nil {
		return fail(c, "ไม่พบผู้ใช้งาน")
	}

	rec := models.LeaveRequest{
		ID:          p.ID,
		UserID:      owner.ID,
		UserName:    owner.Name,
		LeaveType:   p.LeaveType,
		StartDate:   p.StartDate,
		EndDate:     normalizeEndDate(p),
		Duration:    p.Duration,
		Reason:      strings.TrimSpace(p.Reason),
		Signature:   p.Signature,
		Status:      models.StatusPending,
		SubmittedAt: time.Now().UTC(),
	}
	if rec.ID == "" {
		rec.ID = "leave-" + uuid.NewString()
	}

	if err := database.DB.Create(&rec).Error; err != nil {
		return fail(c, "เกิดข้อผิดพลาดในการบันทึกข้อมูล")
	}
	return ok(c, map[string]any{"data": rec})
}

func (h *ActionHandler) updateLeave(c echo.Context, raw json.RawMessage) error {
	uid, role, name, authed := middlewares.CurrentUser(c)
	if !authed {
		return fail(c, "กรุณาเข้าสู่ระบบใหม่")
	}

	var p leavePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fail(c, "รูปแบบคำขอไม่ถูกต้อง")
	}
	if p.ID == "" {
		return fail(c, "ไม่พบใบลา")
	}
	if err := h.validate.Struct(&p); err != nil {
		return fail(c, "ข้อมูลใบลาไม่ครบถ้วน")
	}
	if strings.TrimSpace(p.Reason) == "" {
		return fail(c, "กรุณากรอกเหตุผลการลา")
	}

	var rec models.LeaveRequest
	if err := database.DB.Where("id = ?", p.ID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, "ไม่พบใบลา")
		}
		return fail(c, "เกิดข้อผิดพลาดในการบันทึกข้อมูล")
	}

	// แอดมินแก้ได้ทุกใบ ครูแก้ได้เฉพาะใบตัวเองที่ยังรออนุมัติ
	if role != models.RoleAdmin && (rec.UserID != uid || rec.Status != models.StatusPending) {
		return fail(c, "ไม่มีสิทธิ์แก้ไขใบลานี้")
	}

	// เปลี่ยนสถานะ = การอนุมัติเท่านั้น และทำได้เฉพาะแอดมินกับใบที่รออยู่
	if p.Status != "" && p.Status != rec.Status {
		if role != models.RoleAdmin || rec.Status != models.StatusPending || p.Status != models.StatusApproved {
			return fail(c, "ไม่มีสิทธิ์เปลี่ยนสถานะใบลานี้")
		}
		now := time.Now().UTC()
		rec.Status = models.StatusApproved
		rec.ApprovedBy = &name // ชื่อจาก token ไม่ใช่จาก payload
		rec.ApprovedAt = &now
	}

	rec.LeaveType = p.LeaveType
	rec.StartDate = p.StartDate
	rec.EndDate = normalizeEndDate(p)
	rec.Duration = p.Duration
	rec.Reason = strings.TrimSpace(p.Reason)
	if strings.TrimSpace(p.Signature) != "" {
		rec.Signature = p.Signature // ไม่ส่งมา = คงลายมือชื่อเดิม
	}
	// SubmittedAt คงเดิมเสมอ

	if err := database.DB.Save(&rec).Error; err != nil {
		return fail(c, "เกิดข้อผิดพลาดในการบันทึกข้อมูล")
	}
	return ok(c, map[string]any{"data": rec})
}

func (h *ActionHandler) deleteLeave(c echo.Context, raw json.RawMessage) error {
	uid, role, _, authed := middlewares.CurrentUser(c)
	if !authed {
		return fail(c, "กรุณาเข้าสู่ระบบใหม่")
	}

	var p deletePayload
	if err := json.Unmarshal(raw, &p); err != nil || p.ID == "" {
		return fail(c, "รูปแบบคำขอไม่ถูกต้อง")
	}

	var rec models.LeaveRequest
	if err := database.DB.Where("id = ?", p.ID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, "ไม่พบใบลา")
		}
		return fail(c, "เกิดข้อผิดพลาดในการลบข้อมูล")
	}

	if role != models.RoleAdmin && (rec.UserID != uid || rec.Status != models.StatusPending) {
		return fail(c, "ไม่มีสิทธิ์ลบใบลานี้")
	}

	// ลบจริง ไม่มี soft delete
	if err := database.DB.Delete(&rec).Error; err != nil {
		return fail(c, "เกิดข้อผิดพลาดในการลบข้อมูล")
	}
	return ok(c, map[string]any{"data": map[string]string{"id": rec.ID}})
}

// ครึ่งวันลาได้วันเดียว — endDate ต้องเท่า startDate เสมอ
func normalizeEndDate(p leavePayload) string {
	if p.Duration != models.FullDay || p.EndDate == "" {
		return p.StartDate
	}
	return p.EndDate
}
