package client

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kuruchon/leaveApp/leave"
	"github.com/kuruchon/leaveApp/models"
)

// กลุ่มของงานที่ยิงได้ทีละหนึ่ง (busy flag แยกตามกลุ่ม)
type OpCategory string

const (
	OpLoad   OpCategory = "load"
	OpLogin  OpCategory = "login"
	OpSave   OpCategory = "save"
	OpDelete OpCategory = "delete"
)

var (
	ErrBusy        = errors.New("operation already in flight")
	ErrNotLoggedIn = errors.New("not logged in")

	// validation ฝั่ง client — เจอแล้วไม่ยิง remote เลย
	ErrReasonRequired    = errors.New("กรุณากรอกเหตุผลการลา")
	ErrSignatureRequired = errors.New("กรุณาลงลายมือชื่อ")
)

// Session ถือ state ของผู้ใช้ที่ล็อกอินอยู่: user ปัจจุบัน + Store ของใบลา
// Store ถูกแก้หลัง remote call สำเร็จแล้วเท่านั้น — ถ้าพังข้อมูลเดิมไม่ถูกแตะ
// ออกแบบให้เรียกจาก goroutine เดียว (event loop ของ UI)
type Session struct {
	api   *Client
	store *leave.Store

	user       *models.User
	leaveTypes []string
	busy       map[OpCategory]bool
}

func NewSession(api *Client) *Session {
	return &Session{
		api:   api,
		store: leave.NewStore(),
		busy:  map[OpCategory]bool{},
	}
}

func (s *Session) CurrentUser() *models.User { return s.user }
func (s *Session) LeaveTypes() []string      { return s.leaveTypes }
func (s *Session) Requests() *leave.Store    { return s.store }
func (s *Session) Busy(op OpCategory) bool   { return s.busy[op] }

func (s *Session) begin(op OpCategory) error {
	if s.busy[op] {
		return ErrBusy
	}
	s.busy[op] = true
	return nil
}

func (s *Session) end(op OpCategory) { s.busy[op] = false }

// Load โหลด initial data แล้วแทนที่ Store ทั้งชุด
func (s *Session) Load(ctx context.Context) error {
	if err := s.begin(OpLoad); err != nil {
		return err
	}
	defer s.end(OpLoad)

	data, err := s.api.GetInitialData(ctx)
	if err != nil {
		return err
	}
	s.leaveTypes = data.LeaveTypes
	s.store.Load(data.LeaveRequests)
	return nil
}

func (s *Session) Login(ctx context.Context, userID, password string) error {
	if err := s.begin(OpLogin); err != nil {
		return err
	}
	defer s.end(OpLogin)

	user, err := s.api.Login(ctx, userID, password)
	if err != nil {
		return err
	}
	s.user = user
	return nil
}

// Logout ทิ้ง state ทั้งหมดของ session
func (s *Session) Logout() {
	s.api.Logout()
	s.user = nil
	s.store = leave.NewStore()
}

// Save สร้างหรือแก้ใบลา (ดูจากว่ามี id นี้ใน Store อยู่ไหม)
// สำเร็จแล้วจึง upsert เข้า Store
func (s *Session) Save(ctx context.Context, r models.LeaveRequest) (*models.LeaveRequest, error) {
	if s.user == nil {
		return nil, ErrNotLoggedIn
	}
	_, exists := s.store.Get(r.ID)

	// ตรวจก่อนยิง remote: เหตุผลห้ามว่าง, ยื่นครั้งแรกต้องมีลายมือชื่อ
	if strings.TrimSpace(r.Reason) == "" {
		return nil, ErrReasonRequired
	}
	if !exists && strings.TrimSpace(r.Signature) == "" {
		return nil, ErrSignatureRequired
	}

	if err := s.begin(OpSave); err != nil {
		return nil, err
	}
	defer s.end(OpSave)

	var saved *models.LeaveRequest
	var err error
	if exists {
		saved, err = s.api.UpdateLeave(ctx, r)
	} else {
		saved, err = s.api.CreateLeave(ctx, r)
	}
	if err != nil {
		return nil, err
	}
	s.store.Upsert(*saved)
	return saved, nil
}

// Approve ให้แอดมินอนุมัติใบที่รออยู่ — ยิง updateLeave พร้อมสถานะใหม่
func (s *Session) Approve(ctx context.Context, id string) (*models.LeaveRequest, error) {
	if s.user == nil || s.user.Role != models.RoleAdmin {
		return nil, ErrNotLoggedIn
	}
	r, ok := s.store.Get(id)
	if !ok {
		return nil, errors.New("ไม่พบใบลา")
	}
	if err := s.begin(OpSave); err != nil {
		return nil, err
	}
	defer s.end(OpSave)

	now := time.Now().UTC()
	r.Status = models.StatusApproved
	r.ApprovedBy = &s.user.Name // server จะยึดค่าจาก token อีกที
	r.ApprovedAt = &now

	saved, err := s.api.UpdateLeave(ctx, r)
	if err != nil {
		return nil, err
	}
	s.store.Upsert(*saved)
	return saved, nil
}

// Delete ลบใบลา — สำเร็จแล้วจึงเอาออกจาก Store
func (s *Session) Delete(ctx context.Context, id string) error {
	if s.user == nil {
		return ErrNotLoggedIn
	}
	if err := s.begin(OpDelete); err != nil {
		return err
	}
	defer s.end(OpDelete)

	if err := s.api.DeleteLeave(ctx, id); err != nil {
		return err
	}
	s.store.Remove(id)
	return nil
}
