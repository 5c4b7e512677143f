package leave

import (
	"sort"

	"github.com/kuruchon/leaveApp/models"
)

// Store ชุดใบลาของ session ที่ล็อกอินอยู่ (in-memory)
// เรียงใหม่สุดก่อนเสมอ และจะถูกแก้หลัง remote call สำเร็จแล้วเท่านั้น
// ใช้จาก event loop เดียว จึงไม่ต้องมี lock
type Store struct {
	items []models.LeaveRequest
}

func NewStore() *Store { return &Store{} }

func (s *Store) resort() {
	sort.SliceStable(s.items, func(i, j int) bool {
		return s.items[i].SubmittedAt.After(s.items[j].SubmittedAt)
	})
}

// Load แทนที่ข้อมูลทั้งชุด (ใช้ตอนโหลด initial data)
func (s *Store) Load(requests []models.LeaveRequest) {
	s.items = make([]models.LeaveRequest, len(requests))
	copy(s.items, requests)
	s.resort()
}

// Upsert แทนที่รายการ id เดิม หรือเพิ่มรายการใหม่ไว้หัวลิสต์ แล้ว resort
func (s *Store) Upsert(r models.LeaveRequest) {
	for i := range s.items {
		if s.items[i].ID == r.ID {
			s.items[i] = r
			s.resort()
			return
		}
	}
	s.items = append([]models.LeaveRequest{r}, s.items...)
	s.resort()
}

// Remove ลบรายการตาม id, ไม่ทำอะไรถ้าไม่พบ
func (s *Store) Remove(id string) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *Store) Get(id string) (models.LeaveRequest, bool) {
	for i := range s.items {
		if s.items[i].ID == id {
			return s.items[i], true
		}
	}
	return models.LeaveRequest{}, false
}

// All คืนสำเนาของลิสต์ตามลำดับปัจจุบัน
func (s *Store) All() []models.LeaveRequest {
	out := make([]models.LeaveRequest, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int { return len(s.items) }
