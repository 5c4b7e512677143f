package leave

import "github.com/kuruchon/leaveApp/models"

// AllTypes ใช้เป็นค่า filter เมื่อไม่จำกัดประเภทการลา
const AllTypes = "ALL"

// Stats จำนวนครั้ง + จำนวนวันสะสมของกลุ่มหนึ่ง
type Stats struct {
	Count int     `json:"count"`
	Days  float64 `json:"days"`
}

func (s *Stats) add(days float64) {
	s.Count++
	s.Days += days
}

// TypeSummary สรุปฝั่งครู: ประเภทการลา → สถิติ + ยอดรวมทุกประเภท
// Types เก็บลำดับตามที่พบครั้งแรก เพื่อให้ตารางแสดงผลคงที่
type TypeSummary struct {
	Types  []string          `json:"types"`
	ByType map[string]*Stats `json:"byType"`
	Total  Stats             `json:"total"`
}

// PersonSummary สถิติของบุคลากรหนึ่งคน แยกตามประเภท + ยอดรวมของคนนั้น
type PersonSummary struct {
	Types  []string          `json:"types"`
	ByType map[string]*Stats `json:"byType"`
	Total  Stats             `json:"total"`
}

// UserSummary สรุปฝั่งแอดมิน: ชื่อบุคลากร → PersonSummary
// ไม่มีแถวรวมข้ามคน (ตาม FE เดิม)
type UserSummary struct {
	Users  []string                  `json:"users"`
	ByUser map[string]*PersonSummary `json:"byUser"`
}

// Filter คัดใบลาที่เข้ารายงาน: อนุมัติแล้ว + startDate อยู่ในช่วง [from, to]
// + ตรงประเภทที่เลือก (หรือ "ALL")
// วันที่เป็น YYYY-MM-DD จึงเทียบเป็น string ได้ตรง ๆ
func Filter(requests []models.LeaveRequest, from, to, leaveType string) []models.LeaveRequest {
	out := make([]models.LeaveRequest, 0, len(requests))
	for _, r := range requests {
		if r.Status != models.StatusApproved {
			continue
		}
		if r.StartDate < from || r.StartDate > to {
			continue
		}
		if leaveType != AllTypes && r.LeaveType != leaveType {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SummarizeByType สรุปการลาของเจ้าของคนเดียว (มุมมองครู)
// requests ควรผ่าน Filter มาก่อน
func SummarizeByType(requests []models.LeaveRequest, userID string) TypeSummary {
	sum := TypeSummary{ByType: map[string]*Stats{}}
	for _, r := range requests {
		if r.UserID != userID {
			continue
		}
		st, ok := sum.ByType[r.LeaveType]
		if !ok {
			st = &Stats{}
			sum.ByType[r.LeaveType] = st
			sum.Types = append(sum.Types, r.LeaveType)
		}
		days := RequestDays(r)
		st.add(days)
		sum.Total.add(days)
	}
	return sum
}

// SummarizeByUser สรุปการลาของทุกคน แยกรายคน (มุมมองแอดมิน)
// requests ควรผ่าน Filter มาก่อน
func SummarizeByUser(requests []models.LeaveRequest) UserSummary {
	sum := UserSummary{ByUser: map[string]*PersonSummary{}}
	for _, r := range requests {
		ps, ok := sum.ByUser[r.UserName]
		if !ok {
			ps = &PersonSummary{ByType: map[string]*Stats{}}
			sum.ByUser[r.UserName] = ps
			sum.Users = append(sum.Users, r.UserName)
		}
		st, ok := ps.ByType[r.LeaveType]
		if !ok {
			st = &Stats{}
			ps.ByType[r.LeaveType] = st
			ps.Types = append(ps.Types, r.LeaveType)
		}
		days := RequestDays(r)
		st.add(days)
		ps.Total.add(days)
	}
	return sum
}
