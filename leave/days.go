// Package leave รวม logic การคำนวณวันลาและสรุปสถิติ
// ใช้ชุดเดียวกันทั้ง dashboard, สรุปรายงาน และไฟล์ export
package leave

import (
	"math"
	"time"

	"github.com/kuruchon/leaveApp/models"
)

const dateLayout = "2006-01-02"

// Days คืนจำนวนวันลาของใบลาหนึ่งใบ
// - ครึ่งวัน (เช้า/บ่าย) นับ 0.5 เสมอ ไม่สนช่วงวันที่
// - เต็มวันนับแบบรวมปลายทั้งสองข้าง: ลาวันเดียว = 1
// - ถ้า end < start ใช้ค่าสัมบูรณ์ (ไม่มีทางติดลบ)
func Days(start, end string, duration models.LeaveDuration) float64 {
	if duration != models.FullDay {
		return 0.5
	}
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return 0
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return 0
	}
	return math.Ceil(math.Abs(e.Sub(s).Hours())/24) + 1
}

// RequestDays shorthand สำหรับใบลาทั้งใบ
func RequestDays(r models.LeaveRequest) float64 {
	return Days(r.StartDate, r.EndDate, r.Duration)
}
