package models

import "time"

// LeaveType ประเภทการลาที่เปิดให้เลือกตอนยื่นใบลา
// (เปลี่ยนภายหลังได้ ใบลาเก่าไม่ถูกตรวจย้อนหลัง)
type LeaveType struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;size:40;not null"`
	Position  int       `json:"position" gorm:"default:0"` // ลำดับใน dropdown
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
