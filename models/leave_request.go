package models

import "time"

type LeaveStatus string

const (
	StatusPending  LeaveStatus = "PENDING"
	StatusApproved LeaveStatus = "APPROVED"
	StatusRejected LeaveStatus = "REJECTED" // มีในข้อมูล แต่ยังไม่มีปุ่มปฏิเสธใน FE
)

type LeaveDuration string

const (
	FullDay   LeaveDuration = "FULL_DAY"
	Morning   LeaveDuration = "MORNING"
	Afternoon LeaveDuration = "AFTERNOON"
)

type LeaveRequest struct {
	ID          string        `json:"id" gorm:"primaryKey;size:60"`
	UserID      string        `json:"userId" gorm:"index;size:40;not null"`
	UserName    string        `json:"userName" gorm:"size:120;not null"` // สำเนาชื่อไว้แสดงผล
	LeaveType   string        `json:"leaveType" gorm:"size:40;not null"` // ลาป่วย/ลากิจ/อื่นๆ
	StartDate   string        `json:"startDate" gorm:"size:10;not null"` // YYYY-MM-DD
	EndDate     string        `json:"endDate" gorm:"size:10;not null"`   // YYYY-MM-DD
	Duration    LeaveDuration `json:"duration" gorm:"size:20;not null"`
	Reason      string        `json:"reason" gorm:"type:text;not null"`
	Signature   string        `json:"signature" gorm:"type:text"` // base64 data URL
	Status      LeaveStatus   `json:"status" gorm:"size:20;not null;index"`
	SubmittedAt time.Time     `json:"submittedAt"` // fix ตอนสร้าง ไม่เปลี่ยนตอนแก้ไข
	ApprovedBy  *string       `json:"approvedBy,omitempty" gorm:"size:120"`
	ApprovedAt  *time.Time    `json:"approvedAt,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// StatusDisplay ป้ายสถานะสำหรับแสดงผล (label + โทนสี) — ต้องครบทุกสถานะ
type StatusDisplay struct {
	Label string
	Tag   string
}

var StatusDisplays = map[LeaveStatus]StatusDisplay{
	StatusPending:  {Label: "รออนุมัติ", Tag: "yellow"},
	StatusApproved: {Label: "อนุมัติแล้ว", Tag: "green"},
	StatusRejected: {Label: "ปฏิเสธ", Tag: "red"},
}

var DurationDisplays = map[LeaveDuration]string{
	FullDay:   "เต็มวัน",
	Morning:   "ครึ่งวันเช้า",
	Afternoon: "ครึ่งวันบ่าย",
}
