package models

import "testing"

func TestStatusDisplaysCoverEveryStatus(t *testing.T) {
	// mapping สำหรับแสดงผลต้องครบทุกสถานะ — เพิ่มสถานะใหม่แล้วลืมป้ายจะพังที่นี่
	for _, s := range []LeaveStatus{StatusPending, StatusApproved, StatusRejected} {
		d, ok := StatusDisplays[s]
		if !ok {
			t.Errorf("no display for status %s", s)
			continue
		}
		if d.Label == "" || d.Tag == "" {
			t.Errorf("incomplete display for status %s: %+v", s, d)
		}
	}
}

func TestDurationDisplaysCoverEveryDuration(t *testing.T) {
	for _, d := range []LeaveDuration{FullDay, Morning, Afternoon} {
		if DurationDisplays[d] == "" {
			t.Errorf("no display for duration %s", d)
		}
	}
}
