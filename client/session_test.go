package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kuruchon/leaveApp/models"
)

// เซิร์ฟเวอร์ปลอมของโปรโตคอล action ไว้คุมคำตอบรายเทสต์
func fakeBackend(t *testing.T, respond func(action string, payload json.RawMessage) map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var env struct {
			Action  string          `json:"action"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
			t.Fatalf("backend decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(respond(env.Action, env.Payload))
	}))
}

func sampleRequest(id string, submitted time.Time) models.LeaveRequest {
	return models.LeaveRequest{
		ID:          id,
		UserID:      "t1",
		UserName:    "ครูเอ",
		LeaveType:   "ลาป่วย",
		StartDate:   "2024-06-10",
		EndDate:     "2024-06-10",
		Duration:    models.FullDay,
		Reason:      "ไข้",
		Signature:   "data:image/png;base64,iVBORw0KGgo=",
		Status:      models.StatusPending,
		SubmittedAt: submitted,
	}
}

func TestSessionLoad(t *testing.T) {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	srv := fakeBackend(t, func(action string, _ json.RawMessage) map[string]any {
		if action != "getInitialData" {
			t.Fatalf("unexpected action %s", action)
		}
		return map[string]any{"success": true, "data": InitialData{
			LeaveTypes: []string{"ลาป่วย", "ลากิจ"},
			LeaveRequests: []models.LeaveRequest{
				sampleRequest("old", base),
				sampleRequest("new", base.Add(time.Hour)),
			},
		}}
	})
	defer srv.Close()

	s := NewSession(New(srv.URL))
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.LeaveTypes()) != 2 {
		t.Errorf("leaveTypes = %v", s.LeaveTypes())
	}
	if got := s.Requests().All(); len(got) != 2 || got[0].ID != "new" {
		t.Errorf("store not sorted newest first: %v", got)
	}
}

func TestSessionLoginFailureLeavesSessionEmpty(t *testing.T) {
	srv := fakeBackend(t, func(action string, _ json.RawMessage) map[string]any {
		return map[string]any{"success": false, "message": "รหัสผู้ใช้หรือรหัสผ่านไม่ถูกต้อง"}
	})
	defer srv.Close()

	s := NewSession(New(srv.URL))
	err := s.Login(context.Background(), "t1", "wrong")
	if err == nil {
		t.Fatal("login succeeded against failing backend")
	}
	if s.CurrentUser() != nil {
		t.Error("failed login set current user")
	}
}

func TestSessionSaveFailureLeavesStoreUntouched(t *testing.T) {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	fail := false
	srv := fakeBackend(t, func(action string, payload json.RawMessage) map[string]any {
		switch action {
		case "login":
			return map[string]any{"success": true, "user": models.User{ID: "t1", Name: "ครูเอ", Role: models.RoleTeacher}, "token": "tok"}
		case "createLeave", "updateLeave":
			if fail {
				return map[string]any{"success": false, "message": "เกิดข้อผิดพลาดในการบันทึกข้อมูล"}
			}
			var r models.LeaveRequest
			json.Unmarshal(payload, &r)
			r.SubmittedAt = base
			return map[string]any{"success": true, "data": r}
		}
		t.Fatalf("unexpected action %s", action)
		return nil
	})
	defer srv.Close()

	s := NewSession(New(srv.URL))
	if err := s.Login(context.Background(), "t1", "1234"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := s.Save(context.Background(), sampleRequest("a", base)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if s.Requests().Len() != 1 {
		t.Fatalf("store len = %d, want 1", s.Requests().Len())
	}

	// remote พัง → store ต้องไม่เปลี่ยน
	fail = true
	edited := sampleRequest("a", base)
	edited.Reason = "ไม่ควรเห็น"
	if _, err := s.Save(context.Background(), edited); err == nil {
		t.Fatal("save succeeded against failing backend")
	}
	got, _ := s.Requests().Get("a")
	if got.Reason != "ไข้" {
		t.Errorf("store mutated after failed save: %q", got.Reason)
	}
}

func TestSessionDelete(t *testing.T) {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	srv := fakeBackend(t, func(action string, payload json.RawMessage) map[string]any {
		switch action {
		case "login":
			return map[string]any{"success": true, "user": models.User{ID: "t1", Role: models.RoleTeacher}, "token": "tok"}
		case "getInitialData":
			return map[string]any{"success": true, "data": InitialData{
				LeaveRequests: []models.LeaveRequest{sampleRequest("a", base)},
			}}
		case "deleteLeave":
			return map[string]any{"success": true, "data": map[string]string{"id": "a"}}
		}
		t.Fatalf("unexpected action %s", action)
		return nil
	})
	defer srv.Close()

	s := NewSession(New(srv.URL))
	s.Login(context.Background(), "t1", "1234")
	s.Load(context.Background())

	if err := s.Delete(context.Background(), "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.Requests().Len() != 0 {
		t.Error("store still holds deleted request")
	}
}

func TestSessionApprove(t *testing.T) {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	srv := fakeBackend(t, func(action string, payload json.RawMessage) map[string]any {
		switch action {
		case "login":
			return map[string]any{"success": true, "user": models.User{ID: "admin", Name: "ผู้ดูแลระบบ", Role: models.RoleAdmin}, "token": "tok"}
		case "getInitialData":
			return map[string]any{"success": true, "data": InitialData{
				LeaveRequests: []models.LeaveRequest{sampleRequest("a", base)},
			}}
		case "updateLeave":
			var r models.LeaveRequest
			json.Unmarshal(payload, &r)
			return map[string]any{"success": true, "data": r}
		}
		t.Fatalf("unexpected action %s", action)
		return nil
	})
	defer srv.Close()

	s := NewSession(New(srv.URL))
	s.Login(context.Background(), "admin", "1234")
	s.Load(context.Background())

	saved, err := s.Approve(context.Background(), "a")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if saved.Status != models.StatusApproved {
		t.Errorf("status = %s", saved.Status)
	}
	got, _ := s.Requests().Get("a")
	if got.Status != models.StatusApproved {
		t.Error("store not updated after approve")
	}
}

func TestSessionSaveValidatesBeforeRemoteCall(t *testing.T) {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	calls := 0
	srv := fakeBackend(t, func(action string, _ json.RawMessage) map[string]any {
		if action == "login" {
			return map[string]any{"success": true, "user": models.User{ID: "t1", Role: models.RoleTeacher}, "token": "tok"}
		}
		calls++
		return map[string]any{"success": true}
	})
	defer srv.Close()

	s := NewSession(New(srv.URL))
	s.Login(context.Background(), "t1", "1234")

	noReason := sampleRequest("a", base)
	noReason.Reason = "   "
	if _, err := s.Save(context.Background(), noReason); err != ErrReasonRequired {
		t.Errorf("empty reason = %v, want ErrReasonRequired", err)
	}

	noSig := sampleRequest("b", base)
	noSig.Signature = ""
	if _, err := s.Save(context.Background(), noSig); err != ErrSignatureRequired {
		t.Errorf("first submission without signature = %v, want ErrSignatureRequired", err)
	}

	if calls != 0 {
		t.Errorf("validation failures reached the backend %d times", calls)
	}
}

func TestSessionBusyFlag(t *testing.T) {
	s := NewSession(New("http://backend.invalid"))

	// ระหว่างโหลดค้างอยู่ ยิงซ้ำในกลุ่มเดียวกันต้องโดน ErrBusy
	if err := s.begin(OpLoad); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if !s.Busy(OpLoad) {
		t.Fatal("flag not set after begin")
	}
	if err := s.Load(context.Background()); err != ErrBusy {
		t.Errorf("re-entrant load = %v, want ErrBusy", err)
	}
	// คนละกลุ่มไม่เกี่ยวกัน
	if s.Busy(OpSave) {
		t.Error("save flagged busy by load")
	}

	s.end(OpLoad)
	if s.Busy(OpLoad) {
		t.Error("flag still set after end")
	}
}

func TestClientMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.GetInitialData(context.Background()); err == nil {
		t.Error("malformed response did not error")
	}
}

func TestLogoutClearsState(t *testing.T) {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	srv := fakeBackend(t, func(action string, _ json.RawMessage) map[string]any {
		switch action {
		case "login":
			return map[string]any{"success": true, "user": models.User{ID: "t1", Role: models.RoleTeacher}, "token": "tok"}
		default:
			return map[string]any{"success": true, "data": InitialData{
				LeaveRequests: []models.LeaveRequest{sampleRequest("a", base)},
			}}
		}
	})
	defer srv.Close()

	api := New(srv.URL)
	s := NewSession(api)
	s.Login(context.Background(), "t1", "1234")
	s.Load(context.Background())

	s.Logout()
	if s.CurrentUser() != nil || s.Requests().Len() != 0 || api.Token() != "" {
		t.Error("logout left session state behind")
	}
}
