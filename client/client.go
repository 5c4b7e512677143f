// Package client เป็น Go client ของโปรโตคอล action (POST /api)
// หนึ่งคำสั่ง = หนึ่ง round trip, ไม่มี retry — พังก็คืน error เดียวให้ผู้เรียก
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kuruchon/leaveApp/models"
)

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Token คืน JWT ปัจจุบัน (ว่าง = ยังไม่ล็อกอิน)
func (c *Client) Token() string { return c.token }

type envelope struct {
	Action  string `json:"action"`
	Payload any    `json:"payload,omitempty"`
}

type response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	User    *models.User    `json:"user"`
	Token   string          `json:"token"`
}

func (c *Client) call(ctx context.Context, action string, payload any) (*response, error) {
	body, err := json.Marshal(envelope{Action: action, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	defer res.Body.Close()

	var out response
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: malformed response: %w", action, err)
	}
	if !out.Success {
		msg := out.Message
		if msg == "" {
			msg = "เกิดข้อผิดพลาดในการสื่อสารกับเซิร์ฟเวอร์"
		}
		return nil, fmt.Errorf("%s: %s", action, msg)
	}
	return &out, nil
}

// InitialData ก้อนข้อมูลแรกหลังเปิดแอป
type InitialData struct {
	Users         []models.User         `json:"users"`
	LeaveTypes    []string              `json:"leaveTypes"`
	LeaveRequests []models.LeaveRequest `json:"leaveRequests"`
}

func (c *Client) GetInitialData(ctx context.Context) (*InitialData, error) {
	res, err := c.call(ctx, "getInitialData", nil)
	if err != nil {
		return nil, err
	}
	var data InitialData
	if err := json.Unmarshal(res.Data, &data); err != nil {
		return nil, fmt.Errorf("getInitialData: malformed response: %w", err)
	}
	return &data, nil
}

// Login เก็บ token ไว้ใช้กับคำสั่งถัดไปเมื่อสำเร็จ
func (c *Client) Login(ctx context.Context, userID, password string) (*models.User, error) {
	res, err := c.call(ctx, "login", map[string]string{"userId": userID, "password": password})
	if err != nil {
		return nil, err
	}
	if res.User == nil {
		return nil, fmt.Errorf("login: malformed response: missing user")
	}
	c.token = res.Token
	return res.User, nil
}

// Logout ทิ้ง token ฝั่ง client (server ไม่เก็บ session)
func (c *Client) Logout() { c.token = "" }

func (c *Client) CreateLeave(ctx context.Context, r models.LeaveRequest) (*models.LeaveRequest, error) {
	return c.saveLeave(ctx, "createLeave", r)
}

func (c *Client) UpdateLeave(ctx context.Context, r models.LeaveRequest) (*models.LeaveRequest, error) {
	return c.saveLeave(ctx, "updateLeave", r)
}

func (c *Client) saveLeave(ctx context.Context, action string, r models.LeaveRequest) (*models.LeaveRequest, error) {
	res, err := c.call(ctx, action, r)
	if err != nil {
		return nil, err
	}
	var saved models.LeaveRequest
	if err := json.Unmarshal(res.Data, &saved); err != nil {
		return nil, fmt.Errorf("%s: malformed response: %w", action, err)
	}
	return &saved, nil
}

func (c *Client) DeleteLeave(ctx context.Context, id string) error {
	_, err := c.call(ctx, "deleteLeave", map[string]string{"id": id})
	return err
}
