package models

import "time"

type UserRole string

const (
	RoleTeacher UserRole = "TEACHER"
	RoleAdmin   UserRole = "ADMIN"
)

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:40"` // รหัสบุคลากร เช่น "t001"
	Name      string    `json:"name" gorm:"size:120;not null"`
	Role      UserRole  `json:"role" gorm:"size:20;not null"` // "TEACHER" | "ADMIN"
	Password  string    `json:"-" gorm:"not null"`            // เก็บ bcrypt hash
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
