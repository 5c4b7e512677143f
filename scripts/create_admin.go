// scripts/create_admin.go
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kuruchon/leaveApp/config"
	"github.com/kuruchon/leaveApp/database"
	"github.com/kuruchon/leaveApp/models"
)

func main() {
	// โหลด config และเชื่อม DB ตามที่ main.go ใช้จริง
	cfg := config.Load()
	database.Connect(cfg)

	id := "admin"
	password := "1234"

	// แฮชรหัสผ่าน
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	// ตรวจว่ามีผู้ใช้งาน id นี้อยู่หรือไม่
	var existing models.User
	if err := database.DB.Where("id = ?", id).First(&existing).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("failed to query users: %v", err)
		}
	} else {
		fmt.Println("⚠️  Admin user already exists with id:", id)
		os.Exit(0)
	}

	// สร้าง user ใหม่ role=ADMIN
	u := models.User{
		ID:       id,
		Name:     "ผู้ดูแลระบบ",
		Role:     models.RoleAdmin,
		Password: string(hashed),
	}
	if err := database.DB.Create(&u).Error; err != nil {
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("✅ Admin user created successfully!")
	fmt.Println("   ID:", id)
	fmt.Println("   Password:", password, "(plain, remember to change later!)")
}
