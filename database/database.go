package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/kuruchon/leaveApp/config"
	"github.com/kuruchon/leaveApp/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	Migrate(db)
}

// Migrate สร้าง/ปรับตารางทั้งหมด แล้ว seed ประเภทการลาเริ่มต้นถ้ายังว่าง
// แยกจาก Connect เพื่อให้เทสต์เรียกกับ sqlite ได้
func Migrate(db *gorm.DB) {
	if err := db.AutoMigrate(
		&models.User{},
		&models.LeaveType{},
		&models.LeaveRequest{},
	); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}

	seedLeaveTypes(db)
}

func seedLeaveTypes(db *gorm.DB) {
	var n int64
	if err := db.Model(&models.LeaveType{}).Count(&n).Error; err != nil || n > 0 {
		return
	}
	defaults := []string{"ลาป่วย", "ลากิจ", "ลาพักร้อน", "อื่นๆ"}
	for i, name := range defaults {
		if err := db.Create(&models.LeaveType{Name: name, Position: i + 1}).Error; err != nil {
			log.Printf("[seed] warn: leave type %q failed: %v", name, err)
		}
	}
	log.Printf("[seed] created %d default leave types", len(defaults))
}
