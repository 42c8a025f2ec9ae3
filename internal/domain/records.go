package domain

import (
	"time"

	"gorm.io/gorm"
)

// Persistence records. Questions, media paths and responses are stored as
// JSON text columns: scripts and results travel the wire as nested JSON and
// are never queried by their inner fields.

// ScriptRecord struct - Storage row for one script
type ScriptRecord struct {
	ID        string     `gorm:"type:varchar(64);primary_key;"`
	Name      string     `gorm:"type:varchar(200);not null;"`
	Questions string     `gorm:"type:text;not null;"`
	CreatedAt *time.Time `gorm:"type:timestamp"`
	UpdatedAt *time.Time `gorm:"type:timestamp"`
}

// TableName func
func (s *ScriptRecord) TableName() string {
	return "scripts"
}

// ResultRecord struct - Storage row for one completed UX test result
type ResultRecord struct {
	ID             string     `gorm:"type:varchar(64);primary_key;"`
	ScriptID       string     `gorm:"type:varchar(64);not null;"`
	ScriptName     string     `gorm:"type:varchar(200);not null;"`
	MediaID        string     `gorm:"type:varchar(64);not null;"`
	AssistantID    string     `gorm:"type:varchar(64)"`
	TimestampStart string     `gorm:"type:varchar(40);not null;"`
	TimestampEnd   string     `gorm:"type:varchar(40);not null;"`
	Media          string     `gorm:"type:text;not null;"`
	Responses      string     `gorm:"type:text;not null;"`
	CreatedAt      *time.Time `gorm:"type:timestamp"`
}

// TableName func
func (r *ResultRecord) TableName() string {
	return "ux_test_results"
}

// MigrateDatabase func - Auto-migrate database schema
func MigrateDatabase(db *gorm.DB) {
	if db == nil {
		panic("An error when connect database")
	}

	err := db.AutoMigrate(&ScriptRecord{}, &ResultRecord{})
	if err != nil {
		panic(err)
	}
}
