package database

import (
	"github.com/fahrizm/soalgen-be/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.UploadSession{},
		&entity.ExtractedQuestion{},
		&entity.QuestionBankEntry{},
	)
	return err
}
