package repository

import (
	"github.com/fahrizm/soalgen-be/internal/entity"
	"gorm.io/gorm"
)

type (
	QuestionBankRepository interface {
		CreateEntry(db *gorm.DB, entry *entity.QuestionBankEntry) error
		FindByEntryID(db *gorm.DB, entryID string) (*entity.QuestionBankEntry, error)
		FindByEntryIDs(db *gorm.DB, entryIDs []string) ([]entity.QuestionBankEntry, error)
		FindBySubjectChapter(db *gorm.DB, subject, chapter string, limit int) ([]entity.QuestionBankEntry, error)

		// UpdateMetadata touches only the mutable columns. Identity, text,
		// options, correct index and vector reference never change here.
		UpdateMetadata(db *gorm.DB, entryID, chapter, topics, tags, difficulty string) error
	}

	questionBankRepository struct {
		db *gorm.DB
	}
)

func NewQuestionBankRepository(db *gorm.DB) QuestionBankRepository {
	return &questionBankRepository{db: db}
}

func (r *questionBankRepository) CreateEntry(db *gorm.DB, entry *entity.QuestionBankEntry) error {
	if db == nil {
		db = r.db
	}
	return db.Create(entry).Error
}

func (r *questionBankRepository) FindByEntryID(db *gorm.DB, entryID string) (*entity.QuestionBankEntry, error) {
	if db == nil {
		db = r.db
	}
	var entry entity.QuestionBankEntry
	err := db.Where("entry_id = ?", entryID).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *questionBankRepository) FindByEntryIDs(db *gorm.DB, entryIDs []string) ([]entity.QuestionBankEntry, error) {
	if db == nil {
		db = r.db
	}
	if len(entryIDs) == 0 {
		return nil, nil
	}
	var entries []entity.QuestionBankEntry
	err := db.Where("entry_id IN ?", entryIDs).Find(&entries).Error
	return entries, err
}

func (r *questionBankRepository) FindBySubjectChapter(db *gorm.DB, subject, chapter string, limit int) ([]entity.QuestionBankEntry, error) {
	if db == nil {
		db = r.db
	}
	query := db.Where("subject = ?", subject)
	if chapter != "" {
		query = query.Where("chapter = ?", chapter)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var entries []entity.QuestionBankEntry
	err := query.Order("created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *questionBankRepository) UpdateMetadata(db *gorm.DB, entryID, chapter, topics, tags, difficulty string) error {
	if db == nil {
		db = r.db
	}
	updates := map[string]any{}
	if chapter != "" {
		updates["chapter"] = chapter
	}
	if topics != "" {
		updates["topics"] = topics
	}
	if tags != "" {
		updates["tags"] = tags
	}
	if difficulty != "" {
		updates["difficulty"] = difficulty
	}
	if len(updates) == 0 {
		return nil
	}
	return db.Model(&entity.QuestionBankEntry{}).
		Where("entry_id = ?", entryID).
		Updates(updates).Error
}
