package repository

import (
	"github.com/fahrizm/soalgen-be/internal/entity"
	"gorm.io/gorm"
)

type (
	SessionRepository interface {
		Create(db *gorm.DB, session *entity.UploadSession) error
		FindBySessionID(db *gorm.DB, sessionID string) (*entity.UploadSession, error)
		FindAll(db *gorm.DB, status string, page, limit int) ([]entity.UploadSession, int64, error)
		UpdateStatus(db *gorm.DB, sessionID, status string) error
		MarkFailed(db *gorm.DB, sessionID, message string) error

		// CommitPage persists one page's questions and bumps the session's
		// running counter in a single transaction, so a crash never leaves
		// a page half-committed.
		CommitPage(db *gorm.DB, sessionID string, questions []*entity.ExtractedQuestion) error

		FindQuestionsBySessionID(db *gorm.DB, sessionID string) ([]entity.ExtractedQuestion, error)
		FindQuestionsByQuestionIDs(db *gorm.DB, questionIDs []string) ([]entity.ExtractedQuestion, error)
		FindPendingPromotion(db *gorm.DB, sessionID string) ([]entity.ExtractedQuestion, error)
		MarkPromoted(db *gorm.DB, questionIDs []string) error
	}

	sessionRepository struct {
		db *gorm.DB
	}
)

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(db *gorm.DB, session *entity.UploadSession) error {
	if db == nil {
		db = r.db
	}
	return db.Create(session).Error
}

func (r *sessionRepository) FindBySessionID(db *gorm.DB, sessionID string) (*entity.UploadSession, error) {
	if db == nil {
		db = r.db
	}
	var session entity.UploadSession
	err := db.Where("session_id = ?", sessionID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindAll(db *gorm.DB, status string, page, limit int) ([]entity.UploadSession, int64, error) {
	if db == nil {
		db = r.db
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := db.Model(&entity.UploadSession{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []entity.UploadSession
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&sessions).Error
	return sessions, total, err
}

func (r *sessionRepository) UpdateStatus(db *gorm.DB, sessionID, status string) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&entity.UploadSession{}).
		Where("session_id = ?", sessionID).
		Update("status", status).Error
}

func (r *sessionRepository) MarkFailed(db *gorm.DB, sessionID, message string) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&entity.UploadSession{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]any{
			"status":        entity.SessionStatusFailed,
			"error_message": message,
		}).Error
}

func (r *sessionRepository) CommitPage(db *gorm.DB, sessionID string, questions []*entity.ExtractedQuestion) error {
	if db == nil {
		db = r.db
	}
	if len(questions) == 0 {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, q := range questions {
			if err := tx.Create(q).Error; err != nil {
				return err
			}
		}
		return tx.Model(&entity.UploadSession{}).
			Where("session_id = ?", sessionID).
			UpdateColumn("total_questions_extracted", gorm.Expr("total_questions_extracted + ?", len(questions))).Error
	})
}

func (r *sessionRepository) FindQuestionsBySessionID(db *gorm.DB, sessionID string) ([]entity.ExtractedQuestion, error) {
	if db == nil {
		db = r.db
	}
	var questions []entity.ExtractedQuestion
	err := db.Where("session_id = ?", sessionID).
		Order("page_number ASC, id ASC").
		Find(&questions).Error
	return questions, err
}

func (r *sessionRepository) FindQuestionsByQuestionIDs(db *gorm.DB, questionIDs []string) ([]entity.ExtractedQuestion, error) {
	if db == nil {
		db = r.db
	}
	if len(questionIDs) == 0 {
		return nil, nil
	}
	var questions []entity.ExtractedQuestion
	err := db.Where("question_id IN ?", questionIDs).Find(&questions).Error
	return questions, err
}

func (r *sessionRepository) FindPendingPromotion(db *gorm.DB, sessionID string) ([]entity.ExtractedQuestion, error) {
	if db == nil {
		db = r.db
	}
	query := db.Where("promoted = ?", false)
	if sessionID != "" {
		query = query.Where("session_id = ?", sessionID)
	}
	var questions []entity.ExtractedQuestion
	err := query.Order("created_at ASC").Find(&questions).Error
	return questions, err
}

func (r *sessionRepository) MarkPromoted(db *gorm.DB, questionIDs []string) error {
	if db == nil {
		db = r.db
	}
	if len(questionIDs) == 0 {
		return nil
	}
	return db.Model(&entity.ExtractedQuestion{}).
		Where("question_id IN ?", questionIDs).
		Update("promoted", true).Error
}
