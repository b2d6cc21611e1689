package services

import (
	"context"
	"recaptchaguard/model"
	"strings"
	"time"

	"gorm.io/gorm"
)

type AuditLog interface {
	Save(ctx context.Context, data *model.ResponseData) error
	Recent(ctx context.Context, limit int) ([]model.ResponseData, error)
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// AuditStore keeps one row per verification in the response table.
type AuditStore struct {
	db *gorm.DB
}

func NewAuditStore(db *gorm.DB) *AuditStore {
	return &AuditStore{db: db}
}

func (s *AuditStore) Save(ctx context.Context, data *model.ResponseData) error {
	data.ReasonList = strings.Join(data.Reasons, ",")
	return s.db.WithContext(ctx).Create(data).Error
}

func (s *AuditStore) Recent(ctx context.Context, limit int) ([]model.ResponseData, error) {
	var rows []model.ResponseData
	if err := s.db.WithContext(ctx).Order("create_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].ReasonList != "" {
			rows[i].Reasons = strings.Split(rows[i].ReasonList, ",")
		}
	}
	return rows, nil
}

func (s *AuditStore) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("create_at < ?", cutoff).Delete(&model.ResponseData{})
	return result.RowsAffected, result.Error
}
