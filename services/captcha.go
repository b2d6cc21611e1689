package services

import (
	"context"
	"errors"
	"io"
	"log"
	"recaptchaguard/model"
	"time"
)

const (
	DefaultRecordTTL  = 30 * 24 * time.Hour
	DefaultListLimit  = 50
	MaxListLimit      = 200
	messageInvalid    = "Invalid reCAPTCHA token"
	messageMismatch   = "reCAPTCHA action mismatch"
	messageRemoteFail = "reCAPTCHA assessment failed"
)

// CaptchaService verifies tokens for one project/site key and records the outcome.
type CaptchaService struct {
	projectID string
	siteKey   string
	client    AssessmentClient
	assessor  *Assessor
	audit     AuditLog
	records   RecordStore
	recordTTL time.Duration
	now       func() time.Time
}

func NewCaptchaService(cfg *model.RecaptchaConfig, client AssessmentClient, audit AuditLog, records RecordStore, out io.Writer) *CaptchaService {
	recordTTL := DefaultRecordTTL
	if cfg.RetentionDays > 0 {
		recordTTL = time.Duration(cfg.RetentionDays) * 24 * time.Hour
	}
	return &CaptchaService{
		projectID: cfg.ProjectID,
		siteKey:   cfg.SiteKey,
		client:    client,
		assessor:  NewAssessor(client, out),
		audit:     audit,
		records:   records,
		recordTTL: recordTTL,
		now:       time.Now,
	}
}

// Verify assesses token against action. The returned ResponseData is always filled in,
// err tells the caller which outcome it was.
func (s *CaptchaService) Verify(ctx context.Context, token, action string) (model.ResponseData, error) {
	result, err := s.assessor.Assess(ctx, s.projectID, s.siteKey, token, action)

	var data model.ResponseData
	switch {
	case err == nil:
		data = model.ResponseData{
			Success:      true,
			Score:        &result.Score,
			Action:       result.Action,
			Reasons:      result.Reasons,
			AssessmentID: result.AssessmentID,
		}
	case errors.Is(err, ErrInvalidToken):
		data = model.ResponseData{Success: false, Action: action, Message: messageInvalid}
		var invalid *InvalidTokenError
		if errors.As(err, &invalid) {
			data.Reasons = []string{invalid.Reason}
		}
	case errors.Is(err, ErrActionMismatch):
		data = model.ResponseData{Success: false, Action: action, Message: messageMismatch}
	default:
		data = model.ResponseData{Success: false, Action: action, Message: messageRemoteFail}
	}

	if auditErr := s.audit.Save(ctx, &data); auditErr != nil {
		log.Printf("Failed to save captcha audit row: %v", auditErr)
	}

	if err != nil {
		return data, err
	}

	now := s.now()
	record := &model.AssessmentRecord{
		AssessmentID: result.AssessmentID,
		ProjectID:    s.projectID,
		Action:       result.Action,
		Score:        result.Score,
		Reasons:      result.Reasons,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.recordTTL),
	}
	if recordErr := s.records.Save(ctx, record); recordErr != nil {
		log.Printf("Failed to save assessment record %s: %v", result.AssessmentID, recordErr)
	}

	return data, nil
}

func (s *CaptchaService) Recent(ctx context.Context, limit int) ([]model.ResponseData, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.audit.Recent(ctx, limit)
}

// Purge drops audit rows older than the retention window and expired assessment records.
func (s *CaptchaService) Purge(ctx context.Context) error {
	now := s.now()
	rows, err := s.audit.PurgeBefore(ctx, now.Add(-s.recordTTL))
	if err != nil {
		return err
	}
	records, err := s.records.PurgeExpired(ctx, now)
	if err != nil {
		return err
	}
	log.Printf("Purged %d audit rows and %d assessment records", rows, records)
	return nil
}
