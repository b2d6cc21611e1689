package model

import "time"

type ResponseData struct {
	ID           uint      `json:"-" gorm:"column:response_id;primaryKey;autoIncrement"`
	Success      bool      `json:"success" gorm:"column:success;not null"`
	Score        *float32  `json:"score,omitempty" gorm:"column:score"`
	Action       string    `json:"action,omitempty" gorm:"column:action;size:100"`
	Reasons      []string  `json:"reasons,omitempty" gorm:"-"`
	ReasonList   string    `json:"-" gorm:"column:reasons;type:text"`
	Message      string    `json:"message,omitempty" gorm:"column:message;size:255"`
	AssessmentID string    `json:"assessmentId,omitempty" gorm:"column:assessment_id;size:64;index"`
	CreateAt     time.Time `json:"-" gorm:"column:create_at;autoCreateTime"`
}

func (ResponseData) TableName() string {
	return "response"
}

// AssessmentRecord is kept in Firestore so an assessment can be annotated later.
type AssessmentRecord struct {
	AssessmentID string    `firestore:"assessmentId"`
	ProjectID    string    `firestore:"projectId"`
	Action       string    `firestore:"action"`
	Score        float32   `firestore:"score"`
	Reasons      []string  `firestore:"reasons"`
	Annotated    bool      `firestore:"annotated"`
	Annotation   string    `firestore:"annotation,omitempty"`
	CreatedAt    time.Time `firestore:"createdAt"`
	ExpiresAt    time.Time `firestore:"expiresAt"`
}

func (AssessmentRecord) TableName() string {
	return "captchaAssessments"
}
