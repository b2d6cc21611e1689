package dto

type CaptchaRequest struct {
	Token  string `json:"token" validate:"required"`
	Action string `json:"action" validate:"required"`
}

type AssessmentResult struct {
	Score        float32
	Action       string
	Reasons      []string
	AssessmentID string
	Name         string
}

type AnnotateRequest struct {
	AssessmentID string   `json:"assessmentId" validate:"required"`
	Annotation   string   `json:"annotation" validate:"required,oneof=LEGITIMATE FRAUDULENT PASSWORD_CORRECT PASSWORD_INCORRECT"`
	Reasons      []string `json:"reasons" validate:"omitempty,dive,required"`
}
