package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"recaptchaguard/dto"

	"cloud.google.com/go/recaptchaenterprise/v2/apiv1/recaptchaenterprisepb"
	"github.com/googleapis/gax-go/v2"
)

var (
	ErrInvalidToken   = errors.New("recaptcha token is invalid")
	ErrActionMismatch = errors.New("recaptcha action does not match")
)

// AssessmentClient is the part of the reCAPTCHA Enterprise client the service uses.
// *recaptcha.Client satisfies it.
type AssessmentClient interface {
	CreateAssessment(ctx context.Context, req *recaptchaenterprisepb.CreateAssessmentRequest, opts ...gax.CallOption) (*recaptchaenterprisepb.Assessment, error)
	AnnotateAssessment(ctx context.Context, req *recaptchaenterprisepb.AnnotateAssessmentRequest, opts ...gax.CallOption) (*recaptchaenterprisepb.AnnotateAssessmentResponse, error)
}

type InvalidTokenError struct {
	Reason string
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("recaptcha token is invalid: %s", e.Reason)
}

func (e *InvalidTokenError) Is(target error) bool {
	return target == ErrInvalidToken
}

type ActionMismatchError struct {
	Expected string
	Actual   string
}

func (e *ActionMismatchError) Error() string {
	return fmt.Sprintf("recaptcha action mismatch: expected %q, got %q", e.Expected, e.Actual)
}

func (e *ActionMismatchError) Is(target error) bool {
	return target == ErrActionMismatch
}

type Assessor struct {
	client AssessmentClient
	out    io.Writer
}

// NewAssessor returns an Assessor that reports to out. A nil out reports to stdout.
func NewAssessor(client AssessmentClient, out io.Writer) *Assessor {
	if out == nil {
		out = os.Stdout
	}
	return &Assessor{client: client, out: out}
}

// Assess creates an assessment for token and checks it against expectedAction.
// The inputs are forwarded as-is; the remote service is the only validator.
func (a *Assessor) Assess(ctx context.Context, projectID, recaptchaKey, token, expectedAction string) (*dto.AssessmentResult, error) {
	// ตั้งค่า event ที่จะส่งไปประเมิน
	event := &recaptchaenterprisepb.Event{
		SiteKey: recaptchaKey,
		Token:   token,
	}

	request := &recaptchaenterprisepb.CreateAssessmentRequest{
		Parent: ProjectPath(projectID),
		Assessment: &recaptchaenterprisepb.Assessment{
			Event: event,
		},
	}

	response, err := a.client.CreateAssessment(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("create assessment: %w", err)
	}

	// ตรวจสอบว่า token ถูกต้องหรือไม่
	tokenProperties := response.GetTokenProperties()
	if !tokenProperties.GetValid() {
		reason := tokenProperties.GetInvalidReason().String()
		fmt.Fprintf(a.out, "The CreateAssessment call failed because the token was invalid for the following reasons: %s\n", reason)
		return nil, &InvalidTokenError{Reason: reason}
	}

	// ตรวจสอบว่า action ตรงกับที่คาดไว้
	if tokenProperties.GetAction() != expectedAction {
		fmt.Fprintln(a.out, "The action attribute in your reCAPTCHA tag does not match the action you are expecting to score")
		return nil, &ActionMismatchError{Expected: expectedAction, Actual: tokenProperties.GetAction()}
	}

	riskAnalysis := response.GetRiskAnalysis()
	reasons := make([]string, 0, len(riskAnalysis.GetReasons()))
	for _, reason := range riskAnalysis.GetReasons() {
		reasons = append(reasons, reason.String())
		fmt.Fprintln(a.out, reason.String())
	}
	fmt.Fprintf(a.out, "The reCAPTCHA score for this token is: %v\n", riskAnalysis.GetScore())

	// ชื่อ assessment ใช้สำหรับ annotate ภายหลัง
	_, assessmentID, err := ParseAssessmentPath(response.GetName())
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "Assessment name: %s\n", assessmentID)

	return &dto.AssessmentResult{
		Score:        riskAnalysis.GetScore(),
		Action:       tokenProperties.GetAction(),
		Reasons:      reasons,
		AssessmentID: assessmentID,
		Name:         response.GetName(),
	}, nil
}
