package services

import (
	"context"
	"recaptchaguard/model"
	"time"

	"cloud.google.com/go/recaptchaenterprise/v2/apiv1/recaptchaenterprisepb"
	"github.com/googleapis/gax-go/v2"
)

type fakeClient struct {
	createRequests   []*recaptchaenterprisepb.CreateAssessmentRequest
	annotateRequests []*recaptchaenterprisepb.AnnotateAssessmentRequest
	response         *recaptchaenterprisepb.Assessment
	createErr        error
	annotateErr      error
}

func (f *fakeClient) CreateAssessment(_ context.Context, req *recaptchaenterprisepb.CreateAssessmentRequest, _ ...gax.CallOption) (*recaptchaenterprisepb.Assessment, error) {
	f.createRequests = append(f.createRequests, req)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.response, nil
}

func (f *fakeClient) AnnotateAssessment(_ context.Context, req *recaptchaenterprisepb.AnnotateAssessmentRequest, _ ...gax.CallOption) (*recaptchaenterprisepb.AnnotateAssessmentResponse, error) {
	f.annotateRequests = append(f.annotateRequests, req)
	if f.annotateErr != nil {
		return nil, f.annotateErr
	}
	return &recaptchaenterprisepb.AnnotateAssessmentResponse{}, nil
}

type fakeAudit struct {
	saved     []model.ResponseData
	saveErr   error
	limit     int
	cutoff    time.Time
	purgeRows int64
}

func (f *fakeAudit) Save(_ context.Context, data *model.ResponseData) error {
	f.saved = append(f.saved, *data)
	return f.saveErr
}

func (f *fakeAudit) Recent(_ context.Context, limit int) ([]model.ResponseData, error) {
	f.limit = limit
	return f.saved, nil
}

func (f *fakeAudit) PurgeBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.purgeRows, nil
}

type fakeRecords struct {
	records   map[string]*model.AssessmentRecord
	saveErr   error
	purgedAt  time.Time
	annotated map[string]string
}

func newFakeRecords() *fakeRecords {
	return &fakeRecords{records: map[string]*model.AssessmentRecord{}, annotated: map[string]string{}}
}

func (f *fakeRecords) Save(_ context.Context, record *model.AssessmentRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.records[record.AssessmentID] = record
	return nil
}

func (f *fakeRecords) Get(_ context.Context, assessmentID string) (*model.AssessmentRecord, error) {
	record, ok := f.records[assessmentID]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeRecords) MarkAnnotated(_ context.Context, assessmentID, annotation string) error {
	f.annotated[assessmentID] = annotation
	return nil
}

func (f *fakeRecords) PurgeExpired(_ context.Context, now time.Time) (int, error) {
	f.purgedAt = now
	return 0, nil
}

func validAssessment(action string, score float32, reasons ...recaptchaenterprisepb.RiskAnalysis_ClassificationReason) *recaptchaenterprisepb.Assessment {
	return &recaptchaenterprisepb.Assessment{
		Name: "projects/my-project/assessments/abc123",
		TokenProperties: &recaptchaenterprisepb.TokenProperties{
			Valid:  true,
			Action: action,
		},
		RiskAnalysis: &recaptchaenterprisepb.RiskAnalysis{
			Score:   score,
			Reasons: reasons,
		},
	}
}
