package services

import (
	"bytes"
	"context"
	"errors"
	"recaptchaguard/model"
	"testing"
	"time"

	"cloud.google.com/go/recaptchaenterprise/v2/apiv1/recaptchaenterprisepb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestService(client *fakeClient, audit *fakeAudit, records *fakeRecords) *CaptchaService {
	cfg := &model.RecaptchaConfig{ProjectID: "my-project", SiteKey: "site-key", RetentionDays: 7}
	svc := NewCaptchaService(cfg, client, audit, records, &bytes.Buffer{})
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestCaptchaService_Verify(t *testing.T) {
	t.Run("success is audited and recorded", func(t *testing.T) {
		client := &fakeClient{response: validAssessment("login", 0.8, recaptchaenterprisepb.RiskAnalysis_AUTOMATION)}
		audit := &fakeAudit{}
		records := newFakeRecords()
		svc := newTestService(client, audit, records)

		data, err := svc.Verify(context.Background(), "token", "login")

		require.NoError(t, err)
		assert.True(t, data.Success)
		require.NotNil(t, data.Score)
		assert.Equal(t, float32(0.8), *data.Score)
		assert.Equal(t, []string{"AUTOMATION"}, data.Reasons)
		assert.Equal(t, "abc123", data.AssessmentID)
		assert.Equal(t, "site-key", client.createRequests[0].GetAssessment().GetEvent().GetSiteKey())

		require.Len(t, audit.saved, 1)
		assert.True(t, audit.saved[0].Success)

		record := records.records["abc123"]
		require.NotNil(t, record)
		assert.Equal(t, "my-project", record.ProjectID)
		assert.Equal(t, fixedNow, record.CreatedAt)
		assert.Equal(t, fixedNow.Add(7*24*time.Hour), record.ExpiresAt)
	})

	t.Run("zero score success keeps the score", func(t *testing.T) {
		client := &fakeClient{response: validAssessment("login", 0)}
		svc := newTestService(client, &fakeAudit{}, newFakeRecords())

		data, err := svc.Verify(context.Background(), "token", "login")

		require.NoError(t, err)
		require.NotNil(t, data.Score)
		assert.Zero(t, *data.Score)
	})

	t.Run("invalid token is audited but not recorded", func(t *testing.T) {
		client := &fakeClient{response: &recaptchaenterprisepb.Assessment{
			Name: "projects/my-project/assessments/abc123",
			TokenProperties: &recaptchaenterprisepb.TokenProperties{
				InvalidReason: recaptchaenterprisepb.TokenProperties_MALFORMED,
			},
		}}
		audit := &fakeAudit{}
		records := newFakeRecords()
		svc := newTestService(client, audit, records)

		data, err := svc.Verify(context.Background(), "token", "login")

		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.False(t, data.Success)
		assert.Nil(t, data.Score)
		assert.Equal(t, []string{"MALFORMED"}, data.Reasons)
		assert.Len(t, audit.saved, 1)
		assert.Empty(t, records.records)
	})

	t.Run("action mismatch has no score", func(t *testing.T) {
		client := &fakeClient{response: validAssessment("signup", 0.9)}
		svc := newTestService(client, &fakeAudit{}, newFakeRecords())

		data, err := svc.Verify(context.Background(), "token", "login")

		assert.ErrorIs(t, err, ErrActionMismatch)
		assert.False(t, data.Success)
		assert.Nil(t, data.Score)
		assert.Empty(t, data.AssessmentID)
	})

	t.Run("remote failure keeps status code", func(t *testing.T) {
		client := &fakeClient{createErr: status.Error(codes.ResourceExhausted, "quota")}
		audit := &fakeAudit{}
		svc := newTestService(client, audit, newFakeRecords())

		data, err := svc.Verify(context.Background(), "token", "login")

		require.Error(t, err)
		assert.Equal(t, codes.ResourceExhausted, status.Code(err))
		assert.False(t, data.Success)
		assert.Len(t, audit.saved, 1)
	})

	t.Run("persistence failures do not change the outcome", func(t *testing.T) {
		client := &fakeClient{response: validAssessment("login", 0.8)}
		audit := &fakeAudit{saveErr: errors.New("db down")}
		records := newFakeRecords()
		records.saveErr = errors.New("firestore down")
		svc := newTestService(client, audit, records)

		data, err := svc.Verify(context.Background(), "token", "login")

		require.NoError(t, err)
		assert.True(t, data.Success)
	})
}

func TestCaptchaService_Annotate(t *testing.T) {
	t.Run("annotates a recorded assessment", func(t *testing.T) {
		client := &fakeClient{}
		records := newFakeRecords()
		records.records["abc123"] = &model.AssessmentRecord{AssessmentID: "abc123", ProjectID: "my-project"}
		svc := newTestService(client, &fakeAudit{}, records)

		err := svc.Annotate(context.Background(), "abc123", "FRAUDULENT", []string{"CHARGEBACK"})

		require.NoError(t, err)
		require.Len(t, client.annotateRequests, 1)
		req := client.annotateRequests[0]
		assert.Equal(t, "projects/my-project/assessments/abc123", req.GetName())
		assert.Equal(t, recaptchaenterprisepb.AnnotateAssessmentRequest_FRAUDULENT, req.GetAnnotation())
		assert.Equal(t, []recaptchaenterprisepb.AnnotateAssessmentRequest_Reason{recaptchaenterprisepb.AnnotateAssessmentRequest_CHARGEBACK}, req.GetReasons())
		assert.Equal(t, "FRAUDULENT", records.annotated["abc123"])
	})

	t.Run("unknown assessment", func(t *testing.T) {
		client := &fakeClient{}
		svc := newTestService(client, &fakeAudit{}, newFakeRecords())

		err := svc.Annotate(context.Background(), "missing", "LEGITIMATE", nil)

		assert.ErrorIs(t, err, ErrRecordNotFound)
		assert.Empty(t, client.annotateRequests)
	})

	t.Run("rejects unknown enum names", func(t *testing.T) {
		client := &fakeClient{}
		records := newFakeRecords()
		records.records["abc123"] = &model.AssessmentRecord{AssessmentID: "abc123", ProjectID: "my-project"}
		svc := newTestService(client, &fakeAudit{}, records)

		assert.ErrorIs(t, svc.Annotate(context.Background(), "abc123", "MAYBE", nil), ErrUnknownAnnotation)
		assert.ErrorIs(t, svc.Annotate(context.Background(), "abc123", "ANNOTATION_UNSPECIFIED", nil), ErrUnknownAnnotation)
		assert.ErrorIs(t, svc.Annotate(context.Background(), "abc123", "LEGITIMATE", []string{"NOPE"}), ErrUnknownReason)
		assert.Empty(t, client.annotateRequests)
	})

	t.Run("remote failure leaves record unannotated", func(t *testing.T) {
		client := &fakeClient{annotateErr: status.Error(codes.NotFound, "gone")}
		records := newFakeRecords()
		records.records["abc123"] = &model.AssessmentRecord{AssessmentID: "abc123", ProjectID: "my-project"}
		svc := newTestService(client, &fakeAudit{}, records)

		err := svc.Annotate(context.Background(), "abc123", "LEGITIMATE", nil)

		assert.Equal(t, codes.NotFound, status.Code(err))
		assert.Empty(t, records.annotated)
	})
}

func TestCaptchaService_RecentAndPurge(t *testing.T) {
	audit := &fakeAudit{purgeRows: 3}
	records := newFakeRecords()
	svc := newTestService(&fakeClient{}, audit, records)

	_, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultListLimit, audit.limit)

	_, err = svc.Recent(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, MaxListLimit, audit.limit)

	require.NoError(t, svc.Purge(context.Background()))
	assert.Equal(t, fixedNow.Add(-7*24*time.Hour), audit.cutoff)
	assert.Equal(t, fixedNow, records.purgedAt)
}
