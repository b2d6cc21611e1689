package services

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/recaptchaenterprise/v2/apiv1/recaptchaenterprisepb"
)

var (
	ErrUnknownAnnotation = errors.New("unknown annotation")
	ErrUnknownReason     = errors.New("unknown annotation reason")
)

// buildAnnotateRequest maps enum names onto an AnnotateAssessmentRequest for name.
func buildAnnotateRequest(name, annotation string, reasons []string) (*recaptchaenterprisepb.AnnotateAssessmentRequest, error) {
	value, ok := recaptchaenterprisepb.AnnotateAssessmentRequest_Annotation_value[annotation]
	if !ok || value == int32(recaptchaenterprisepb.AnnotateAssessmentRequest_ANNOTATION_UNSPECIFIED) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAnnotation, annotation)
	}

	request := &recaptchaenterprisepb.AnnotateAssessmentRequest{
		Name:       name,
		Annotation: recaptchaenterprisepb.AnnotateAssessmentRequest_Annotation(value),
	}
	for _, reason := range reasons {
		r, ok := recaptchaenterprisepb.AnnotateAssessmentRequest_Reason_value[reason]
		if !ok || r == int32(recaptchaenterprisepb.AnnotateAssessmentRequest_REASON_UNSPECIFIED) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownReason, reason)
		}
		request.Reasons = append(request.Reasons, recaptchaenterprisepb.AnnotateAssessmentRequest_Reason(r))
	}
	return request, nil
}

// Annotate reports the real outcome of an assessment this service created earlier.
func (s *CaptchaService) Annotate(ctx context.Context, assessmentID, annotation string, reasons []string) error {
	record, err := s.records.Get(ctx, assessmentID)
	if err != nil {
		return err
	}

	request, err := buildAnnotateRequest(AssessmentPath(record.ProjectID, assessmentID), annotation, reasons)
	if err != nil {
		return err
	}

	if _, err := s.client.AnnotateAssessment(ctx, request); err != nil {
		return fmt.Errorf("annotate assessment: %w", err)
	}

	return s.records.MarkAnnotated(ctx, assessmentID, annotation)
}
