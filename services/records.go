package services

import (
	"context"
	"errors"
	"recaptchaguard/model"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var ErrRecordNotFound = errors.New("assessment record not found")

type RecordStore interface {
	Save(ctx context.Context, record *model.AssessmentRecord) error
	Get(ctx context.Context, assessmentID string) (*model.AssessmentRecord, error)
	MarkAnnotated(ctx context.Context, assessmentID, annotation string) error
	PurgeExpired(ctx context.Context, now time.Time) (int, error)
}

// FirestoreRecordStore keeps successful assessments in the captchaAssessments collection,
// keyed by assessment id.
type FirestoreRecordStore struct {
	client *firestore.Client
}

func NewFirestoreRecordStore(client *firestore.Client) *FirestoreRecordStore {
	return &FirestoreRecordStore{client: client}
}

func (s *FirestoreRecordStore) collection() *firestore.CollectionRef {
	return s.client.Collection(model.AssessmentRecord{}.TableName())
}

func (s *FirestoreRecordStore) Save(ctx context.Context, record *model.AssessmentRecord) error {
	_, err := s.collection().Doc(record.AssessmentID).Set(ctx, record)
	return err
}

func (s *FirestoreRecordStore) Get(ctx context.Context, assessmentID string) (*model.AssessmentRecord, error) {
	docSnap, err := s.collection().Doc(assessmentID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	var record model.AssessmentRecord
	if err := docSnap.DataTo(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *FirestoreRecordStore) MarkAnnotated(ctx context.Context, assessmentID, annotation string) error {
	_, err := s.collection().Doc(assessmentID).Update(ctx, []firestore.Update{
		{Path: "annotated", Value: true},
		{Path: "annotation", Value: annotation},
	})
	if status.Code(err) == codes.NotFound {
		return ErrRecordNotFound
	}
	return err
}

func (s *FirestoreRecordStore) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	iter := s.collection().Where("expiresAt", "<", now).Documents(ctx)
	defer iter.Stop()

	var deleted int
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return deleted, err
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
