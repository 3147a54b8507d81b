package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/perio-stage-predictor/internal/domain"
)

// ResultRecorder stores the latest prediction of a session.
type ResultRecorder interface {
	Record(result *domain.PredictionResult)
}

// Observer is notified of every submission outcome.
type Observer interface {
	RecordPrediction(stage domain.Stage, duration time.Duration)
	RecordRejection(field string)
}

// PredictionService runs the submit workflow: validate the form, classify
// the record and hand the result to the caller's session.
type PredictionService struct {
	logger   *logrus.Logger
	observer Observer
	now      func() time.Time
}

// NewPredictionService creates a new prediction service
func NewPredictionService(logger *logrus.Logger, observer Observer) *PredictionService {
	return &PredictionService{
		logger:   logger,
		observer: observer,
		now:      time.Now,
	}
}

// Predict validates the submission and, on success, records a new result in
// state, replacing any previous one. On a validation error state is not touched.
func (p *PredictionService) Predict(ctx context.Context, sub *Submission, state ResultRecorder) (*domain.PredictionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	startTime := p.now()

	record, err := BuildRecord(sub)
	if err != nil {
		if verr, ok := domain.AsValidationError(err); ok {
			p.logger.WithFields(logrus.Fields{
				"field":   verr.Field,
				"message": verr.Message,
			}).Info("Rejected patient form submission")
			p.observer.RecordRejection(verr.Field)
		}
		return nil, fmt.Errorf("invalid patient form: %w", err)
	}

	stage := ClassifyStage(record.HbA1c())
	result := &domain.PredictionResult{
		ID:        uuid.New().String(),
		Stage:     stage,
		Report:    FormatReport(stage, record),
		Record:    record,
		CreatedAt: startTime.UTC(),
	}

	state.Record(result)

	elapsed := p.now().Sub(startTime)
	p.observer.RecordPrediction(stage, elapsed)

	p.logger.WithFields(logrus.Fields{
		"prediction_id":   result.ID,
		"stage":           result.Stage,
		"processing_time": elapsed,
	}).Info("Periodontal stage prediction completed")

	return result, nil
}
