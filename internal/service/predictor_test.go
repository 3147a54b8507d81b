package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perio-stage-predictor/internal/domain"
)

type observerStub struct {
	stages   []domain.Stage
	rejected []string
}

func (o *observerStub) RecordPrediction(stage domain.Stage, _ time.Duration) {
	o.stages = append(o.stages, stage)
}

func (o *observerStub) RecordRejection(field string) {
	o.rejected = append(o.rejected, field)
}

type recorderStub struct {
	results []*domain.PredictionResult
}

func (r *recorderStub) Record(result *domain.PredictionResult) {
	r.results = append(r.results, result)
}

func newTestPredictionService() (*PredictionService, *observerStub) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	obs := &observerStub{}
	return NewPredictionService(logger, obs), obs
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestPredictionService_StageIVScenario(t *testing.T) {
	svc, obs := newTestPredictionService()
	rec := &recorderStub{}

	sub := &Submission{
		HbA1c: floatPtr(8.2), BMI: floatPtr(25), TG: floatPtr(150), Chol: floatPtr(200),
		Age: floatPtr(35), HDL: floatPtr(40), LDL: floatPtr(100), Urea: floatPtr(30),
		Creatinine: floatPtr(1.0), Cr: floatPtr(1.2),
		Gender: "M", Class: "N",
	}

	result, err := svc.Predict(context.Background(), sub, rec)
	require.NoError(t, err)

	assert.Equal(t, domain.StageIV, result.Stage)
	assert.Contains(t, result.Report, "Stage IV")
	assert.Contains(t, result.Report, "8.2")
	assert.NotEmpty(t, result.ID)
	assert.False(t, result.CreatedAt.IsZero())
	require.Len(t, rec.results, 1)
	assert.Same(t, result, rec.results[0])
	assert.Equal(t, []domain.Stage{domain.StageIV}, obs.stages)
}

func TestPredictionService_HealthyScenario(t *testing.T) {
	svc, obs := newTestPredictionService()
	rec := &recorderStub{}

	sub := DefaultSubmission()
	sub.SetValue(domain.FieldHbA1c, 5.0)
	sub.Gender = "F"
	sub.Class = "Y"

	result, err := svc.Predict(context.Background(), sub, rec)
	require.NoError(t, err)
	assert.Equal(t, domain.StageHealthy, result.Stage)
	assert.Equal(t, []domain.Stage{domain.StageHealthy}, obs.stages)
}

func TestPredictionService_RejectsUnsetGender(t *testing.T) {
	svc, obs := newTestPredictionService()
	rec := &recorderStub{}

	for _, hba1c := range []float64{0, 5.5, 9.3} {
		sub := DefaultSubmission()
		sub.SetValue(domain.FieldHbA1c, hba1c)
		sub.Class = "N"

		result, err := svc.Predict(context.Background(), sub, rec)
		assert.Nil(t, result)
		_, ok := domain.AsValidationError(err)
		assert.True(t, ok, "expected ValidationError for hba1c %v", hba1c)
	}
	assert.Empty(t, rec.results, "rejected submissions must not be recorded")
	assert.Empty(t, obs.stages)
	assert.Equal(t, []string{"gender", "gender", "gender"}, obs.rejected)
}

func TestPredictionService_CancelledContext(t *testing.T) {
	svc, obs := newTestPredictionService()
	rec := &recorderStub{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sub := DefaultSubmission()
	sub.Gender = "M"
	sub.Class = "N"

	_, err := svc.Predict(ctx, sub, rec)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.results)
	assert.Empty(t, obs.stages)
	assert.Empty(t, obs.rejected)
}
