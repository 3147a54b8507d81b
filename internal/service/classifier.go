package service

import (
	"github.com/perio-stage-predictor/internal/domain"
)

// ClassifyStage maps an HbA1c percentage to a periodontal stage using the
// descending thresholds in domain.StageThresholds. A value equal to a bound
// belongs to the more severe stage.
func ClassifyStage(hba1c float64) domain.Stage {
	for _, t := range domain.StageThresholds {
		if hba1c >= t.MinHbA1c {
			return t.Stage
		}
	}
	return domain.StageHealthy
}
