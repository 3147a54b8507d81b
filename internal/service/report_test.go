package service

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perio-stage-predictor/internal/domain"
)

func scenarioRecord(t *testing.T) *domain.PatientRecord {
	t.Helper()
	male := domain.GenderMale
	none := domain.ClassNonDiabetic
	rec, err := domain.NewPatientRecord(domain.LabValues{
		HbA1c: 8.2, BMI: 25, TG: 150, Chol: 200, Age: 35,
		HDL: 40, LDL: 100, Urea: 30, Creatinine: 1.0, Cr: 1.2,
	}, &male, &none)
	require.NoError(t, err)
	return rec
}

func TestFormatReport(t *testing.T) {
	rec := scenarioRecord(t)

	report := FormatReport(domain.StageIV, rec)

	assert.Contains(t, report, "Predicted Periodontal Stage: Stage IV")
	assert.Contains(t, report, "HbA1c (%): 8.2\n")
	assert.Contains(t, report, "BMI: 25.0\n")
	assert.Contains(t, report, "Triglycerides (TG, mg/dL): 150.0\n")
	assert.Contains(t, report, "Cholesterol (Chol, mg/dL): 200.0\n")
	assert.Contains(t, report, "Age (years): 35\n")
	assert.Contains(t, report, "HDL (mg/dL): 40\n")
	assert.Contains(t, report, "LDL (mg/dL): 100\n")
	assert.Contains(t, report, "Urea (mg/dL): 30\n")
	assert.Contains(t, report, "Creatinine (mg/dL): 1.0\n")
	assert.Contains(t, report, "Creatinine Ratio (Cr): 1.2\n")
	assert.Contains(t, report, "Gender: M\n")
	assert.Contains(t, report, "CLASS (Diabetes Status): N\n")
}

func TestFormatReportListsFieldsInFormOrder(t *testing.T) {
	report := FormatReport(domain.StageIV, scenarioRecord(t))

	last := -1
	for _, spec := range domain.NumericFields {
		idx := strings.Index(report, spec.Label+":")
		require.GreaterOrEqual(t, idx, 0, "missing %s", spec.Label)
		assert.Greater(t, idx, last, "%s out of order", spec.Label)
		last = idx
	}
}

func TestFormatReportIsDeterministic(t *testing.T) {
	rec := scenarioRecord(t)
	assert.Equal(t, FormatReport(domain.StageIV, rec), FormatReport(domain.StageIV, rec))
}

func TestFormatReportKeepsSubmittedDecimals(t *testing.T) {
	sub, err := ParseFormValues(url.Values{
		"hba1c":      {"8.2"},
		"bmi":        {"25.0"},
		"creatinine": {"1.0"},
		"age":        {"35"},
		"gender":     {"M"},
		"class":      {"N"},
	})
	require.NoError(t, err)
	rec, err := BuildRecord(sub)
	require.NoError(t, err)

	report := FormatReport(ClassifyStage(rec.HbA1c()), rec)

	assert.Contains(t, report, "HbA1c (%): 8.2\n")
	assert.Contains(t, report, "BMI: 25.0\n")
	assert.Contains(t, report, "Creatinine (mg/dL): 1.0\n")
	assert.Contains(t, report, "Age (years): 35\n")
	assert.NotContains(t, report, "Age (years): 35.0")
}
