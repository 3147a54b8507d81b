package service

import (
	"fmt"
	"strings"

	"github.com/perio-stage-predictor/internal/domain"
)

const (
	reportTitle = "Periodontal Stage Prediction Report"
	reportNote  = "This is a simulated prediction based on HbA1c only; it is not a clinical diagnosis."
)

// FormatReport renders the downloadable plain-text report. Every form field
// appears on its own line with its value as submitted.
func FormatReport(stage domain.Stage, record *domain.PatientRecord) string {
	var b strings.Builder

	b.WriteString(reportTitle + "\n")
	b.WriteString(strings.Repeat("=", len(reportTitle)) + "\n\n")
	fmt.Fprintf(&b, "Predicted Periodontal Stage: %s\n\n", stage)

	b.WriteString("Patient Data\n")
	b.WriteString("------------\n")
	values := record.Values()
	for _, spec := range domain.NumericFields {
		fmt.Fprintf(&b, "%s: %s\n", spec.Label, spec.FormatValue(values.Get(spec.Field)))
	}
	fmt.Fprintf(&b, "Gender: %s\n", record.Gender())
	fmt.Fprintf(&b, "CLASS (Diabetes Status): %s\n\n", record.Class())

	b.WriteString(reportNote + "\n")
	return b.String()
}
