package service

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/perio-stage-predictor/internal/domain"
)

// PlaceholderOption is the unset entry shown first in both selectors.
const PlaceholderOption = "Select"

// Submission is the raw content of the patient form at the moment of submit.
// A nil numeric field takes the field default; an empty or placeholder
// categorical is unset.
type Submission struct {
	HbA1c      *float64 `json:"hba1c,omitempty"`
	BMI        *float64 `json:"bmi,omitempty"`
	TG         *float64 `json:"tg,omitempty"`
	Chol       *float64 `json:"chol,omitempty"`
	Age        *float64 `json:"age,omitempty"`
	HDL        *float64 `json:"hdl,omitempty"`
	LDL        *float64 `json:"ldl,omitempty"`
	Urea       *float64 `json:"urea,omitempty"`
	Creatinine *float64 `json:"creatinine,omitempty"`
	Cr         *float64 `json:"cr,omitempty"`
	Gender     string   `json:"gender"`
	Class      string   `json:"class"`
}

func (s *Submission) numeric(f domain.Field) **float64 {
	switch f {
	case domain.FieldHbA1c:
		return &s.HbA1c
	case domain.FieldBMI:
		return &s.BMI
	case domain.FieldTG:
		return &s.TG
	case domain.FieldChol:
		return &s.Chol
	case domain.FieldAge:
		return &s.Age
	case domain.FieldHDL:
		return &s.HDL
	case domain.FieldLDL:
		return &s.LDL
	case domain.FieldUrea:
		return &s.Urea
	case domain.FieldCreatinine:
		return &s.Creatinine
	case domain.FieldCr:
		return &s.Cr
	}
	return nil
}

// Value returns the submitted value of a numeric field and whether one was given.
func (s *Submission) Value(f domain.Field) (float64, bool) {
	p := s.numeric(f)
	if p == nil || *p == nil {
		return 0, false
	}
	return **p, true
}

// SetValue records a numeric field.
func (s *Submission) SetValue(f domain.Field, v float64) {
	if p := s.numeric(f); p != nil {
		*p = &v
	}
}

// DefaultSubmission is the form as first rendered: defaults everywhere,
// both selectors on the placeholder.
func DefaultSubmission() *Submission {
	s := &Submission{}
	for _, spec := range domain.NumericFields {
		s.SetValue(spec.Field, spec.Default)
	}
	return s
}

// ParseFormValues reads an urlencoded form post. Blank numeric inputs are left
// nil; text that is not a number is a validation error.
func ParseFormValues(values url.Values) (*Submission, error) {
	s := &Submission{
		Gender: strings.TrimSpace(values.Get(string(domain.FieldGender))),
		Class:  strings.TrimSpace(values.Get(string(domain.FieldClass))),
	}

	for _, spec := range domain.NumericFields {
		raw := strings.TrimSpace(values.Get(string(spec.Field)))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, domain.NewValidationError(string(spec.Field), fmt.Sprintf("%s must be a number", spec.Label), raw)
		}
		s.SetValue(spec.Field, v)
	}

	return s, nil
}

// BuildRecord turns a submission into a PatientRecord. Numeric inputs must
// lie within the declared bounds, integer fields must be whole, and both
// categoricals must be selected.
func BuildRecord(s *Submission) (*domain.PatientRecord, error) {
	if s == nil {
		return nil, domain.NewValidationError("form", "empty submission", nil)
	}

	values := domain.DefaultLabValues()
	for _, spec := range domain.NumericFields {
		v, ok := s.Value(spec.Field)
		if !ok {
			continue
		}
		if !spec.Contains(v) {
			return nil, domain.NewValidationError(string(spec.Field),
				fmt.Sprintf("%s must be between %s and %s", spec.Label, domain.FormatValue(spec.Min), domain.FormatValue(spec.Max)), v)
		}
		if spec.Integer && v != math.Trunc(v) {
			return nil, domain.NewValidationError(string(spec.Field), fmt.Sprintf("%s must be a whole number", spec.Label), v)
		}
		values.Set(spec.Field, v)
	}

	return domain.NewPatientRecord(values, selectedGender(s.Gender), selectedClass(s.Class))
}

func selectedGender(raw string) *domain.Gender {
	if raw == PlaceholderOption {
		return nil
	}
	g, ok := domain.ParseGender(raw)
	if !ok {
		return nil
	}
	return &g
}

func selectedClass(raw string) *domain.DiabetesClass {
	if raw == PlaceholderOption {
		return nil
	}
	c, ok := domain.ParseDiabetesClass(raw)
	if !ok {
		return nil
	}
	return &c
}
