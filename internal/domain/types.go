// Package domain contains the core entities of the periodontal stage predictor:
// the patient lab record collected by the form, the stage label derived from it,
// and the errors and configuration shared by the service and HTTP layers.
package domain

import (
	"fmt"
	"strings"
)

// Gender is the patient's recorded sex. The form's unset placeholder is not a
// Gender value; an unset selection is represented by a nil *Gender.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Genders lists the selectable values in display order.
var Genders = []Gender{GenderMale, GenderFemale}

// ParseGender converts a form value into a Gender.
func ParseGender(s string) (Gender, bool) {
	switch Gender(strings.ToUpper(strings.TrimSpace(s))) {
	case GenderMale:
		return GenderMale, true
	case GenderFemale:
		return GenderFemale, true
	}
	return "", false
}

// DiabetesClass is the patient's diabetes status: non-diabetic, diabetic or prediabetic.
type DiabetesClass string

const (
	ClassNonDiabetic DiabetesClass = "N"
	ClassDiabetic    DiabetesClass = "Y"
	ClassPrediabetic DiabetesClass = "P"
)

// DiabetesClasses lists the selectable values in display order.
var DiabetesClasses = []DiabetesClass{ClassNonDiabetic, ClassDiabetic, ClassPrediabetic}

// ParseDiabetesClass converts a form value into a DiabetesClass.
func ParseDiabetesClass(s string) (DiabetesClass, bool) {
	switch DiabetesClass(strings.ToUpper(strings.TrimSpace(s))) {
	case ClassNonDiabetic:
		return ClassNonDiabetic, true
	case ClassDiabetic:
		return ClassDiabetic, true
	case ClassPrediabetic:
		return ClassPrediabetic, true
	}
	return "", false
}

// Stage is the ordinal periodontal severity label assigned from HbA1c.
type Stage string

const (
	StageHealthy Stage = "Healthy"
	StageI       Stage = "Stage I"
	StageII      Stage = "Stage II"
	StageIII     Stage = "Stage III"
	StageIV      Stage = "Stage IV"
)

// Stages lists every label from least to most severe.
var Stages = []Stage{StageHealthy, StageI, StageII, StageIII, StageIV}

// String returns the display label.
func (s Stage) String() string {
	return string(s)
}

// StageThreshold is the inclusive lower HbA1c bound of a stage.
type StageThreshold struct {
	MinHbA1c float64
	Stage    Stage
}

// StageThresholds is ordered from the most to the least severe stage.
// Anything below the last bound is Healthy.
var StageThresholds = []StageThreshold{
	{MinHbA1c: 8.0, Stage: StageIV},
	{MinHbA1c: 7.0, Stage: StageIII},
	{MinHbA1c: 6.0, Stage: StageII},
	{MinHbA1c: 5.5, Stage: StageI},
}

// Field identifies one numeric input of the patient form.
type Field string

const (
	FieldHbA1c      Field = "hba1c"
	FieldBMI        Field = "bmi"
	FieldTG         Field = "tg"
	FieldChol       Field = "chol"
	FieldAge        Field = "age"
	FieldHDL        Field = "hdl"
	FieldLDL        Field = "ldl"
	FieldUrea       Field = "urea"
	FieldCreatinine Field = "creatinine"
	FieldCr         Field = "cr"

	FieldGender Field = "gender"
	FieldClass  Field = "class"
)

// FieldSpec declares the label and accepted range of a numeric form input.
type FieldSpec struct {
	Field   Field
	Label   string
	Min     float64
	Max     float64
	Default float64
	Step    float64
	Integer bool
}

// Contains reports whether v lies within the declared bounds.
func (f FieldSpec) Contains(v float64) bool {
	return v >= f.Min && v <= f.Max
}

// FormatValue renders v the way the input shows it: integer fields as whole
// numbers, decimal fields with at least one fractional digit (1.0, 25.0, 8.2).
func (f FieldSpec) FormatValue(v float64) string {
	s := FormatValue(v)
	if f.Integer || strings.ContainsAny(s, ".eE") {
		return s
	}
	return s + ".0"
}

// NumericFields is the ordered form layout. Report lines follow the same order.
var NumericFields = []FieldSpec{
	{Field: FieldHbA1c, Label: "HbA1c (%)", Min: 0, Max: 15, Default: 5.0, Step: 0.1},
	{Field: FieldBMI, Label: "BMI", Min: 10, Max: 50, Default: 25.0, Step: 0.1},
	{Field: FieldTG, Label: "Triglycerides (TG, mg/dL)", Min: 50, Max: 500, Default: 150, Step: 1},
	{Field: FieldChol, Label: "Cholesterol (Chol, mg/dL)", Min: 100, Max: 400, Default: 200, Step: 1},
	{Field: FieldAge, Label: "Age (years)", Min: 5, Max: 100, Default: 35, Step: 1, Integer: true},
	{Field: FieldHDL, Label: "HDL (mg/dL)", Min: 10, Max: 100, Default: 40, Step: 1, Integer: true},
	{Field: FieldLDL, Label: "LDL (mg/dL)", Min: 10, Max: 250, Default: 100, Step: 1, Integer: true},
	{Field: FieldUrea, Label: "Urea (mg/dL)", Min: 10, Max: 100, Default: 30, Step: 1, Integer: true},
	{Field: FieldCreatinine, Label: "Creatinine (mg/dL)", Min: 0.1, Max: 5.0, Default: 1.0, Step: 0.1},
	{Field: FieldCr, Label: "Creatinine Ratio (Cr)", Min: 0.1, Max: 5.0, Default: 1.2, Step: 0.1},
}

// LookupField returns the spec for a numeric field.
func LookupField(f Field) (FieldSpec, error) {
	for _, spec := range NumericFields {
		if spec.Field == f {
			return spec, nil
		}
	}
	return FieldSpec{}, fmt.Errorf("unknown field: %s", f)
}
